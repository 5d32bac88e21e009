// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasked/internal/todo"
)

const (
	// TitleSeparator is the separator line under the list title.
	TitleSeparator = "------------"

	markDone = "[X]"
	markOpen = "[ ]"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [X] {TEXT}\n" (4-wide right-aligned number, two spaces, mark, text)
func FormatTask(w io.Writer, num int, task *todo.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, Mark(task.Done), normalizeText(task.Text()))
}

// FormatTitle formats the list title followed by a separator line.
func FormatTitle(w io.Writer, title string) {
	fmt.Fprintln(w, normalizeText(title))
	fmt.Fprintln(w, TitleSeparator)
}

// FormatOption formats one option as "key=value".
func FormatOption(w io.Writer, opt todo.Option) {
	fmt.Fprintf(w, "%s=%s\n", opt.Key, opt.Value)
}

// Mark returns the check box for a done flag.
func Mark(done bool) string {
	if done {
		return markDone
	}
	return markOpen
}

// normalizeText normalizes text for display.
// Empty or whitespace-only text becomes "(untitled)".
func normalizeText(text string) string {
	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
