package lineedit

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Layout is a rendered edit session. CursorRow and CursorCol are relative to
// the first row and include the prompt.
type Layout struct {
	Rows      []string
	CursorRow int
	CursorCol int
}

func head(prompt string) string {
	return prompt + ":"
}

// Render wraps content behind "prompt:" into rows at most width columns wide.
// Continuation rows are indented to line up with the first. Wrapping happens
// between runes, never inside one.
func Render(prompt, content string, dot int, width int) Layout {
	h := head(prompt)
	indent := runewidth.StringWidth(h)
	avail := width - indent
	if avail < 1 {
		avail = 1
	}
	if dot < 0 {
		dot = 0
	}
	if dot > len(content) {
		dot = len(content)
	}

	starts := rowStarts(content, avail)
	var l Layout
	pad := strings.Repeat(" ", indent)
	for i, start := range starts {
		end := len(content)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		prefix := pad
		if i == 0 {
			prefix = h
		}
		l.Rows = append(l.Rows, prefix+content[start:end])
		if dot >= start && (dot < end || i == len(starts)-1) {
			l.CursorRow = i
			l.CursorCol = indent + runewidth.StringWidth(content[start:dot])
		}
	}

	// A full last row pushes the cursor onto a fresh row.
	if dot == len(content) && l.CursorCol-indent >= avail {
		l.Rows = append(l.Rows, pad)
		l.CursorRow++
		l.CursorCol = indent
	}
	return l
}

// Wrap splits text into rows at most width columns wide, breaking between
// runes. Empty text yields a single empty row.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	starts := rowStarts(text, width)
	rows := make([]string, 0, len(starts))
	for i, start := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		rows = append(rows, text[start:end])
	}
	return rows
}

// rowStarts returns the byte offset at which each row begins.
func rowStarts(text string, width int) []int {
	starts := []int{0}
	col := 0
	for i, r := range text {
		w := runewidth.RuneWidth(r)
		if col > 0 && col+w > width {
			starts = append(starts, i)
			col = 0
		}
		col += w
	}
	return starts
}
