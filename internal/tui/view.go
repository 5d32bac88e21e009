package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tasked/internal/lineedit"
	"tasked/internal/todo"
)

const (
	titleIndent = 4
	markIndent  = 2
	textIndent  = 6

	// listTop is the first screen row below the status bar and gap.
	listTop = 2

	// reservedBottom is the rows kept free for the message and help lines,
	// plus one of slack.
	reservedBottom = 3
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.fatal != nil {
		return m.fatalView()
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, m.statusBar(), "")
	for _, row := range m.titleRows() {
		lines = append(lines, pad(titleIndent)+m.theme.TitleStyle.Render(row))
	}

	// A marker in the gap under the title shows tasks scrolled off the top.
	marker := ""
	if m.top > 0 {
		marker = pad(markIndent) + m.theme.MarkerStyle.Render("*")
	}
	lines = append(lines, marker)

	tasks := m.doc.Tasks()
	bottom := m.bottom()
	for i := m.top; i <= bottom; i++ {
		lines = append(lines, m.taskLines(tasks[i], i == m.highlight)...)
	}
	if bottom < len(tasks)-1 {
		lines = append(lines, pad(markIndent)+m.theme.MarkerStyle.Render("*"))
	}

	footer := m.footer()
	body := m.height - len(footer)
	if body < 0 {
		body = 0
	}
	if len(lines) > body {
		lines = lines[:body]
	}
	for len(lines) < body {
		lines = append(lines, "")
	}
	return strings.Join(append(lines, footer...), "\n")
}

func (m *Model) fatalView() string {
	lines := []string{
		pad(markIndent) + "tasked " + m.version,
		"",
		pad(titleIndent) + m.theme.ErrorStyle.Render(m.fatal.Error()),
		"",
		pad(titleIndent) + "Press any key to exit.",
	}
	return strings.Join(lines, "\n")
}

// statusBar is the top line: program version, save state and task count.
func (m *Model) statusBar() string {
	status := statusUnsaved
	if m.saved {
		status = statusSaved
	}
	n := m.doc.Len()
	count := fmt.Sprintf("%d task", n)
	if n != 1 {
		count += "s"
	}

	left := pad(markIndent) + "tasked " + m.version
	right := count + pad(markIndent)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(status), lipgloss.Width(right)

	cx := m.width/2 - cw/2
	if cx < lw+1 {
		cx = lw + 1
	}
	rx := m.width - rw
	if rx < cx+cw+1 {
		rx = cx + cw + 1
	}
	line := left + pad(cx-lw) + status + pad(rx-cx-cw) + right
	line += pad(m.width - lipgloss.Width(line))
	return m.theme.BarStyle.Render(line)
}

// taskLines renders one task, its text wrapped under itself.
func (m *Model) taskLines(t *todo.Task, selected bool) []string {
	style := lipgloss.NewStyle()
	if t.Done {
		style = m.theme.DoneStyle
	}
	if selected {
		style = m.theme.SelectedStyle
	}

	mark := "[ ]"
	if t.Done {
		mark = "[X]"
	}

	rows := lineedit.Wrap(t.Text(), m.textWidth())
	out := make([]string, len(rows))
	for i, row := range rows {
		if i == 0 {
			out[i] = pad(markIndent) + style.Render(mark+" "+row)
			continue
		}
		out[i] = pad(textIndent) + style.Render(row)
	}
	return out
}

// footer is the prompt or message line followed by the help line.
func (m *Model) footer() []string {
	var out []string
	if m.edit != nil {
		layout := m.edit.Render(m.width)
		for i, row := range layout.Rows {
			if i == layout.CursorRow {
				row = withCursor(row, layout.CursorCol, m.theme.CursorStyle)
			}
			out = append(out, row)
		}
		return append(out, strings.Split(m.help.View(m.editKeys), "\n")...)
	}

	msg := ""
	if m.message != "" {
		text := "[ " + m.message + " ]"
		x := m.width/2 - lipgloss.Width(text)/2
		msg = pad(x) + m.theme.MessageStyle.Render(text)
	}
	out = append(out, msg)
	return append(out, strings.Split(m.help.View(m.keys), "\n")...)
}

// scroll moves the window so the highlighted task is fully visible.
func (m *Model) scroll() {
	if m.doc == nil {
		return
	}
	if m.highlight < m.top {
		m.top = m.highlight
	}
	avail := m.listRows()
	for m.top < m.highlight && m.rowsBetween(m.top, m.highlight) > avail {
		m.top++
	}
}

// bottom returns the index of the last task that fits below m.top, or -1
// when the list is empty. The first visible task is always shown.
func (m *Model) bottom() int {
	n := m.doc.Len()
	if n == 0 {
		return -1
	}
	avail := m.listRows()
	used := 0
	last := m.top
	for i, t := m.top, m.doc.At(m.top); t != nil; i, t = i+1, t.Next() {
		used += m.taskHeight(t)
		if used > avail && i > m.top {
			break
		}
		last = i
	}
	return last
}

func (m *Model) rowsBetween(from, to int) int {
	rows := 0
	for i, t := from, m.doc.At(from); t != nil && i <= to; i, t = i+1, t.Next() {
		rows += m.taskHeight(t)
	}
	return rows
}

func (m *Model) taskHeight(t *todo.Task) int {
	return len(lineedit.Wrap(t.Text(), m.textWidth()))
}

// listRows is the number of screen rows available for tasks.
func (m *Model) listRows() int {
	first := listTop + len(m.titleRows()) + 1
	rows := m.height - reservedBottom - first
	if rows < 1 {
		return 1
	}
	return rows
}

func (m *Model) titleRows() []string {
	return lineedit.Wrap(m.doc.Title, m.width-2*titleIndent)
}

func (m *Model) textWidth() int {
	return m.width - textIndent - titleIndent
}

// withCursor draws the cursor over the cell at display column col.
func withCursor(row string, col int, style lipgloss.Style) string {
	x := 0
	for i := 0; i < len(row); {
		r, size := utf8.DecodeRuneInString(row[i:])
		if x >= col {
			return row[:i] + style.Render(string(r)) + row[i+size:]
		}
		x += runewidth.RuneWidth(r)
		i += size
	}
	return row + pad(col-x) + style.Render(" ")
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
