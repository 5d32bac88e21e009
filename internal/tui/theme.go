package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines TUI colors and styles.
type Theme struct {
	Muted  lipgloss.Color
	Danger lipgloss.Color

	BarStyle      lipgloss.Style
	TitleStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	DoneStyle     lipgloss.Style
	MessageStyle  lipgloss.Style
	MarkerStyle   lipgloss.Style
	CursorStyle   lipgloss.Style
	ErrorStyle    lipgloss.Style
}

// DefaultTheme keeps to reverse video and bold so it works on any terminal.
func DefaultTheme() Theme {
	t := Theme{
		Muted:  lipgloss.Color("8"),
		Danger: lipgloss.Color("9"),
	}

	t.BarStyle = lipgloss.NewStyle().Reverse(true)
	t.TitleStyle = lipgloss.NewStyle().Bold(true)
	t.SelectedStyle = lipgloss.NewStyle().Reverse(true)
	t.DoneStyle = lipgloss.NewStyle().Foreground(t.Muted)
	t.MessageStyle = lipgloss.NewStyle().Reverse(true)
	t.MarkerStyle = lipgloss.NewStyle().Bold(true)
	t.CursorStyle = lipgloss.NewStyle().Reverse(true)
	t.ErrorStyle = lipgloss.NewStyle().Foreground(t.Danger).Bold(true)
	return t
}
