package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tasked/internal/lineedit"
)

// editKeys translates a key press into line editor keys. Pasted text
// arrives as one message with many runes.
func editKeys(msg tea.KeyMsg, keys EditKeyMap) []lineedit.Key {
	switch {
	case key.Matches(msg, keys.Accept):
		return []lineedit.Key{{Type: lineedit.KeyEnter}}
	case key.Matches(msg, keys.Cancel):
		return []lineedit.Key{{Type: lineedit.KeyCancel}}
	}

	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []lineedit.Key{{Type: lineedit.KeyBackspace}}
	case tea.KeyDelete:
		return []lineedit.Key{{Type: lineedit.KeyDelete}}
	case tea.KeyLeft, tea.KeyCtrlB:
		return []lineedit.Key{{Type: lineedit.KeyLeft}}
	case tea.KeyRight, tea.KeyCtrlF:
		return []lineedit.Key{{Type: lineedit.KeyRight}}
	case tea.KeyHome, tea.KeyCtrlA:
		return []lineedit.Key{{Type: lineedit.KeyHome}}
	case tea.KeyEnd, tea.KeyCtrlE:
		return []lineedit.Key{{Type: lineedit.KeyEnd}}
	case tea.KeySpace:
		return []lineedit.Key{{Type: lineedit.KeyRune, Rune: ' '}}
	case tea.KeyRunes:
		out := make([]lineedit.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, lineedit.Key{Type: lineedit.KeyRune, Rune: r})
		}
		return out
	}
	return nil
}
