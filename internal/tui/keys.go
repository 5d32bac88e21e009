package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the list view keybindings.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	First       key.Binding
	Last        key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	Toggle      key.Binding
	Insert      key.Binding
	InsertTop   key.Binding
	AppendAfter key.Binding
	Append      key.Binding
	Change      key.Binding
	Edit        key.Binding
	ChangeTitle key.Binding
	EditTitle   key.Binding
	Delete      key.Binding
	Save        key.Binding
	Reload      key.Binding
	Push        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
	Help        key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "K", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "J", "down"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("^U", "up 5"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("^D", "down 5"),
		),
		First: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("m", "shift+up"),
			key.WithHelp("m", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("M", "shift+down"),
			key.WithHelp("M", "move down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "done"),
		),
		Insert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "insert"),
		),
		InsertTop: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "insert first"),
		),
		AppendAfter: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add after"),
		),
		Append: key.NewBinding(
			key.WithKeys("A", "N", "n", "+", "insert"),
			key.WithHelp("N", "new"),
		),
		Change: key.NewBinding(
			key.WithKeys("c", "E"),
			key.WithHelp("c", "change"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		ChangeTitle: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "change title"),
		),
		EditTitle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "title"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "D", "-", "delete"),
			key.WithHelp("d", "delete"),
		),
		Save: key.NewBinding(
			key.WithKeys("s", "S"),
			key.WithHelp("s", "save"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "reload"),
		),
		Push: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "sync"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("Q", "ctrl+c"),
			key.WithHelp("Q", "quit anyway"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Save, k.Reload, k.Append, k.Edit, k.Delete, k.EditTitle, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.First, k.Last},
		{k.Toggle, k.MoveUp, k.MoveDown, k.Delete},
		{k.Insert, k.InsertTop, k.AppendAfter, k.Append},
		{k.Change, k.Edit, k.ChangeTitle, k.EditTitle},
		{k.Save, k.Reload, k.Push, k.Quit, k.ForceQuit, k.Help},
	}
}

// EditKeyMap defines the keys shown while a prompt is open. Other editing
// keys are handled by the line editor.
type EditKeyMap struct {
	Accept key.Binding
	Cancel key.Binding
}

// DefaultEditKeyMap returns the default prompt keybindings.
func DefaultEditKeyMap() EditKeyMap {
	return EditKeyMap{
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "done"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d", "esc"),
			key.WithHelp("^C", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k EditKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k EditKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
