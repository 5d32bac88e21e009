// Package tui is the full-screen list editor. All document changes happen in
// Update; sync requests run as commands on a snapshot of the document and
// report back with a message.
package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"tasked/internal/codec"
	"tasked/internal/config"
	"tasked/internal/lineedit"
	"tasked/internal/remote"
	"tasked/internal/todo"
)

const (
	statusSaved   = "Saved"
	statusUnsaved = "Unsaved"

	// pageStep is how far ^U and ^D move the selection.
	pageStep = 5

	defaultWidth  = 80
	defaultHeight = 24
)

// pulledMsg carries the result of the startup pull.
type pulledMsg struct {
	doc *todo.Document
	err error
}

// pushedMsg carries the result of a push.
type pushedMsg struct {
	err error
}

// Model is the bubbletea model of the editor.
type Model struct {
	ctx     context.Context
	cfg     *config.Config
	remotes remote.Factory
	version string
	path    string
	log     *log.Logger

	doc       *todo.Document
	highlight int
	top       int
	saved     bool
	message   string
	syncing   bool

	// edit is the open prompt; apply receives its accepted, non-empty text.
	edit  *lineedit.Session
	apply func(text string) error

	// fatal is set when the list could not be opened; any key quits.
	fatal error

	keys     KeyMap
	editKeys EditKeyMap
	help     help.Model
	theme    Theme
	width    int
	height   int
}

// NewModel loads the list file named by opts.Config and returns the editor
// model. A load failure is kept and shown by the view.
func NewModel(ctx context.Context, opts Options) *Model {
	cfg := opts.Config
	m := &Model{
		ctx:      ctx,
		cfg:      cfg,
		remotes:  opts.Remotes,
		version:  opts.Version,
		path:     cfg.ListFile,
		log:      cfg.Log,
		saved:    true,
		keys:     DefaultKeyMap(),
		editKeys: DefaultEditKeyMap(),
		help:     help.New(),
		theme:    DefaultTheme(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	if m.log == nil {
		m.log = log.New(io.Discard)
	}

	doc, err := codec.Load(m.path)
	if err != nil {
		m.fatal = fmt.Errorf("could not open %s: %w", m.path, err)
		m.log.Error("load failed", "file", m.path, "err", err)
		return m
	}
	m.doc = doc

	if _, ok := doc.Option(todo.OptionVersion); !ok && m.version != "" {
		_ = doc.SetOption(todo.OptionVersion, m.version)
	}
	return m
}

// Init starts the autosync pull when the list asks for one.
func (m *Model) Init() tea.Cmd {
	if m.doc == nil || m.remotes == nil || !m.doc.OptionBit(todo.OptionAutosync) {
		return nil
	}
	if _, err := remote.Origin(m.doc); err != nil {
		return nil
	}
	m.syncing = true
	m.message = "Synchronizing tasks..."
	return m.pullCmd()
}

// Err returns the load error that stopped the editor, if any.
func (m *Model) Err() error {
	return m.fatal
}

// Document returns the document being edited.
func (m *Model) Document() *todo.Document {
	return m.doc
}

// Close releases the document.
func (m *Model) Close() {
	if m.doc != nil {
		m.doc.Destroy()
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.scroll()
		return m, nil

	case pulledMsg:
		m.syncing = false
		if msg.err != nil {
			m.message = fmt.Sprintf("Synchronization failed: %v", msg.err)
			m.log.Warn("pull failed", "err", msg.err)
			return m, nil
		}
		m.replace(msg.doc)
		m.saved = false
		m.message = ""
		m.log.Info("pulled", "tasks", m.doc.Len())
		return m, nil

	case pushedMsg:
		m.syncing = false
		if msg.err != nil {
			m.message = fmt.Sprintf("Synchronization failed: %v", msg.err)
			m.log.Warn("push failed", "err", msg.err)
			return m, nil
		}
		m.message = "Synchronization complete!"
		m.log.Info("pushed", "tasks", m.doc.Len())
		return m, nil

	case tea.KeyMsg:
		if m.fatal != nil {
			return m, tea.Quit
		}
		if m.syncing {
			return m, nil
		}
		if m.edit != nil {
			m.handleEditKey(msg)
			return m, nil
		}
		cmd := m.handleKey(msg)
		m.clamp()
		m.scroll()
		return m, cmd
	}
	return m, nil
}

// handleKey runs the list view action bound to msg.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	selected := m.doc.At(m.highlight)

	switch {
	case key.Matches(msg, m.keys.Up):
		m.highlight--
	case key.Matches(msg, m.keys.Down):
		m.highlight++
	case key.Matches(msg, m.keys.PageUp):
		m.highlight -= pageStep
	case key.Matches(msg, m.keys.PageDown):
		m.highlight += pageStep
	case key.Matches(msg, m.keys.First):
		m.highlight = 0
	case key.Matches(msg, m.keys.Last):
		m.highlight = m.doc.Len() - 1

	case key.Matches(msg, m.keys.MoveUp):
		if selected != nil {
			m.must(m.doc.MoveUp(selected))
			m.highlight--
			m.saved = false
		}
	case key.Matches(msg, m.keys.MoveDown):
		if selected != nil {
			m.must(m.doc.MoveDown(selected))
			m.highlight++
			m.saved = false
		}
	case key.Matches(msg, m.keys.Toggle):
		if selected != nil {
			selected.Toggle()
			m.saved = false
		}
	case key.Matches(msg, m.keys.Delete):
		if selected != nil {
			m.must(m.doc.Delete(selected))
			m.saved = false
		}

	case key.Matches(msg, m.keys.Insert):
		m.prompt("Insert task", "", func(text string) error {
			if selected == nil {
				_, err := m.doc.Append(text, false, 0)
				return err
			}
			_, err := m.doc.InsertBefore(selected, text, false, 0)
			return err
		})
	case key.Matches(msg, m.keys.InsertTop):
		m.prompt("Insert task", "", func(text string) error {
			var err error
			if first := m.doc.First(); first != nil {
				_, err = m.doc.InsertBefore(first, text, false, 0)
			} else {
				_, err = m.doc.Append(text, false, 0)
			}
			m.highlight = 0
			return err
		})
	case key.Matches(msg, m.keys.AppendAfter):
		m.prompt("Append task", "", func(text string) error {
			if selected == nil {
				_, err := m.doc.Append(text, false, 0)
				m.highlight = m.doc.Len() - 1
				return err
			}
			_, err := m.doc.InsertAfter(selected, text, false, 0)
			m.highlight++
			return err
		})
	case key.Matches(msg, m.keys.Append):
		m.prompt("Append task", "", func(text string) error {
			_, err := m.doc.Append(text, false, 0)
			m.highlight = m.doc.Len() - 1
			return err
		})
	case key.Matches(msg, m.keys.Change):
		if selected != nil {
			m.prompt("Change task", "", selected.SetText)
		}
	case key.Matches(msg, m.keys.Edit):
		if selected != nil {
			m.prompt("Edit task", selected.Text(), selected.SetText)
		}
	case key.Matches(msg, m.keys.ChangeTitle):
		m.prompt("Change title", "", m.doc.SetTitle)
	case key.Matches(msg, m.keys.EditTitle):
		m.prompt("Edit title", m.doc.Title, m.doc.SetTitle)

	case key.Matches(msg, m.keys.Save):
		m.save()
	case key.Matches(msg, m.keys.Reload):
		m.reload()
	case key.Matches(msg, m.keys.Push):
		return m.push()
	case key.Matches(msg, m.keys.Quit):
		if m.save() {
			return tea.Quit
		}
	case key.Matches(msg, m.keys.ForceQuit):
		m.save()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	default:
		m.message = unboundKey(msg)
	}
	return nil
}

// prompt opens the line editor. apply runs when the edit is accepted with
// non-empty text.
func (m *Model) prompt(label, seed string, apply func(text string) error) {
	m.edit = lineedit.NewSession(label, seed, m.width)
	m.apply = apply
	m.message = ""
}

func (m *Model) handleEditKey(msg tea.KeyMsg) {
	for _, k := range editKeys(msg, m.editKeys) {
		m.edit.Handle(k)
	}
	if m.edit.State() == lineedit.Editing {
		return
	}

	session, apply := m.edit, m.apply
	m.edit, m.apply = nil, nil

	if err := session.Err(); err != nil {
		m.message = fmt.Sprintf("Edit failed: %v", err)
		return
	}
	res := session.Result()
	if res.Cancelled || res.Text == "" {
		return
	}
	if err := apply(res.Text); err != nil {
		m.message = err.Error()
		return
	}
	m.saved = false
	m.clamp()
	m.scroll()
}

// save writes the list file and reports the outcome in the message line.
func (m *Model) save() bool {
	err := codec.SaveWith(m.doc, m.path, codec.SaveOptions{Direct: m.cfg.DirectSave})
	if err != nil {
		m.message = fmt.Sprintf("Could not save %s: %v", m.path, err)
		m.saved = false
		m.log.Error("save failed", "file", m.path, "err", err)
		return false
	}
	m.message = "Saved"
	m.saved = true
	m.log.Debug("saved", "file", m.path, "tasks", m.doc.Len())
	return true
}

// reload replaces the document with the list file's content.
func (m *Model) reload() {
	doc, err := codec.Load(m.path)
	if err != nil {
		m.message = fmt.Sprintf("Could not load %s: %v", m.path, err)
		m.log.Error("reload failed", "file", m.path, "err", err)
		return
	}
	m.replace(doc)
	m.saved = true
	m.message = "Reloaded"
}

// push uploads a snapshot of the document to its origin.
func (m *Model) push() tea.Cmd {
	if m.remotes == nil {
		m.message = fmt.Sprintf("Synchronization failed: %v", remote.ErrNoOrigin)
		return nil
	}
	if _, err := remote.Origin(m.doc); err != nil {
		m.message = fmt.Sprintf("Synchronization failed: %v", err)
		return nil
	}
	snapshot, err := codec.Unmarshal(codec.Marshal(m.doc))
	if err != nil {
		m.message = fmt.Sprintf("Synchronization failed: %v", err)
		return nil
	}

	m.syncing = true
	m.message = "Synchronizing tasks..."
	ctx, cfg, remotes := m.ctx, m.cfg, m.remotes
	return func() tea.Msg {
		defer snapshot.Destroy()
		return pushedMsg{err: remote.Push(ctx, remotes, cfg, snapshot)}
	}
}

// pullCmd fetches the origin's copy of a snapshot of the document.
func (m *Model) pullCmd() tea.Cmd {
	snapshot, err := codec.Unmarshal(codec.Marshal(m.doc))
	if err != nil {
		return func() tea.Msg { return pulledMsg{err: err} }
	}
	ctx, cfg, remotes := m.ctx, m.cfg, m.remotes
	return func() tea.Msg {
		defer snapshot.Destroy()
		doc, err := remote.Pull(ctx, remotes, cfg, snapshot)
		return pulledMsg{doc: doc, err: err}
	}
}

func (m *Model) replace(doc *todo.Document) {
	if m.doc != nil {
		m.doc.Destroy()
	}
	m.doc = doc
	m.clamp()
	m.top = 0
	m.scroll()
}

// must reports a document error in the message line. Errors here mean the
// selection went stale.
func (m *Model) must(err error) {
	if err != nil {
		m.message = err.Error()
		m.log.Error("document update failed", "err", err)
	}
}

// clamp keeps the highlight on a task, or at 0 for an empty list.
func (m *Model) clamp() {
	if n := m.doc.Len(); m.highlight >= n {
		m.highlight = n - 1
	}
	if m.highlight < 0 {
		m.highlight = 0
	}
}

// unboundKey describes a key with no binding.
func unboundKey(msg tea.KeyMsg) string {
	switch {
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		return fmt.Sprintf("Unbound key: %c", msg.Runes[0])
	case msg.Type >= tea.KeyCtrlAt && msg.Type <= tea.KeyCtrlUnderscore:
		return fmt.Sprintf("Unbound key: ^%c", '@'+rune(msg.Type))
	default:
		return fmt.Sprintf("Unbound key: (%s)", msg.String())
	}
}
