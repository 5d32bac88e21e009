package lineedit

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// KeyType identifies an editing key.
type KeyType int

const (
	KeyRune KeyType = iota
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyCancel
)

// Key is one input event. Rune is only meaningful for KeyRune.
type Key struct {
	Type KeyType
	Rune rune
}

// State is the state of a Session after a key.
type State int

const (
	Editing State = iota
	Accepted
	Cancelled
)

func (s State) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case Cancelled:
		return "cancelled"
	default:
		return "editing"
	}
}

// Result is the outcome of a finished session. Text is empty when Cancelled
// is set; an accepted empty edit has Cancelled false.
type Result struct {
	Text      string
	Cancelled bool
}

// Session edits one line of text behind a prompt.
type Session struct {
	prompt string
	buf    *Buffer
	state  State
	err    error
}

// NewSession starts an edit of seed behind prompt on a screen width columns
// wide.
func NewSession(prompt, seed string, width int) *Session {
	return &Session{
		prompt: prompt,
		buf:    New(seed, width-runewidth.StringWidth(head(prompt))),
	}
}

// Prompt returns the prompt text.
func (s *Session) Prompt() string { return s.prompt }

// Buffer returns the underlying buffer.
func (s *Session) Buffer() *Buffer { return s.buf }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Err returns the error that ended the session, if any.
func (s *Session) Err() error { return s.err }

// Handle applies k and returns the resulting state. Keys are ignored once the
// session has finished.
func (s *Session) Handle(k Key) State {
	if s.state != Editing {
		return s.state
	}
	switch k.Type {
	case KeyEnter:
		s.state = Accepted
	case KeyCancel:
		s.state = Cancelled
	case KeyLeft:
		s.buf.Left()
	case KeyRight:
		s.buf.Right()
	case KeyHome:
		s.buf.Home()
	case KeyEnd:
		s.buf.End()
	case KeyBackspace:
		s.buf.Backspace()
	case KeyDelete:
		s.buf.Delete()
	case KeyRune:
		if k.Rune == '\n' || !unicode.IsPrint(k.Rune) {
			break
		}
		if err := s.buf.Insert(k.Rune); err != nil {
			s.err = err
			s.state = Cancelled
		}
	}
	return s.state
}

// Result returns the outcome. It is only meaningful once the session is no
// longer Editing.
func (s *Session) Result() Result {
	if s.state == Cancelled {
		return Result{Cancelled: true}
	}
	return Result{Text: s.buf.String()}
}

// Render lays out the session for a screen width columns wide.
func (s *Session) Render(width int) Layout {
	return Render(s.prompt, s.buf.String(), s.buf.Dot(), width)
}
