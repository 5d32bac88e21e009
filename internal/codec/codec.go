// Package codec reads and writes the task list file format.
//
// A file is a title line, followed by any number of option lines and task
// lines:
//
//	Groceries
//	# autosync=1 origin=https://example.com/list
//	[ ] Milk
//	[X] Eggs
//
// Parsing is lenient. Unrecognized lines are skipped and never produce an
// error; only stream failures do.
package codec

import (
	"errors"
	"io"
	"strings"

	"tasked/internal/stream"
	"tasked/internal/todo"
)

// wrapWidth is the option line width after which a continuation line starts.
const wrapWidth = 80

// Parse reads a document from r until end of stream.
func Parse(r stream.Reader) (*todo.Document, error) {
	p := &parser{r: r}
	doc := todo.New(p.line())
	for p.err == nil && !r.EOF() {
		p.item(doc)
	}
	if p.err != nil {
		return nil, p.err
	}
	return doc, nil
}

// Unmarshal parses a document held in memory.
func Unmarshal(text string) (*todo.Document, error) {
	s := stream.FromString(text)
	defer s.Close()
	return Parse(s)
}

// Serialize writes doc to w.
func Serialize(doc *todo.Document, w stream.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("%s\n", doc.Title)

	if opts := doc.Options(); len(opts) > 0 {
		ew.printf("#")
		width := 1
		for _, opt := range opts {
			if width >= wrapWidth {
				ew.printf("\n#")
				width = 1
			}
			n := ew.printf(" %s=%s", Escape(opt.Key), Escape(opt.Value))
			width += n
		}
		ew.printf("\n")
	}

	for t := doc.First(); t != nil; t = t.Next() {
		mark := ' '
		if t.Done {
			mark = 'X'
		}
		ew.printf("[%c] %s\n", mark, t.Text())
	}
	return ew.err
}

// Marshal returns the serialized form of doc.
func Marshal(doc *todo.Document) string {
	m := stream.NewBuffer(initialSize)
	defer m.Close()
	// Writes to a memory stream only fail once it is closed.
	_ = Serialize(doc, m)
	return m.String()
}

// NewReader returns a memory stream holding the serialized form of doc,
// positioned at the start, suitable as an upload body.
func NewReader(doc *todo.Document) *stream.Memory {
	m := stream.NewBuffer(initialSize)
	_ = Serialize(doc, m)
	return m
}

const initialSize = 100

type parser struct {
	r   stream.Reader
	err error
}

// next returns the next byte. It returns false at end of stream or on a read
// error, which is kept in p.err.
func (p *parser) next() (byte, bool) {
	if p.err != nil {
		return 0, false
	}
	c, err := p.r.ReadByte()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			p.err = err
		}
		return 0, false
	}
	return c, true
}

// back pushes the last byte returned by next back onto the stream.
func (p *parser) back() {
	if p.err != nil {
		return
	}
	if err := p.r.UnreadByte(); err != nil {
		p.err = err
	}
}

// line reads up to and including the next newline and returns the text
// before it.
func (p *parser) line() string {
	var sb strings.Builder
	for {
		c, ok := p.next()
		if !ok || c == '\n' {
			return sb.String()
		}
		sb.WriteByte(c)
	}
}

func (p *parser) skipSpace() {
	for {
		c, ok := p.next()
		if !ok {
			return
		}
		if !isSpace(c) {
			p.back()
			return
		}
	}
}

func (p *parser) skipHorizontalSpace() {
	for {
		c, ok := p.next()
		if !ok {
			return
		}
		if !isSpace(c) || c == '\n' {
			p.back()
			return
		}
	}
}

// skipLine advances to the next newline without consuming it.
func (p *parser) skipLine() {
	for {
		c, ok := p.next()
		if !ok {
			return
		}
		if c == '\n' {
			p.back()
			return
		}
	}
}

// item reads one task line, one option line, or skips one unrecognized line.
func (p *parser) item(doc *todo.Document) {
	p.skipSpace()
	c, ok := p.next()
	if !ok {
		return
	}
	if c != '[' {
		if c == '#' {
			p.options(doc)
			p.skipLine()
			return
		}
		p.back()
		p.skipLine()
		return
	}

	var done bool
	c, ok = p.next()
	if !ok {
		return
	}
	switch c {
	case 'X', 'x':
		done = true
	case ' ':
		done = false
	default:
		p.back()
		p.skipLine()
		return
	}

	c, ok = p.next()
	if !ok {
		return
	}
	if c != ']' {
		p.back()
		p.skipLine()
		return
	}

	// One space separates the mark from the text, which runs to the end of
	// the line as written.
	if c, ok := p.next(); ok && c != ' ' {
		p.back()
	}
	text := p.line()
	if _, err := doc.Append(text, done, 0); err != nil && p.err == nil {
		p.err = err
	}
}

// options reads the remainder of an option line.
func (p *parser) options(doc *todo.Document) {
	for p.err == nil {
		p.skipHorizontalSpace()
		key := p.token()
		if key == "" {
			p.skipLine()
			return
		}
		p.skipHorizontalSpace()
		c, ok := p.next()
		if !ok || c != '=' {
			if ok {
				p.back()
			}
			p.setOption(doc, key, "1")
			continue
		}
		p.skipHorizontalSpace()
		p.setOption(doc, key, p.token())
	}
}

func (p *parser) setOption(doc *todo.Document, key, value string) {
	if err := doc.SetOption(key, value); err != nil && p.err == nil {
		p.err = err
	}
}

// token reads an option key or value, resolving backslash escapes. It stops
// before a newline, '=', or any byte at or below space.
func (p *parser) token() string {
	var sb strings.Builder
	for {
		c, ok := p.next()
		if !ok {
			return sb.String()
		}
		if c == '\n' || c == '=' || c <= ' ' {
			p.back()
			return sb.String()
		}
		if c == '\\' {
			c, ok = p.next()
			if !ok {
				return sb.String()
			}
		}
		sb.WriteByte(c)
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// errWriter keeps the first write error and turns later writes into no-ops.
type errWriter struct {
	w   stream.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) int {
	if ew.err != nil {
		return 0
	}
	n, err := ew.w.Printf(format, args...)
	ew.err = err
	return n
}
