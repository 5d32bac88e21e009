package stream

import (
	"fmt"
	"io"

	"tasked/internal/buffer"
)

// Memory is a stream over an owned, growable byte buffer. Reads consume from
// the front; writes append at the end.
type Memory struct {
	buf    []byte
	size   int
	pos    int
	unread bool // a byte may be pushed back
	closed bool
}

// NewBuffer returns an empty memory stream with room for capacity bytes.
func NewBuffer(capacity int) *Memory {
	if capacity < 0 {
		capacity = 0
	}
	return &Memory{buf: make([]byte, capacity)}
}

// FromBytes returns a memory stream over a copy of b.
func FromBytes(b []byte) *Memory {
	m := NewBuffer(len(b))
	m.size = copy(m.buf, b)
	return m
}

// FromString returns a memory stream over s.
func FromString(s string) *Memory {
	m := NewBuffer(len(s))
	m.size = copy(m.buf, s)
	return m
}

// Bytes returns the full content written so far, including bytes already
// read. The slice is valid until the next write.
func (m *Memory) Bytes() []byte {
	return m.buf[:m.size]
}

// String returns the full content as a string.
func (m *Memory) String() string {
	return string(m.buf[:m.size])
}

// Len returns the content length.
func (m *Memory) Len() int {
	return m.size
}

// Cap returns the current capacity of the backing buffer.
func (m *Memory) Cap() int {
	return len(m.buf)
}

func (m *Memory) ReadByte() (byte, error) {
	if m.closed {
		return 0, ErrClosed
	}
	if m.pos >= m.size {
		m.unread = false
		return 0, io.EOF
	}
	b := m.buf[m.pos]
	m.pos++
	m.unread = true
	return b, nil
}

// UnreadByte steps back over the last byte read.
func (m *Memory) UnreadByte() error {
	if m.closed {
		return ErrClosed
	}
	if !m.unread {
		return ErrPushback
	}
	m.unread = false
	m.pos--
	return nil
}

func (m *Memory) EOF() bool {
	return m.closed || m.pos >= m.size
}

func (m *Memory) Read(p []byte) (int, error) {
	if m.closed {
		return 0, ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	if m.pos >= m.size {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:m.size])
	m.pos += n
	m.unread = false
	return n, nil
}

func (m *Memory) Write(p []byte) (int, error) {
	if m.closed {
		return 0, ErrClosed
	}
	if err := m.reserve(len(p)); err != nil {
		return 0, err
	}
	n := copy(m.buf[m.size:], p)
	m.size += n
	return n, nil
}

func (m *Memory) WriteByte(c byte) error {
	if m.closed {
		return ErrClosed
	}
	if err := m.reserve(1); err != nil {
		return err
	}
	m.buf[m.size] = c
	m.size++
	return nil
}

func (m *Memory) WriteString(s string) (int, error) {
	if m.closed {
		return 0, ErrClosed
	}
	if err := m.reserve(len(s)); err != nil {
		return 0, err
	}
	n := copy(m.buf[m.size:], s)
	m.size += n
	return n, nil
}

func (m *Memory) Printf(format string, args ...any) (int, error) {
	return fmt.Fprintf(m, format, args...)
}

// Close releases the buffer. Content is no longer accessible afterwards.
func (m *Memory) Close() error {
	if m.closed {
		return ErrClosed
	}
	m.closed = true
	m.buf = nil
	m.size = 0
	m.pos = 0
	return nil
}

// reserve makes room for n more bytes, doubling the capacity as needed.
func (m *Memory) reserve(n int) error {
	need := m.size + n
	if need <= len(m.buf) {
		return nil
	}
	grown, err := buffer.Grow(m.buf, m.size, buffer.NextSize(len(m.buf), need))
	if err != nil {
		return err
	}
	m.buf = grown
	return nil
}
