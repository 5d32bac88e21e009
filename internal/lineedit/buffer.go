// Package lineedit implements the in-place text editor used for task text
// and list titles: a cursor-addressable byte buffer, a key-driven session
// around it, and a soft-wrapping renderer.
package lineedit

import (
	"unicode/utf8"

	"tasked/internal/buffer"
)

// Buffer is editable text with a cursor ("dot"). The dot is a byte offset
// that always sits on a rune boundary.
type Buffer struct {
	data     []byte
	size     int
	dot      int
	rowWidth int
}

// New returns a buffer holding seed with the dot at its end. Storage is sized
// in whole rows of lineWidth bytes and grows one row at a time.
func New(seed string, lineWidth int) *Buffer {
	if lineWidth < 1 {
		lineWidth = 1
	}
	rows := len(seed)/lineWidth + 1
	b := &Buffer{data: make([]byte, rows*lineWidth), rowWidth: lineWidth}
	b.size = copy(b.data, seed)
	b.dot = b.size
	return b
}

func (b *Buffer) String() string { return string(b.data[:b.size]) }

// Dot returns the cursor byte offset.
func (b *Buffer) Dot() int { return b.dot }

// Len returns the content length in bytes.
func (b *Buffer) Len() int { return b.size }

// Cap returns the allocated storage in bytes.
func (b *Buffer) Cap() int { return len(b.data) }

// Insert inserts r at the dot and advances the dot past it.
func (b *Buffer) Insert(r rune) error {
	var enc [utf8.UTFMax]byte
	n := utf8.EncodeRune(enc[:], r)
	return b.insert(enc[:n])
}

// InsertString inserts s at the dot and advances the dot past it.
func (b *Buffer) InsertString(s string) error {
	return b.insert([]byte(s))
}

func (b *Buffer) insert(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if need := b.size + len(p); need > len(b.data) {
		grown, err := buffer.Grow(b.data, b.size, buffer.NextStep(len(b.data), need, b.rowWidth))
		if err != nil {
			return err
		}
		b.data = grown
	}
	copy(b.data[b.dot+len(p):], b.data[b.dot:b.size])
	copy(b.data[b.dot:], p)
	b.size += len(p)
	b.dot += len(p)
	return nil
}

// Backspace deletes the rune before the dot. It reports whether anything
// was deleted.
func (b *Buffer) Backspace() bool {
	if b.dot == 0 {
		return false
	}
	_, w := utf8.DecodeLastRune(b.data[:b.dot])
	copy(b.data[b.dot-w:], b.data[b.dot:b.size])
	b.size -= w
	b.dot -= w
	return true
}

// Delete deletes the rune at the dot. It reports whether anything was
// deleted.
func (b *Buffer) Delete() bool {
	if b.dot >= b.size {
		return false
	}
	_, w := utf8.DecodeRune(b.data[b.dot:b.size])
	copy(b.data[b.dot:], b.data[b.dot+w:b.size])
	b.size -= w
	return true
}

// Left moves the dot back one rune.
func (b *Buffer) Left() {
	_, w := utf8.DecodeLastRune(b.data[:b.dot])
	b.dot -= w
}

// Right moves the dot forward one rune.
func (b *Buffer) Right() {
	_, w := utf8.DecodeRune(b.data[b.dot:b.size])
	b.dot += w
}

func (b *Buffer) Home() { b.dot = 0 }

func (b *Buffer) End() { b.dot = b.size }
