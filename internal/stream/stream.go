// Package stream gives the codec one byte-level interface over files and
// in-memory buffers.
//
// Readers guarantee a single byte of pushback: UnreadByte is valid once after
// every successful ReadByte. A second UnreadByte without an intervening read
// fails with ErrPushback.
package stream

import (
	"errors"
	"io"
)

var (
	// ErrPushback is returned when more than one byte is pushed back.
	ErrPushback = errors.New("stream: only one byte of pushback is supported")

	// ErrClosed is returned by operations on a closed stream.
	ErrClosed = errors.New("stream: closed")

	// ErrReadOnly is returned when writing to a stream opened for reading.
	ErrReadOnly = errors.New("stream: opened read-only")

	// ErrWriteOnly is returned when reading from a stream opened for writing.
	ErrWriteOnly = errors.New("stream: opened write-only")
)

// Reader is the read side of a stream.
type Reader interface {
	io.ByteScanner
	io.Reader

	// EOF reports whether the next ReadByte would return io.EOF.
	EOF() bool
}

// Writer is the write side of a stream.
type Writer interface {
	io.Writer
	io.ByteWriter
	io.StringWriter

	// Printf writes formatted output and returns the number of bytes written.
	Printf(format string, args ...any) (int, error)
}

// Stream is a closable reader and writer. Streams own their backing file or
// buffer and must be closed on every path.
type Stream interface {
	Reader
	Writer
	io.Closer
}

// pushback tracks the last byte handed out so it can be returned once.
type pushback struct {
	last    int // -1 when there is nothing to push back
	pending bool
}

func newPushback() pushback {
	return pushback{last: -1}
}

func (p *pushback) unread() error {
	if p.pending || p.last < 0 {
		return ErrPushback
	}
	p.pending = true
	return nil
}

// take returns the pending byte, if any.
func (p *pushback) take() (byte, bool) {
	if !p.pending {
		return 0, false
	}
	p.pending = false
	return byte(p.last), true
}

func (p *pushback) record(b byte) {
	p.last = int(b)
}

func (p *pushback) reset() {
	p.last = -1
	p.pending = false
}
