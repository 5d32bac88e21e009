package stream

import (
	"bufio"
	"fmt"
	"os"
)

// Mode selects how a file stream is opened.
type Mode int

const (
	// ModeRead opens an existing file for reading.
	ModeRead Mode = iota

	// ModeWrite creates or truncates a file for writing.
	ModeWrite
)

// File is a stream backed by a buffered file handle.
type File struct {
	f      *os.File
	r      *bufio.Reader
	w      *bufio.Writer
	pb     pushback
	closed bool
}

// OpenFile opens path as a stream. Errors are the *os.PathError returned by
// the os package, so callers see the platform's message.
func OpenFile(path string, mode Mode) (*File, error) {
	var (
		f   *os.File
		err error
	)
	switch mode {
	case ModeWrite:
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	default:
		f, err = os.Open(path)
	}
	if err != nil {
		return nil, err
	}

	s := &File{f: f, pb: newPushback()}
	if mode == ModeWrite {
		s.w = bufio.NewWriter(f)
	} else {
		s.r = bufio.NewReader(f)
	}
	return s, nil
}

// Name returns the path the stream was opened with.
func (s *File) Name() string {
	return s.f.Name()
}

func (s *File) ReadByte() (byte, error) {
	if err := s.readable(); err != nil {
		return 0, err
	}
	if b, ok := s.pb.take(); ok {
		return b, nil
	}
	b, err := s.r.ReadByte()
	if err != nil {
		s.pb.reset()
		return 0, err
	}
	s.pb.record(b)
	return b, nil
}

func (s *File) UnreadByte() error {
	if err := s.readable(); err != nil {
		return err
	}
	return s.pb.unread()
}

func (s *File) EOF() bool {
	if s.readable() != nil {
		return true
	}
	if s.pb.pending {
		return false
	}
	_, err := s.r.Peek(1)
	return err != nil
}

func (s *File) Read(p []byte) (int, error) {
	if err := s.readable(); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	if b, ok := s.pb.take(); ok {
		p[0] = b
		s.pb.reset()
		return 1, nil
	}
	n, err := s.r.Read(p)
	s.pb.reset()
	return n, err
}

func (s *File) Write(p []byte) (int, error) {
	if err := s.writable(); err != nil {
		return 0, err
	}
	return s.w.Write(p)
}

func (s *File) WriteByte(c byte) error {
	if err := s.writable(); err != nil {
		return err
	}
	return s.w.WriteByte(c)
}

func (s *File) WriteString(str string) (int, error) {
	if err := s.writable(); err != nil {
		return 0, err
	}
	return s.w.WriteString(str)
}

func (s *File) Printf(format string, args ...any) (int, error) {
	return fmt.Fprintf(s, format, args...)
}

// Close flushes pending writes and closes the file. The first error wins.
func (s *File) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	var flushErr error
	if s.w != nil {
		flushErr = s.w.Flush()
	}
	closeErr := s.f.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

func (s *File) readable() error {
	if s.closed {
		return ErrClosed
	}
	if s.r == nil {
		return ErrWriteOnly
	}
	return nil
}

func (s *File) writable() error {
	if s.closed {
		return ErrClosed
	}
	if s.w == nil {
		return ErrReadOnly
	}
	return nil
}
