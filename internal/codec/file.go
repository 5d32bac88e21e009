package codec

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/natefinch/atomic"

	"tasked/internal/stream"
	"tasked/internal/todo"
)

// SaveOptions controls how Save commits a file.
type SaveOptions struct {
	// Direct truncates and rewrites the file in place through a file stream
	// instead of writing a temporary file and renaming it over the target.
	Direct bool
}

// Load reads the document stored at path. A missing file is created empty
// and loaded, which yields a document with an empty title.
func Load(path string) (*todo.Document, error) {
	doc, err := loadFile(path)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return doc, err
	}
	if err := touch(path); err != nil {
		return nil, err
	}
	return loadFile(path)
}

func loadFile(path string) (*todo.Document, error) {
	f, err := stream.OpenFile(path, stream.ModeRead)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}

func touch(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return err
	}
	return f.Close()
}

// Save writes doc to path, replacing any previous content.
func Save(doc *todo.Document, path string) error {
	return SaveWith(doc, path, SaveOptions{})
}

// SaveWith writes doc to path using opts.
func SaveWith(doc *todo.Document, path string, opts SaveOptions) error {
	if opts.Direct {
		return saveDirect(doc, path)
	}

	m := stream.NewBuffer(initialSize)
	defer m.Close()
	if err := Serialize(doc, m); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, m); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func saveDirect(doc *todo.Document, path string) error {
	f, err := stream.OpenFile(path, stream.ModeWrite)
	if err != nil {
		return err
	}
	if err := Serialize(doc, f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
