// Package remote defines the sync transport used to pull a task list from,
// and push it to, the location named by the list's "origin" option.
// Commands and the editor only see Transport; the backends live in
// subpackages.
package remote

import (
	"context"
	"errors"
	"strings"

	"tasked/internal/config"
	"tasked/internal/todo"
)

var (
	// ErrTransport marks network and server failures.
	ErrTransport = errors.New("sync failed")

	// ErrAuth marks missing or rejected credentials.
	ErrAuth = errors.New("not authorized")

	// ErrNoOrigin is returned when the list has no origin option.
	ErrNoOrigin = errors.New("no origin set (run: tasked opt origin <url>)")
)

// Transport moves a whole document to and from one origin. A failure is
// reported once and never retried.
type Transport interface {
	// Pull fetches the remote document.
	Pull(ctx context.Context) (*todo.Document, error)

	// Push replaces the remote document with doc.
	Push(ctx context.Context, doc *todo.Document) error
}

// Factory opens the transport serving origin.
type Factory func(ctx context.Context, cfg *config.Config, origin string) (Transport, error)

// GoogleTasksPrefix selects the Google Tasks backend. The rest of the origin
// names the list; an empty name means the default list.
const GoogleTasksPrefix = "gtasks:"

// GoogleTasksList reports whether origin names a Google Tasks list and
// returns the list name.
func GoogleTasksList(origin string) (string, bool) {
	if !strings.HasPrefix(origin, GoogleTasksPrefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(origin, GoogleTasksPrefix)), true
}

// Origin returns doc's origin option.
func Origin(doc *todo.Document) (string, error) {
	origin, ok := doc.Option(todo.OptionOrigin)
	if !ok || strings.TrimSpace(origin) == "" {
		return "", ErrNoOrigin
	}
	return origin, nil
}

// Pull fetches the document stored at doc's origin. The pulled document
// replaces the local title and tasks; local options the remote copy lacks,
// such as the origin itself, are carried over.
func Pull(ctx context.Context, open Factory, cfg *config.Config, doc *todo.Document) (*todo.Document, error) {
	origin, err := Origin(doc)
	if err != nil {
		return nil, err
	}
	t, err := open(ctx, cfg, origin)
	if err != nil {
		return nil, err
	}
	pulled, err := t.Pull(ctx)
	if err != nil {
		return nil, err
	}
	for _, opt := range doc.Options() {
		if _, ok := pulled.Option(opt.Key); !ok {
			if err := pulled.SetOption(opt.Key, opt.Value); err != nil {
				return nil, err
			}
		}
	}
	return pulled, nil
}

// Push uploads doc to its origin.
func Push(ctx context.Context, open Factory, cfg *config.Config, doc *todo.Document) error {
	origin, err := Origin(doc)
	if err != nil {
		return err
	}
	t, err := open(ctx, cfg, origin)
	if err != nil {
		return err
	}
	return t.Push(ctx, doc)
}
