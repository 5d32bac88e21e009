// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"tasked/internal/codec"
	"tasked/internal/config"
	"tasked/internal/remote"
	"tasked/internal/todo"
)

// FakeTransport is an in-memory remote.Transport. The remote copy is kept in
// serialized form so pushes and pulls go through the codec like a real
// origin would.
type FakeTransport struct {
	mu      sync.Mutex
	content string

	// Origins records every origin the factory was asked to open.
	Origins []string

	// Pulls and Pushes count successful calls.
	Pulls  int
	Pushes int

	// Error injection for testing
	OpenErr error
	PullErr error
	PushErr error
}

// NewFakeTransport creates a FakeTransport whose remote copy is content.
func NewFakeTransport(content string) *FakeTransport {
	return &FakeTransport{content: content}
}

// Factory returns a remote.Factory that always opens f.
func (f *FakeTransport) Factory() remote.Factory {
	return func(ctx context.Context, cfg *config.Config, origin string) (remote.Transport, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.Origins = append(f.Origins, origin)
		if f.OpenErr != nil {
			return nil, f.OpenErr
		}
		return f, nil
	}
}

// Content returns the serialized remote copy.
func (f *FakeTransport) Content() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.content
}

// Pull implements remote.Transport.
func (f *FakeTransport) Pull(ctx context.Context) (*todo.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PullErr != nil {
		return nil, f.PullErr
	}
	f.Pulls++
	return codec.Unmarshal(f.content)
}

// Push implements remote.Transport.
func (f *FakeTransport) Push(ctx context.Context, doc *todo.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PushErr != nil {
		return f.PushErr
	}
	f.Pushes++
	f.content = codec.Marshal(doc)
	return nil
}
