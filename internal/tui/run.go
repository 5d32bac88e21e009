package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"tasked/internal/config"
	"tasked/internal/remote"
)

// Options configures the editor.
type Options struct {
	// Config names the list file and carries the logger.
	Config *config.Config

	// Remotes opens the list's origin for autosync and push. Sync is
	// unavailable when nil.
	Remotes remote.Factory

	// Version is shown in the status bar and stored in lists without one.
	Version string

	// Input and Output default to the terminal.
	Input  io.Reader
	Output io.Writer
}

// Run edits the list until the user quits. A list that cannot be opened is
// reported on screen and returned as the error once a key is pressed.
func Run(ctx context.Context, opts Options) error {
	model := NewModel(ctx, opts)
	defer model.Close()

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	if _, err := tea.NewProgram(model, progOpts...).Run(); err != nil {
		return err
	}
	return model.Err()
}
