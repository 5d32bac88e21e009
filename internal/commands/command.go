// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"io"

	flag "github.com/spf13/pflag"

	"tasked/internal/config"
	"tasked/internal/remote"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsRemote returns true if the command talks to the list's origin.
	// Commands like list, add, help and version return false.
	NeedsRemote() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, list file, logger).
	// remotes is nil if NeedsRemote() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, remotes remote.Factory, args []string, out, errOut io.Writer) int
}
