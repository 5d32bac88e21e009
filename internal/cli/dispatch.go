// Package cli parses the command line and dispatches to a command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"tasked/internal/commands"
	"tasked/internal/config"
	"tasked/internal/exitcode"
	"tasked/internal/remote"
)

// DefaultCommand runs when no command is named.
const DefaultCommand = "edit"

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	remotes  remote.Factory
}

// NewDispatcher creates a new dispatcher with the given registry and the
// factory used to open list origins.
func NewDispatcher(registry *commands.Registry, remotes remote.Factory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		remotes:  remotes,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No command, or only flags -> the editor
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return d.dispatch(ctx, DefaultCommand, args, out, errOut)
	}

	cmdName := args[0]

	// Look up command
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves
	fs.Usage = func() {}

	// Common flags
	var (
		configDir string
		listFile  string
		quiet     bool
		debug     bool
	)

	fs.StringVar(&configDir, "config", "", "override config directory")
	fs.StringVarP(&listFile, "file", "f", "", "list file")
	fs.BoolVarP(&quiet, "quiet", "q", false, "suppress informational output")
	fs.BoolVar(&debug, "debug", false, "print debug logs to stderr")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	// Parse flags; "--" ends them so task text may start with a dash.
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(out, cmd, fs)
			return exitcode.Success
		}
		// e.g. "unknown flag: --x", "flag needs an argument: --file"
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	// Create config
	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if listFile != "" {
		cfg.ListFile = listFile
	}
	cfg.Log = cfg.NewLogger(errOut)
	cfg.Log.Debug("dispatch", "command", cmd.Name(), "file", cfg.ListFile, "config", cfg.Dir)

	// Only sync commands get the factory
	var remotes remote.Factory
	if cmd.NeedsRemote() {
		remotes = d.remotes
	}

	// Run command
	return cmd.Run(ctx, cfg, remotes, fs.Args(), out, errOut)
}

// usage prints a command's usage line and flags.
func usage(out io.Writer, cmd commands.Command, fs *flag.FlagSet) {
	fmt.Fprintf(out, "Usage: %s\n\n%s\n\nFlags:\n%s", cmd.Usage(), cmd.Synopsis(), fs.FlagUsages())
}
