package commands

import (
	"context"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"tasked/internal/config"
	"tasked/internal/exitcode"
	"tasked/internal/remote"
	"tasked/internal/tui"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command, the default when no command is
// given. It runs the full-screen editor on the list file.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Open the list in the editor" }
func (c *EditCmd) Usage() string     { return "tasked [edit] [common flags]" }
func (c *EditCmd) NeedsRemote() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, remotes remote.Factory, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// The screen belongs to the editor, so logs go to the configured file.
	logOut, closeLog, err := cfg.OpenLogFile()
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to open log file: %v\n", err)
		return exitcode.IOError
	}
	defer closeLog()
	cfg.Log = cfg.NewLogger(logOut)

	err = tui.Run(ctx, tui.Options{
		Config:  cfg,
		Remotes: remotes,
		Version: Version,
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.IOError
	}
	return exitcode.Success
}
