package commands

import (
	"context"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"tasked/internal/config"
	"tasked/internal/exitcode"
	"tasked/internal/remote"
)

func init() {
	Register(&MvCmd{})
}

// MvCmd implements the mv command. Moving past either end is a no-op.
type MvCmd struct{}

func (c *MvCmd) Name() string      { return "mv" }
func (c *MvCmd) Aliases() []string { return []string{"move"} }
func (c *MvCmd) Synopsis() string  { return "Move a task up or down" }
func (c *MvCmd) Usage() string     { return "tasked mv <n> up|down" }
func (c *MvCmd) NeedsRemote() bool { return false }

func (c *MvCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MvCmd) Run(ctx context.Context, cfg *config.Config, remotes remote.Factory, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: direction required (up or down)")
		return exitcode.UserError
	}
	dir := args[1]
	if dir != "up" && dir != "down" {
		fmt.Fprintf(errOut, "error: invalid direction: %s\n", dir)
		return exitcode.UserError
	}

	doc, code := loadList(cfg, errOut)
	if doc == nil {
		return code
	}
	defer doc.Destroy()

	task, code := taskArg(doc, args, errOut)
	if task == nil {
		return code
	}

	var err error
	if dir == "up" {
		err = doc.MoveUp(task)
	} else {
		err = doc.MoveDown(task)
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if code := saveList(cfg, doc, errOut); code != exitcode.Success {
		return code
	}
	printOK(cfg, out)
	return exitcode.Success
}
