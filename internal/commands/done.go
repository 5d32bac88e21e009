package commands

import (
	"context"
	"io"

	flag "github.com/spf13/pflag"

	"tasked/internal/config"
	"tasked/internal/exitcode"
	"tasked/internal/remote"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It toggles, so running it twice
// reopens the task.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's done flag" }
func (c *DoneCmd) Usage() string     { return "tasked done <n>" }
func (c *DoneCmd) NeedsRemote() bool { return false }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, remotes remote.Factory, args []string, out, errOut io.Writer) int {
	doc, code := loadList(cfg, errOut)
	if doc == nil {
		return code
	}
	defer doc.Destroy()

	task, code := taskArg(doc, args, errOut)
	if task == nil {
		return code
	}
	task.Toggle()

	if code := saveList(cfg, doc, errOut); code != exitcode.Success {
		return code
	}
	printOK(cfg, out)
	return exitcode.Success
}
