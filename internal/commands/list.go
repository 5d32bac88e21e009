package commands

import (
	"context"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"tasked/internal/config"
	"tasked/internal/exitcode"
	"tasked/internal/output"
	"tasked/internal/remote"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct {
	open bool
}

// SetOpen restricts output to tasks not yet done (for testing).
func (c *ListCmd) SetOpen(open bool) {
	c.open = open
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "Print the task list" }
func (c *ListCmd) Usage() string     { return "tasked list [--open]" }
func (c *ListCmd) NeedsRemote() bool { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVarP(&c.open, "open", "o", false, "only tasks not yet done")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, remotes remote.Factory, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	doc, code := loadList(cfg, errOut)
	if doc == nil {
		return code
	}
	defer doc.Destroy()

	output.FormatTitle(out, doc.Title)

	// Numbers are list positions, so they stay stable with --open.
	shown := 0
	for i, t := range doc.Tasks() {
		if c.open && t.Done {
			continue
		}
		output.FormatTask(out, i+1, t)
		shown++
	}

	if shown == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
