package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"tasked/internal/config"
	"tasked/internal/exitcode"
	"tasked/internal/remote"
	"tasked/internal/todo"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	top    bool
	before int
	done   bool
}

// SetTop makes the task go first (for testing).
func (c *AddCmd) SetTop(top bool) {
	c.top = top
}

// SetBefore makes the task go before task n (for testing).
func (c *AddCmd) SetBefore(n int) {
	c.before = n
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string     { return "tasked add [--top | --before <n>] [--done] <text...>" }
func (c *AddCmd) NeedsRemote() bool { return false }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVarP(&c.top, "top", "t", false, "insert as first task")
	fs.IntVarP(&c.before, "before", "b", 0, "insert before task `n`")
	fs.BoolVarP(&c.done, "done", "d", false, "add the task already done")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, remotes remote.Factory, args []string, out, errOut io.Writer) int {
	// Join args to form the task text
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	}
	if c.top && c.before != 0 {
		fmt.Fprintln(errOut, "error: cannot use both --top and --before")
		return exitcode.UserError
	}

	doc, code := loadList(cfg, errOut)
	if doc == nil {
		return code
	}
	defer doc.Destroy()

	var anchor *todo.Task
	switch {
	case c.top:
		anchor = doc.First()
	case c.before != 0:
		t, err := TaskAt(doc, c.before)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		anchor = t
	}

	var err error
	if anchor != nil {
		_, err = doc.InsertBefore(anchor, text, c.done, 0)
	} else {
		_, err = doc.Append(text, c.done, 0)
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
