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
	Register(&PullCmd{})
	Register(&PushCmd{})
}

// PullCmd implements the pull command. The remote copy replaces the local
// list; local options the remote lacks, such as origin, are kept.
type PullCmd struct{}

func (c *PullCmd) Name() string      { return "pull" }
func (c *PullCmd) Aliases() []string { return nil }
func (c *PullCmd) Synopsis() string  { return "Replace the list with its origin's copy" }
func (c *PullCmd) Usage() string     { return "tasked pull" }
func (c *PullCmd) NeedsRemote() bool { return true }

func (c *PullCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PullCmd) Run(ctx context.Context, cfg *config.Config, remotes remote.Factory, args []string, out, errOut io.Writer) int {
	doc, code := loadList(cfg, errOut)
	if doc == nil {
		return code
	}
	defer doc.Destroy()

	pulled, err := remote.Pull(ctx, remotes, cfg, doc)
	if err != nil {
		return syncFailed(errOut, err)
	}
	defer pulled.Destroy()

	if code := saveList(cfg, pulled, errOut); code != exitcode.Success {
		return code
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "pulled %d task(s)\n", pulled.Len())
	}
	return exitcode.Success
}

// PushCmd implements the push command. The origin's copy is overwritten.
type PushCmd struct{}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return []string{"sync"} }
func (c *PushCmd) Synopsis() string  { return "Overwrite the origin's copy with the list" }
func (c *PushCmd) Usage() string     { return "tasked push" }
func (c *PushCmd) NeedsRemote() bool { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, remotes remote.Factory, args []string, out, errOut io.Writer) int {
	doc, code := loadList(cfg, errOut)
	if doc == nil {
		return code
	}
	defer doc.Destroy()

	if err := remote.Push(ctx, remotes, cfg, doc); err != nil {
		return syncFailed(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "pushed %d task(s)\n", doc.Len())
	}
	return exitcode.Success
}
