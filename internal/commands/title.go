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
)

func init() {
	Register(&TitleCmd{})
}

// TitleCmd implements the title command.
type TitleCmd struct{}

func (c *TitleCmd) Name() string      { return "title" }
func (c *TitleCmd) Aliases() []string { return nil }
func (c *TitleCmd) Synopsis() string  { return "Print or set the list title" }
func (c *TitleCmd) Usage() string     { return "tasked title [text...]" }
func (c *TitleCmd) NeedsRemote() bool { return false }

func (c *TitleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TitleCmd) Run(ctx context.Context, cfg *config.Config, remotes remote.Factory, args []string, out, errOut io.Writer) int {
	doc, code := loadList(cfg, errOut)
	if doc == nil {
		return code
	}
	defer doc.Destroy()

	if len(args) == 0 {
		fmt.Fprintln(out, doc.Title)
		return exitcode.Success
	}

	if err := doc.SetTitle(strings.Join(args, " ")); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if code := saveList(cfg, doc, errOut); code != exitcode.Success {
		return code
	}
	printOK(cfg, out)
	return exitcode.Success
}
