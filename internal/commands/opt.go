package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"tasked/internal/config"
	"tasked/internal/exitcode"
	"tasked/internal/output"
	"tasked/internal/remote"
)

func init() {
	Register(&OptCmd{})
}

// OptCmd implements the opt command: with no arguments it lists every
// option, with a key it prints that option's value and with a key and value
// it sets the option.
type OptCmd struct {
	unset bool
}

// SetUnset makes the command remove the named option (for testing).
func (c *OptCmd) SetUnset(unset bool) {
	c.unset = unset
}

func (c *OptCmd) Name() string      { return "opt" }
func (c *OptCmd) Aliases() []string { return []string{"option"} }
func (c *OptCmd) Synopsis() string  { return "List, get or set list options" }
func (c *OptCmd) Usage() string     { return "tasked opt [--unset] [key [value...]]" }
func (c *OptCmd) NeedsRemote() bool { return false }

func (c *OptCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVarP(&c.unset, "unset", "u", false, "remove the option")
}

func (c *OptCmd) Run(ctx context.Context, cfg *config.Config, remotes remote.Factory, args []string, out, errOut io.Writer) int {
	if c.unset && len(args) != 1 {
		fmt.Fprintln(errOut, "error: --unset takes exactly one key")
		return exitcode.UserError
	}

	doc, code := loadList(cfg, errOut)
	if doc == nil {
		return code
	}
	defer doc.Destroy()

	switch {
	case len(args) == 0:
		for _, opt := range doc.Options() {
			output.FormatOption(out, opt)
		}
		return exitcode.Success

	case c.unset:
		if !doc.DeleteOption(args[0]) {
			fmt.Fprintf(errOut, "error: option not set: %s\n", args[0])
			return exitcode.UserError
		}

	case len(args) == 1:
		value, found := doc.Option(args[0])
		if !found {
			fmt.Fprintf(errOut, "error: option not set: %s\n", args[0])
			return exitcode.UserError
		}
		fmt.Fprintln(out, value)
		return exitcode.Success

	default:
		if err := doc.SetOption(args[0], strings.Join(args[1:], " ")); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	if code := saveList(cfg, doc, errOut); code != exitcode.Success {
		return code
	}
	printOK(cfg, out)
	return exitcode.Success
}
