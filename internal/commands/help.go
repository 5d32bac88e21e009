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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command. Commands are listed from the
// registry it was given, or DefaultRegistry.
type HelpCmd struct {
	registry *Registry
}

// NewHelpCmd returns a help command listing the commands of r.
func NewHelpCmd(r *Registry) *HelpCmd {
	return &HelpCmd{registry: r}
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasked help" }
func (c *HelpCmd) NeedsRemote() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, remotes remote.Factory, args []string, out, errOut io.Writer) int {
	reg := c.registry
	if reg == nil {
		reg = DefaultRegistry
	}

	fmt.Fprint(out, helpText)
	fmt.Fprintln(out, "\nCommands:")
	for _, cmd := range reg.All() {
		name := cmd.Name()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			name += " (" + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(out, "  %-20s %s\n", name, cmd.Synopsis())
	}
	return exitcode.Success
}

const helpText = `Usage:
  tasked [common flags]                          Open the list in the editor
  tasked edit [common flags]
  tasked list [common flags] [--open]            Print the list (alias: ls)
  tasked add [common flags] [--top | --before <n>] [--done] <text...>
  tasked done [common flags] <n>                 Toggle a task's done flag
  tasked rm [common flags] <n>
  tasked mv [common flags] <n> up|down
  tasked title [common flags] [text...]
  tasked opt [common flags] [--unset] [key [value...]]
  tasked pull [common flags]                     Replace the list with its origin's copy
  tasked push [common flags]                     Overwrite the origin's copy
  tasked login [common flags] [--port <n>]       Authenticate with Google Tasks
  tasked logout [common flags]
  tasked help
  tasked version

Common flags:
  -f, --file <path>  List file (default: todo.txt, or "file" in config.toml)
  --config <dir>     Override config directory
  -q, --quiet        Suppress informational output
  --debug            Print debug logs to stderr

Origins:
  http://host/path   pulled with GET, pushed with PUT
  gtasks:<list>      a Google Tasks list (empty name: the default list)
`
