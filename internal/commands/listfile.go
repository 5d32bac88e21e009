package commands

import (
	"errors"
	"fmt"
	"io"

	"tasked/internal/codec"
	"tasked/internal/config"
	"tasked/internal/exitcode"
	"tasked/internal/remote"
	"tasked/internal/todo"
)

// loadList reads cfg.ListFile, creating it when missing. On failure the
// error is printed and a non-zero exit code returned.
func loadList(cfg *config.Config, errOut io.Writer) (*todo.Document, int) {
	doc, err := codec.Load(cfg.ListFile)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, exitcode.IOError
	}
	cfg.Log.Debug("loaded list", "file", cfg.ListFile, "tasks", doc.Len())
	return doc, exitcode.Success
}

// saveList writes doc back to cfg.ListFile.
func saveList(cfg *config.Config, doc *todo.Document, errOut io.Writer) int {
	err := codec.SaveWith(doc, cfg.ListFile, codec.SaveOptions{Direct: cfg.DirectSave})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.IOError
	}
	cfg.Log.Debug("saved list", "file", cfg.ListFile, "direct", cfg.DirectSave)
	return exitcode.Success
}

// syncFailed reports a sync error and maps it to an exit code.
func syncFailed(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	if errors.Is(err, remote.ErrNoOrigin) {
		return exitcode.UserError
	}
	return exitcode.SyncError
}

// printOK prints the confirmation line unless quiet.
func printOK(cfg *config.Config, out io.Writer) {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
}

// taskArg resolves the task named by args[0] in doc, printing the error on
// failure.
func taskArg(doc *todo.Document, args []string, errOut io.Writer) (*todo.Task, int) {
	num, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, exitcode.UserError
	}
	t, err := TaskAt(doc, num)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, exitcode.UserError
	}
	return t, exitcode.Success
}
