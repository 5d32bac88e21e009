// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, task number out of range).
	UserError = 1

	// IOError indicates the list file could not be read or written.
	IOError = 2

	// SyncError indicates a sync transport or auth failure.
	SyncError = 3
)
