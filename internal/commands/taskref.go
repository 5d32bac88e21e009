package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"tasked/internal/todo"
)

// ErrTaskRefRequired indicates no task number was provided.
var ErrTaskRefRequired = errors.New("task number required")

// ParseTaskRef parses a 1-based task number from the first argument.
// Anything that is not all digits is an invalid reference; range checks
// happen later against the loaded list.
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	ref := args[0]
	if !isAllDigits(ref) {
		return 0, fmt.Errorf("invalid task number: %s", ref)
	}
	num, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid task number: %s", ref)
	}
	return num, nil
}

// TaskAt returns task num (1-based) of doc.
func TaskAt(doc *todo.Document, num int) (*todo.Task, error) {
	t := doc.At(num - 1)
	if num < 1 || t == nil {
		return nil, fmt.Errorf("task number out of range: %d", num)
	}
	return t, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
