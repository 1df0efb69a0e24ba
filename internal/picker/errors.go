package picker

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	// ErrNoMatches is returned when a directory toggle under an active search
	// finds no matching descendant file. The selection is unchanged.
	ErrNoMatches = errors.New("no matching files")

	// ErrCancelled is the cause attached to a bulk operation's context when the
	// user aborts it. Bulk calls report cancellation in BulkResult, never as an
	// error.
	ErrCancelled = errors.New("operation cancelled")

	// ErrNotDirectory is returned by ListChildren for a file path.
	ErrNotDirectory = errors.New("not a directory")
)

// -- Errors --

// CountError reports a token oracle failure for one file. The file is left
// unselected.
type CountError struct {
	Path  string
	Cause error
}

func (e *CountError) Error() string {
	return fmt.Sprintf("count tokens for %s: %v", e.Path, e.Cause)
}
func (e *CountError) Unwrap() error { return e.Cause }
