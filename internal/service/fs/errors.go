package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"syscall"
)

// -- Sentinels --

var (
	ErrNotFound         = errors.New("path not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
	ErrNotDirectory     = errors.New("path is not a directory")
)

// -- Errors --

// PathError records which operation failed on which path. Kind is one of the
// sentinels above when the cause could be classified, nil otherwise.
type PathError struct {
	Op    string
	Path  string
	Kind  error
	Cause error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *PathError) Unwrap() []error {
	if e.Kind == nil {
		return []error{e.Cause}
	}
	return []error{e.Kind, e.Cause}
}

// wrap classifies an os error into the sentinel taxonomy.
func wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &PathError{Op: op, Path: path, Kind: classify(err), Cause: err}
}

func classify(err error) error {
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, iofs.ErrPermission):
		return ErrPermissionDenied
	case errors.Is(err, syscall.EISDIR):
		return ErrIsDirectory
	case errors.Is(err, syscall.ENOTDIR):
		return ErrNotDirectory
	}
	return nil
}

// IsSkippable reports whether err describes a path that vanished or cannot be
// read. Walks treat such paths as absent instead of failing.
func IsSkippable(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrNotDirectory)
}
