// Package path normalizes workspace paths. Every path handed to the picker is
// absolute and cleaned, so string equality is path identity.
package path

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolver provides path resolution within a workspace boundary.
type Resolver struct {
	workspaceRoot string
}

// NewResolver creates a new path resolver for the given workspace.
func NewResolver(workspaceRoot string) *Resolver {
	return &Resolver{
		workspaceRoot: filepath.Clean(workspaceRoot),
	}
}

// Root returns the workspace root the resolver was built with.
func (r *Resolver) Root() string {
	return r.workspaceRoot
}

// CanonicaliseRoot canonicalises a workspace root path by making it absolute and resolving symlinks.
// Returns an error if the path doesn't exist or isn't a directory.
func CanonicaliseRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &WorkspaceRootError{Root: root, Cause: err}
	}

	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", &WorkspaceRootError{Root: absRoot, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &WorkspaceRootError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &WorkspaceRootError{Root: resolved, Cause: fmt.Errorf("%w: %s", ErrNotADirectory, resolved)}
	}
	return resolved, nil
}

// Abs resolves any path to absolute and validates it is within the workspace boundary.
func (r *Resolver) Abs(path string) (string, error) {
	if r.workspaceRoot == "" || r.workspaceRoot == "." {
		return "", ErrWorkspaceRootNotSet
	}

	var abs string
	if filepath.IsAbs(path) {
		abs = filepath.Clean(path)
	} else {
		abs = filepath.Clean(filepath.Join(r.workspaceRoot, path))
	}

	if !Within(abs, r.workspaceRoot) {
		return "", ErrOutsideWorkspace
	}
	return abs, nil
}

// Rel returns path relative to the workspace root using forward slashes.
// The root itself maps to "".
func (r *Resolver) Rel(path string) (string, error) {
	abs, err := r.Abs(path)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(r.workspaceRoot, abs)
	if err != nil {
		return "", ErrOutsideWorkspace
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

// Within reports whether path equals dir or lies beneath it.
// Both arguments must already be cleaned.
func Within(path, dir string) bool {
	if path == dir {
		return true
	}
	prefix := dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// Ancestors returns the strict ancestors of path from its parent up to and
// including root. A path outside root yields nil.
func Ancestors(path, root string) []string {
	if path == root || !Within(path, root) {
		return nil
	}
	var dirs []string
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		dirs = append(dirs, dir)
		if dir == root || dir == filepath.Dir(dir) {
			break
		}
	}
	return dirs
}
