package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Planeshifter/llm-context-builder/internal/service/fs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// GitignoreReadError is returned when .gitignore exists but cannot be read.
type GitignoreReadError struct {
	Path  string
	Cause error
}

func (e *GitignoreReadError) Error() string {
	return fmt.Sprintf("failed to read .gitignore at %s: %v", e.Path, e.Cause)
}
func (e *GitignoreReadError) Unwrap() error { return e.Cause }

// fileSystem defines the minimal filesystem interface needed for the matcher.
type fileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// IgnoreMatcher implements gitignore pattern matching using go-git's gitignore matcher.
type IgnoreMatcher struct {
	matcher gitignore.Matcher
}

// NewIgnoreMatcher loads .gitignore from the workspace root.
// A missing .gitignore yields a matcher that never ignores.
func NewIgnoreMatcher(workspaceRoot string, fsys fileSystem) (*IgnoreMatcher, error) {
	if workspaceRoot == "" {
		panic("workspaceRoot is required")
	}
	if fsys == nil {
		panic("fs is required")
	}
	gitignorePath := filepath.Join(workspaceRoot, ".gitignore")

	data, err := fsys.ReadFile(gitignorePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotFound) {
			return &IgnoreMatcher{}, nil
		}
		return nil, &GitignoreReadError{Path: gitignorePath, Cause: err}
	}

	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	if len(patterns) == 0 {
		return &IgnoreMatcher{}, nil
	}

	return &IgnoreMatcher{matcher: gitignore.NewMatcher(patterns)}, nil
}

// ShouldIgnore checks if a workspace-relative path matches any gitignore pattern.
func (m *IgnoreMatcher) ShouldIgnore(relativePath string, isDir bool) bool {
	if m.matcher == nil {
		return false
	}
	segments := splitPath(relativePath)
	if len(segments) == 0 {
		return false
	}
	return m.matcher.Match(segments, isDir)
}

// splitPath splits a path into segments for gitignore matching.
// It normalizes path separators and filters out empty and "." segments.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}

	parts := strings.Split(filepath.ToSlash(path), "/")
	var segments []string
	for _, part := range parts {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}

// NoOpMatcher never ignores anything. It stands in when gitignore support is
// disabled or failed to load.
type NoOpMatcher struct{}

// ShouldIgnore always returns false for NoOpMatcher.
func (NoOpMatcher) ShouldIgnore(string, bool) bool {
	return false
}
