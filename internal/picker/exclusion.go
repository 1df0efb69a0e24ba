package picker

import (
	"strings"
)

// IgnoreMatcher is an optional third exclusion rule, typically backed by the
// workspace .gitignore.
type IgnoreMatcher interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}

// Exclusions hides paths from selection and projection alike.
type Exclusions struct {
	// Directories are matched against every path segment, not as prefixes.
	Directories []string
	// FileTypes are matched as case-insensitive suffixes including the dot.
	FileTypes []string
	Ignore    IgnoreMatcher
}

// NewExclusions normalizes the configured lists: items are trimmed, empty
// items dropped and extensions lowercased.
func NewExclusions(dirs, fileTypes []string, ignore IgnoreMatcher) Exclusions {
	return Exclusions{
		Directories: cleanList(dirs, false),
		FileTypes:   cleanList(fileTypes, true),
		Ignore:      ignore,
	}
}

// ParseList splits comma-separated user input into trimmed, non-empty items.
func ParseList(raw string) []string {
	return cleanList(strings.Split(raw, ","), false)
}

func cleanList(items []string, lower bool) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if lower {
			item = strings.ToLower(item)
		}
		out = append(out, item)
	}
	return out
}

// IsExcluded reports whether the workspace-relative path (forward slashes) is
// hidden by any rule. The workspace root itself ("") is never excluded.
func (e Exclusions) IsExcluded(relativePath string, isDir bool) bool {
	if relativePath == "" {
		return false
	}

	if len(e.Directories) > 0 {
		for _, segment := range strings.Split(relativePath, "/") {
			for _, dir := range e.Directories {
				if segment == dir {
					return true
				}
			}
		}
	}

	if len(e.FileTypes) > 0 {
		lower := strings.ToLower(relativePath)
		for _, ext := range e.FileTypes {
			if strings.HasSuffix(lower, ext) {
				return true
			}
		}
	}

	return e.Ignore != nil && e.Ignore.ShouldIgnore(relativePath, isDir)
}
