package picker

import (
	"context"
	"path/filepath"

	"github.com/Planeshifter/llm-context-builder/internal/service/fs"
	"go.uber.org/zap"
)

// walkAction tells walk how to proceed after a visit.
type walkAction int

const (
	walkContinue walkAction = iota
	// walkSkip visits a directory without descending into it.
	walkSkip
	walkStop
)

// walkEntry is one visible node found beneath the walk root.
type walkEntry struct {
	path  string
	rel   string
	isDir bool
}

// walk visits every non-excluded descendant of dir, breadth-first, using an
// explicit worklist. Unreadable directories are treated as empty and symlink
// loops are entered once.
func (s *Session) walk(ctx context.Context, v view, dir string, visit func(walkEntry) walkAction) error {
	seen := map[string]bool{s.fs.Canonical(dir): true}
	queue := []string{dir}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		current := queue[0]
		queue = queue[1:]

		entries, err := s.fs.ListEntries(current)
		if err != nil {
			if !fs.IsSkippable(err) {
				s.log.Warn("list failed", zap.String("path", current), zap.Error(err))
			} else {
				s.log.Debug("skipping unreadable directory", zap.String("path", current), zap.Error(err))
			}
			continue
		}

		for _, entry := range entries {
			path := filepath.Join(current, entry.Name)
			rel := v.rel(path)
			if v.hidden(entry.Name, rel, entry.IsDir) {
				continue
			}
			if entry.IsDir {
				canonical := s.fs.Canonical(path)
				if seen[canonical] {
					continue
				}
				seen[canonical] = true
			}
			switch visit(walkEntry{path: path, rel: rel, isDir: entry.IsDir}) {
			case walkStop:
				return nil
			case walkContinue:
				if entry.IsDir {
					queue = append(queue, path)
				}
			}
		}
	}
	return nil
}

// collect returns every visible descendant of dir.
func (s *Session) collect(ctx context.Context, v view, dir string) (files, dirs []walkEntry, err error) {
	err = s.walk(ctx, v, dir, func(e walkEntry) walkAction {
		if e.isDir {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
		return walkContinue
	})
	return files, dirs, err
}

// hasMatchingDescendant reports whether any visible descendant of dir matches
// the search terms.
func (s *Session) hasMatchingDescendant(v view, dir string) bool {
	found := false
	_ = s.walk(context.Background(), v, dir, func(e walkEntry) walkAction {
		if v.eligible(e.rel) {
			found = true
			return walkStop
		}
		return walkContinue
	})
	return found
}
