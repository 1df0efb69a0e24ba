package picker

import (
	"context"
	"errors"
	"sort"

	"github.com/Planeshifter/llm-context-builder/internal/service/fs"
	wspath "github.com/Planeshifter/llm-context-builder/internal/service/path"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Progress is called after each file of a bulk operation.
type Progress func(done, total int)

// BulkResult reports the outcome of a select or deselect.
type BulkResult struct {
	// Selected is true when the operation selected, false when it deselected.
	Selected bool
	// Processed counts files handled before completion or cancellation.
	Processed int
	Total     int
	// Cancelled is set when the context was cancelled mid-operation. The
	// selection is then exactly as it was before the call.
	Cancelled bool
}

// Toggle flips the selection of path. Files and directories that are not
// fully selected are selected; fully selected ones are deselected.
//
// Directory operations honour the active search: only matching descendant
// files participate, and ErrNoMatches is returned when there are none.
// Cancelling ctx stops a bulk operation at the next file boundary and rolls
// back the files it touched.
func (s *Session) Toggle(ctx context.Context, path string, isDir bool, progress Progress) (BulkResult, error) {
	abs, err := s.Abs(path)
	if err != nil {
		return BulkResult{}, err
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	mark, present := s.Mark(abs)
	if present && (!isDir || mark.Weight > 0) {
		return s.deselect(ctx, abs, isDir, progress)
	}
	return s.selectPath(ctx, abs, isDir, progress)
}

// Select selects path. Selecting an already selected directory re-scans it.
func (s *Session) Select(ctx context.Context, path string, isDir bool, progress Progress) (BulkResult, error) {
	abs, err := s.Abs(path)
	if err != nil {
		return BulkResult{}, err
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.selectPath(ctx, abs, isDir, progress)
}

// Deselect removes path and, for a directory, everything beneath it.
func (s *Session) Deselect(ctx context.Context, path string, isDir bool, progress Progress) (BulkResult, error) {
	abs, err := s.Abs(path)
	if err != nil {
		return BulkResult{}, err
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.deselect(ctx, abs, isDir, progress)
}

func (s *Session) selectPath(ctx context.Context, path string, isDir bool, progress Progress) (BulkResult, error) {
	v := s.snapshotView()
	var (
		res BulkResult
		err error
	)
	switch {
	case !isDir:
		res, err = s.selectFile(ctx, v, path)
	case v.searching():
		res, err = s.selectMatches(ctx, v, path, progress)
	default:
		res, err = s.selectDir(ctx, v, path, progress)
	}
	if err != nil {
		return res, err
	}
	s.changed()
	return res, nil
}

func (s *Session) deselect(ctx context.Context, path string, isDir bool, progress Progress) (BulkResult, error) {
	v := s.snapshotView()
	var (
		res BulkResult
		err error
	)
	switch {
	case !isDir:
		res = s.deselectFile(v, path)
	case v.searching():
		res, err = s.deselectMatches(ctx, v, path, progress)
	default:
		res = s.deselectDir(ctx, v, path, progress)
	}
	if err != nil {
		return res, err
	}
	s.changed()
	return res, nil
}

// -- Files --

func (s *Session) selectFile(ctx context.Context, v view, path string) (BulkResult, error) {
	n, err := s.countFile(ctx, path, s.Minify())
	if err != nil {
		return BulkResult{Selected: true, Total: 1}, err
	}
	s.mu.Lock()
	s.selected[path] = Mark{Weight: n}
	s.mu.Unlock()

	s.rederive(v, path, false)
	return BulkResult{Selected: true, Processed: 1, Total: 1}, nil
}

func (s *Session) deselectFile(v view, path string) BulkResult {
	s.mu.Lock()
	delete(s.selected, path)
	s.mu.Unlock()

	s.rederive(v, path, false)
	return BulkResult{Processed: 1, Total: 1}
}

// -- Directories --

func (s *Session) selectDir(ctx context.Context, v view, dir string, progress Progress) (BulkResult, error) {
	files, dirs, err := s.collect(ctx, v, dir)
	if err != nil {
		return BulkResult{Selected: true, Cancelled: true}, nil
	}

	res, err := s.addFiles(ctx, dir, files, progress)
	if err != nil || res.Cancelled {
		return res, err
	}

	s.mu.Lock()
	s.selected[dir] = Mark{Weight: 1, Dir: true}
	for _, d := range dirs {
		s.selected[d.path] = Mark{Weight: 1, Dir: true}
	}
	s.mu.Unlock()

	s.rederive(v, dir, true)
	return res, nil
}

func (s *Session) selectMatches(ctx context.Context, v view, dir string, progress Progress) (BulkResult, error) {
	files, err := s.matchingFiles(ctx, v, dir)
	if err != nil {
		return BulkResult{Selected: true, Cancelled: true}, nil
	}
	if len(files) == 0 {
		return BulkResult{Selected: true}, ErrNoMatches
	}

	res, err := s.addFiles(ctx, dir, files, progress)
	if err != nil || res.Cancelled {
		return res, err
	}

	s.mu.Lock()
	s.selected[dir] = Mark{Weight: 1, Dir: true}
	s.mu.Unlock()

	s.rederive(v, dir, true)
	return res, nil
}

func (s *Session) deselectDir(ctx context.Context, v view, dir string, progress Progress) BulkResult {
	var paths []string
	s.mu.RLock()
	for path, mark := range s.selected {
		if !mark.Dir && path != dir && wspath.Within(path, dir) {
			paths = append(paths, path)
		}
	}
	s.mu.RUnlock()
	sort.Strings(paths)

	res := s.removeFiles(ctx, dir, paths, progress)
	if res.Cancelled {
		return res
	}

	s.mu.Lock()
	for path := range s.selected {
		if wspath.Within(path, dir) {
			delete(s.selected, path)
		}
	}
	s.mu.Unlock()

	s.rederive(v, dir, true)
	return res
}

func (s *Session) deselectMatches(ctx context.Context, v view, dir string, progress Progress) (BulkResult, error) {
	files, err := s.matchingFiles(ctx, v, dir)
	if err != nil {
		return BulkResult{Cancelled: true}, nil
	}
	if len(files) == 0 {
		return BulkResult{}, ErrNoMatches
	}

	paths := make([]string, 0, len(files))
	s.mu.RLock()
	for _, f := range files {
		if _, ok := s.selected[f.path]; ok {
			paths = append(paths, f.path)
		}
	}
	s.mu.RUnlock()

	res := s.removeFiles(ctx, dir, paths, progress)
	if res.Cancelled {
		return res, nil
	}

	s.mu.Lock()
	delete(s.selected, dir)
	s.mu.Unlock()

	s.rederive(v, dir, true)
	return res, nil
}

func (s *Session) matchingFiles(ctx context.Context, v view, dir string) ([]walkEntry, error) {
	files, _, err := s.collect(ctx, v, dir)
	if err != nil {
		return nil, err
	}
	matching := files[:0]
	for _, f := range files {
		if v.eligible(f.rel) {
			matching = append(matching, f)
		}
	}
	return matching, nil
}

// -- Bulk apply with scoped rollback --

// journal remembers the prior mark of every path a bulk operation touched.
type journal struct {
	paths []string
	prior map[string]*Mark
}

func newJournal() *journal {
	return &journal{prior: make(map[string]*Mark)}
}

// record must be called with s.mu held, before the change.
func (j *journal) record(sel SelectionMap, path string) {
	if _, seen := j.prior[path]; seen {
		return
	}
	var prior *Mark
	if m, ok := sel[path]; ok {
		prior = &m
	}
	j.paths = append(j.paths, path)
	j.prior[path] = prior
}

func (s *Session) rollback(j *journal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(j.paths) - 1; i >= 0; i-- {
		path := j.paths[i]
		if prior := j.prior[path]; prior != nil {
			s.selected[path] = *prior
		} else {
			delete(s.selected, path)
		}
	}
	s.refreshTotals()
}

// addFiles reads and counts files in batches of maxReads in parallel, then
// applies the weights one file at a time, checking ctx before each.
func (s *Session) addFiles(ctx context.Context, dir string, files []walkEntry, progress Progress) (BulkResult, error) {
	res := BulkResult{Selected: true, Total: len(files)}
	minify := s.Minify()
	j := newJournal()

	s.log.Info("bulk select started", zap.String("path", dir), zap.Int("files", len(files)))

	for start := 0; start < len(files); start += s.maxReads {
		batch := files[start:min(start+s.maxReads, len(files))]
		weights := make([]int, len(batch))
		readable := make([]bool, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		for i, f := range batch {
			g.Go(func() error {
				n, err := s.countFile(gctx, f.path, minify)
				if err != nil {
					if fs.IsSkippable(err) || errors.Is(err, fs.ErrIsDirectory) {
						s.log.Debug("skipping unreadable file", zap.String("path", f.path), zap.Error(err))
						return nil
					}
					return err
				}
				weights[i], readable[i] = n, true
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			s.rollback(j)
			if ctx.Err() != nil {
				res.Cancelled = true
				s.log.Info("bulk select cancelled", zap.String("path", dir), zap.Int("processed", res.Processed))
				return res, nil
			}
			s.log.Error("bulk select failed", zap.String("path", dir), zap.Error(err))
			return res, err
		}

		for i, f := range batch {
			if ctx.Err() != nil {
				s.rollback(j)
				res.Cancelled = true
				s.log.Info("bulk select cancelled", zap.String("path", dir), zap.Int("processed", res.Processed))
				return res, nil
			}
			if readable[i] {
				s.mu.Lock()
				j.record(s.selected, f.path)
				s.selected[f.path] = Mark{Weight: weights[i]}
				s.mu.Unlock()
			}
			res.Processed++
			if progress != nil {
				progress(res.Processed, res.Total)
			}
		}

		s.mu.Lock()
		s.refreshTotals()
		s.mu.Unlock()
	}

	s.log.Info("bulk select finished", zap.String("path", dir), zap.Int("processed", res.Processed))
	return res, nil
}

// removeFiles deletes paths one at a time, checking ctx before each.
func (s *Session) removeFiles(ctx context.Context, dir string, paths []string, progress Progress) BulkResult {
	res := BulkResult{Total: len(paths)}
	j := newJournal()

	s.log.Info("bulk deselect started", zap.String("path", dir), zap.Int("files", len(paths)))

	for _, path := range paths {
		if ctx.Err() != nil {
			s.rollback(j)
			res.Cancelled = true
			s.log.Info("bulk deselect cancelled", zap.String("path", dir), zap.Int("processed", res.Processed))
			return res
		}
		s.mu.Lock()
		j.record(s.selected, path)
		delete(s.selected, path)
		s.mu.Unlock()

		res.Processed++
		if progress != nil {
			progress(res.Processed, res.Total)
		}
	}

	s.log.Info("bulk deselect finished", zap.String("path", dir), zap.Int("processed", res.Processed))
	return res
}
