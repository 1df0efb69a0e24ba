// Package picker is the selection and tree-state engine: a tri-state
// selection over the workspace tree, per-directory token totals, exclusion
// and search filtering, and the sorted projection the UI renders.
package picker

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Planeshifter/llm-context-builder/internal/content"
	"github.com/Planeshifter/llm-context-builder/internal/service/fs"
	wspath "github.com/Planeshifter/llm-context-builder/internal/service/path"
	"github.com/Planeshifter/llm-context-builder/internal/tokenizer"
	"go.uber.org/zap"
)

// FileSystem is the filesystem adapter the engine reads through.
type FileSystem interface {
	ListEntries(dir string) ([]fs.Entry, error)
	ReadFile(path string) ([]byte, error)
	// Canonical resolves symlinks; walks use it to break loops.
	Canonical(path string) string
}

// Preparer turns raw file bytes into the text that is counted and exported.
type Preparer interface {
	Prepare(path string, raw []byte, minify bool) content.Prepared
}

// DefaultMaxConcurrentReads bounds parallel reads in a bulk select.
const DefaultMaxConcurrentReads = 8

// Options configures a Session.
type Options struct {
	Root       string
	FS         FileSystem
	Counter    tokenizer.Counter
	Preparer   Preparer
	Exclusions Exclusions
	Minify     bool
	ShowHidden bool

	MaxConcurrentReads int
	Logger             *zap.Logger

	// OnChange is called after every mutation of the selection, search terms,
	// exclusions or expanded set. It must not block.
	OnChange func()
}

// Session owns the selection state of one workspace.
type Session struct {
	resolver *wspath.Resolver
	fs       FileSystem
	counter  tokenizer.Counter
	preparer Preparer
	log      *zap.Logger
	onChange func()
	maxReads int

	// opMu serializes mutating operations end to end.
	opMu sync.Mutex

	mu         sync.RWMutex
	selected   SelectionMap
	totals     map[string]int
	expanded   map[string]bool
	exclusions Exclusions
	terms      []string
	minify     bool
	showHidden bool
}

// NewSession creates a session with an empty selection.
func NewSession(opts Options) (*Session, error) {
	if opts.Root == "" || !filepath.IsAbs(opts.Root) {
		return nil, fmt.Errorf("%w: %q", wspath.ErrWorkspaceRootNotSet, opts.Root)
	}
	if opts.FS == nil || opts.Counter == nil {
		return nil, fmt.Errorf("picker: filesystem and token counter are required")
	}
	if opts.Preparer == nil {
		opts.Preparer = content.NewPreparer(nil)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxConcurrentReads <= 0 {
		opts.MaxConcurrentReads = DefaultMaxConcurrentReads
	}

	return &Session{
		resolver:   wspath.NewResolver(opts.Root),
		fs:         opts.FS,
		counter:    opts.Counter,
		preparer:   opts.Preparer,
		log:        opts.Logger,
		onChange:   opts.OnChange,
		maxReads:   opts.MaxConcurrentReads,
		selected:   make(SelectionMap),
		totals:     make(map[string]int),
		expanded:   make(map[string]bool),
		exclusions: opts.Exclusions,
		minify:     opts.Minify,
		showHidden: opts.ShowHidden,
	}, nil
}

// Root returns the workspace root.
func (s *Session) Root() string {
	return s.resolver.Root()
}

// Abs resolves a workspace-relative or absolute path to a normalized absolute
// path inside the workspace.
func (s *Session) Abs(path string) (string, error) {
	return s.resolver.Abs(path)
}

// Rel returns path relative to the workspace root with forward slashes.
func (s *Session) Rel(path string) (string, error) {
	return s.resolver.Rel(path)
}

// -- Selection queries --

// IsSelected reports whether path is present with a positive weight.
func (s *Session) IsSelected(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mark, ok := s.selected[path]
	return ok && mark.Weight > 0
}

// Mark returns the selection entry for path.
func (s *Session) Mark(path string) (Mark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mark, ok := s.selected[path]
	return mark, ok
}

// State returns the tri-state of path. A present file is always Full, even
// with zero tokens.
func (s *Session) State(path string) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stateOf(s.selected, path)
}

func stateOf(selected SelectionMap, path string) State {
	mark, ok := selected[path]
	switch {
	case !ok:
		return Unselected
	case !mark.Dir || mark.Weight > 0:
		return Full
	default:
		return Partial
	}
}

// Selection returns a copy of the SelectionMap.
func (s *Session) Selection() SelectionMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected.Clone()
}

// SelectedFiles returns the selected file paths in lexicographic order.
func (s *Session) SelectedFiles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	files := make([]string, 0, len(s.selected))
	for path, mark := range s.selected {
		if !mark.Dir {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files
}

// TotalTokens returns the workspace root's total, or 0.
func (s *Session) TotalTokens() int {
	return s.DirectoryTotal(s.Root())
}

// DirectoryTotal returns the summed weight of selected files beneath dir.
func (s *Session) DirectoryTotal(dir string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totals[dir]
}

// DeselectAll clears the selection and returns the number of removed entries.
func (s *Session) DeselectAll() int {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	n := len(s.selected)
	s.selected = make(SelectionMap)
	s.totals = make(map[string]int)
	s.mu.Unlock()

	s.log.Info("selection cleared", zap.Int("entries", n))
	s.changed()
	return n
}

// -- Settings --

// SearchTerms returns the active search terms.
func (s *Session) SearchTerms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.terms...)
}

// SetSearchTerms replaces the search filter from comma-separated input.
// Selections are kept.
func (s *Session) SetSearchTerms(raw string) {
	terms := ParseSearchTerms(raw)
	s.mu.Lock()
	s.terms = terms
	s.mu.Unlock()
	s.changed()
}

// Exclusions returns the active exclusion rules.
func (s *Session) Exclusions() Exclusions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exclusions
}

// SetExclusions replaces the directory and extension lists. The ignore
// matcher is kept. Selections are kept.
func (s *Session) SetExclusions(dirs, fileTypes []string) {
	s.mu.Lock()
	s.exclusions = NewExclusions(dirs, fileTypes, s.exclusions.Ignore)
	s.mu.Unlock()
	s.changed()
}

// Minify reports whether newly selected files are minified before counting.
func (s *Session) Minify() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minify
}

// SetMinify affects files selected afterwards; existing weights are kept.
func (s *Session) SetMinify(enabled bool) {
	s.mu.Lock()
	s.minify = enabled
	s.mu.Unlock()
	s.changed()
}

// -- Expansion --

// IsExpanded reports whether dir is expanded in the view.
func (s *Session) IsExpanded(dir string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expanded[dir]
}

// SetExpanded expands or collapses dir.
func (s *Session) SetExpanded(dir string, expanded bool) {
	s.mu.Lock()
	if expanded {
		s.expanded[dir] = true
	} else {
		delete(s.expanded, dir)
	}
	s.mu.Unlock()
	s.changed()
}

// ToggleExpanded flips dir's expansion and returns the new state.
func (s *Session) ToggleExpanded(dir string) bool {
	expanded := !s.IsExpanded(dir)
	s.SetExpanded(dir, expanded)
	return expanded
}

// -- Internals --

// view is an immutable snapshot of the filter settings for one operation.
type view struct {
	root       string
	exclusions Exclusions
	terms      []string
	showHidden bool
}

func (s *Session) snapshotView() view {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view{
		root:       s.resolver.Root(),
		exclusions: s.exclusions,
		terms:      s.terms,
		showHidden: s.showHidden,
	}
}

func (v view) searching() bool { return len(v.terms) > 0 }

// rel is Rel without the bounds check; path is always inside root here.
func (v view) rel(path string) string {
	if path == v.root {
		return ""
	}
	r, err := filepath.Rel(v.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(r)
}

func (v view) hidden(name string, rel string, isDir bool) bool {
	if !v.showHidden && strings.HasPrefix(name, ".") {
		return true
	}
	return v.exclusions.IsExcluded(rel, isDir)
}

// hiddenPath is hidden applied to every segment of rel, for paths that did
// not come from a walk.
func (v view) hiddenPath(rel string, isDir bool) bool {
	if !v.showHidden {
		for _, segment := range strings.Split(rel, "/") {
			if strings.HasPrefix(segment, ".") {
				return true
			}
		}
	}
	return v.exclusions.IsExcluded(rel, isDir)
}

func (v view) eligible(rel string) bool {
	return Matches(rel, v.terms)
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// refreshTotals recomputes DirectoryTokenCounts from scratch. Caller holds mu.
func (s *Session) refreshTotals() {
	s.totals = ComputeDirectoryTotals(s.selected, s.resolver.Root())
}

func (s *Session) countFile(ctx context.Context, path string, minify bool) (int, error) {
	raw, err := s.fs.ReadFile(path)
	if err != nil {
		return 0, err
	}
	prepared := s.preparer.Prepare(path, raw, minify)
	if prepared.Warning != nil {
		s.log.Warn("minification failed, counting original", zap.String("path", path), zap.Error(prepared.Warning))
	}
	n, err := s.counter.CountTokens(ctx, prepared.Text)
	if err != nil {
		return 0, &CountError{Path: path, Cause: err}
	}
	return n, nil
}
