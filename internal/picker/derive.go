package picker

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	wspath "github.com/Planeshifter/llm-context-builder/internal/service/path"
)

// Directory marks are a cached summary of their descendants. A directory is
// Full when every eligible file beneath it is selected (or, with no eligible
// files at all, when it is already marked Full), Partial when any path beneath
// it is present, and absent otherwise.

type tally struct {
	eligible int
	selected int
}

func (t *tally) complete() bool { return t.selected == t.eligible }

// tallySubtree counts eligible and selected files for dir and every visible
// directory beneath it.
func (s *Session) tallySubtree(v view, sel SelectionMap, dir string) map[string]*tally {
	tallies := map[string]*tally{dir: {}}
	_ = s.walk(context.Background(), v, dir, func(e walkEntry) walkAction {
		if e.isDir {
			tallies[e.path] = &tally{}
			return walkContinue
		}
		if !v.eligible(e.rel) {
			return walkContinue
		}
		_, present := sel[e.path]
		for d := filepath.Dir(e.path); ; d = filepath.Dir(d) {
			if t, ok := tallies[d]; ok {
				t.eligible++
				if present {
					t.selected++
				}
			}
			if d == dir || d == filepath.Dir(d) {
				break
			}
		}
		return walkContinue
	})
	return tallies
}

// derivation tracks, for every directory, how many selection entries lie
// strictly beneath it, so marks can be derived bottom-up in one pass.
type derivation struct {
	sel   SelectionMap
	root  string
	under map[string]int
}

func newDerivation(sel SelectionMap, root string) *derivation {
	d := &derivation{sel: sel, root: root, under: make(map[string]int)}
	for path := range sel {
		d.bump(path, 1)
	}
	return d
}

func (d *derivation) bump(path string, delta int) {
	for _, dir := range wspath.Ancestors(path, d.root) {
		d.under[dir] += delta
	}
}

func (d *derivation) present(path string) bool {
	_, ok := d.sel[path]
	return ok
}

// derive sets the mark of dir from its completeness.
func (d *derivation) derive(dir string, complete, hasEligible bool) {
	if complete {
		if hasEligible {
			d.set(dir, Mark{Weight: 1, Dir: true})
			return
		}
		if m, ok := d.sel[dir]; ok && m.Dir && m.Weight > 0 {
			return
		}
	}
	if d.under[dir] > 0 {
		d.set(dir, Mark{Weight: 0, Dir: true})
		return
	}
	if d.present(dir) {
		delete(d.sel, dir)
		d.bump(dir, -1)
	}
}

func (d *derivation) set(dir string, mark Mark) {
	if !d.present(dir) {
		d.bump(dir, 1)
	}
	d.sel[dir] = mark
}

// deriveTallied applies tallies deepest-first so a parent sees its children's
// final marks.
func (d *derivation) deriveTallied(tallies map[string]*tally) {
	dirs := make([]string, 0, len(tallies))
	for dir := range tallies {
		dirs = append(dirs, dir)
	}
	sep := string(filepath.Separator)
	sort.Slice(dirs, func(i, j int) bool {
		di, dj := strings.Count(dirs[i], sep), strings.Count(dirs[j], sep)
		if di != dj {
			return di > dj
		}
		return dirs[i] < dirs[j]
	})
	for _, dir := range dirs {
		t := tallies[dir]
		d.derive(dir, t.complete(), t.eligible > 0)
	}
}

// rederive refreshes the marks of every directory affected by a change at
// path: the directories of its subtree when it is a directory, and its
// ancestors up to the workspace root. Caller holds opMu.
func (s *Session) rederive(v view, path string, isDir bool) {
	sel := s.Selection()
	d := newDerivation(sel, v.root)

	var complete, hasEligible bool
	if isDir {
		tallies := s.tallySubtree(v, sel, path)
		d.deriveTallied(tallies)
		t := tallies[path]
		complete, hasEligible = t.complete(), t.eligible > 0
	} else {
		rel := v.rel(path)
		hasEligible = v.eligible(rel) && !v.hiddenPath(rel, false)
		_, present := sel[path]
		complete = !hasEligible || present
	}

	child := path
	for _, dir := range wspath.Ancestors(path, v.root) {
		if complete {
			skip := child
			_ = s.walk(context.Background(), v, dir, func(e walkEntry) walkAction {
				if e.path == skip {
					return walkSkip
				}
				if e.isDir || !v.eligible(e.rel) {
					return walkContinue
				}
				hasEligible = true
				if _, present := sel[e.path]; !present {
					complete = false
					return walkStop
				}
				return walkContinue
			})
		}
		d.derive(dir, complete, hasEligible)
		child = dir
	}

	s.mu.Lock()
	s.selected = sel
	s.refreshTotals()
	s.mu.Unlock()
}

// Recompute derives every directory mark from scratch over the whole
// workspace and returns the resulting SelectionMap without applying it. After
// any sequence of operations under unchanged filters it equals Selection().
func (s *Session) Recompute() SelectionMap {
	v := s.snapshotView()
	sel := s.Selection()
	newDerivation(sel, v.root).deriveTallied(s.tallySubtree(v, sel, v.root))
	return sel
}
