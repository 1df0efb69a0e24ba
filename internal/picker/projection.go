package picker

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/Planeshifter/llm-context-builder/internal/service/fs"
)

// State is the tri-state selection of a node.
type State int

const (
	Unselected State = iota
	Partial
	Full
)

func (s State) String() string {
	switch s {
	case Partial:
		return "partial"
	case Full:
		return "full"
	default:
		return "unselected"
	}
}

// Node is one entry of the tree projection.
type Node struct {
	Path  string
	Rel   string
	Name  string
	IsDir bool
	State State
	// Tokens is the file weight, or the directory's total of selected files.
	Tokens int
}

// Label is the display text; the token annotation is not part of the sort key.
func (n Node) Label() string {
	if n.Tokens > 0 {
		return fmt.Sprintf("%s (%d tokens)", n.Name, n.Tokens)
	}
	return n.Name
}

// Row is a Node placed in the flattened, expand-aware view.
type Row struct {
	Node
	Depth    int
	Expanded bool
}

// ListChildren lists the visible children of dir (the workspace root when
// dir is empty): excluded entries are dropped, the search filter keeps files
// that match and directories that match or contain a match, and the result is
// sorted directories first, then by name.
func (s *Session) ListChildren(dir string) ([]Node, error) {
	if dir == "" {
		dir = s.Root()
	}
	abs, err := s.Abs(dir)
	if err != nil {
		return nil, err
	}
	v := s.snapshotView()
	return s.listChildren(v, abs)
}

func (s *Session) listChildren(v view, dir string) ([]Node, error) {
	entries, err := s.fs.ListEntries(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotDirectory) {
			return nil, ErrNotDirectory
		}
		return nil, err
	}

	nodes := make([]Node, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name)
		rel := v.rel(path)
		if v.hidden(entry.Name, rel, entry.IsDir) {
			continue
		}
		if v.searching() && !v.eligible(rel) {
			if !entry.IsDir || !s.hasMatchingDescendant(v, path) {
				continue
			}
		}
		nodes = append(nodes, Node{Path: path, Rel: rel, Name: entry.Name, IsDir: entry.IsDir})
	}

	s.mu.RLock()
	for i := range nodes {
		n := &nodes[i]
		n.State = stateOf(s.selected, n.Path)
		if n.IsDir {
			n.Tokens = s.totals[n.Path]
		} else {
			n.Tokens = s.selected[n.Path].Weight
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].IsDir != nodes[j].IsDir {
			return nodes[i].IsDir
		}
		return nodes[i].Name < nodes[j].Name
	})
	return nodes, nil
}

// VisibleRows flattens the projection depth-first, descending into expanded
// directories. While a search is active every listed directory is shown
// expanded; the expanded set itself is not changed.
func (s *Session) VisibleRows() []Row {
	v := s.snapshotView()

	s.mu.RLock()
	expanded := make(map[string]bool, len(s.expanded))
	for dir := range s.expanded {
		expanded[dir] = true
	}
	s.mu.RUnlock()

	var stack []Row
	push := func(dir string, depth int) {
		nodes, err := s.listChildren(v, dir)
		if err != nil {
			return
		}
		for i := len(nodes) - 1; i >= 0; i-- {
			n := nodes[i]
			stack = append(stack, Row{Node: n, Depth: depth, Expanded: n.IsDir && (expanded[n.Path] || v.searching())})
		}
	}

	seen := map[string]bool{s.fs.Canonical(v.root): true}
	push(v.root, 0)

	var rows []Row
	for len(stack) > 0 {
		row := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		rows = append(rows, row)

		if !row.Expanded {
			continue
		}
		canonical := s.fs.Canonical(row.Path)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		push(row.Path, row.Depth+1)
	}
	return rows
}
