package mocks

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Planeshifter/llm-context-builder/internal/service/fs"
)

// MemFS is an in-memory filesystem for picker tests. Paths are absolute and
// use forward slashes.
type MemFS struct {
	Mu         sync.RWMutex
	Files      map[string][]byte // path -> content
	Dirs       map[string]bool   // path -> exists
	Links      map[string]string // path -> canonical target, for loop tests
	Errors     map[string]error  // path -> error to return from any operation
	Reads      map[string]int    // path -> ReadFile call count
	BeforeRead func(path string)
}

// NewMemFS creates an empty filesystem containing only root.
func NewMemFS(root string) *MemFS {
	m := &MemFS{
		Files:  make(map[string][]byte),
		Dirs:   make(map[string]bool),
		Links:  make(map[string]string),
		Errors: make(map[string]error),
		Reads:  make(map[string]int),
	}
	m.Dirs[filepath.Clean(root)] = true
	return m
}

// CreateFile creates a file with content, creating parent directories.
func (m *MemFS) CreateFile(path, content string) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	path = filepath.Clean(path)
	m.Files[path] = []byte(content)
	m.ensureDirs(filepath.Dir(path))
}

// CreateDir creates a directory and its parents.
func (m *MemFS) CreateDir(path string) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.ensureDirs(filepath.Clean(path))
}

// Link makes path a directory whose canonical form is target. Listing path
// lists target.
func (m *MemFS) Link(path, target string) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.ensureDirs(filepath.Dir(path))
	m.Dirs[path] = true
	m.Links[path] = target
}

// Remove deletes a file or a directory subtree.
func (m *MemFS) Remove(path string) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	delete(m.Files, path)
	delete(m.Dirs, path)
	prefix := path + "/"
	for p := range m.Files {
		if strings.HasPrefix(p, prefix) {
			delete(m.Files, p)
		}
	}
	for p := range m.Dirs {
		if strings.HasPrefix(p, prefix) {
			delete(m.Dirs, p)
		}
	}
}

// SetError sets an error to return for a specific path.
func (m *MemFS) SetError(path string, err error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.Errors[path] = err
}

// ReadCount returns how often path was read.
func (m *MemFS) ReadCount(path string) int {
	m.Mu.RLock()
	defer m.Mu.RUnlock()
	return m.Reads[path]
}

func (m *MemFS) ensureDirs(dir string) {
	for {
		m.Dirs[dir] = true
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// ListEntries implements the picker filesystem.
func (m *MemFS) ListEntries(dir string) ([]fs.Entry, error) {
	m.Mu.RLock()
	defer m.Mu.RUnlock()

	if err, ok := m.Errors[dir]; ok {
		return nil, err
	}
	if _, isFile := m.Files[dir]; isFile {
		return nil, notDir(dir)
	}
	if !m.Dirs[dir] {
		return nil, notFound("list", dir)
	}
	if target, ok := m.Links[dir]; ok {
		dir = target
	}

	seen := make(map[string]bool)
	var entries []fs.Entry
	add := func(p string, isDir bool) {
		if filepath.Dir(p) != dir || p == dir {
			return
		}
		name := filepath.Base(p)
		if seen[name] {
			return
		}
		seen[name] = true
		entries = append(entries, fs.Entry{Name: name, IsDir: isDir})
	}
	for p := range m.Dirs {
		add(p, true)
	}
	for p := range m.Files {
		add(p, false)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// ReadFile implements the picker filesystem.
func (m *MemFS) ReadFile(path string) ([]byte, error) {
	if hook := m.BeforeRead; hook != nil {
		hook(path)
	}

	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.Reads[path]++

	if err, ok := m.Errors[path]; ok {
		return nil, err
	}
	if m.Dirs[path] {
		return nil, &fs.PathError{Op: "read", Path: path, Kind: fs.ErrIsDirectory, Cause: fs.ErrIsDirectory}
	}
	content, ok := m.Files[path]
	if !ok {
		return nil, notFound("read", path)
	}
	return append([]byte(nil), content...), nil
}

// Canonical implements the picker filesystem.
func (m *MemFS) Canonical(path string) string {
	m.Mu.RLock()
	defer m.Mu.RUnlock()
	if target, ok := m.Links[path]; ok {
		return target
	}
	return path
}

// PermissionDenied builds the error the OS adapter returns for an unreadable path.
func PermissionDenied(path string) error {
	return &fs.PathError{Op: "read", Path: path, Kind: fs.ErrPermissionDenied, Cause: os.ErrPermission}
}

func notFound(op, path string) error {
	return &fs.PathError{Op: op, Path: path, Kind: fs.ErrNotFound, Cause: os.ErrNotExist}
}

func notDir(path string) error {
	return &fs.PathError{Op: "list", Path: path, Kind: fs.ErrNotDirectory, Cause: fs.ErrNotDirectory}
}
