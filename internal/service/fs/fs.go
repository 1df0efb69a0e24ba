package fs

import (
	"os"
	"path/filepath"
)

// Entry is a single directory listing result.
type Entry struct {
	Name  string
	IsDir bool
}

// OSFileSystem implements filesystem operations using the local OS filesystem primitives.
type OSFileSystem struct {
	readDir  func(name string) ([]os.DirEntry, error)
	stat     func(name string) (os.FileInfo, error)
	readFile func(name string) ([]byte, error)
}

// NewOSFileSystem creates a new OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{
		readDir:  os.ReadDir,
		stat:     os.Stat,
		readFile: os.ReadFile,
	}
}

// ListEntries lists the immediate children of dir.
// Symlinks are followed so a link to a directory is reported as a directory;
// dangling links are dropped.
func (f *OSFileSystem) ListEntries(dir string) ([]Entry, error) {
	dirEntries, err := f.readDir(dir)
	if err != nil {
		return nil, wrap("list", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		isDir := de.IsDir()
		if de.Type()&os.ModeSymlink != 0 {
			info, err := f.stat(filepath.Join(dir, de.Name()))
			if err != nil {
				continue
			}
			isDir = info.IsDir()
		}
		entries = append(entries, Entry{Name: de.Name(), IsDir: isDir})
	}
	return entries, nil
}

// ReadFile returns the full content of path.
func (f *OSFileSystem) ReadFile(path string) ([]byte, error) {
	info, err := f.stat(path)
	if err != nil {
		return nil, wrap("read", path, err)
	}
	if info.IsDir() {
		return nil, &PathError{Op: "read", Path: path, Kind: ErrIsDirectory, Cause: ErrIsDirectory}
	}

	content, err := f.readFile(path)
	if err != nil {
		return nil, wrap("read", path, err)
	}
	return content, nil
}

// IsDir reports whether path exists and is a directory.
func (f *OSFileSystem) IsDir(path string) (bool, error) {
	info, err := f.stat(path)
	if err != nil {
		return false, wrap("stat", path, err)
	}
	return info.IsDir(), nil
}

// Canonical resolves symlinks in path. It is used by walks to detect loops.
func (f *OSFileSystem) Canonical(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}

// UserHomeDir returns the current user's home directory.
func (f *OSFileSystem) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}
