// Package watch turns filesystem events under the workspace into refresh
// hints. It never mutates the selection; the picker stays stale until the
// next toggle, and the hint only reloads the projection.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// SkipFunc reports whether a workspace-relative directory should not be
// watched.
type SkipFunc func(relativePath string) bool

// Watcher watches a workspace tree recursively.
type Watcher struct {
	root    string
	skip    SkipFunc
	onEvent func(path string)
	log     *zap.Logger
	fsw     *fsnotify.Watcher
}

// New creates a Watcher and registers root and every non-skipped
// subdirectory. onEvent is called for each relevant event and must not block.
func New(root string, skip SkipFunc, onEvent func(path string), log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if skip == nil {
		skip = func(string) bool { return false }
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{root: root, skip: skip, onEvent: onEvent, log: log, fsw: fsw}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run forwards events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

// Close releases the underlying watches.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// WatchList returns the watched directories.
func (w *Watcher) WatchList() []string {
	return w.fsw.WatchList()
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}
	rel, ok := w.rel(event.Name)
	if !ok || w.skipped(rel) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.log.Debug("watch new directory failed", zap.String("path", event.Name), zap.Error(err))
			}
		}
	}

	w.log.Debug("filesystem event", zap.String("path", event.Name), zap.String("op", event.Op.String()))
	w.onEvent(event.Name)
}

// skipped checks every directory segment of rel.
func (w *Watcher) skipped(rel string) bool {
	parts := strings.Split(rel, "/")
	for i := range parts {
		if w.skip(strings.Join(parts[:i+1], "/")) {
			return true
		}
	}
	return false
}

func (w *Watcher) rel(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if rel, ok := w.rel(path); ok && rel != "." && w.skip(rel) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.log.Debug("watch add failed", zap.String("path", path), zap.Error(err))
		}
		return nil
	})
}
