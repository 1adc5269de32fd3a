package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driven"
	"github.com/custodia-labs/seedmerge/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// ErrWatcherClosed is returned by Watch after Close.
var ErrWatcherClosed = errors.New("watcher closed")

// Watcher reports import files created, changed or removed under a
// directory tree. Only files accepted by the filter are reported.
type Watcher struct {
	rootPath string
	accept   func(path string) bool

	mu      sync.Mutex
	closed  bool
	watcher *fsnotify.Watcher
}

// New creates a watcher for rootPath that reports files CSVSource supports.
func New(rootPath string) *Watcher {
	return NewWithFilter(rootPath, NewCSVSource().Supports)
}

// NewWithFilter creates a watcher that reports files for which accept
// returns true. A nil accept reports every visible file.
func NewWithFilter(rootPath string, accept func(path string) bool) *Watcher {
	if accept == nil {
		accept = func(string) bool { return true }
	}
	return &Watcher{rootPath: ResolvePath(rootPath), accept: accept}
}

// Root returns the watched directory.
func (w *Watcher) Root() string {
	return w.rootPath
}

// Watch starts watching the tree. The returned channel is closed when
// ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan domain.FileChange, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrWatcherClosed
	}

	info, err := os.Stat(w.rootPath)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path error: %s is not a directory", w.rootPath)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := w.addTree(fw, w.rootPath); err != nil {
		fw.Close()
		return nil, err
	}

	if w.watcher != nil {
		w.watcher.Close()
	}
	w.watcher = fw

	changes := make(chan domain.FileChange)
	go w.run(ctx, fw, changes)

	return changes, nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, changes chan<- domain.FileChange) {
	defer close(changes)
	defer fw.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) && !w.hiddenBelowRoot(event.Name) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(fw, event.Name); err != nil {
						logger.Warn("watch %s: %v", event.Name, err)
					}
					continue
				}
			}

			change := w.handleFsEvent(event)
			if change == nil {
				continue
			}
			select {
			case changes <- *change:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch %s: %v", w.rootPath, err)
		}
	}
}

// handleFsEvent converts an fsnotify event into a file change.
// Returns nil for events that should not be reported.
func (w *Watcher) handleFsEvent(event fsnotify.Event) *domain.FileChange {
	path := event.Name
	if w.hiddenBelowRoot(path) || !w.accept(path) {
		return nil
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &domain.FileChange{Type: domain.ChangeDeleted, Path: path}
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return nil
		}
		changeType := domain.ChangeUpdated
		if event.Has(fsnotify.Create) {
			changeType = domain.ChangeCreated
		}
		return &domain.FileChange{Type: changeType, Path: path}
	default:
		return nil
	}
}

// addTree watches dir and every visible directory below it.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Close stops watching. Safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.watcher != nil {
		err := w.watcher.Close()
		w.watcher = nil
		return err
	}
	return nil
}

// hiddenBelowRoot reports whether path is hidden relative to the watched
// root. Dot-directories above the root, such as ~/.seedmerge, do not count.
func (w *Watcher) hiddenBelowRoot(path string) bool {
	rel, err := filepath.Rel(w.rootPath, path)
	if err != nil {
		return isHidden(filepath.Base(path))
	}
	return isHidden(rel)
}

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
