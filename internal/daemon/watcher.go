package daemon

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docaggregator/internal/logfields"
)

// Watcher reports changes below a set of project directories.
type Watcher struct {
	watcher *fsnotify.Watcher
	roots   []string
	exclude []string
}

// NewWatcher watches every directory below roots except hidden ones such as
// .git and the trees under exclude. fsnotify is not recursive, so each
// directory is added individually.
func NewWatcher(roots, exclude []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{watcher: fw}
	for _, dir := range exclude {
		abs, err := filepath.Abs(dir)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to resolve excluded path %s: %w", dir, err)
		}
		w.exclude = append(w.exclude, abs)
	}
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to resolve watch path %s: %w", root, err)
		}
		if err := w.addTree(abs); err != nil {
			_ = fw.Close()
			return nil, err
		}
		w.roots = append(w.roots, abs)
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) || w.excluded(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// Run forwards a request to out for each relevant event until ctx is done.
func (w *Watcher) Run(ctx context.Context, out chan<- string) {
	slog.Info("Watching project directories", logfields.Count(len(w.roots)))
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				// New directories need their own watch.
				_ = w.addTree(event.Name)
			}
			slog.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			select {
			case out <- "watch:" + event.Name:
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod || w.excluded(event.Name) {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(event.Name), "/") {
		if isHidden(part) {
			return false
		}
	}
	return true
}

// excluded reports whether path lies in one of the excluded trees.
func (w *Watcher) excluded(path string) bool {
	for _, dir := range w.exclude {
		rel, err := filepath.Rel(dir, path)
		if err == nil && filepath.IsLocal(rel) {
			return true
		}
	}
	return false
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}
