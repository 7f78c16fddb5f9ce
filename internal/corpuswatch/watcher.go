// Package corpuswatch invalidates a corpus store when its cached
// artifacts change on disk, so edits or refreshed downloads take
// effect without restarting the process.
package corpuswatch

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/vidseek/vidseek/internal/core/ports/driven"
	"github.com/vidseek/vidseek/internal/logger"
)

// Watcher observes corpus artifact files and calls Invalidate on the
// store whenever one of them is written, removed, or replaced.
type Watcher struct {
	store   driven.CorpusStore
	watched map[string]bool
	fw      *fsnotify.Watcher
	done    chan struct{}
}

// New creates a watcher for the given artifact paths. The paths' parent
// directories are watched so that atomic rename-into-place updates are
// observed too.
func New(store driven.CorpusStore, paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	return &Watcher{
		store:   store,
		watched: watched,
		fw:      fw,
		done:    make(chan struct{}),
	}, nil
}

// Start begins processing events in a background goroutine.
func (w *Watcher) Start() {
	go w.run()
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			logger.Warn("corpus watcher: %v", err)
		}
	}
}

// handleEvent invalidates the store when a watched artifact changes.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	abs, err := filepath.Abs(event.Name)
	if err != nil || !w.watched[abs] {
		return
	}

	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	logger.Debug("corpus artifact changed (%s), invalidating", event.Name)
	w.store.Invalidate()
}
