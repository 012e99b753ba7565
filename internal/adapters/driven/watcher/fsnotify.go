// Package watcher provides a filesystem library watcher using fsnotify.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/storyloom-labs/lorebase/internal/core/ports/driven"
	"github.com/storyloom-labs/lorebase/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.LibraryWatcher = (*Watcher)(nil)

// DefaultDebounce is how long a file must stay quiet before an event
// is emitted for it. Book uploads are streamed in many small writes;
// without debouncing each write would trigger a re-index.
const DefaultDebounce = 500 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithExtensions sets the file extensions to watch (default: .txt, .md).
func WithExtensions(exts []string) Option {
	return func(w *Watcher) {
		w.extensions = exts
	}
}

// WithDebounce sets the quiet period before an event is emitted.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// Watcher watches a library directory for book file changes.
type Watcher struct {
	watcher    *fsnotify.Watcher
	extensions []string
	debounce   time.Duration
}

// New creates a library watcher.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:    fsw,
		extensions: []string{".txt", ".md"},
		debounce:   DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch starts monitoring dir and emits debounced events.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan driven.FileEvent, error) {
	if err := w.watcher.Add(dir); err != nil {
		return nil, err
	}

	events := make(chan driven.FileEvent, 16)

	go func() {
		defer close(events)

		// Pending events keyed by path; each write resets the timer so
		// only the last event of a burst survives.
		var mu sync.Mutex
		pending := make(map[string]*time.Timer)

		flush := func(path string, op driven.FileOp) {
			mu.Lock()
			delete(pending, path)
			mu.Unlock()
			select {
			case events <- driven.FileEvent{Path: path, Op: op}:
			case <-ctx.Done():
			}
		}

		defer func() {
			mu.Lock()
			for _, timer := range pending {
				timer.Stop()
			}
			mu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.watched(event.Name) {
					continue
				}

				var op driven.FileOp
				switch {
				case event.Op.Has(fsnotify.Create):
					op = driven.FileCreated
				case event.Op.Has(fsnotify.Write):
					op = driven.FileModified
				case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
					op = driven.FileRemoved
				default:
					continue
				}

				// Removals are final; emit immediately.
				if op == driven.FileRemoved {
					mu.Lock()
					if timer, exists := pending[event.Name]; exists {
						timer.Stop()
						delete(pending, event.Name)
					}
					mu.Unlock()
					select {
					case events <- driven.FileEvent{Path: event.Name, Op: op}:
					case <-ctx.Done():
						return
					}
					continue
				}

				path := event.Name
				mu.Lock()
				if timer, exists := pending[path]; exists {
					timer.Reset(w.debounce)
				} else {
					pending[path] = time.AfterFunc(w.debounce, func() {
						flush(path, op)
					})
				}
				mu.Unlock()

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			}
		}
	}()

	return events, nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// watched reports whether the file has a watched extension.
func (w *Watcher) watched(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
