package driven

import "context"

// FileOp is the kind of change observed on a watched file.
type FileOp string

// File operations reported by a LibraryWatcher.
const (
	FileCreated  FileOp = "created"
	FileModified FileOp = "modified"
	FileRemoved  FileOp = "removed"
)

// FileEvent is a single observed change to a watched file.
type FileEvent struct {
	Path string
	Op   FileOp
}

// LibraryWatcher observes a directory of book text files and reports
// changes. Implementations debounce write bursts so a file being
// streamed to disk produces one event, not dozens.
type LibraryWatcher interface {
	// Watch starts monitoring dir and returns a channel of events. The
	// channel is closed when ctx is cancelled or the watcher is stopped.
	Watch(ctx context.Context, dir string) (<-chan FileEvent, error)

	// Stop stops the watcher and releases resources.
	Stop() error
}
