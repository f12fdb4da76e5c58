// Package watcher reports changes that other programs make to the files an
// editor has open.
//
// Files are watched through their parent directory, so a file replaced by
// rename (how every document save lands) keeps being followed, and a file
// that does not exist yet can be watched for its creation. Bursts of
// operations on one file are coalesced by DebouncedWatcher.
package watcher

import (
	"errors"
	"strings"
	"time"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("path is already being watched")
	ErrNotWatching     = errors.New("path is not being watched")
	ErrPathNotExist    = errors.New("parent directory does not exist")
)

// Op is a set of file system operations.
type Op uint32

const (
	// OpCreate indicates the file was created or renamed into place.
	OpCreate Op = 1 << iota
	// OpWrite indicates the file was written to.
	OpWrite
	// OpRemove indicates the file was removed.
	OpRemove
	// OpRename indicates the file was renamed away.
	OpRename
)

var opNames = []struct {
	op   Op
	name string
}{
	{OpCreate, "CREATE"},
	{OpWrite, "WRITE"},
	{OpRemove, "REMOVE"},
	{OpRename, "RENAME"},
}

// String returns the operations joined by "|", e.g. "CREATE|WRITE".
func (op Op) String() string {
	var parts []string
	for _, n := range opNames {
		if op.Has(n.op) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "UNKNOWN"
	}
	return strings.Join(parts, "|")
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Gone reports whether the file no longer exists under its name after op.
// A later create in the same set means it was replaced.
func (op Op) Gone() bool {
	return (op.Has(OpRemove) || op.Has(OpRename)) && !op.Has(OpCreate) && !op.Has(OpWrite)
}

// Event is a change to a watched file.
type Event struct {
	// Path is the absolute path of the watched file.
	Path string

	// Op is the operation that occurred.
	Op Op

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Watcher monitors individual files.
type Watcher interface {
	// Watch starts watching the file at path. The file need not exist but
	// its directory must.
	Watch(path string) error

	// Unwatch stops watching the file at path.
	// Returns ErrNotWatching if the path isn't being watched.
	Unwatch(path string) error

	// Events returns the channel of file change events.
	// The channel is closed when the watcher is closed.
	Events() <-chan Event

	// Errors returns the channel of watcher errors.
	// The channel is closed when the watcher is closed.
	Errors() <-chan error

	// Close stops the watcher and releases resources.
	Close() error

	// IsWatching returns true if the file is being watched.
	IsWatching(path string) bool
}

// Config holds watcher configuration options.
type Config struct {
	// DebounceDelay is the window in which events for one file are
	// coalesced. Default: 100ms
	DebounceDelay time.Duration

	// BufferSize is the size of the event and error channels.
	// Default: 16
	BufferSize int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
		BufferSize:    16,
	}
}

// Option configures a watcher.
type Option func(*Config)

// WithDebounceDelay sets the debounce delay.
func WithDebounceDelay(d time.Duration) Option {
	return func(c *Config) {
		c.DebounceDelay = d
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) Option {
	return func(c *Config) {
		c.BufferSize = size
	}
}

// New returns a debounced fsnotify watcher.
func New(opts ...Option) (Watcher, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	inner, err := NewFSNotifyWatcher(WithBufferSize(config.BufferSize))
	if err != nil {
		return nil, err
	}
	return NewDebouncedWatcher(inner, config.DebounceDelay), nil
}
