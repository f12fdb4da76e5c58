package document

import (
	"github.com/dshills/linedit/internal/project/vfs"
)

// Option configures a Document.
type Option func(*Document)

// WithFS sets the file system used for all persistence. Defaults to the OS.
func WithFS(fsys vfs.VFS) Option {
	return func(d *Document) {
		d.fs = fsys
	}
}

// WithSessionGuard makes Open refuse a path whose recovery artifact already
// exists, and makes the opened document claim the path by writing its own
// artifact immediately.
func WithSessionGuard(enabled bool) Option {
	return func(d *Document) {
		d.sessionGuard = enabled
	}
}

// WithPath gives a new, empty document a file identity without reading it.
// Used for paths that do not exist yet.
func WithPath(path string) Option {
	return func(d *Document) {
		d.path = path
	}
}
