package document

import (
	"errors"
	"io/fs"
	"strings"

	perrors "github.com/dshills/linedit/internal/project/errors"
)

// defaultPerm is used when saving to a path that does not exist yet.
const defaultPerm fs.FileMode = 0644

// Open reads path into a new clean document, one line per source line, and
// makes a shadow copy of the file for later saves. An empty file yields one
// empty line.
func Open(path string, opts ...Option) (*Document, error) {
	d := New(opts...)

	absPath, err := d.fs.Abs(path)
	if err != nil {
		return nil, &perrors.PathError{Op: "open", Path: path, Err: err}
	}

	if d.sessionGuard && d.fs.Exists(d.artifactPathFor(absPath)) {
		return nil, &perrors.PathError{Op: "open", Path: path, Err: perrors.ErrSessionActive}
	}

	info, err := d.fs.Stat(absPath)
	if err != nil {
		return nil, &perrors.PathError{Op: "open", Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &perrors.PathError{Op: "open", Path: path, Err: perrors.ErrIsDirectory}
	}

	content, err := d.fs.ReadFile(absPath)
	if err != nil {
		return nil, &perrors.PathError{Op: "open", Path: path, Err: err}
	}

	d.path = absPath
	d.setText(strings.Split(string(content), "\n"))

	shadow := d.shadowPathFor(absPath)
	if err := d.fs.WriteFile(shadow, content, info.Mode().Perm()); err != nil {
		return nil, &perrors.PathError{Op: "open", Path: path, Err: err}
	}
	d.shadow = shadow

	if d.sessionGuard {
		if err := d.writeSnapshot(Position{}); err != nil {
			d.Close()
			return nil, err
		}
	}

	return d, nil
}

// Create returns an empty, clean document whose file identity is path, for a
// file that does not exist yet. Nothing is written until the first save. The
// session guard applies as it does for Open.
func Create(path string, opts ...Option) (*Document, error) {
	d := New(opts...)

	absPath, err := d.fs.Abs(path)
	if err != nil {
		return nil, &perrors.PathError{Op: "create", Path: path, Err: err}
	}
	if d.fs.IsDir(absPath) {
		return nil, &perrors.PathError{Op: "create", Path: path, Err: perrors.ErrIsDirectory}
	}
	if d.sessionGuard && d.fs.Exists(d.artifactPathFor(absPath)) {
		return nil, &perrors.PathError{Op: "create", Path: path, Err: perrors.ErrSessionActive}
	}

	d.path = absPath
	if d.sessionGuard {
		if err := d.writeSnapshot(Position{}); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Save writes the document to its file identity.
// It fails with ErrNoTargetPath if the document has none.
func (d *Document) Save() error {
	return d.save("")
}

// SaveAs writes the document to newPath and, on success, makes newPath its
// file identity. An empty newPath behaves like Save.
func (d *Document) SaveAs(newPath string) error {
	return d.save(newPath)
}

// save writes every line, newline-joined, into the shadow file, forces it to
// stable storage and renames it over the target. A failure at any step leaves
// the target with its previous content.
func (d *Document) save(newPath string) error {
	target := d.path
	if newPath != "" {
		abs, err := d.fs.Abs(newPath)
		if err != nil {
			return &perrors.PathError{Op: "save", Path: newPath, Err: err}
		}
		target = abs
	}
	if d.closed {
		return &perrors.PathError{Op: "save", Path: target, Err: perrors.ErrClosed}
	}
	if target == "" {
		return &perrors.PathError{Op: "save", Err: perrors.ErrNoTargetPath}
	}
	if d.fs.IsDir(target) {
		return &perrors.PathError{Op: "save", Path: target, Err: perrors.ErrIsDirectory}
	}

	perm := defaultPerm
	if info, err := d.fs.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}

	// The shadow must share the target's directory for the rename to be atomic.
	shadow := d.shadow
	if shadow == "" || d.fs.Dir(shadow) != d.fs.Dir(target) {
		shadow = d.shadowPathFor(target)
	}

	data := []byte(strings.Join(d.Lines(), "\n"))
	if err := d.fs.WriteFileSync(shadow, data, perm); err != nil {
		return &perrors.PathError{Op: "save", Path: target, Err: err}
	}
	if shadow != d.shadow && d.shadow != "" {
		_ = d.fs.Remove(d.shadow)
	}
	d.shadow = shadow

	if err := d.fs.Chmod(shadow, perm); err != nil {
		return &perrors.PathError{Op: "save", Path: target, Err: err}
	}
	if err := d.fs.Rename(shadow, target); err != nil {
		return &perrors.PathError{Op: "save", Path: target, Err: err}
	}

	// The shadow is now the target.
	d.shadow = ""
	d.path = target
	d.dirty = false
	d.afterSave()

	// The rename has committed the content; a failed directory sync is
	// recorded, not returned.
	d.syncErr = nil
	if err := d.fs.SyncDir(d.fs.Dir(target)); err != nil {
		d.syncErr = &perrors.PathError{Op: "sync", Path: d.fs.Dir(target), Err: err}
	}

	// A missing shadow is recreated by the next save, so failing here is not
	// a failed save.
	next := d.shadowPathFor(target)
	if err := d.fs.WriteFile(next, data, perm); err == nil {
		d.shadow = next
	}
	return nil
}

// Close removes the shadow file and the recovery artifact. It is safe to call
// more than once; only the first call does anything.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	var errs []error
	if d.shadow != "" {
		if err := d.fs.Remove(d.shadow); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, &perrors.PathError{Op: "close", Path: d.shadow, Err: err})
		}
		d.shadow = ""
	}
	if d.recovery != "" {
		if err := d.fs.Remove(d.recovery); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, &perrors.PathError{Op: "close", Path: d.recovery, Err: err})
		}
		d.recovery = ""
	}
	return errors.Join(errs...)
}

// SyncError returns the directory sync failure of the last successful save,
// or nil. The saved content is in place either way.
func (d *Document) SyncError() error {
	return d.syncErr
}

// IsClosed reports whether Close has been called.
func (d *Document) IsClosed() bool {
	return d.closed
}

// ShadowPath returns the current shadow file, or "" if there is none.
func (d *Document) ShadowPath() string {
	return d.shadow
}

// shadowPathFor names a session-private file next to target.
func (d *Document) shadowPathFor(target string) string {
	return d.fs.Join(d.fs.Dir(target), "."+d.fs.Base(target)+"."+d.session+".shadow")
}
