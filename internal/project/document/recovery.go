package document

import (
	"fmt"
	"strconv"
	"strings"

	perrors "github.com/dshills/linedit/internal/project/errors"
)

const (
	recoveryMarker = "# linedit recovery session="
	pathPrefix     = "# path="
	cursorPrefix   = "# cursor="
	commentPrefix  = "#"
)

// ArtifactPath returns where this document's recovery artifact lives:
// ".<base>.swp" beside the file, or a session-named file in the temp
// directory for a document without a file identity.
func (d *Document) ArtifactPath() string {
	return d.artifactPathFor(d.path)
}

func (d *Document) artifactPathFor(target string) string {
	if target == "" {
		return d.fs.Join(d.fs.TempDir(), "linedit-"+d.session+".swp")
	}
	return d.fs.Join(d.fs.Dir(target), "."+d.fs.Base(target)+".swp")
}

// WriteRecoverySnapshot records the content, file identity and cursor in the
// recovery artifact. It does nothing while the document is clean.
func (d *Document) WriteRecoverySnapshot(cursor Position) error {
	if d.closed {
		return &perrors.PathError{Op: "snapshot", Path: d.path, Err: perrors.ErrClosed}
	}
	if !d.dirty {
		return nil
	}
	return d.writeSnapshot(cursor)
}

// writeSnapshot replaces the artifact through a temporary file so a reader
// never sees half a snapshot.
func (d *Document) writeSnapshot(cursor Position) error {
	artifact := d.ArtifactPath()

	var b strings.Builder
	b.WriteString(recoveryMarker + d.session + "\n")
	if d.path != "" {
		b.WriteString(pathPrefix + d.path + "\n")
	}
	fmt.Fprintf(&b, "%s%d,%d\n", cursorPrefix, cursor.Row, cursor.Col)
	b.WriteString(strings.Join(d.Lines(), "\n"))

	tmp := artifact + ".tmp"
	if err := d.fs.WriteFileSync(tmp, []byte(b.String()), 0600); err != nil {
		return &perrors.PathError{Op: "snapshot", Path: artifact, Err: err}
	}
	if err := d.fs.Rename(tmp, artifact); err != nil {
		_ = d.fs.Remove(tmp)
		return &perrors.PathError{Op: "snapshot", Path: artifact, Err: err}
	}

	if d.recovery != "" && d.recovery != artifact {
		_ = d.fs.Remove(d.recovery)
	}
	d.recovery = artifact
	d.cursor = cursor
	return nil
}

// afterSave keeps the tracked artifact consistent with a new clean state.
// A guarded document keeps claiming its path with an artifact that holds
// the saved content, so recovering it after a crash never rolls the file
// back. Otherwise there is nothing left to recover.
func (d *Document) afterSave() {
	if d.recovery == "" {
		return
	}
	if d.sessionGuard {
		_ = d.writeSnapshot(d.cursor)
		return
	}
	_ = d.fs.Remove(d.recovery)
	d.recovery = ""
}

// Recover rebuilds a document from the recovery artifact at artifactPath and
// returns it with the recorded cursor. The document is dirty, so nothing is
// trusted until it is saved explicitly. The artifact is removed when the
// document is closed.
func Recover(artifactPath string, opts ...Option) (*Document, Position, error) {
	d := New(opts...)

	data, err := d.fs.ReadFile(artifactPath)
	if err != nil {
		return nil, Position{}, &perrors.PathError{Op: "recover", Path: artifactPath, Err: err}
	}

	snap, err := parseSnapshot(string(data))
	if err != nil {
		return nil, Position{}, &perrors.PathError{Op: "recover", Path: artifactPath, Err: err}
	}

	abs, err := d.fs.Abs(snap.path)
	if err != nil {
		return nil, Position{}, &perrors.PathError{Op: "recover", Path: artifactPath, Err: err}
	}
	d.path = abs
	d.setText(snap.lines)
	d.dirty = true

	if tracked, err := d.fs.Abs(artifactPath); err == nil {
		d.recovery = tracked
	}
	d.cursor = snap.cursor

	if info, err := d.fs.Stat(abs); err == nil && !info.IsDir() {
		if original, err := d.fs.ReadFile(abs); err == nil {
			shadow := d.shadowPathFor(abs)
			if err := d.fs.WriteFile(shadow, original, info.Mode().Perm()); err == nil {
				d.shadow = shadow
			}
		}
	}

	return d, snap.cursor, nil
}

// snapshot is a parsed recovery artifact.
type snapshot struct {
	path   string
	cursor Position
	lines  []string
}

// parseSnapshot reads the comment header and the content after it. The
// cursor line ends the header, so content may itself start with "#".
// Without a cursor line every non-comment line is content.
func parseSnapshot(data string) (snapshot, error) {
	var snap snapshot
	raw := strings.Split(data, "\n")

	body := -1
	for i, line := range raw {
		if !strings.HasPrefix(line, commentPrefix) {
			continue
		}
		if strings.HasPrefix(line, cursorPrefix) {
			body = i + 1
			break
		}
	}

	header := raw
	if body >= 0 {
		header = raw[:body]
	}

	for _, line := range header {
		switch {
		case strings.HasPrefix(line, pathPrefix):
			snap.path = strings.TrimPrefix(line, pathPrefix)
		case strings.HasPrefix(line, cursorPrefix):
			c, err := parseCursor(strings.TrimPrefix(line, cursorPrefix))
			if err != nil {
				return snapshot{}, err
			}
			snap.cursor = c
		case !strings.HasPrefix(line, commentPrefix):
			snap.lines = append(snap.lines, line)
		}
	}
	if body >= 0 {
		snap.lines = append(snap.lines, raw[body:]...)
	}

	if snap.path == "" {
		return snapshot{}, fmt.Errorf("%w: missing %q line", perrors.ErrRecoveryFormat, strings.TrimSpace(pathPrefix))
	}
	return snap, nil
}

func parseCursor(s string) (Position, error) {
	row, col, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Position{}, fmt.Errorf("%w: cursor %q", perrors.ErrRecoveryFormat, s)
	}
	r, err := strconv.Atoi(row)
	if err != nil || r < 0 {
		return Position{}, fmt.Errorf("%w: cursor %q", perrors.ErrRecoveryFormat, s)
	}
	c, err := strconv.Atoi(col)
	if err != nil || c < 0 {
		return Position{}, fmt.Errorf("%w: cursor %q", perrors.ErrRecoveryFormat, s)
	}
	return Position{Row: r, Col: c}, nil
}
