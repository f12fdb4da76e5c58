package document

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/linedit/internal/engine/gapbuf"
	perrors "github.com/dshills/linedit/internal/project/errors"
	"github.com/dshills/linedit/internal/project/vfs"
)

// Position is a row/column location in a document.
// Columns count runes.
type Position struct {
	Row int
	Col int
}

// Document is an ordered, never-empty list of lines plus the file identity
// and the files used to persist it.
type Document struct {
	fs    vfs.VFS
	lines []*gapbuf.Buffer

	// path is the absolute file identity, or "" for an unnamed document.
	path string

	// shadow is the private working copy saves write through.
	shadow string

	// recovery is the artifact written by WriteRecoverySnapshot, once written.
	recovery string

	// cursor is the position recorded by the last snapshot.
	cursor Position

	// syncErr is the directory sync failure of the last save.
	syncErr error

	// session names this document's shadow and marks its artifacts.
	session string

	sessionGuard bool
	dirty        bool
	closed       bool
}

// New creates a document with a single empty line and no file identity.
func New(opts ...Option) *Document {
	d := &Document{
		fs:      vfs.NewOSFS(),
		lines:   []*gapbuf.Buffer{gapbuf.New()},
		session: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.path != "" {
		if abs, err := d.fs.Abs(d.path); err == nil {
			d.path = abs
		}
	}
	return d
}

// Path returns the file identity, or "" if the document has none.
func (d *Document) Path() string {
	return d.path
}

// IsDirty reports whether the document changed since it was opened or saved.
func (d *Document) IsDirty() bool {
	return d.dirty
}

// Session returns the identifier of this editing session.
func (d *Document) Session() string {
	return d.session
}

// LineCount returns the number of lines. It is always at least 1.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the text of row, or "" if row is out of range.
func (d *Document) Line(row int) string {
	if row < 0 || row >= len(d.lines) {
		return ""
	}
	return d.lines[row].String()
}

// LineLen returns the rune length of row, or 0 if row is out of range.
func (d *Document) LineLen(row int) int {
	if row < 0 || row >= len(d.lines) {
		return 0
	}
	return d.lines[row].Len()
}

// Lines returns the current content, one string per line.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	for i, l := range d.lines {
		out[i] = l.String()
	}
	return out
}

// InsertNewline splits line row at col, moving [col, end) to a new line
// directly below.
func (d *Document) InsertNewline(row, col int) error {
	line, err := d.addressed(row, col)
	if err != nil {
		return err
	}

	tail := line.Split(col)
	d.lines = slices.Insert(d.lines, row+1, tail)
	d.dirty = true
	return nil
}

// InsertChar inserts r at (row, col).
func (d *Document) InsertChar(row, col int, r rune) error {
	line, err := d.addressed(row, col)
	if err != nil {
		return err
	}

	line.InsertChar(col, r)
	d.dirty = true
	return nil
}

// InsertText inserts s at (row, col). s must not contain newlines.
func (d *Document) InsertText(row, col int, s string) error {
	line, err := d.addressed(row, col)
	if err != nil {
		return err
	}
	if s == "" {
		return nil
	}

	line.InsertText(col, s)
	d.dirty = true
	return nil
}

// Delete removes the character before (row, col). At column 0 it joins row
// onto the end of the previous line instead; at (0, 0) it does nothing.
func (d *Document) Delete(row, col int) error {
	line, err := d.addressed(row, col)
	if err != nil {
		return err
	}

	switch {
	case col == 0 && row == 0:
		return nil
	case col == 0:
		d.lines[row-1].Merge(line)
		d.lines = slices.Delete(d.lines, row, row+1)
	default:
		line.DeleteBefore(col)
	}
	d.dirty = true
	return nil
}

// addressed validates (row, col) and returns the line at row.
func (d *Document) addressed(row, col int) (*gapbuf.Buffer, error) {
	if row < 0 || row >= len(d.lines) {
		return nil, fmt.Errorf("%w: row %d, line count %d", perrors.ErrRowOutOfRange, row, len(d.lines))
	}
	line := d.lines[row]
	if col < 0 || col > line.Len() {
		return nil, fmt.Errorf("%w: column %d, line %d has length %d", perrors.ErrColOutOfRange, col, row, line.Len())
	}
	return line, nil
}

// setText replaces the content with lines. An empty slice yields one empty line.
func (d *Document) setText(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	d.lines = make([]*gapbuf.Buffer, len(lines))
	for i, s := range lines {
		d.lines[i] = gapbuf.FromString(s)
	}
}
