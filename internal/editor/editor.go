package editor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/linedit/internal/input/key"
	"github.com/dshills/linedit/internal/input/mode"
	"github.com/dshills/linedit/internal/project/document"
)

// DefaultTabWidth is the number of spaces Tab inserts.
const DefaultTabWidth = 4

// Editor owns the cursor and input mode for one document.
type Editor struct {
	doc   *document.Document
	modes *mode.Manager

	row, col int

	// preferredCol is the column vertical moves across lines aim for.
	preferredCol int

	tabWidth int
	quit     bool
	message  string

	onCommand func(CommandResult)
}

// Option configures an Editor.
type Option func(*Editor)

// WithTabWidth sets how many spaces Tab inserts. Values below 1 are ignored.
func WithTabWidth(n int) Option {
	return func(e *Editor) {
		if n >= 1 {
			e.tabWidth = n
		}
	}
}

// WithCursor places the cursor, clamped into the document.
func WithCursor(pos document.Position) Option {
	return func(e *Editor) {
		e.SetCursor(pos)
	}
}

// New creates an editor for doc in normal mode with the cursor at (0, 0).
func New(doc *document.Document, opts ...Option) *Editor {
	e := &Editor{
		doc:      doc,
		modes:    mode.NewDefaultManager(),
		tabWidth: DefaultTabWidth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Document returns the edited document.
func (e *Editor) Document() *document.Document {
	return e.doc
}

// Cursor returns the cursor position.
func (e *Editor) Cursor() document.Position {
	return document.Position{Row: e.row, Col: e.col}
}

// SetCursor moves the cursor to pos, clamped into the document, and makes
// its column the preferred column.
func (e *Editor) SetCursor(pos document.Position) {
	e.row = min(max(pos.Row, 0), e.doc.LineCount()-1)
	e.col = min(max(pos.Col, 0), e.doc.LineLen(e.row))
	e.preferredCol = e.col
}

// PreferredColumn returns the column vertical moves aim for.
func (e *Editor) PreferredColumn() int {
	return e.preferredCol
}

// Mode returns the current mode.
func (e *Editor) Mode() mode.Mode {
	return e.modes.Current()
}

// ModeManager returns the mode manager, for observing mode changes.
func (e *Editor) ModeManager() *mode.Manager {
	return e.modes
}

// CommandText returns the pending command line text.
func (e *Editor) CommandText() string {
	if cmd, ok := e.modes.Get(mode.ModeCommand).(*mode.CommandMode); ok {
		return cmd.Buffer()
	}
	return ""
}

// Message returns the status message left by the last command.
func (e *Editor) Message() string {
	return e.message
}

// SetMessage replaces the status message.
func (e *Editor) SetMessage(msg string) {
	e.message = msg
}

// ShouldQuit reports whether a command asked the editor to terminate.
func (e *Editor) ShouldQuit() bool {
	return e.quit
}

// HandleKey processes one key event completely. width is the viewport width
// used for any navigation the key causes. The returned error comes from the
// document, such as a failed save; the editor stays usable after it.
func (e *Editor) HandleKey(ev key.Event, width int) error {
	current := e.modes.Current()
	if current == nil {
		return nil
	}

	res := current.HandleKey(ev, mode.NewContext())
	if res == nil || res.Action == nil {
		return nil
	}
	return e.execute(res.Action, width)
}

// execute runs one action produced by a mode.
func (e *Editor) execute(action *mode.Action, width int) error {
	switch action.Name {
	case mode.ActionMove:
		e.Move(action.IntArg("dx"), action.IntArg("dy"), width)
	case mode.ActionLineStart:
		e.col = 0
		e.preferredCol = 0
	case mode.ActionLineEnd:
		e.col = e.doc.LineLen(e.row)
		e.preferredCol = e.col
	case mode.ActionInsert:
		return e.switchMode(mode.ModeInsert)
	case mode.ActionAppend:
		if e.col < e.doc.LineLen(e.row) {
			e.col++
		}
		e.preferredCol = e.col
		return e.switchMode(mode.ModeInsert)
	case mode.ActionNormal:
		return e.switchMode(mode.ModeNormal)
	case mode.ActionCommand:
		e.message = ""
		return e.switchMode(mode.ModeCommand)
	case mode.ActionInsertText:
		return e.insertText(action.StringArg("text"))
	case mode.ActionTab:
		return e.insertText(strings.Repeat(" ", e.tabWidth))
	case mode.ActionNewline:
		return e.newline()
	case mode.ActionBackspace:
		return e.backspace()
	case mode.ActionExecute:
		err := e.runCommand(action.StringArg("text"))
		if serr := e.switchMode(mode.ModeNormal); serr != nil {
			return serr
		}
		return err
	}
	return nil
}

func (e *Editor) switchMode(name string) error {
	if e.modes.IsMode(name) {
		return nil
	}
	if err := e.modes.Switch(name); err != nil {
		return fmt.Errorf("switch mode: %w", err)
	}
	return nil
}

// insertText types text at the cursor and advances past it.
func (e *Editor) insertText(text string) error {
	if err := e.doc.InsertText(e.row, e.col, text); err != nil {
		return err
	}
	e.col += utf8.RuneCountInString(text)
	e.preferredCol = e.col
	return nil
}

// newline splits the line at the cursor and moves to the start of the new
// line.
func (e *Editor) newline() error {
	if err := e.doc.InsertNewline(e.row, e.col); err != nil {
		return err
	}
	e.row++
	e.col = 0
	e.preferredCol = 0
	return nil
}

// backspace deletes before the cursor. At column 0 it joins the line onto
// the previous one, leaving the cursor where the previous line used to end.
func (e *Editor) backspace() error {
	switch {
	case e.col > 0:
		if err := e.doc.Delete(e.row, e.col); err != nil {
			return err
		}
		e.col--
	case e.row > 0:
		joinAt := e.doc.LineLen(e.row - 1)
		if err := e.doc.Delete(e.row, 0); err != nil {
			return err
		}
		e.row--
		e.col = joinAt
	default:
		return nil
	}
	e.preferredCol = e.col
	return nil
}
