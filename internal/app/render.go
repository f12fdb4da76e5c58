package app

import (
	"fmt"
	"path/filepath"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/linedit/internal/editor"
	"github.com/dshills/linedit/internal/input/mode"
	"github.com/dshills/linedit/internal/renderer/backend"
)

// render draws the document soft-wrapped at the terminal width, the status
// line on the last row and the cursor. It only reads editor state.
func (app *Application) render() {
	b := app.backend
	width := app.textWidth()
	textRows := max(app.height-1, 0)

	b.Clear()

	cursorRow, cursorCol := app.editor.LogicalToScreen(width)
	app.scrollTo(cursorRow, textRows)

	row := 0
	for _, line := range app.editor.Document().Lines() {
		if row >= app.top+textRows {
			break
		}
		runes := []rune(line)
		for seg := range editor.VisualRows(len(runes), width) {
			if y := row - app.top; y >= 0 && y < textRows {
				start := seg * width
				end := min(start+width, len(runes))
				for x, r := range runes[start:end] {
					b.SetCell(x, y, displayRune(r), backend.StyleDefault)
				}
			}
			row++
		}
	}
	for y := max(row-app.top, 0); y < textRows; y++ {
		b.SetCell(0, y, '~', backend.StyleFiller)
	}

	if app.height > 0 {
		app.drawStatus(app.height - 1)
	}

	current := app.editor.Mode()
	if current != nil && current.Name() == mode.ModeCommand {
		x := min(runewidth.StringWidth(app.statusText()), max(app.width-1, 0))
		b.ShowCursor(x, app.height-1)
	} else {
		// A cursor past the end of a line that fills its last row maps to
		// column width; it is drawn on the last cell instead.
		b.ShowCursor(min(cursorCol, width-1), cursorRow-app.top)
	}
	if current != nil {
		b.SetCursorStyle(cursorStyle(current.CursorStyle()))
	}

	b.Show()
}

// scrollTo adjusts top so that screen row cursorRow is visible.
func (app *Application) scrollTo(cursorRow, textRows int) {
	switch {
	case textRows <= 0:
		app.top = cursorRow
	case cursorRow < app.top:
		app.top = cursorRow
	case cursorRow >= app.top+textRows:
		app.top = cursorRow - textRows + 1
	}
}

// drawStatus paints the status line, truncated to the terminal width.
func (app *Application) drawStatus(y int) {
	text := runewidth.Truncate(app.statusText(), app.width, "…")
	text = runewidth.FillRight(text, app.width)

	x := 0
	for _, r := range text {
		app.backend.SetCell(x, y, r, backend.StyleStatus)
		x += max(runewidth.RuneWidth(r), 1)
	}
}

// statusText is the command line in command mode, otherwise the mode,
// file name, dirty marker, cursor position and status message.
func (app *Application) statusText() string {
	ed := app.editor
	current := ed.Mode()
	if current != nil && current.Name() == mode.ModeCommand {
		return ":" + ed.CommandText()
	}

	doc := ed.Document()
	name := "[No Name]"
	if doc.Path() != "" {
		name = filepath.Base(doc.Path())
	}
	if doc.IsDirty() {
		name += " [+]"
	}

	display := ""
	if current != nil {
		display = current.DisplayName()
	}
	pos := ed.Cursor()
	text := fmt.Sprintf(" %s  %s  %d:%d", display, name, pos.Row+1, pos.Col+1)
	if msg := ed.Message(); msg != "" {
		text += "  " + msg
	}
	return text
}

// displayRune maps runes that would corrupt a terminal cell.
func displayRune(r rune) rune {
	switch {
	case r == '\t':
		return ' '
	case unicode.IsControl(r):
		return '?'
	default:
		return r
	}
}

func cursorStyle(s mode.CursorStyle) backend.CursorStyle {
	switch s {
	case mode.CursorBar:
		return backend.CursorBar
	case mode.CursorUnderline:
		return backend.CursorUnderline
	default:
		return backend.CursorBlock
	}
}
