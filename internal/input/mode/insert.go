package mode

import (
	"github.com/dshills/linedit/internal/input/key"
)

// InsertMode implements text input.
// Printable keys are typed into the document.
type InsertMode struct{}

// NewInsertMode creates a new insert mode instance.
func NewInsertMode() *InsertMode {
	return &InsertMode{}
}

// Name returns the mode identifier.
func (m *InsertMode) Name() string {
	return ModeInsert
}

// DisplayName returns the human-readable mode name.
func (m *InsertMode) DisplayName() string {
	return "INSERT"
}

// CursorStyle returns the cursor style for insert mode.
func (m *InsertMode) CursorStyle() CursorStyle {
	return CursorBar
}

// Enter is called when entering insert mode.
func (m *InsertMode) Enter(ctx *Context) error {
	return nil
}

// Exit is called when leaving insert mode.
func (m *InsertMode) Exit(ctx *Context) error {
	return nil
}

// HandleKey translates an insert mode key.
func (m *InsertMode) HandleKey(event key.Event, ctx *Context) *Result {
	if event.IsChar() {
		return act(ActionInsertText, map[string]any{"text": string(event.Rune)})
	}
	if event.IsModified() {
		return ignored()
	}
	if r := moveFor(event.Key); r != nil {
		return r
	}

	switch event.Key {
	case key.KeyEscape:
		return act(ActionNormal, nil)
	case key.KeyEnter:
		return act(ActionNewline, nil)
	case key.KeyBackspace:
		return act(ActionBackspace, nil)
	case key.KeyTab:
		return act(ActionTab, nil)
	case key.KeyHome:
		return act(ActionLineStart, nil)
	case key.KeyEnd:
		return act(ActionLineEnd, nil)
	}
	return ignored()
}
