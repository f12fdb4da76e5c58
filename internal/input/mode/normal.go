package mode

import (
	"github.com/dshills/linedit/internal/input/key"
)

// NormalMode interprets keys as navigation and mode switches.
type NormalMode struct{}

// NewNormalMode creates a new normal mode instance.
func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

// Name returns the mode identifier.
func (m *NormalMode) Name() string {
	return ModeNormal
}

// DisplayName returns the human-readable mode name.
func (m *NormalMode) DisplayName() string {
	return "NORMAL"
}

// CursorStyle returns the cursor style for normal mode.
func (m *NormalMode) CursorStyle() CursorStyle {
	return CursorBlock
}

// Enter is called when entering normal mode.
func (m *NormalMode) Enter(ctx *Context) error {
	return nil
}

// Exit is called when leaving normal mode.
func (m *NormalMode) Exit(ctx *Context) error {
	return nil
}

// HandleKey translates a normal mode key.
func (m *NormalMode) HandleKey(event key.Event, ctx *Context) *Result {
	if event.Is(key.KeyEscape) {
		return consumed()
	}
	if r := moveFor(event.Key); r != nil && !event.IsModified() {
		return r
	}

	switch event.Key {
	case key.KeyHome:
		return act(ActionLineStart, nil)
	case key.KeyEnd:
		return act(ActionLineEnd, nil)
	}

	if !event.IsChar() {
		return ignored()
	}

	switch event.Rune {
	case 'i':
		return act(ActionInsert, nil)
	case 'a':
		return act(ActionAppend, nil)
	case ':':
		return act(ActionCommand, nil)
	case 'h':
		return moveFor(key.KeyLeft)
	case 'j':
		return moveFor(key.KeyDown)
	case 'k':
		return moveFor(key.KeyUp)
	case 'l':
		return moveFor(key.KeyRight)
	case '0':
		return act(ActionLineStart, nil)
	case '$':
		return act(ActionLineEnd, nil)
	}
	return ignored()
}
