package mode

import (
	"github.com/dshills/linedit/internal/input/key"
)

// Mode defines the interface for editor modes.
// Each mode determines how key events are interpreted and what cursor
// style is displayed.
type Mode interface {
	// Name returns the unique mode identifier (e.g., "normal", "insert").
	Name() string

	// DisplayName returns a human-readable name for the status line.
	DisplayName() string

	// CursorStyle returns the cursor style for this mode.
	CursorStyle() CursorStyle

	// Enter is called when entering this mode.
	Enter(ctx *Context) error

	// Exit is called when leaving this mode.
	Exit(ctx *Context) error

	// HandleKey translates a key event. The result is never nil; keys the
	// mode ignores come back with Consumed false.
	HandleKey(event key.Event, ctx *Context) *Result
}

// Result describes what to do with a key.
type Result struct {
	// Action is the action to execute, if any.
	Action *Action

	// Consumed indicates whether the key was handled.
	Consumed bool
}

// Action represents a command for the editor to execute.
type Action struct {
	Name string
	Args map[string]any
}

// IntArg returns the integer argument name, or 0.
func (a *Action) IntArg(name string) int {
	v, _ := a.Args[name].(int)
	return v
}

// StringArg returns the string argument name, or "".
func (a *Action) StringArg(name string) string {
	v, _ := a.Args[name].(string)
	return v
}

// Action names understood by the editor.
const (
	ActionMove       = "cursor.move"
	ActionLineStart  = "cursor.lineStart"
	ActionLineEnd    = "cursor.lineEnd"
	ActionInsert     = "mode.insert"
	ActionAppend     = "mode.append"
	ActionNormal     = "mode.normal"
	ActionCommand    = "mode.command"
	ActionInsertText = "editor.insertText"
	ActionNewline    = "editor.newline"
	ActionBackspace  = "editor.backspace"
	ActionTab        = "editor.tab"
	ActionExecute    = "command.execute"
)

// consumed returns a Result for a key handled without an action.
func consumed() *Result {
	return &Result{Consumed: true}
}

// act returns a Result that runs the named action.
func act(name string, args map[string]any) *Result {
	return &Result{Consumed: true, Action: &Action{Name: name, Args: args}}
}

func ignored() *Result {
	return &Result{}
}

// moveFor returns the movement action for an arrow key, or nil.
func moveFor(k key.Key) *Result {
	switch k {
	case key.KeyLeft:
		return act(ActionMove, map[string]any{"dx": -1, "dy": 0})
	case key.KeyRight:
		return act(ActionMove, map[string]any{"dx": 1, "dy": 0})
	case key.KeyUp:
		return act(ActionMove, map[string]any{"dx": 0, "dy": -1})
	case key.KeyDown:
		return act(ActionMove, map[string]any{"dx": 0, "dy": 1})
	}
	return nil
}

// Context provides information during mode transitions and key handling.
type Context struct {
	// PreviousMode is the mode being transitioned from (for Enter).
	PreviousMode string

	// NextMode is the mode being transitioned to (for Exit).
	NextMode string
}

// NewContext creates a new mode context.
func NewContext() *Context {
	return &Context{}
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor.
	CursorUnderline
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	default:
		return "unknown"
	}
}

// Standard mode names.
const (
	ModeNormal  = "normal"
	ModeInsert  = "insert"
	ModeCommand = "command"
)
