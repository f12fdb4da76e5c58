package mode

import (
	"github.com/dshills/linedit/internal/input/key"
)

// CommandMode implements the command line opened with ':'.
// It owns the pending command text.
type CommandMode struct {
	// buffer holds the command being typed.
	buffer []rune

	// history holds previously executed commands.
	history []string

	// historyIndex is the current position in history (-1 = current input).
	historyIndex int

	// savedBuffer holds the buffer when navigating history.
	savedBuffer []rune
}

// NewCommandMode creates a new command mode instance.
func NewCommandMode() *CommandMode {
	return &CommandMode{
		buffer:       make([]rune, 0, 64),
		historyIndex: -1,
	}
}

// Name returns the mode identifier.
func (m *CommandMode) Name() string {
	return ModeCommand
}

// DisplayName returns the human-readable mode name.
func (m *CommandMode) DisplayName() string {
	return "COMMAND"
}

// CursorStyle returns the cursor style for command mode.
func (m *CommandMode) CursorStyle() CursorStyle {
	return CursorBar
}

// Enter is called when entering command mode.
func (m *CommandMode) Enter(ctx *Context) error {
	m.Clear()
	m.historyIndex = -1
	m.savedBuffer = nil
	return nil
}

// Exit discards whatever is left in the command line.
func (m *CommandMode) Exit(ctx *Context) error {
	m.Clear()
	return nil
}

// HandleKey edits the command line. Enter hands the text to the editor
// as an ActionExecute and clears the line.
func (m *CommandMode) HandleKey(event key.Event, ctx *Context) *Result {
	if event.IsChar() {
		m.buffer = append(m.buffer, event.Rune)
		return consumed()
	}
	if event.IsModified() {
		return ignored()
	}

	switch event.Key {
	case key.KeyEscape:
		return act(ActionNormal, nil)
	case key.KeyBackspace:
		m.Backspace()
		return consumed()
	case key.KeyEnter:
		text := m.Buffer()
		m.AddToHistory(text)
		m.Clear()
		return act(ActionExecute, map[string]any{"text": text})
	case key.KeyUp:
		m.HistoryPrev()
		return consumed()
	case key.KeyDown:
		m.HistoryNext()
		return consumed()
	}
	return ignored()
}

// Buffer returns the current command text.
func (m *CommandMode) Buffer() string {
	return string(m.buffer)
}

// SetBuffer sets the command text.
func (m *CommandMode) SetBuffer(s string) {
	m.buffer = append(m.buffer[:0], []rune(s)...)
}

// Clear clears the command text.
func (m *CommandMode) Clear() {
	m.buffer = m.buffer[:0]
}

// Backspace deletes the last character. It reports whether there was one.
func (m *CommandMode) Backspace() bool {
	if len(m.buffer) == 0 {
		return false
	}
	m.buffer = m.buffer[:len(m.buffer)-1]
	return true
}

// AddToHistory adds a command to the history.
func (m *CommandMode) AddToHistory(cmd string) {
	m.historyIndex = -1
	m.savedBuffer = nil
	if cmd == "" {
		return
	}
	// Don't add duplicates of the last command
	if len(m.history) > 0 && m.history[len(m.history)-1] == cmd {
		return
	}
	m.history = append(m.history, cmd)
}

// HistoryPrev moves to the previous history entry.
func (m *CommandMode) HistoryPrev() bool {
	if len(m.history) == 0 {
		return false
	}

	if m.historyIndex == -1 {
		m.savedBuffer = append([]rune(nil), m.buffer...)
		m.historyIndex = len(m.history) - 1
	} else if m.historyIndex > 0 {
		m.historyIndex--
	} else {
		return false
	}

	m.SetBuffer(m.history[m.historyIndex])
	return true
}

// HistoryNext moves to the next history entry, returning to the text that
// was being typed after the newest one.
func (m *CommandMode) HistoryNext() bool {
	if m.historyIndex == -1 {
		return false
	}

	m.historyIndex++
	if m.historyIndex >= len(m.history) {
		m.historyIndex = -1
		m.SetBuffer(string(m.savedBuffer))
		m.savedBuffer = nil
	} else {
		m.SetBuffer(m.history[m.historyIndex])
	}
	return true
}
