package editor

import (
	"errors"
	"fmt"
	"strings"

	perrors "github.com/dshills/linedit/internal/project/errors"
)

// Status messages set by commands.
const (
	msgUnsaved = "unsaved changes"
	msgUnknown = "not a command: "
	msgNoName  = "no file name: use :s <name>"
)

// Outcome classifies an executed command line.
type Outcome int

// Command outcomes.
const (
	OutcomeSaved Outcome = iota + 1
	OutcomeSaveFailed
	OutcomeQuit
	OutcomeQuitRefused
	OutcomeUnknown
)

// CommandResult describes one executed command line. Path and Lines are the
// document's file identity and line count after the command.
type CommandResult struct {
	Text    string
	Outcome Outcome
	Path    string
	Lines   int

	// Err is the save failure for OutcomeSaveFailed.
	Err error

	// SyncErr is set when a save succeeded but its directory did not sync.
	SyncErr error
}

// OnCommand registers fn to be called after every non-empty command line.
// Only one observer is kept. The returned function removes it.
func (e *Editor) OnCommand(fn func(CommandResult)) (unsubscribe func()) {
	e.onCommand = fn
	return func() { e.onCommand = nil }
}

// runCommand executes a command line:
//
//	q          quit, refused while the document has unsaved changes
//	s          save in place
//	s <name>   save under name, which becomes the file identity
//	sq         save, then quit if the save succeeded
//
// Anything else changes nothing; it only leaves a status message.
func (e *Editor) runCommand(text string) error {
	if text == "" {
		return nil
	}
	res := e.command(text)
	res.Text = text
	res.Path = e.doc.Path()
	res.Lines = e.doc.LineCount()
	if e.onCommand != nil {
		e.onCommand(res)
	}
	return res.Err
}

func (e *Editor) command(text string) CommandResult {
	switch {
	case text == "q":
		if e.doc.IsDirty() {
			e.message = msgUnsaved
			return CommandResult{Outcome: OutcomeQuitRefused}
		}
		e.quit = true
		return CommandResult{Outcome: OutcomeQuit}
	case text == "s":
		return e.save("")
	case strings.HasPrefix(text, "s "):
		return e.save(strings.TrimSpace(text[len("s "):]))
	case text == "sq":
		res := e.save("")
		if res.Err == nil {
			e.quit = true
		}
		return res
	default:
		e.message = msgUnknown + text
		return CommandResult{Outcome: OutcomeUnknown}
	}
}

// save writes the document, optionally under a new name, and reports the
// outcome in the status message.
func (e *Editor) save(name string) CommandResult {
	if err := e.doc.SaveAs(name); err != nil {
		if errors.Is(err, perrors.ErrNoTargetPath) {
			e.message = msgNoName
		} else {
			e.message = "save failed: " + err.Error()
		}
		return CommandResult{Outcome: OutcomeSaveFailed, Err: err}
	}
	e.message = fmt.Sprintf("wrote %d lines to %s", e.doc.LineCount(), e.doc.Path())
	syncErr := e.doc.SyncError()
	if syncErr != nil {
		e.message += " (directory not synced)"
	}
	return CommandResult{Outcome: OutcomeSaved, SyncErr: syncErr}
}
