package app

import (
	"context"
	"errors"
	"time"

	"github.com/dshills/linedit/internal/editor"
	"github.com/dshills/linedit/internal/input/key"
	"github.com/dshills/linedit/internal/renderer/backend"
)

// eventLoop is the main application loop. Every branch runs to completion
// and the screen is redrawn before the next event is taken.
func (app *Application) eventLoop(ctx context.Context, events <-chan backend.Event, tick <-chan time.Time) error {
	app.render()

	for {
		select {
		case <-ctx.Done():
			app.logger.Info("interrupted: %v", context.Cause(ctx))
			return ctx.Err()

		case <-app.done:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.handleBackendEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}

		case <-tick:
			app.snapshot()

		case ev, ok := <-app.watchEvents():
			if !ok {
				app.watch = nil
				continue
			}
			app.handleWatchEvent(ev)

		case err, ok := <-app.watchErrors():
			if !ok {
				continue
			}
			app.logger.With("component", "watcher").Warn("%v", err)
		}

		app.render()
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.handleResize(ev)
		return nil
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	default:
		return nil
	}
}

// handleResize records the new terminal size. The width reaches the editor
// through the next HandleKey and LogicalToScreen calls.
func (app *Application) handleResize(ev backend.Event) {
	app.width, app.height = ev.Width, ev.Height
	app.logger.Debug("resize %dx%d", ev.Width, ev.Height)
}

// handleKeyEvent feeds one key to the editor. Command outcomes are logged
// by onCommand; any other editor error is logged here. The editor has
// already reported both on the status line.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	keyEv, ok := convertToKeyEvent(ev)
	if !ok {
		return nil
	}

	app.commandRan = false
	if err := app.editor.HandleKey(keyEv, app.textWidth()); err != nil && !app.commandRan {
		app.logger.With("key", keyEv.String()).Warn("%v", err)
	}

	app.followPath()

	if app.editor.ShouldQuit() {
		return ErrQuit
	}
	return nil
}

// onCommand logs each command line the editor executes.
func (app *Application) onCommand(res editor.CommandResult) {
	app.commandRan = true
	app.logger.Command(res)
}

// snapshot writes a recovery snapshot if the document has unsaved edits.
func (app *Application) snapshot() {
	doc := app.editor.Document()
	if err := doc.WriteRecoverySnapshot(app.editor.Cursor()); err != nil {
		app.logger.SnapshotFailed(doc.ArtifactPath(), err)
	}
}

// textWidth is the viewport width passed to navigation and screen mapping.
func (app *Application) textWidth() int {
	return max(app.width, 1)
}

// convertToKeyEvent converts a backend.Event to a key.Event.
func convertToKeyEvent(ev backend.Event) (key.Event, bool) {
	k, ok := mapBackendKey(ev.Key)
	if !ok {
		return key.Event{}, false
	}

	mods := key.ModNone
	if ev.Mod.Has(backend.ModCtrl) {
		mods = mods.With(key.ModCtrl)
	}
	if ev.Mod.Has(backend.ModAlt) {
		mods = mods.With(key.ModAlt)
	}
	if ev.Mod.Has(backend.ModShift) {
		mods = mods.With(key.ModShift)
	}
	if ev.Mod.Has(backend.ModMeta) {
		mods = mods.With(key.ModMeta)
	}

	if k == key.KeyRune {
		return key.NewRuneEvent(ev.Rune, mods), true
	}
	return key.NewSpecialEvent(k, mods), true
}

// mapBackendKey maps a backend.Key to a key.Key.
func mapBackendKey(bk backend.Key) (key.Key, bool) {
	switch bk {
	case backend.KeyRune:
		return key.KeyRune, true
	case backend.KeyEscape:
		return key.KeyEscape, true
	case backend.KeyEnter:
		return key.KeyEnter, true
	case backend.KeyTab:
		return key.KeyTab, true
	case backend.KeyBackspace:
		return key.KeyBackspace, true
	case backend.KeyDelete:
		return key.KeyDelete, true
	case backend.KeyHome:
		return key.KeyHome, true
	case backend.KeyEnd:
		return key.KeyEnd, true
	case backend.KeyPageUp:
		return key.KeyPageUp, true
	case backend.KeyPageDown:
		return key.KeyPageDown, true
	case backend.KeyUp:
		return key.KeyUp, true
	case backend.KeyDown:
		return key.KeyDown, true
	case backend.KeyLeft:
		return key.KeyLeft, true
	case backend.KeyRight:
		return key.KeyRight, true
	default:
		return key.KeyNone, false
	}
}
