package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dshills/linedit/internal/project/watcher"
)

// startWatch begins watching the document's file. Failure only disables
// the feature.
func (app *Application) startWatch() {
	w, err := app.newWatcher()
	if err != nil {
		app.logger.Warn("%v", NewComponentError("watcher", "start", err))
		return
	}
	app.watch = w
	app.followPath()
}

func (app *Application) stopWatch() {
	if app.watch == nil {
		return
	}
	if err := app.watch.Close(); err != nil {
		app.logger.Warn("%v", NewComponentError("watcher", "close", err))
	}
	app.watch = nil
	app.watchedPath = ""
}

// followPath keeps the watch on the document's current path, which a save
// under a new name changes.
func (app *Application) followPath() {
	if app.watch == nil {
		return
	}
	path := app.editor.Document().Path()
	if path == app.watchedPath {
		return
	}

	if app.watchedPath != "" {
		if err := app.watch.Unwatch(app.watchedPath); err != nil {
			app.logger.With("path", app.watchedPath).Debug("%v", NewComponentError("watcher", "remove", err))
		}
		app.watchedPath = ""
	}
	if path == "" {
		return
	}
	if err := app.watch.Watch(path); err != nil {
		app.logger.With("path", path).Warn("%v", NewComponentError("watcher", "add", err))
		return
	}
	app.watchedPath = path
}

// watchEvents returns the watcher's event channel, or nil (never ready)
// when watching is off.
func (app *Application) watchEvents() <-chan watcher.Event {
	if app.watch == nil {
		return nil
	}
	return app.watch.Events()
}

func (app *Application) watchErrors() <-chan error {
	if app.watch == nil {
		return nil
	}
	return app.watch.Errors()
}

// handleWatchEvent reports a change to the document's file.
func (app *Application) handleWatchEvent(ev watcher.Event) {
	if ev.Path != app.watchedPath {
		return
	}
	app.logger.With("op", ev.Op.String()).Debug("watch event %s", ev.Path)
	if ev.Op.Gone() {
		app.reportRemoved(ev.Path)
		return
	}
	app.checkExternalChange(ev.Path)
}

func (app *Application) reportRemoved(path string) {
	app.editor.SetMessage("file removed on disk")
	app.logger.FileRemoved(path)
}

// checkExternalChange compares the file at path with the document. Content
// equal to the document, as after our own save, is not reported. The
// document is never reloaded.
func (app *Application) checkExternalChange(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			app.reportRemoved(path)
		} else {
			app.logger.With("path", path).Warn("%v", NewComponentError("watcher", "read", err))
		}
		return
	}

	ours := strings.Join(app.editor.Document().Lines(), "\n")
	theirs := string(data)
	if ours == theirs {
		return
	}

	ins, del := DiffSummary(ours, theirs)
	app.editor.SetMessage(fmt.Sprintf("file changed on disk (+%d -%d)", ins, del))
	app.logger.FileChanged(path, ins, del)
}

// DiffSummary counts the runes inserted and deleted going from a to b.
func DiffSummary(a, b string) (inserted, deleted int) {
	dmp := diffmatchpatch.New()
	for _, d := range dmp.DiffMain(a, b, false) {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			inserted += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			deleted += utf8.RuneCountInString(d.Text)
		}
	}
	return inserted, deleted
}
