// Package app runs the linedit shell. It binds an Editor to a terminal
// Backend and drives the run-to-completion event loop: one key event is
// fully applied and the screen redrawn before the next is read.
package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/linedit/internal/editor"
	"github.com/dshills/linedit/internal/input/mode"
	"github.com/dshills/linedit/internal/project/watcher"
	"github.com/dshills/linedit/internal/renderer/backend"
)

// Options configures the application.
type Options struct {
	// RecoveryInterval is the time between recovery snapshots of unsaved
	// edits. Zero disables snapshots.
	RecoveryInterval time.Duration

	// Watch reports changes made to the document's file by other programs.
	Watch bool

	// Logger receives application logs. Defaults to NullLogger.
	Logger *Logger
}

// Application is the event loop around one Editor.
type Application struct {
	editor  *editor.Editor
	backend backend.Backend
	logger  *Logger
	opts    Options

	width, height int

	// top is the first document screen row shown on the terminal.
	top int

	// newWatcher builds the file watcher when Watch is set.
	newWatcher  func() (watcher.Watcher, error)
	watch       watcher.Watcher
	watchedPath string

	// commandRan is set while a key runs a command line.
	commandRan bool

	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
}

// New creates an application for ed drawing on b.
func New(ed *editor.Editor, b backend.Backend, opts Options) *Application {
	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}
	return &Application{
		editor:     ed,
		backend:    b,
		logger:     logger,
		opts:       opts,
		done:       make(chan struct{}),
		newWatcher: defaultWatcher,
	}
}

func defaultWatcher() (watcher.Watcher, error) {
	return watcher.New()
}

// Editor returns the driven editor.
func (app *Application) Editor() *editor.Editor {
	return app.editor
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// IsRunning returns true while Run is executing.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Run initializes the backend and processes events until the editor quits,
// Shutdown is called or ctx is done. A normal quit returns nil; ctx
// cancellation returns ctx.Err(). The document is left open; its owner
// closes it.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()
	app.width, app.height = app.backend.Size()

	unsubscribe := app.editor.ModeManager().OnChange(func(from, to mode.Mode) {
		if from != nil && to != nil {
			app.logger.Debug("mode %s -> %s", from.Name(), to.Name())
		}
	})
	defer unsubscribe()
	defer app.editor.OnCommand(app.onCommand)()

	if app.opts.Watch {
		app.startWatch()
		defer app.stopWatch()
	}

	var tick <-chan time.Time
	if app.opts.RecoveryInterval > 0 {
		ticker := time.NewTicker(app.opts.RecoveryInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	stop := make(chan struct{})
	defer close(stop)
	events := make(chan backend.Event)
	go app.pollEvents(events, stop)

	return app.eventLoop(ctx, events, tick)
}

// Shutdown makes a running event loop return nil.
func (app *Application) Shutdown() {
	app.stopOnce.Do(func() { close(app.done) })
}

// pollEvents forwards backend events until the backend closes or stop is
// closed. Events the editor has no use for are dropped here.
func (app *Application) pollEvents(events chan<- backend.Event, stop <-chan struct{}) {
	defer close(events)
	for {
		ev := app.backend.PollEvent()
		switch ev.Type {
		case backend.EventClosed:
			return
		case backend.EventNone:
			continue
		}
		select {
		case events <- ev:
		case <-stop:
			return
		}
	}
}
