// Package app provides the main application structure and coordination
// for the editor. It wires the tab controller, file service, run pipeline
// and dispatcher together, runs the event loop and draws the screen.
package app

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dshills/pyide/internal/config"
	"github.com/dshills/pyide/internal/config/watcher"
	"github.com/dshills/pyide/internal/dispatcher"
	editorhandler "github.com/dshills/pyide/internal/dispatcher/handlers/editor"
	"github.com/dshills/pyide/internal/document"
	"github.com/dshills/pyide/internal/fileio"
	"github.com/dshills/pyide/internal/input/keymap"
	"github.com/dshills/pyide/internal/input/menu"
	"github.com/dshills/pyide/internal/integration/process"
	"github.com/dshills/pyide/internal/renderer"
	"github.com/dshills/pyide/internal/renderer/backend"
	"github.com/dshills/pyide/internal/runner"
	"github.com/dshills/pyide/internal/tabs"
)

// Application is the central coordinator of the editor.
//
// Everything except Interrupt and the running flag is owned by the
// goroutine that calls Run. Other goroutines reach the editor state by
// posting interrupt events to the backend.
type Application struct {
	opts   Options
	source config.Source
	config *config.Config

	logger *slog.Logger
	level  *slog.LevelVar

	// Editor components
	tabs       *tabs.Controller
	files      *fileio.Service
	supervisor *process.Supervisor
	pipeline   *runner.Pipeline
	dispatcher *dispatcher.Dispatcher
	editor     *editorhandler.Handler
	keymap     *keymap.Keymap
	menu       *menu.Menu
	metrics    *Metrics

	backend backend.Backend
	watcher *watcher.Watcher

	// Screen state
	layout    renderer.Layout
	scrolls   map[document.Handle]*renderer.Scroll
	status    string
	statusErr bool
	prompt    *prompt
	modal     *renderer.ModalView
	pasting   bool

	ctx  context.Context
	quit bool

	// deferred holds events read while a run was executing. They are
	// handled in order before the backend is polled again.
	deferred []backend.Event

	// inflight cancels the action being executed, if any.
	mu       sync.Mutex
	inflight context.CancelFunc

	running atomic.Bool
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty means no file.
	ConfigPath string

	// Files are opened on startup.
	Files []string

	// Overrides take precedence over the configuration file.
	Overrides config.Overrides

	// LookupEnv reads PYIDE_* variables. Nil skips the environment.
	LookupEnv func(string) (string, bool)

	// Logger receives application logs. Nil discards them.
	Logger *slog.Logger

	// LogLevel is adjusted when the configuration changes. May be nil.
	LogLevel *slog.LevelVar

	// Watch reloads the configuration when its file changes.
	Watch bool

	// Supervisor starts interpreter processes. Nil creates one.
	Supervisor *process.Supervisor
}

// SetBackend sets the terminal backend. It must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// IsRunning returns true while Run is executing.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration in effect.
func (app *Application) Config() *config.Config {
	return app.config
}

// Tabs returns the tab controller.
func (app *Application) Tabs() *tabs.Controller {
	return app.tabs
}

// Dispatcher returns the dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Pipeline returns the run pipeline.
func (app *Application) Pipeline() *runner.Pipeline {
	return app.pipeline
}

// Keymap returns the key bindings in effect.
func (app *Application) Keymap() *keymap.Keymap {
	return app.keymap
}

// Menu returns the menu bar.
func (app *Application) Menu() *menu.Menu {
	return app.menu
}

// Metrics returns the session counters.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Logger returns the application's logger.
func (app *Application) Logger() *slog.Logger {
	return app.logger
}

// Status returns the status line message and whether it reports an error.
func (app *Application) Status() (string, bool) {
	return app.status, app.statusErr
}

// Modal returns the notification being shown, or nil.
func (app *Application) Modal() *renderer.ModalView {
	return app.modal
}

// PromptInput returns the title and text of the open prompt.
func (app *Application) PromptInput() (title, input string, ok bool) {
	if app.prompt == nil {
		return "", "", false
	}
	return app.prompt.req.Title, app.prompt.Text(), true
}

func (app *Application) setStatus(msg string, isErr bool) {
	app.status = msg
	app.statusErr = isErr
}
