package app

import (
	"context"
	"log/slog"
	"slices"

	"github.com/dshills/pyide/internal/config"
	"github.com/dshills/pyide/internal/dispatcher"
	editorhandler "github.com/dshills/pyide/internal/dispatcher/handlers/editor"
	"github.com/dshills/pyide/internal/document"
	"github.com/dshills/pyide/internal/fileio"
	"github.com/dshills/pyide/internal/input/keymap"
	"github.com/dshills/pyide/internal/input/menu"
	"github.com/dshills/pyide/internal/integration/process"
	"github.com/dshills/pyide/internal/renderer"
	"github.com/dshills/pyide/internal/runner"
	"github.com/dshills/pyide/internal/tabs"
	"github.com/dshills/pyide/internal/theme"
)

// New creates an Application: it builds every component, loads the
// configuration and opens the startup files. A configuration that cannot be
// read or does not validate is an error. Files that fail to open are
// reported on screen once Run starts.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		logger:  opts.Logger,
		level:   opts.LogLevel,
		metrics: NewMetrics(),
		scrolls: make(map[document.Handle]*renderer.Scroll),
		ctx:     context.Background(),
	}
	if app.logger == nil {
		app.logger = slog.New(slog.DiscardHandler)
	}

	// 1. State: theme table, tabs and the shared output buffer
	app.tabs = tabs.NewController(document.NewRegistry(), document.NewOutput(), theme.NewTable())

	// 2. Services
	app.files = fileio.New(app.tabs)
	app.supervisor = opts.Supervisor
	if app.supervisor == nil {
		app.supervisor = process.NewSupervisor(process.WithExitHook(logExit(WithComponent(app.logger, "process"))))
	}
	app.pipeline = runner.New(app.tabs, app.supervisor,
		runner.WithLogger(WithComponent(app.logger, "runner")))

	// 3. Dispatcher and command handlers
	app.dispatcher = dispatcher.New(dispatcher.WithLogger(WithComponent(app.logger, "dispatcher")))
	app.editor = editorhandler.NewHandler(app.tabs)
	if err := app.registerHandlers(); err != nil {
		return nil, &InitError{Component: "dispatcher", Err: err}
	}

	// 4. Configuration; key map validation needs the registered actions
	app.source = config.Source{
		Path:      opts.ConfigPath,
		LookupEnv: opts.LookupEnv,
		Overrides: opts.Overrides,
		Checks:    []config.Check{keymap.Check(app.dispatcher.Has)},
	}
	cfg, err := app.source.Load()
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if err := app.applyConfig(cfg); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	app.logger.Info("configuration loaded",
		"path", cfg.Path,
		"theme", app.tabs.Theme(),
		"interpreter", app.pipeline.Interpreter().String(),
		"timeout", app.pipeline.Timeout())

	// 5. Startup files; the editor always starts with at least one tab
	app.openStartupFiles()

	return app, nil
}

// applyConfig makes cfg the configuration in effect. It is used at startup
// and on every reload; cfg must already be validated. A setting that cannot
// be applied does not stop the others; the failures are returned together
// as an *ErrorList.
func (app *Application) applyConfig(cfg *config.Config) error {
	errs := NewErrorList()

	themes := app.tabs.Themes()
	names := make([]string, 0, len(cfg.Themes))
	for name := range cfg.Themes {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := themes.Define(name, cfg.Themes[name]); err != nil {
			errs.Add(err)
		}
	}
	if cfg.Editor.Theme != app.tabs.Theme() {
		if err := app.tabs.ApplyTheme(cfg.Editor.Theme); err != nil {
			errs.Add(err)
		} else {
			app.logger.Info("theme applied", "theme", cfg.Editor.Theme)
		}
	}

	timeout, err := cfg.RunTimeout()
	if err != nil {
		errs.Add(err)
	}
	app.pipeline.Reconfigure(
		runner.WithInterpreter(runner.Interpreter{Command: cfg.Run.Interpreter, Args: cfg.Run.Args}),
		runner.WithTimeout(timeout),
	)

	km, err := keymap.FromConfig(cfg, app.dispatcher.Has)
	if err != nil {
		errs.Add(err)
	}
	app.keymap = km
	app.menu = menu.Build(themes.Names(), km)

	app.editor.SetTabWidth(cfg.Editor.TabWidth)

	if app.level != nil {
		if level, err := cfg.LogLevel(); err == nil {
			app.level.Set(level)
		}
	}

	app.config = cfg
	return errs.AsError()
}

func (app *Application) openStartupFiles() {
	if len(app.opts.Files) > 0 {
		opened, err := app.files.Open(app.opts.Files)
		app.logger.Info("opened startup files", "opened", len(opened), "requested", len(app.opts.Files))
		if err != nil {
			app.logger.Warn("startup files failed", "error", err)
			app.showError(err)
		}
	}
	if app.tabs.Len() == 0 {
		app.tabs.NewTab("", "")
	}
}

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// logExit returns a supervisor hook that logs each reaped process.
func logExit(logger *slog.Logger) func(*process.Process) {
	return func(p *process.Process) {
		exit, _ := p.Exit()
		logger.Debug("process exited",
			"name", p.Name,
			"id", p.ID,
			"code", exit.Code,
			"signaled", exit.Signaled,
			"runtime", p.Runtime())
	}
}
