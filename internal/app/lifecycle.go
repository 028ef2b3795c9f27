package app

import (
	"context"
	"time"

	"github.com/dshills/pyide/internal/config/watcher"
	"github.com/dshills/pyide/internal/renderer/backend"
	"github.com/dshills/pyide/internal/runner"
)

// shutdownGrace is how long interpreter processes get to exit after
// SIGTERM before they are killed.
const shutdownGrace = 2 * time.Second

// watchConfig reloads the configuration whenever its file changes. The
// reload itself runs on the event loop.
func (app *Application) watchConfig() error {
	if app.source.Path == "" {
		return nil
	}
	w, err := watcher.New()
	if err != nil {
		return err
	}
	if err := w.Watch(app.source.Path); err != nil {
		w.Stop()
		return err
	}

	log := WithComponent(app.logger, "config")
	w.OnChange(func(ev watcher.Event) {
		log.Debug("config file changed", "path", ev.Path, "op", ev.Op.String())
		_ = app.backend.PostEvent(backend.InterruptEvent(app.ReloadConfig))
	})
	w.OnError(func(err error) {
		log.Warn("config watcher error", "error", err)
	})
	w.Start()
	app.watcher = w
	return nil
}

// ReloadConfig reads the configuration again and applies it. A file that
// no longer parses or validates is reported and the previous settings
// stay in effect. It must run on the event loop.
func (app *Application) ReloadConfig() {
	cfg, err := app.source.Load()
	if err != nil {
		app.logger.Warn("config reload failed", "path", app.source.Path, "error", err)
		app.setStatus("Configuration not reloaded: "+ModalTitle(err), true)
		return
	}
	if err := app.applyConfig(cfg); err != nil {
		app.logger.Warn("config partially applied", "path", app.source.Path, "error", err)
		app.showError(NewOperationError("reload config", app.source.Path, err))
		return
	}
	app.logger.Info("configuration reloaded",
		"path", app.source.Path,
		"theme", app.tabs.Theme(),
		"interpreter", app.pipeline.Interpreter().String(),
		"timeout", app.pipeline.Timeout())
	app.setStatus("Configuration reloaded", false)
}

// Shutdown stops the config watcher and every interpreter process, then
// logs a summary of the session. It is safe to call more than once.
func (app *Application) Shutdown() {
	if app.watcher != nil {
		app.watcher.Stop()
		app.watcher = nil
	}
	if app.supervisor.IsShuttingDown() {
		return
	}
	app.supervisor.Shutdown(shutdownGrace)

	modified := 0
	for _, tab := range app.tabs.Tabs() {
		if tab.Modified() {
			modified++
		}
	}
	s := app.metrics.Snapshot()
	app.logger.Info("editor exited",
		"tabs", app.tabs.Len(),
		"modified_tabs", modified,
		"actions", s.Actions,
		"errors", s.Errors,
		"runs", s.Runs,
		"uptime", s.Uptime.Round(time.Second))
}

// RunFile runs path with the configured interpreter without a user
// interface, for the command line. The output buffer receives the
// displayed text, which is also in the result.
func (app *Application) RunFile(ctx context.Context, path string) (*runner.Result, error) {
	res, err := app.pipeline.RunFile(ctx, path)
	if res != nil {
		app.metrics.RecordRun(res.Duration)
	}
	return res, err
}
