package app

import (
	"context"
	"errors"
	"time"

	"github.com/dshills/pyide/internal/dispatcher/handler"
	editorhandler "github.com/dshills/pyide/internal/dispatcher/handlers/editor"
	runhandler "github.com/dshills/pyide/internal/dispatcher/handlers/run"
	"github.com/dshills/pyide/internal/input"
	"github.com/dshills/pyide/internal/input/key"
	"github.com/dshills/pyide/internal/renderer"
	"github.com/dshills/pyide/internal/renderer/backend"
)

// Run initializes the backend and runs the event loop until the user
// exits or ctx is done. It blocks.
func (app *Application) Run(ctx context.Context) error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	app.ctx = ctx
	stop := context.AfterFunc(ctx, func() {
		_ = app.backend.PostEvent(backend.InterruptEvent(app.requestQuit))
	})
	defer stop()

	if app.opts.Watch {
		if err := app.watchConfig(); err != nil {
			app.logger.Warn("config watch failed", "path", app.source.Path, "error", err)
		}
	}

	app.logger.Info("editor started", "tabs", app.tabs.Len())
	return app.eventLoop()
}

// eventLoop is the main application loop. It draws, then blocks for the
// next event.
func (app *Application) eventLoop() error {
	for {
		app.render()

		ev := app.nextEvent()
		if ev.Type == backend.EventNone && app.ctx.Err() != nil {
			return nil
		}
		if err := app.handleBackendEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

// nextEvent returns the oldest deferred event, or blocks for a new one.
func (app *Application) nextEvent() backend.Event {
	if len(app.deferred) > 0 {
		ev := app.deferred[0]
		app.deferred = app.deferred[1:]
		return ev
	}
	return app.backend.PollEvent()
}

// requestQuit asks the loop to exit after the current event.
func (app *Application) requestQuit() {
	app.quit = true
}

// Interrupt is called on SIGINT or SIGTERM. While an action is executing,
// typically a run, it cancels that action; otherwise it asks the editor to
// exit. It is safe to call from any goroutine.
func (app *Application) Interrupt() {
	app.mu.Lock()
	cancel := app.inflight
	app.inflight = nil
	app.mu.Unlock()

	if cancel != nil {
		app.logger.Info("interrupt: cancelling the running action")
		cancel()
		return
	}

	app.logger.Info("interrupt: exiting")
	if app.backend != nil {
		_ = app.backend.PostEvent(backend.InterruptEvent(app.requestQuit))
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	var err error
	switch ev.Type {
	case backend.EventResize:
		app.backend.Sync()
	case backend.EventKey:
		err = app.handleKeyEvent(ev.Key)
	case backend.EventMouse:
		err = app.handleMouseEvent(ev)
	case backend.EventPaste:
		app.pasting = ev.PasteStart
	case backend.EventInterrupt:
		if ev.Interrupt != nil {
			ev.Interrupt()
		}
	}
	if err == nil && app.quit {
		err = ErrQuit
	}
	return err
}

// handleKeyEvent routes a key to the modal, the prompt, the open menu or
// the key map, in that order. Unbound printable keys are typed.
func (app *Application) handleKeyEvent(ev key.Event) error {
	switch {
	case app.modal != nil:
		if ev.IsEnter() || ev.IsEscape() {
			app.modal = nil
		}
		return nil
	case app.prompt != nil:
		return app.handlePromptKey(ev)
	case app.pasting:
		return app.handlePasteKey(ev)
	case app.menu.IsOpen():
		return app.handleMenuKey(ev)
	}

	if b, ok := app.keymap.Lookup(ev); ok {
		return app.execute(input.NewAction(b.Action, input.SourceKeyboard))
	}
	if ev.IsChar() {
		return app.execute(input.NewAction(editorhandler.ActionInsert, input.SourceKeyboard).WithText(string(ev.Rune)))
	}
	return nil
}

// handlePasteKey inserts pasted keys literally, bypassing the key map.
func (app *Application) handlePasteKey(ev key.Event) error {
	var text string
	switch {
	case ev.IsChar():
		text = string(ev.Rune)
	case ev.Key == key.KeyEnter:
		text = "\n"
	case ev.Key == key.KeyTab:
		text = "\t"
	default:
		return nil
	}
	return app.execute(input.NewAction(editorhandler.ActionInsert, input.SourceKeyboard).WithText(text))
}

func (app *Application) handleMenuKey(ev key.Event) error {
	switch {
	case ev.IsEscape():
		app.menu.Close()
	case ev.IsEnter():
		if action, ok := app.menu.Activate(); ok {
			return app.execute(action)
		}
	case ev.Modifiers != key.ModNone:
	case ev.Key == key.KeyLeft:
		app.menu.Left()
	case ev.Key == key.KeyRight:
		app.menu.Right()
	case ev.Key == key.KeyUp:
		app.menu.Up()
	case ev.Key == key.KeyDown:
		app.menu.Down()
	default:
		// The menu toggle key closes the menu; other bindings are ignored.
		if b, ok := app.keymap.Lookup(ev); ok && b.Action == ActionMenu {
			app.menu.Close()
		}
	}
	return nil
}

func (app *Application) handlePromptKey(ev key.Event) error {
	p := app.prompt
	switch p.handleKey(ev) {
	case promptAccepted:
		app.prompt = nil
		return app.answerPrompt(p.req, p.Text())
	case promptCancelled:
		app.prompt = nil
		return app.answerPrompt(p.req, "")
	}
	return nil
}

// answerPrompt dispatches the prompt's action with the answer. An empty
// answer tells the handler the prompt was cancelled.
func (app *Application) answerPrompt(req handler.PromptRequest, answer string) error {
	return app.execute(input.NewAction(req.Action, input.SourcePrompt).WithPath(answer))
}

// execute dispatches action and applies its result to the screen state.
// The action runs with a context that Interrupt cancels.
func (app *Application) execute(action input.Action) error {
	ctx, cancel := context.WithCancel(app.ctx)
	app.mu.Lock()
	app.inflight = cancel
	app.mu.Unlock()

	var result handler.Result
	if action.Name == runhandler.ActionRun {
		result = app.dispatchWhileReading(ctx, action)
	} else {
		result = app.dispatcher.Dispatch(ctx, action)
	}

	app.mu.Lock()
	app.inflight = nil
	app.mu.Unlock()
	cancel()

	app.metrics.RecordAction(result)
	if action.Name == runhandler.ActionRun {
		if last := app.pipeline.Last(); last != nil && result.IsOK() {
			app.metrics.RecordRun(last.Duration)
		}
	}
	return app.handleResult(action, result)
}

// dispatchWhileReading dispatches action on another goroutine and keeps
// reading events until it returns. The terminal is in raw mode, so Ctrl+C
// arrives as a key rather than SIGINT; reading events is the only way the
// cancel binding can reach a run. Until the action returns only the cancel
// binding and resizes are handled. Every other event, interrupts included,
// is deferred, so nothing but the action touches editor state meanwhile.
func (app *Application) dispatchWhileReading(ctx context.Context, action input.Action) handler.Result {
	done := make(chan handler.Result, 1)
	go func() {
		done <- app.dispatcher.Dispatch(ctx, action)
		// Wake the loop. A full queue wakes it anyway.
		_ = app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
	}()

	prevStatus, prevErr := app.status, app.statusErr
	defer app.setStatus(prevStatus, prevErr)
	app.setStatus(app.runningStatus(), false)

	for {
		select {
		case r := <-done:
			return r
		default:
		}
		app.render()

		ev := app.backend.PollEvent()
		switch {
		case ev.Type == backend.EventInterrupt && ev.Interrupt == nil:
		case ev.Type == backend.EventResize:
			app.backend.Sync()
		case ev.Type == backend.EventKey && app.isCancelKey(ev.Key):
			app.cancelInflight()
			app.setStatus("Cancelling...", false)
		case ev.Type == backend.EventNone:
			if app.ctx.Err() != nil {
				return <-done
			}
			// A closed backend returns at once.
			time.Sleep(time.Millisecond)
		default:
			app.deferred = append(app.deferred, ev)
		}
	}
}

func (app *Application) isCancelKey(ev key.Event) bool {
	b, ok := app.keymap.Lookup(ev)
	return ok && b.Action == runhandler.ActionCancel
}

// cancelInflight cancels the executing action. Unlike Interrupt it never
// turns into a quit request.
func (app *Application) cancelInflight() {
	app.mu.Lock()
	cancel := app.inflight
	app.mu.Unlock()
	if cancel != nil {
		app.logger.Info("cancel key: cancelling the running action")
		cancel()
	}
}

func (app *Application) runningStatus() string {
	if keys := app.keymap.KeysFor(runhandler.ActionCancel); len(keys) > 0 {
		return "Running... " + keys[0] + " cancels"
	}
	return "Running..."
}

// handleResult shows the outcome of an action: a status message, a prompt
// or an error notification.
func (app *Application) handleResult(action input.Action, r handler.Result) error {
	switch r.Status {
	case handler.StatusQuit:
		app.logger.Info("exit requested", "action", action.Name, "source", action.Source.String())
		return ErrQuit
	case handler.StatusPrompt:
		if r.Prompt != nil {
			app.prompt = newPrompt(*r.Prompt)
		}
	case handler.StatusError:
		app.logger.Warn("action failed", "action", action.Name, "error", r.Error)
		if r.Message != "" {
			app.setStatus(r.Message, true)
		}
		app.showError(r.Error)
	case handler.StatusCancelled:
		app.setStatus(r.Message, false)
	default:
		if r.Message != "" {
			app.logger.Debug("action done", "action", action.Name, "message", r.Message)
			app.setStatus(r.Message, false)
		}
	}
	return nil
}

// showError opens an error notification for err.
func (app *Application) showError(err error) {
	if err == nil {
		return
	}
	app.modal = &renderer.ModalView{Title: ModalTitle(err), Message: err.Error()}
}
