// Package run provides the handler that executes the active tab.
package run

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dshills/pyide/internal/dispatcher/handler"
	"github.com/dshills/pyide/internal/input"
	"github.com/dshills/pyide/internal/runner"
)

const (
	// ActionRun executes the active tab's saved file.
	ActionRun = "run.run"
	// ActionCancel stops the run in progress. The editor acts on it while
	// a run is executing; dispatched any other time there is nothing to
	// cancel.
	ActionCancel = "run.cancel"
)

// Handler implements the run namespace.
type Handler struct {
	*handler.BaseNamespaceHandler

	pipeline *runner.Pipeline
}

// NewHandler creates a run handler backed by p.
func NewHandler(p *runner.Pipeline) *Handler {
	h := &Handler{
		BaseNamespaceHandler: handler.NewBaseNamespaceHandler("run"),
		pipeline:             p,
	}
	h.Register(ActionRun, h.run)
	h.Register(ActionCancel, h.cancel)
	return h
}

func (h *Handler) cancel(context.Context, input.Action) handler.Result {
	return handler.NoOpWithMessage("Nothing is running")
}

// run blocks until the program finishes. A nonzero exit is not an error
// here: the output pane already shows what went wrong, so it is reported
// as a status message. Cancellation by the user is reported as cancelled.
func (h *Handler) run(ctx context.Context, _ input.Action) handler.Result {
	res, err := h.pipeline.Run(ctx)

	var exitErr *runner.ProcessExitError
	switch {
	case err == nil:
		return handler.SuccessWithMessage(fmt.Sprintf("Finished in %s", res.Duration.Round(time.Millisecond)))
	case errors.As(err, &exitErr):
		return handler.SuccessWithMessage(exitErr.Error())
	case errors.Is(err, context.Canceled):
		return handler.Cancelled(err).WithMessage("Run cancelled")
	default:
		return handler.Error(err)
	}
}
