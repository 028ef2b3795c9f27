package dispatcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/dshills/pyide/internal/dispatcher/handler"
	"github.com/dshills/pyide/internal/input"
)

// Dispatcher routes actions to namespace handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]handler.NamespaceHandler

	logger           *slog.Logger
	recoverFromPanic bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for dispatch tracing and panics.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithPanicRecovery controls whether handler panics are recovered.
// It is enabled by default.
func WithPanicRecovery(enabled bool) Option {
	return func(d *Dispatcher) {
		d.recoverFromPanic = enabled
	}
}

// New creates a dispatcher with no handlers.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		handlers:         make(map[string]handler.NamespaceHandler),
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		recoverFromPanic: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register adds a namespace handler.
func (d *Dispatcher) Register(h handler.NamespaceHandler) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	ns := h.Namespace()
	if _, ok := d.handlers[ns]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateNamespace, ns)
	}
	d.handlers[ns] = h
	return nil
}

// Has reports whether some handler implements the action.
func (d *Dispatcher) Has(actionName string) bool {
	return d.route(actionName) != nil
}

// Actions returns every registered action name, sorted.
func (d *Dispatcher) Actions() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var names []string
	for _, h := range d.handlers {
		names = append(names, h.Actions()...)
	}
	slices.Sort(names)
	return names
}

func (d *Dispatcher) route(actionName string) handler.NamespaceHandler {
	ns := input.Action{Name: actionName}.Namespace()
	if ns == "" {
		return nil
	}

	d.mu.RLock()
	h := d.handlers[ns]
	d.mu.RUnlock()

	if h == nil || !h.CanHandle(actionName) {
		return nil
	}
	return h
}

// Dispatch executes an action. It never panics when panic recovery is
// enabled; failures are reported in the result.
func (d *Dispatcher) Dispatch(ctx context.Context, action input.Action) handler.Result {
	if action.Name == "" {
		return handler.Error(ErrInvalidAction)
	}

	h := d.route(action.Name)
	if h == nil {
		return handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	}

	start := time.Now()
	var result handler.Result
	if d.recoverFromPanic {
		result = d.executeWithRecovery(ctx, h, action)
	} else {
		result = h.Handle(ctx, action)
	}

	d.logger.Debug("dispatch",
		"action", action.Name,
		"source", action.Source.String(),
		"status", result.Status.String(),
		"duration", time.Since(start),
	)
	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(ctx context.Context, h handler.Handler, action input.Action) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			perr := &PanicError{Action: action.Name, Value: r, Stack: stack[:n]}
			d.logger.Error("handler panic",
				"action", action.Name,
				"panic", fmt.Sprint(r),
				"stack", string(perr.Stack),
			)
			result = handler.Error(perr)
		}
	}()

	return h.Handle(ctx, action)
}
