// Package handler provides the handler interface and types for action dispatch.
package handler

import (
	"context"

	"github.com/dshills/pyide/internal/input"
)

// Handler processes a specific action or set of actions.
type Handler interface {
	// Handle executes the action and returns a result.
	Handle(ctx context.Context, action input.Action) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool
}

// Func is the signature of a single action implementation.
type Func func(ctx context.Context, action input.Action) Result

// NamespaceHandler handles all actions within a namespace.
// A namespace is the prefix before the first dot (e.g., "file" in "file.save").
type NamespaceHandler interface {
	Handler

	// Namespace returns the namespace prefix (e.g., "file", "run").
	Namespace() string

	// Actions lists the action names the handler implements.
	Actions() []string
}

// BaseNamespaceHandler provides a base implementation for namespace handlers.
type BaseNamespaceHandler struct {
	namespace string
	names     []string
	actions   map[string]Func
}

// NewBaseNamespaceHandler creates a new BaseNamespaceHandler.
func NewBaseNamespaceHandler(namespace string) *BaseNamespaceHandler {
	return &BaseNamespaceHandler{
		namespace: namespace,
		actions:   make(map[string]Func),
	}
}

// Register registers a handler function for an action name.
func (h *BaseNamespaceHandler) Register(actionName string, fn Func) {
	if _, ok := h.actions[actionName]; !ok {
		h.names = append(h.names, actionName)
	}
	h.actions[actionName] = fn
}

// Namespace implements NamespaceHandler.Namespace.
func (h *BaseNamespaceHandler) Namespace() string {
	return h.namespace
}

// Actions implements NamespaceHandler.Actions, in registration order.
func (h *BaseNamespaceHandler) Actions() []string {
	return append([]string(nil), h.names...)
}

// CanHandle implements Handler.CanHandle.
func (h *BaseNamespaceHandler) CanHandle(actionName string) bool {
	_, ok := h.actions[actionName]
	return ok
}

// Handle implements Handler.Handle.
func (h *BaseNamespaceHandler) Handle(ctx context.Context, action input.Action) Result {
	fn, ok := h.actions[action.Name]
	if !ok {
		return Errorf("unknown action in namespace %s: %s", h.namespace, action.Name)
	}
	return fn(ctx, action)
}
