// Package theme provides handlers that switch the editor theme.
package theme

import (
	"context"
	"errors"

	"github.com/dshills/pyide/internal/dispatcher/handler"
	"github.com/dshills/pyide/internal/input"
	"github.com/dshills/pyide/internal/tabs"
)

// Action names for theme operations.
const (
	ActionLight = "theme.light"
	ActionDark  = "theme.dark"
	ActionApply = "theme.apply" // Args.Name selects the theme
)

// Handler implements the theme namespace.
type Handler struct {
	*handler.BaseNamespaceHandler

	tabs *tabs.Controller
}

// NewHandler creates a theme handler for the tabs of c.
func NewHandler(c *tabs.Controller) *Handler {
	h := &Handler{
		BaseNamespaceHandler: handler.NewBaseNamespaceHandler("theme"),
		tabs:                 c,
	}
	h.Register(ActionLight, h.named("light"))
	h.Register(ActionDark, h.named("dark"))
	h.Register(ActionApply, func(_ context.Context, action input.Action) handler.Result {
		return h.apply(action.Args.Name)
	})
	return h
}

func (h *Handler) named(name string) handler.Func {
	return func(context.Context, input.Action) handler.Result {
		return h.apply(name)
	}
}

// apply switches every surface to name. An unknown name leaves the current
// theme in place.
func (h *Handler) apply(name string) handler.Result {
	if name == "" {
		return handler.Error(errors.New("theme name is empty"))
	}
	if h.tabs.State().Theme == name {
		return handler.NoOp()
	}
	if err := h.tabs.ApplyTheme(name); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage("Theme: " + h.tabs.State().Theme)
}
