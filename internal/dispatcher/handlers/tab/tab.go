// Package tab provides handlers for switching between tabs.
package tab

import (
	"context"
	"fmt"

	"github.com/dshills/pyide/internal/dispatcher/handler"
	"github.com/dshills/pyide/internal/input"
	"github.com/dshills/pyide/internal/tabs"
)

// Action names for tab navigation.
const (
	ActionNext   = "tab.next"
	ActionPrev   = "tab.prev"
	ActionSelect = "tab.select" // Args.Extra["index"] is the zero-based tab index
)

// Handler implements the tab namespace.
type Handler struct {
	*handler.BaseNamespaceHandler

	tabs *tabs.Controller
}

// NewHandler creates a tab handler for c.
func NewHandler(c *tabs.Controller) *Handler {
	h := &Handler{
		BaseNamespaceHandler: handler.NewBaseNamespaceHandler("tab"),
		tabs:                 c,
	}
	h.Register(ActionNext, h.next)
	h.Register(ActionPrev, h.prev)
	h.Register(ActionSelect, h.selectTab)
	return h
}

func (h *Handler) next(context.Context, input.Action) handler.Result {
	if h.tabs.Len() < 2 {
		return handler.NoOp()
	}
	h.tabs.Next()
	return handler.Success()
}

func (h *Handler) prev(context.Context, input.Action) handler.Result {
	if h.tabs.Len() < 2 {
		return handler.NoOp()
	}
	h.tabs.Prev()
	return handler.Success()
}

func (h *Handler) selectTab(_ context.Context, action input.Action) handler.Result {
	if _, ok := action.Args.Get("index"); !ok {
		return handler.Errorf("tab.select: missing index")
	}
	i := action.Args.GetInt("index")
	if !h.tabs.Select(i) {
		return handler.Error(fmt.Errorf("tab.select: index %d out of range [0,%d)", i, h.tabs.Len()))
	}
	return handler.Success()
}
