// Package editor provides handlers that edit the active tab's buffer and
// move its cursor.
package editor

import (
	"context"
	"strings"

	"github.com/dshills/pyide/internal/dispatcher/handler"
	"github.com/dshills/pyide/internal/document"
	"github.com/dshills/pyide/internal/input"
	"github.com/dshills/pyide/internal/tabs"
)

// Action names for editing.
const (
	ActionInsert    = "editor.insert" // Args.Text is inserted at the cursor
	ActionNewline   = "editor.newline"
	ActionTab       = "editor.tab"
	ActionBackspace = "editor.backspace"
	ActionDelete    = "editor.delete"
	ActionLeft      = "editor.left"
	ActionRight     = "editor.right"
	ActionUp        = "editor.up"
	ActionDown      = "editor.down"
	ActionHome      = "editor.home"
	ActionEnd       = "editor.end"
	ActionPageUp    = "editor.pageUp"   // Args.Extra["page"] overrides the page height
	ActionPageDown  = "editor.pageDown" // Args.Extra["page"] overrides the page height
)

// Defaults for editing behavior.
const (
	DefaultTabWidth = 4
	DefaultPageSize = 20
)

// Handler implements the editor namespace.
type Handler struct {
	*handler.BaseNamespaceHandler

	tabs     *tabs.Controller
	tabWidth int
}

// Option configures a Handler.
type Option func(*Handler)

// WithTabWidth sets the number of columns between tab stops.
func WithTabWidth(n int) Option {
	return func(h *Handler) {
		h.SetTabWidth(n)
	}
}

// NewHandler creates an editor handler for the tabs of c.
func NewHandler(c *tabs.Controller, opts ...Option) *Handler {
	h := &Handler{
		BaseNamespaceHandler: handler.NewBaseNamespaceHandler("editor"),
		tabs:                 c,
		tabWidth:             DefaultTabWidth,
	}
	for _, opt := range opts {
		opt(h)
	}

	h.Register(ActionInsert, h.edit(func(b *document.Buffer, a input.Action) bool {
		b.Insert(a.Args.Text)
		return a.Args.Text != ""
	}))
	h.Register(ActionNewline, h.edit(func(b *document.Buffer, _ input.Action) bool {
		b.Newline()
		return true
	}))
	h.Register(ActionTab, h.edit(func(b *document.Buffer, _ input.Action) bool {
		col := b.Cursor().Col
		b.Insert(strings.Repeat(" ", h.tabWidth-col%h.tabWidth))
		return true
	}))
	h.Register(ActionBackspace, h.edit(func(b *document.Buffer, _ input.Action) bool {
		return b.Backspace()
	}))
	h.Register(ActionDelete, h.edit(func(b *document.Buffer, _ input.Action) bool {
		return b.Delete()
	}))

	h.Register(ActionLeft, h.move(func(b *document.Buffer, _ int) { b.MoveLeft() }))
	h.Register(ActionRight, h.move(func(b *document.Buffer, _ int) { b.MoveRight() }))
	h.Register(ActionUp, h.move(func(b *document.Buffer, _ int) { b.MoveUp(1) }))
	h.Register(ActionDown, h.move(func(b *document.Buffer, _ int) { b.MoveDown(1) }))
	h.Register(ActionHome, h.move(func(b *document.Buffer, _ int) { b.Home() }))
	h.Register(ActionEnd, h.move(func(b *document.Buffer, _ int) { b.End() }))
	h.Register(ActionPageUp, h.move(func(b *document.Buffer, page int) { b.MoveUp(page) }))
	h.Register(ActionPageDown, h.move(func(b *document.Buffer, page int) { b.MoveDown(page) }))
	return h
}

// SetTabWidth changes the tab stop width. Values below 1 are ignored.
func (h *Handler) SetTabWidth(n int) {
	if n > 0 {
		h.tabWidth = n
	}
}

// TabWidth returns the tab stop width.
func (h *Handler) TabWidth() int { return h.tabWidth }

// edit wraps a buffer modification. fn reports whether the buffer changed.
func (h *Handler) edit(fn func(*document.Buffer, input.Action) bool) handler.Func {
	return func(_ context.Context, action input.Action) handler.Result {
		tab, err := h.tabs.Active()
		if err != nil {
			return handler.NoOp()
		}
		if !fn(tab.Buffer(), action) {
			return handler.NoOp()
		}
		return handler.Success()
	}
}

// move wraps a cursor motion.
func (h *Handler) move(fn func(b *document.Buffer, page int)) handler.Func {
	return func(_ context.Context, action input.Action) handler.Result {
		tab, err := h.tabs.Active()
		if err != nil {
			return handler.NoOp()
		}
		page := action.Args.GetInt("page")
		if page <= 0 {
			page = DefaultPageSize
		}

		b := tab.Buffer()
		before := b.Cursor()
		fn(b, page)
		if b.Cursor() == before {
			return handler.NoOp()
		}
		return handler.Success()
	}
}
