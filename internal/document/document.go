// Package document holds the editor's document state: tabs with their text
// buffers, the registry mapping tabs to saved paths, and the shared output
// buffer that receives run results.
package document

import (
	"github.com/google/uuid"

	"github.com/dshills/pyide/internal/theme"
)

// Untitled labels tabs that have never been saved.
const Untitled = "Untitled"

// Handle identifies a tab. Handles are never reused.
type Handle string

// NewHandle returns a fresh, unique handle.
func NewHandle() Handle {
	return Handle(uuid.NewString())
}

// Tab is one open document.
type Tab struct {
	handle   Handle
	label    string
	buf      *Buffer
	colors   theme.Colors
	savedRev uint64
}

// NewTab creates a tab seeded with content.
func NewTab(content string) *Tab {
	buf := NewBuffer(content)
	return &Tab{
		handle:   NewHandle(),
		label:    Untitled,
		buf:      buf,
		savedRev: buf.Revision(),
	}
}

// Handle returns the tab's identity.
func (t *Tab) Handle() Handle { return t.handle }

// Label returns the display label.
func (t *Tab) Label() string { return t.label }

// SetLabel sets the display label. An empty label resets it to Untitled.
func (t *Tab) SetLabel(label string) {
	if label == "" {
		label = Untitled
	}
	t.label = label
}

// Buffer returns the tab's text buffer.
func (t *Tab) Buffer() *Buffer { return t.buf }

// Text returns the buffer content.
func (t *Tab) Text() string { return t.buf.Text() }

// SetText replaces the buffer content.
func (t *Tab) SetText(text string) { t.buf.SetText(text) }

// Colors returns the colors last applied to the tab.
func (t *Tab) Colors() theme.Colors { return t.colors }

// SetColors applies a theme's colors to the tab.
func (t *Tab) SetColors(c theme.Colors) { t.colors = c }

// Modified reports whether the buffer changed since it was last saved
// or loaded.
func (t *Tab) Modified() bool {
	return t.buf.Revision() != t.savedRev
}

// MarkSaved records the current buffer state as persisted.
func (t *Tab) MarkSaved() {
	t.savedRev = t.buf.Revision()
}
