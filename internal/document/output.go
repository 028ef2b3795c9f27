package document

import (
	"sync"

	"github.com/dshills/pyide/internal/theme"
)

// Output is the single output pane shared by all tabs. It holds the text
// selected from the most recent run; every run replaces it entirely.
type Output struct {
	mu       sync.RWMutex
	text     string
	colors   theme.Colors
	revision uint64
}

// NewOutput creates an empty output buffer.
func NewOutput() *Output {
	return &Output{}
}

// Set replaces the output text.
func (o *Output) Set(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.text = text
	o.revision++
}

// Text returns the current output text.
func (o *Output) Text() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.text
}

// Revision counts the writes made with Set.
func (o *Output) Revision() uint64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.revision
}

// Colors returns the colors last applied to the pane.
func (o *Output) Colors() theme.Colors {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.colors
}

// SetColors applies a theme's colors to the pane.
func (o *Output) SetColors(c theme.Colors) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.colors = c
}
