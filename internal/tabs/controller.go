// Package tabs provides the tab controller: it creates and closes tabs,
// tracks the active one, and applies themes to every open surface.
package tabs

import (
	"errors"

	"github.com/dshills/pyide/internal/document"
	"github.com/dshills/pyide/internal/theme"
)

// ErrNoActiveTab is returned by Active when no tab is open.
var ErrNoActiveTab = errors.New("no active tab")

// State is the application-wide editor state owned by the controller.
type State struct {
	// Theme is the name of the applied theme.
	Theme string
	// Colors are the applied theme's colors.
	Colors theme.Colors
}

// Controller manages the set of open tabs.
//
// Controller is not safe for concurrent use; it is driven from the
// application's event loop.
type Controller struct {
	registry *document.Registry
	output   *document.Output
	themes   *theme.Table

	tabs   []*document.Tab
	active int

	state State
}

// NewController creates a controller with no tabs and the default theme
// applied to the output buffer.
func NewController(registry *document.Registry, output *document.Output, themes *theme.Table) *Controller {
	c := &Controller{
		registry: registry,
		output:   output,
		themes:   themes,
		active:   -1,
	}
	if err := c.ApplyTheme(theme.Default); err != nil {
		panic("tabs: default theme missing: " + err.Error())
	}
	return c
}

// Registry returns the document registry.
func (c *Controller) Registry() *document.Registry { return c.registry }

// Output returns the shared output buffer.
func (c *Controller) Output() *document.Output { return c.output }

// Themes returns the theme table.
func (c *Controller) Themes() *theme.Table { return c.themes }

// State returns a copy of the current editor state.
func (c *Controller) State() State { return c.state }

// Theme returns the name of the applied theme.
func (c *Controller) Theme() string { return c.state.Theme }

// Colors returns the applied theme's colors.
func (c *Controller) Colors() theme.Colors { return c.state.Colors }

// NewTab creates a tab seeded with content, registers path when it is not
// empty, and makes the tab active.
func (c *Controller) NewTab(content, path string) *document.Tab {
	tab := document.NewTab(content)
	tab.SetColors(c.state.Colors)
	if path != "" {
		c.registry.Register(tab.Handle(), path)
		tab.SetLabel(path)
	}

	c.tabs = append(c.tabs, tab)
	c.active = len(c.tabs) - 1
	return tab
}

// CloseActive closes the active tab and drops its registry entry. The tab
// to its right becomes active, or the one to its left if it was last.
// It returns the closed tab, or nil when no tab was open.
func (c *Controller) CloseActive() *document.Tab {
	if c.active < 0 || c.active >= len(c.tabs) {
		return nil
	}

	closed := c.tabs[c.active]
	c.registry.Unregister(closed.Handle())
	c.tabs = append(c.tabs[:c.active], c.tabs[c.active+1:]...)

	switch {
	case len(c.tabs) == 0:
		c.active = -1
	case c.active >= len(c.tabs):
		c.active = len(c.tabs) - 1
	}
	return closed
}

// Active returns the active tab.
func (c *Controller) Active() (*document.Tab, error) {
	if c.active < 0 || c.active >= len(c.tabs) {
		return nil, ErrNoActiveTab
	}
	return c.tabs[c.active], nil
}

// ActiveIndex returns the active tab's index, or -1.
func (c *Controller) ActiveIndex() int {
	return c.active
}

// Tabs returns the open tabs in display order.
func (c *Controller) Tabs() []*document.Tab {
	out := make([]*document.Tab, len(c.tabs))
	copy(out, c.tabs)
	return out
}

// Len returns the number of open tabs.
func (c *Controller) Len() int {
	return len(c.tabs)
}

// Select makes tab i active. Out of range indexes are ignored.
func (c *Controller) Select(i int) bool {
	if i < 0 || i >= len(c.tabs) {
		return false
	}
	c.active = i
	return true
}

// Next activates the tab to the right, wrapping around.
func (c *Controller) Next() {
	if len(c.tabs) == 0 {
		return
	}
	c.active = (c.active + 1) % len(c.tabs)
}

// Prev activates the tab to the left, wrapping around.
func (c *Controller) Prev() {
	if len(c.tabs) == 0 {
		return
	}
	c.active = (c.active - 1 + len(c.tabs)) % len(c.tabs)
}

// Path returns the saved path of tab, or "".
func (c *Controller) Path(tab *document.Tab) string {
	return c.registry.Lookup(tab.Handle())
}

// SetPath records that tab is stored at path and relabels it.
func (c *Controller) SetPath(tab *document.Tab, path string) {
	c.registry.Register(tab.Handle(), path)
	tab.SetLabel(path)
}

// ApplyTheme makes name the current theme and re-colors every open tab and
// the output buffer.
func (c *Controller) ApplyTheme(name string) error {
	th, err := c.themes.Lookup(name)
	if err != nil {
		return err
	}

	c.state = State{Theme: th.Name, Colors: th.Colors}
	for _, tab := range c.tabs {
		tab.SetColors(th.Colors)
	}
	c.output.SetColors(th.Colors)
	return nil
}
