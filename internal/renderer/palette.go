package renderer

import (
	"github.com/dshills/pyide/internal/renderer/core"
	"github.com/dshills/pyide/internal/theme"
)

// Palette holds the styles derived from a theme.
type Palette struct {
	Text      core.Style
	Gutter    core.Style
	Bar       core.Style
	Selection core.Style
	Caret     core.Style
}

// NewPalette derives the screen styles from theme colors.
func NewPalette(c theme.Colors) Palette {
	bg := core.ColorFromColorful(c.Background)
	fg := core.ColorFromColorful(c.Foreground)
	return Palette{
		Text:   core.NewStyle(fg, bg),
		Gutter: core.NewStyle(fg.Blend(bg, 0.55), bg),
		Bar:    core.NewStyle(fg, bg.Blend(fg, 0.12)),
		Selection: core.NewStyle(
			core.ColorFromColorful(c.SelectionForeground),
			core.ColorFromColorful(c.SelectionBackground),
		),
		Caret: core.NewStyle(bg, core.ColorFromColorful(c.Caret)),
	}
}
