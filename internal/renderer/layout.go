package renderer

import "github.com/dshills/pyide/internal/renderer/core"

// Layout holds the screen regions of a frame.
type Layout struct {
	MenuBar     core.ScreenRect
	TabBar      core.ScreenRect
	Editor      core.ScreenRect
	OutputTitle core.ScreenRect
	Output      core.ScreenRect
	Status      core.ScreenRect
}

// ComputeLayout splits a width by height screen into regions. Regions that
// do not fit on a very small screen are empty.
func ComputeLayout(width, height int) Layout {
	var l Layout
	screen := core.RectFromSize(0, 0, height, width)

	l.MenuBar, screen = screen.SplitTop(1)
	screen, l.Status = screen.SplitBottom(1)
	l.TabBar, screen = screen.SplitTop(1)

	outputRows := screen.Height() / 3
	if outputRows < 1 && screen.Height() >= 3 {
		outputRows = 1
	}
	if outputRows > 0 {
		var pane core.ScreenRect
		screen, pane = screen.SplitBottom(outputRows + 1)
		l.OutputTitle, l.Output = pane.SplitTop(1)
	}
	l.Editor = screen
	return l
}
