package renderer

import (
	"github.com/dshills/pyide/internal/input/menu"
	"github.com/dshills/pyide/internal/renderer/backend"
	"github.com/dshills/pyide/internal/renderer/core"
)

// Frame describes everything visible on screen.
type Frame struct {
	// Menu is the menu bar; its open group is drawn as a drop-down.
	Menu *menu.Menu

	Tabs      []TabLabel
	ActiveTab int

	// Editor is the active tab's text, or nil when no tab is open.
	Editor *EditorView

	Output OutputView

	Status      string
	StatusError bool

	// Prompt takes over the status line while the user types an answer.
	Prompt *PromptView

	// Modal is drawn over everything else.
	Modal *ModalView

	// Chrome styles the bars and overlays.
	Chrome Palette
}

// Render draws f on b and flushes it.
func Render(b backend.Backend, f Frame) Layout {
	w, h := b.Size()
	l := ComputeLayout(w, h)

	b.HideCursor()
	b.Clear()
	drawMenuBar(b, l.MenuBar, f.Menu, f.Chrome)
	drawTabBar(b, l.TabBar, f.Tabs, f.ActiveTab, f.Chrome)
	drawEditor(b, l.Editor, f.Editor, f.Chrome)
	drawOutput(b, l.OutputTitle, l.Output, f.Output, f.Chrome)
	drawStatus(b, l.Status, f.Status, f.StatusError, f.Chrome)

	if f.Prompt != nil {
		drawPrompt(b, l.Status, f.Prompt, f.Chrome)
	}
	if f.Menu != nil && f.Menu.IsOpen() {
		drawDropdown(b, DropdownRect(l, f.Menu), f.Menu, f.Chrome)
		b.HideCursor()
	}
	if f.Modal != nil {
		drawModal(b, core.RectFromSize(0, 0, h, w), f.Modal, f.Chrome)
		b.HideCursor()
	}

	b.Show()
	return l
}
