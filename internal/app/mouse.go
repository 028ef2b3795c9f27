package app

import (
	tabhandler "github.com/dshills/pyide/internal/dispatcher/handlers/tab"
	"github.com/dshills/pyide/internal/document"
	"github.com/dshills/pyide/internal/input"
	"github.com/dshills/pyide/internal/renderer"
	"github.com/dshills/pyide/internal/renderer/backend"
	"github.com/dshills/pyide/internal/renderer/core"
)

// handleMouseEvent handles left clicks on the modal, the menu, the tab bar
// and the editor, using the layout of the last frame.
func (app *Application) handleMouseEvent(ev backend.Event) error {
	if ev.MouseButton != backend.MouseLeft {
		return nil
	}
	x, y := ev.MouseX, ev.MouseY

	if app.modal != nil {
		w, h := app.backend.Size()
		_, ok := renderer.ModalRect(core.RectFromSize(0, 0, h, w), app.modal)
		if ok.Contains(x, y) {
			app.modal = nil
		}
		return nil
	}
	if app.prompt != nil {
		return nil
	}

	if app.menu.IsOpen() {
		if rect := renderer.DropdownRect(app.layout, app.menu); rect.Contains(x, y) {
			if app.menu.Select(y - rect.Top) {
				if action, ok := app.menu.Activate(); ok {
					return app.execute(action)
				}
			}
			return nil
		}
	}

	switch {
	case app.layout.MenuBar.Contains(x, y):
		i, ok := app.menu.TitleAt(x)
		if !ok || (app.menu.IsOpen() && app.menu.OpenIndex() == i) {
			app.menu.Close()
		} else {
			app.menu.Open(i)
		}
		return nil
	case app.menu.IsOpen():
		app.menu.Close()
		return nil
	case app.layout.TabBar.Contains(x, y):
		i := renderer.TabAt(app.tabLabels(), app.tabs.ActiveIndex(), app.layout.TabBar.Width(), x-app.layout.TabBar.Left)
		if i < 0 {
			return nil
		}
		action := input.NewAction(tabhandler.ActionSelect, input.SourceMouse)
		action.Args.Extra = map[string]any{"index": i}
		return app.execute(action)
	case app.layout.Editor.Contains(x, y):
		app.clickEditor(x, y)
	}
	return nil
}

// clickEditor moves the active tab's cursor to the clicked position.
func (app *Application) clickEditor(x, y int) {
	v := app.editorView()
	line, col, ok := renderer.EditorPosition(app.layout.Editor, v, x, y)
	if !ok {
		return
	}
	tab, err := app.tabs.Active()
	if err != nil {
		return
	}
	tab.Buffer().SetCursor(document.Point{Line: line, Col: col})
}
