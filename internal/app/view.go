package app

import (
	"path/filepath"
	"time"

	"github.com/dshills/pyide/internal/document"
	"github.com/dshills/pyide/internal/renderer"
)

// render draws the current state.
func (app *Application) render() {
	start := time.Now()
	app.layout = renderer.Render(app.backend, app.frame())
	app.metrics.RecordRender(time.Since(start))
}

// frame describes the screen for the current state.
func (app *Application) frame() renderer.Frame {
	f := renderer.Frame{
		Menu:        app.menu,
		Tabs:        app.tabLabels(),
		ActiveTab:   app.tabs.ActiveIndex(),
		Editor:      app.editorView(),
		Status:      app.status,
		StatusError: app.statusErr,
		Modal:       app.modal,
		Chrome:      renderer.NewPalette(app.tabs.Colors()),
	}

	output := app.tabs.Output()
	f.Output = renderer.OutputView{
		Title:   app.outputTitle(),
		Text:    output.Text(),
		Palette: renderer.NewPalette(output.Colors()),
	}
	if app.prompt != nil {
		f.Prompt = app.prompt.view()
	}
	return f
}

func (app *Application) tabLabels() []renderer.TabLabel {
	tabs := app.tabs.Tabs()
	labels := make([]renderer.TabLabel, len(tabs))
	for i, tab := range tabs {
		labels[i] = renderer.TabLabel{
			Label:    filepath.Base(tab.Label()),
			Modified: tab.Modified(),
		}
	}
	return labels
}

// editorView returns the view of the active tab, or nil when no tab is
// open. Scroll positions of closed tabs are dropped.
func (app *Application) editorView() *renderer.EditorView {
	live := make(map[document.Handle]bool, app.tabs.Len())
	for _, tab := range app.tabs.Tabs() {
		live[tab.Handle()] = true
	}
	for h := range app.scrolls {
		if !live[h] {
			delete(app.scrolls, h)
		}
	}

	tab, err := app.tabs.Active()
	if err != nil {
		return nil
	}
	scroll, ok := app.scrolls[tab.Handle()]
	if !ok {
		scroll = &renderer.Scroll{}
		app.scrolls[tab.Handle()] = scroll
	}

	buf := tab.Buffer()
	cursor := buf.Cursor()
	return &renderer.EditorView{
		Text:       buf,
		CursorLine: cursor.Line,
		CursorCol:  cursor.Col,
		Scroll:     scroll,
		TabWidth:   app.editor.TabWidth(),
		Palette:    renderer.NewPalette(tab.Colors()),
	}
}

// outputTitle names the output pane after the last run.
func (app *Application) outputTitle() string {
	last := app.pipeline.Last()
	if last == nil {
		return "Output"
	}
	return "Output: " + filepath.Base(last.Path) + " (" + last.Duration.Round(time.Millisecond).String() + ")"
}
