package app

import (
	"context"

	"github.com/dshills/pyide/internal/dispatcher/handler"
	filehandler "github.com/dshills/pyide/internal/dispatcher/handlers/file"
	runhandler "github.com/dshills/pyide/internal/dispatcher/handlers/run"
	tabhandler "github.com/dshills/pyide/internal/dispatcher/handlers/tab"
	themehandler "github.com/dshills/pyide/internal/dispatcher/handlers/theme"
	"github.com/dshills/pyide/internal/input"
)

// Actions of the app namespace.
const (
	ActionExit = "app.exit"
	ActionMenu = "app.menu" // toggles the menu bar
)

// registerHandlers registers every command namespace with the dispatcher.
func (app *Application) registerHandlers() error {
	handlers := []handler.NamespaceHandler{
		filehandler.NewHandler(app.files, app.tabs),
		runhandler.NewHandler(app.pipeline),
		themehandler.NewHandler(app.tabs),
		tabhandler.NewHandler(app.tabs),
		app.editor,
		app.appHandler(),
	}
	for _, h := range handlers {
		if err := app.dispatcher.Register(h); err != nil {
			return err
		}
	}
	return nil
}

func (app *Application) appHandler() handler.NamespaceHandler {
	h := handler.NewBaseNamespaceHandler("app")
	h.Register(ActionExit, func(context.Context, input.Action) handler.Result {
		return handler.Quit()
	})
	h.Register(ActionMenu, func(context.Context, input.Action) handler.Result {
		if app.menu.IsOpen() {
			app.menu.Close()
		} else {
			app.menu.Open(0)
		}
		return handler.Success()
	})
	return h
}
