// Package dispatcher routes editor actions to their handlers.
//
// Actions are named "namespace.action" (file.save, run.run, theme.dark).
// Each namespace is served by one handler.NamespaceHandler; the dispatcher
// looks the namespace up, invokes the handler and recovers from handler
// panics, turning them into error results so one faulty command cannot
// take the editor down.
//
// Handlers report back through handler.Result: success with an optional
// status message, an error to show the user, a prompt request when the
// command needs a path first, or a request to quit.
//
// # Usage
//
//	d := dispatcher.New(dispatcher.WithLogger(logger))
//	d.Register(file.NewHandler(files, tabs))
//	result := d.Dispatch(ctx, input.NewAction("file.save", input.SourceKeyboard))
package dispatcher
