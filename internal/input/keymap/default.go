package keymap

// Default returns the built-in bindings.
func Default() *Keymap {
	km := NewKeymap("default")
	for _, b := range defaultBindings {
		if err := km.AddBinding(b); err != nil {
			panic("keymap: bad default binding: " + err.Error())
		}
	}
	return km
}

var defaultBindings = []Binding{
	// File
	{Keys: "Ctrl+O", Action: "file.open", Description: "Open files", Category: "File"},
	{Keys: "Ctrl+S", Action: "file.save", Description: "Save", Category: "File"},
	{Keys: "Ctrl+A", Action: "file.saveAs", Description: "Save as", Category: "File"},
	{Keys: "F12", Action: "file.saveAs", Description: "Save as", Category: "File"},
	{Keys: "Ctrl+N", Action: "file.new", Description: "New tab", Category: "File"},
	{Keys: "Ctrl+W", Action: "file.close", Description: "Close tab", Category: "File"},
	{Keys: "Ctrl+Q", Action: "app.exit", Description: "Exit", Category: "File"},

	// Run
	{Keys: "F5", Action: "run.run", Description: "Run the saved file", Category: "Run"},
	{Keys: "Ctrl+R", Action: "run.run", Description: "Run the saved file", Category: "Run"},
	{Keys: "Ctrl+C", Action: "run.cancel", Description: "Cancel the run in progress", Category: "Run"},

	// Theme
	{Keys: "F2", Action: "theme.light", Description: "Light theme", Category: "Theme"},
	{Keys: "F3", Action: "theme.dark", Description: "Dark theme", Category: "Theme"},

	// Tabs
	{Keys: "Ctrl+PgUp", Action: "tab.prev", Description: "Previous tab", Category: "Tabs"},
	{Keys: "Ctrl+PgDn", Action: "tab.next", Description: "Next tab", Category: "Tabs"},
	{Keys: "Alt+Left", Action: "tab.prev", Description: "Previous tab", Category: "Tabs"},
	{Keys: "Alt+Right", Action: "tab.next", Description: "Next tab", Category: "Tabs"},

	// Menu
	{Keys: "F10", Action: "app.menu", Description: "Open the menu bar", Category: "View"},

	// Editing
	{Keys: "Enter", Action: "editor.newline", Category: "Editing"},
	{Keys: "Tab", Action: "editor.tab", Category: "Editing"},
	{Keys: "Backspace", Action: "editor.backspace", Category: "Editing"},
	{Keys: "Delete", Action: "editor.delete", Category: "Editing"},
	{Keys: "Left", Action: "editor.left", Category: "Editing"},
	{Keys: "Right", Action: "editor.right", Category: "Editing"},
	{Keys: "Up", Action: "editor.up", Category: "Editing"},
	{Keys: "Down", Action: "editor.down", Category: "Editing"},
	{Keys: "Home", Action: "editor.home", Category: "Editing"},
	{Keys: "End", Action: "editor.end", Category: "Editing"},
	{Keys: "PgUp", Action: "editor.pageUp", Category: "Editing"},
	{Keys: "PgDn", Action: "editor.pageDown", Category: "Editing"},
}
