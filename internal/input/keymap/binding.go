package keymap

// CategoryUser lists bindings that come from the configuration file.
const CategoryUser = "User"

// Binding maps one key specification to a dispatcher action.
type Binding struct {
	Keys        string // canonical specification, e.g. "Ctrl+S" or "F5"
	Action      string // e.g. "file.save"
	Description string
	Category    string // groups bindings for listing
}

// userBinding returns a binding read from the [keymap] table.
func userBinding(keys, action string) Binding {
	return Binding{Keys: keys, Action: action, Category: CategoryUser}
}
