package input

// ActionSource indicates the origin of an action.
type ActionSource uint8

const (
	// SourceKeyboard indicates the action originated from a key binding.
	SourceKeyboard ActionSource = iota
	// SourceMouse indicates the action originated from a mouse click.
	SourceMouse
	// SourceMenu indicates the action was picked from the menu bar.
	SourceMenu
	// SourcePrompt indicates the action completes a prompt the user
	// answered. An empty path in a prompt answer means the prompt was
	// cancelled.
	SourcePrompt
	// SourceAPI indicates the action was issued programmatically, for
	// instance from the command line or a configuration reload.
	SourceAPI
)

// String returns a string representation of the action source.
func (s ActionSource) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourceMouse:
		return "mouse"
	case SourceMenu:
		return "menu"
	case SourcePrompt:
		return "prompt"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// ActionArgs holds arguments for an action.
type ActionArgs struct {
	// Path is a filesystem path, such as a prompt answer.
	Path string

	// Text for insert operations.
	Text string

	// Name selects among several targets, such as a theme or tab.
	Name string

	// Extra holds additional key-value pairs for extensibility.
	Extra map[string]any
}

// Get retrieves a value from Extra.
func (a ActionArgs) Get(key string) (any, bool) {
	if a.Extra == nil {
		return nil, false
	}
	v, ok := a.Extra[key]
	return v, ok
}

// GetString retrieves a string value from Extra.
func (a ActionArgs) GetString(key string) string {
	if v, ok := a.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetInt retrieves an int value from Extra.
func (a ActionArgs) GetInt(key string) int {
	if v, ok := a.Get(key); ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

// Action represents a command to be executed by the dispatcher.
type Action struct {
	// Name is the command identifier (e.g., "file.save", "run.run").
	Name string

	// Args contains command-specific arguments.
	Args ActionArgs

	// Source indicates where this action originated.
	Source ActionSource
}

// NewAction creates an action with no arguments.
func NewAction(name string, source ActionSource) Action {
	return Action{Name: name, Source: source}
}

// WithPath returns a copy of the action carrying path.
func (a Action) WithPath(path string) Action {
	a.Args.Path = path
	return a
}

// WithText returns a copy of the action carrying text.
func (a Action) WithText(text string) Action {
	a.Args.Text = text
	return a
}

// WithName returns a copy of the action carrying name.
func (a Action) WithName(name string) Action {
	a.Args.Name = name
	return a
}

// Namespace returns the part of the name before the first dot.
func (a Action) Namespace() string {
	for i := 0; i < len(a.Name); i++ {
		if a.Name[i] == '.' {
			return a.Name[:i]
		}
	}
	return ""
}
