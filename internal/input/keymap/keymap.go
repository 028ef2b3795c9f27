package keymap

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/dshills/pyide/internal/input/key"
)

// Binding errors.
var (
	// ErrUnknownAction is returned for bindings to actions nobody handles.
	ErrUnknownAction = errors.New("unknown action")

	// ErrEmptyAction is returned for bindings without an action.
	ErrEmptyAction = errors.New("empty action")
)

// Unbind is the action name that removes a default binding.
const Unbind = "none"

// Keymap maps key presses to actions. Keys are stored in their canonical
// specification, so "<C-s>" and "Ctrl+S" name the same binding.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	bindings map[string]Binding
}

// NewKeymap creates an empty keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		bindings: make(map[string]Binding),
	}
}

// Add binds keys to action, replacing any existing binding for the same
// key press.
func (k *Keymap) Add(keys, action string) error {
	return k.AddBinding(Binding{Keys: keys, Action: action})
}

// AddBinding adds a fully configured binding.
func (k *Keymap) AddBinding(b Binding) error {
	if b.Action == "" {
		return fmt.Errorf("binding %s: %w", b.Keys, ErrEmptyAction)
	}
	canon, err := key.NormalizeSpec(b.Keys)
	if err != nil {
		return fmt.Errorf("binding %s: %w", b.Keys, err)
	}
	b.Keys = canon
	k.bindings[canon] = b
	return nil
}

// Remove deletes the binding for keys, if any.
func (k *Keymap) Remove(keys string) error {
	canon, err := key.NormalizeSpec(keys)
	if err != nil {
		return err
	}
	delete(k.bindings, canon)
	return nil
}

// Lookup returns the binding for a key press.
func (k *Keymap) Lookup(ev key.Event) (Binding, bool) {
	b, ok := k.bindings[ev.String()]
	return b, ok
}

// Len returns the number of bindings.
func (k *Keymap) Len() int {
	return len(k.bindings)
}

// Bindings returns all bindings sorted by category, then keys.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k.bindings))
	for _, b := range k.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Keys < out[j].Keys
	})
	return out
}

// KeysFor returns the key specifications bound to action, sorted.
func (k *Keymap) KeysFor(action string) []string {
	var keys []string
	for spec, b := range k.bindings {
		if b.Action == action {
			keys = append(keys, spec)
		}
	}
	slices.Sort(keys)
	return keys
}

// Clone creates a copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := NewKeymap(k.Name)
	for spec, b := range k.bindings {
		clone.bindings[spec] = b
	}
	return clone
}

// Apply layers user overrides (key specification to action name) on top of
// the keymap. The action "none" removes a binding. When known is not nil,
// actions it rejects are errors. Every bad entry is reported; good entries
// are applied regardless.
func (k *Keymap) Apply(overrides map[string]string, known func(action string) bool) error {
	specs := make([]string, 0, len(overrides))
	for spec := range overrides {
		specs = append(specs, spec)
	}
	slices.Sort(specs)

	var errs []error
	for _, spec := range specs {
		action := overrides[spec]
		if action == "" {
			errs = append(errs, &BindingError{Keys: spec, Err: ErrEmptyAction})
			continue
		}
		if action == Unbind {
			if err := k.Remove(spec); err != nil {
				errs = append(errs, &BindingError{Keys: spec, Action: action, Err: err})
			}
			continue
		}
		if known != nil && !known(action) {
			errs = append(errs, &BindingError{Keys: spec, Action: action, Err: ErrUnknownAction})
			continue
		}
		b := userBinding(spec, action)
		if err := k.AddBinding(b); err != nil {
			errs = append(errs, &BindingError{Keys: spec, Action: action, Err: errors.Unwrap(err)})
		}
	}
	return errors.Join(errs...)
}

// BindingError reports an invalid user binding.
type BindingError struct {
	Keys   string
	Action string
	Err    error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("keymap %q = %q: %v", e.Keys, e.Action, e.Err)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}
