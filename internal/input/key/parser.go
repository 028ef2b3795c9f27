package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "1", "@"
//   - Special keys: "Enter", "Esc", "Tab", "F5", "PgUp", "Space"
//   - With modifiers: "Ctrl+S", "Alt+Left", "Ctrl+PgDn"
//   - Bracketed: "<C-s>", "<A-Left>", "<F12>"
//
// The result is normalized, so "Ctrl+S" and "<C-s>" parse to the same event.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseParts(strings.Split(spec[1:len(spec)-1], "-"))
	}
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseParts(strings.Split(spec, "+"))
	}
	return parseParts([]string{spec})
}

// parseParts reads modifiers from all but the last part and the key from
// the last.
func parseParts(parts []string) (Event, error) {
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod, ok := ParseModifier(p)
		if !ok {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, strings.TrimSpace(p))
		}
		mods = mods.With(mod)
	}

	ev, err := parseKey(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return Event{}, err
	}
	ev.Modifiers = ev.Modifiers.With(mods)
	return ev.Normalize(), nil
}

func parseKey(name string) (Event, error) {
	if name == "" {
		return Event{}, fmt.Errorf("%w: missing key", ErrInvalidSpec)
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return NewRuneEvent(r, ModNone), nil
	}

	lower := strings.ToLower(name)
	if k, ok := keyNameMap[lower]; ok {
		return NewSpecialEvent(k, ModNone), nil
	}
	if r, ok := runeNameMap[lower]; ok {
		return NewRuneEvent(r, ModNone), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}

// NormalizeSpec parses and re-formats a key specification to its
// canonical form.
func NormalizeSpec(spec string) (string, error) {
	event, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return event.String(), nil
}
