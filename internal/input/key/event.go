package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if the event types a printable character: a rune
// with no modifier other than Shift.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) &&
		e.Modifiers&(ModCtrl|ModAlt|ModMeta) == 0
}

// Normalize returns the form used to compare events. Characters typed with
// Ctrl, Alt or Meta are lowercased and lose Shift, because terminals
// cannot report Ctrl+Shift+S apart from Ctrl+S. Shift on a plain character
// is implied by the character itself.
func (e Event) Normalize() Event {
	if e.Key != KeyRune {
		return e
	}
	if e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0 {
		e.Rune = unicode.ToLower(e.Rune)
		e.Modifiers = e.Modifiers.Without(ModShift)
		return e
	}
	e.Modifiers = e.Modifiers.Without(ModShift)
	return e
}

// String returns the canonical specification of the event, such as "a",
// "Ctrl+S", "Alt+Left" or "F5". Parse accepts every string it produces.
func (e Event) String() string {
	e = e.Normalize()

	var name string
	switch e.Key {
	case KeyRune:
		switch e.Rune {
		case ' ':
			name = "Space"
		case '+':
			name = "Plus"
		default:
			if e.Modifiers != ModNone {
				name = string(unicode.ToUpper(e.Rune))
			} else {
				name = string(e.Rune)
			}
		}
	default:
		name = e.Key.String()
	}

	if mods := e.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	return e.Normalize() == other.Normalize()
}

// Matches checks if this event matches a key specification string.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.Equals(parsed)
}

// IsEscape returns true if this is the Escape key with no modifiers.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// IsEnter returns true if this is the Enter key with no modifiers.
func (e Event) IsEnter() bool {
	return e.Key == KeyEnter && e.Modifiers == ModNone
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("key.Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key, e.Rune, strings.ReplaceAll(e.Modifiers.String(), "+", "|"))
}
