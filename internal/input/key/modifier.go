package key

import "strings"

// Modifier is the set of modifier keys held during a key press.
type Modifier uint8

// Modifier bits. Terminals report Meta only on some platforms; Option on
// macOS arrives as Alt.
const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether m includes mod.
func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }

// With returns m plus mod.
func (m Modifier) With(mod Modifier) Modifier { return m | mod }

// Without returns m minus mod.
func (m Modifier) Without(mod Modifier) Modifier { return m &^ mod }

// modifierOrder fixes the order modifiers appear in a key specification.
var modifierOrder = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
	{ModMeta, "Meta"},
}

// String returns the modifiers joined by "+", such as "Ctrl+Alt".
func (m Modifier) String() string {
	var b strings.Builder
	for _, o := range modifierOrder {
		if !m.Has(o.mod) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('+')
		}
		b.WriteString(o.name)
	}
	return b.String()
}

// modifierAliases holds the lowercase spellings accepted in key maps. The
// single letters serve the bracketed form, as in "<C-s>".
var modifierAliases = map[string]Modifier{
	"ctrl": ModCtrl, "control": ModCtrl, "c": ModCtrl,
	"alt": ModAlt, "option": ModAlt, "opt": ModAlt, "a": ModAlt,
	"shift": ModShift, "s": ModShift,
	"meta": ModMeta, "cmd": ModMeta, "super": ModMeta, "m": ModMeta,
}

// ParseModifier returns the modifier named by name, ignoring case and
// surrounding blanks.
func ParseModifier(name string) (Modifier, bool) {
	m, ok := modifierAliases[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}
