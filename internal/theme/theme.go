// Package theme provides the named color tables applied to editor surfaces.
//
// A theme is a fixed set of color roles (background, foreground, caret,
// selection background and selection foreground). The table always contains
// the built-in "light" and "dark" themes; configuration may define more.
package theme

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Default is the theme applied at startup when nothing else is configured.
const Default = "light"

// ErrUnknownTheme is matched by every UnknownThemeError.
var ErrUnknownTheme = errors.New("unknown theme")

// UnknownThemeError reports a theme name that is not in the table.
type UnknownThemeError struct {
	Name string
}

func (e *UnknownThemeError) Error() string {
	return fmt.Sprintf("unknown theme %q", e.Name)
}

// Is makes errors.Is(err, ErrUnknownTheme) true.
func (e *UnknownThemeError) Is(target error) bool {
	return target == ErrUnknownTheme
}

// Colors holds the color roles of a theme.
type Colors struct {
	Background          colorful.Color
	Foreground          colorful.Color
	Caret               colorful.Color
	SelectionBackground colorful.Color
	SelectionForeground colorful.Color
}

// Equal reports whether both color sets are identical.
func (c Colors) Equal(other Colors) bool {
	return c.Background.Hex() == other.Background.Hex() &&
		c.Foreground.Hex() == other.Foreground.Hex() &&
		c.Caret.Hex() == other.Caret.Hex() &&
		c.SelectionBackground.Hex() == other.SelectionBackground.Hex() &&
		c.SelectionForeground.Hex() == other.SelectionForeground.Hex()
}

// Theme is a named color set.
type Theme struct {
	Name   string
	Colors Colors
}

// Spec describes a theme with textual colors, as found in configuration.
// Empty roles inherit from the light theme.
type Spec struct {
	Background          string `toml:"background" yaml:"background"`
	Foreground          string `toml:"foreground" yaml:"foreground"`
	Caret               string `toml:"caret" yaml:"caret"`
	SelectionBackground string `toml:"selection_background" yaml:"selection_background"`
	SelectionForeground string `toml:"selection_foreground" yaml:"selection_foreground"`
}

var builtinSpecs = map[string]Spec{
	"light": {
		Background:          "white",
		Foreground:          "black",
		Caret:               "black",
		SelectionBackground: "#cce7ff",
		SelectionForeground: "black",
	},
	"dark": {
		Background:          "#1e1e1e",
		Foreground:          "white",
		Caret:               "white",
		SelectionBackground: "#444444",
		SelectionForeground: "white",
	},
}

// Table maps theme names to themes. It is safe for concurrent use.
type Table struct {
	mu     sync.RWMutex
	themes map[string]Theme
}

// NewTable returns a table holding the built-in themes.
func NewTable() *Table {
	t := &Table{themes: make(map[string]Theme, len(builtinSpecs))}
	for name, spec := range builtinSpecs {
		colors, err := spec.resolve(Colors{})
		if err != nil {
			panic(fmt.Sprintf("theme: builtin %s: %v", name, err))
		}
		t.themes[name] = Theme{Name: name, Colors: colors}
	}
	return t
}

// Lookup returns the named theme.
func (t *Table) Lookup(name string) (Theme, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	th, ok := t.themes[strings.ToLower(name)]
	if !ok {
		return Theme{}, &UnknownThemeError{Name: name}
	}
	return th, nil
}

// Has reports whether the table contains name.
func (t *Table) Has(name string) bool {
	_, err := t.Lookup(name)
	return err == nil
}

// Names returns the theme names: built-ins first, then the rest sorted.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := []string{"light", "dark"}
	var extra []string
	for name := range t.themes {
		if _, builtin := builtinSpecs[name]; !builtin {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// Define adds or replaces a theme built from spec.
// The built-in themes cannot be redefined.
func (t *Table) Define(name string, spec Spec) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return errors.New("theme name is empty")
	}
	if _, builtin := builtinSpecs[name]; builtin {
		return fmt.Errorf("theme %q is built in and cannot be redefined", name)
	}

	base, _ := t.Lookup(Default)
	colors, err := spec.resolve(base.Colors)
	if err != nil {
		return fmt.Errorf("theme %q: %w", name, err)
	}

	t.mu.Lock()
	t.themes[name] = Theme{Name: name, Colors: colors}
	t.mu.Unlock()
	return nil
}

// resolve parses every role, falling back to base for empty ones.
func (s Spec) resolve(base Colors) (Colors, error) {
	out := base
	roles := []struct {
		name  string
		value string
		dst   *colorful.Color
	}{
		{"background", s.Background, &out.Background},
		{"foreground", s.Foreground, &out.Foreground},
		{"caret", s.Caret, &out.Caret},
		{"selection_background", s.SelectionBackground, &out.SelectionBackground},
		{"selection_foreground", s.SelectionForeground, &out.SelectionForeground},
	}
	for _, r := range roles {
		if r.value == "" {
			continue
		}
		c, err := ParseColor(r.value)
		if err != nil {
			return Colors{}, fmt.Errorf("%s: %w", r.name, err)
		}
		*r.dst = c
	}
	return out, nil
}

var namedColors = map[string]string{
	"white":  "#ffffff",
	"black":  "#000000",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"yellow": "#ffff00",
	"gray":   "#808080",
	"grey":   "#808080",
}

// ParseColor parses "#rgb", "#rrggbb" or one of a few color names.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}
