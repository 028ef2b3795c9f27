package theme

import (
	"errors"
	"testing"
)

func TestNewTable_Builtins(t *testing.T) {
	table := NewTable()

	tests := []struct {
		name string
		bg   string
		fg   string
		selB string
	}{
		{"light", "#ffffff", "#000000", "#cce7ff"},
		{"dark", "#1e1e1e", "#ffffff", "#444444"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, err := table.Lookup(tt.name)
			if err != nil {
				t.Fatalf("Lookup(%q): %v", tt.name, err)
			}
			if got := th.Colors.Background.Hex(); got != tt.bg {
				t.Errorf("background = %s, want %s", got, tt.bg)
			}
			if got := th.Colors.Foreground.Hex(); got != tt.fg {
				t.Errorf("foreground = %s, want %s", got, tt.fg)
			}
			if got := th.Colors.SelectionBackground.Hex(); got != tt.selB {
				t.Errorf("selection background = %s, want %s", got, tt.selB)
			}
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	table := NewTable()

	_, err := table.Lookup("solarized")
	if !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}

	var ute *UnknownThemeError
	if !errors.As(err, &ute) || ute.Name != "solarized" {
		t.Errorf("expected UnknownThemeError for solarized, got %#v", err)
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	table := NewTable()
	if _, err := table.Lookup("Dark"); err != nil {
		t.Errorf("Lookup(Dark): %v", err)
	}
}

func TestDefine(t *testing.T) {
	table := NewTable()

	err := table.Define("Solarized", Spec{
		Background: "#fdf6e3",
		Foreground: "#657b83",
	})
	if err != nil {
		t.Fatalf("Define: %v", err)
	}

	th, err := table.Lookup("solarized")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if th.Colors.Background.Hex() != "#fdf6e3" {
		t.Errorf("background = %s", th.Colors.Background.Hex())
	}
	// Unset roles inherit from the light theme.
	if th.Colors.SelectionBackground.Hex() != "#cce7ff" {
		t.Errorf("selection background = %s, want inherited #cce7ff", th.Colors.SelectionBackground.Hex())
	}

	names := table.Names()
	if len(names) != 3 || names[0] != "light" || names[1] != "dark" || names[2] != "solarized" {
		t.Errorf("Names() = %v", names)
	}
}

func TestDefine_Errors(t *testing.T) {
	table := NewTable()

	if err := table.Define("light", Spec{Background: "#000"}); err == nil {
		t.Error("expected error redefining a builtin")
	}
	if err := table.Define("", Spec{}); err == nil {
		t.Error("expected error for empty name")
	}
	if err := table.Define("broken", Spec{Background: "not-a-color"}); err == nil {
		t.Error("expected error for invalid color")
	}
	if table.Has("broken") {
		t.Error("invalid theme must not be added")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"white", "#ffffff", false},
		{"Black", "#000000", false},
		{"#abc", "#aabbcc", false},
		{"cce7ff", "#cce7ff", false},
		{"#12345", "", true},
		{"chartreuse-ish", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.in, err)
			}
			if c.Hex() != tt.want {
				t.Errorf("ParseColor(%q) = %s, want %s", tt.in, c.Hex(), tt.want)
			}
		})
	}
}

func TestColorsEqual(t *testing.T) {
	table := NewTable()
	light, _ := table.Lookup("light")
	dark, _ := table.Lookup("dark")

	if !light.Colors.Equal(light.Colors) {
		t.Error("expected colors to equal themselves")
	}
	if light.Colors.Equal(dark.Colors) {
		t.Error("expected light and dark to differ")
	}
}
