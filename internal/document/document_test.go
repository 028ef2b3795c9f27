package document

import (
	"testing"

	"github.com/dshills/pyide/internal/theme"
)

func TestNewTab(t *testing.T) {
	tab := NewTab("print('hi')")

	if tab.Handle() == "" {
		t.Error("expected non-empty handle")
	}
	if tab.Label() != Untitled {
		t.Errorf("expected label %q, got %q", Untitled, tab.Label())
	}
	if tab.Text() != "print('hi')" {
		t.Errorf("unexpected text %q", tab.Text())
	}
	if tab.Modified() {
		t.Error("expected new tab to be unmodified")
	}
}

func TestNewTab_UniqueHandles(t *testing.T) {
	seen := make(map[Handle]bool)
	for i := 0; i < 100; i++ {
		h := NewTab("").Handle()
		if seen[h] {
			t.Fatalf("duplicate handle %s", h)
		}
		seen[h] = true
	}
}

func TestTab_ModifiedAndMarkSaved(t *testing.T) {
	tab := NewTab("abc")

	tab.Buffer().Insert("x")
	if !tab.Modified() {
		t.Error("expected tab to be modified after insert")
	}

	tab.MarkSaved()
	if tab.Modified() {
		t.Error("expected tab to be clean after MarkSaved")
	}

	tab.SetText("other")
	if !tab.Modified() {
		t.Error("expected tab to be modified after SetText")
	}
}

func TestTab_SetLabel(t *testing.T) {
	tab := NewTab("")

	tab.SetLabel("/tmp/a.py")
	if tab.Label() != "/tmp/a.py" {
		t.Errorf("label = %q", tab.Label())
	}

	tab.SetLabel("")
	if tab.Label() != Untitled {
		t.Errorf("empty label should reset to %q, got %q", Untitled, tab.Label())
	}
}

func TestTab_Colors(t *testing.T) {
	dark, err := theme.NewTable().Lookup("dark")
	if err != nil {
		t.Fatal(err)
	}

	tab := NewTab("")
	tab.SetColors(dark.Colors)
	if !tab.Colors().Equal(dark.Colors) {
		t.Error("expected tab colors to match dark theme")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	h := NewHandle()

	if got := r.Lookup(h); got != "" {
		t.Errorf("expected empty lookup, got %q", got)
	}

	r.Register(h, "/tmp/a.py")
	if got := r.Lookup(h); got != "/tmp/a.py" {
		t.Errorf("Lookup = %q", got)
	}

	r.Register(h, "/tmp/b.py")
	if got := r.Lookup(h); got != "/tmp/b.py" {
		t.Errorf("Register should overwrite, got %q", got)
	}
	if r.Len() != 1 {
		t.Errorf("expected one entry, got %d", r.Len())
	}

	r.Unregister(h)
	if got := r.Lookup(h); got != "" {
		t.Errorf("expected empty after Unregister, got %q", got)
	}

	// No-op on absent handle.
	r.Unregister(h)
	r.Unregister(NewHandle())
	if r.Len() != 0 {
		t.Errorf("expected empty registry, got %d", r.Len())
	}
}

func TestRegistry_EmptyPathRemoves(t *testing.T) {
	r := NewRegistry()
	h := NewHandle()

	r.Register(h, "/tmp/a.py")
	r.Register(h, "")
	if r.Len() != 0 {
		t.Errorf("expected empty path to remove entry, have %d", r.Len())
	}
}

func TestOutput(t *testing.T) {
	o := NewOutput()
	if o.Text() != "" || o.Revision() != 0 {
		t.Fatal("expected empty output")
	}

	o.Set("first\n")
	o.Set("second\n")
	if o.Text() != "second\n" {
		t.Errorf("expected output to be overwritten, got %q", o.Text())
	}
	if o.Revision() != 2 {
		t.Errorf("expected revision 2, got %d", o.Revision())
	}
}
