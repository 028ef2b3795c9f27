package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/pyide/internal/dispatcher/handler"
	"github.com/dshills/pyide/internal/fileio"
	"github.com/dshills/pyide/internal/input/key"
)

func TestCompletePath(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"main.py", "model.py", "notes.txt", ".hidden.py"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "pkg"), 0o755); err != nil {
		t.Fatal(err)
	}
	sep := string(filepath.Separator)
	list := string(os.PathListSeparator)
	base := dir + sep

	tests := []struct {
		name        string
		input       string
		want        string
		wantMatches []string
	}{
		{"unique file", base + "ma", base + "main.py", nil},
		{"common prefix", base + "m", base + "m", []string{"main.py", "model.py"}},
		{"longer common prefix", base + "mo", base + "model.py", nil},
		{"directory", base + "p", base + "pkg" + sep, nil},
		{"filtered out", base + "no", base + "no", nil},
		{"hidden needs dot", base + ".h", base + ".hidden.py", nil},
		{"no match", base + "zzz", base + "zzz", nil},
		{"missing dir", base + "nope" + sep + "x", base + "nope" + sep + "x", nil},
		{"last of several", base + "main.py" + list + base + "mo", base + "main.py" + list + base + "model.py", nil},
		{"whole directory", base, base, []string{"main.py", "model.py", "pkg" + sep}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matches := CompletePath(tt.input, fileio.PythonFiles)
			if got != tt.want {
				t.Errorf("CompletePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if diff := cmp.Diff(tt.wantMatches, matches); diff != "" {
				t.Errorf("matches mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		names []string
		want  string
	}{
		{[]string{"abc", "abd"}, "ab"},
		{[]string{"abc"}, "abc"},
		{[]string{"x", "y"}, ""},
		{[]string{"héllo", "hélp"}, "hél"},
		{[]string{"é1", "é2"}, "é"},
	}
	for _, tt := range tests {
		if got := commonPrefix(tt.names); got != tt.want {
			t.Errorf("commonPrefix(%q) = %q, want %q", tt.names, got, tt.want)
		}
	}
}

func pressAll(p *prompt, specs ...string) promptOutcome {
	out := promptEditing
	for _, s := range specs {
		out = p.handleKey(key.MustParse(s))
	}
	return out
}

func TestPrompt_Editing(t *testing.T) {
	p := newPrompt(handler.PromptRequest{Title: "Save As", Initial: "/tmp/"})

	if p.cursor != 5 {
		t.Fatalf("cursor = %d, want end of the initial text", p.cursor)
	}
	pressAll(p, "a", "b", "Left", "x", "Home", "Delete", "End", "Backspace")
	if got := p.Text(); got != "tmp/ax" {
		t.Errorf("text = %q, want %q", got, "tmp/ax")
	}

	if out := pressAll(p, "Ctrl+U"); out != promptEditing || p.Text() != "" || p.cursor != 0 {
		t.Errorf("Ctrl+U: out = %v text = %q cursor = %d", out, p.Text(), p.cursor)
	}
	pressAll(p, "Ctrl+S", "Alt+Left")
	if p.Text() != "" {
		t.Errorf("modified keys changed the text: %q", p.Text())
	}
	pressAll(p, "Backspace", "Left")
	if p.cursor != 0 {
		t.Errorf("cursor = %d, want 0", p.cursor)
	}
}

func TestPrompt_AcceptAndCancel(t *testing.T) {
	p := newPrompt(handler.PromptRequest{Initial: "a.py"})
	if out := pressAll(p, "Enter"); out != promptAccepted {
		t.Errorf("Enter = %v, want accepted", out)
	}
	if out := pressAll(p, "Esc"); out != promptCancelled {
		t.Errorf("Esc = %v, want cancelled", out)
	}
}

func TestPrompt_TabCompletion(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"alpha.py", "alps.py"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	base := dir + string(filepath.Separator)

	p := newPrompt(handler.PromptRequest{
		Title:    "Open",
		Initial:  base + "a",
		Patterns: fileio.PythonFiles.Patterns,
	})
	pressAll(p, "Tab")
	if got := p.Text(); got != base+"alp" {
		t.Errorf("text = %q, want %q", got, base+"alp")
	}
	if got := p.view().Title; got != "Open [2 matches]" {
		t.Errorf("title = %q", got)
	}

	pressAll(p, "h", "Tab")
	if got := p.Text(); got != base+"alpha.py" {
		t.Errorf("text = %q, want %q", got, base+"alpha.py")
	}
	v := p.view()
	if v.Title != "Open" || v.Cursor != len([]rune(v.Input)) {
		t.Errorf("view = %+v", v)
	}
}
