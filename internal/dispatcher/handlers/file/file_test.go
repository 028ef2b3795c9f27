package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/pyide/internal/dispatcher/handler"
	"github.com/dshills/pyide/internal/document"
	"github.com/dshills/pyide/internal/fileio"
	"github.com/dshills/pyide/internal/input"
	"github.com/dshills/pyide/internal/tabs"
	"github.com/dshills/pyide/internal/theme"
)

func newTestHandler() (*Handler, *tabs.Controller) {
	c := tabs.NewController(document.NewRegistry(), document.NewOutput(), theme.NewTable())
	return NewHandler(fileio.New(c), c), c
}

func keyboard(name string) input.Action {
	return input.NewAction(name, input.SourceKeyboard)
}

func answer(name, path string) input.Action {
	return input.NewAction(name, input.SourcePrompt).WithPath(path)
}

func TestHandler_Namespace(t *testing.T) {
	h, _ := newTestHandler()
	if h.Namespace() != "file" {
		t.Errorf("namespace = %q", h.Namespace())
	}
	for _, name := range []string{ActionOpen, ActionSave, ActionSaveAs, ActionNew, ActionClose} {
		if !h.CanHandle(name) {
			t.Errorf("expected handler for %s", name)
		}
	}
}

func TestOpen_PromptsThenOpens(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.py")
	b := filepath.Join(dir, "b.py")
	os.WriteFile(a, []byte("a = 1\n"), 0o644)
	os.WriteFile(b, []byte("b = 2\n"), 0o644)

	h, c := newTestHandler()
	ctx := context.Background()

	res := h.Handle(ctx, keyboard(ActionOpen))
	if res.Status != handler.StatusPrompt || res.Prompt == nil {
		t.Fatalf("expected prompt, got %v", res.Status)
	}
	if res.Prompt.Action != ActionOpen {
		t.Errorf("prompt action = %q", res.Prompt.Action)
	}
	if !strings.Contains(res.Prompt.Title, "Python Files (*.py)") {
		t.Errorf("prompt title %q lacks filter", res.Prompt.Title)
	}

	res = h.Handle(ctx, answer(ActionOpen, a+string(filepath.ListSeparator)+b))
	if !res.IsOK() {
		t.Fatalf("open: %v", res.Error)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 tabs, got %d", c.Len())
	}
	active, _ := c.Active()
	if c.Path(active) != b {
		t.Errorf("active path = %q, want %q", c.Path(active), b)
	}
}

func TestOpen_Cancelled(t *testing.T) {
	h, c := newTestHandler()
	res := h.Handle(context.Background(), answer(ActionOpen, ""))
	if res.Status != handler.StatusNoOp {
		t.Errorf("status = %v, want no-op", res.Status)
	}
	if c.Len() != 0 {
		t.Error("no tab may open")
	}
}

func TestOpen_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.py")
	bad := filepath.Join(dir, "bad.py")
	os.WriteFile(good, []byte("ok\n"), 0o644)
	os.WriteFile(bad, []byte{0xff, 0xfe}, 0o644)

	h, c := newTestHandler()
	res := h.Handle(context.Background(), answer(ActionOpen, good+string(filepath.ListSeparator)+bad))
	if !res.IsError() {
		t.Fatal("expected error result")
	}
	if !errors.Is(res.Error, fileio.ErrEncoding) {
		t.Errorf("expected encoding error, got %v", res.Error)
	}
	if c.Len() != 1 {
		t.Errorf("good file must still open, got %d tabs", c.Len())
	}
	if !strings.Contains(res.Message, "1 of 2") {
		t.Errorf("message = %q", res.Message)
	}
}

func TestSave_UnsavedTabPrompts(t *testing.T) {
	h, c := newTestHandler()
	tab := c.NewTab("print(1)\n", "")
	ctx := context.Background()

	res := h.Handle(ctx, keyboard(ActionSave))
	if res.Status != handler.StatusPrompt || res.Prompt.Action != ActionSave {
		t.Fatalf("expected save prompt, got %+v", res)
	}

	path := filepath.Join(t.TempDir(), "new.py")
	res = h.Handle(ctx, answer(ActionSave, path))
	if !res.IsOK() {
		t.Fatalf("save: %v", res.Error)
	}
	if c.Path(tab) != path {
		t.Errorf("registered path = %q", c.Path(tab))
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "print(1)\n" {
		t.Errorf("file content = %q, %v", data, err)
	}
	if tab.Modified() {
		t.Error("tab must be clean after save")
	}
}

func TestSave_CancelledPrompt(t *testing.T) {
	h, c := newTestHandler()
	tab := c.NewTab("x", "")
	res := h.Handle(context.Background(), answer(ActionSave, ""))
	if res.Status != handler.StatusNoOp {
		t.Errorf("status = %v, want no-op", res.Status)
	}
	if c.Path(tab) != "" {
		t.Error("path must stay unregistered")
	}
}

func TestSave_RegisteredPathWritesDirectly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.py")
	h, c := newTestHandler()
	tab := c.NewTab("", path)
	tab.Buffer().Insert("y = 2")

	res := h.Handle(context.Background(), keyboard(ActionSave))
	if !res.IsOK() {
		t.Fatalf("save: %v (status %v)", res.Error, res.Status)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "y = 2" {
		t.Errorf("file content = %q", data)
	}
}

func TestSaveAs_Rebinds(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.py")
	second := filepath.Join(dir, "second.py")

	h, c := newTestHandler()
	tab := c.NewTab("z = 3\n", first)

	res := h.Handle(context.Background(), keyboard(ActionSaveAs))
	if res.Status != handler.StatusPrompt || res.Prompt.Initial != first {
		t.Fatalf("expected prompt pre-filled with %q, got %+v", first, res.Prompt)
	}

	res = h.Handle(context.Background(), answer(ActionSaveAs, second))
	if !res.IsOK() {
		t.Fatalf("saveAs: %v", res.Error)
	}
	if c.Path(tab) != second || tab.Label() != second {
		t.Errorf("path=%q label=%q", c.Path(tab), tab.Label())
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Error("first path must not be written")
	}
}

func TestSave_NoTab(t *testing.T) {
	h, _ := newTestHandler()
	res := h.Handle(context.Background(), keyboard(ActionSave))
	if !errors.Is(res.Error, tabs.ErrNoActiveTab) {
		t.Errorf("expected ErrNoActiveTab, got %v", res.Error)
	}
}

func TestSave_WriteFailure(t *testing.T) {
	h, c := newTestHandler()
	c.NewTab("x", filepath.Join(t.TempDir(), "missing", "dir", "x.py"))
	res := h.Handle(context.Background(), keyboard(ActionSave))
	if !errors.Is(res.Error, fileio.ErrIO) {
		t.Errorf("expected ErrIO, got %v", res.Error)
	}
}

func TestNewAndClose(t *testing.T) {
	h, c := newTestHandler()
	ctx := context.Background()

	h.Handle(ctx, keyboard(ActionNew))
	h.Handle(ctx, keyboard(ActionNew))
	if c.Len() != 2 {
		t.Fatalf("expected 2 tabs, got %d", c.Len())
	}

	if res := h.Handle(ctx, keyboard(ActionClose)); !res.IsOK() {
		t.Errorf("close: %v", res.Status)
	}
	h.Handle(ctx, keyboard(ActionClose))
	if res := h.Handle(ctx, keyboard(ActionClose)); res.Status != handler.StatusNoOp {
		t.Errorf("closing with no tabs = %v, want no-op", res.Status)
	}
}
