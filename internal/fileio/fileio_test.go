package fileio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/pyide/internal/document"
	"github.com/dshills/pyide/internal/tabs"
	"github.com/dshills/pyide/internal/theme"
)

func newTestService(opts ...Option) (*Service, *tabs.Controller) {
	c := tabs.NewController(document.NewRegistry(), document.NewOutput(), theme.NewTable())
	return New(c, opts...), c
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.py", []byte("print('a')\n"))
	b := writeFile(t, dir, "b.py", []byte("print('b')\n"))

	svc, c := newTestService()
	opened, err := svc.Open([]string{a, b})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(opened) != 2 || c.Len() != 2 {
		t.Fatalf("expected 2 tabs, got %d (controller %d)", len(opened), c.Len())
	}

	if opened[0].Text() != "print('a')\n" || c.Path(opened[0]) != a {
		t.Errorf("tab 0: text=%q path=%q", opened[0].Text(), c.Path(opened[0]))
	}
	if opened[1].Label() != b {
		t.Errorf("tab 1 label = %q", opened[1].Label())
	}
	if active, _ := c.Active(); active != opened[1] {
		t.Error("expected last opened tab to be active")
	}
}

func TestOpen_InvalidUTF8InBatch(t *testing.T) {
	dir := t.TempDir()
	good1 := writeFile(t, dir, "good1.py", []byte("x = 1\n"))
	bad := writeFile(t, dir, "bad.py", []byte{'o', 'k', 0xff, 0xfe, '\n'})
	good2 := writeFile(t, dir, "good2.py", []byte("y = 2\n"))

	svc, c := newTestService()
	opened, err := svc.Open([]string{good1, bad, good2})

	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("expected ErrEncoding, got %v", err)
	}
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected *EncodingError, got %T", err)
	}
	if encErr.Path != bad {
		t.Errorf("EncodingError path = %q, want %q", encErr.Path, bad)
	}
	if encErr.Offset != 2 {
		t.Errorf("EncodingError offset = %d, want 2", encErr.Offset)
	}

	if len(opened) != 2 || c.Len() != 2 {
		t.Fatalf("expected the two valid files to open, got %d", len(opened))
	}
	for _, tab := range c.Tabs() {
		if c.Path(tab) == bad {
			t.Error("no tab may be created for the invalid file")
		}
	}
}

func TestOpen_MissingFile(t *testing.T) {
	svc, c := newTestService()

	opened, err := svc.Open([]string{filepath.Join(t.TempDir(), "missing.py"), ""})
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected wrapped ErrNotExist, got %v", err)
	}
	if len(opened) != 0 || c.Len() != 0 {
		t.Error("expected no tabs")
	}
}

func TestSaveAs(t *testing.T) {
	svc, c := newTestService()
	tab := c.NewTab("", "")
	tab.Buffer().Insert("print(\"hi\")\n")

	path := filepath.Join(t.TempDir(), "t.py")
	if err := svc.SaveAs(tab, path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	if c.Path(tab) != path {
		t.Errorf("registry path = %q", c.Path(tab))
	}
	if tab.Label() != path {
		t.Errorf("label = %q", tab.Label())
	}
	if tab.Modified() {
		t.Error("expected tab to be clean after save")
	}
}

func TestSaveAs_CancelledIsNoOp(t *testing.T) {
	svc, c := newTestService()
	tab := c.NewTab("content", "")

	if err := svc.SaveAs(tab, ""); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if c.Path(tab) != "" || tab.Label() != document.Untitled {
		t.Error("cancelled save-as must not change registry or label")
	}
}

func TestSave_UnsavedDelegatesToSaveAs(t *testing.T) {
	dir := t.TempDir()
	svcA, cA := newTestService()
	svcB, cB := newTestService()

	pathA := filepath.Join(dir, "a.py")
	pathB := filepath.Join(dir, "b.py")

	viaSave := cA.NewTab("same", "")
	viaSaveAs := cB.NewTab("same", "")

	if err := svcA.Save(viaSave, FixedPath(pathA)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := svcB.SaveAs(viaSaveAs, pathB); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	if cA.Path(viaSave) != pathA {
		t.Errorf("Save: lookup = %q, want %q", cA.Path(viaSave), pathA)
	}
	if cB.Path(viaSaveAs) != pathB {
		t.Errorf("SaveAs: lookup = %q, want %q", cB.Path(viaSaveAs), pathB)
	}
	if viaSave.Label() != pathA {
		t.Errorf("Save: label = %q", viaSave.Label())
	}
}

func TestSave_CancelledPrompt(t *testing.T) {
	svc, c := newTestService()
	tab := c.NewTab("x", "")

	if err := svc.Save(tab, FixedPath("")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if c.Path(tab) != "" {
		t.Error("expected tab to stay unsaved")
	}
}

func TestSave_UnsavedWithoutPrompt(t *testing.T) {
	svc, c := newTestService()
	tab := c.NewTab("x", "")
	tab.Buffer().Insert("y")

	if err := svc.Save(tab, nil); !errors.Is(err, ErrNoPath) {
		t.Fatalf("Save with nil prompter = %v, want ErrNoPath", err)
	}
	if c.Path(tab) != "" || !tab.Modified() {
		t.Error("expected tab to stay unsaved and modified")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	contents := []string{
		"print(\"hi\")\n",
		"no trailing newline",
		"mixed\r\nendings\n",
		"ünïcödé ✓ 日本語\n",
		"",
	}

	dir := t.TempDir()
	for i, content := range contents {
		svc, c := newTestService()
		path := filepath.Join(dir, "rt"+string(rune('a'+i))+".py")

		tab := c.NewTab(content, path)
		if err := svc.Save(tab, nil); err != nil {
			t.Fatalf("Save: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != content {
			t.Errorf("round trip: wrote %q, read %q", content, data)
		}

		reopened, err := svc.Open([]string{path})
		if err != nil || len(reopened) != 1 || reopened[0].Text() != content {
			t.Errorf("reopen %s: %v", path, err)
		}
	}
}

func TestSave_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", []byte("old content that is longer\n"))

	svc, c := newTestService()
	opened, err := svc.Open([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	tab := opened[0]
	tab.SetText("new\n")

	if err := svc.Save(tab, FixedPath("/must/not/be/used.py")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "new\n" {
		t.Errorf("file = %q", data)
	}
	if c.Path(tab) != path {
		t.Error("registered path must not change")
	}
}

type failingFS struct {
	OSFS
	err error
}

func (f failingFS) WriteFile(string, []byte, os.FileMode) error {
	return f.err
}

func TestSave_WriteFailure(t *testing.T) {
	svc, c := newTestService(WithFileSystem(failingFS{err: fs.ErrPermission}))
	tab := c.NewTab("x", "/tmp/readonly.py")
	tab.Buffer().Insert("y")

	err := svc.Save(tab, nil)
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("expected wrapped ErrPermission, got %v", err)
	}
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "write" || ioErr.Path != "/tmp/readonly.py" {
		t.Errorf("unexpected IOError %#v", err)
	}
	if !tab.Modified() {
		t.Error("failed save must leave the tab modified")
	}
}

func TestSaveAs_WriteFailureKeepsRegistry(t *testing.T) {
	svc, c := newTestService(WithFileSystem(failingFS{err: errors.New("disk full")}))
	tab := c.NewTab("x", "")

	if err := svc.SaveAs(tab, "/tmp/x.py"); err == nil {
		t.Fatal("expected error")
	}
	if c.Path(tab) != "" {
		t.Error("failed save-as must not register the path")
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/a/b/script.py", true},
		{"script.PY", false},
		{"notes.txt", false},
	}
	for _, tt := range tests {
		if got := PythonFiles.Match(tt.path); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
	if !(Filter{}).Match("anything") {
		t.Error("empty filter should match everything")
	}
	if PythonFiles.String() != "Python Files (*.py)" {
		t.Errorf("String() = %q", PythonFiles.String())
	}
}
