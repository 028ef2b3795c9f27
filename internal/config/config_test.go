package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/pyide/internal/theme"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func (m memFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m[path]; ok {
		return nil, nil
	}
	return nil, fs.ErrNotExist
}

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Editor.Theme != "light" {
		t.Errorf("editor.theme = %q, want light", cfg.Editor.Theme)
	}
	if cfg.Run.Interpreter != "python3" {
		t.Errorf("run.interpreter = %q, want python3", cfg.Run.Interpreter)
	}
	if d, err := cfg.RunTimeout(); err != nil || d != 30*time.Second {
		t.Errorf("RunTimeout() = %v, %v", d, err)
	}
	if lvl, err := cfg.LogLevel(); err != nil || lvl != slog.LevelInfo {
		t.Errorf("LogLevel() = %v, %v", lvl, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestSource_Load_MissingFile(t *testing.T) {
	cfg, err := Source{FS: memFS{}, Path: "/cfg/config.toml"}.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty for a missing file", cfg.Path)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("missing file should give defaults (-want +got):\n%s", diff)
	}
}

func TestSource_Load_TOML(t *testing.T) {
	fsys := memFS{"/cfg/config.toml": `
[editor]
theme = "solarized"

[run]
interpreter = "python3.12"
args = ["-u"]
timeout = "5s"

[log]
level = "debug"

[themes.solarized]
background = "#fdf6e3"
foreground = "#657b83"

[keymap]
"Ctrl+R" = "run.run"
`}

	cfg, err := Source{FS: fsys, Path: "/cfg/config.toml"}.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.Path = "/cfg/config.toml"
	want.Editor.Theme = "solarized"
	want.Run = RunConfig{Interpreter: "python3.12", Args: []string{"-u"}, Timeout: "5s"}
	want.Log.Level = "debug"
	want.Themes = map[string]theme.Spec{
		"solarized": {Background: "#fdf6e3", Foreground: "#657b83"},
	}
	want.Keymap = map[string]string{"Ctrl+R": "run.run"}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	table, err := cfg.ThemeTable()
	if err != nil {
		t.Fatalf("ThemeTable() error = %v", err)
	}
	if !table.Has("solarized") {
		t.Error("configured theme missing from table")
	}
}

func TestSource_Load_YAML(t *testing.T) {
	fsys := memFS{"/cfg/config.yaml": "editor:\n  theme: dark\nrun:\n  timeout: 1m\n"}

	cfg, err := Source{FS: fsys, Path: "/cfg/config.yaml"}.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Editor.Theme != "dark" {
		t.Errorf("editor.theme = %q", cfg.Editor.Theme)
	}
	if d, _ := cfg.RunTimeout(); d != time.Minute {
		t.Errorf("RunTimeout() = %v", d)
	}
}

func TestSource_Load_ParseError(t *testing.T) {
	fsys := memFS{"/cfg/config.toml": "[editor\n"}

	_, err := Source{FS: fsys, Path: "/cfg/config.toml"}.Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestSource_Load_Precedence(t *testing.T) {
	fsys := memFS{"/c.toml": "[editor]\ntheme = \"dark\"\n[run]\ninterpreter = \"from-file\"\n"}

	src := Source{
		FS:   fsys,
		Path: "/c.toml",
		LookupEnv: env(map[string]string{
			"PYIDE_INTERPRETER": "from-env",
			"PYIDE_LOG_LEVEL":   "warn",
			"PYIDE_RUN_ARGS":    "-u -B",
		}),
		Overrides: Overrides{Theme: "light", Timeout: 2 * time.Second},
	}

	cfg, err := src.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Editor.Theme != "light" {
		t.Errorf("flag should override file, theme = %q", cfg.Editor.Theme)
	}
	if cfg.Run.Interpreter != "from-env" {
		t.Errorf("env should override file, interpreter = %q", cfg.Run.Interpreter)
	}
	if diff := cmp.Diff([]string{"-u", "-B"}, cfg.Run.Args); diff != "" {
		t.Errorf("run.args (-want +got):\n%s", diff)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q", cfg.Log.Level)
	}
	if d, _ := cfg.RunTimeout(); d != 2*time.Second {
		t.Errorf("RunTimeout() = %v", d)
	}
}

func TestSource_Load_BadEnvTimeout(t *testing.T) {
	src := Source{LookupEnv: env(map[string]string{"PYIDE_RUN_TIMEOUT": "soon"})}

	if _, err := src.Load(); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSource_Load_Checks(t *testing.T) {
	errBadKey := errors.New("bad key")
	src := Source{
		Checks: []Check{func(c *Config) error { return errBadKey }},
	}

	if _, err := src.Load(); !errors.Is(err, errBadKey) {
		t.Errorf("expected check error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		path   string
	}{
		{"bad timeout", func(c *Config) { c.Run.Timeout = "forever" }, "run.timeout"},
		{"negative timeout", func(c *Config) { c.Run.Timeout = "-1s" }, "run.timeout"},
		{"empty interpreter", func(c *Config) { c.Run.Interpreter = " " }, "run.interpreter"},
		{"tab width zero", func(c *Config) { c.Editor.TabWidth = 0 }, "editor.tab_width"},
		{"tab width huge", func(c *Config) { c.Editor.TabWidth = 100 }, "editor.tab_width"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"unknown theme", func(c *Config) { c.Editor.Theme = "neon" }, "editor.theme"},
		{"bad theme color", func(c *Config) {
			c.Themes = map[string]theme.Spec{"broken": {Background: "not-a-color"}}
		}, "themes.broken"},
		{"redefined builtin", func(c *Config) {
			c.Themes = map[string]theme.Spec{"dark": {Background: "#000000"}}
		}, "themes.dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("expected ErrValidationFailed, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Path != tt.path {
				t.Errorf("Path = %q, want %q", verr.Path, tt.path)
			}
		})
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Run.Timeout = "x"
	cfg.Log.Level = "x"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, path := range []string{"run.timeout", "log.level"} {
		if !strings.Contains(err.Error(), path) {
			t.Errorf("error %q should mention %s", err, path)
		}
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.Log.Level = tt.in
		got, err := cfg.LogLevel()
		if err != nil {
			t.Errorf("LogLevel(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("LogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRunTimeout_Zero(t *testing.T) {
	cfg := Default()
	cfg.Run.Timeout = "0"
	d, err := cfg.RunTimeout()
	if err != nil || d != 0 {
		t.Errorf("RunTimeout() = %v, %v; want 0 (disabled)", d, err)
	}
}

func TestClone(t *testing.T) {
	cfg := Default()
	cfg.Run.Args = []string{"-u"}
	cfg.Keymap = map[string]string{"F6": "run.run"}

	c := cfg.Clone()
	c.Run.Args[0] = "-B"
	c.Keymap["F6"] = "file.save"

	if cfg.Run.Args[0] != "-u" || cfg.Keymap["F6"] != "run.run" {
		t.Error("Clone must not share slices or maps")
	}
}

func TestLocate(t *testing.T) {
	dir := "/home/u/.config/pyide"

	tests := []struct {
		name     string
		fsys     memFS
		explicit string
		want     string
	}{
		{"explicit wins", memFS{}, "/etc/pyide.yaml", "/etc/pyide.yaml"},
		{"nothing exists", memFS{}, "", filepath.Join(dir, "config.toml")},
		{"toml exists", memFS{filepath.Join(dir, "config.toml"): ""}, "", filepath.Join(dir, "config.toml")},
		{"yaml only", memFS{filepath.Join(dir, "config.yaml"): ""}, "", filepath.Join(dir, "config.yaml")},
		{"yml only", memFS{filepath.Join(dir, "config.yml"): ""}, "", filepath.Join(dir, "config.yml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Locate(tt.fsys, tt.explicit, dir); got != tt.want {
				t.Errorf("Locate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	got, err := Dir()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join("/xdg", "pyide") {
		t.Errorf("Dir() = %q", got)
	}
}

func TestValidationErrorCode_String(t *testing.T) {
	tests := map[ValidationErrorCode]string{
		ErrCodeInvalidValue:     "invalid_value",
		ErrCodeOutOfRange:       "out_of_range",
		ErrCodeInvalidEnum:      "invalid_enum",
		ErrCodeRequiredMissing:  "required_missing",
		ValidationErrorCode(99): "unknown",
	}
	for code, want := range tests {
		if got := code.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", code, got, want)
		}
	}
}
