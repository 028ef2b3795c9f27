package config

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/dshills/pyide/internal/config/loader"
	"github.com/dshills/pyide/internal/theme"
)

// Defaults.
const (
	DefaultInterpreter = "python3"
	DefaultTimeout     = 30 * time.Second
	DefaultTabWidth    = 4
	DefaultLogLevel    = "info"

	maxTabWidth = 16
)

// Config is the complete editor configuration.
type Config struct {
	Editor EditorConfig          `toml:"editor" yaml:"editor"`
	Run    RunConfig             `toml:"run" yaml:"run"`
	Log    LogConfig             `toml:"log" yaml:"log"`
	Themes map[string]theme.Spec `toml:"themes" yaml:"themes"`
	// Keymap maps key names such as "Ctrl+R" to action names.
	Keymap map[string]string `toml:"keymap" yaml:"keymap"`

	// Path is the file the configuration was read from, if any.
	Path string `toml:"-" yaml:"-"`
}

// EditorConfig holds editing surface settings.
type EditorConfig struct {
	Theme    string `toml:"theme" yaml:"theme"`
	TabWidth int    `toml:"tab_width" yaml:"tab_width"`
}

// RunConfig holds run pipeline settings.
type RunConfig struct {
	Interpreter string   `toml:"interpreter" yaml:"interpreter"`
	Args        []string `toml:"args" yaml:"args"`
	// Timeout is a Go duration string. "0" disables the deadline.
	Timeout string `toml:"timeout" yaml:"timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	// File receives the log in interactive mode. Empty means the default
	// location under the user cache directory.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			Theme:    theme.Default,
			TabWidth: DefaultTabWidth,
		},
		Run: RunConfig{
			Interpreter: DefaultInterpreter,
			Timeout:     DefaultTimeout.String(),
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Source describes where a configuration comes from. Load may be called
// repeatedly, e.g. on every file change.
type Source struct {
	// FS reads the file. Nil means the OS file system.
	FS loader.FileSystem
	// Path is the config file. Empty means defaults only.
	Path string
	// LookupEnv reads PYIDE_* variables. Nil skips the environment.
	LookupEnv func(string) (string, bool)
	// Overrides are applied last.
	Overrides Overrides
	// Checks run after the built-in validation.
	Checks []Check
}

// Load builds the configuration: defaults, then the file, then the
// environment, then the overrides. The result is validated. A missing
// file is not an error.
func (s Source) Load() (*Config, error) {
	cfg := Default()

	if s.Path != "" {
		fsys := s.FS
		if fsys == nil {
			fsys = loader.DefaultFS()
		}
		found, err := loader.LoadFile(fsys, s.Path, cfg)
		if err != nil {
			return nil, err
		}
		if found {
			cfg.Path = s.Path
		}
	}

	if s.LookupEnv != nil {
		if err := cfg.ApplyEnv(s.LookupEnv); err != nil {
			return nil, err
		}
	}
	cfg.Apply(s.Overrides)

	if err := cfg.Validate(s.Checks...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Check is an extra validation step supplied by the caller, such as key
// map validation owned by another package.
type Check func(*Config) error

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate(checks ...Check) error {
	var errs []error

	if _, err := c.RunTimeout(); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.Run.Interpreter) == "" {
		errs = append(errs, &ValidationError{
			Path:    "run.interpreter",
			Message: "must not be empty",
			Value:   c.Run.Interpreter,
			Code:    ErrCodeRequiredMissing,
		})
	}
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > maxTabWidth {
		errs = append(errs, &ValidationError{
			Path:    "editor.tab_width",
			Message: fmt.Sprintf("must be between 1 and %d", maxTabWidth),
			Value:   c.Editor.TabWidth,
			Code:    ErrCodeOutOfRange,
		})
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	table, err := c.ThemeTable()
	if err != nil {
		errs = append(errs, err)
	} else if !table.Has(c.Editor.Theme) {
		errs = append(errs, &ValidationError{
			Path:    "editor.theme",
			Message: "unknown theme, expected one of " + strings.Join(table.Names(), ", "),
			Value:   c.Editor.Theme,
			Code:    ErrCodeInvalidEnum,
		})
	}

	for _, check := range checks {
		if err := check(c); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// RunTimeout parses run.timeout. An empty value means the default.
func (c *Config) RunTimeout() (time.Duration, error) {
	if c.Run.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Run.Timeout)
	if err != nil {
		return 0, &ValidationError{
			Path:    "run.timeout",
			Message: "not a duration",
			Value:   c.Run.Timeout,
			Code:    ErrCodeInvalidValue,
		}
	}
	if d < 0 {
		return 0, &ValidationError{
			Path:    "run.timeout",
			Message: "must not be negative",
			Value:   c.Run.Timeout,
			Code:    ErrCodeOutOfRange,
		}
	}
	return d, nil
}

var logLevels = []string{"debug", "info", "warn", "error"}

// LogLevel parses log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(c.Log.Level))
	if name == "" {
		name = DefaultLogLevel
	}
	if name == "warning" {
		name = "warn"
	}
	if !slices.Contains(logLevels, name) {
		return 0, &ValidationError{
			Path:    "log.level",
			Message: "expected one of " + strings.Join(logLevels, ", "),
			Value:   c.Log.Level,
			Code:    ErrCodeInvalidEnum,
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, err
	}
	return level, nil
}

// ThemeTable returns a theme table holding the built-in themes plus every
// theme defined in the configuration.
func (c *Config) ThemeTable() (*theme.Table, error) {
	table := theme.NewTable()

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	slices.Sort(names)

	var errs []error
	for _, name := range names {
		if err := table.Define(name, c.Themes[name]); err != nil {
			errs = append(errs, &ValidationError{
				Path:    "themes." + name,
				Message: err.Error(),
				Value:   c.Themes[name],
				Code:    ErrCodeInvalidValue,
			})
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return table, nil
}

// Overrides holds values that take precedence over the file, typically
// command line flags. Zero fields are ignored.
type Overrides struct {
	Theme       string
	Interpreter string
	Timeout     time.Duration
	LogLevel    string
	LogFile     string
}

// Apply copies every non-zero override into c.
func (c *Config) Apply(o Overrides) {
	if o.Theme != "" {
		c.Editor.Theme = o.Theme
	}
	if o.Interpreter != "" {
		c.Run.Interpreter = o.Interpreter
	}
	if o.Timeout != 0 {
		c.Run.Timeout = o.Timeout.String()
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	if o.LogFile != "" {
		c.Log.File = o.LogFile
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Run.Args = slices.Clone(c.Run.Args)
	out.Themes = maps.Clone(c.Themes)
	out.Keymap = maps.Clone(c.Keymap)
	return &out
}
