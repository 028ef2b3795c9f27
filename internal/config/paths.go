package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/pyide/internal/config/loader"
)

// AppName names the configuration and cache directories.
const AppName = "pyide"

// candidates are tried in order inside the config directory.
var candidates = []string{"config.toml", "config.yaml", "config.yml"}

// Dir returns the configuration directory: $XDG_CONFIG_HOME/pyide, falling
// back to the platform's user config directory.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// Locate returns the config file to use. An explicit path always wins.
// Otherwise the first existing candidate in dir is returned, or the TOML
// candidate when none exists yet, so that a watcher can pick it up once
// created.
func Locate(fsys loader.FileSystem, explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	if dir == "" {
		return ""
	}
	for _, name := range candidates {
		p := filepath.Join(dir, name)
		if _, err := fsys.Stat(p); err == nil {
			return p
		} else if !errors.Is(err, fs.ErrNotExist) {
			return p
		}
	}
	return filepath.Join(dir, candidates[0])
}

// DefaultLogFile returns the log location used when log.file is empty.
func DefaultLogFile() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, AppName, AppName+".log")
}
