// Package config provides the editor configuration.
//
// Settings come from three places, later ones overriding earlier ones:
//
//	built-in defaults
//	the config file (TOML or YAML, chosen by extension)
//	PYIDE_* environment variables
//	command line flags
//
// The file is optional. When no path is given, Locate looks for
// config.toml, then config.yaml, under $XDG_CONFIG_HOME/pyide.
//
// # Example
//
//	[editor]
//	theme = "dark"
//
//	[run]
//	interpreter = "python3"
//	args = ["-u"]
//	timeout = "30s"
//
//	[log]
//	level = "debug"
//	file = "/tmp/pyide.log"
//
//	[themes.solarized]
//	background = "#fdf6e3"
//	foreground = "#657b83"
//
//	[keymap]
//	"Ctrl+R" = "run.run"
//
// # Sub-packages
//
//   - loader: file decoding (TOML, YAML) and ParseError
//   - watcher: fsnotify-based live reload
package config
