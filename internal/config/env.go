package config

import (
	"maps"
	"strings"
	"time"
)

// EnvPrefix is the prefix of every environment variable the editor reads.
const EnvPrefix = "PYIDE_"

// envMapping maps environment variables to setting paths.
var envMapping = map[string]string{
	"PYIDE_THEME":       "editor.theme",
	"PYIDE_INTERPRETER": "run.interpreter",
	"PYIDE_RUN_ARGS":    "run.args",
	"PYIDE_RUN_TIMEOUT": "run.timeout",
	"PYIDE_LOG_LEVEL":   "log.level",
	"PYIDE_LOG_FILE":    "log.file",
}

// EnvVars returns the supported environment variables and the settings
// they override.
func EnvVars() map[string]string {
	return maps.Clone(envMapping)
}

// ApplyEnv overrides settings from environment variables read through
// lookup. Empty values are treated as set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for env, path := range envMapping {
		val, ok := lookup(env)
		if !ok {
			continue
		}
		switch path {
		case "editor.theme":
			c.Editor.Theme = val
		case "run.interpreter":
			c.Run.Interpreter = val
		case "run.args":
			c.Run.Args = strings.Fields(val)
		case "run.timeout":
			if _, err := time.ParseDuration(val); err != nil {
				return &ValidationError{
					Path:    env,
					Message: "not a duration",
					Value:   val,
					Code:    ErrCodeInvalidValue,
				}
			}
			c.Run.Timeout = val
		case "log.level":
			c.Log.Level = val
		case "log.file":
			c.Log.File = val
		}
	}
	return nil
}
