package runner

import (
	"errors"
	"fmt"
)

// ErrNoSavedPath is returned when a run is attempted on a tab that has
// never been saved. No process is started.
var ErrNoSavedPath = errors.New("please save your code first")

// ProcessLaunchError reports an interpreter that could not be started:
// not found on PATH, not executable, and so on.
type ProcessLaunchError struct {
	Interpreter string
	Err         error
}

func (e *ProcessLaunchError) Error() string {
	return fmt.Sprintf("cannot start interpreter %q: %v", e.Interpreter, e.Err)
}

func (e *ProcessLaunchError) Unwrap() error {
	return e.Err
}

// ProcessExitError reports a program that ran but did not exit cleanly.
type ProcessExitError struct {
	Path string
	// Code is the exit status, or -1 when the process was killed by a signal.
	Code int
}

func (e *ProcessExitError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("%s: killed by signal", e.Path)
	}
	return fmt.Sprintf("%s: exit status %d", e.Path, e.Code)
}
