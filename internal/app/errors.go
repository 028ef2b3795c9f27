// Package app provides the main application structure and coordination.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/pyide/internal/config"
	"github.com/dshills/pyide/internal/fileio"
	"github.com/dshills/pyide/internal/runner"
	"github.com/dshills/pyide/internal/theme"
)

// Sentinel errors for common conditions.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoBackend is returned when Run is called without a backend.
	ErrNoBackend = errors.New("no backend configured")
)

// OperationError wraps an error with operation context.
type OperationError struct {
	Op     string // Operation being performed (e.g., "open log", "reload config")
	Target string // Target of operation (e.g., file path)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ErrorList collects multiple errors.
// ErrorList is not safe for concurrent use.
type ErrorList struct {
	errors []error
}

// NewErrorList creates a new ErrorList.
func NewErrorList() *ErrorList {
	return &ErrorList{}
}

// Add adds an error to the list. Nil errors are ignored.
func (e *ErrorList) Add(err error) {
	if err != nil {
		e.errors = append(e.errors, err)
	}
}

// HasErrors returns true if there are any errors.
func (e *ErrorList) HasErrors() bool {
	return e != nil && len(e.errors) > 0
}

// Len returns the number of errors.
func (e *ErrorList) Len() int {
	if e == nil {
		return 0
	}
	return len(e.errors)
}

// Errors returns a copy of the collected errors.
func (e *ErrorList) Errors() []error {
	if !e.HasErrors() {
		return nil
	}
	out := make([]error, len(e.errors))
	copy(out, e.errors)
	return out
}

// Error returns a combined error message.
func (e *ErrorList) Error() string {
	if !e.HasErrors() {
		return ""
	}
	if len(e.errors) == 1 {
		return e.errors[0].Error()
	}
	msgs := make([]string, len(e.errors))
	for i, err := range e.errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d errors: %s", len(e.errors), strings.Join(msgs, "; "))
}

// Unwrap exposes every collected error to errors.Is and errors.As.
func (e *ErrorList) Unwrap() []error {
	return e.Errors()
}

// AsError returns nil if there are no errors, otherwise the list.
func (e *ErrorList) AsError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// Modal titles, by error kind.
const (
	TitleEncoding     = "Encoding Error"
	TitleSaveRequired = "Save Required"
	TitleIO           = "I/O Error"
	TitleRunFailed    = "Run Failed"
	TitleUnknownTheme = "Unknown Theme"
	TitleConfig       = "Configuration Error"
	TitleError        = "Error"
)

// ModalTitle returns the title of the notification shown for err.
func ModalTitle(err error) string {
	var (
		launchErr *runner.ProcessLaunchError
		exitErr   *runner.ProcessExitError
		parseErr  *config.ParseError
	)
	switch {
	case errors.Is(err, fileio.ErrEncoding):
		return TitleEncoding
	case errors.Is(err, runner.ErrNoSavedPath), errors.Is(err, fileio.ErrNoPath):
		return TitleSaveRequired
	case errors.Is(err, fileio.ErrIO):
		return TitleIO
	case errors.As(err, &launchErr), errors.As(err, &exitErr),
		errors.Is(err, context.DeadlineExceeded):
		return TitleRunFailed
	case errors.Is(err, theme.ErrUnknownTheme):
		return TitleUnknownTheme
	case errors.Is(err, config.ErrValidationFailed), errors.As(err, &parseErr):
		return TitleConfig
	default:
		return TitleError
	}
}
