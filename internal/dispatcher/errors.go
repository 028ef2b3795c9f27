package dispatcher

import (
	"errors"
	"fmt"
)

// Dispatcher errors.
var (
	// ErrNoHandler indicates no handler was found for an action.
	ErrNoHandler = errors.New("dispatcher: no handler for action")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")

	// ErrInvalidAction indicates the action is invalid.
	ErrInvalidAction = errors.New("dispatcher: invalid action")

	// ErrDuplicateNamespace indicates a namespace was registered twice.
	ErrDuplicateNamespace = errors.New("dispatcher: namespace already registered")
)

// PanicError reports a recovered handler panic. It matches ErrPanic.
type PanicError struct {
	Action string
	Value  any
	Stack  []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panic for %s: %v", e.Action, e.Value)
}

func (e *PanicError) Is(target error) bool {
	return target == ErrPanic
}
