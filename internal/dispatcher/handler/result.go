package handler

import "fmt"

// ResultStatus indicates the outcome of an action.
type ResultStatus uint8

const (
	// StatusOK indicates successful execution.
	StatusOK ResultStatus = iota
	// StatusNoOp indicates the action had no effect.
	StatusNoOp
	// StatusError indicates an error occurred.
	StatusError
	// StatusPrompt indicates the action needs input from the user first.
	StatusPrompt
	// StatusCancelled indicates the operation was cancelled.
	StatusCancelled
	// StatusQuit indicates the application should exit.
	StatusQuit
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	case StatusPrompt:
		return "prompt"
	case StatusCancelled:
		return "cancelled"
	case StatusQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// PromptRequest asks the application for a line of input. The answer is
// dispatched as Action with the answer in Args.Path and SourcePrompt as
// the source; cancelling dispatches an empty answer.
type PromptRequest struct {
	// Title is shown before the input field.
	Title string

	// Initial is the pre-filled answer.
	Initial string

	// Action receives the answer.
	Action string

	// Patterns restrict path completion to matching files. Directories
	// always complete.
	Patterns []string
}

// Result represents the outcome of handling an action.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Error contains any error that occurred. A result may carry an error
	// alongside partial success, e.g. when some files of a batch opened.
	Error error

	// Message is an optional status message for display.
	Message string

	// Prompt is set with StatusPrompt.
	Prompt *PromptRequest
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// WithMessage returns a copy with the message set.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// Success creates a successful result.
func Success() Result {
	return Result{Status: StatusOK}
}

// SuccessWithMessage creates a successful result with a message.
func SuccessWithMessage(msg string) Result {
	return Result{Status: StatusOK, Message: msg}
}

// NoOp creates a no-operation result.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// NoOpWithMessage creates a no-operation result with a message.
func NoOpWithMessage(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Result{
		Status: StatusError,
		Error:  fmt.Errorf(format, args...),
	}
}

// Prompt creates a result asking the user for input.
func Prompt(req PromptRequest) Result {
	return Result{Status: StatusPrompt, Prompt: &req}
}

// Cancelled creates a cancelled result.
func Cancelled(err error) Result {
	return Result{Status: StatusCancelled, Error: err}
}

// Quit creates a result asking the application to exit.
func Quit() Result {
	return Result{Status: StatusQuit}
}
