package fileio

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below.
var (
	// ErrEncoding indicates file content that is not valid UTF-8.
	ErrEncoding = errors.New("encoding must be UTF-8")

	// ErrIO indicates a read or write that could not complete.
	ErrIO = errors.New("i/o failure")

	// ErrNoPath indicates a save of an unsaved tab with no way to ask
	// for a path.
	ErrNoPath = errors.New("tab has no path to save to")
)

// EncodingError reports a file that could not be decoded as UTF-8.
type EncodingError struct {
	Path string
	// Offset is the byte offset of the first invalid sequence.
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot open %s: encoding must be UTF-8 (invalid byte at offset %d)", e.Path, e.Offset)
}

// Is makes errors.Is(err, ErrEncoding) true.
func (e *EncodingError) Is(target error) bool {
	return target == ErrEncoding
}

// IOError reports a failed read or write.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrIO) true in addition to matching the
// wrapped error.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
