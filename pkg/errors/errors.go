// Package errors provides structured error types for SciViewer.
//
// Every failure an inspection can hit (bad usage, a missing file, a corrupt
// or unsupported payload, a cyclic object graph) is reported as an [*Error]
// carrying a machine-readable [Code]. The command-line driver prints only the
// human-readable part, obtained with [UserMessage], inside its JSON error
// envelope; the code is there for tests, logs and callers embedding the
// library.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - CYCLIC_STRUCTURE: Object graphs that refer back to themselves
//   - UNSUPPORTED: Valid input the readers cannot decode
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidUsage, "Usage: %s <filepath>", name)
//	if errors.Is(err, errors.ErrCodeInvalidUsage) {
//	    // Handle usage error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	// Bad input from the caller
	ErrCodeInvalidUsage  Code = "INVALID_USAGE"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Nothing to open
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"
	ErrCodeFormatNotFound Code = "FORMAT_NOT_FOUND"

	// Object graphs that cannot become a tree
	ErrCodeCyclicStructure Code = "CYCLIC_STRUCTURE"

	// Valid file, content the readers cannot decode
	ErrCodeUnsupported Code = "UNSUPPORTED"

	// Bugs and encoder failures
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// String returns the code itself, e.g. "FILE_NOT_FOUND".
func (c Code) String() string { return string(c) }

// Error is a structured error. Message is what a user sees; Code is for
// programs; Cause keeps the reader library's own error for logs.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error renders "CODE: message" or "CODE: message: cause".
func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an *Error whose message is formatted from format and args and
// whose cause is cause. A nil cause is allowed.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// first returns the outermost *Error in err's chain.
func first(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := first(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// for errors that carry none.
func GetCode(err error) Code {
	if e, ok := first(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns err without codes: the message of each *Error in the
// chain joined by ": ", down to the text of the innermost cause. Empty
// messages are skipped.
func UserMessage(err error) string {
	e, ok := first(err)
	switch {
	case !ok:
		return err.Error()
	case e.Cause == nil:
		return e.Message
	case e.Message == "":
		return UserMessage(e.Cause)
	}
	return e.Message + ": " + UserMessage(e.Cause)
}
