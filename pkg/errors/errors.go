// Package errors provides coded errors shared by the kozu CLI and server.
//
// Every failure a user can trigger carries a [Code]. The CLI prints
// [UserMessage] and exits with [ExitCode]; the server turns the code into
// the JSON error body and picks the HTTP status with [IsClientError].
//
// # Error Codes
//
//   - INVALID_*: bad options, config files or paths
//   - INSUFFICIENT_CANVAS: the canvas cannot hold the template's shapes
//   - SAMPLING_EXHAUSTED: the position sampler ran out of attempts
//   - UNSUPPORTED_SHAPE_KIND: a surface was asked to draw an unknown kind
//   - NOT_FOUND: a gallery entry does not exist
//   - INTERNAL_ERROR: encoding and storage failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidTemplate, "unknown template: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidTemplate) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "failed to encode %s", format)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidTemplate Code = "INVALID_TEMPLATE"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Geometry errors
	ErrCodeInsufficientCanvas Code = "INSUFFICIENT_CANVAS"
	ErrCodeSamplingExhausted  Code = "SAMPLING_EXHAUSTED"

	// Rendering errors
	ErrCodeUnsupportedShapeKind Code = "UNSUPPORTED_SHAPE_KIND"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether any *Error in err's chain has the given code, so a
// canvas error wrapped as INVALID_CONFIG still matches INSUFFICIENT_CANVAS.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// if there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix, followed
// by the user message of its cause if any.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// IsClientError reports whether err was caused by caller input rather than
// an internal failure. The HTTP server maps these to 400 responses.
func IsClientError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidTemplate,
		ErrCodeInvalidConfig, ErrCodeInvalidPath, ErrCodeInsufficientCanvas:
		return true
	}
	return false
}

// Exit codes returned by the kozu binary.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// ExitCode maps err to a process exit status: nil is success, client errors
// are usage errors and everything else is a failure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsClientError(err):
		return ExitUsage
	}
	return ExitFailure
}
