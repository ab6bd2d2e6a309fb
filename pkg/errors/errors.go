// Package errors provides structured error types for chartistry.
//
// The geometry core never returns errors: degenerate input degrades to empty
// or zero-size output. Errors come from the edges of the system, where chart
// definitions are decoded, data sources are loaded and artifacts are served.
//
// # Error Codes
//
// Codes are grouped by prefix:
//   - INVALID_*: the caller supplied something unusable
//   - NOT_FOUND: a named chart or file does not exist
//   - SOURCE_UNAVAILABLE: a data backend could not be reached
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "unknown edge component %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // report to the user
//	}
//
//	err = errors.Wrap(errors.ErrCodeSourceUnavailable, cause, "query %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
	ErrCodeInvalidSource     Code = "INVALID_SOURCE"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidDimensions Code = "INVALID_DIMENSIONS"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	ErrCodeNotFound Code = "NOT_FOUND"

	ErrCodeSourceUnavailable Code = "SOURCE_UNAVAILABLE"
	ErrCodeTimeout           Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause for errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain carries code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix for *Error values
// and the plain error string otherwise.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error code to the status the render server answers
// with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidConfig, ErrCodeInvalidSource,
		ErrCodeInvalidFormat, ErrCodeInvalidDimensions, ErrCodeInvalidPath:
		return 400
	case ErrCodeNotFound:
		return 404
	case ErrCodeUnsupported:
		return 501
	case ErrCodeSourceUnavailable:
		return 502
	case ErrCodeTimeout:
		return 504
	}
	return 500
}
