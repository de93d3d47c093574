// Package errors provides structured error types for claimviz.
//
// Errors carry a machine-readable [Code] so the CLI can map failures to
// friendly messages and exit statuses without string matching.
//
// # Error Codes
//
// Codes follow a small naming convention:
//   - INVALID_*: bad input (regions, styles, scene files, formats)
//   - *_NOT_FOUND: missing files or scenes
//   - INTERNAL_ERROR / UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRegion, "min.x %d > max.x %d", lo.X, hi.X)
//	if errors.Is(err, errors.ErrCodeInvalidRegion) {
//	    // reject the claim definition
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidScene, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidRegion   Code = "INVALID_REGION"
	ErrCodeInvalidStyle    Code = "INVALID_STYLE"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidScene    Code = "INVALID_SCENE"
	ErrCodeInvalidMaterial Code = "INVALID_MATERIAL"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeSceneNotFound Code = "SCENE_NOT_FOUND"

	// Backend errors
	ErrCodeCacheUnavailable Code = "CACHE_UNAVAILABLE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Process exit statuses returned by [ExitCode].
const (
	ExitFailure     = 1
	ExitInvalid     = 2
	ExitUnavailable = 3
)

// ExitCode maps err to a process exit status. Bad input of any kind
// (arguments, scene files, paths) exits 2, an unreachable cache backend
// exits 3 and everything else exits 1.
func ExitCode(err error) int {
	switch code := GetCode(err); {
	case code == "":
		return ExitFailure
	case code == ErrCodeCacheUnavailable:
		return ExitUnavailable
	case strings.HasPrefix(string(code), "INVALID_"), strings.HasSuffix(string(code), "_NOT_FOUND"):
		return ExitInvalid
	default:
		return ExitFailure
	}
}

// FieldError reports a scene-file field that failed validation.
type FieldError struct {
	Field  string // Dotted path, e.g. "requests[2].region.min"
	Reason string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Code returns the error code for this error type.
func (e *FieldError) Code() Code {
	return ErrCodeInvalidScene
}

// Field wraps a FieldError in an INVALID_SCENE error.
func Field(field, format string, args ...any) *Error {
	fe := &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)}
	return Wrap(ErrCodeInvalidScene, fe, "invalid scene")
}
