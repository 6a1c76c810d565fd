// Package errors provides structured error types for mergeviz.
//
// This package defines error codes and types that enable:
//   - Mapping user input failures to process exit codes
//   - User-friendly messages without the code prefix
//   - Error wrapping with context preservation
//
// Only recoverable errors live here. Broken internal invariants are not
// errors at all; they abort the process through pkg/fault.
//
// # Error Codes
//
//   - USAGE: wrong number of positional arguments
//   - INVALID_*: input validation failures
//   - INTERNAL_ERROR: unexpected failures outside the core
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidCount, "Element count must be within [2, 32767] (got %d)", n)
//	if errors.Is(err, errors.ErrCodeInvalidCount) {
//	    // exit 1
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Argument shape errors
	ErrCodeUsage Code = "USAGE"

	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidCount     Code = "INVALID_COUNT"
	ErrCodeInvalidDelay     Code = "INVALID_DELAY"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidAllocator Code = "INVALID_ALLOCATOR"

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

// IsInput reports whether err is a user input error: a usage problem or a
// failed validation. These are fully recoverable since nothing has been
// allocated when they are detected.
func IsInput(err error) bool {
	switch GetCode(err) {
	case ErrCodeUsage, ErrCodeInvalidInput, ErrCodeInvalidCount, ErrCodeInvalidDelay,
		ErrCodeInvalidConfig, ErrCodeInvalidAllocator:
		return true
	}
	return false
}
