// Package errors provides structured error types for the gostac library.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Construction-time domain invariant violations
//   - EXTENSION_*: Extension framework failures
//   - RESOLUTION_ERROR: Link resolution failures
//   - VALIDATION_FAILED: JSON Schema non-conformance
//   - IO_ERROR / NOT_FOUND: Collaborator I/O failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidObject, "item %s: null datetime without range", id)
//	if errors.Is(err, errors.ErrCodeInvalidObject) {
//	    // Handle domain error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "read %s", href)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Domain invariant violations (fail fast at construction or assignment)
	ErrCodeInvalidObject   Code = "INVALID_STAC_OBJECT"
	ErrCodeInvalidDatetime Code = "INVALID_DATETIME"
	ErrCodeInvalidExtent   Code = "INVALID_EXTENT"
	ErrCodeInvalidHref     Code = "INVALID_HREF"

	// Type errors (wrong concrete type passed to a dispatcher)
	ErrCodeTypeError Code = "STAC_TYPE_ERROR"

	// Extension framework errors
	ErrCodeExtensionNotImplemented Code = "EXTENSION_NOT_IMPLEMENTED"

	// Link resolution errors
	ErrCodeResolution Code = "RESOLUTION_ERROR"

	// Serialization and migration errors
	ErrCodeSerialization Code = "SERIALIZATION_ERROR"
	ErrCodeMigration     Code = "MIGRATION_ERROR"

	// Schema validation errors
	ErrCodeValidation Code = "VALIDATION_FAILED"

	// I/O errors (propagated from the read/write collaborator)
	ErrCodeIO       Code = "IO_ERROR"
	ErrCodeNotFound Code = "NOT_FOUND"
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
