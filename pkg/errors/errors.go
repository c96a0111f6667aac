// Package errors provides structured error types for stratcol.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API and the library
//   - Machine-readable error codes for programmatic handling
//   - Typed errors that carry the data a caller needs to correct the input
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// Domain failures of the layout engine have their own codes (OVERLAP,
// EMPTY_COLUMN, MISSING_FORMATION_TOP, MALFORMED_RECORD).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRange, "min age %g exceeds max age %g", lo, hi)
//	if errors.Is(err, errors.ErrCodeInvalidRange) {
//	    // Handle validation error
//	}
//
//	// Typed errors match by code too
//	var oe *errors.OverlapError
//	if stderrors.As(err, &oe) {
//	    fmt.Println("conflicts with", oe.Name)
//	}
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
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidRange     Code = "INVALID_RANGE"
	ErrCodeInvalidLayer     Code = "INVALID_LAYER"
	ErrCodeInvalidMode      Code = "INVALID_MODE"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidReference Code = "INVALID_REFERENCE"

	// Column and layout errors
	ErrCodeOverlap             Code = "OVERLAP"
	ErrCodeEmptyColumn         Code = "EMPTY_COLUMN"
	ErrCodeMissingFormationTop Code = "MISSING_FORMATION_TOP"
	ErrCodeMalformedRecord     Code = "MALFORMED_RECORD"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// coder is implemented by the typed errors below.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or a typed error with a
// matching code. The outermost coded error wins.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the chain holds no coded error.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coder:
			return e.Code()
		}
		err = errors.Unwrap(err)
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

// OverlapError reports a layer whose depth interval collides with an
// existing layer of the column.
type OverlapError struct {
	Index int    // index of the conflicting layer in the column
	Name  string // name of the conflicting layer
	Top   float64
	Base  float64
}

// Error implements the error interface.
func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s: depth interval overlaps layer %d %q [%g, %g)", ErrCodeOverlap, e.Index, e.Name, e.Top, e.Base)
}

// Code returns the error code for this error type.
func (e *OverlapError) Code() Code { return ErrCodeOverlap }

// MissingFormationTopError lists visible layers that lack a formation top in
// a mode that positions layers by depth.
type MissingFormationTopError struct {
	Layers []string
}

// Error implements the error interface.
func (e *MissingFormationTopError) Error() string {
	return fmt.Sprintf("%s: layers without formation top: %s", ErrCodeMissingFormationTop, strings.Join(e.Layers, ", "))
}

// Code returns the error code for this error type.
func (e *MissingFormationTopError) Code() Code { return ErrCodeMissingFormationTop }

// MalformedRecordError reports a persisted layer record that could not be
// decoded. Index is -1 when the problem is in the document envelope.
type MalformedRecordError struct {
	Index  int
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *MalformedRecordError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s: %s", ErrCodeMalformedRecord, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: layer %d: %s: %s", ErrCodeMalformedRecord, e.Index, e.Field, e.Reason)
}

// Code returns the error code for this error type.
func (e *MalformedRecordError) Code() Code { return ErrCodeMalformedRecord }
