// Package errors provides structured error types for edgesvg.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library callers
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The pipeline distinguishes three failure classes:
//   - DECODE_ERROR: the input raster could not be read or decoded
//   - EMPTY_IMAGE: the raster decoded but has zero width or height
//   - PIPELINE_ERROR: an internal stage invariant was violated
//   - INTERNAL_ERROR: a scale panicked; the panic value is in the message
//
// Input validation failures use the INVALID_* codes.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEmptyImage, "image %s has zero area", path)
//	if errors.Is(err, errors.ErrCodeEmptyImage) {
//	    // Handle empty input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDecode, origErr, "decode %s", path)
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Raster errors
	ErrCodeDecode     Code = "DECODE_ERROR"
	ErrCodeEmptyImage Code = "EMPTY_IMAGE"

	// Internal errors
	ErrCodePipeline Code = "PIPELINE_ERROR"
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
// Only the outermost *Error is consulted.
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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// Pipelinef returns a PIPELINE_ERROR for a violated stage invariant.
func Pipelinef(format string, args ...any) *Error {
	return New(ErrCodePipeline, format, args...)
}

// CheckDims returns a PIPELINE_ERROR when two grids of one run disagree in size.
func CheckDims(stage string, w1, h1, w2, h2 int) error {
	if w1 != w2 || h1 != h2 {
		return Pipelinef("%s: dimension mismatch %dx%d vs %dx%d", stage, w1, h1, w2, h2)
	}
	return nil
}
