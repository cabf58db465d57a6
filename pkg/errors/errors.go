// Package errors provides structured error types for distmeta.
//
// This package defines error codes and types that enable:
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages in the CLI
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - HOOK_*: Build-backend hook invocation failures
//   - METADATA_*: Violations of the metadata preparation contract
//   - INTERNAL_*: Unexpected internal errors
//
// Errors raised by collaborators (the TOML decoder, the hook caller, the
// filesystem) are returned to callers unmodified. Codes are only attached to
// conditions detected by distmeta itself.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPath, "not a directory: %s", dir)
//	if errors.Is(err, errors.ErrCodeInvalidPath) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMetadataContract, origErr, "no METADATA in %s", distInfo)
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
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidPath        Code = "INVALID_PATH"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeInvalidDeclaration Code = "INVALID_DECLARATION"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Build backend errors
	ErrCodeHookFailed       Code = "HOOK_FAILED"
	ErrCodeMetadataContract Code = "METADATA_CONTRACT"

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

// coder is implemented by typed errors that carry a code without being an
// *Error, such as *HookError.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error, or another error with a
// Code method, with a matching code.
func Is(err error, code Code) bool {
	c := GetCode(err)
	return c != "" && c == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// As is errors.As from the standard library, re-exported so callers that
// import this package as "errors" keep access to it.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix, followed by
// the cause when there is one. For other errors, returns the error string as-is.
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

// HookError carries the diagnostic output of a failed build-backend hook.
type HookError struct {
	Hook     string // Hook name, e.g. "prepare_metadata_for_build_wheel"
	ExitCode int    // Interpreter exit status, -1 if it never ran
	Stderr   string // Captured standard error, trimmed
}

// Error implements the error interface.
func (e *HookError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("hook %s did not run", e.Hook)
	}
	if e.Stderr == "" {
		return fmt.Sprintf("hook %s exited with status %d", e.Hook, e.ExitCode)
	}
	return fmt.Sprintf("hook %s exited with status %d: %s", e.Hook, e.ExitCode, e.Stderr)
}

// Code returns the error code for this error type.
func (e *HookError) Code() Code {
	return ErrCodeHookFailed
}
