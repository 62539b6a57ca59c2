package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for GraphMind errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// Verification error codes
const (
	VERIFY_STEP_FAILED      ErrorCode = "VERIFY_STEP_FAILED"
	VERIFY_ASSERTION_FAILED ErrorCode = "VERIFY_ASSERTION_FAILED"
	VERIFY_ABORTED          ErrorCode = "VERIFY_ABORTED"
)

// GraphMindError represents a structured error with error code, message, and
// optional cause. It supports error wrapping and retryability hints for error
// handling logic.
type GraphMindError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *GraphMindError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *GraphMindError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
// Returns true if target is a GraphMindError with the same Code.
func (e *GraphMindError) Is(target error) bool {
	var gmErr *GraphMindError
	if errors.As(target, &gmErr) {
		return e.Code == gmErr.Code
	}
	return false
}

// NewError creates a new non-retryable GraphMindError with the given code and message.
func NewError(code ErrorCode, message string) *GraphMindError {
	return &GraphMindError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     nil,
	}
}

// NewRetryableError creates a new retryable GraphMindError with the given code
// and message. Use this for transient errors that may succeed on retry.
func NewRetryableError(code ErrorCode, message string) *GraphMindError {
	return &GraphMindError{
		Code:      code,
		Message:   message,
		Retryable: true,
		Cause:     nil,
	}
}

// WrapError creates a new non-retryable GraphMindError that wraps an existing
// error. The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *GraphMindError {
	return &GraphMindError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     cause,
	}
}
