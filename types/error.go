package types

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure class across the generation pipeline.
type ErrorCode string

// Input and generation error codes
const (
	ErrInvalidParameters ErrorCode = "INVALID_PARAMETERS"
	ErrUnknownTemplate   ErrorCode = "UNKNOWN_TEMPLATE"
	ErrTemplateFailure   ErrorCode = "TEMPLATE_FAILURE"
	ErrEmptyGeometry     ErrorCode = "EMPTY_GEOMETRY"
)

// AI dependency error codes
const (
	ErrAIUnavailable     ErrorCode = "AI_UNAVAILABLE"
	ErrAITimeout         ErrorCode = "AI_TIMEOUT"
	ErrAIInvalidResponse ErrorCode = "AI_INVALID_RESPONSE"
)

// Infrastructure error codes
const (
	ErrSnapshotFailed ErrorCode = "SNAPSHOT_FAILED"
	ErrConfigInvalid  ErrorCode = "CONFIG_INVALID"
)

// Error represents a structured error with code, message, and cause.
type Error struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
	Cause     error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Errorf creates a new Error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithRetryable marks the error as retryable.
func (e *Error) WithRetryable(retryable bool) *Error {
	e.Retryable = retryable
	return e
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	return false
}

// GetErrorCode extracts the error code from an error chain.
func GetErrorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsErrorCode reports whether err carries the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	return err != nil && GetErrorCode(err) == code
}
