// Package errors provides the structured error type used to report failed
// console actions.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeAPIRequestFailed   ErrorCode = "API_REQUEST_FAILED"
	ErrCodeAPIUnavailable     ErrorCode = "API_UNAVAILABLE"
	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"
	ErrCodeConfigInvalid      ErrorCode = "CONFIG_INVALID"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// NewValidationError reports form input rejected before any network call.
// fields maps form field names to the message shown next to them.
func NewValidationError(details string, fields map[string]string) *StandardError {
	meta := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		meta[k] = v
	}
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Form validation failed",
		Details:   details,
		Retryable: false,
		Metadata:  meta,
		Timestamp: time.Now().UTC(),
	}
}

// NewAPIRequestError wraps a failed call to the RFP service. message is the
// user-facing alert text.
func NewAPIRequestError(operation, message string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAPIRequestFailed,
		Message:   message,
		Details:   fmt.Sprintf("operation: %s, error: %v", operation, err),
		Retryable: false,
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewAPIUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAPIUnavailable,
		Message:   "RFP service is unreachable",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewSessionStoreError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   "Session store operation failed",
		Details:   fmt.Sprintf("op: %s, error: %v", op, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Invalid configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// Normalize converts any error into a StandardError.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// IsValidation reports whether err is a form validation failure.
func IsValidation(err error) bool {
	var stdErr *StandardError
	return errors.As(err, &stdErr) && stdErr.Code == ErrCodeValidationFailed
}

// FieldErrors returns the per-field messages carried by a validation error.
func FieldErrors(err error) map[string]string {
	var stdErr *StandardError
	if !errors.As(err, &stdErr) || stdErr.Code != ErrCodeValidationFailed {
		return nil
	}
	out := make(map[string]string, len(stdErr.Metadata))
	for k, v := range stdErr.Metadata {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.HasPrefix(codeStr, "API"):
		return "API"
	case strings.Contains(codeStr, "SESSION"):
		return "SESSION"
	case strings.Contains(codeStr, "CONFIG"):
		return "CONFIG"
	default:
		return "OTHER"
	}
}

// LogFields flattens an error into logger fields.
func LogFields(err error) map[string]interface{} {
	stdErr := Normalize(err)
	return map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"errorCategory": GetErrorCategory(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
	}
}
