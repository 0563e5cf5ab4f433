// Package errors provides the structured error taxonomy shared by the
// assistant, geofilter and provider clients. Every code here is recovered
// inside the service into a user-displayable reply or a fallback value;
// none of them is allowed to reach the view layer raw.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeLookupFailed       ErrorCode = "LOOKUP_FAILED"
	ErrCodeParameterMissing   ErrorCode = "PARAMETER_MISSING"
	ErrCodeClassificationMiss ErrorCode = "CLASSIFICATION_MISS"
	ErrCodeUnexpectedFailure  ErrorCode = "UNEXPECTED_FAILURE"

	ErrCodeLocationUnavailable ErrorCode = "LOCATION_UNAVAILABLE"

	ErrCodeTranscriptionFailed      ErrorCode = "TRANSCRIPTION_FAILED"
	ErrCodeTranscriptionUnsupported ErrorCode = "TRANSCRIPTION_UNSUPPORTED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"

	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// Error Constructors
// ==========================

// NewLookupFailedError creates a retryable product-store lookup error.
func NewLookupFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLookupFailed,
		Message:   "Product store lookup failed",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewParameterMissingError creates a non-retryable missing-parameter error.
func NewParameterMissingError(intent string) *StandardError {
	return &StandardError{
		Code:      ErrCodeParameterMissing,
		Message:   "Intent matched but no parameter captured",
		Details:   fmt.Sprintf("intent: %s", intent),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewClassificationMissError creates a non-retryable classification miss.
func NewClassificationMissError(utterance string) *StandardError {
	return &StandardError{
		Code:      ErrCodeClassificationMiss,
		Message:   "No intent pattern matched the utterance",
		Details:   fmt.Sprintf("utteranceLength: %d", len(utterance)),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnexpectedFailureError wraps an arbitrary failure caught at the router boundary.
func NewUnexpectedFailureError(detail string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnexpectedFailure,
		Message:   "Unexpected failure during classification or lookup",
		Details:   detail,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLocationUnavailableError creates the recoverable location error; the
// caller substitutes the fallback coordinate.
func NewLocationUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLocationUnavailable,
		Message:   "User location could not be determined",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTranscriptionFailedError creates a retryable transcription error.
func NewTranscriptionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTranscriptionFailed,
		Message:   "Speech transcription failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTranscriptionUnsupportedError marks the missing-capability condition,
// distinguishable from a runtime transcription failure.
func NewTranscriptionUnsupportedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeTranscriptionUnsupported,
		Message:   "Speech transcription is not configured",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable request validation error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeLookupFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeTranscriptionFailed:
		return 3

	case ErrCodeQueryTimeout:
		return 2

	default:
		return 0
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY") || strings.Contains(codeStr, "LOOKUP"):
		return "DATABASE"
	case strings.Contains(codeStr, "LOCATION"):
		return "LOCATION"
	case strings.Contains(codeStr, "TRANSCRIPTION"):
		return "SPEECH"
	case strings.Contains(codeStr, "PARAMETER") || strings.Contains(codeStr, "CLASSIFICATION"):
		return "INTENT"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
