// Package errors defines the error taxonomy shared by every layer of the
// client: validation errors raised before any network call, authentication
// errors raised when no usable token exists, network/server errors normalized
// to the API's {message} shape, and storage errors from the local key-value
// store.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies a client error
type ErrorType string

const (
	// ErrorTypeValidation marks input rejected before any network call
	ErrorTypeValidation ErrorType = "VALIDATION"
	// ErrorTypeUnauthorized marks a missing or expired credential,
	// detected locally or reported by the server
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	// ErrorTypeNetwork marks a transport-level failure (no server response)
	ErrorTypeNetwork ErrorType = "NETWORK"
	// ErrorTypeServer marks an HTTP-level failure with a server error body
	ErrorTypeServer ErrorType = "SERVER"
	// ErrorTypeStorage marks a local key-value store failure
	ErrorTypeStorage ErrorType = "STORAGE"
	// ErrorTypeConflict marks a rejected duplicate submission
	ErrorTypeConflict ErrorType = "CONFLICT"
)

// NetworkErrorMessage is the message synthesized when the server never
// produced an error body.
const NetworkErrorMessage = "Network Error"

// ClientError is the only error shape slice operations propagate. Callers
// render Message directly; Type drives programmatic handling.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *ClientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *ClientError) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error
func (e *ClientError) WithCause(err error) *ClientError {
	e.Cause = err
	return e
}

// NewValidationError creates a validation error
func NewValidationError(message string) *ClientError {
	return &ClientError{Type: ErrorTypeValidation, Message: message}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *ClientError {
	if message == "" {
		message = "user not authenticated"
	}
	return &ClientError{Type: ErrorTypeUnauthorized, Message: message}
}

// NewNetworkError creates a transport-level error carrying the generic
// message the UI expects.
func NewNetworkError(cause error) *ClientError {
	return &ClientError{Type: ErrorTypeNetwork, Message: NetworkErrorMessage, Cause: cause}
}

// NewServerError creates an error from a server-provided message
func NewServerError(message string) *ClientError {
	if message == "" {
		message = NetworkErrorMessage
	}
	return &ClientError{Type: ErrorTypeServer, Message: message}
}

// NewStorageError creates a local storage error
func NewStorageError(operation string, err error) *ClientError {
	return &ClientError{
		Type:    ErrorTypeStorage,
		Message: fmt.Sprintf("storage operation '%s' failed", operation),
		Cause:   err,
	}
}

// NewConflictError creates a duplicate-submission error
func NewConflictError(message string) *ClientError {
	return &ClientError{Type: ErrorTypeConflict, Message: message}
}

// GetClientError extracts a ClientError from an error chain, or nil
func GetClientError(err error) *ClientError {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce
	}
	return nil
}

// IsType reports whether err is a ClientError of the given type
func IsType(err error, t ErrorType) bool {
	ce := GetClientError(err)
	return ce != nil && ce.Type == t
}

// IsUnauthorized reports whether err is an authentication failure
func IsUnauthorized(err error) bool {
	return IsType(err, ErrorTypeUnauthorized)
}

// IsValidation reports whether err was rejected before any network call
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// UserMessage returns the string a view should render for err. Unknown
// errors collapse to the generic network message so the UI never leaks
// internals.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if ce := GetClientError(err); ce != nil {
		return ce.Message
	}
	return NetworkErrorMessage
}
