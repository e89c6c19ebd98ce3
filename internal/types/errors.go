package types

import (
	"encoding/json"
	"net/http"
)

// APIError represents an OpenAI-compatible error response.
type APIError struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	Message string  `json:"message"`
	Type    string  `json:"type"`
	Param   *string `json:"param,omitempty"`
	Code    *string `json:"code,omitempty"`
}

// Error type constants
const (
	ErrorTypeInvalidRequest     = "invalid_request_error"
	ErrorTypeAuthentication     = "authentication_error"
	ErrorTypeNotFound           = "not_found_error"
	ErrorTypeRateLimit          = "rate_limit_error"
	ErrorTypeServer             = "server_error"
	ErrorTypeUpstream           = "upstream_error"
	ErrorTypeServiceUnavailable = "service_unavailable"
)

// NewAPIError creates a new API error.
func NewAPIError(message, errType string) *APIError {
	return &APIError{
		Error: ErrorDetail{
			Message: message,
			Type:    errType,
		},
	}
}

// WriteError writes an API error to the response writer.
func WriteError(w http.ResponseWriter, statusCode int, err *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(err)
}

// ErrorTypeForStatus picks the error type clients expect for an HTTP status.
func ErrorTypeForStatus(status int) string {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorTypeAuthentication
	case status == http.StatusNotFound:
		return ErrorTypeNotFound
	case status == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case status == http.StatusServiceUnavailable:
		return ErrorTypeServiceUnavailable
	case status >= 400 && status < 500:
		return ErrorTypeInvalidRequest
	default:
		return ErrorTypeServer
	}
}

// Common error constructors

// ErrInvalidRequest creates an invalid request error.
func ErrInvalidRequest(message string) *APIError {
	return NewAPIError(message, ErrorTypeInvalidRequest)
}

// ErrRateLimit creates a rate limit error.
func ErrRateLimit(message string) *APIError {
	return NewAPIError(message, ErrorTypeRateLimit)
}

// ErrNotFound creates a not found error.
func ErrNotFound(message string) *APIError {
	return NewAPIError(message, ErrorTypeNotFound)
}
