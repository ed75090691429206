package apierrors

import "fmt"

// APIError is the single error shape crossing the upstream-API boundary and
// the control surface. Status carries the HTTP status, Code a stable machine
// code, Message an optional human-readable text for the toast channel.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

func NewAPIError(status int, code string) *APIError {
	return &APIError{Status: status, Code: code}
}

func NewAPIErrorWithMessage(status int, code string, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

// Stable error codes used across the control surface.
const (
	ErrValidationFailed = "VALIDATION_FAILED"
	ErrSuperseded       = "SUPERSEDED"
	ErrUpstreamFailed   = "UPSTREAM_FAILED"
	ErrNetwork          = "NETWORK_ERROR"
	ErrNotAuthenticated = "NOT_AUTHENTICATED"
	ErrFlowNotActive    = "FLOW_NOT_ACTIVE"
	ErrInternal         = "INTERNAL_SERVER_ERROR"
)
