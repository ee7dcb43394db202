package workspace

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for client construction and calls.
var (
	ErrMissingToken = errors.New("workspace: integration token is required")
	ErrInvalidBase  = errors.New("workspace: invalid base URL")
	ErrMissingID    = errors.New("workspace: resource id is required")
)

// APIError is a non-2xx response from the remote API.
type APIError struct {
	// Status is the HTTP status code.
	Status int `json:"status"`

	// Code is the API's machine-readable error code, when present.
	Code string `json:"code"`

	// Message is the API's human-readable error message.
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("workspace: api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("workspace: api error %d: %s", e.Status, e.Message)
}

// Retryable reports whether the error is transient: rate limiting or a
// server-side failure.
func (e *APIError) Retryable() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// retryable reports whether a call error should be retried. API errors
// defer to their own status; anything else (transport failure, reset
// connection) is assumed transient.
func retryable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return true
}
