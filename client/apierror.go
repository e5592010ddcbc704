package client

import (
	"errors"
	"net/http"
	"strconv"
)

// parseServiceError extracts an error from a non-success service response.
func parseServiceError(statusCode int, body []byte) error {
	return &APIError{
		StatusCode: statusCode,
		Body:       string(body),
	}
}

// APIError represents an error response from the storage service. The body
// is the raw XML error document the service returns.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return "service error: " + strconv.Itoa(e.StatusCode) + " - " + e.Body
}

// Is reports whether target matches this error.
// It matches if target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// IsNotFound returns true if the error is a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Sentinel errors for common API error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrNotFound is returned when the blob or container does not exist (404).
	ErrNotFound = &APIError{StatusCode: http.StatusNotFound}

	// ErrUnauthorized is returned when signature verification fails (401).
	// This typically means a wrong account key or a clock-skewed expiry.
	ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized}

	// ErrForbidden is returned when the signed permission does not cover the
	// attempted operation (403).
	ErrForbidden = &APIError{StatusCode: http.StatusForbidden}
)
