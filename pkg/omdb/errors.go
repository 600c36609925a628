package omdb

import (
	"errors"
	"strings"
)

// ErrInvalidInput is returned before any network call when the query or id is empty.
var ErrInvalidInput = errors.New("invalid input")

// APIError is any failure talking to OMDb: transport errors, non-2xx
// responses, malformed bodies, and the API's own Response=False signal.
type APIError struct {
	Message    string
	StatusCode int // 0 when no HTTP response was received
}

func (e *APIError) Error() string {
	return e.Message
}

// HasStatus reports whether an HTTP status was received.
func (e *APIError) HasStatus() bool {
	return e.StatusCode != 0
}

// IsNotFound reports whether err is OMDb's "not found" signal.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return strings.Contains(strings.ToLower(apiErr.Message), "not found")
}

// invalidInput wraps ErrInvalidInput with a user facing message.
type invalidInput struct {
	msg string
}

func (e *invalidInput) Error() string { return e.msg }

func (e *invalidInput) Unwrap() error { return ErrInvalidInput }
