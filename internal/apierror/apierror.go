// Package apierror defines the typed error taxonomy every handler funnels
// into before a response is written.
package apierror

import (
	"errors"
	"net/http"
)

// Error carries an HTTP status alongside a client-safe message. Details is
// optional extra context (validation specifics) and is returned as the
// envelope's errors array.
type Error struct {
	Status  int      `json:"statusCode"`
	Message string   `json:"message"`
	Details []string `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with an explicit status.
func New(status int, message string, details ...string) *Error {
	return &Error{Status: status, Message: message, Details: details}
}

// Validation reports bad or missing input (400).
func Validation(message string, details ...string) *Error {
	return New(http.StatusBadRequest, message, details...)
}

// Unauthorized reports missing, invalid or expired credentials (401).
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// NotFound reports an absent target. Resources owned by someone else are
// reported the same way so the API never reveals their existence.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Conflict reports a duplicate edge or resource (409).
func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// Upload reports a media gateway failure (500); the caller must not have
// persisted a partial asset reference.
func Upload(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// Internal reports an unexpected failure without leaking internals.
func Internal(message string) *Error {
	if message == "" {
		message = "something went wrong"
	}
	return New(http.StatusInternalServerError, message)
}

// FromError extracts a typed *Error if err carries one.
func FromError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
