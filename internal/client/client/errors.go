package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrRejected        = errors.New("request rejected")
	ErrInvalidResponse = errors.New("invalid response")
)

// Error is a non-2xx answer from the API. Message is whatever the server put
// in its "message" (or "error") field and may be empty.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// Unwrap maps the status onto the package sentinels so callers can use
// errors.Is(err, client.ErrNotFound) and friends.
func (e *Error) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return ErrUnauthorized
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status >= 500:
		return ErrUnavailable
	default:
		return ErrRejected
	}
}

// Message returns the server-provided message carried by err, or fallback
// when there is none.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
