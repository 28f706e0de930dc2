package services

import (
	"errors"

	"github.com/dmitrijs2005/linkkeeper/internal/client/client"
)

// ErrorKind classifies a failure surfaced to the view.
type ErrorKind string

const (
	KindFetchFailed    ErrorKind = "fetch-failed"
	KindCreateRejected ErrorKind = "create-rejected"
	KindUpdateRejected ErrorKind = "update-rejected"
	KindDeleteRejected ErrorKind = "delete-rejected"

	KindAuthFailed   ErrorKind = "auth-failed"
	KindProfile      ErrorKind = "profile-rejected"
	KindPassword     ErrorKind = "password-rejected"
	KindVerification ErrorKind = "verification-failed"
	KindAPIKey       ErrorKind = "apikey-failed"
	KindInvalidInput ErrorKind = "invalid-input"
)

var (
	// ErrBusy is returned when a mutation for the same link is still running.
	ErrBusy = errors.New("another request for this link is in progress")
	// ErrNoDraft is returned by Create/SaveEdit when no form is open.
	ErrNoDraft = errors.New("no open draft")
	// ErrUnknownLink is returned when an id is not in the collection.
	ErrUnknownLink = errors.New("unknown link")
	// ErrSlugNotFound is returned by the resolver for any failed lookup.
	ErrSlugNotFound = errors.New("short url not found")
	// ErrSignedOut is returned by operations that need a signed-in user.
	ErrSignedOut = errors.New("not signed in")
)

// Error is a user-facing failure. Error() is the message to show.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// failure converts err into an *Error, preferring the server's message.
func failure(kind ErrorKind, err error, fallback string) *Error {
	return &Error{Kind: kind, Message: client.Message(err, fallback), Err: err}
}

// KindOf returns the kind of a services error, or "".
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
