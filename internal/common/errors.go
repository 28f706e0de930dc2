package common

import "errors"

var (
	// Input validated on the client before any request is made.
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrEmptyInput       = errors.New("empty input")

	// The user declined a confirmation prompt.
	ErrNotConfirmed = errors.New("not confirmed")
)
