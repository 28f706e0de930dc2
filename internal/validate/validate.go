// Package validate checks form input on the client before any request is
// issued, collecting every field failure into one error.
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// aliasRegex matches the characters the service accepts in a custom alias.
var aliasRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// FieldError is a single field-level failure.
type FieldError struct {
	Field   string
	Message string
}

// Error is returned by Validator.Err when at least one rule failed.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator collects field-level errors through a chainable API. It is not
// safe for concurrent use; make one per form submission.
type Validator struct {
	errs []FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MinLen fails if the character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// Email fails if the value is not an RFC 5322 address.
func (v *Validator) Email(field, value string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// AbsoluteURL fails unless the value is an http(s) URL with a host.
func (v *Validator) AbsoluteURL(field, value string) *Validator {
	u, err := url.Parse(strings.TrimSpace(value))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		v.add(field, "Must be an absolute http(s) URL")
	}
	return v
}

// Alias fails if a non-empty value has characters outside [A-Za-z0-9_-].
// Empty is allowed: the server assigns one.
func (v *Validator) Alias(field, value string) *Validator {
	if value != "" && !aliasRegex.MatchString(value) {
		v.add(field, "Only letters, digits, '-' and '_' are allowed")
	}
	return v
}

// Equal fails if the two values differ.
func (v *Validator) Equal(field, a, b, message string) *Validator {
	if a != b {
		v.add(field, message)
	}
	return v
}

// Err returns an *Error if any rule failed, nil otherwise.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return &Error{Fields: append([]FieldError(nil), v.errs...)}
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
}
