// Package models defines client-side data models used by the linkkeeper CLI.
package models

import (
	"encoding/json"
	"strings"
	"time"
)

// User is the identity returned by the identity endpoint.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Username  string    `json:"username"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}

// UnmarshalJSON accepts the record id as either "id" or "_id".
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	var aux struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// DisplayName is "First Last", falling back to the username and then the email.
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// Theme is the rendering palette preference. It is independent of auth.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a stored value to a Theme; anything unknown is light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Session is a point-in-time copy of the session store state.
//
// Invariant: IsAuthenticated implies User != nil with a non-empty Email.
// While IsLoading is true no authorization decision may be made.
type Session struct {
	User            *User
	IsLoading       bool
	IsAuthenticated bool
	Theme           Theme
}
