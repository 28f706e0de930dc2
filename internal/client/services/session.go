package services

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/linkkeeper/internal/client/client"
	"github.com/dmitrijs2005/linkkeeper/internal/client/models"
	"github.com/dmitrijs2005/linkkeeper/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/linkkeeper/internal/common"
	"github.com/dmitrijs2005/linkkeeper/internal/logging"
	"github.com/dmitrijs2005/linkkeeper/internal/validate"
)

// SessionStore is the single source of truth for who is signed in and for
// the theme preference.
//
// Contract:
//   - Init loads the persisted theme and performs the first identity refresh.
//   - RefreshIdentity never fails: any error degrades to signed out.
//   - SignOut always clears local state, whatever the server answers.
//   - Every other operation returns an *Error with a user-facing message
//     and leaves local state untouched on failure.
//
// Subscribers are called after every state change, in change order. They
// may read Snapshot but must not call mutating methods synchronously.
type SessionStore interface {
	Init(ctx context.Context)
	Snapshot() models.Session
	Subscribe(fn func(models.Session)) (unsubscribe func())

	RefreshIdentity(ctx context.Context)
	SignIn(ctx context.Context, req models.SignIn) error
	SignUp(ctx context.Context, req models.SignUp) error
	SignOut(ctx context.Context) error
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error
	ChangePassword(ctx context.Context, req models.PasswordChange) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req models.PasswordReset) error
	SendVerification(ctx context.Context) error
	VerifyCode(ctx context.Context, code string) error
	ToggleTheme(ctx context.Context) models.Theme
}

type sessionStore struct {
	api   client.AuthAPI
	prefs PreferenceStore
	log   logging.Logger

	mu    sync.Mutex
	state models.Session
	subs  map[int]func(models.Session)
	next  int

	// notifyMu keeps subscriber calls in the same order as state changes.
	notifyMu sync.Mutex
}

// NewSessionStore returns a store in the loading state with no user.
func NewSessionStore(api client.AuthAPI, prefs PreferenceStore, log logging.Logger) SessionStore {
	if log == nil {
		log = logging.Nop()
	}
	return &sessionStore{
		api:   api,
		prefs: prefs,
		log:   log.With("component", "session"),
		state: models.Session{IsLoading: true, Theme: models.ThemeLight},
		subs:  map[int]func(models.Session){},
	}
}

func (s *sessionStore) Init(ctx context.Context) {
	if s.prefs != nil {
		v, ok, err := s.prefs.Get(ctx, preferences.KeyTheme)
		switch {
		case err != nil:
			s.log.Warn(ctx, "theme preference unreadable", "err", err)
		case ok:
			theme := models.ParseTheme(v)
			s.update(func(st *models.Session) { st.Theme = theme })
		}
	}
	s.RefreshIdentity(ctx)
}

func (s *sessionStore) Snapshot() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySession(s.state)
}

func (s *sessionStore) Subscribe(fn func(models.Session)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// RefreshIdentity asks the server who the session cookie belongs to. The
// last call to resolve wins; IsLoading is cleared whatever the outcome.
func (s *sessionStore) RefreshIdentity(ctx context.Context) {
	user, err := s.api.Me(ctx)
	if err == nil && (user == nil || strings.TrimSpace(user.Email) == "") {
		err = client.ErrInvalidResponse
	}
	if err != nil {
		s.log.Debug(ctx, "identity unavailable, treating as signed out", "err", err)
	}

	s.update(func(st *models.Session) {
		st.IsLoading = false
		if err != nil {
			st.User, st.IsAuthenticated = nil, false
			return
		}
		st.User, st.IsAuthenticated = user, true
	})
}

func (s *sessionStore) SignIn(ctx context.Context, req models.SignIn) error {
	req.Email = strings.TrimSpace(req.Email)
	v := &validate.Validator{}
	v.Required("email", req.Email).Email("email", req.Email).Required("password", req.Password)
	if err := v.Err(); err != nil {
		return &Error{Kind: KindInvalidInput, Message: err.Error(), Err: err}
	}

	if err := s.api.SignIn(ctx, req); err != nil {
		return failure(KindAuthFailed, err, "Signin failed. Please try again.")
	}
	s.log.Info(ctx, "signed in", "email", req.Email)
	s.RefreshIdentity(ctx)
	return nil
}

func (s *sessionStore) SignUp(ctx context.Context, req models.SignUp) error {
	req.Email = strings.TrimSpace(req.Email)
	v := &validate.Validator{}
	v.Required("username", req.Username).
		Required("firstName", req.FirstName).
		Required("email", req.Email).Email("email", req.Email).
		Required("password", req.Password).
		Equal("confirmPassword", req.Password, req.ConfirmPassword, "Passwords do not match")
	if err := v.Err(); err != nil {
		return &Error{Kind: KindInvalidInput, Message: err.Error(), Err: err}
	}

	if err := s.api.SignUp(ctx, req); err != nil {
		return failure(KindAuthFailed, err, "Signup failed. Please try again.")
	}
	s.log.Info(ctx, "signed up", "email", req.Email)
	return nil
}

// SignOut tells the server, then clears local state no matter what it said,
// then re-reads the identity. The server error, if any, is returned for
// display only.
func (s *sessionStore) SignOut(ctx context.Context) error {
	apiErr := s.api.SignOut(ctx)
	if apiErr != nil {
		s.log.Warn(ctx, "sign-out request failed, clearing local session anyway", "err", apiErr)
	}

	s.update(func(st *models.Session) {
		st.User, st.IsAuthenticated = nil, false
	})
	s.RefreshIdentity(ctx)

	if apiErr != nil {
		return failure(KindAuthFailed, apiErr, "Signout failed on the server.")
	}
	return nil
}

// UpdateProfile sends a partial update and re-reads the identity on
// success. Nothing local changes on failure.
func (s *sessionStore) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error {
	if upd.Empty() {
		return &Error{Kind: KindInvalidInput, Message: "Nothing to update.", Err: ErrNoDraft}
	}
	if err := s.api.UpdateProfile(ctx, upd); err != nil {
		return failure(KindProfile, err, "Error updating user data.")
	}
	s.RefreshIdentity(ctx)
	return nil
}

// ChangePassword checks that the new passwords match before any request.
func (s *sessionStore) ChangePassword(ctx context.Context, req models.PasswordChange) error {
	if req.NewPassword != req.ConfirmNewPassword {
		return &Error{Kind: KindInvalidInput, Message: "New passwords do not match.", Err: common.ErrPasswordMismatch}
	}
	v := &validate.Validator{}
	v.Required("currentPassword", req.CurrentPassword).Required("newPassword", req.NewPassword)
	if err := v.Err(); err != nil {
		return &Error{Kind: KindInvalidInput, Message: err.Error(), Err: err}
	}

	if err := s.api.ChangePassword(ctx, req); err != nil {
		return failure(KindPassword, err, "Failed to change password.")
	}
	return nil
}

func (s *sessionStore) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	v := &validate.Validator{}
	v.Required("email", email).Email("email", email)
	if err := v.Err(); err != nil {
		return &Error{Kind: KindInvalidInput, Message: err.Error(), Err: err}
	}

	if err := s.api.ForgotPassword(ctx, email); err != nil {
		return failure(KindPassword, err, "Failed to send reset email.")
	}
	return nil
}

func (s *sessionStore) ResetPassword(ctx context.Context, req models.PasswordReset) error {
	req.Email = strings.TrimSpace(req.Email)
	v := &validate.Validator{}
	v.Required("email", req.Email).Email("email", req.Email).
		Required("providedCode", req.ProvidedCode).
		Required("newPassword", req.NewPassword)
	if err := v.Err(); err != nil {
		return &Error{Kind: KindInvalidInput, Message: err.Error(), Err: err}
	}

	if err := s.api.ResetPassword(ctx, req); err != nil {
		return failure(KindPassword, err, "Failed to reset password.")
	}
	return nil
}

// SendVerification mails a code to the signed-in user's address.
func (s *sessionStore) SendVerification(ctx context.Context) error {
	user := s.Snapshot().User
	if user == nil {
		return &Error{Kind: KindVerification, Message: "Sign in first.", Err: ErrSignedOut}
	}
	if err := s.api.SendVerification(ctx, user.Email); err != nil {
		return failure(KindVerification, err, "Error sending verification email.")
	}
	return nil
}

// VerifyCode submits the mailed code and re-reads the identity so the
// verified flag updates.
func (s *sessionStore) VerifyCode(ctx context.Context, code string) error {
	user := s.Snapshot().User
	if user == nil {
		return &Error{Kind: KindVerification, Message: "Sign in first.", Err: ErrSignedOut}
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return &Error{Kind: KindInvalidInput, Message: "Enter the code from the email.", Err: common.ErrEmptyInput}
	}

	req := models.Verification{ProvidedCode: code, Email: user.Email}
	if err := s.api.VerifyCode(ctx, req); err != nil {
		return failure(KindVerification, err, "Failed to verify code.")
	}
	s.RefreshIdentity(ctx)
	return nil
}

// ToggleTheme flips the palette and persists it. A persistence failure is
// logged; the in-memory theme still changes.
func (s *sessionStore) ToggleTheme(ctx context.Context) models.Theme {
	var theme models.Theme
	s.update(func(st *models.Session) {
		st.Theme = st.Theme.Toggle()
		theme = st.Theme
	})
	if s.prefs != nil {
		if err := s.prefs.Set(ctx, preferences.KeyTheme, string(theme)); err != nil {
			s.log.Warn(ctx, "theme preference not saved", "err", err)
		}
	}
	return theme
}

// update applies fn and notifies subscribers in change order. notifyMu is
// always taken before mu, and mu is released before any subscriber runs.
func (s *sessionStore) update(fn func(st *models.Session)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	fn(&s.state)
	snap := copySession(s.state)
	subs := make([]func(models.Session), 0, len(s.subs))
	for _, f := range s.subs {
		subs = append(subs, f)
	}
	s.mu.Unlock()

	for _, f := range subs {
		f(snap)
	}
}

func copySession(st models.Session) models.Session {
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}
