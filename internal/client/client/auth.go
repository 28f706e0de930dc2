package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/linkkeeper/internal/client/models"
)

type meResponse struct {
	User *models.User `json:"user"`
}

type emailRequest struct {
	Email string `json:"email"`
}

// Me fetches the identity bound to the session cookie. A payload without a
// user email is rejected so callers can trust User.Email.
func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var resp meResponse
	if err := c.do(ctx, http.MethodGet, c.identityPath, nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, invalid(c.identityPath, "missing user")
	}
	if strings.TrimSpace(resp.User.Email) == "" {
		return nil, invalid(c.identityPath, "user without email")
	}
	return resp.User, nil
}

// SignIn posts credentials; on success the server sets the session cookie.
func (c *HTTPClient) SignIn(ctx context.Context, req models.SignIn) error {
	return c.do(ctx, http.MethodPost, "/auth/signin", req, nil)
}

func (c *HTTPClient) SignUp(ctx context.Context, req models.SignUp) error {
	return c.do(ctx, http.MethodPost, "/auth/signup", req, nil)
}

func (c *HTTPClient) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/signout", nil, nil)
}

// UpdateProfile sends a partial update. The returned user is ignored; the
// caller re-reads the identity instead.
func (c *HTTPClient) UpdateProfile(ctx context.Context, req models.ProfileUpdate) error {
	return c.do(ctx, http.MethodPatch, "/users/me", req, nil)
}

func (c *HTTPClient) ChangePassword(ctx context.Context, req models.PasswordChange) error {
	return c.do(ctx, http.MethodPatch, "/auth/password", req, nil)
}

// ForgotPassword asks the server to mail a reset code.
func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPatch, "/auth/password/forget", emailRequest{Email: email}, nil)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, req models.PasswordReset) error {
	return c.do(ctx, http.MethodPatch, "/auth/password/reset", req, nil)
}

// SendVerification asks the server to mail a verification code.
func (c *HTTPClient) SendVerification(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPatch, "/auth/verification/send", emailRequest{Email: email}, nil)
}

func (c *HTTPClient) VerifyCode(ctx context.Context, req models.Verification) error {
	return c.do(ctx, http.MethodPatch, "/auth/verification/verify", req, nil)
}
