package client

import (
	"context"

	"github.com/dmitrijs2005/linkkeeper/internal/client/models"
)

// AuthAPI covers session, account and verification endpoints.
type AuthAPI interface {
	Me(ctx context.Context) (*models.User, error)
	SignIn(ctx context.Context, req models.SignIn) error
	SignUp(ctx context.Context, req models.SignUp) error
	SignOut(ctx context.Context) error
	UpdateProfile(ctx context.Context, req models.ProfileUpdate) error
	ChangePassword(ctx context.Context, req models.PasswordChange) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req models.PasswordReset) error
	SendVerification(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, req models.Verification) error
}

// LinksAPI covers the signed-in user's short links and public resolution.
type LinksAPI interface {
	ListShortURLs(ctx context.Context) ([]models.ShortLink, error)
	ResolveShortURL(ctx context.Context, slug string) (*models.ShortLink, error)
	CreateShortURL(ctx context.Context, draft models.LinkDraft) error
	UpdateShortURL(ctx context.Context, id string, draft models.LinkDraft) error
	DeleteShortURL(ctx context.Context, id string) error
}

// APIKeyAPI covers the developer API key. GetAPIKey returns "" when the
// user has none.
type APIKeyAPI interface {
	GetAPIKey(ctx context.Context) (string, error)
	CreateAPIKey(ctx context.Context) (string, error)
	RegenerateAPIKey(ctx context.Context) (string, error)
	DeleteAPIKey(ctx context.Context) error
}

// Client is the full API surface.
type Client interface {
	AuthAPI
	LinksAPI
	APIKeyAPI
}
