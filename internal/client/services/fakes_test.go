package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/linkkeeper/internal/client/client"
	"github.com/dmitrijs2005/linkkeeper/internal/client/models"
	"github.com/dmitrijs2005/linkkeeper/internal/client/repositories/preferences"
)

// fakeAPI implements client.Client. Nil hooks succeed with zero values.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	MeFn             func(ctx context.Context) (*models.User, error)
	SignInFn         func(req models.SignIn) error
	SignUpFn         func(req models.SignUp) error
	SignOutFn        func() error
	UpdateProfileFn  func(req models.ProfileUpdate) error
	ChangePasswordFn func(req models.PasswordChange) error
	ForgotFn         func(email string) error
	ResetFn          func(req models.PasswordReset) error
	SendVerifyFn     func(email string) error
	VerifyFn         func(req models.Verification) error

	ListFn    func(ctx context.Context) ([]models.ShortLink, error)
	ResolveFn func(slug string) (*models.ShortLink, error)
	CreateFn  func(ctx context.Context, d models.LinkDraft) error
	UpdateFn  func(ctx context.Context, id string, d models.LinkDraft) error
	DeleteFn  func(ctx context.Context, id string) error

	GetKeyFn    func() (string, error)
	CreateKeyFn func() (string, error)
	RegenKeyFn  func() (string, error)
	DeleteKeyFn func() error
}

var _ client.Client = (*fakeAPI)(nil)

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) count(name string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) Me(ctx context.Context) (*models.User, error) {
	f.record("Me")
	if f.MeFn != nil {
		return f.MeFn(ctx)
	}
	return nil, client.ErrUnauthorized
}

func (f *fakeAPI) SignIn(_ context.Context, req models.SignIn) error {
	f.record("SignIn")
	if f.SignInFn != nil {
		return f.SignInFn(req)
	}
	return nil
}

func (f *fakeAPI) SignUp(_ context.Context, req models.SignUp) error {
	f.record("SignUp")
	if f.SignUpFn != nil {
		return f.SignUpFn(req)
	}
	return nil
}

func (f *fakeAPI) SignOut(context.Context) error {
	f.record("SignOut")
	if f.SignOutFn != nil {
		return f.SignOutFn()
	}
	return nil
}

func (f *fakeAPI) UpdateProfile(_ context.Context, req models.ProfileUpdate) error {
	f.record("UpdateProfile")
	if f.UpdateProfileFn != nil {
		return f.UpdateProfileFn(req)
	}
	return nil
}

func (f *fakeAPI) ChangePassword(_ context.Context, req models.PasswordChange) error {
	f.record("ChangePassword")
	if f.ChangePasswordFn != nil {
		return f.ChangePasswordFn(req)
	}
	return nil
}

func (f *fakeAPI) ForgotPassword(_ context.Context, email string) error {
	f.record("ForgotPassword")
	if f.ForgotFn != nil {
		return f.ForgotFn(email)
	}
	return nil
}

func (f *fakeAPI) ResetPassword(_ context.Context, req models.PasswordReset) error {
	f.record("ResetPassword")
	if f.ResetFn != nil {
		return f.ResetFn(req)
	}
	return nil
}

func (f *fakeAPI) SendVerification(_ context.Context, email string) error {
	f.record("SendVerification")
	if f.SendVerifyFn != nil {
		return f.SendVerifyFn(email)
	}
	return nil
}

func (f *fakeAPI) VerifyCode(_ context.Context, req models.Verification) error {
	f.record("VerifyCode")
	if f.VerifyFn != nil {
		return f.VerifyFn(req)
	}
	return nil
}

func (f *fakeAPI) ListShortURLs(ctx context.Context) ([]models.ShortLink, error) {
	f.record("List")
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	return []models.ShortLink{}, nil
}

func (f *fakeAPI) ResolveShortURL(_ context.Context, slug string) (*models.ShortLink, error) {
	f.record("Resolve")
	if f.ResolveFn != nil {
		return f.ResolveFn(slug)
	}
	return nil, client.ErrNotFound
}

func (f *fakeAPI) CreateShortURL(ctx context.Context, d models.LinkDraft) error {
	f.record("Create")
	if f.CreateFn != nil {
		return f.CreateFn(ctx, d)
	}
	return nil
}

func (f *fakeAPI) UpdateShortURL(ctx context.Context, id string, d models.LinkDraft) error {
	f.record("Update")
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, id, d)
	}
	return nil
}

func (f *fakeAPI) DeleteShortURL(ctx context.Context, id string) error {
	f.record("Delete")
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

func (f *fakeAPI) GetAPIKey(context.Context) (string, error) {
	f.record("GetKey")
	if f.GetKeyFn != nil {
		return f.GetKeyFn()
	}
	return "", nil
}

func (f *fakeAPI) CreateAPIKey(context.Context) (string, error) {
	f.record("CreateKey")
	if f.CreateKeyFn != nil {
		return f.CreateKeyFn()
	}
	return "new-key", nil
}

func (f *fakeAPI) RegenerateAPIKey(context.Context) (string, error) {
	f.record("RegenKey")
	if f.RegenKeyFn != nil {
		return f.RegenKeyFn()
	}
	return "regen-key", nil
}

func (f *fakeAPI) DeleteAPIKey(context.Context) error {
	f.record("DeleteKey")
	if f.DeleteKeyFn != nil {
		return f.DeleteKeyFn()
	}
	return nil
}

// memPrefs is an in-memory PreferenceStore.
type memPrefs struct {
	mu     sync.Mutex
	m      map[preferences.Key]string
	setErr error
}

func newMemPrefs() *memPrefs { return &memPrefs{m: map[preferences.Key]string{}} }

func (p *memPrefs) Get(_ context.Context, k preferences.Key) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.m[k]
	return v, ok, nil
}

func (p *memPrefs) Set(_ context.Context, k preferences.Key, v string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.setErr != nil {
		return p.setErr
	}
	p.m[k] = v
	return nil
}

func confirmWith(answer bool) (Confirmer, *int) {
	asked := 0
	return ConfirmFunc(func(context.Context, string) (bool, error) {
		asked++
		return answer, nil
	}), &asked
}

func user(email string) *models.User {
	return &models.User{ID: "id-" + email, Email: email, FirstName: "Ann"}
}
