package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/linkkeeper/internal/client/client"
	"github.com/dmitrijs2005/linkkeeper/internal/logging"
)

// APIKeyState is a point-in-time copy of the API key view state.
type APIKeyState struct {
	Key           string
	Loaded        bool
	Loading       bool
	ActionLoading bool
	Success       string
	Err           *Error
}

// APIKeyStore manages the developer API key. Regenerate and Delete ask for
// confirmation and send nothing when declined.
type APIKeyStore interface {
	Load(ctx context.Context)
	Snapshot() APIKeyState
	Create(ctx context.Context) error
	Regenerate(ctx context.Context, confirm Confirmer) (bool, error)
	Delete(ctx context.Context, confirm Confirmer) (bool, error)
	// Reset forgets the key and any notices, e.g. after the user changes.
	Reset()
	Close()
}

type apiKeyStore struct {
	api client.APIKeyAPI
	log logging.Logger

	mu            sync.Mutex
	key           string
	loaded        bool
	loading       bool
	actionLoading bool
	gen           uint64

	success *Notice[string]
	errs    *Notice[*Error]
}

func NewAPIKeyStore(api client.APIKeyAPI, noticeTTL time.Duration, log logging.Logger) APIKeyStore {
	if log == nil {
		log = logging.Nop()
	}
	return &apiKeyStore{
		api:     api,
		log:     log.With("component", "apikey"),
		success: NewNotice[string](noticeTTL, nil),
		errs:    NewNotice[*Error](noticeTTL, nil),
	}
}

// Load reads the current key. Any failure means "no key".
func (s *apiKeyStore) Load(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	gen := s.gen
	s.mu.Unlock()

	key, err := s.api.GetAPIKey(ctx)
	if err != nil {
		s.log.Debug(ctx, "api key unavailable", "err", err)
		key = ""
	}

	s.mu.Lock()
	if gen == s.gen {
		s.key, s.loaded, s.loading = key, true, false
	}
	s.mu.Unlock()
}

func (s *apiKeyStore) Snapshot() APIKeyState {
	s.mu.Lock()
	st := APIKeyState{
		Key:           s.key,
		Loaded:        s.loaded,
		Loading:       s.loading,
		ActionLoading: s.actionLoading,
	}
	s.mu.Unlock()

	st.Success, _ = s.success.Current()
	if e, ok := s.errs.Current(); ok {
		st.Err = e
	}
	return st
}

func (s *apiKeyStore) Create(ctx context.Context) error {
	s.mu.Lock()
	exists := s.key != ""
	s.mu.Unlock()
	if exists {
		e := &Error{Kind: KindAPIKey, Message: "You already have an API key."}
		s.errs.Show(e)
		return e
	}
	return s.run(ctx, "Failed to create API key.", "API key created successfully!", func() error {
		key, err := s.api.CreateAPIKey(ctx)
		if err == nil {
			s.setKey(key)
		}
		return err
	})
}

func (s *apiKeyStore) Regenerate(ctx context.Context, confirm Confirmer) (bool, error) {
	if !confirmed(ctx, confirm, "Are you sure you want to regenerate your API key? Your old key will stop working.") {
		return false, nil
	}
	err := s.run(ctx, "Failed to regenerate API key.", "API key regenerated successfully!", func() error {
		key, err := s.api.RegenerateAPIKey(ctx)
		if err == nil {
			s.setKey(key)
		}
		return err
	})
	return err == nil, err
}

func (s *apiKeyStore) Delete(ctx context.Context, confirm Confirmer) (bool, error) {
	if !confirmed(ctx, confirm, "Are you sure you want to delete your API key? You will not be able to use the API until you create a new one.") {
		return false, nil
	}
	err := s.run(ctx, "Failed to delete API key.", "API key deleted successfully!", func() error {
		err := s.api.DeleteAPIKey(ctx)
		if err == nil {
			s.setKey("")
		}
		return err
	})
	return err == nil, err
}

func (s *apiKeyStore) Reset() {
	s.mu.Lock()
	s.gen++
	s.key, s.loaded, s.loading = "", false, false
	s.mu.Unlock()
	s.success.Clear()
	s.errs.Clear()
}

func (s *apiKeyStore) Close() {
	s.success.Close()
	s.errs.Close()
}

// run wraps one key mutation with the action flag and the notices.
func (s *apiKeyStore) run(ctx context.Context, fallback, ok string, fn func() error) error {
	s.mu.Lock()
	if s.actionLoading {
		s.mu.Unlock()
		return ErrBusy
	}
	s.actionLoading = true
	s.mu.Unlock()

	s.success.Clear()
	s.errs.Clear()

	err := fn()

	s.mu.Lock()
	s.actionLoading = false
	s.mu.Unlock()

	if err != nil {
		e := failure(KindAPIKey, err, fallback)
		s.log.Info(ctx, "api key action failed", "err", err)
		s.errs.Show(e)
		return e
	}
	s.success.Show(ok)
	return nil
}

func (s *apiKeyStore) setKey(key string) {
	s.mu.Lock()
	s.key = key
	s.loaded = true
	s.mu.Unlock()
}
