package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/linkkeeper/internal/client/client"
	"github.com/dmitrijs2005/linkkeeper/internal/client/models"
	"github.com/dmitrijs2005/linkkeeper/internal/logging"
	"github.com/dmitrijs2005/linkkeeper/internal/validate"
)

const (
	// DefaultPageSize is used when the configured page size is not positive.
	DefaultPageSize = 10

	// createKey marks the create form in the busy set; link ids never collide with it.
	createKey = "\x00create"
)

// LinkState is a point-in-time copy of the link collection.
type LinkState struct {
	Items       []models.ShortLink
	Page        int
	PageCount   int
	PageSize    int
	Loading     bool
	Loaded      bool
	CreateDraft *models.LinkDraft
	EditDraft   *models.EditDraft
	Err         *Error
}

// LinkStore manages the signed-in user's short links.
//
// Pagination is a client-side window over the fully fetched list. Every
// successful mutation is followed by a full refetch; nothing is inserted or
// removed optimistically. At most one mutation per link id runs at a time,
// and the refetch that follows a mutation runs inside that window.
type LinkStore interface {
	FetchAll(ctx context.Context) error
	Snapshot() LinkState
	PageItems() []models.ShortLink
	SetPage(n int) int
	IsBusy(id string) bool

	OpenCreate() models.LinkDraft
	CloseCreate()
	Create(ctx context.Context, draft models.LinkDraft) error

	BeginEdit(id string) (models.EditDraft, error)
	SaveEdit(ctx context.Context, id string, draft models.LinkDraft) error
	CancelEdit()

	Remove(ctx context.Context, id string, confirm Confirmer) (bool, error)

	// Reset drops everything that belongs to the current user. A fetch
	// that was in flight when Reset ran does not repopulate the store.
	Reset()
	Close()
}

type linkStore struct {
	api client.LinksAPI
	log logging.Logger

	mu       sync.Mutex
	items    []models.ShortLink
	page     int
	pageSize int
	loading  bool
	loaded   bool
	create   *models.LinkDraft
	edit     *models.EditDraft
	busy     map[string]struct{}
	// gen changes on Reset; fetches started before it are discarded.
	gen uint64

	errs *Notice[*Error]
}

// NewLinkStore returns an empty store. Errors auto-clear after errorTTL.
func NewLinkStore(api client.LinksAPI, pageSize int, errorTTL time.Duration, log logging.Logger) LinkStore {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if log == nil {
		log = logging.Nop()
	}
	s := &linkStore{
		api:      api,
		log:      log.With("component", "links"),
		page:     1,
		pageSize: pageSize,
		items:    []models.ShortLink{},
		busy:     map[string]struct{}{},
	}
	s.errs = NewNotice[*Error](errorTTL, func() {
		s.log.Debug(context.Background(), "error notice expired")
	})
	return s
}

// FetchAll replaces the collection with the server's list and resets the
// page to 1. A 404 is an empty collection. Any other failure leaves the
// items as they were and surfaces fetch-failed.
func (s *linkStore) FetchAll(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	gen := s.gen
	s.mu.Unlock()

	items, err := s.api.ListShortURLs(ctx)
	if errors.Is(err, client.ErrNotFound) {
		items, err = []models.ShortLink{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.log.Debug(ctx, "discarding list fetched before reset")
		return nil
	}
	s.loading = false
	if err != nil {
		e := failure(KindFetchFailed, err, "Failed to fetch short URLs")
		s.log.Warn(ctx, "list short urls failed", "err", err)
		s.errs.Show(e)
		return e
	}
	if items == nil {
		items = []models.ShortLink{}
	}
	s.items = items
	s.page = 1
	s.loaded = true
	return nil
}

func (s *linkStore) Snapshot() LinkState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := LinkState{
		Items:     append([]models.ShortLink(nil), s.items...),
		Page:      s.page,
		PageCount: s.pageCountLocked(),
		PageSize:  s.pageSize,
		Loading:   s.loading,
		Loaded:    s.loaded,
	}
	if s.create != nil {
		d := *s.create
		st.CreateDraft = &d
	}
	if s.edit != nil {
		d := *s.edit
		st.EditDraft = &d
	}
	if e, ok := s.errs.Current(); ok {
		st.Err = e
	}
	return st
}

// PageItems returns the slice of items visible on the current page.
func (s *linkStore) PageItems() []models.ShortLink {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := (s.page - 1) * s.pageSize
	if start >= len(s.items) {
		return []models.ShortLink{}
	}
	end := min(start+s.pageSize, len(s.items))
	return append([]models.ShortLink(nil), s.items[start:end]...)
}

// SetPage clamps n to [1, max(1, ceil(len/pageSize))] and returns the result.
func (s *linkStore) SetPage(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = max(1, min(n, s.pageCountLocked()))
	return s.page
}

func (s *linkStore) IsBusy(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.busy[id]
	return ok
}

// OpenCreate opens the create row, keeping a draft left by a failed create.
func (s *linkStore) OpenCreate() models.LinkDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.create == nil {
		s.create = &models.LinkDraft{}
	}
	return *s.create
}

func (s *linkStore) CloseCreate() {
	s.mu.Lock()
	s.create = nil
	s.mu.Unlock()
}

// Create posts draft. On success the create row closes and the list is
// refetched; on failure the draft stays open and the server message is shown.
func (s *linkStore) Create(ctx context.Context, draft models.LinkDraft) error {
	draft.FullURL = strings.TrimSpace(draft.FullURL)
	draft.ShortURL = strings.TrimSpace(draft.ShortURL)

	release, err := s.acquire(createKey)
	if err != nil {
		return err
	}
	defer release()

	s.mu.Lock()
	s.create = &draft
	s.mu.Unlock()

	if err := validateDraft(draft); err != nil {
		return err
	}

	if err := s.api.CreateShortURL(ctx, draft); err != nil {
		e := failure(KindCreateRejected, err, "Failed to create short URL")
		s.log.Info(ctx, "create short url rejected", "err", err)
		s.errs.Show(e)
		return e
	}

	s.mu.Lock()
	s.create = nil
	s.mu.Unlock()
	s.log.Info(ctx, "short url created", "alias", draft.ShortURL)

	// The link exists now; a failed refetch is reported through the notice.
	_ = s.FetchAll(ctx)
	return nil
}

// BeginEdit opens id for editing, discarding any other open edit.
func (s *linkStore) BeginEdit(id string) (models.EditDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.items {
		if l.ID == id {
			s.edit = &models.EditDraft{ID: id, LinkDraft: models.DraftFrom(l)}
			return *s.edit, nil
		}
	}
	return models.EditDraft{}, ErrUnknownLink
}

// SaveEdit patches id with draft. On failure the row stays in edit mode
// holding draft.
func (s *linkStore) SaveEdit(ctx context.Context, id string, draft models.LinkDraft) error {
	draft.FullURL = strings.TrimSpace(draft.FullURL)
	draft.ShortURL = strings.TrimSpace(draft.ShortURL)

	s.mu.Lock()
	if s.edit == nil || s.edit.ID != id {
		s.mu.Unlock()
		return ErrNoDraft
	}
	s.mu.Unlock()

	release, err := s.acquire(id)
	if err != nil {
		return err
	}
	defer release()

	s.mu.Lock()
	s.edit = &models.EditDraft{ID: id, LinkDraft: draft}
	s.mu.Unlock()

	if err := validateDraft(draft); err != nil {
		return err
	}

	if err := s.api.UpdateShortURL(ctx, id, draft); err != nil {
		e := failure(KindUpdateRejected, err, "Failed to update short URL")
		s.log.Info(ctx, "update short url rejected", "id", id, "err", err)
		s.errs.Show(e)
		return e
	}

	s.mu.Lock()
	if s.edit != nil && s.edit.ID == id {
		s.edit = nil
	}
	s.mu.Unlock()

	_ = s.FetchAll(ctx)
	return nil
}

func (s *linkStore) CancelEdit() {
	s.mu.Lock()
	s.edit = nil
	s.mu.Unlock()
}

// Remove deletes id after confirm approves. It reports whether a delete was
// issued and succeeded; declining is not an error and sends nothing.
func (s *linkStore) Remove(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	if !s.has(id) {
		return false, ErrUnknownLink
	}
	if s.IsBusy(id) {
		return false, ErrBusy
	}
	if !confirmed(ctx, confirm, "Are you sure you want to delete this short URL?") {
		return false, nil
	}

	release, err := s.acquire(id)
	if err != nil {
		return false, err
	}
	defer release()

	if err := s.api.DeleteShortURL(ctx, id); err != nil {
		e := failure(KindDeleteRejected, err, "Failed to delete short URL")
		s.log.Info(ctx, "delete short url rejected", "id", id, "err", err)
		s.errs.Show(e)
		return false, e
	}

	s.mu.Lock()
	if s.edit != nil && s.edit.ID == id {
		s.edit = nil
	}
	s.mu.Unlock()
	s.log.Info(ctx, "short url deleted", "id", id)

	_ = s.FetchAll(ctx)
	return true, nil
}

// Close stops the error timer.
func (s *linkStore) Reset() {
	s.mu.Lock()
	s.gen++
	s.items = []models.ShortLink{}
	s.page = 1
	s.loading = false
	s.loaded = false
	s.create = nil
	s.edit = nil
	s.mu.Unlock()
	s.errs.Clear()
}

func (s *linkStore) Close() {
	s.errs.Close()
}

func (s *linkStore) acquire(key string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.busy[key]; ok {
		return nil, ErrBusy
	}
	s.busy[key] = struct{}{}
	return func() {
		s.mu.Lock()
		delete(s.busy, key)
		s.mu.Unlock()
	}, nil
}

func (s *linkStore) has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.items {
		if l.ID == id {
			return true
		}
	}
	return false
}

func (s *linkStore) pageCountLocked() int {
	return max(1, (len(s.items)+s.pageSize-1)/s.pageSize)
}

func validateDraft(d models.LinkDraft) error {
	v := &validate.Validator{}
	v.Required("fullUrl", d.FullURL).AbsoluteURL("fullUrl", d.FullURL).Alias("shortUrl", d.ShortURL)
	if err := v.Err(); err != nil {
		return &Error{Kind: KindInvalidInput, Message: err.Error(), Err: err}
	}
	return nil
}
