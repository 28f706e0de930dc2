package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/linkkeeper/internal/client/client"
	"github.com/dmitrijs2005/linkkeeper/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLinks(n int) []models.ShortLink {
	out := make([]models.ShortLink, n)
	for i := range out {
		out[i] = models.ShortLink{
			ID:    fmt.Sprintf("id%02d", i),
			Full:  fmt.Sprintf("https://example.com/%d", i),
			Short: fmt.Sprintf("s%d", i),
		}
	}
	return out
}

func listing(links []models.ShortLink) func(context.Context) ([]models.ShortLink, error) {
	return func(context.Context) ([]models.ShortLink, error) {
		return append([]models.ShortLink(nil), links...), nil
	}
}

func newLinks(t *testing.T, api *fakeAPI) LinkStore {
	t.Helper()
	s := NewLinkStore(api, 10, time.Minute, nil)
	t.Cleanup(s.Close)
	return s
}

func TestFetchAll_ReplacesItemsInServerOrder(t *testing.T) {
	server := []models.ShortLink{
		{ID: "z", Full: "https://z.example", Short: "z"},
		{ID: "a", Full: "https://a.example", Short: "a", Clicks: 7},
	}
	s := newLinks(t, &fakeAPI{ListFn: listing(server)})

	require.NoError(t, s.FetchAll(context.Background()))

	snap := s.Snapshot()
	if diff := cmp.Diff(server, snap.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, snap.Loaded)
	assert.False(t, snap.Loading)
	assert.Nil(t, snap.Err)
}

func TestFetchAll_NotFoundIsEmpty(t *testing.T) {
	api := &fakeAPI{ListFn: listing(makeLinks(3))}
	s := newLinks(t, api)
	require.NoError(t, s.FetchAll(context.Background()))

	api.ListFn = func(context.Context) ([]models.ShortLink, error) {
		return nil, &client.Error{Status: 404, Message: "No short URLs found"}
	}
	require.NoError(t, s.FetchAll(context.Background()))

	snap := s.Snapshot()
	assert.Empty(t, snap.Items)
	assert.NotNil(t, snap.Items)
	assert.Nil(t, snap.Err)
}

func TestFetchAll_FailureKeepsItems(t *testing.T) {
	api := &fakeAPI{ListFn: listing(makeLinks(2))}
	s := newLinks(t, api)
	require.NoError(t, s.FetchAll(context.Background()))

	api.ListFn = func(context.Context) ([]models.ShortLink, error) { return nil, client.ErrUnavailable }
	err := s.FetchAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindFetchFailed, KindOf(err))
	assert.EqualError(t, err, "Failed to fetch short URLs")

	snap := s.Snapshot()
	assert.Len(t, snap.Items, 2)
	require.NotNil(t, snap.Err)
	assert.Equal(t, KindFetchFailed, snap.Err.Kind)
}

func TestFetchAll_ResetsPage(t *testing.T) {
	s := newLinks(t, &fakeAPI{ListFn: listing(makeLinks(25))})
	require.NoError(t, s.FetchAll(context.Background()))
	require.Equal(t, 3, s.SetPage(3))

	require.NoError(t, s.FetchAll(context.Background()))
	assert.Equal(t, 1, s.Snapshot().Page)
}

func TestSetPage_Clamps(t *testing.T) {
	tests := []struct {
		count, n, want int
	}{
		{0, 0, 1}, {0, 5, 1}, {0, -3, 1},
		{10, 2, 1}, {11, 2, 2}, {11, 3, 2},
		{25, -1, 1}, {25, 0, 1}, {25, 3, 3}, {25, 99, 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("count=%d/n=%d", tt.count, tt.n), func(t *testing.T) {
			s := newLinks(t, &fakeAPI{ListFn: listing(makeLinks(tt.count))})
			require.NoError(t, s.FetchAll(context.Background()))
			assert.Equal(t, tt.want, s.SetPage(tt.n))
			assert.Equal(t, tt.want, s.Snapshot().Page)
		})
	}
}

func TestPageItems_Window(t *testing.T) {
	all := makeLinks(23)
	s := newLinks(t, &fakeAPI{ListFn: listing(all)})
	require.NoError(t, s.FetchAll(context.Background()))

	assert.Equal(t, all[:10], s.PageItems())
	s.SetPage(3)
	assert.Equal(t, all[20:], s.PageItems())
	assert.Equal(t, 3, s.Snapshot().PageCount)
}

func TestCreate_SuccessRefetchesAndClosesRow(t *testing.T) {
	var server []models.ShortLink
	api := &fakeAPI{}
	api.ListFn = func(context.Context) ([]models.ShortLink, error) { return server, nil }
	api.CreateFn = func(_ context.Context, d models.LinkDraft) error {
		server = append(server, models.ShortLink{ID: "n1", Full: d.FullURL, Short: "srv123", Clicks: 0})
		return nil
	}
	s := newLinks(t, api)

	assert.Equal(t, models.LinkDraft{}, s.OpenCreate())
	require.NoError(t, s.Create(context.Background(), models.LinkDraft{FullURL: "https://example.com"}))

	snap := s.Snapshot()
	assert.Nil(t, snap.CreateDraft)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "srv123", snap.Items[0].Short)
	assert.Zero(t, snap.Items[0].Clicks)
	assert.Equal(t, []string{"Create", "List"}, api.Calls())
}

func TestCreate_RejectedKeepsDraft(t *testing.T) {
	api := &fakeAPI{CreateFn: func(context.Context, models.LinkDraft) error {
		return &client.Error{Status: 422, Message: "Short URL already exists"}
	}}
	s := newLinks(t, api)
	draft := models.LinkDraft{FullURL: "https://example.com", ShortURL: "taken"}

	err := s.Create(context.Background(), draft)
	require.EqualError(t, err, "Short URL already exists")
	assert.Equal(t, KindCreateRejected, KindOf(err))

	snap := s.Snapshot()
	require.NotNil(t, snap.CreateDraft)
	assert.Equal(t, draft, *snap.CreateDraft)
	assert.Equal(t, draft, s.OpenCreate(), "reopening keeps the failed draft")
	assert.Equal(t, 0, api.count("List"))

	s.CloseCreate()
	assert.Nil(t, s.Snapshot().CreateDraft)
}

func TestCreate_InvalidDraftNeverSent(t *testing.T) {
	api := &fakeAPI{}
	s := newLinks(t, api)

	err := s.Create(context.Background(), models.LinkDraft{FullURL: "example.com", ShortURL: "bad alias!"})
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, KindOf(err))
	assert.Empty(t, api.Calls())
	assert.NotNil(t, s.Snapshot().CreateDraft)
}

func TestBeginEdit_SingleDraft(t *testing.T) {
	s := newLinks(t, &fakeAPI{ListFn: listing(makeLinks(3))})
	require.NoError(t, s.FetchAll(context.Background()))

	_, err := s.BeginEdit("id00")
	require.NoError(t, err)
	d, err := s.BeginEdit("id01")
	require.NoError(t, err)
	assert.Equal(t, "id01", d.ID)
	assert.Equal(t, "s1", d.ShortURL)

	snap := s.Snapshot()
	require.NotNil(t, snap.EditDraft)
	assert.Equal(t, "id01", snap.EditDraft.ID)

	_, err = s.BeginEdit("missing")
	require.ErrorIs(t, err, ErrUnknownLink)

	s.CancelEdit()
	assert.Nil(t, s.Snapshot().EditDraft)
}

func TestSaveEdit(t *testing.T) {
	links := makeLinks(2)
	api := &fakeAPI{ListFn: listing(links)}
	s := newLinks(t, api)
	require.NoError(t, s.FetchAll(context.Background()))

	require.ErrorIs(t, s.SaveEdit(context.Background(), "id00", models.LinkDraft{}), ErrNoDraft)

	_, err := s.BeginEdit("id00")
	require.NoError(t, err)

	api.UpdateFn = func(context.Context, string, models.LinkDraft) error {
		return &client.Error{Status: 409, Message: "Short URL already taken"}
	}
	edited := models.LinkDraft{FullURL: "https://new.example", ShortURL: "s1"}
	err = s.SaveEdit(context.Background(), "id00", edited)
	require.EqualError(t, err, "Short URL already taken")
	assert.Equal(t, KindUpdateRejected, KindOf(err))

	snap := s.Snapshot()
	require.NotNil(t, snap.EditDraft)
	assert.Equal(t, models.EditDraft{ID: "id00", LinkDraft: edited}, *snap.EditDraft)
	assert.Equal(t, links, snap.Items, "items unchanged on failure")

	var gotID string
	api.UpdateFn = func(_ context.Context, id string, _ models.LinkDraft) error { gotID = id; return nil }
	require.NoError(t, s.SaveEdit(context.Background(), "id00", models.LinkDraft{FullURL: "https://new.example", ShortURL: "fresh"}))
	assert.Equal(t, "id00", gotID)
	assert.Nil(t, s.Snapshot().EditDraft)
	assert.Equal(t, 2, api.count("List"))
}

func TestRemove_RequiresConfirmation(t *testing.T) {
	links := makeLinks(2)
	api := &fakeAPI{ListFn: listing(links)}
	s := newLinks(t, api)
	require.NoError(t, s.FetchAll(context.Background()))

	no, asked := confirmWith(false)
	removed, err := s.Remove(context.Background(), "id00", no)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, *asked)
	assert.Equal(t, 0, api.count("Delete"))
	assert.Equal(t, links, s.Snapshot().Items)

	removed, err = s.Remove(context.Background(), "id00", nil)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 0, api.count("Delete"))

	errConfirm := ConfirmFunc(func(context.Context, string) (bool, error) { return true, context.Canceled })
	removed, err = s.Remove(context.Background(), "id00", errConfirm)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 0, api.count("Delete"))
}

func TestRemove_ConfirmedDeletesAndRefetches(t *testing.T) {
	server := makeLinks(2)
	api := &fakeAPI{}
	api.ListFn = func(context.Context) ([]models.ShortLink, error) { return server, nil }
	api.DeleteFn = func(_ context.Context, id string) error {
		server = server[1:]
		return nil
	}
	s := newLinks(t, api)
	require.NoError(t, s.FetchAll(context.Background()))

	yes, _ := confirmWith(true)
	removed, err := s.Remove(context.Background(), "id00", yes)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Len(t, s.Snapshot().Items, 1)

	_, err = s.Remove(context.Background(), "id00", yes)
	require.ErrorIs(t, err, ErrUnknownLink)
}

func TestRemove_FailureLeavesRow(t *testing.T) {
	links := makeLinks(1)
	api := &fakeAPI{ListFn: listing(links)}
	api.DeleteFn = func(context.Context, string) error { return client.ErrUnavailable }
	s := newLinks(t, api)
	require.NoError(t, s.FetchAll(context.Background()))

	yes, _ := confirmWith(true)
	removed, err := s.Remove(context.Background(), "id00", yes)
	require.EqualError(t, err, "Failed to delete short URL")
	assert.Equal(t, KindDeleteRejected, KindOf(err))
	assert.False(t, removed)
	assert.Equal(t, links, s.Snapshot().Items)
}

func TestMutation_BusyPerID(t *testing.T) {
	links := makeLinks(2)
	api := &fakeAPI{ListFn: listing(links)}
	s := newLinks(t, api)
	require.NoError(t, s.FetchAll(context.Background()))
	_, err := s.BeginEdit("id00")
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	api.UpdateFn = func(context.Context, string, models.LinkDraft) error {
		close(entered)
		<-release
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- s.SaveEdit(context.Background(), "id00", models.DraftFrom(links[0]))
	}()
	<-entered

	assert.True(t, s.IsBusy("id00"))
	assert.False(t, s.IsBusy("id01"))

	yes, asked := confirmWith(true)
	_, err = s.Remove(context.Background(), "id00", yes)
	require.ErrorIs(t, err, ErrBusy)
	assert.Zero(t, *asked, "busy rows are not even confirmed")

	close(release)
	require.NoError(t, <-done)
	assert.False(t, s.IsBusy("id00"))
}

func TestMutation_RefetchRunsInsideBusyWindow(t *testing.T) {
	var s LinkStore
	var busyDuringRefetch bool
	api := &fakeAPI{}
	api.ListFn = func(context.Context) ([]models.ShortLink, error) {
		if s != nil {
			busyDuringRefetch = s.IsBusy("id00")
		}
		return makeLinks(1), nil
	}
	s = newLinks(t, api)
	require.NoError(t, s.FetchAll(context.Background()))

	yes, _ := confirmWith(true)
	_, err := s.Remove(context.Background(), "id00", yes)
	require.NoError(t, err)
	assert.True(t, busyDuringRefetch)
}

func TestErrors_AutoClear(t *testing.T) {
	api := &fakeAPI{ListFn: func(context.Context) ([]models.ShortLink, error) { return nil, client.ErrUnavailable }}
	s := NewLinkStore(api, 10, 20*time.Millisecond, nil)
	defer s.Close()

	require.Error(t, s.FetchAll(context.Background()))
	require.NotNil(t, s.Snapshot().Err)

	require.Eventually(t, func() bool { return s.Snapshot().Err == nil }, time.Second, 5*time.Millisecond)
}

func TestNewLinkStore_DefaultPageSize(t *testing.T) {
	s := NewLinkStore(&fakeAPI{}, 0, 0, nil)
	defer s.Close()
	assert.Equal(t, DefaultPageSize, s.Snapshot().PageSize)
}

func TestReset_ClearsUserState(t *testing.T) {
	api := &fakeAPI{ListFn: listing(makeLinks(12)), CreateFn: func(context.Context, models.LinkDraft) error { return client.ErrUnavailable }}
	s := newLinks(t, api)
	ctx := context.Background()

	require.NoError(t, s.FetchAll(ctx))
	s.SetPage(2)
	_, err := s.BeginEdit("id00")
	require.NoError(t, err)
	require.Error(t, s.Create(ctx, models.LinkDraft{FullURL: "https://example.com"}))

	s.Reset()

	snap := s.Snapshot()
	assert.Empty(t, snap.Items)
	assert.False(t, snap.Loaded)
	assert.Equal(t, 1, snap.Page)
	assert.Nil(t, snap.CreateDraft)
	assert.Nil(t, snap.EditDraft)
	assert.Nil(t, snap.Err)
	assert.Empty(t, s.PageItems())
}

func TestReset_DiscardsFetchInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &fakeAPI{ListFn: func(context.Context) ([]models.ShortLink, error) {
		close(started)
		<-release
		return makeLinks(2), nil
	}}
	s := newLinks(t, api)

	done := make(chan error, 1)
	go func() { done <- s.FetchAll(context.Background()) }()
	<-started
	s.Reset()
	close(release)
	require.NoError(t, <-done)

	snap := s.Snapshot()
	assert.Empty(t, snap.Items)
	assert.False(t, snap.Loaded)
}
