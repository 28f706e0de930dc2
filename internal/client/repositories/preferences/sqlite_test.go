package preferences

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE preferences (
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyTheme, "dark"))

	v, ok, err := r.Get(ctx, KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "dark", v)
}

func TestGet_Absent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, ok, err := r.Get(context.Background(), KeyLastValidRoute)
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyLastValidRoute, "/dashboard"))
	require.NoError(t, r.Set(ctx, KeyLastValidRoute, "/profile"))

	v, _, err := r.Get(ctx, KeyLastValidRoute)
	require.NoError(t, err)
	require.Equal(t, "/profile", v)
}

func TestSeed_KeepsExistingValues(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyTheme, "dark"))
	require.NoError(t, r.Seed(ctx, map[Key]string{
		KeyTheme:       "light",
		KeyShortDomain: "sa.died.pw",
	}))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[Key]string{
		KeyTheme:       "dark",
		KeyShortDomain: "sa.died.pw",
	}, m)
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyShortDomain, "sa.ix.tc"))
	require.NoError(t, r.Delete(ctx, KeyShortDomain))

	_, ok, err := r.Get(ctx, KeyShortDomain)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, r.Delete(ctx, KeyShortDomain))
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Close())

	_, _, err := r.Get(ctx, KeyTheme)
	require.ErrorContains(t, err, "failed to get preference[theme]")

	err = r.Set(ctx, KeyTheme, "dark")
	require.ErrorContains(t, err, "failed to set preference[theme]")

	err = r.Delete(ctx, KeyTheme)
	require.ErrorContains(t, err, "failed to delete preference[theme]")

	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list preferences")

	err = r.Seed(ctx, map[Key]string{KeyTheme: "light"})
	require.Error(t, err)
}

func TestSeed_RollsBackOnFailure(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	// Fail one of the inserts so the transaction has to roll back.
	_, err := db.Exec(`
CREATE TRIGGER reject_domain BEFORE INSERT ON preferences
WHEN NEW.key = 'short_domain'
BEGIN SELECT RAISE(ABORT, 'rejected'); END;`)
	require.NoError(t, err)

	err = r.Seed(ctx, map[Key]string{
		KeyTheme:       "light",
		KeyShortDomain: "sa.died.pw",
	})
	require.Error(t, err)

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m, "partial seed must be rolled back")
}
