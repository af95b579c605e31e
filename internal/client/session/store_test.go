package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dspavlov/docshelf/internal/client/api"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dsn := fmt.Sprintf("file:session_%s?mode=memory&cache=shared", t.Name())
	store, db, err := OpenStore(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded, "empty store yields no session")

	saved := Session{
		Token:     "tok-1",
		User:      api.User{ID: 7, Name: "Alice", Email: "alice@example.com", Role: "admin"},
		SavedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		ExpiresAt: time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, saved))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved, *loaded)
}

func TestStoreSaveReplacesPrevious(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := Session{Token: "tok-1", User: api.User{ID: 1}, SavedAt: time.Unix(100, 0).UTC(), ExpiresAt: time.Unix(200, 0).UTC()}
	second := Session{Token: "tok-2", User: api.User{ID: 2}, SavedAt: time.Unix(300, 0).UTC(), ExpiresAt: time.Unix(400, 0).UTC()}
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "tok-2", loaded.Token)
	assert.Equal(t, int64(2), loaded.User.ID)
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Clear(ctx), "clearing an empty store is fine")

	s := Session{Token: "tok", SavedAt: time.Unix(100, 0).UTC(), ExpiresAt: time.Unix(200, 0).UTC()}
	require.NoError(t, store.Save(ctx, s))
	require.NoError(t, store.Clear(ctx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
