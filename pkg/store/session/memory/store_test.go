package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/chineduCoded/alx-files-manager/pkg/store/session"
)

func TestMemorySessionStore_SetGet(t *testing.T) {
	store := New()
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.Set(ctx, "token-1", userID, time.Hour))

	got, err := store.Get(ctx, "token-1")
	require.NoError(t, err)
	require.Equal(t, userID, got)
}

func TestMemorySessionStore_GetMissing(t *testing.T) {
	store := New()

	_, err := store.Get(context.Background(), "nope")
	require.True(t, errors.Is(err, session.ErrSessionNotFound))
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	store := New()
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	require.NoError(t, store.Set(ctx, "token-1", uuid.New(), 24*time.Hour))

	// Just before the deadline the session is still valid
	current = current.Add(24*time.Hour - time.Second)
	_, err := store.Get(ctx, "token-1")
	require.NoError(t, err)

	// Past the deadline it reads as absent
	current = current.Add(2 * time.Second)
	_, err = store.Get(ctx, "token-1")
	require.True(t, errors.Is(err, session.ErrSessionNotFound))
}

func TestMemorySessionStore_DeleteTwice(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "token-1", uuid.New(), time.Hour))

	require.NoError(t, store.Delete(ctx, "token-1"))

	// A second delete fails: the token no longer identifies a session
	err := store.Delete(ctx, "token-1")
	require.True(t, errors.Is(err, session.ErrSessionNotFound))
}

func TestMemorySessionStore_SetOverwrites(t *testing.T) {
	store := New()
	ctx := context.Background()
	second := uuid.New()

	require.NoError(t, store.Set(ctx, "token-1", uuid.New(), time.Hour))
	require.NoError(t, store.Set(ctx, "token-1", second, time.Hour))

	got, err := store.Get(ctx, "token-1")
	require.NoError(t, err)
	require.Equal(t, second, got)
}
