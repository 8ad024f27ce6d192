package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chineduCoded/alx-files-manager/pkg/store/content"
)

func TestMemoryContentStore_WriteRead(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "locator-1", []byte("payload")))

	got, err := store.Read(ctx, "locator-1")
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), got)
}

func TestMemoryContentStore_ReadMissing(t *testing.T) {
	store := New()

	_, err := store.Read(context.Background(), "missing")
	require.True(t, errors.Is(err, content.ErrContentNotFound))
}

// TestMemoryContentStore_Isolation verifies the store copies buffers on
// both write and read, so callers cannot mutate stored content.
func TestMemoryContentStore_Isolation(t *testing.T) {
	store := New()
	ctx := context.Background()

	data := []byte("original")
	require.NoError(t, store.Write(ctx, "locator-1", data))
	data[0] = 'X'

	got, err := store.Read(ctx, "locator-1")
	require.NoError(t, err)
	require.Equal(t, []byte("original"), got)

	got[0] = 'Y'
	again, err := store.Read(ctx, "locator-1")
	require.NoError(t, err)
	require.Equal(t, []byte("original"), again)
}

func TestMemoryContentStore_Exists(t *testing.T) {
	store := New()
	ctx := context.Background()

	ok, err := store.Exists(ctx, "locator-1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Write(ctx, "locator-1", []byte("x")))

	ok, err = store.Exists(ctx, "locator-1")
	require.NoError(t, err)
	require.True(t, ok)
}
