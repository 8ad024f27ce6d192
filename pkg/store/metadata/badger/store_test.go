package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
	metadatatesting "github.com/chineduCoded/alx-files-manager/pkg/store/metadata/testing"
)

// TestBadgerMetadataStore runs the complete MetadataStore test suite
// against the BadgerDB implementation, using in-memory databases so each
// test gets an isolated store without filesystem churn.
func TestBadgerMetadataStore(t *testing.T) {
	suite := &metadatatesting.StoreTestSuite{
		NewStore: func(t *testing.T) metadata.MetadataStore {
			store, err := New(context.Background(), Config{InMemory: true})
			require.NoError(t, err)
			t.Cleanup(func() {
				if err := store.Close(); err != nil {
					t.Errorf("Failed to close store: %v", err)
				}
			})
			return store
		},
	}

	suite.Run(t)
}

// TestBadgerMetadataStore_Persistence verifies records and listing order
// survive a close/reopen cycle on disk.
func TestBadgerMetadataStore_Persistence(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := New(ctx, Config{Path: dir})
	require.NoError(t, err)

	user, err := store.CreateUser(ctx, "bob@dylan.com", "$2b$10$hash")
	require.NoError(t, err)

	var fileIDs []string
	for _, name := range []string{"first.txt", "second.txt", "third.txt"} {
		file, err := store.CreateFile(ctx, &metadata.File{
			UserID: user.ID,
			Name:   name,
			Type:   metadata.FileTypeFile,
			Parent: metadata.RootParent(),
		})
		require.NoError(t, err)
		fileIDs = append(fileIDs, file.ID.String())
	}

	require.NoError(t, store.Close())

	// Reopen and verify
	store, err = New(ctx, Config{Path: dir})
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	got, err := store.GetUserByEmail(ctx, "bob@dylan.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	list, err := store.ListFiles(ctx, user.ID, metadata.RootParent(), 0, 20)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "third.txt", list[0].Name, "ordering must survive reopen")
	require.Equal(t, "first.txt", list[2].Name)

	// The sequence lease must also survive: new records keep sorting first
	file, err := store.CreateFile(ctx, &metadata.File{
		UserID: user.ID,
		Name:   "fourth.txt",
		Type:   metadata.FileTypeFile,
		Parent: metadata.RootParent(),
	})
	require.NoError(t, err)
	require.NotContains(t, fileIDs, file.ID.String())

	list, err = store.ListFiles(ctx, user.ID, metadata.RootParent(), 0, 20)
	require.NoError(t, err)
	require.Equal(t, "fourth.txt", list[0].Name)
}
