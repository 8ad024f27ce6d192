package testing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
)

func (suite *StoreTestSuite) RunFileTests(test *testing.T) {
	test.Run("CreateAndGet", suite.TestFile_CreateAndGet)
	test.Run("GetMissing", suite.TestFile_GetMissing)
	test.Run("SetPublic", suite.TestFile_SetPublic)
	test.Run("SetPublicForeignOwner", suite.TestFile_SetPublicForeignOwner)
	test.Run("SetPublicIdempotent", suite.TestFile_SetPublicIdempotent)
	test.Run("Count", suite.TestFile_Count)
}

// TestFile_CreateAndGet verifies the record round trip including the fields
// that never cross the wire (locator, parent reference).
func (suite *StoreTestSuite) TestFile_CreateAndGet(test *testing.T) {
	store := suite.NewStore(test)
	ctx := context.Background()

	owner := createUser(test, store, "bob@dylan.com")
	folder := createFolder(test, store, owner.ID, "documents")
	created := createFile(test, store, owner.ID, "report.pdf", metadata.FolderParent(folder.ID))

	got, err := store.GetFile(ctx, created.ID)
	require.NoError(test, err)
	require.Equal(test, created.ID, got.ID)
	require.Equal(test, owner.ID, got.UserID)
	require.Equal(test, "report.pdf", got.Name)
	require.Equal(test, metadata.FileTypeFile, got.Type)
	require.False(test, got.Parent.IsRoot())
	require.Equal(test, folder.ID, got.Parent.FolderID())
	require.Equal(test, created.Locator, got.Locator, "locator must survive the round trip")
	require.False(test, got.IsPublic)
}

// TestFile_GetMissing verifies lookups of absent records fail with not-found.
func (suite *StoreTestSuite) TestFile_GetMissing(test *testing.T) {
	store := suite.NewStore(test)

	_, err := store.GetFile(context.Background(), uuid.New())
	requireNotFound(test, err)
}

// TestFile_SetPublic verifies the visibility flag flips both ways and the
// returned record reflects the update.
func (suite *StoreTestSuite) TestFile_SetPublic(test *testing.T) {
	store := suite.NewStore(test)
	ctx := context.Background()

	owner := createUser(test, store, "bob@dylan.com")
	file := createFile(test, store, owner.ID, "image.png", metadata.RootParent())

	updated, err := store.SetFilePublic(ctx, owner.ID, file.ID, true)
	require.NoError(test, err)
	require.True(test, updated.IsPublic)

	got, err := store.GetFile(ctx, file.ID)
	require.NoError(test, err)
	require.True(test, got.IsPublic, "flag must persist")

	updated, err = store.SetFilePublic(ctx, owner.ID, file.ID, false)
	require.NoError(test, err)
	require.False(test, updated.IsPublic)
}

// TestFile_SetPublicForeignOwner verifies that another user's record reads
// as absent, not as forbidden.
func (suite *StoreTestSuite) TestFile_SetPublicForeignOwner(test *testing.T) {
	store := suite.NewStore(test)
	ctx := context.Background()

	owner := createUser(test, store, "bob@dylan.com")
	intruder := createUser(test, store, "eve@dylan.com")
	file := createFile(test, store, owner.ID, "secret.txt", metadata.RootParent())

	_, err := store.SetFilePublic(ctx, intruder.ID, file.ID, true)
	requireNotFound(test, err)

	// The record is unchanged
	got, err := store.GetFile(ctx, file.ID)
	require.NoError(test, err)
	require.False(test, got.IsPublic)
}

// TestFile_SetPublicIdempotent verifies setting the current value is a
// successful no-op.
func (suite *StoreTestSuite) TestFile_SetPublicIdempotent(test *testing.T) {
	store := suite.NewStore(test)
	ctx := context.Background()

	owner := createUser(test, store, "bob@dylan.com")
	file := createFile(test, store, owner.ID, "notes.txt", metadata.RootParent())

	for i := 0; i < 2; i++ {
		updated, err := store.SetFilePublic(ctx, owner.ID, file.ID, true)
		require.NoError(test, err)
		require.True(test, updated.IsPublic)
	}
}

// TestFile_Count verifies the record counter spans all users.
func (suite *StoreTestSuite) TestFile_Count(test *testing.T) {
	store := suite.NewStore(test)
	ctx := context.Background()

	a := createUser(test, store, "a@x.com")
	b := createUser(test, store, "b@x.com")

	createFiles(test, store, a.ID, metadata.RootParent(), 2)
	createFiles(test, store, b.ID, metadata.RootParent(), 3)

	count, err := store.CountFiles(ctx)
	require.NoError(test, err)
	require.Equal(test, uint64(5), count)
}
