package testing

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
)

// createUser inserts a user and fails the test on error.
func createUser(t *testing.T, store metadata.MetadataStore, email string) *metadata.User {
	t.Helper()

	user, err := store.CreateUser(context.Background(), email, "$2b$10$hash")
	require.NoError(t, err, "CreateUser should succeed")
	require.NotEqual(t, uuid.Nil, user.ID, "CreateUser should assign an id")

	return user
}

// createFile inserts a file record owned by userID under parent.
func createFile(t *testing.T, store metadata.MetadataStore, userID uuid.UUID, name string, parent metadata.ParentRef) *metadata.File {
	t.Helper()

	file, err := store.CreateFile(context.Background(), &metadata.File{
		UserID:  userID,
		Name:    name,
		Type:    metadata.FileTypeFile,
		Parent:  parent,
		Locator: uuid.NewString(),
	})
	require.NoError(t, err, "CreateFile should succeed")
	require.NotEqual(t, uuid.Nil, file.ID, "CreateFile should assign an id")

	return file
}

// createFolder inserts a folder record owned by userID at the root.
func createFolder(t *testing.T, store metadata.MetadataStore, userID uuid.UUID, name string) *metadata.File {
	t.Helper()

	folder, err := store.CreateFile(context.Background(), &metadata.File{
		UserID: userID,
		Name:   name,
		Type:   metadata.FileTypeFolder,
		Parent: metadata.RootParent(),
	})
	require.NoError(t, err, "CreateFile should succeed for folders")

	return folder
}

// createFiles inserts n sequentially named files and returns them in
// insertion order.
func createFiles(t *testing.T, store metadata.MetadataStore, userID uuid.UUID, parent metadata.ParentRef, n int) []*metadata.File {
	t.Helper()

	out := make([]*metadata.File, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, createFile(t, store, userID, fmt.Sprintf("file-%03d", i), parent))
	}
	return out
}

// requireNotFound asserts that err is a StoreError with the not-found code.
func requireNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, metadata.IsNotFound(err), "expected not-found, got: %v", err)
}
