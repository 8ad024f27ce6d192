package testing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
)

func (suite *StoreTestSuite) RunListingTests(test *testing.T) {
	test.Run("ReverseInsertionOrder", suite.TestListing_ReverseInsertionOrder)
	test.Run("Pagination", suite.TestListing_Pagination)
	test.Run("ParentScoping", suite.TestListing_ParentScoping)
	test.Run("OwnerScoping", suite.TestListing_OwnerScoping)
	test.Run("EmptyPage", suite.TestListing_EmptyPage)
}

// TestListing_ReverseInsertionOrder verifies the newest record comes first.
func (suite *StoreTestSuite) TestListing_ReverseInsertionOrder(test *testing.T) {
	store := suite.NewStore(test)
	ctx := context.Background()

	owner := createUser(test, store, "bob@dylan.com")
	inserted := createFiles(test, store, owner.ID, metadata.RootParent(), 5)

	list, err := store.ListFiles(ctx, owner.ID, metadata.RootParent(), 0, 20)
	require.NoError(test, err)
	require.Len(test, list, 5)

	for i, file := range list {
		expected := inserted[len(inserted)-1-i]
		require.Equal(test, expected.ID, file.ID,
			"position %d should hold the %d-th newest record", i, i)
	}
}

// TestListing_Pagination verifies page slicing: page p of size n covers
// records [n*p, n*p+n) of the ordered result.
func (suite *StoreTestSuite) TestListing_Pagination(test *testing.T) {
	store := suite.NewStore(test)
	ctx := context.Background()

	owner := createUser(test, store, "bob@dylan.com")
	inserted := createFiles(test, store, owner.ID, metadata.RootParent(), 25)

	page0, err := store.ListFiles(ctx, owner.ID, metadata.RootParent(), 0, 10)
	require.NoError(test, err)
	require.Len(test, page0, 10)
	require.Equal(test, inserted[24].ID, page0[0].ID, "page 0 starts at the newest record")

	page1, err := store.ListFiles(ctx, owner.ID, metadata.RootParent(), 1, 10)
	require.NoError(test, err)
	require.Len(test, page1, 10)
	require.Equal(test, inserted[14].ID, page1[0].ID)

	page2, err := store.ListFiles(ctx, owner.ID, metadata.RootParent(), 2, 10)
	require.NoError(test, err)
	require.Len(test, page2, 5, "last page holds the remainder")
	require.Equal(test, inserted[0].ID, page2[4].ID, "oldest record comes last")
}

// TestListing_ParentScoping verifies the parent match is exact: the root
// sentinel never matches folder children and vice versa.
func (suite *StoreTestSuite) TestListing_ParentScoping(test *testing.T) {
	store := suite.NewStore(test)
	ctx := context.Background()

	owner := createUser(test, store, "bob@dylan.com")
	folder := createFolder(test, store, owner.ID, "photos")

	createFiles(test, store, owner.ID, metadata.RootParent(), 2)
	inFolder := createFiles(test, store, owner.ID, metadata.FolderParent(folder.ID), 3)

	list, err := store.ListFiles(ctx, owner.ID, metadata.FolderParent(folder.ID), 0, 20)
	require.NoError(test, err)
	require.Len(test, list, 3)
	for _, file := range list {
		require.Equal(test, folder.ID, file.Parent.FolderID())
	}

	// Root listing sees the two root files plus the folder itself
	rootList, err := store.ListFiles(ctx, owner.ID, metadata.RootParent(), 0, 20)
	require.NoError(test, err)
	require.Len(test, rootList, 3)
	for _, file := range rootList {
		require.True(test, file.Parent.IsRoot())
		for _, nested := range inFolder {
			require.NotEqual(test, nested.ID, file.ID)
		}
	}
}

// TestListing_OwnerScoping verifies users never see each other's records.
func (suite *StoreTestSuite) TestListing_OwnerScoping(test *testing.T) {
	store := suite.NewStore(test)
	ctx := context.Background()

	a := createUser(test, store, "a@x.com")
	b := createUser(test, store, "b@x.com")

	createFiles(test, store, a.ID, metadata.RootParent(), 4)
	createFiles(test, store, b.ID, metadata.RootParent(), 1)

	list, err := store.ListFiles(ctx, b.ID, metadata.RootParent(), 0, 20)
	require.NoError(test, err)
	require.Len(test, list, 1)
	require.Equal(test, b.ID, list[0].UserID)
}

// TestListing_EmptyPage verifies a page past the end is empty, not an error.
func (suite *StoreTestSuite) TestListing_EmptyPage(test *testing.T) {
	store := suite.NewStore(test)
	ctx := context.Background()

	owner := createUser(test, store, "bob@dylan.com")
	createFiles(test, store, owner.ID, metadata.RootParent(), 3)

	list, err := store.ListFiles(ctx, owner.ID, metadata.RootParent(), 5, 20)
	require.NoError(test, err)
	require.Empty(test, list)
}
