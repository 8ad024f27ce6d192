package testing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
)

func (suite *StoreTestSuite) RunUserTests(test *testing.T) {
	test.Run("CreateAndGet", suite.TestUser_CreateAndGet)
	test.Run("GetByEmail", suite.TestUser_GetByEmail)
	test.Run("DuplicateEmail", suite.TestUser_DuplicateEmail)
	test.Run("GetMissing", suite.TestUser_GetMissing)
	test.Run("Count", suite.TestUser_Count)
}

// TestUser_CreateAndGet verifies the basic insert/lookup round trip.
func (suite *StoreTestSuite) TestUser_CreateAndGet(test *testing.T) {
	store := suite.NewStore(test)
	ctx := context.Background()

	created := createUser(test, store, "bob@dylan.com")

	got, err := store.GetUser(ctx, created.ID)
	require.NoError(test, err)
	require.Equal(test, created.ID, got.ID)
	require.Equal(test, "bob@dylan.com", got.Email)
	require.Equal(test, created.PasswordHash, got.PasswordHash,
		"password hash must survive the round trip")
}

// TestUser_GetByEmail verifies the email index resolves to the same record.
func (suite *StoreTestSuite) TestUser_GetByEmail(test *testing.T) {
	store := suite.NewStore(test)
	ctx := context.Background()

	created := createUser(test, store, "bob@dylan.com")
	createUser(test, store, "other@dylan.com")

	got, err := store.GetUserByEmail(ctx, "bob@dylan.com")
	require.NoError(test, err)
	require.Equal(test, created.ID, got.ID)

	_, err = store.GetUserByEmail(ctx, "nobody@dylan.com")
	requireNotFound(test, err)
}

// TestUser_DuplicateEmail verifies email uniqueness is enforced on insert.
func (suite *StoreTestSuite) TestUser_DuplicateEmail(test *testing.T) {
	store := suite.NewStore(test)
	ctx := context.Background()

	createUser(test, store, "bob@dylan.com")

	_, err := store.CreateUser(ctx, "bob@dylan.com", "$2b$10$otherhash")
	require.Error(test, err)
	require.True(test, metadata.IsAlreadyExists(err), "expected already-exists, got: %v", err)

	// The original account is untouched
	count, err := store.CountUsers(ctx)
	require.NoError(test, err)
	require.Equal(test, uint64(1), count)
}

// TestUser_GetMissing verifies lookups of absent users fail with not-found.
func (suite *StoreTestSuite) TestUser_GetMissing(test *testing.T) {
	store := suite.NewStore(test)

	_, err := store.GetUser(context.Background(), uuid.New())
	requireNotFound(test, err)
}

// TestUser_Count verifies the account counter.
func (suite *StoreTestSuite) TestUser_Count(test *testing.T) {
	store := suite.NewStore(test)
	ctx := context.Background()

	count, err := store.CountUsers(ctx)
	require.NoError(test, err)
	require.Equal(test, uint64(0), count)

	createUser(test, store, "a@x.com")
	createUser(test, store, "b@x.com")
	createUser(test, store, "c@x.com")

	count, err = store.CountUsers(ctx)
	require.NoError(test, err)
	require.Equal(test, uint64(3), count)
}
