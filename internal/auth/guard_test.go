package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
	metadataMemory "github.com/chineduCoded/alx-files-manager/pkg/store/metadata/memory"
	sessionMemory "github.com/chineduCoded/alx-files-manager/pkg/store/session/memory"
)

func newTestGuard(t *testing.T) (*Guard, metadata.MetadataStore) {
	t.Helper()

	meta := metadataMemory.New()
	sessions := sessionMemory.New()
	return NewGuard(sessions, meta, time.Hour), meta
}

func registerUser(t *testing.T, meta metadata.MetadataStore, email, password string) *metadata.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user, err := meta.CreateUser(context.Background(), email, string(hash))
	require.NoError(t, err)
	return user
}

func TestGuard_LoginAndResolve(t *testing.T) {
	guard, meta := newTestGuard(t)
	ctx := context.Background()
	user := registerUser(t, meta, "bob@dylan.com", "toto1234")

	token, err := guard.Login(ctx, "bob@dylan.com", "toto1234")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := guard.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)
	require.Equal(t, "bob@dylan.com", resolved.Email)
}

func TestGuard_LoginWrongPassword(t *testing.T) {
	guard, meta := newTestGuard(t)
	registerUser(t, meta, "bob@dylan.com", "toto1234")

	_, err := guard.Login(context.Background(), "bob@dylan.com", "wrong")
	require.True(t, errors.Is(err, ErrUnauthorized))
}

func TestGuard_LoginUnknownEmail(t *testing.T) {
	guard, _ := newTestGuard(t)

	// An unknown email and a wrong password must be indistinguishable
	_, err := guard.Login(context.Background(), "nobody@dylan.com", "toto1234")
	require.True(t, errors.Is(err, ErrUnauthorized))
}

func TestGuard_LoginEmptyCredentials(t *testing.T) {
	guard, meta := newTestGuard(t)
	registerUser(t, meta, "bob@dylan.com", "toto1234")

	_, err := guard.Login(context.Background(), "", "toto1234")
	require.True(t, errors.Is(err, ErrUnauthorized))

	_, err = guard.Login(context.Background(), "bob@dylan.com", "")
	require.True(t, errors.Is(err, ErrUnauthorized))
}

func TestGuard_TokensAreUnique(t *testing.T) {
	guard, meta := newTestGuard(t)
	ctx := context.Background()
	registerUser(t, meta, "bob@dylan.com", "toto1234")

	first, err := guard.Login(ctx, "bob@dylan.com", "toto1234")
	require.NoError(t, err)
	second, err := guard.Login(ctx, "bob@dylan.com", "toto1234")
	require.NoError(t, err)

	require.NotEqual(t, first, second, "each login mints a fresh token")

	// Both sessions are independently valid
	_, err = guard.Resolve(ctx, first)
	require.NoError(t, err)
	_, err = guard.Resolve(ctx, second)
	require.NoError(t, err)
}

func TestGuard_LogoutInvalidatesToken(t *testing.T) {
	guard, meta := newTestGuard(t)
	ctx := context.Background()
	registerUser(t, meta, "bob@dylan.com", "toto1234")

	token, err := guard.Login(ctx, "bob@dylan.com", "toto1234")
	require.NoError(t, err)

	require.NoError(t, guard.Logout(ctx, token))

	_, err = guard.Resolve(ctx, token)
	require.True(t, errors.Is(err, ErrUnauthorized))

	// A second logout fails: the token is gone
	err = guard.Logout(ctx, token)
	require.True(t, errors.Is(err, ErrUnauthorized))
}

func TestGuard_ResolveBadToken(t *testing.T) {
	guard, _ := newTestGuard(t)

	_, err := guard.Resolve(context.Background(), "not-a-session")
	require.True(t, errors.Is(err, ErrUnauthorized))

	_, err = guard.Resolve(context.Background(), "")
	require.True(t, errors.Is(err, ErrUnauthorized))
}
