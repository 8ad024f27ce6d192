// Package auth resolves session tokens to authenticated users and owns the
// token lifecycle (login, logout).
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
	"github.com/chineduCoded/alx-files-manager/pkg/store/session"
)

// ErrUnauthorized covers every authentication failure: bad credentials,
// missing/unknown/expired token, or a session whose user no longer exists.
// The cases are deliberately indistinguishable so responses never reveal
// whether an account or session exists.
var ErrUnauthorized = errors.New("unauthorized")

// DefaultSessionTTL is how long a login token stays valid.
const DefaultSessionTTL = 24 * time.Hour

// Guard authenticates requests. Every protected operation resolves its
// token through the guard before touching any other component.
type Guard struct {
	sessions session.SessionStore
	meta     metadata.MetadataStore
	ttl      time.Duration
}

// NewGuard creates a guard over the given stores. A non-positive ttl falls
// back to DefaultSessionTTL.
func NewGuard(sessions session.SessionStore, meta metadata.MetadataStore, ttl time.Duration) *Guard {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Guard{sessions: sessions, meta: meta, ttl: ttl}
}

// Login verifies the credentials and, on success, issues a fresh session
// token valid for the configured TTL.
//
// Unknown email and wrong password both return ErrUnauthorized: the caller
// must not be able to tell them apart.
func (g *Guard) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrUnauthorized
	}

	user, err := g.meta.GetUserByEmail(ctx, email)
	if err != nil {
		if metadata.IsNotFound(err) {
			return "", ErrUnauthorized
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrUnauthorized
	}

	token := uuid.NewString()
	if err := g.sessions.Set(ctx, token, user.ID, g.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Logout destroys the session for the token. A token without a live session
// fails with ErrUnauthorized, so a second logout on the same token fails
// exactly like an invalid one.
func (g *Guard) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrUnauthorized
	}

	err := g.sessions.Delete(ctx, token)
	if errors.Is(err, session.ErrSessionNotFound) {
		return ErrUnauthorized
	}
	return err
}

// Resolve maps a token to its authenticated user.
//
// A session whose user record has vanished is stale and resolves to
// ErrUnauthorized like any other invalid token. Resolve has no side
// effects: it neither refreshes nor consumes the session.
func (g *Guard) Resolve(ctx context.Context, token string) (*metadata.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	userID, err := g.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	user, err := g.meta.GetUser(ctx, userID)
	if err != nil {
		if metadata.IsNotFound(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}
