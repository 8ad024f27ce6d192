package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound indicates the token has no live session: it was never
// issued, was deleted by logout, or has expired. Callers cannot and should
// not distinguish the three cases.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore maps opaque session tokens to user ids with a time-to-live.
//
// Tokens are unguessable strings generated at login; the store treats them
// as opaque keys. Expiry is enforced by the backend, not by callers: a Get
// after the TTL elapses behaves exactly like a Get for a token that never
// existed.
//
// Thread Safety:
// Implementations must be safe for concurrent use by multiple goroutines.
type SessionStore interface {
	// Set associates token with userID for the given TTL, replacing any
	// previous association for the same token.
	Set(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error

	// Get returns the user id associated with token.
	//
	// Returns ErrSessionNotFound for unknown or expired tokens.
	Get(ctx context.Context, token string) (uuid.UUID, error)

	// Delete removes the session for token.
	//
	// Returns ErrSessionNotFound if there is no live session, so a second
	// logout with the same token fails just like an invalid one.
	Delete(ctx context.Context, token string) error

	// HealthCheck verifies the store is reachable and operational.
	HealthCheck(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}
