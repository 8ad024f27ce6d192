package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chineduCoded/alx-files-manager/pkg/store/session"
)

// MemorySessionStore implements session.SessionStore with an in-process map.
//
// Expiry is checked lazily: an expired entry is treated as absent on Get and
// Delete and removed when encountered. There is no background sweeper; the
// store targets tests and local development where leaked entries from tokens
// nobody touches again are irrelevant.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]entry

	// now is the clock, swappable by tests to exercise expiry.
	now func() time.Time
}

type entry struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// New creates an empty in-memory session store.
func New() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]entry),
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Set(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = entry{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, token string) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[token]
	if !ok {
		return uuid.Nil, session.ErrSessionNotFound
	}
	if s.now().After(e.expiresAt) {
		delete(s.sessions, token)
		return uuid.Nil, session.ErrSessionNotFound
	}
	return e.userID, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[token]
	if !ok {
		return session.ErrSessionNotFound
	}
	delete(s.sessions, token)
	if s.now().After(e.expiresAt) {
		// Already expired: deleting it is indistinguishable from it
		// never having existed.
		return session.ErrSessionNotFound
	}
	return nil
}

func (s *MemorySessionStore) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemorySessionStore) Close() error {
	return nil
}
