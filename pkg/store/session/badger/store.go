package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/chineduCoded/alx-files-manager/internal/logger"
	"github.com/chineduCoded/alx-files-manager/pkg/store/session"
)

// prefixSession is the key namespace for session entries. Keys are
// "auth:<token>"; values are the raw 16-byte user UUID.
const prefixSession = "auth:"

// BadgerSessionStore implements session.SessionStore using BadgerDB.
//
// Expiry is delegated to Badger entry TTLs: Set writes the entry with
// WithTTL, after which the database itself reports the key as not found
// once the TTL elapses. No janitor goroutine is needed; expired entries
// are reclaimed by Badger's value-log garbage collection.
//
// The session database is kept separate from the metadata database so the
// two can be sized, placed, and wiped independently - losing sessions only
// logs everyone out, losing metadata loses data.
type BadgerSessionStore struct {
	db *badger.DB
}

// Config holds BadgerDB-specific session store options.
type Config struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory runs the database without persistence. Used by tests.
	InMemory bool
}

// New opens (creating if necessary) a BadgerDB-backed session store.
func New(ctx context.Context, cfg Config) (*BadgerSessionStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger session database: %w", err)
	}

	logger.Debug("Badger session store opened at %q (in-memory: %v)", cfg.Path, cfg.InMemory)

	return &BadgerSessionStore{db: db}, nil
}

func key(token string) []byte {
	return []byte(prefixSession + token)
}

// Set writes the token entry with the given TTL.
func (s *BadgerSessionStore) Set(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key(token), userID[:]).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Get resolves the token to a user id. Expired entries are reported as
// not found by Badger itself.
func (s *BadgerSessionStore) Get(ctx context.Context, token string) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}

	var userID uuid.UUID
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(token))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return session.ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get session: %w", err)
		}

		return item.Value(func(val []byte) error {
			userID, err = uuid.FromBytes(val)
			return err
		})
	})
	if err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

// Delete removes the token entry, failing if it is not live.
func (s *BadgerSessionStore) Delete(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key(token))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return session.ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get session: %w", err)
		}
		return txn.Delete(key(token))
	})
}

// HealthCheck verifies the database is open and readable.
func (s *BadgerSessionStore) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return fmt.Errorf("badger session database is closed")
	}
	return s.db.View(func(txn *badger.Txn) error {
		return nil
	})
}

// Close closes the database.
func (s *BadgerSessionStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close badger session database: %w", err)
	}
	return nil
}
