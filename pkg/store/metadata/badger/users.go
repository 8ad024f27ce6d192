package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
)

// CreateUser inserts a new user record, enforcing email uniqueness.
//
// The uniqueness check and the two writes (record + email index) happen in a
// single Update transaction, so two racing registrations for the same email
// cannot both succeed: Badger's conflict detection aborts one of them.
func (s *BadgerMetadataStore) CreateUser(ctx context.Context, email, passwordHash string) (*metadata.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if email == "" {
		return nil, &metadata.StoreError{
			Code:    metadata.ErrInvalidArgument,
			Message: "email must not be empty",
		}
	}

	user := &metadata.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(keyUserEmail(email))
		if err == nil {
			return &metadata.StoreError{
				Code:    metadata.ErrAlreadyExists,
				Message: "user already exists",
			}
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check email index: %w", err)
		}

		encoded, err := encodeUser(user)
		if err != nil {
			return err
		}
		if err := txn.Set(keyUser(user.ID), encoded); err != nil {
			return fmt.Errorf("failed to write user record: %w", err)
		}
		if err := txn.Set(keyUserEmail(email), encodeID(user.ID)); err != nil {
			return fmt.Errorf("failed to write email index: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser looks up a user record by id.
func (s *BadgerMetadataStore) GetUser(ctx context.Context, id uuid.UUID) (*metadata.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user *metadata.User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyUser(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return &metadata.StoreError{
				Code:    metadata.ErrNotFound,
				Message: "user not found",
			}
		}
		if err != nil {
			return fmt.Errorf("failed to get user record: %w", err)
		}

		return item.Value(func(val []byte) error {
			user, err = decodeUser(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail looks up a user record through the email index.
func (s *BadgerMetadataStore) GetUserByEmail(ctx context.Context, email string) (*metadata.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user *metadata.User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyUserEmail(email))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return &metadata.StoreError{
				Code:    metadata.ErrNotFound,
				Message: "user not found",
			}
		}
		if err != nil {
			return fmt.Errorf("failed to get email index: %w", err)
		}

		var id uuid.UUID
		err = item.Value(func(val []byte) error {
			id, err = decodeID(val)
			return err
		})
		if err != nil {
			return err
		}

		recordItem, err := txn.Get(keyUser(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			// Index points at a missing record; treat as absent.
			return &metadata.StoreError{
				Code:    metadata.ErrNotFound,
				Message: "user not found",
			}
		}
		if err != nil {
			return fmt.Errorf("failed to get user record: %w", err)
		}

		return recordItem.Value(func(val []byte) error {
			user, err = decodeUser(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
