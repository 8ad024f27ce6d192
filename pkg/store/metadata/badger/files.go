package badger

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
)

// CreateFile inserts a new file record, assigning a fresh id and the next
// insertion sequence number, and adds it to the listing index for its
// (owner, parent) pair.
func (s *BadgerMetadataStore) CreateFile(ctx context.Context, file *metadata.File) (*metadata.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if file == nil {
		return nil, &metadata.StoreError{
			Code:    metadata.ErrInvalidArgument,
			Message: "file record must not be nil",
		}
	}

	seq, err := s.seq.Next()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate sequence number: %w", err)
	}

	stored := *file
	stored.ID = uuid.New()
	stored.Seq = seq

	err = s.db.Update(func(txn *badger.Txn) error {
		encoded, err := encodeFile(&stored)
		if err != nil {
			return err
		}
		if err := txn.Set(keyFile(stored.ID), encoded); err != nil {
			return fmt.Errorf("failed to write file record: %w", err)
		}
		listKey := keyListing(stored.UserID, stored.Parent, stored.Seq)
		if err := txn.Set(listKey, encodeID(stored.ID)); err != nil {
			return fmt.Errorf("failed to write listing index: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// GetFile looks up a file record by id.
func (s *BadgerMetadataStore) GetFile(ctx context.Context, id uuid.UUID) (*metadata.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var file *metadata.File
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		file, err = getFileTxn(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return file, nil
}

// ListFiles returns one page of the (userID, parent) listing, newest first.
//
// The listing index keys embed the complemented sequence number, so a plain
// forward scan over the prefix visits records in reverse-insertion order.
// Paging skips page*pageSize index entries and resolves the next pageSize
// records inside the same read transaction.
func (s *BadgerMetadataStore) ListFiles(ctx context.Context, userID uuid.UUID, parent metadata.ParentRef, page, pageSize int) ([]*metadata.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if page < 0 || pageSize <= 0 {
		return nil, &metadata.StoreError{
			Code:    metadata.ErrInvalidArgument,
			Message: "invalid page parameters",
		}
	}

	files := make([]*metadata.File, 0, pageSize)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = keyListingPrefix(userID, parent)

		it := txn.NewIterator(opts)
		defer it.Close()

		skip := page * pageSize
		for it.Rewind(); it.Valid() && len(files) < pageSize; it.Next() {
			if skip > 0 {
				skip--
				continue
			}

			var id uuid.UUID
			err := it.Item().Value(func(val []byte) error {
				var err error
				id, err = decodeID(val)
				return err
			})
			if err != nil {
				return err
			}

			file, err := getFileTxn(txn, id)
			if err != nil {
				return err
			}
			files = append(files, file)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// SetFilePublic atomically flips the isPublic flag of an owned file.
//
// The read, ownership check, and write happen in one Update transaction,
// so a concurrent reader sees either the old or the new record.
func (s *BadgerMetadataStore) SetFilePublic(ctx context.Context, userID, fileID uuid.UUID, public bool) (*metadata.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var updated *metadata.File
	err := s.db.Update(func(txn *badger.Txn) error {
		file, err := getFileTxn(txn, fileID)
		if err != nil {
			return err
		}

		// Ownership failure is reported as not-found on purpose: a caller
		// must not be able to probe for the existence of other users' files.
		if file.UserID != userID {
			return &metadata.StoreError{
				Code:    metadata.ErrNotFound,
				Message: "file not found",
			}
		}

		file.IsPublic = public
		encoded, err := encodeFile(file)
		if err != nil {
			return err
		}
		if err := txn.Set(keyFile(file.ID), encoded); err != nil {
			return fmt.Errorf("failed to write file record: %w", err)
		}

		updated = file
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// getFileTxn fetches and decodes a file record inside an open transaction.
func getFileTxn(txn *badger.Txn, id uuid.UUID) (*metadata.File, error) {
	item, err := txn.Get(keyFile(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, &metadata.StoreError{
			Code:    metadata.ErrNotFound,
			Message: "file not found",
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file record: %w", err)
	}

	var file *metadata.File
	err = item.Value(func(val []byte) error {
		file, err = decodeFile(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return file, nil
}
