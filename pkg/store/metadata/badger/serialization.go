package badger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
)

// Serialization Strategy
// ======================
//
// BadgerDB stores raw bytes, so records are serialized before storage.
// Records (users, files) are JSON-encoded: human-readable, easy to debug,
// and flexible about schema evolution. Index values (the id a key points at)
// are stored as raw 16-byte UUIDs: compact and fixed-size.
//
// The public metadata.File type hides its content locator and sequence number
// from JSON on purpose (they must never reach an API response), so the store
// persists its own document shape that includes them.

// userDoc is the stored representation of a user record.
type userDoc struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// fileDoc is the stored representation of a file record, including the
// store-internal fields excluded from the public JSON form.
type fileDoc struct {
	ID       uuid.UUID          `json:"id"`
	UserID   uuid.UUID          `json:"user_id"`
	Name     string             `json:"name"`
	Type     metadata.FileType  `json:"type"`
	Parent   metadata.ParentRef `json:"parent"`
	IsPublic bool               `json:"is_public"`
	Locator  string             `json:"locator,omitempty"`
	Seq      uint64             `json:"seq"`
}

func encodeUser(u *metadata.User) ([]byte, error) {
	doc := userDoc{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
	bytes, err := json.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user record: %w", err)
	}
	return bytes, nil
}

func decodeUser(data []byte) (*metadata.User, error) {
	var doc userDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode user record: %w", err)
	}
	return &metadata.User{
		ID:           doc.ID,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

func encodeFile(f *metadata.File) ([]byte, error) {
	doc := fileDoc{
		ID:       f.ID,
		UserID:   f.UserID,
		Name:     f.Name,
		Type:     f.Type,
		Parent:   f.Parent,
		IsPublic: f.IsPublic,
		Locator:  f.Locator,
		Seq:      f.Seq,
	}
	bytes, err := json.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode file record: %w", err)
	}
	return bytes, nil
}

func decodeFile(data []byte) (*metadata.File, error) {
	var doc fileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode file record: %w", err)
	}
	return &metadata.File{
		ID:       doc.ID,
		UserID:   doc.UserID,
		Name:     doc.Name,
		Type:     doc.Type,
		Parent:   doc.Parent,
		IsPublic: doc.IsPublic,
		Locator:  doc.Locator,
		Seq:      doc.Seq,
	}, nil
}

// encodeID serializes a UUID as its raw 16 bytes for index values.
func encodeID(id uuid.UUID) []byte {
	bytes := make([]byte, 16)
	copy(bytes, id[:])
	return bytes
}

// decodeID deserializes a UUID from raw index value bytes.
func decodeID(data []byte) (uuid.UUID, error) {
	id, err := uuid.FromBytes(data)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id bytes: %w", err)
	}
	return id, nil
}
