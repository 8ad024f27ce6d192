package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FileType identifies what kind of entry a file record describes.
type FileType string

const (
	// FileTypeFolder is a container for other files; it never has content.
	FileTypeFolder FileType = "folder"

	// FileTypeFile is a regular file with opaque byte content.
	FileTypeFile FileType = "file"

	// FileTypeImage is a file whose content is a recognized image format.
	// Images get asynchronous thumbnail generation after upload.
	FileTypeImage FileType = "image"
)

// ValidFileType reports whether s names one of the supported file types.
func ValidFileType(s string) bool {
	switch FileType(s) {
	case FileTypeFolder, FileTypeFile, FileTypeImage:
		return true
	}
	return false
}

// User is an account record. PasswordHash is a bcrypt hash and is never
// serialized in API responses.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// File is a file or folder metadata record.
//
// Locator is the opaque reference into the content store. It is set once at
// creation for non-folder entries and is deliberately excluded from JSON so
// it can never leak into an API response.
//
// Seq is the store-assigned insertion sequence number, used to order listings
// most-recent-first. It is an implementation detail of the store and is not
// part of the wire format.
type File struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"userId"`
	Name     string    `json:"name"`
	Type     FileType  `json:"type"`
	Parent   ParentRef `json:"parentId"`
	IsPublic bool      `json:"isPublic"`
	Locator  string    `json:"-"`
	Seq      uint64    `json:"-"`
}

// ParentRef identifies a file's parent: either the root sentinel ("no parent
// folder") or a reference to a folder by id. The zero value is the root
// sentinel, so records default to living at the top level.
//
// The root sentinel is a distinct variant rather than a magic identifier,
// which keeps "no parent" unambiguous from "parent folder with id X".
// On the wire the root sentinel serializes as the JSON number 0.
type ParentRef struct {
	folderID  uuid.UUID
	hasFolder bool
}

// RootParent returns the root sentinel.
func RootParent() ParentRef {
	return ParentRef{}
}

// FolderParent returns a reference to the folder with the given id.
func FolderParent(id uuid.UUID) ParentRef {
	return ParentRef{folderID: id, hasFolder: true}
}

// IsRoot reports whether the reference is the root sentinel.
func (p ParentRef) IsRoot() bool {
	return !p.hasFolder
}

// FolderID returns the referenced folder id. It is only meaningful when
// IsRoot() is false.
func (p ParentRef) FolderID() uuid.UUID {
	return p.folderID
}

// Key returns a stable string form usable as a database key segment:
// "root" for the sentinel, the folder UUID otherwise.
func (p ParentRef) Key() string {
	if !p.hasFolder {
		return "root"
	}
	return p.folderID.String()
}

// MarshalJSON serializes the root sentinel as the number 0 and folder
// references as the folder UUID string.
func (p ParentRef) MarshalJSON() ([]byte, error) {
	if !p.hasFolder {
		return []byte("0"), nil
	}
	return json.Marshal(p.folderID.String())
}

// UnmarshalJSON accepts 0, "0", null, "" (all meaning root) or a folder
// UUID string.
func (p *ParentRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "0" || string(trimmed) == "null" {
		*p = ParentRef{}
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return fmt.Errorf("invalid parent reference %s: %w", trimmed, err)
	}
	if s == "" || s == "0" {
		*p = ParentRef{}
		return nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid parent reference %q: %w", s, err)
	}
	*p = ParentRef{folderID: id, hasFolder: true}
	return nil
}
