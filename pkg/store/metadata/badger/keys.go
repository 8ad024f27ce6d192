package badger

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
)

// Database Key Namespace Design
// ==============================
//
// BadgerDB is a key-value store, so we use prefixed keys to organize the two
// record collections (users and files) into logical namespaces. This design:
//   - Prevents key collisions between different record types
//   - Enables efficient range scans (e.g., one user's files under one parent)
//   - Makes the database structure self-documenting
//
// Key Namespace Prefixes:
//
// Record Type        Prefix  Key Format                                Value Type
// ================================================================================
// User Record        "u:"    u:<userUUID>                              User (JSON)
// Email Index        "ue:"   ue:<email>                                userUUID (bytes)
// File Record        "f:"    f:<fileUUID>                              fileDoc (JSON)
// Listing Index      "l:"    l:<userUUID>:<parentKey>:<invSeq>         fileUUID (bytes)
//
// Key Design Rationale:
//
// 1. User Records (u:) and Email Index (ue:)
//    - One record per account, plus a unique index from email to id
//    - Email uniqueness is enforced by checking the index inside the same
//      write transaction that inserts the record
//    - Point lookups by id or email: O(1)
//
// 2. File Records (f:)
//    - One record per file/folder, JSON-encoded with the content locator
//      and insertion sequence included (both are store-internal fields)
//    - Point lookup by UUID: O(1)
//
// 3. Listing Index (l:)
//    - Denormalized: one entry per file, keyed by owner and parent
//    - parentKey is "root" for top-level entries, the parent folder UUID
//      otherwise, so the root sentinel matches exactly and never collides
//      with a real folder id
//    - invSeq is the bitwise complement of the insertion sequence number,
//      big-endian encoded. BadgerDB iterates keys in ascending byte order,
//      so complementing the sequence makes a plain forward scan yield
//      records newest-first - exactly the listing order the API promises.
//    - Page p of size n: skip n*p entries, take n

const (
	// prefixUser is the key prefix for user records
	prefixUser = "u:"

	// prefixUserEmail is the key prefix for the email-to-id index
	prefixUserEmail = "ue:"

	// prefixFile is the key prefix for file records
	prefixFile = "f:"

	// prefixListing is the key prefix for the per-(owner, parent) listing index
	prefixListing = "l:"
)

// keyUser returns the key for a user record.
func keyUser(id uuid.UUID) []byte {
	return []byte(prefixUser + id.String())
}

// keyUserEmail returns the email index key for a user.
func keyUserEmail(email string) []byte {
	return []byte(prefixUserEmail + email)
}

// keyFile returns the key for a file record.
func keyFile(id uuid.UUID) []byte {
	return []byte(prefixFile + id.String())
}

// keyListingPrefix returns the scan prefix covering every listing index entry
// for the given owner and parent.
func keyListingPrefix(userID uuid.UUID, parent metadata.ParentRef) []byte {
	return []byte(prefixListing + userID.String() + ":" + parent.Key() + ":")
}

// keyListing returns the listing index key for a single file. The sequence
// number is complemented so ascending key order is newest-first.
func keyListing(userID uuid.UUID, parent metadata.ParentRef, seq uint64) []byte {
	prefix := keyListingPrefix(userID, parent)
	key := make([]byte, len(prefix)+8)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], ^seq)
	return key
}
