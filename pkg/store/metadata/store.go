package metadata

import (
	"context"

	"github.com/google/uuid"
)

// ============================================================================
// MetadataStore Interface
// ============================================================================

// MetadataStore provides document storage for the two record collections the
// service owns: user accounts and file/folder metadata.
//
// Separation of Concerns:
//
// The metadata store manages record structure and ownership (users, the
// file/folder hierarchy, visibility flags) but does NOT manage file content.
// File content is stored separately in a content store; records reference it
// through an opaque locator that the metadata store never interprets.
//
// This separation allows:
//   - Independent scaling of metadata and content storage
//   - Flexible content backends (local disk, S3, memory) without schema changes
//   - Cheap metadata queries that never touch content bytes
//
// Hierarchy Model:
//
// Files form a forest per user: every file has a ParentRef that is either the
// root sentinel or a reference to a folder owned by the same user. The store
// does NOT validate the parent reference - that is the access controller's
// job at creation time. The store only promises that listings group records
// by exact (owner, parent) match.
//
// Ordering Contract:
//
// ListFiles returns records in reverse-insertion order (most recently created
// first). Implementations assign a monotonically increasing sequence number on
// CreateFile and order listings by it descending. Pagination is plain
// page-number slicing: page p of size n covers records [n*p, n*p+n) of the
// ordered result, and a page past the end is an empty slice, not an error.
//
// Thread Safety:
// Implementations must be safe for concurrent use by multiple goroutines.
// SetFilePublic must be atomic: concurrent readers observe either the old or
// the new record, never a partially updated one.
type MetadataStore interface {
	// CreateUser inserts a new user account with the given email and bcrypt
	// password hash, assigning a fresh id.
	//
	// Returns StoreError(ErrAlreadyExists) if a user with the email exists.
	CreateUser(ctx context.Context, email, passwordHash string) (*User, error)

	// GetUserByEmail looks up a user account by email.
	//
	// Returns StoreError(ErrNotFound) if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUser looks up a user account by id.
	//
	// Returns StoreError(ErrNotFound) if no such user exists.
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)

	// CountUsers returns the total number of user accounts.
	CountUsers(ctx context.Context) (uint64, error)

	// CreateFile inserts a new file record, assigning a fresh id and the
	// next insertion sequence number. All other fields are taken from the
	// record as given; the store performs no hierarchy validation.
	//
	// The returned record is the stored one (with ID and Seq populated).
	CreateFile(ctx context.Context, file *File) (*File, error)

	// GetFile looks up a file record by id.
	//
	// Returns StoreError(ErrNotFound) if no such record exists. Ownership
	// is not checked here; callers enforce it.
	GetFile(ctx context.Context, id uuid.UUID) (*File, error)

	// ListFiles returns the page-th page (zero-indexed, pageSize records per
	// page) of the files owned by userID whose parent matches parent exactly,
	// ordered most-recently-created first.
	//
	// A page beyond the available data yields an empty slice and no error.
	ListFiles(ctx context.Context, userID uuid.UUID, parent ParentRef, page, pageSize int) ([]*File, error)

	// SetFilePublic atomically sets the isPublic flag of the file with the
	// given id, provided it is owned by userID, and returns the updated
	// record. Setting the flag to its current value is a no-op that still
	// returns the record.
	//
	// Returns StoreError(ErrNotFound) if the record is absent or owned by
	// someone else - the two cases are indistinguishable by design.
	SetFilePublic(ctx context.Context, userID, fileID uuid.UUID, public bool) (*File, error)

	// CountFiles returns the total number of file records.
	CountFiles(ctx context.Context) (uint64, error)

	// HealthCheck verifies the store is reachable and operational.
	HealthCheck(ctx context.Context) error

	// Close releases the store's resources. The store must not be used
	// after Close returns.
	Close() error
}
