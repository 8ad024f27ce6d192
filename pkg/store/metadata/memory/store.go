package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
)

// MemoryMetadataStore implements metadata.MetadataStore with in-process maps.
//
// Nothing is persisted: every record is lost on restart. This store exists
// for tests and local development where spinning up a database directory is
// not worth the trouble.
//
// Thread Safety:
// All operations are protected by a single read-write mutex. This
// coarse-grained locking is simple and correct; throughput is not a concern
// for the environments this store targets.
type MemoryMetadataStore struct {
	mu sync.RWMutex

	users        map[uuid.UUID]*metadata.User
	usersByEmail map[string]uuid.UUID

	files map[uuid.UUID]*metadata.File

	// listings holds file ids per (owner, parent) in insertion order.
	// Listing reads walk a slice backwards to get newest-first.
	listings map[listingKey][]uuid.UUID

	nextSeq uint64
}

type listingKey struct {
	userID uuid.UUID
	parent string
}

// New creates an empty in-memory metadata store.
func New() *MemoryMetadataStore {
	return &MemoryMetadataStore{
		users:        make(map[uuid.UUID]*metadata.User),
		usersByEmail: make(map[string]uuid.UUID),
		files:        make(map[uuid.UUID]*metadata.File),
		listings:     make(map[listingKey][]uuid.UUID),
	}
}

func (s *MemoryMetadataStore) CreateUser(ctx context.Context, email, passwordHash string) (*metadata.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if email == "" {
		return nil, &metadata.StoreError{
			Code:    metadata.ErrInvalidArgument,
			Message: "email must not be empty",
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByEmail[email]; exists {
		return nil, &metadata.StoreError{
			Code:    metadata.ErrAlreadyExists,
			Message: "user already exists",
		}
	}

	user := &metadata.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[user.ID] = user
	s.usersByEmail[email] = user.ID

	copied := *user
	return &copied, nil
}

func (s *MemoryMetadataStore) GetUser(ctx context.Context, id uuid.UUID) (*metadata.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, &metadata.StoreError{
			Code:    metadata.ErrNotFound,
			Message: "user not found",
		}
	}
	copied := *user
	return &copied, nil
}

func (s *MemoryMetadataStore) GetUserByEmail(ctx context.Context, email string) (*metadata.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[email]
	if !ok {
		return nil, &metadata.StoreError{
			Code:    metadata.ErrNotFound,
			Message: "user not found",
		}
	}
	copied := *s.users[id]
	return &copied, nil
}

func (s *MemoryMetadataStore) CountUsers(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.users)), nil
}

func (s *MemoryMetadataStore) CreateFile(ctx context.Context, file *metadata.File) (*metadata.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, &metadata.StoreError{
			Code:    metadata.ErrInvalidArgument,
			Message: "file record must not be nil",
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *file
	stored.ID = uuid.New()
	stored.Seq = s.nextSeq
	s.nextSeq++

	s.files[stored.ID] = &stored

	key := listingKey{userID: stored.UserID, parent: stored.Parent.Key()}
	s.listings[key] = append(s.listings[key], stored.ID)

	copied := stored
	return &copied, nil
}

func (s *MemoryMetadataStore) GetFile(ctx context.Context, id uuid.UUID) (*metadata.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, ok := s.files[id]
	if !ok {
		return nil, &metadata.StoreError{
			Code:    metadata.ErrNotFound,
			Message: "file not found",
		}
	}
	copied := *file
	return &copied, nil
}

func (s *MemoryMetadataStore) ListFiles(ctx context.Context, userID uuid.UUID, parent metadata.ParentRef, page, pageSize int) ([]*metadata.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page < 0 || pageSize <= 0 {
		return nil, &metadata.StoreError{
			Code:    metadata.ErrInvalidArgument,
			Message: "invalid page parameters",
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.listings[listingKey{userID: userID, parent: parent.Key()}]

	// Walk the insertion-ordered slice from the end for newest-first.
	start := len(ids) - 1 - page*pageSize
	files := make([]*metadata.File, 0, pageSize)
	for i := start; i >= 0 && len(files) < pageSize; i-- {
		copied := *s.files[ids[i]]
		files = append(files, &copied)
	}
	return files, nil
}

func (s *MemoryMetadataStore) SetFilePublic(ctx context.Context, userID, fileID uuid.UUID, public bool) (*metadata.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, ok := s.files[fileID]
	if !ok || file.UserID != userID {
		// Ownership failure reads the same as absence on purpose.
		return nil, &metadata.StoreError{
			Code:    metadata.ErrNotFound,
			Message: "file not found",
		}
	}

	file.IsPublic = public
	copied := *file
	return &copied, nil
}

func (s *MemoryMetadataStore) CountFiles(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.files)), nil
}

func (s *MemoryMetadataStore) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryMetadataStore) Close() error {
	return nil
}
