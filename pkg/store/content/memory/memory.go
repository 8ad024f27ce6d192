package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/chineduCoded/alx-files-manager/pkg/store/content"
)

// MemoryContentStore implements content.ContentStore with an in-process map.
// Content evaporates on restart; the store exists for tests and local
// development.
type MemoryContentStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// New creates an empty in-memory content store.
func New() *MemoryContentStore {
	return &MemoryContentStore{blobs: make(map[string][]byte)}
}

func (s *MemoryContentStore) Write(ctx context.Context, locator string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	copied := make([]byte, len(data))
	copy(copied, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[locator] = copied
	return nil
}

func (s *MemoryContentStore) Read(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[locator]
	if !ok {
		return nil, fmt.Errorf("content %s: %w", locator, content.ErrContentNotFound)
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	return copied, nil
}

func (s *MemoryContentStore) Exists(ctx context.Context, locator string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blobs[locator]
	return ok, nil
}

func (s *MemoryContentStore) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}
