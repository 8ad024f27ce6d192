package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chineduCoded/alx-files-manager/pkg/store/content"
)

// FSContentStore implements content.ContentStore using the local filesystem.
//
// Content is stored as one flat file per locator under a base directory.
// Locators are UUID strings, which are filesystem-safe, so no escaping is
// needed; the resulting layout is also what the thumbnail naming convention
// expects ("<locator>_<width>" sits next to "<locator>").
//
// Thread Safety:
// The underlying filesystem operations are thread-safe at the OS level.
// The service writes each locator exactly once, so concurrent writes to the
// same path do not occur in practice.
type FSContentStore struct {
	basePath string
}

// New creates a filesystem-based content store rooted at basePath, creating
// the directory if it does not exist.
func New(ctx context.Context, basePath string) (*FSContentStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create content directory: %w", err)
	}

	return &FSContentStore{basePath: basePath}, nil
}

// path returns the full filesystem path for a locator.
func (s *FSContentStore) path(locator string) string {
	return filepath.Join(s.basePath, locator)
}

// Write stores data under the locator. The write is attempted at most once;
// a failure leaves no metadata side effects for the caller to undo.
func (s *FSContentStore) Write(ctx context.Context, locator string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.WriteFile(s.path(locator), data, 0644); err != nil {
		return fmt.Errorf("failed to write content %s: %w", locator, err)
	}
	return nil
}

// Read returns the complete content stored under the locator.
func (s *FSContentStore) Read(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(locator))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("content %s: %w", locator, content.ErrContentNotFound)
		}
		return nil, fmt.Errorf("failed to read content %s: %w", locator, err)
	}
	return data, nil
}

// Exists reports whether content is stored under the locator.
func (s *FSContentStore) Exists(ctx context.Context, locator string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := os.Stat(s.path(locator))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat content %s: %w", locator, err)
	}
	return true, nil
}

// HealthCheck verifies the base directory is still a writable directory.
func (s *FSContentStore) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(s.basePath)
	if err != nil {
		return fmt.Errorf("content directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("content path %s is not a directory", s.basePath)
	}
	return nil
}
