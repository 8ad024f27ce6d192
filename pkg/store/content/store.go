package content

import (
	"context"
	"errors"
)

// ============================================================================
// ContentStore Interface
// ============================================================================

// ContentStore persists raw file bytes under opaque locators.
//
// This interface abstracts the underlying storage mechanism (filesystem, S3,
// memory) behind a consistent byte-blob API. It manages only content;
// everything else about a file - name, type, ownership, hierarchy,
// visibility - lives in the metadata store, which references content through
// the locator.
//
// Locators:
// A locator is an opaque string, unique within the store, generated by the
// caller at upload time (in practice a random UUID). The store never
// interprets it beyond using it as a storage key, with one convention layered
// on top by the thumbnail pipeline: the resized variants of an image stored
// at locator L live at "L_<width>". Locators are internal and must never be
// exposed in API responses.
//
// Write Discipline:
// Content is write-once from the service's point of view: a locator is
// written by exactly one upload (or one thumbnail job) and read many times.
// Implementations may treat a repeated Write as overwrite; the service never
// issues one.
//
// Thread Safety:
// Implementations must be safe for concurrent use by multiple goroutines.
type ContentStore interface {
	// Write stores data under the given locator.
	Write(ctx context.Context, locator string, data []byte) error

	// Read returns the complete content stored under locator.
	//
	// Returns ErrContentNotFound if nothing is stored there - including
	// the case of a thumbnail variant that has not been generated yet.
	Read(ctx context.Context, locator string) ([]byte, error)

	// Exists reports whether content is stored under locator.
	Exists(ctx context.Context, locator string) (bool, error)

	// HealthCheck verifies the store is reachable and operational.
	HealthCheck(ctx context.Context) error
}

// ErrContentNotFound indicates no content is stored under the requested
// locator.
//
// Callers translate this to their own not-found semantics; notably, a
// request for a thumbnail that the worker has not generated yet surfaces
// as this error, never as an internal failure.
var ErrContentNotFound = errors.New("content not found")
