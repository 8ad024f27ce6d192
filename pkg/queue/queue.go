package queue

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// FileJob asks the background worker to generate thumbnail variants for an
// uploaded image. This payload shape is the whole contract between the
// upload path and the worker.
type FileJob struct {
	UserID uuid.UUID `json:"userId"`
	FileID uuid.UUID `json:"fileId"`
}

// UserJob asks the background worker to greet a freshly registered user.
type UserJob struct {
	UserID uuid.UUID `json:"userId"`
}

// ErrQueueFull indicates the queue cannot accept the job right now.
// Producers treat enqueue failures as non-fatal: they log and continue,
// never failing the request that triggered the job.
var ErrQueueFull = errors.New("queue full")

// Dispatcher enqueues background jobs.
//
// Enqueue calls are fire-and-forget from the producer's perspective: they
// must not block on job execution, and their failure must not propagate
// into the producing request's response.
type Dispatcher interface {
	// EnqueueFile queues a thumbnail-generation job.
	EnqueueFile(ctx context.Context, job FileJob) error

	// EnqueueUser queues a welcome job.
	EnqueueUser(ctx context.Context, job UserJob) error
}
