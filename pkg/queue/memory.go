package queue

import (
	"context"
	"sync"
)

// MemoryQueue is a channel-backed, in-process job queue.
//
// Producers enqueue without blocking: if a channel's buffer is full the job
// is rejected with ErrQueueFull rather than stalling the producing request.
// The worker drains the channels via Files() and Users().
//
// Close makes further enqueues fail fast and lets a draining worker finish
// the jobs already buffered.
type MemoryQueue struct {
	files chan FileJob
	users chan UserJob

	mu     sync.Mutex
	closed bool
}

// NewMemoryQueue creates a queue with the given per-channel buffer sizes.
func NewMemoryQueue(fileBuffer, userBuffer int) *MemoryQueue {
	return &MemoryQueue{
		files: make(chan FileJob, fileBuffer),
		users: make(chan UserJob, userBuffer),
	}
}

// EnqueueFile queues a thumbnail-generation job without blocking.
func (q *MemoryQueue) EnqueueFile(ctx context.Context, job FileJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueFull
	}

	select {
	case q.files <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// EnqueueUser queues a welcome job without blocking.
func (q *MemoryQueue) EnqueueUser(ctx context.Context, job UserJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueFull
	}

	select {
	case q.users <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Files returns the channel the worker consumes thumbnail jobs from.
func (q *MemoryQueue) Files() <-chan FileJob {
	return q.files
}

// Users returns the channel the worker consumes welcome jobs from.
func (q *MemoryQueue) Users() <-chan UserJob {
	return q.users
}

// Close rejects future enqueues and closes the job channels so a draining
// worker can exit after finishing the buffered jobs.
func (q *MemoryQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.files)
	close(q.users)
}
