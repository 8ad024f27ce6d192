package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueue_EnqueueAndDrain(t *testing.T) {
	q := NewMemoryQueue(4, 4)
	ctx := context.Background()

	fileJob := FileJob{UserID: uuid.New(), FileID: uuid.New()}
	userJob := UserJob{UserID: uuid.New()}

	require.NoError(t, q.EnqueueFile(ctx, fileJob))
	require.NoError(t, q.EnqueueUser(ctx, userJob))

	require.Equal(t, fileJob, <-q.Files())
	require.Equal(t, userJob, <-q.Users())
}

func TestMemoryQueue_FullRejects(t *testing.T) {
	q := NewMemoryQueue(1, 1)
	ctx := context.Background()

	require.NoError(t, q.EnqueueFile(ctx, FileJob{UserID: uuid.New(), FileID: uuid.New()}))

	// The buffer is full and nobody is draining: the enqueue must fail
	// fast instead of blocking the producer
	err := q.EnqueueFile(ctx, FileJob{UserID: uuid.New(), FileID: uuid.New()})
	require.True(t, errors.Is(err, ErrQueueFull))
}

func TestMemoryQueue_ClosedRejects(t *testing.T) {
	q := NewMemoryQueue(4, 4)
	ctx := context.Background()

	require.NoError(t, q.EnqueueFile(ctx, FileJob{UserID: uuid.New(), FileID: uuid.New()}))

	q.Close()

	err := q.EnqueueFile(ctx, FileJob{UserID: uuid.New(), FileID: uuid.New()})
	require.True(t, errors.Is(err, ErrQueueFull))

	err = q.EnqueueUser(ctx, UserJob{UserID: uuid.New()})
	require.True(t, errors.Is(err, ErrQueueFull))
}

// TestMemoryQueue_CloseDrains verifies a consumer can finish buffered jobs
// after Close: the channels close only once emptied by the reader.
func TestMemoryQueue_CloseDrains(t *testing.T) {
	q := NewMemoryQueue(4, 4)
	ctx := context.Background()

	jobs := []FileJob{
		{UserID: uuid.New(), FileID: uuid.New()},
		{UserID: uuid.New(), FileID: uuid.New()},
	}
	for _, job := range jobs {
		require.NoError(t, q.EnqueueFile(ctx, job))
	}

	q.Close()

	var drained []FileJob
	for job := range q.Files() {
		drained = append(drained, job)
	}
	require.Equal(t, jobs, drained)

	q.Close() // second close is a no-op
}

func TestMemoryQueue_CancelledContext(t *testing.T) {
	q := NewMemoryQueue(4, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := q.EnqueueFile(ctx, FileJob{UserID: uuid.New(), FileID: uuid.New()})
	require.ErrorIs(t, err, context.Canceled)
}
