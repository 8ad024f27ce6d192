package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	metadataMemory "github.com/chineduCoded/alx-files-manager/pkg/store/metadata/memory"
	"github.com/chineduCoded/alx-files-manager/pkg/queue"
)

func TestService_Register(t *testing.T) {
	meta := metadataMemory.New()
	jobs := queue.NewMemoryQueue(4, 4)
	svc := NewService(meta, jobs)
	ctx := context.Background()

	user, err := svc.Register(ctx, "bob@dylan.com", "toto1234")
	require.NoError(t, err)
	require.Equal(t, "bob@dylan.com", user.Email)

	// The password is stored as a bcrypt hash, never in clear
	stored, err := meta.GetUserByEmail(ctx, "bob@dylan.com")
	require.NoError(t, err)
	require.NotEqual(t, "toto1234", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("toto1234")))

	// Registration queues exactly one welcome job for the new account
	select {
	case job := <-jobs.Users():
		require.Equal(t, user.ID, job.UserID)
	default:
		t.Fatal("expected a welcome job to be queued")
	}
}

func TestService_RegisterValidation(t *testing.T) {
	meta := metadataMemory.New()
	svc := NewService(meta, queue.NewMemoryQueue(4, 4))
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "toto1234")
	require.True(t, errors.Is(err, ErrMissingEmail))

	_, err = svc.Register(ctx, "bob@dylan.com", "")
	require.True(t, errors.Is(err, ErrMissingPassword))
}

func TestService_RegisterDuplicate(t *testing.T) {
	meta := metadataMemory.New()
	svc := NewService(meta, queue.NewMemoryQueue(4, 4))
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob@dylan.com", "toto1234")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bob@dylan.com", "other")
	require.True(t, errors.Is(err, ErrAlreadyExists))
}

// TestService_RegisterQueueFull verifies a rejected welcome job does not
// fail the registration: the job is best effort.
func TestService_RegisterQueueFull(t *testing.T) {
	meta := metadataMemory.New()
	jobs := queue.NewMemoryQueue(1, 1)
	svc := NewService(meta, jobs)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "pw-a")
	require.NoError(t, err)

	// The single-slot user queue is now full
	user, err := svc.Register(ctx, "b@x.com", "pw-b")
	require.NoError(t, err)
	require.NotNil(t, user)
}
