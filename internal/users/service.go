// Package users handles account registration.
package users

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/chineduCoded/alx-files-manager/internal/logger"
	"github.com/chineduCoded/alx-files-manager/pkg/queue"
	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
)

var (
	// ErrMissingEmail indicates the registration request had no email.
	ErrMissingEmail = errors.New("missing email")

	// ErrMissingPassword indicates the registration request had no password.
	ErrMissingPassword = errors.New("missing password")

	// ErrAlreadyExists indicates an account with the email already exists.
	ErrAlreadyExists = errors.New("user already exists")
)

// Service registers new accounts.
type Service struct {
	meta       metadata.MetadataStore
	dispatcher queue.Dispatcher
}

// NewService creates a registration service. The dispatcher may be nil, in
// which case no welcome job is queued.
func NewService(meta metadata.MetadataStore, dispatcher queue.Dispatcher) *Service {
	return &Service{meta: meta, dispatcher: dispatcher}
}

// Register creates an account with a bcrypt-hashed password and queues a
// welcome job for the new user.
//
// The welcome job is fire-and-forget: a full queue is logged and ignored,
// never failing the registration.
func (s *Service) Register(ctx context.Context, email, password string) (*metadata.User, error) {
	if email == "" {
		return nil, ErrMissingEmail
	}
	if password == "" {
		return nil, ErrMissingPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.meta.CreateUser(ctx, email, string(hash))
	if err != nil {
		if metadata.IsAlreadyExists(err) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueUser(ctx, queue.UserJob{UserID: user.ID}); err != nil {
			logger.Warn("Failed to enqueue welcome job for user %s: %v", user.ID, err)
		}
	}

	return user, nil
}
