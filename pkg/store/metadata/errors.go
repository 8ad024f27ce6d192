package metadata

import "errors"

// StoreError represents a domain error from metadata store operations.
//
// These are business logic errors (record not found, duplicate email, etc.)
// as opposed to infrastructure errors (disk failure, database corruption).
// HTTP handlers translate StoreError codes to response status codes;
// infrastructure errors surface as 500s.
type StoreError struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return e.Message
}

// ErrorCode represents the category of a metadata store error.
type ErrorCode int

const (
	// ErrNotFound indicates the requested user or file doesn't exist
	ErrNotFound ErrorCode = iota

	// ErrAlreadyExists indicates a unique constraint was violated
	// (currently only the user email)
	ErrAlreadyExists

	// ErrInvalidArgument indicates invalid parameters were provided
	// Examples: empty email, nil file record
	ErrInvalidArgument

	// ErrIOError indicates an I/O error while reading or writing records
	ErrIOError
)

// IsNotFound reports whether err is a StoreError with code ErrNotFound.
func IsNotFound(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == ErrNotFound
}

// IsAlreadyExists reports whether err is a StoreError with code ErrAlreadyExists.
func IsAlreadyExists(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == ErrAlreadyExists
}
