// Package persistence provides standardized error types for storage operations.
package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrShiftNotFound indicates no shift exists with the given identifier.
	ErrShiftNotFound = errors.New("shift not found")

	// ErrRequestNotFound indicates no request exists with the given identifier.
	ErrRequestNotFound = errors.New("request not found")

	// ErrPublishingItemNotFound indicates no posting of the requested kind
	// exists with the given identifier.
	ErrPublishingItemNotFound = errors.New("publishing item not found")

	// ErrStoreNotFound indicates unknown store reference data.
	ErrStoreNotFound = errors.New("store not found")

	// ErrWorkerNotFound indicates unknown worker reference data.
	ErrWorkerNotFound = errors.New("worker not found")
)

// StorageError wraps an underlying read/write failure with operation context.
// Callers surface it as a generic retry condition and log the detail.
type StorageError struct {
	Op  string // operation being performed, e.g. "LoadPublishing"
	Key string // record or collection involved
	Err error
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s failed for %s: %v", e.Op, e.Key, e.Err)
	}

	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a storage error with context.
func NewStorageError(op, key string, err error) *StorageError {
	return &StorageError{Op: op, Key: key, Err: err}
}

// IsShiftNotFound checks if an error indicates a missing shift.
func IsShiftNotFound(err error) bool {
	return errors.Is(err, ErrShiftNotFound)
}

// IsRequestNotFound checks if an error indicates a missing request.
func IsRequestNotFound(err error) bool {
	return errors.Is(err, ErrRequestNotFound)
}

// IsPublishingItemNotFound checks if an error indicates a missing posting.
func IsPublishingItemNotFound(err error) bool {
	return errors.Is(err, ErrPublishingItemNotFound)
}

// IsNotFound checks if an error indicates any missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrShiftNotFound) ||
		errors.Is(err, ErrRequestNotFound) ||
		errors.Is(err, ErrPublishingItemNotFound) ||
		errors.Is(err, ErrStoreNotFound) ||
		errors.Is(err, ErrWorkerNotFound)
}

// IsStorageError checks if an error is an underlying storage failure.
func IsStorageError(err error) bool {
	var storageErr *StorageError

	return errors.As(err, &storageErr)
}
