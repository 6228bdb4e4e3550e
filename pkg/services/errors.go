// Package services implements the cross-store matching and exchange
// protocol: candidate search, the request lifecycle, and publishing
// approvals with first-come-first-served exclusivity.
package services

import (
	"errors"
	"fmt"
)

// Business logic errors. These indicate client conditions (4xx responses).
var (
	// Validation errors (400 Bad Request).
	ErrInvalidRequest    = errors.New("invalid request")
	ErrInvalidDirection  = errors.New("invalid match direction")
	ErrInvalidKind       = errors.New("invalid publishing kind")
	ErrSameStore         = errors.New("request cannot target the originating store")
	ErrNoTargets         = errors.New("request needs at least one target")
	ErrStoreRequired     = errors.New("store id is required")
	ErrWorkerNotAtStore  = errors.New("worker does not belong to the publishing store")
	ErrWorkerMissingRole = errors.New("worker is not qualified for the shift role")

	// Concurrency conflicts (409 Conflict).

	// ErrApprovalInProgress indicates the advisory lock for the record is
	// already held: another approval is mid-flight, not necessarily
	// resolved yet.
	ErrApprovalInProgress = errors.New("approval already in progress")

	// ErrAlreadyProcessed indicates a request reached a terminal state
	// before this operation ran.
	ErrAlreadyProcessed = errors.New("request already processed")

	// ErrAlreadyClosed indicates a publishing posting was closed before
	// this operation ran: another store won the race.
	ErrAlreadyClosed = errors.New("publishing already closed")
)

// ServiceError wraps service-level errors with operation context.
type ServiceError struct {
	Op      string // operation name
	Message string // human-readable message
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsValidationError checks if an error should map to HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidDirection) ||
		errors.Is(err, ErrInvalidKind) ||
		errors.Is(err, ErrSameStore) ||
		errors.Is(err, ErrNoTargets) ||
		errors.Is(err, ErrStoreRequired) ||
		errors.Is(err, ErrWorkerNotAtStore) ||
		errors.Is(err, ErrWorkerMissingRole)
}

// IsConflict checks if an error indicates a lock held by another approval.
func IsConflict(err error) bool {
	return errors.Is(err, ErrApprovalInProgress)
}

// IsAlreadyResolved checks if an error indicates a terminal-state violation:
// the record was approved, rejected, or closed by someone else first.
func IsAlreadyResolved(err error) bool {
	return errors.Is(err, ErrAlreadyProcessed) || errors.Is(err, ErrAlreadyClosed)
}
