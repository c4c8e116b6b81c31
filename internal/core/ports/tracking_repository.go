// Package ports defines the contracts between the application core and
// infrastructure. These interfaces establish transaction, persistence,
// notification and throttling boundaries, enabling dependency inversion
// and testability.
package ports

import (
	"context"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
)

// TrackingRepository defines the persistence contract for delivery tracking
// aggregates. Beyond plain CRUD it exposes the compare-and-swap primitives
// the mutation pipeline relies on: lock acquisition, guarded commit and lock
// release all carry the optimistic version so concurrent writers are
// serialized by the store, not by the process.
type TrackingRepository interface {
	// Add persists a new tracking aggregate to storage.
	// The aggregate must be valid and not already exist in the repository.
	Add(ctx context.Context, t *tracking.DeliveryTracking) error

	// Get retrieves a tracking aggregate by its unique identifier,
	// including its full transition history.
	// Returns *errs.ObjectNotFoundError when no record exists.
	Get(ctx context.Context, id kernel.UUID) (*tracking.DeliveryTracking, error)

	// GetActive retrieves all tracking records that are not in a terminal
	// status, ordered by creation time.
	GetActive(ctx context.Context) ([]*tracking.DeliveryTracking, error)

	// AcquireLock atomically claims the operation lock on a record, provided
	// the record still has the expected version and no other live lock.
	// An expired lock is treated as absent and may be taken over.
	//
	// Returns *tracking.VersionConflictError when the version moved on,
	// *tracking.OperationInProgressError when another operation holds a
	// live lock, and *errs.ObjectNotFoundError when no record exists.
	AcquireLock(ctx context.Context, id kernel.UUID, operationID kernel.UUID,
		expectedVersion int64, expiresAt time.Time) error

	// CommitMutation persists the mutated aggregate, increments its version
	// and clears the operation lock in one atomic write. The write is guarded
	// by both the expected version and the lock held by operationID; if
	// either guard fails the mutation is rejected with the matching
	// tracking error.
	CommitMutation(ctx context.Context, t *tracking.DeliveryTracking,
		operationID kernel.UUID, expectedVersion int64) error

	// ReleaseLock clears the operation lock on a record if it is still held
	// by operationID. Releasing a lock held by someone else is a no-op.
	ReleaseLock(ctx context.Context, id kernel.UUID, operationID kernel.UUID) error

	// ReleaseExpiredLocks clears every operation lock whose deadline has
	// passed and returns the number of locks released. Used by the
	// background sweeper so abandoned operations never wedge a record.
	ReleaseExpiredLocks(ctx context.Context, now time.Time) (int64, error)
}
