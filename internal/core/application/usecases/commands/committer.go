package commands

import (
	"context"
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/metrics"
)

// DefaultLockTTL bounds how long a single mutation may hold a record. An
// operation that dies mid-flight leaves a lock behind for at most this long
// before the sweeper reclaims it.
const DefaultLockTTL = 30 * time.Second

// UseCurrentVersion tells the committer to accept whatever version the record
// currently has instead of enforcing a client-supplied one. Used by
// server-originated mutations such as automatic transitions.
const UseCurrentVersion int64 = -1

// MutationFunc applies a domain change to a freshly loaded aggregate and
// returns the message to record with the commit. Returning an error aborts
// the mutation without any state change.
type MutationFunc func(t *tracking.DeliveryTracking) (string, error)

// Committer runs the race-safe mutation pipeline every write to a tracking
// record goes through:
//
//  1. load the record and detect idempotent replays by operation id
//  2. check the expected version against the stored one
//  3. claim the TTL operation lock, both in memory and in the store
//  4. apply the mutation
//  5. commit with a version compare-and-swap that also releases the lock
//
// The lock is durable between steps 3 and 5, so a process crash mid-mutation
// leaves a lock that expires on its own; concurrent writers observe either a
// version conflict or an operation in progress, never a torn write.
type Committer struct {
	uowFactory TrackingUoWFactory
	clock      ports.Clock
	lockTTL    time.Duration
}

// NewCommitter creates a committer over the given unit of work factory.
// A non-positive lockTTL falls back to DefaultLockTTL.
func NewCommitter(uowFactory TrackingUoWFactory, clock ports.Clock, lockTTL time.Duration) Committer {
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}

	return Committer{
		uowFactory: uowFactory,
		clock:      clock,
		lockTTL:    lockTTL,
	}
}

// Commit executes mutate against the record identified by trackingID under
// the full concurrency protocol. expectedVersion is the version the caller
// believes the record has; pass UseCurrentVersion to accept any.
//
// The returned bool reports an idempotent replay: the operation id already
// produced a committed mutation, the stored aggregate is returned unchanged
// and mutate is not called again.
func (c Committer) Commit(ctx context.Context, trackingID kernel.UUID, operationID kernel.UUID,
	expectedVersion int64, mutate MutationFunc) (*tracking.DeliveryTracking, bool, error) {
	if err := errors.Join(trackingID.Validate(), operationID.Validate()); err != nil {
		return nil, false, err
	}

	t, replayed, err := c.acquire(ctx, trackingID, operationID, expectedVersion)
	if err != nil {
		c.countConflict(err)
		return nil, false, err
	}
	if replayed {
		return t, true, nil
	}

	lockedVersion := t.Version()

	message, err := mutate(t)
	if err != nil {
		c.release(ctx, trackingID, operationID)
		return nil, false, err
	}

	if err = t.MarkCommitted(operationID, message, c.clock.Now()); err != nil {
		c.release(ctx, trackingID, operationID)
		return nil, false, err
	}

	if err = c.commit(ctx, t, operationID, lockedVersion); err != nil {
		c.countConflict(err)
		c.release(ctx, trackingID, operationID)
		return nil, false, err
	}

	return t, false, nil
}

// acquire loads the record, resolves replays and claims the durable lock in
// its own transaction, so the lock survives until commit or TTL expiry.
func (c Committer) acquire(ctx context.Context, trackingID kernel.UUID, operationID kernel.UUID,
	expectedVersion int64) (*tracking.DeliveryTracking, bool, error) {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TrackingRepository()
	t, err := repo.Get(ctx, trackingID)
	if err != nil {
		return nil, false, err
	}

	if t.IsReplay(operationID) {
		return t, true, nil
	}

	if expectedVersion == UseCurrentVersion {
		expectedVersion = t.Version()
	}
	if t.Version() != expectedVersion {
		return nil, false, tracking.NewVersionConflictError(expectedVersion, t.Version())
	}

	now := c.clock.Now()
	expiresAt := now.Add(c.lockTTL)
	if err = t.AcquireLock(operationID, expiresAt, now); err != nil {
		return nil, false, err
	}
	if err = repo.AcquireLock(ctx, trackingID, operationID, expectedVersion, expiresAt); err != nil {
		return nil, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return t, false, nil
}

func (c Committer) commit(ctx context.Context, t *tracking.DeliveryTracking,
	operationID kernel.UUID, expectedVersion int64) error {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.TrackingRepository().CommitMutation(ctx, t, operationID, expectedVersion); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// release is best effort: if it fails the lock simply lives until its TTL
// and the sweeper reclaims it.
func (c Committer) release(ctx context.Context, trackingID kernel.UUID, operationID kernel.UUID) {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.TrackingRepository().ReleaseLock(ctx, trackingID, operationID); err != nil {
		return
	}

	_ = uow.Commit(ctx)
}

func (c Committer) countConflict(err error) {
	var versionConflict *tracking.VersionConflictError
	var inProgress *tracking.OperationInProgressError

	switch {
	case errors.As(err, &versionConflict):
		metrics.MutationConflictsTotal.WithLabelValues("version_conflict").Inc()
	case errors.As(err, &inProgress):
		metrics.MutationConflictsTotal.WithLabelValues("operation_in_progress").Inc()
	}
}
