package trackingrepo

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

const uniqueViolationCode = "23505"

// GormTrackingRepository implements TrackingRepository using GORM. All
// mutation primitives are guarded UPDATEs: the WHERE clause carries the
// expected version and the lock owner, so the database arbitrates races
// regardless of how many service instances run.
type GormTrackingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	clock   ports.Clock
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTrackingRepository creates a new GORM tracking repository. The clock
// decides when a held lock counts as expired during acquisition.
func NewGormTrackingRepository(db *gorm.DB, tracker aggregateTracker, clock ports.Clock) *GormTrackingRepository {
	return &GormTrackingRepository{
		db:      db,
		tracker: tracker,
		clock:   clock,
	}
}

// Add saves a new tracking record to the database.
func (r *GormTrackingRepository) Add(ctx context.Context, aggregate *tracking.DeliveryTracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return errs.NewValueIsInvalidErrorWithCause("trackingId", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a tracking record by ID with its full transition history.
func (r *GormTrackingRepository) Get(ctx context.Context, id kernel.UUID) (*tracking.DeliveryTracking, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TrackingDTO
	err := r.db.WithContext(ctx).
		Preload("Transitions", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tracking", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActive retrieves all records that have not reached a terminal status.
func (r *GormTrackingRepository) GetActive(ctx context.Context) ([]*tracking.DeliveryTracking, error) {
	var dtos []TrackingDTO
	err := r.db.WithContext(ctx).
		Preload("Transitions", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		Where("status NOT IN ?", []string{
			tracking.StatusDelivered.String(),
			tracking.StatusCancelled.String(),
		}).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*tracking.DeliveryTracking, 0, len(dtos))
	for _, dto := range dtos {
		record, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		records = append(records, record)
	}

	return records, nil
}

// AcquireLock claims the operation lock with a single guarded UPDATE. The
// claim succeeds when the version matches and the slot is free, already ours,
// or expired. Zero affected rows are diagnosed with a follow-up read so the
// caller gets the precise refusal.
func (r *GormTrackingRepository) AcquireLock(ctx context.Context, id kernel.UUID,
	operationID kernel.UUID, expectedVersion int64, expiresAt time.Time) error {
	if err := errors.Join(id.Validate(), operationID.Validate()); err != nil {
		return err
	}

	opID := operationID.Bytes()
	result := r.db.WithContext(ctx).Model(&TrackingDTO{}).
		Where("id = ? AND version = ? AND (lock_operation_id IS NULL OR lock_operation_id = ? OR lock_expires_at <= ?)",
			id.Bytes(), expectedVersion, opID, r.clock.Now()).
		Updates(map[string]any{
			"lock_operation_id": opID,
			"lock_expires_at":   expiresAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.diagnoseRefusal(ctx, id, expectedVersion)
	}

	return nil
}

// CommitMutation persists the mutated aggregate behind the same guards used
// by AcquireLock: the row must still be at the pre-mutation version and the
// lock must belong to the committing operation. History rows are rewritten
// inside the caller's transaction.
func (r *GormTrackingRepository) CommitMutation(ctx context.Context, aggregate *tracking.DeliveryTracking,
	operationID kernel.UUID, expectedVersion int64) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := operationID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TrackingDTO{}).
		Where("id = ? AND version = ? AND lock_operation_id = ?",
			dto.ID, expectedVersion, operationID.Bytes()).
		Select("*").Omit("id", "created_at", "Transitions").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.diagnoseRefusal(ctx, aggregate.ID(), expectedVersion)
	}

	if err := r.db.WithContext(ctx).
		Where("tracking_id = ?", dto.ID).
		Delete(&TransitionDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Transitions) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Transitions).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// ReleaseLock clears the lock if still held by the given operation.
func (r *GormTrackingRepository) ReleaseLock(ctx context.Context, id kernel.UUID, operationID kernel.UUID) error {
	if err := errors.Join(id.Validate(), operationID.Validate()); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&TrackingDTO{}).
		Where("id = ? AND lock_operation_id = ?", id.Bytes(), operationID.Bytes()).
		Updates(map[string]any{
			"lock_operation_id": nil,
			"lock_expires_at":   nil,
		}).Error
}

// ReleaseExpiredLocks clears every lock whose deadline passed.
func (r *GormTrackingRepository) ReleaseExpiredLocks(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&TrackingDTO{}).
		Where("lock_expires_at IS NOT NULL AND lock_expires_at <= ?", now).
		Updates(map[string]any{
			"lock_operation_id": nil,
			"lock_expires_at":   nil,
		})

	return result.RowsAffected, result.Error
}

// diagnoseRefusal reloads the row to turn a zero-row UPDATE into the precise
// domain error: missing record, stale version or a live foreign lock.
func (r *GormTrackingRepository) diagnoseRefusal(ctx context.Context, id kernel.UUID, expectedVersion int64) error {
	var dto TrackingDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("tracking", id.String())
		}
		return err
	}

	if dto.Version != expectedVersion {
		return tracking.NewVersionConflictError(expectedVersion, dto.Version)
	}

	if dto.LockOperationID != nil && dto.LockExpiresAt != nil {
		heldBy, err := kernel.UUIDFromBytes((*dto.LockOperationID)[:])
		if err != nil {
			return err
		}
		return tracking.NewOperationInProgressError(heldBy, *dto.LockExpiresAt)
	}

	return tracking.NewVersionConflictError(expectedVersion, dto.Version)
}
