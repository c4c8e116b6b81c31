// Package trackingrepo provides data transfer objects and mapping functions
// for tracking persistence. This package implements the repository pattern for
// the delivery tracking aggregate, handling the conversion between domain
// entities and database representations.
package trackingrepo

import (
	"time"

	"github.com/google/uuid"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/pkg/errs"
)

// TrackingDTO represents the database structure for persisting tracking
// aggregates. The optimistic version and the operation lock columns are part
// of the row itself, so every compare-and-swap is a single guarded UPDATE.
type TrackingDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	CourierID       uuid.UUID  `gorm:"type:uuid;index"`
	Status          string     `gorm:"type:varchar(32);index"`
	Version         int64      `gorm:"not null"`
	LockOperationID *uuid.UUID `gorm:"type:uuid"`
	LockExpiresAt   *time.Time `gorm:"index"`
	LastOperationID *uuid.UUID `gorm:"type:uuid"`
	LastMessage     string

	Location LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Pickup   GeoPointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery GeoPointDTO `gorm:"embedded;embeddedPrefix:delivery_"`

	Transitions []TransitionDTO `gorm:"foreignKey:TrackingID;references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for tracking entities.
func (TrackingDTO) TableName() string {
	return "trackings"
}

// GeoPointDTO represents embedded fixed coordinates within the tracking table.
type GeoPointDTO struct {
	Latitude  float64
	Longitude float64
}

// LocationDTO represents the embedded last known courier fix. All columns are
// nullable: a fresh record has no fix yet.
type LocationDTO struct {
	Latitude   *float64
	Longitude  *float64
	Accuracy   *float64
	Altitude   *float64
	Heading    *float64
	Speed      *float64
	CapturedAt *time.Time
}

// TransitionDTO represents one row of a record's transition history.
// Seq preserves the order transitions were applied in.
type TransitionDTO struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	TrackingID uuid.UUID `gorm:"type:uuid;index"`
	Seq        int       `gorm:"not null"`
	FromStatus string    `gorm:"type:varchar(32)"`
	ToStatus   string    `gorm:"type:varchar(32)"`
	Trigger    string    `gorm:"column:fired_by;type:varchar(16)"`
	OccurredAt time.Time
}

// TableName specifies the database table name for transition history rows.
func (TransitionDTO) TableName() string {
	return "tracking_transitions"
}

// fromDomain converts a tracking domain aggregate to its database
// representation, history rows included.
func fromDomain(t *tracking.DeliveryTracking) TrackingDTO {
	dto := TrackingDTO{
		ID:          t.ID().Bytes(),
		OrderID:     t.OrderID().Bytes(),
		CourierID:   t.CourierID().Bytes(),
		Status:      t.Status().String(),
		Version:     t.Version(),
		LastMessage: t.LastMessage(),
		Pickup: GeoPointDTO{
			Latitude:  t.PickupLocation().Latitude(),
			Longitude: t.PickupLocation().Longitude(),
		},
		Delivery: GeoPointDTO{
			Latitude:  t.DeliveryLocation().Latitude(),
			Longitude: t.DeliveryLocation().Longitude(),
		},
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}

	if lock := t.Lock(); lock != nil {
		opID := lock.OperationID.Bytes()
		expiresAt := lock.ExpiresAt
		dto.LockOperationID = &opID
		dto.LockExpiresAt = &expiresAt
	}

	if lastOp := t.LastOperationID(); lastOp != nil {
		opID := lastOp.Bytes()
		dto.LastOperationID = &opID
	}

	if sample := t.CurrentLocation(); sample != nil {
		lat := sample.Point().Latitude()
		lng := sample.Point().Longitude()
		capturedAt := sample.CapturedAt()
		dto.Location = LocationDTO{
			Latitude:   &lat,
			Longitude:  &lng,
			Accuracy:   sample.Accuracy(),
			Altitude:   sample.Altitude(),
			Heading:    sample.Heading(),
			Speed:      sample.Speed(),
			CapturedAt: &capturedAt,
		}
	}

	for i, rec := range t.History() {
		dto.Transitions = append(dto.Transitions, TransitionDTO{
			TrackingID: dto.ID,
			Seq:        i,
			FromStatus: rec.From.String(),
			ToStatus:   rec.To.String(),
			Trigger:    rec.Trigger.String(),
			OccurredAt: rec.At,
		})
	}

	return dto
}

// toDomain converts a database DTO to a tracking domain aggregate.
// Reconstructs the complete aggregate including lock state and history using
// RestoreDeliveryTracking.
func toDomain(dto TrackingDTO) (*tracking.DeliveryTracking, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	status, err := tracking.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewGeoPoint(dto.Pickup.Latitude, dto.Pickup.Longitude)
	if err != nil {
		return nil, err
	}
	delivery, err := kernel.NewGeoPoint(dto.Delivery.Latitude, dto.Delivery.Longitude)
	if err != nil {
		return nil, err
	}

	var lock *tracking.OperationLock
	if dto.LockOperationID != nil && dto.LockExpiresAt != nil {
		lockOpID, lockErr := kernel.UUIDFromBytes((*dto.LockOperationID)[:])
		if lockErr != nil {
			return nil, lockErr
		}
		lock = &tracking.OperationLock{OperationID: lockOpID, ExpiresAt: *dto.LockExpiresAt}
	}

	var lastOperationID *kernel.UUID
	if dto.LastOperationID != nil {
		lastOpID, lastErr := kernel.UUIDFromBytes((*dto.LastOperationID)[:])
		if lastErr != nil {
			return nil, lastErr
		}
		lastOperationID = &lastOpID
	}

	var location *kernel.LocationSample
	if dto.Location.Latitude != nil && dto.Location.Longitude != nil && dto.Location.CapturedAt != nil {
		sample, sampleErr := kernel.NewLocationSample(kernel.RawLocationSample{
			Latitude:   dto.Location.Latitude,
			Longitude:  dto.Location.Longitude,
			Accuracy:   dto.Location.Accuracy,
			Altitude:   dto.Location.Altitude,
			Heading:    dto.Location.Heading,
			Speed:      dto.Location.Speed,
			CapturedAt: *dto.Location.CapturedAt,
		})
		if sampleErr != nil {
			return nil, sampleErr
		}
		location = &sample
	}

	history := make([]tracking.TransitionRecord, 0, len(dto.Transitions))
	for _, row := range dto.Transitions {
		from, fromErr := tracking.StatusFromString(row.FromStatus)
		if fromErr != nil {
			return nil, fromErr
		}
		to, toErr := tracking.StatusFromString(row.ToStatus)
		if toErr != nil {
			return nil, toErr
		}
		trigger, triggerErr := tracking.TriggerFromString(row.Trigger)
		if triggerErr != nil {
			return nil, triggerErr
		}

		history = append(history, tracking.TransitionRecord{
			From:    from,
			To:      to,
			At:      row.OccurredAt,
			Trigger: trigger,
		})
	}

	restored, err := tracking.RestoreDeliveryTracking(
		id, orderID, courierID, status, dto.Version,
		lock, lastOperationID, dto.LastMessage, location,
		pickup, delivery, history,
		dto.CreatedAt, dto.UpdatedAt,
	)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("trackingRow", err)
	}

	return restored, nil
}
