package queries

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/pkg/guard"
)

var ErrGetActiveTrackingsQueryIsNotConstructed = errors.New(
	"GetActiveTrackingsQuery must be created via NewGetActiveTrackingsQuery constructor",
)

// GetActiveTrackingsQuery retrieves all tracking records that have not
// reached a terminal status. Used by dashboards and the operations surface.
type GetActiveTrackingsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveTrackingsQuery creates a query for all in-flight records.
// This is a parameterless query.
func NewGetActiveTrackingsQuery() GetActiveTrackingsQuery {
	return GetActiveTrackingsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveTrackingsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveTrackingsQueryIsNotConstructed)
}

// GetActiveTrackingsQueryResponse represents one in-flight tracking record
// in the active listing.
type GetActiveTrackingsQueryResponse struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	CourierID   kernel.UUID
	Status      tracking.Status
	Version     int64
	LastMessage string
	UpdatedAt   time.Time
}
