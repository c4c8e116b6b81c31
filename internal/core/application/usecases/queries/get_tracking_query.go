// Package queries contains read-side operations of the CQRS architecture.
// Query handlers read the database directly and return plain response
// structures, bypassing the aggregate and its concurrency machinery.
package queries

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/pkg/guard"
)

var ErrGetTrackingQueryIsNotConstructed = errors.New(
	"GetTrackingQuery must be created via NewGetTrackingQuery constructor",
)

// GetTrackingQuery retrieves one tracking record with its transition history.
// The caller's role shapes the response: allowed actions are computed for
// that role.
type GetTrackingQuery struct { //nolint:recvcheck //using for validation
	trackingID kernel.UUID
	role       tracking.Role

	guard guard.ConstructorGuard
}

// NewGetTrackingQuery creates a query for a single tracking record.
func NewGetTrackingQuery(trackingID kernel.UUID, role tracking.Role) (GetTrackingQuery, error) {
	query := GetTrackingQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setTrackingID(trackingID),
		query.setRole(role),
	); err != nil {
		return GetTrackingQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingQueryIsNotConstructed)
}

// TrackingID returns the requested record id.
func (q GetTrackingQuery) TrackingID() kernel.UUID {
	return q.trackingID
}

// Role returns the caller's role.
func (q GetTrackingQuery) Role() tracking.Role {
	return q.role
}

func (q *GetTrackingQuery) setTrackingID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	q.trackingID = id
	return nil
}

func (q *GetTrackingQuery) setRole(role tracking.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	q.role = role
	return nil
}

// GeoPointView is a plain coordinate pair in a query response.
type GeoPointView struct {
	Latitude  float64
	Longitude float64
}

// LocationView is the last known courier fix in a query response.
type LocationView struct {
	Latitude   float64
	Longitude  float64
	Accuracy   *float64
	Altitude   *float64
	Heading    *float64
	Speed      *float64
	CapturedAt time.Time
}

// TransitionView is one history entry in a query response.
type TransitionView struct {
	From    tracking.Status
	To      tracking.Status
	Trigger tracking.Trigger
	At      time.Time
}

// GetTrackingQueryResponse represents the full state of a tracking record.
type GetTrackingQueryResponse struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	CourierID       kernel.UUID
	Status          tracking.Status
	Version         int64
	LastMessage     string
	CurrentLocation *LocationView
	Pickup          GeoPointView
	Delivery        GeoPointView
	EstimatedToNext time.Duration
	AllowedActions  []tracking.Action
	History         []TransitionView
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
