package services

import (
	"fmt"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// Default geofence radii in meters. The pickup zone is deliberately tighter
// than the drop-off zone: couriers stage close to merchants, while customer
// addresses are coarser coordinates.
const (
	DefaultPickupRadiusMeters   float64 = 100
	DefaultDeliveryRadiusMeters float64 = 200
)

// TransitionProposal is the evaluator's verdict that a courier fix warrants
// an automatic lifecycle transition. It carries the action to request, the
// status that action leads to and a human-readable reason for audit logs.
type TransitionProposal struct {
	Action       tracking.Action
	TargetStatus tracking.Status
	Reason       string
}

// GeofenceEvaluator decides whether a location fix places the courier inside
// the pickup or drop-off geofence of a tracking record, and if so which
// arrival transition should be proposed. The evaluator is stateless: it never
// remembers previous fixes, so the same inputs always produce the same
// verdict.
type GeofenceEvaluator struct {
	pickupRadiusMeters   float64
	deliveryRadiusMeters float64

	guard guard.ConstructorGuard
}

// NewGeofenceEvaluator creates an evaluator with the given radii in meters.
// Both radii must be positive.
func NewGeofenceEvaluator(pickupRadiusMeters float64, deliveryRadiusMeters float64) (*GeofenceEvaluator, error) {
	if pickupRadiusMeters <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("pickupRadiusMeters",
			fmt.Errorf("radius must be positive, got %v", pickupRadiusMeters))
	}
	if deliveryRadiusMeters <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("deliveryRadiusMeters",
			fmt.Errorf("radius must be positive, got %v", deliveryRadiusMeters))
	}

	return &GeofenceEvaluator{
		pickupRadiusMeters:   pickupRadiusMeters,
		deliveryRadiusMeters: deliveryRadiusMeters,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// NewDefaultGeofenceEvaluator creates an evaluator with the default radii.
func NewDefaultGeofenceEvaluator() (*GeofenceEvaluator, error) {
	return NewGeofenceEvaluator(DefaultPickupRadiusMeters, DefaultDeliveryRadiusMeters)
}

func (e *GeofenceEvaluator) Validate() error {
	return e.guard.Validate(errs.NewValueIsRequiredError("geofenceEvaluator"))
}

// PickupRadiusMeters returns the configured pickup geofence radius.
func (e *GeofenceEvaluator) PickupRadiusMeters() float64 {
	return e.pickupRadiusMeters
}

// DeliveryRadiusMeters returns the configured drop-off geofence radius.
func (e *GeofenceEvaluator) DeliveryRadiusMeters() float64 {
	return e.deliveryRadiusMeters
}

// Evaluate checks the fix against the geofence relevant to the current
// status and returns a proposal when the courier is inside it. Statuses that
// have no arrival transition left to make (including terminal ones) yield
// nil. A nil result with a nil error means "no transition warranted".
func (e *GeofenceEvaluator) Evaluate(status tracking.Status, fix kernel.GeoPoint,
	pickup kernel.GeoPoint, delivery kernel.GeoPoint) (*TransitionProposal, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := fix.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("fix", err)
	}

	switch status {
	case tracking.StatusAssigned, tracking.StatusHeadingToPickup:
		if err := pickup.Validate(); err != nil {
			return nil, errs.NewValueIsRequiredErrorWithCause("pickup", err)
		}

		distance, err := fix.DistanceTo(pickup)
		if err != nil {
			return nil, err
		}
		if distance > e.pickupRadiusMeters {
			return nil, nil
		}

		return &TransitionProposal{
			Action:       tracking.ActionArrivePickup,
			TargetStatus: tracking.StatusAtPickup,
			Reason: fmt.Sprintf("courier is %.1fm from pickup (radius %.0fm)",
				distance, e.pickupRadiusMeters),
		}, nil

	case tracking.StatusPickedUp, tracking.StatusHeadingToDelivery:
		if err := delivery.Validate(); err != nil {
			return nil, errs.NewValueIsRequiredErrorWithCause("delivery", err)
		}

		distance, err := fix.DistanceTo(delivery)
		if err != nil {
			return nil, err
		}
		if distance > e.deliveryRadiusMeters {
			return nil, nil
		}

		return &TransitionProposal{
			Action:       tracking.ActionArriveDelivery,
			TargetStatus: tracking.StatusAtDelivery,
			Reason: fmt.Sprintf("courier is %.1fm from drop-off (radius %.0fm)",
				distance, e.deliveryRadiusMeters),
		}, nil

	default:
		return nil, nil
	}
}
