package tracking

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery tracking record.
//
// The happy path is linear:
//
//	assigned → heading_to_pickup → at_pickup → picked_up →
//	heading_to_delivery → at_delivery → delivered
//
// cancelled is reachable from every non-terminal state. delivered and
// cancelled are terminal: records in those states refuse all mutation.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusAssigned is the initial state, set when a courier accepts an order.
	StatusAssigned

	// StatusHeadingToPickup indicates the courier is travelling to the pickup point.
	StatusHeadingToPickup

	// StatusAtPickup indicates the courier has arrived within the pickup geofence.
	StatusAtPickup

	// StatusPickedUp indicates the merchant has handed the order over.
	StatusPickedUp

	// StatusHeadingToDelivery indicates the courier is travelling to the customer.
	StatusHeadingToDelivery

	// StatusAtDelivery indicates the courier has arrived within the delivery geofence.
	StatusAtDelivery

	// StatusDelivered is the terminal success state.
	StatusDelivered

	// StatusCancelled is the terminal abort state.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:           "unknown",
		StatusAssigned:          "assigned",
		StatusHeadingToPickup:   "heading_to_pickup",
		StatusAtPickup:          "at_pickup",
		StatusPickedUp:          "picked_up",
		StatusHeadingToDelivery: "heading_to_delivery",
		StatusAtDelivery:        "at_delivery",
		StatusDelivered:         "delivered",
		StatusCancelled:         "cancelled",
	}
}

func getStatusDescriptions() map[Status]string {
	return map[Status]string{
		StatusAssigned:          "assigned to a courier",
		StatusHeadingToPickup:   "courier heading to the pickup point",
		StatusAtPickup:          "courier at the pickup point",
		StatusPickedUp:          "order picked up",
		StatusHeadingToDelivery: "order on the way",
		StatusAtDelivery:        "courier at the delivery address",
		StatusDelivered:         "delivered",
		StatusCancelled:         "cancelled",
	}
}

// Validate checks if the Status value is one of the enumerated lifecycle states.
// StatusUnknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// String returns the wire name of the status, e.g. "heading_to_pickup".
// It implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Description returns a human-readable description of the status, used by the
// generic fallback notification message and by ETA displays.
func (s Status) Description() string {
	if d, ok := getStatusDescriptions()[s]; ok {
		return d
	}
	return "in an unknown state"
}

// StatusFromString parses a wire name produced by String.
// Returns an error for unrecognized names, including "unknown".
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status name", s))
}
