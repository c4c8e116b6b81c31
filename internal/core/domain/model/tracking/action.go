package tracking

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// Action is a requested lifecycle operation. Each action maps deterministically
// to exactly one resulting status; the mapping lives in TransitionPolicy.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// ActionStartPickup moves the courier onto the pickup leg.
	ActionStartPickup

	// ActionArrivePickup marks arrival within the pickup geofence.
	ActionArrivePickup

	// ActionConfirmPickup records the merchant handover.
	ActionConfirmPickup

	// ActionStartDelivery moves the courier onto the delivery leg.
	ActionStartDelivery

	// ActionArriveDelivery marks arrival within the delivery geofence.
	ActionArriveDelivery

	// ActionComplete finalizes the delivery.
	ActionComplete

	// ActionCancel aborts the delivery.
	ActionCancel
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown:        "unknown",
		ActionStartPickup:    "start_pickup",
		ActionArrivePickup:   "arrive_pickup",
		ActionConfirmPickup:  "confirm_pickup",
		ActionStartDelivery:  "start_delivery",
		ActionArriveDelivery: "arrive_delivery",
		ActionComplete:       "complete",
		ActionCancel:         "cancel",
	}
}

// Validate checks if the Action is one of the enumerated operations.
func (a Action) Validate() error {
	if a == ActionUnknown {
		return errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%d is not a valid action", a))
	}
	if _, ok := getActionStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

// String returns the wire name of the action, e.g. "confirm_pickup".
func (a Action) String() string {
	if s, ok := getActionStrings()[a]; ok {
		return s
	}
	return "unknown"
}

// ActionFromString parses a wire name produced by String.
func ActionFromString(s string) (Action, error) {
	for action, name := range getActionStrings() {
		if name == s && action != ActionUnknown {
			return action, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action",
		fmt.Errorf("%q is not a valid action name", s))
}
