package tracking

import "time"

// Baseline estimates for how long a delivery typically stays in each state.
// Purely informational, used for ETA display; never gates a transition.
func getBaselineEstimates() map[Status]time.Duration {
	return map[Status]time.Duration{
		StatusAssigned:          5 * time.Minute,
		StatusHeadingToPickup:   10 * time.Minute,
		StatusAtPickup:          3 * time.Minute,
		StatusPickedUp:          2 * time.Minute,
		StatusHeadingToDelivery: 15 * time.Minute,
		StatusAtDelivery:        5 * time.Minute,
	}
}

// EstimateToNext returns the estimated time until the delivery leaves the
// given status. On the pickup leg an optional merchant preparation-time
// estimate widens the baseline when the kitchen is slower than the courier.
// Terminal and unknown statuses estimate to zero.
func EstimateToNext(s Status, preparation *time.Duration) time.Duration {
	baseline, ok := getBaselineEstimates()[s]
	if !ok {
		return 0
	}

	if preparation == nil {
		return baseline
	}

	switch s {
	case StatusAssigned, StatusHeadingToPickup, StatusAtPickup:
		if *preparation > baseline {
			return *preparation
		}
	}

	return baseline
}
