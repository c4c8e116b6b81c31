package ports

import (
	"context"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
)

// ProposalThrottle damps automatic transition proposals produced by geofence
// evaluation. GPS fixes jitter, so a single in-zone sample is not enough to
// move a record: the signal must first be sustained (Confirm) and then pass
// a per-record debounce window (Allow) before the transition is requested.
type ProposalThrottle interface {
	// Confirm records an in-zone observation for the record/action pair and
	// reports whether the signal has now been sustained for at least the
	// confirmation window. The first observation starts the window; a call
	// after the window elapsed returns true.
	Confirm(ctx context.Context, trackingID kernel.UUID, action tracking.Action,
		observedAt time.Time) (bool, error)

	// Allow reports whether an automatic transition may fire for the record,
	// and if so claims the debounce window so subsequent calls within it
	// return false. Claiming must be atomic across process instances.
	Allow(ctx context.Context, trackingID kernel.UUID, window time.Duration) (bool, error)

	// Reset clears any confirmation state for the record/action pair.
	// Called when a sample lands outside the zone so a later re-entry
	// starts a fresh confirmation window.
	Reset(ctx context.Context, trackingID kernel.UUID, action tracking.Action) error
}
