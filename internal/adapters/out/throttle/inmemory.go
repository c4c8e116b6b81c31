package throttle

import (
	"context"
	"sync"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/ports"
)

// InMemoryThrottle implements the proposal throttle with process-local state.
// Correct only for single-instance deployments; multi-instance setups must
// use RedisThrottle so the debounce claim is shared.
type InMemoryThrottle struct {
	mu            sync.Mutex
	clock         ports.Clock
	confirmWindow time.Duration
	confirmStart  map[string]time.Time
	debounceUntil map[string]time.Time
}

// NewInMemoryThrottle creates a process-local throttle. A non-positive
// confirmWindow falls back to DefaultConfirmationWindow.
func NewInMemoryThrottle(clock ports.Clock, confirmWindow time.Duration) *InMemoryThrottle {
	if confirmWindow <= 0 {
		confirmWindow = DefaultConfirmationWindow
	}

	return &InMemoryThrottle{
		clock:         clock,
		confirmWindow: confirmWindow,
		confirmStart:  make(map[string]time.Time),
		debounceUntil: make(map[string]time.Time),
	}
}

func (t *InMemoryThrottle) Confirm(_ context.Context, trackingID kernel.UUID,
	action tracking.Action, observedAt time.Time) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := confirmKey(trackingID, action)
	started, ok := t.confirmStart[key]
	if !ok {
		t.confirmStart[key] = observedAt
		return false, nil
	}

	if observedAt.Sub(started) < t.confirmWindow {
		return false, nil
	}

	// A satisfied confirmation consumes the entry so abandoned trackings
	// do not accumulate stale keys.
	delete(t.confirmStart, key)
	return true, nil
}

func (t *InMemoryThrottle) Allow(_ context.Context, trackingID kernel.UUID,
	window time.Duration) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	if until, ok := t.debounceUntil[trackingID.String()]; ok && now.Before(until) {
		return false, nil
	}

	t.debounceUntil[trackingID.String()] = now.Add(window)
	return true, nil
}

func (t *InMemoryThrottle) Reset(_ context.Context, trackingID kernel.UUID,
	action tracking.Action) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.confirmStart, confirmKey(trackingID, action))
	return nil
}
