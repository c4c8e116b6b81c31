// Package throttle provides implementations of the proposal throttle port:
// a Redis-backed one for multi-instance deployments and an in-memory one for
// single-instance setups and tests.
package throttle

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
)

const (
	confirmKeyPrefix  = "geofence:confirm:"
	debounceKeyPrefix = "geofence:debounce:"

	// confirmStateTTL bounds how long a pending confirmation may linger when
	// a courier stops reporting mid-zone.
	confirmStateTTL = 10 * time.Minute
)

// DefaultConfirmationWindow is how long an in-zone signal must be sustained
// before it counts as confirmed. A single GPS fix inside a geofence can be
// jitter; two fixes this far apart cannot.
const DefaultConfirmationWindow = 3 * time.Second

// confirmScript records the first in-zone observation and reports whether
// the signal has been sustained for the window. Runs as a script so two
// service instances handling samples for the same courier agree on the
// window start. A satisfied window is consumed so the next observation
// starts a fresh one.
var confirmScript = redis.NewScript(`
local key = KEYS[1]
local observed = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local ttl = tonumber(ARGV[3])

local started = redis.call('GET', key)
if not started then
	redis.call('SET', key, observed, 'PX', ttl)
	return 0
end

if observed - tonumber(started) >= window then
	redis.call('DEL', key)
	return 1
end

return 0
`)

// RedisThrottle implements the proposal throttle on Redis. Confirmation
// windows are tracked per record and action; the debounce claim is a plain
// SetNX whose TTL is the debounce window itself.
type RedisThrottle struct {
	client        *redis.Client
	confirmWindow time.Duration
}

// NewRedisThrottle creates a Redis-backed throttle. A non-positive
// confirmWindow falls back to DefaultConfirmationWindow.
func NewRedisThrottle(client *redis.Client, confirmWindow time.Duration) *RedisThrottle {
	if confirmWindow <= 0 {
		confirmWindow = DefaultConfirmationWindow
	}

	return &RedisThrottle{
		client:        client,
		confirmWindow: confirmWindow,
	}
}

func confirmKey(trackingID kernel.UUID, action tracking.Action) string {
	return confirmKeyPrefix + trackingID.String() + ":" + action.String()
}

// Confirm reports whether the in-zone signal for the record/action pair has
// been sustained for the confirmation window. Observations are compared by
// their capture timestamps, so replayed batches behave the same as live
// reports.
func (t *RedisThrottle) Confirm(ctx context.Context, trackingID kernel.UUID,
	action tracking.Action, observedAt time.Time) (bool, error) {
	result, err := confirmScript.Run(ctx, t.client,
		[]string{confirmKey(trackingID, action)},
		observedAt.UnixMilli(),
		t.confirmWindow.Milliseconds(),
		confirmStateTTL.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}

	return result == 1, nil
}

// Allow claims the debounce window for the record. The SetNX either takes the
// slot for the full window or reports that another proposal already did.
func (t *RedisThrottle) Allow(ctx context.Context, trackingID kernel.UUID,
	window time.Duration) (bool, error) {
	return t.client.SetNX(ctx, debounceKeyPrefix+trackingID.String(), 1, window).Result()
}

// Reset clears the pending confirmation for the record/action pair.
func (t *RedisThrottle) Reset(ctx context.Context, trackingID kernel.UUID,
	action tracking.Action) error {
	return t.client.Del(ctx, confirmKey(trackingID, action)).Err()
}
