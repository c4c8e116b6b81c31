package tracking_test

import (
	"testing"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestTracking(t *testing.T) *tracking.DeliveryTracking {
	t.Helper()

	pickup, err := kernel.NewGeoPoint(41.0082, 28.9784)
	require.NoError(t, err)
	dropoff, err := kernel.NewGeoPoint(40.9923, 29.0275)
	require.NoError(t, err)

	record, err := tracking.NewDeliveryTracking(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, testNow)
	require.NoError(t, err)

	return record
}

func newTestSample(t *testing.T, capturedAt time.Time) kernel.LocationSample {
	t.Helper()

	lat, lng := 41.0085, 28.9790
	s, err := kernel.NewLocationSample(kernel.RawLocationSample{
		Latitude:   &lat,
		Longitude:  &lng,
		CapturedAt: capturedAt,
	})
	require.NoError(t, err)
	return s
}

func TestNewDeliveryTracking(t *testing.T) {
	t.Run("starts_assigned_at_version_zero", func(t *testing.T) {
		record := newTestTracking(t)

		assert.Equal(t, tracking.StatusAssigned, record.Status())
		assert.Equal(t, int64(0), record.Version())
		assert.Nil(t, record.CurrentLocation())
		assert.Nil(t, record.Lock())
		assert.Nil(t, record.LastOperationID())
		assert.Empty(t, record.History())
	})

	t.Run("rejects_zero_value_ids", func(t *testing.T) {
		pickup, _ := kernel.NewGeoPoint(1, 1)
		dropoff, _ := kernel.NewGeoPoint(2, 2)

		_, err := tracking.NewDeliveryTracking(
			kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, testNow)

		require.Error(t, err)
	})

	t.Run("rejects_unconstructed_coordinates", func(t *testing.T) {
		var zero kernel.GeoPoint
		dropoff, _ := kernel.NewGeoPoint(2, 2)

		_, err := tracking.NewDeliveryTracking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), zero, dropoff, testNow)

		require.Error(t, err)
	})
}

func TestDeliveryTracking_Validate(t *testing.T) {
	t.Run("zero_value_fails", func(t *testing.T) {
		var record tracking.DeliveryTracking

		require.ErrorIs(t, record.Validate(), tracking.ErrTrackingIsNotConstructed)
	})

	t.Run("nil_pointer_fails", func(t *testing.T) {
		var record *tracking.DeliveryTracking

		require.ErrorIs(t, record.Validate(), tracking.ErrTrackingIsNotConstructed)
	})
}

func TestDeliveryTracking_ApplyTransition(t *testing.T) {
	t.Run("appends_history_and_changes_status", func(t *testing.T) {
		record := newTestTracking(t)

		err := record.ApplyTransition(tracking.StatusHeadingToPickup, tracking.TriggerManual, testNow)

		require.NoError(t, err)
		assert.Equal(t, tracking.StatusHeadingToPickup, record.Status())

		history := record.History()
		require.Len(t, history, 1)
		assert.Equal(t, tracking.StatusAssigned, history[0].From)
		assert.Equal(t, tracking.StatusHeadingToPickup, history[0].To)
		assert.Equal(t, tracking.TriggerManual, history[0].Trigger)
		assert.Equal(t, testNow, history[0].At)
	})

	t.Run("terminal_record_refuses_transitions", func(t *testing.T) {
		record := newTestTracking(t)
		require.NoError(t, record.ApplyTransition(tracking.StatusCancelled, tracking.TriggerManual, testNow))

		err := record.ApplyTransition(tracking.StatusHeadingToPickup, tracking.TriggerManual, testNow)

		require.ErrorIs(t, err, tracking.ErrTerminalState)
		assert.Equal(t, tracking.StatusCancelled, record.Status())
	})

	t.Run("rejects_invalid_trigger", func(t *testing.T) {
		record := newTestTracking(t)

		err := record.ApplyTransition(tracking.StatusHeadingToPickup, tracking.TriggerUnknown, testNow)

		require.Error(t, err)
		assert.Empty(t, record.History())
	})

	t.Run("history_copy_is_isolated", func(t *testing.T) {
		record := newTestTracking(t)
		require.NoError(t, record.ApplyTransition(tracking.StatusHeadingToPickup, tracking.TriggerManual, testNow))

		history := record.History()
		history[0].To = tracking.StatusDelivered

		assert.Equal(t, tracking.StatusHeadingToPickup, record.History()[0].To)
	})
}

func TestDeliveryTracking_UpdateLocation(t *testing.T) {
	t.Run("stores_first_sample", func(t *testing.T) {
		record := newTestTracking(t)
		sample := newTestSample(t, testNow)

		require.NoError(t, record.UpdateLocation(sample))

		require.NotNil(t, record.CurrentLocation())
		assert.Equal(t, testNow, record.CurrentLocation().CapturedAt())
	})

	t.Run("ignores_stale_sample", func(t *testing.T) {
		record := newTestTracking(t)
		require.NoError(t, record.UpdateLocation(newTestSample(t, testNow)))

		stale := newTestSample(t, testNow.Add(-time.Minute))
		require.NoError(t, record.UpdateLocation(stale))

		assert.Equal(t, testNow, record.CurrentLocation().CapturedAt())
	})

	t.Run("accepts_newer_sample", func(t *testing.T) {
		record := newTestTracking(t)
		require.NoError(t, record.UpdateLocation(newTestSample(t, testNow)))

		newer := newTestSample(t, testNow.Add(time.Minute))
		require.NoError(t, record.UpdateLocation(newer))

		assert.Equal(t, testNow.Add(time.Minute), record.CurrentLocation().CapturedAt())
	})

	t.Run("terminal_record_refuses_location_updates", func(t *testing.T) {
		record := newTestTracking(t)
		require.NoError(t, record.ApplyTransition(tracking.StatusCancelled, tracking.TriggerManual, testNow))

		err := record.UpdateLocation(newTestSample(t, testNow))

		require.ErrorIs(t, err, tracking.ErrTerminalState)
	})

	t.Run("rejects_unconstructed_sample", func(t *testing.T) {
		record := newTestTracking(t)

		err := record.UpdateLocation(kernel.LocationSample{})

		require.Error(t, err)
	})
}

func TestDeliveryTracking_Lock(t *testing.T) {
	ttl := 30 * time.Second

	t.Run("acquires_empty_lock", func(t *testing.T) {
		record := newTestTracking(t)
		opID := kernel.NewUUID()

		err := record.AcquireLock(opID, testNow.Add(ttl), testNow)

		require.NoError(t, err)
		require.NotNil(t, record.Lock())
		assert.True(t, record.Lock().OperationID.IsEqual(opID))
	})

	t.Run("live_lock_blocks_other_operations", func(t *testing.T) {
		record := newTestTracking(t)
		holder := kernel.NewUUID()
		require.NoError(t, record.AcquireLock(holder, testNow.Add(ttl), testNow))

		err := record.AcquireLock(kernel.NewUUID(), testNow.Add(ttl), testNow.Add(time.Second))

		require.ErrorIs(t, err, tracking.ErrOperationInProgress)
		assert.True(t, tracking.IsRetryable(err))
	})

	t.Run("expired_lock_is_taken_over", func(t *testing.T) {
		record := newTestTracking(t)
		require.NoError(t, record.AcquireLock(kernel.NewUUID(), testNow.Add(ttl), testNow))

		later := testNow.Add(ttl + time.Second)
		newOp := kernel.NewUUID()
		err := record.AcquireLock(newOp, later.Add(ttl), later)

		require.NoError(t, err)
		assert.True(t, record.Lock().OperationID.IsEqual(newOp))
	})

	t.Run("same_operation_refreshes_expiry", func(t *testing.T) {
		record := newTestTracking(t)
		opID := kernel.NewUUID()
		require.NoError(t, record.AcquireLock(opID, testNow.Add(ttl), testNow))

		err := record.AcquireLock(opID, testNow.Add(2*ttl), testNow.Add(time.Second))

		require.NoError(t, err)
		assert.Equal(t, testNow.Add(2*ttl), record.Lock().ExpiresAt)
	})

	t.Run("release_by_holder_clears_lock", func(t *testing.T) {
		record := newTestTracking(t)
		opID := kernel.NewUUID()
		require.NoError(t, record.AcquireLock(opID, testNow.Add(ttl), testNow))

		record.ReleaseLock(opID)

		assert.Nil(t, record.Lock())
	})

	t.Run("release_by_other_operation_is_noop", func(t *testing.T) {
		record := newTestTracking(t)
		opID := kernel.NewUUID()
		require.NoError(t, record.AcquireLock(opID, testNow.Add(ttl), testNow))

		record.ReleaseLock(kernel.NewUUID())

		require.NotNil(t, record.Lock())
	})
}

func TestDeliveryTracking_MarkCommitted(t *testing.T) {
	t.Run("bumps_version_and_records_operation", func(t *testing.T) {
		record := newTestTracking(t)
		opID := kernel.NewUUID()
		require.NoError(t, record.AcquireLock(opID, testNow.Add(time.Minute), testNow))

		err := record.MarkCommitted(opID, "Your courier is on the way to pick up the order.", testNow)

		require.NoError(t, err)
		assert.Equal(t, int64(1), record.Version())
		assert.Nil(t, record.Lock())
		require.NotNil(t, record.LastOperationID())
		assert.True(t, record.LastOperationID().IsEqual(opID))
		assert.NotEmpty(t, record.LastMessage())
		assert.Equal(t, testNow, record.UpdatedAt())
	})

	t.Run("replay_detection", func(t *testing.T) {
		record := newTestTracking(t)
		opID := kernel.NewUUID()
		require.NoError(t, record.MarkCommitted(opID, "msg", testNow))

		assert.True(t, record.IsReplay(opID))
		assert.False(t, record.IsReplay(kernel.NewUUID()))
	})
}

func TestRestoreDeliveryTracking(t *testing.T) {
	t.Run("restores_full_state", func(t *testing.T) {
		pickup, _ := kernel.NewGeoPoint(41.0082, 28.9784)
		dropoff, _ := kernel.NewGeoPoint(40.9923, 29.0275)
		opID := kernel.NewUUID()
		history := []tracking.TransitionRecord{
			{From: tracking.StatusAssigned, To: tracking.StatusHeadingToPickup, At: testNow, Trigger: tracking.TriggerManual},
		}

		record, err := tracking.RestoreDeliveryTracking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			tracking.StatusHeadingToPickup, 1,
			nil, &opID, "msg", nil,
			pickup, dropoff, history, testNow, testNow)

		require.NoError(t, err)
		assert.Equal(t, tracking.StatusHeadingToPickup, record.Status())
		assert.Equal(t, int64(1), record.Version())
		require.Len(t, record.History(), 1)
		assert.True(t, record.IsReplay(opID))
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		pickup, _ := kernel.NewGeoPoint(41.0082, 28.9784)
		dropoff, _ := kernel.NewGeoPoint(40.9923, 29.0275)

		_, err := tracking.RestoreDeliveryTracking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			tracking.StatusUnknown, 0,
			nil, nil, "", nil,
			pickup, dropoff, nil, testNow, testNow)

		require.Error(t, err)
	})

	t.Run("rejects_negative_version", func(t *testing.T) {
		pickup, _ := kernel.NewGeoPoint(41.0082, 28.9784)
		dropoff, _ := kernel.NewGeoPoint(40.9923, 29.0275)

		_, err := tracking.RestoreDeliveryTracking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			tracking.StatusAssigned, -1,
			nil, nil, "", nil,
			pickup, dropoff, nil, testNow, testNow)

		require.Error(t, err)
	})
}
