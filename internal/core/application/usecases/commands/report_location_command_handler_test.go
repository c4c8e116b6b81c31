package commands_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/domain/services"
)

func ptr(v float64) *float64 { return &v }

func sampleAt(t *testing.T, lat float64, lng float64, capturedAt time.Time) kernel.LocationSample {
	t.Helper()
	sample, err := kernel.NewLocationSample(kernel.RawLocationSample{
		Latitude:   ptr(lat),
		Longitude:  ptr(lng),
		CapturedAt: capturedAt,
	})
	require.NoError(t, err)
	return sample
}

func newReportHandler(store *memStore, clock *fakeClock, throttle *fakeThrottle,
	publisher *fakePublisher) commands.ReportLocationCommandHandler {
	committer := commands.NewCommitter(memUoWFactory{store: store}, clock, time.Minute)
	evaluator, _ := services.NewDefaultGeofenceEvaluator()
	transitions := commands.NewRequestTransitionCommandHandler(
		committer, tracking.DefaultTransitionPolicy(), publisher, clock, slog.Default())

	return commands.NewReportLocationCommandHandler(
		committer, evaluator, throttle, transitions, slog.Default(), 15*time.Second)
}

func TestReportLocationCommandHandler_Handle_Heartbeat(t *testing.T) {
	ctx := t.Context()
	clock := newFakeClock()
	store := newMemStore(clock)
	record := seedTracking(t, store, clock)

	h := newReportHandler(store, clock, &fakeThrottle{}, &fakePublisher{})

	cmd, err := commands.NewReportLocationCommand(record.ID(), kernel.NewUUID(), nil)
	require.NoError(t, err)
	require.NoError(t, h.Handle(ctx, cmd))

	stored, err := memRepo{store: store}.Get(ctx, record.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.Version())
	assert.Nil(t, stored.CurrentLocation())
}

func TestReportLocationCommandHandler_Handle_AcceptsSample(t *testing.T) {
	ctx := t.Context()
	clock := newFakeClock()
	store := newMemStore(clock)
	record := seedTracking(t, store, clock)
	throttle := &fakeThrottle{}

	h := newReportHandler(store, clock, throttle, &fakePublisher{})

	// Far from both geofences.
	sample := sampleAt(t, 55.700000, 37.500000, clock.Now())
	cmd, err := commands.NewReportLocationCommand(record.ID(), kernel.NewUUID(), &sample)
	require.NoError(t, err)
	require.NoError(t, h.Handle(ctx, cmd))

	stored, err := memRepo{store: store}.Get(ctx, record.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Version())
	require.NotNil(t, stored.CurrentLocation())
	assert.InDelta(t, 55.7, stored.CurrentLocation().Point().Latitude(), 1e-9)
	assert.Equal(t, tracking.StatusAssigned, stored.Status())

	// Out of zone clears any pending arrival confirmations.
	assert.ElementsMatch(t,
		[]tracking.Action{tracking.ActionArrivePickup, tracking.ActionArriveDelivery},
		throttle.resetCalls())
}

func TestReportLocationCommandHandler_Handle_GeofenceFiresAutomaticTransition(t *testing.T) {
	ctx := t.Context()
	clock := newFakeClock()
	store := newMemStore(clock)
	record := seedTracking(t, store, clock)
	publisher := &fakePublisher{}
	throttle := &fakeThrottle{confirm: true, allow: true}

	h := newReportHandler(store, clock, throttle, publisher)

	// Right on the pickup point.
	sample := sampleAt(t, record.PickupLocation().Latitude(), record.PickupLocation().Longitude(), clock.Now())
	cmd, err := commands.NewReportLocationCommand(record.ID(), kernel.NewUUID(), &sample)
	require.NoError(t, err)
	require.NoError(t, h.Handle(ctx, cmd))

	stored, err := memRepo{store: store}.Get(ctx, record.ID())
	require.NoError(t, err)
	assert.Equal(t, tracking.StatusAtPickup, stored.Status())
	// One version for the location commit, one for the automatic transition.
	assert.Equal(t, int64(2), stored.Version())
	require.Len(t, stored.History(), 1)
	assert.Equal(t, tracking.TriggerAutomatic, stored.History()[0].Trigger)
	assert.Len(t, publisher.published(), 2)
}

func TestReportLocationCommandHandler_Handle_UnconfirmedSignalDoesNotTransition(t *testing.T) {
	ctx := t.Context()
	clock := newFakeClock()
	store := newMemStore(clock)
	record := seedTracking(t, store, clock)
	throttle := &fakeThrottle{confirm: false, allow: true}

	h := newReportHandler(store, clock, throttle, &fakePublisher{})

	sample := sampleAt(t, record.PickupLocation().Latitude(), record.PickupLocation().Longitude(), clock.Now())
	cmd, err := commands.NewReportLocationCommand(record.ID(), kernel.NewUUID(), &sample)
	require.NoError(t, err)
	require.NoError(t, h.Handle(ctx, cmd))

	stored, err := memRepo{store: store}.Get(ctx, record.ID())
	require.NoError(t, err)
	assert.Equal(t, tracking.StatusAssigned, stored.Status())
	assert.Equal(t, int64(1), stored.Version())
}

func TestReportLocationCommandHandler_Handle_DebouncedSignalDoesNotTransition(t *testing.T) {
	ctx := t.Context()
	clock := newFakeClock()
	store := newMemStore(clock)
	record := seedTracking(t, store, clock)
	throttle := &fakeThrottle{confirm: true, allow: false}

	h := newReportHandler(store, clock, throttle, &fakePublisher{})

	sample := sampleAt(t, record.PickupLocation().Latitude(), record.PickupLocation().Longitude(), clock.Now())
	cmd, err := commands.NewReportLocationCommand(record.ID(), kernel.NewUUID(), &sample)
	require.NoError(t, err)
	require.NoError(t, h.Handle(ctx, cmd))

	stored, err := memRepo{store: store}.Get(ctx, record.ID())
	require.NoError(t, err)
	assert.Equal(t, tracking.StatusAssigned, stored.Status())
}

func TestReportLocationCommandHandler_Handle_StaleSampleKeepsNewestFix(t *testing.T) {
	ctx := t.Context()
	clock := newFakeClock()
	store := newMemStore(clock)
	record := seedTracking(t, store, clock)

	h := newReportHandler(store, clock, &fakeThrottle{}, &fakePublisher{})

	newest := sampleAt(t, 55.700000, 37.500000, clock.Now())
	cmd, err := commands.NewReportLocationCommand(record.ID(), kernel.NewUUID(), &newest)
	require.NoError(t, err)
	require.NoError(t, h.Handle(ctx, cmd))

	stale := sampleAt(t, 55.600000, 37.400000, clock.Now().Add(-time.Minute))
	cmd, err = commands.NewReportLocationCommand(record.ID(), kernel.NewUUID(), &stale)
	require.NoError(t, err)
	require.NoError(t, h.Handle(ctx, cmd))

	stored, err := memRepo{store: store}.Get(ctx, record.ID())
	require.NoError(t, err)
	assert.InDelta(t, 55.7, stored.CurrentLocation().Point().Latitude(), 1e-9)
}

func TestReportLocationCommandHandler_Handle_TerminalRecordRejectsSample(t *testing.T) {
	ctx := t.Context()
	clock := newFakeClock()
	store := newMemStore(clock)
	record := seedTracking(t, store, clock)
	publisher := &fakePublisher{}

	cancelHandler := newTransitionHandler(store, clock, publisher)
	cancel, err := commands.NewRequestTransitionCommand(record.ID(), kernel.NewUUID(),
		tracking.ActionCancel, tracking.RoleAdmin, 0, tracking.TriggerManual)
	require.NoError(t, err)
	require.NoError(t, cancelHandler.Handle(ctx, cancel))

	h := newReportHandler(store, clock, &fakeThrottle{}, publisher)

	sample := sampleAt(t, 55.700000, 37.500000, clock.Now())
	cmd, err := commands.NewReportLocationCommand(record.ID(), kernel.NewUUID(), &sample)
	require.NoError(t, err)

	err = h.Handle(ctx, cmd)
	require.Error(t, err)

	var terminal *tracking.TerminalStateError
	assert.ErrorAs(t, err, &terminal)
}
