package commands_test

import (
	"context"
	"sync"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

// fakeClock is a manually advanced ports.Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// memStore is an in-memory tracking store with the same version and lock
// guarantees the SQL repository provides. Handlers exercise the full
// mutation pipeline against it without a database.
type memStore struct {
	mu      sync.Mutex
	clock   *fakeClock
	records map[string]*tracking.DeliveryTracking
}

func newMemStore(clock *fakeClock) *memStore {
	return &memStore{
		clock:   clock,
		records: make(map[string]*tracking.DeliveryTracking),
	}
}

func cloneTracking(t *tracking.DeliveryTracking) *tracking.DeliveryTracking {
	history := append([]tracking.TransitionRecord(nil), t.History()...)

	var lock *tracking.OperationLock
	if t.Lock() != nil {
		l := *t.Lock()
		lock = &l
	}

	var lastOp *kernel.UUID
	if t.LastOperationID() != nil {
		u := *t.LastOperationID()
		lastOp = &u
	}

	var location *kernel.LocationSample
	if t.CurrentLocation() != nil {
		s := *t.CurrentLocation()
		location = &s
	}

	clone, err := tracking.RestoreDeliveryTracking(
		t.ID(), t.OrderID(), t.CourierID(), t.Status(), t.Version(),
		lock, lastOp, t.LastMessage(), location,
		t.PickupLocation(), t.DeliveryLocation(), history,
		t.CreatedAt(), t.UpdatedAt(),
	)
	if err != nil {
		panic(err)
	}
	return clone
}

func (s *memStore) get(id kernel.UUID) (*tracking.DeliveryTracking, error) {
	stored, ok := s.records[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("trackingId", id.String())
	}
	return stored, nil
}

type memRepo struct {
	store *memStore
}

func (r memRepo) Add(_ context.Context, t *tracking.DeliveryTracking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.records[t.ID().String()]; ok {
		return errs.NewValueIsInvalidError("trackingId")
	}

	r.store.records[t.ID().String()] = cloneTracking(t)
	return nil
}

func (r memRepo) Get(_ context.Context, id kernel.UUID) (*tracking.DeliveryTracking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, err := r.store.get(id)
	if err != nil {
		return nil, err
	}
	return cloneTracking(stored), nil
}

func (r memRepo) GetActive(_ context.Context) ([]*tracking.DeliveryTracking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var active []*tracking.DeliveryTracking
	for _, stored := range r.store.records {
		if !stored.IsTerminal() {
			active = append(active, cloneTracking(stored))
		}
	}
	return active, nil
}

func (r memRepo) AcquireLock(_ context.Context, id kernel.UUID, operationID kernel.UUID,
	expectedVersion int64, expiresAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, err := r.store.get(id)
	if err != nil {
		return err
	}
	if stored.Version() != expectedVersion {
		return tracking.NewVersionConflictError(expectedVersion, stored.Version())
	}

	return stored.AcquireLock(operationID, expiresAt, r.store.clock.Now())
}

func (r memRepo) CommitMutation(_ context.Context, t *tracking.DeliveryTracking,
	operationID kernel.UUID, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, err := r.store.get(t.ID())
	if err != nil {
		return err
	}
	if stored.Version() != expectedVersion {
		return tracking.NewVersionConflictError(expectedVersion, stored.Version())
	}
	if stored.Lock() != nil && !stored.Lock().OperationID.IsEqual(operationID) {
		return tracking.NewOperationInProgressError(stored.Lock().OperationID, stored.Lock().ExpiresAt)
	}

	r.store.records[t.ID().String()] = cloneTracking(t)
	return nil
}

func (r memRepo) ReleaseLock(_ context.Context, id kernel.UUID, operationID kernel.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, err := r.store.get(id)
	if err != nil {
		return err
	}

	stored.ReleaseLock(operationID)
	return nil
}

func (r memRepo) ReleaseExpiredLocks(_ context.Context, now time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var released int64
	for _, stored := range r.store.records {
		if stored.Lock() != nil && stored.Lock().IsExpired(now) {
			stored.ReleaseLock(stored.Lock().OperationID)
			released++
		}
	}
	return released, nil
}

type memUoW struct {
	store *memStore
}

func (u memUoW) Begin(_ context.Context) error    { return nil }
func (u memUoW) Commit(_ context.Context) error   { return nil }
func (u memUoW) Rollback(_ context.Context) error { return nil }

func (u memUoW) TrackingRepository() ports.TrackingRepository {
	return memRepo{store: u.store}
}

type memUoWFactory struct {
	store *memStore
}

func (f memUoWFactory) Create() commands.TrackingUoW {
	return memUoW{store: f.store}
}

type publishedNote struct {
	recipient  tracking.Role
	trackingID kernel.UUID
	message    string
}

type fakePublisher struct {
	mu    sync.Mutex
	notes []publishedNote
	err   error
}

func (p *fakePublisher) Publish(_ context.Context, recipient tracking.Role,
	trackingID kernel.UUID, message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}

	p.notes = append(p.notes, publishedNote{recipient: recipient, trackingID: trackingID, message: message})
	return nil
}

func (p *fakePublisher) published() []publishedNote {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedNote(nil), p.notes...)
}

// fakeThrottle answers Confirm and Allow with fixed verdicts and records
// Reset calls.
type fakeThrottle struct {
	mu      sync.Mutex
	confirm bool
	allow   bool
	err     error
	resets  []tracking.Action
}

func (f *fakeThrottle) Confirm(_ context.Context, _ kernel.UUID, _ tracking.Action,
	_ time.Time) (bool, error) {
	return f.confirm, f.err
}

func (f *fakeThrottle) Allow(_ context.Context, _ kernel.UUID, _ time.Duration) (bool, error) {
	return f.allow, f.err
}

func (f *fakeThrottle) Reset(_ context.Context, _ kernel.UUID, action tracking.Action) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, action)
	return f.err
}

func (f *fakeThrottle) resetCalls() []tracking.Action {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tracking.Action(nil), f.resets...)
}
