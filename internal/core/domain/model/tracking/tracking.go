package tracking

import (
	"errors"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

// ErrTrackingIsNotConstructed is returned when a DeliveryTracking instance was
// not created through NewDeliveryTracking or RestoreDeliveryTracking.
var ErrTrackingIsNotConstructed = errors.New(
	"DeliveryTracking must be created via NewDeliveryTracking or RestoreDeliveryTracking")

// Trigger identifies what caused a transition: a caller's explicit request or
// the geofence evaluator.
type Trigger int

const (
	// TriggerUnknown represents an invalid or undefined trigger.
	TriggerUnknown Trigger = iota

	// TriggerManual marks a transition explicitly requested by a caller.
	TriggerManual

	// TriggerAutomatic marks a transition proposed by the geofence evaluator.
	TriggerAutomatic
)

// String returns the wire name of the trigger.
func (t Trigger) String() string {
	switch t {
	case TriggerManual:
		return "manual"
	case TriggerAutomatic:
		return "automatic"
	default:
		return "unknown"
	}
}

// Validate checks if the Trigger is one of the enumerated kinds.
func (t Trigger) Validate() error {
	if t != TriggerManual && t != TriggerAutomatic {
		return errs.NewValueIsInvalidErrorWithCause("trigger",
			fmt.Errorf("%d is not a valid trigger", t))
	}
	return nil
}

// TriggerFromString parses a wire name produced by String.
func TriggerFromString(s string) (Trigger, error) {
	switch s {
	case "manual":
		return TriggerManual, nil
	case "automatic":
		return TriggerAutomatic, nil
	default:
		return TriggerUnknown, errs.NewValueIsInvalidErrorWithCause("trigger",
			fmt.Errorf("%q is not a valid trigger name", s))
	}
}

// TransitionRecord is one entry of the append-only transition history.
type TransitionRecord struct {
	From    Status
	To      Status
	At      time.Time
	Trigger Trigger
}

// OperationLock is the short-lived marker preventing a second concurrent
// commit on the record while one is in flight. It self-expires at ExpiresAt so
// a crashed writer cannot wedge the record permanently.
type OperationLock struct {
	OperationID kernel.UUID
	ExpiresAt   time.Time
}

// IsExpired reports whether the lock's time-to-live has elapsed at now.
func (l OperationLock) IsExpired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}

// DeliveryTracking is the aggregate root of the lifecycle engine: the single
// shared mutable resource, created when a courier accepts an order and mutated
// exclusively through the transition committer.
//
// Invariants:
//   - status transitions follow the TransitionPolicy
//   - version increments on every committed state-changing write
//   - no second transition commits while a non-expired lock is held by a
//     different operation
//   - terminal records (delivered, cancelled) refuse all mutation
//   - history is append-only
type DeliveryTracking struct {
	id        kernel.UUID
	orderID   kernel.UUID
	courierID kernel.UUID

	status  Status
	version int64

	lock            *OperationLock
	lastOperationID *kernel.UUID
	lastMessage     string

	currentLocation  *kernel.LocationSample
	pickupLocation   kernel.GeoPoint
	deliveryLocation kernel.GeoPoint

	history []TransitionRecord

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewDeliveryTracking creates a tracking record for a freshly accepted order.
// The record starts in StatusAssigned at version 0 with no location reported.
func NewDeliveryTracking(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	pickupLocation kernel.GeoPoint,
	deliveryLocation kernel.GeoPoint,
	now time.Time,
) (*DeliveryTracking, error) {
	t := &DeliveryTracking{
		status:        StatusAssigned,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setOrderID(orderID),
		t.setCourierID(courierID),
		t.setPickupLocation(pickupLocation),
		t.setDeliveryLocation(deliveryLocation),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreDeliveryTracking reconstructs an aggregate from persistence. All
// fields are validated; history is taken as-is (the store is append-only).
func RestoreDeliveryTracking(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	status Status,
	version int64,
	lock *OperationLock,
	lastOperationID *kernel.UUID,
	lastMessage string,
	currentLocation *kernel.LocationSample,
	pickupLocation kernel.GeoPoint,
	deliveryLocation kernel.GeoPoint,
	history []TransitionRecord,
	createdAt time.Time,
	updatedAt time.Time,
) (*DeliveryTracking, error) {
	t := &DeliveryTracking{
		version:         version,
		lock:            lock,
		lastOperationID: lastOperationID,
		lastMessage:     lastMessage,
		currentLocation: currentLocation,
		history:         history,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		isConstructed:   true,
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	t.status = status

	if version < 0 {
		return nil, errs.NewValueIsInvalidError("version")
	}

	if err := errors.Join(
		t.setID(id),
		t.setOrderID(orderID),
		t.setCourierID(courierID),
		t.setPickupLocation(pickupLocation),
		t.setDeliveryLocation(deliveryLocation),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate ensures the aggregate was created through a constructor.
func (t *DeliveryTracking) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTrackingIsNotConstructed
	}
	return nil
}

// ID returns the tracking record's unique identifier.
func (t *DeliveryTracking) ID() kernel.UUID {
	return t.id
}

// OrderID returns the identifier of the tracked order.
func (t *DeliveryTracking) OrderID() kernel.UUID {
	return t.orderID
}

// CourierID returns the identifier of the assigned courier.
func (t *DeliveryTracking) CourierID() kernel.UUID {
	return t.courierID
}

// Status returns the current lifecycle status.
func (t *DeliveryTracking) Status() Status {
	return t.status
}

// Version returns the optimistic-concurrency version.
func (t *DeliveryTracking) Version() int64 {
	return t.version
}

// Lock returns the current operation lock, or nil if none is set.
// The lock may already be expired; check IsExpired against a clock.
func (t *DeliveryTracking) Lock() *OperationLock {
	return t.lock
}

// LastOperationID returns the identifier of the most recently committed
// operation, or nil if nothing has committed yet.
func (t *DeliveryTracking) LastOperationID() *kernel.UUID {
	return t.lastOperationID
}

// LastMessage returns the notification message produced by the most recently
// committed operation. Empty for location-only writes.
func (t *DeliveryTracking) LastMessage() string {
	return t.lastMessage
}

// CurrentLocation returns the last validated location sample, or nil if the
// courier has never reported one.
func (t *DeliveryTracking) CurrentLocation() *kernel.LocationSample {
	return t.currentLocation
}

// PickupLocation returns the fixed pickup coordinates set at creation.
func (t *DeliveryTracking) PickupLocation() kernel.GeoPoint {
	return t.pickupLocation
}

// DeliveryLocation returns the fixed drop-off coordinates set at creation.
func (t *DeliveryTracking) DeliveryLocation() kernel.GeoPoint {
	return t.deliveryLocation
}

// History returns a copy of the append-only transition history in order.
func (t *DeliveryTracking) History() []TransitionRecord {
	history := make([]TransitionRecord, len(t.history))
	copy(history, t.history)
	return history
}

// CreatedAt returns the record creation time.
func (t *DeliveryTracking) CreatedAt() time.Time {
	return t.createdAt
}

// UpdatedAt returns the time of the last committed write.
func (t *DeliveryTracking) UpdatedAt() time.Time {
	return t.updatedAt
}

// IsTerminal reports whether the record has reached delivered or cancelled.
func (t *DeliveryTracking) IsTerminal() bool {
	return t.status.IsTerminal()
}

// IsReplay reports whether operationID matches the most recently committed
// operation, meaning a retried request must be answered with the stored result
// instead of being re-applied.
func (t *DeliveryTracking) IsReplay(operationID kernel.UUID) bool {
	return t.lastOperationID != nil && t.lastOperationID.IsEqual(operationID)
}

// ApplyTransition moves the record to the given status and appends a history
// entry. Legality against the policy must already have been established by the
// caller; this method only enforces the terminal-state invariant and basic
// validity. Version bookkeeping happens in MarkCommitted.
func (t *DeliveryTracking) ApplyTransition(to Status, trigger Trigger, at time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.status.IsTerminal() {
		return NewTerminalStateError(t.status)
	}
	if err := errors.Join(to.Validate(), trigger.Validate()); err != nil {
		return err
	}

	t.history = append(t.history, TransitionRecord{
		From:    t.status,
		To:      to,
		At:      at,
		Trigger: trigger,
	})
	t.status = to
	return nil
}

// UpdateLocation replaces the current location with a validated sample.
// Stale fixes (captured before the stored one) are ignored without error, so
// an out-of-order batch or a retried upload cannot move the courier backwards.
func (t *DeliveryTracking) UpdateLocation(sample kernel.LocationSample) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.status.IsTerminal() {
		return NewTerminalStateError(t.status)
	}
	if err := sample.Validate(); err != nil {
		return err
	}

	if t.currentLocation != nil && !sample.CapturedAt().After(t.currentLocation.CapturedAt()) {
		return nil
	}

	t.currentLocation = &sample
	return nil
}

// AcquireLock sets the operation lock if it is empty or expired. A live lock
// held by a different operation fails with OperationInProgressError; re-entry
// by the same operation refreshes the expiry.
func (t *DeliveryTracking) AcquireLock(operationID kernel.UUID, expiresAt time.Time, now time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := operationID.Validate(); err != nil {
		return err
	}

	if t.lock != nil && !t.lock.IsExpired(now) && !t.lock.OperationID.IsEqual(operationID) {
		return NewOperationInProgressError(t.lock.OperationID, t.lock.ExpiresAt)
	}

	t.lock = &OperationLock{OperationID: operationID, ExpiresAt: expiresAt}
	return nil
}

// ReleaseLock clears the operation lock if it is held by the given operation.
// Releasing a lock held by someone else is a no-op.
func (t *DeliveryTracking) ReleaseLock(operationID kernel.UUID) {
	if t.lock != nil && t.lock.OperationID.IsEqual(operationID) {
		t.lock = nil
	}
}

// MarkCommitted records a successful commit: increments the version, stores
// the operation id and result message for idempotent replay, clears the lock,
// and stamps the update time.
func (t *DeliveryTracking) MarkCommitted(operationID kernel.UUID, message string, at time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := operationID.Validate(); err != nil {
		return err
	}

	t.version++
	opID := operationID
	t.lastOperationID = &opID
	t.lastMessage = message
	t.lock = nil
	t.updatedAt = at
	return nil
}

func (t *DeliveryTracking) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *DeliveryTracking) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.orderID = id
	return nil
}

func (t *DeliveryTracking) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.courierID = id
	return nil
}

func (t *DeliveryTracking) setPickupLocation(p kernel.GeoPoint) error {
	if err := p.Validate(); err != nil {
		return err
	}
	t.pickupLocation = p
	return nil
}

func (t *DeliveryTracking) setDeliveryLocation(p kernel.GeoPoint) error {
	if err := p.Validate(); err != nil {
		return err
	}
	t.deliveryLocation = p
	return nil
}
