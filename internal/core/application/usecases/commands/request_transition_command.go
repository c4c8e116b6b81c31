package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/pkg/guard"
)

var (
	ErrRequestTransitionCommandIsNotConstructed = errors.New(
		"RequestTransitionCommand must be created via NewRequestTransitionCommand constructor",
	)
	ErrExpectedVersionIsInvalid = errors.New(
		"expected version must be non-negative or UseCurrentVersion",
	)
)

// RequestTransitionCommand represents a request to move a tracking record
// through its lifecycle. The caller states who they are (role), what they
// want to happen (action), which version of the record they saw
// (expectedVersion) and a client-generated operation id that makes retries
// idempotent.
type RequestTransitionCommand struct { //nolint:recvcheck //using for validation
	trackingID      kernel.UUID
	operationID     kernel.UUID
	action          tracking.Action
	role            tracking.Role
	expectedVersion int64
	trigger         tracking.Trigger

	guard guard.ConstructorGuard
}

// NewRequestTransitionCommand creates a transition request. expectedVersion
// must be non-negative or UseCurrentVersion.
func NewRequestTransitionCommand(trackingID kernel.UUID, operationID kernel.UUID,
	action tracking.Action, role tracking.Role, expectedVersion int64,
	trigger tracking.Trigger) (RequestTransitionCommand, error) {
	cmd := RequestTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingID(trackingID),
		cmd.setOperationID(operationID),
		cmd.setAction(action),
		cmd.setRole(role),
		cmd.setExpectedVersion(expectedVersion),
		cmd.setTrigger(trigger),
	); err != nil {
		return RequestTransitionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRequestTransitionCommandIsNotConstructed)
}

// TrackingID returns the record to transition.
func (c RequestTransitionCommand) TrackingID() kernel.UUID {
	return c.trackingID
}

// OperationID returns the client-generated idempotency key.
func (c RequestTransitionCommand) OperationID() kernel.UUID {
	return c.operationID
}

// Action returns the requested lifecycle action.
func (c RequestTransitionCommand) Action() tracking.Action {
	return c.action
}

// Role returns the caller's role used for transition gating.
func (c RequestTransitionCommand) Role() tracking.Role {
	return c.role
}

// ExpectedVersion returns the record version the caller observed.
func (c RequestTransitionCommand) ExpectedVersion() int64 {
	return c.expectedVersion
}

// Trigger returns whether the transition is manual or automatic.
func (c RequestTransitionCommand) Trigger() tracking.Trigger {
	return c.trigger
}

func (c *RequestTransitionCommand) setTrackingID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.trackingID = id
	return nil
}

func (c *RequestTransitionCommand) setOperationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.operationID = id
	return nil
}

func (c *RequestTransitionCommand) setAction(action tracking.Action) error {
	if err := action.Validate(); err != nil {
		return err
	}

	c.action = action
	return nil
}

func (c *RequestTransitionCommand) setRole(role tracking.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}

func (c *RequestTransitionCommand) setExpectedVersion(version int64) error {
	if version < 0 && version != UseCurrentVersion {
		return ErrExpectedVersionIsInvalid
	}

	c.expectedVersion = version
	return nil
}

func (c *RequestTransitionCommand) setTrigger(trigger tracking.Trigger) error {
	if err := trigger.Validate(); err != nil {
		return err
	}

	c.trigger = trigger
	return nil
}
