package tracking

import (
	"errors"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/kernel"
)

// Sentinel errors for the domain-specific failure kinds of the lifecycle
// engine. Callers classify with errors.Is. IllegalTransition and TerminalState
// are never retryable; VersionConflict and OperationInProgress are retryable
// after a short backoff (see IsRetryable).
var (
	ErrIllegalTransition   = errors.New("illegal transition")
	ErrTerminalState       = errors.New("tracking record is in terminal state")
	ErrVersionConflict     = errors.New("version conflict")
	ErrOperationInProgress = errors.New("operation in progress")
)

// IsRetryable reports whether the caller may retry the failed operation after
// a short backoff (after re-reading the record in the version-conflict case).
func IsRetryable(err error) bool {
	return errors.Is(err, ErrVersionConflict) || errors.Is(err, ErrOperationInProgress)
}

// IllegalTransitionError indicates that an action is not permitted for the
// caller's role in the record's current status. The record is left unchanged.
type IllegalTransitionError struct {
	From   Status
	Action Action
	Role   Role
}

// NewIllegalTransitionError creates an IllegalTransitionError for the given
// (status, action, role) triple.
func NewIllegalTransitionError(from Status, action Action, role Role) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, Action: action, Role: role}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: action %s is not allowed for role %s in status %s",
		ErrIllegalTransition, e.Action, e.Role, e.From)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// TerminalStateError indicates that the record has reached delivered or
// cancelled and refuses any further mutation.
type TerminalStateError struct {
	Status Status
}

// NewTerminalStateError creates a TerminalStateError for the given status.
func NewTerminalStateError(status Status) *TerminalStateError {
	return &TerminalStateError{Status: status}
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTerminalState, e.Status)
}

func (e *TerminalStateError) Unwrap() error {
	return ErrTerminalState
}

// VersionConflictError indicates a lost optimistic-concurrency race: the
// caller's observed version no longer matches the stored one. The caller must
// re-read the record and retry.
type VersionConflictError struct {
	Expected int64
	Actual   int64
}

// NewVersionConflictError creates a VersionConflictError with the version the
// caller expected and the version actually stored.
func NewVersionConflictError(expected int64, actual int64) *VersionConflictError {
	return &VersionConflictError{Expected: expected, Actual: actual}
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s: expected version %d, stored version is %d",
		ErrVersionConflict, e.Expected, e.Actual)
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}

// OperationInProgressError indicates that a live operation lock is held by a
// different operation. The caller may retry after a short backoff; the lock
// self-expires at ExpiresAt.
type OperationInProgressError struct {
	HeldBy    kernel.UUID
	ExpiresAt time.Time
}

// NewOperationInProgressError creates an OperationInProgressError naming the
// holding operation and its expiry.
func NewOperationInProgressError(heldBy kernel.UUID, expiresAt time.Time) *OperationInProgressError {
	return &OperationInProgressError{HeldBy: heldBy, ExpiresAt: expiresAt}
}

func (e *OperationInProgressError) Error() string {
	return fmt.Sprintf("%s: lock held by operation %s until %s",
		ErrOperationInProgress, e.HeldBy, e.ExpiresAt.Format(time.RFC3339))
}

func (e *OperationInProgressError) Unwrap() error {
	return ErrOperationInProgress
}
