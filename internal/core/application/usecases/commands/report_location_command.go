package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand represents a single courier position report. A nil
// sample is a valid heartbeat: the device checked in but had no fix, so the
// report is accepted without touching the record.
type ReportLocationCommand struct { //nolint:recvcheck //using for validation
	trackingID  kernel.UUID
	operationID kernel.UUID
	sample      *kernel.LocationSample

	guard guard.ConstructorGuard
}

// NewReportLocationCommand creates a location report command. The sample may
// be nil; a non-nil sample must be valid.
func NewReportLocationCommand(trackingID kernel.UUID, operationID kernel.UUID,
	sample *kernel.LocationSample) (ReportLocationCommand, error) {
	cmd := ReportLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingID(trackingID),
		cmd.setOperationID(operationID),
		cmd.setSample(sample),
	); err != nil {
		return ReportLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

// TrackingID returns the record the report belongs to.
func (c ReportLocationCommand) TrackingID() kernel.UUID {
	return c.trackingID
}

// OperationID returns the client-generated idempotency key.
func (c ReportLocationCommand) OperationID() kernel.UUID {
	return c.operationID
}

// Sample returns the reported fix, or nil for a heartbeat.
func (c ReportLocationCommand) Sample() *kernel.LocationSample {
	return c.sample
}

func (c *ReportLocationCommand) setTrackingID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.trackingID = id
	return nil
}

func (c *ReportLocationCommand) setOperationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.operationID = id
	return nil
}

func (c *ReportLocationCommand) setSample(sample *kernel.LocationSample) error {
	if sample == nil {
		return nil
	}
	if err := sample.Validate(); err != nil {
		return err
	}

	c.sample = sample
	return nil
}
