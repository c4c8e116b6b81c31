package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrReportLocationBatchCommandIsNotConstructed = errors.New(
	"ReportLocationBatchCommand must be created via NewReportLocationBatchCommand constructor",
)

// ReportLocationBatchCommand represents a buffered upload of raw position
// fixes from a courier device that was offline. Samples are carried raw:
// devices produce garbage under bad reception, and a batch with a few broken
// fixes must not lose the good ones.
type ReportLocationBatchCommand struct { //nolint:recvcheck //using for validation
	trackingID kernel.UUID
	samples    []kernel.RawLocationSample

	guard guard.ConstructorGuard
}

// NewReportLocationBatchCommand creates a batch report command. An empty
// batch is valid and is a no-op.
func NewReportLocationBatchCommand(trackingID kernel.UUID,
	samples []kernel.RawLocationSample) (ReportLocationBatchCommand, error) {
	cmd := ReportLocationBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setTrackingID(trackingID); err != nil {
		return ReportLocationBatchCommand{}, err
	}

	cmd.samples = make([]kernel.RawLocationSample, len(samples))
	copy(cmd.samples, samples)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportLocationBatchCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationBatchCommandIsNotConstructed)
}

// TrackingID returns the record the batch belongs to.
func (c ReportLocationBatchCommand) TrackingID() kernel.UUID {
	return c.trackingID
}

// Samples returns the raw fixes in upload order.
func (c ReportLocationBatchCommand) Samples() []kernel.RawLocationSample {
	return c.samples
}

func (c *ReportLocationBatchCommand) setTrackingID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.trackingID = id
	return nil
}
