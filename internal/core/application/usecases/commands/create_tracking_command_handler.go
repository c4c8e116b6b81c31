package commands

import (
	"context"

	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/ports"
)

// CreateTrackingCommandHandler handles the business logic for opening a
// tracking record. Every record starts in the accepted-assignment status at
// version zero; all later changes go through the mutation pipeline.
type CreateTrackingCommandHandler struct {
	uowFactory TrackingUoWFactory
	clock      ports.Clock
}

// NewCreateTrackingCommandHandler creates a handler for tracking creation.
func NewCreateTrackingCommandHandler(uowFactory TrackingUoWFactory, clock ports.Clock) CreateTrackingCommandHandler {
	return CreateTrackingCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the tracking creation command.
// Uses a transaction to ensure the record is properly persisted or rolled
// back on error.
func (h *CreateTrackingCommandHandler) Handle(ctx context.Context, cmd CreateTrackingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	t, err := tracking.NewDeliveryTracking(
		cmd.TrackingID(),
		cmd.OrderID(),
		cmd.CourierID(),
		cmd.PickupLocation(),
		cmd.DeliveryLocation(),
		h.clock.Now(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TrackingRepository().Add(ctx, t); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
