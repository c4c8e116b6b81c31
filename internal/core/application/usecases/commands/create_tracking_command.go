package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrCreateTrackingCommandIsNotConstructed = errors.New(
	"CreateTrackingCommand must be created via NewCreateTrackingCommand constructor",
)

// CreateTrackingCommand represents a request to open a tracking record for a
// courier assignment. Carries the order, the courier and the two fixed
// geofence anchors: the merchant pickup point and the customer drop-off point.
type CreateTrackingCommand struct { //nolint:recvcheck //using for validation
	trackingID       kernel.UUID
	orderID          kernel.UUID
	courierID        kernel.UUID
	pickupLocation   kernel.GeoPoint
	deliveryLocation kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCreateTrackingCommand creates a command to open a new tracking record.
// All identifiers and both geofence anchors must be valid.
func NewCreateTrackingCommand(trackingID kernel.UUID, orderID kernel.UUID, courierID kernel.UUID,
	pickupLocation kernel.GeoPoint, deliveryLocation kernel.GeoPoint) (CreateTrackingCommand, error) {
	cmd := CreateTrackingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingID(trackingID),
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
		cmd.setPickupLocation(pickupLocation),
		cmd.setDeliveryLocation(deliveryLocation),
	); err != nil {
		return CreateTrackingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateTrackingCommand) Validate() error {
	return c.guard.Validate(ErrCreateTrackingCommandIsNotConstructed)
}

// TrackingID returns the identifier for the new tracking record.
func (c CreateTrackingCommand) TrackingID() kernel.UUID {
	return c.trackingID
}

// OrderID returns the order being tracked.
func (c CreateTrackingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier assigned to the order.
func (c CreateTrackingCommand) CourierID() kernel.UUID {
	return c.courierID
}

// PickupLocation returns the merchant pickup point.
func (c CreateTrackingCommand) PickupLocation() kernel.GeoPoint {
	return c.pickupLocation
}

// DeliveryLocation returns the customer drop-off point.
func (c CreateTrackingCommand) DeliveryLocation() kernel.GeoPoint {
	return c.deliveryLocation
}

func (c *CreateTrackingCommand) setTrackingID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.trackingID = id
	return nil
}

func (c *CreateTrackingCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *CreateTrackingCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}

func (c *CreateTrackingCommand) setPickupLocation(p kernel.GeoPoint) error {
	if err := p.Validate(); err != nil {
		return err
	}

	c.pickupLocation = p
	return nil
}

func (c *CreateTrackingCommand) setDeliveryLocation(p kernel.GeoPoint) error {
	if err := p.Validate(); err != nil {
		return err
	}

	c.deliveryLocation = p
	return nil
}
