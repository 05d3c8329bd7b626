package commands

import (
	"errors"

	"takeout/internal/core/domain/model/kernel"
)

var ErrCourierPickupCommandIsNotConstructed = errors.New(
	"CourierPickupCommand must be created via NewCourierPickupCommand constructor",
)

// CourierPickupCommand represents a courier claiming an order from the
// pickup hall for themselves. Claims race: when two couriers grab the same
// order the first one wins and the other receives a conflict.
type CourierPickupCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewCourierPickupCommand creates a command for a courier claiming an order.
func NewCourierPickupCommand(orderID, courierID kernel.UUID) (CourierPickupCommand, error) {
	cmd := CourierPickupCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
	); err != nil {
		return CourierPickupCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCourierPickupCommandIsNotConstructed if validation fails.
func (c CourierPickupCommand) Validate() error {
	return c.guard.Validate(ErrCourierPickupCommandIsNotConstructed)
}

// OrderID returns the identifier of the claimed order.
func (c CourierPickupCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the identifier of the claiming courier.
func (c CourierPickupCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *CourierPickupCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CourierPickupCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
