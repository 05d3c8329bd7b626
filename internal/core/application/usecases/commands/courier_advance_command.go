package commands

import (
	"errors"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
)

var ErrCourierAdvanceCommandIsNotConstructed = errors.New(
	"CourierAdvanceCommand must be created via NewCourierAdvanceCommand constructor",
)

// CourierAdvanceCommand represents a courier reporting delivery progress on
// an order assigned to them: starting the delivery or completing it.
type CourierAdvanceCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	next      order.Status

	guard kernel.ConstructorGuard
}

// NewCourierAdvanceCommand creates a command for a courier's status report.
// The target status is validated for shape here; whether the transition is
// permitted for this courier and order is decided by the aggregate.
func NewCourierAdvanceCommand(orderID, courierID kernel.UUID, next order.Status) (CourierAdvanceCommand, error) {
	cmd := CourierAdvanceCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
		cmd.setNext(next),
	); err != nil {
		return CourierAdvanceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCourierAdvanceCommandIsNotConstructed if validation fails.
func (c CourierAdvanceCommand) Validate() error {
	return c.guard.Validate(ErrCourierAdvanceCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being advanced.
func (c CourierAdvanceCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the identifier of the reporting courier.
func (c CourierAdvanceCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Next returns the requested target status.
func (c CourierAdvanceCommand) Next() order.Status {
	return c.next
}

func (c *CourierAdvanceCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CourierAdvanceCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *CourierAdvanceCommand) setNext(next order.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	c.next = next
	return nil
}
