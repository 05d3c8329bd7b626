package commands

import (
	"errors"

	"takeout/internal/core/domain/model/kernel"
)

var ErrAutoAssignCourierCommandIsNotConstructed = errors.New(
	"AutoAssignCourierCommand must be created via NewAutoAssignCourierCommand constructor",
)

// AutoAssignCourierCommand requests automatic courier dispatch for a settled
// order. Finding nobody to assign is a valid outcome, not an error.
type AutoAssignCourierCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewAutoAssignCourierCommand creates a command to dispatch a courier.
func NewAutoAssignCourierCommand(orderID kernel.UUID) (AutoAssignCourierCommand, error) {
	cmd := AutoAssignCourierCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return AutoAssignCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAutoAssignCourierCommandIsNotConstructed if validation fails.
func (c AutoAssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignCourierCommandIsNotConstructed)
}

// OrderID returns the identifier of the order needing a courier.
func (c AutoAssignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *AutoAssignCourierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
