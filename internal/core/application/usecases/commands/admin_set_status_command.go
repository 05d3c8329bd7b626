package commands

import (
	"errors"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
)

var ErrAdminSetStatusCommandIsNotConstructed = errors.New(
	"AdminSetStatusCommand must be created via NewAdminSetStatusCommand constructor",
)

// AdminSetStatusCommand represents an operator forcing an order into a given
// lifecycle status. Terminal orders stay immutable; forcing a paid order to
// CANCELED triggers the refund path.
type AdminSetStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	next    order.Status
	actorID *kernel.UUID

	guard kernel.ConstructorGuard
}

// NewAdminSetStatusCommand creates a command for an operator status override.
// The operator identifier is optional and only recorded in refund ledger
// entries.
func NewAdminSetStatusCommand(orderID kernel.UUID, next order.Status, actorID *kernel.UUID) (AdminSetStatusCommand, error) {
	cmd := AdminSetStatusCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNext(next),
	); err != nil {
		return AdminSetStatusCommand{}, err
	}

	cmd.actorID = actorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdminSetStatusCommandIsNotConstructed if validation fails.
func (c AdminSetStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdminSetStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being overridden.
func (c AdminSetStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Next returns the requested target status.
func (c AdminSetStatusCommand) Next() order.Status {
	return c.next
}

// ActorID returns the optional identifier of the operator.
func (c AdminSetStatusCommand) ActorID() *kernel.UUID {
	return c.actorID
}

func (c *AdminSetStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdminSetStatusCommand) setNext(next order.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	c.next = next
	return nil
}
