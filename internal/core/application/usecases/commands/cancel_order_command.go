package commands

import (
	"errors"

	"takeout/internal/core/domain/model/kernel"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to cancel an order.
// Customers may only cancel their own orders and only before delivery
// starts; paid orders are refunded as part of the cancellation.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	reason    string
	actorRole string
	actorID   *kernel.UUID

	guard kernel.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
// The reason may be empty, in which case a default system reason is stored.
// The actor identifier is required for customer-initiated cancellations and
// optional otherwise.
func NewCancelOrderCommand(
	orderID kernel.UUID,
	reason, actorRole string,
	actorID *kernel.UUID,
) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorRole(actorRole),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	cmd.reason = reason
	cmd.actorID = actorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelOrderCommandIsNotConstructed if validation fails.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being canceled.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the cancellation reason supplied by the actor.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

// ActorRole returns the role of the party requesting cancellation.
func (c CancelOrderCommand) ActorRole() string {
	return c.actorRole
}

// ActorID returns the optional identifier of the acting party.
func (c CancelOrderCommand) ActorID() *kernel.UUID {
	return c.actorID
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setActorRole(actorRole string) error {
	if actorRole == "" {
		return ErrActorRoleIsRequired
	}

	c.actorRole = actorRole
	return nil
}
