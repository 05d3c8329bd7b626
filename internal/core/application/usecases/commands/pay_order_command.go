package commands

import (
	"errors"

	"takeout/internal/core/domain/model/kernel"
)

var (
	ErrPayOrderCommandIsNotConstructed = errors.New(
		"PayOrderCommand must be created via NewPayOrderCommand constructor",
	)
	ErrPayMethodIsRequired = errors.New("payment method is required")
	ErrActorRoleIsRequired = errors.New("actor role is required")
)

// PayOrderCommand represents a settlement confirmation for an order.
// Carries the payment method and provider transaction reference alongside the
// actor recorded in the ledger. Settlement is idempotent: replaying the
// command for an already paid order succeeds without side effects.
type PayOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	method        string
	transactionID string
	actorRole     string
	actorID       *kernel.UUID

	guard kernel.ConstructorGuard
}

// NewPayOrderCommand creates a command to settle an order.
// The transaction reference may be empty for cash-like methods; the actor
// identifier is optional for system-initiated settlements.
func NewPayOrderCommand(
	orderID kernel.UUID,
	method, transactionID string,
	actorRole string,
	actorID *kernel.UUID,
) (PayOrderCommand, error) {
	cmd := PayOrderCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setMethod(method),
		cmd.setActorRole(actorRole),
	); err != nil {
		return PayOrderCommand{}, err
	}

	cmd.transactionID = transactionID
	cmd.actorID = actorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPayOrderCommandIsNotConstructed if validation fails.
func (c PayOrderCommand) Validate() error {
	return c.guard.Validate(ErrPayOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being settled.
func (c PayOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Method returns the payment method used.
func (c PayOrderCommand) Method() string {
	return c.method
}

// TransactionID returns the provider transaction reference, possibly empty.
func (c PayOrderCommand) TransactionID() string {
	return c.transactionID
}

// ActorRole returns the role recorded in the payment ledger.
func (c PayOrderCommand) ActorRole() string {
	return c.actorRole
}

// ActorID returns the optional identifier of the acting party.
func (c PayOrderCommand) ActorID() *kernel.UUID {
	return c.actorID
}

func (c *PayOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PayOrderCommand) setMethod(method string) error {
	if method == "" {
		return ErrPayMethodIsRequired
	}

	c.method = method
	return nil
}

func (c *PayOrderCommand) setActorRole(actorRole string) error {
	if actorRole == "" {
		return ErrActorRoleIsRequired
	}

	c.actorRole = actorRole
	return nil
}
