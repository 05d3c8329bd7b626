package commands

import (
	"errors"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to place a new order.
// Encapsulates the buyer, the restaurant, the order value and the delivery
// destination. The discount is not part of the command: active promotions are
// resolved by the handler at creation time.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customerID, restaurantID, total, destination)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, promotions, services.NewDiscountCalculator())
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID
	totalAmount  kernel.Money
	destination  order.Destination

	guard kernel.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates the identifiers and the destination. Returns an error if any
// validation fails.
func NewCreateOrderCommand(
	orderID, customerID, restaurantID kernel.UUID,
	totalAmount kernel.Money,
	destination order.Destination,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setDestination(destination),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.totalAmount = totalAmount
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the buyer placing the order.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// RestaurantID returns the identifier of the restaurant fulfilling the order.
func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// TotalAmount returns the pre-discount order value.
func (c CreateOrderCommand) TotalAmount() kernel.Money {
	return c.totalAmount
}

// Destination returns the delivery destination.
func (c CreateOrderCommand) Destination() order.Destination {
	return c.destination
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setDestination(destination order.Destination) error {
	if err := destination.Validate(); err != nil {
		return err
	}

	c.destination = destination
	return nil
}
