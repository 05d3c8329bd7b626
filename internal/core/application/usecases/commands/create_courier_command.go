package commands

import (
	"errors"

	"takeout/internal/core/domain/model/kernel"
)

var (
	ErrCreateCourierCommandIsNotConstructed = errors.New(
		"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
	)
	ErrCourierNameIsRequired  = errors.New("courier name is required")
	ErrCourierPhoneIsRequired = errors.New("courier phone is required")
)

// CreateCourierCommand represents a request to register a new courier.
// New couriers start ACTIVE with an empty workload and no known location.
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	name      string
	phone     string

	guard kernel.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a courier.
func NewCreateCourierCommand(courierID kernel.UUID, name, phone string) (CreateCourierCommand, error) {
	cmd := CreateCourierCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setName(name),
		cmd.setPhone(phone),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateCourierCommandIsNotConstructed if validation fails.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID returns the unique identifier for the courier.
func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the courier's display name.
func (c CreateCourierCommand) Name() string {
	return c.name
}

// Phone returns the courier's contact phone.
func (c CreateCourierCommand) Phone() string {
	return c.phone
}

func (c *CreateCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *CreateCourierCommand) setName(name string) error {
	if name == "" {
		return ErrCourierNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateCourierCommand) setPhone(phone string) error {
	if phone == "" {
		return ErrCourierPhoneIsRequired
	}

	c.phone = phone
	return nil
}
