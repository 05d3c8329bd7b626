package commands

import (
	"errors"

	"takeout/internal/core/domain/model/kernel"
)

var ErrUpdateCourierLocationCommandIsNotConstructed = errors.New(
	"UpdateCourierLocationCommand must be created via NewUpdateCourierLocationCommand constructor",
)

// UpdateCourierLocationCommand represents a courier position report.
// Fresh positions feed dispatch scoring and route estimates.
type UpdateCourierLocationCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	location  kernel.GeoPoint

	guard kernel.ConstructorGuard
}

// NewUpdateCourierLocationCommand creates a command carrying a courier's
// reported position.
func NewUpdateCourierLocationCommand(courierID kernel.UUID, location kernel.GeoPoint) (UpdateCourierLocationCommand, error) {
	cmd := UpdateCourierLocationCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setLocation(location),
	); err != nil {
		return UpdateCourierLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateCourierLocationCommandIsNotConstructed if validation fails.
func (c UpdateCourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierLocationCommandIsNotConstructed)
}

// CourierID returns the identifier of the reporting courier.
func (c UpdateCourierLocationCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Location returns the reported position.
func (c UpdateCourierLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *UpdateCourierLocationCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *UpdateCourierLocationCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
