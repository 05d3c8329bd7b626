package courier

import (
	"errors"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier
	// without a name.
	ErrNameIsRequired = errs.NewValidationError("name")
	// ErrPhoneIsRequired is returned when attempting to create a courier
	// without a phone number.
	ErrPhoneIsRequired = errs.NewValidationError("phone")
	// ErrCourierIsNotConstructed is returned when using an improperly
	// initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery courier in the system. It is an aggregate
// root that manages courier identity, dispatch eligibility, current workload
// and the last reported position.
//
// Business rules:
//   - Courier must have a valid UUID, non-empty name and phone
//   - Only ACTIVE couriers are eligible for dispatch
//   - Workload counts concurrently carried orders and never goes negative
//   - Location is optional until the courier first reports a position
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// phone is the courier's contact number
	phone string
	// status controls dispatch eligibility
	status Status
	// currentLoad counts orders the courier is carrying right now
	currentLoad int
	// location is the last reported position, nil before the first report
	location *kernel.GeoPoint
	// locationUpdatedAt is when the position was last reported
	locationUpdatedAt *time.Time
	// guard ensures the courier was properly constructed
	guard kernel.ConstructorGuard
}

// NewCourier creates a new active Courier with zero workload and no known
// position. This is the only way to create a fresh Courier instance.
func NewCourier(id kernel.UUID, name, phone string) (*Courier, error) {
	courier := &Courier{
		status: StatusActive,
		guard:  kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage,
// including its workload and last reported position.
func RestoreCourier(id kernel.UUID, name, phone string, status Status,
	currentLoad int, location *kernel.GeoPoint, locationUpdatedAt *time.Time) (*Courier, error) {
	courier := &Courier{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setPhone(phone),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if currentLoad < 0 {
		return nil, errs.NewValidationError("currentLoad")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
	}

	courier.status = status
	courier.currentLoad = currentLoad
	courier.location = location
	courier.locationUpdatedAt = locationUpdatedAt

	return courier, nil
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// Validate checks if the Courier was properly constructed.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the unique identifier of the courier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the human-readable name of the courier.
func (c *Courier) Name() string {
	return c.name
}

// Phone returns the courier's contact number.
func (c *Courier) Phone() string {
	return c.phone
}

// Status returns the dispatch eligibility status.
func (c *Courier) Status() Status {
	return c.status
}

// IsActive reports whether the courier is eligible for dispatch.
func (c *Courier) IsActive() bool {
	return c.status == StatusActive
}

// CurrentLoad returns the number of orders the courier is carrying.
func (c *Courier) CurrentLoad() int {
	return c.currentLoad
}

// Location returns the last reported position, or nil before the first
// report.
func (c *Courier) Location() *kernel.GeoPoint {
	return c.location
}

// LocationUpdatedAt returns when the position was last reported.
func (c *Courier) LocationUpdatedAt() *time.Time {
	return c.locationUpdatedAt
}

// Activate makes the courier eligible for dispatch.
func (c *Courier) Activate() {
	c.status = StatusActive
}

// Disable excludes the courier from dispatch. Orders already in delivery
// stay with the courier.
func (c *Courier) Disable() {
	c.status = StatusDisabled
}

// IncrementLoad records one more carried order.
func (c *Courier) IncrementLoad() {
	c.currentLoad++
}

// DecrementLoad records one released order, never dropping below zero.
func (c *Courier) DecrementLoad() {
	if c.currentLoad > 0 {
		c.currentLoad--
	}
}

// UpdateLocation stores a newly reported position with its report time.
func (c *Courier) UpdateLocation(location kernel.GeoPoint, now time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = &location
	reportedAt := now
	c.locationUpdatedAt = &reportedAt
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *Courier) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}

	c.phone = phone
	return nil
}
