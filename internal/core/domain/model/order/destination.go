package order

import (
	"errors"
	"strings"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"
)

// ErrDestinationIsNotConstructed is returned when a Destination was not
// created through the NewDestination constructor.
var ErrDestinationIsNotConstructed = errors.New("Destination must be created via NewDestination constructor")

// Destination describes where an order is delivered. The street address and
// recipient contact are required; geographic coordinates are optional because
// not every address can be geocoded at order time. Components that need
// coordinates (dispatch scoring, route estimation) must handle their absence.
type Destination struct {
	// coords is the geocoded delivery point, nil when unknown
	coords *kernel.GeoPoint

	// address is the street address as entered by the customer
	address string

	// contactName is the recipient's name
	contactName string

	// contactPhone is the recipient's phone number
	contactPhone string

	guard kernel.ConstructorGuard
}

// NewDestination creates a validated Destination. Pass nil coords when the
// address has no known geocoding.
func NewDestination(coords *kernel.GeoPoint, address, contactName, contactPhone string) (Destination, error) {
	if coords != nil {
		if err := coords.Validate(); err != nil {
			return Destination{}, err
		}
	}

	if strings.TrimSpace(address) == "" {
		return Destination{}, errs.NewValidationError("address")
	}
	if strings.TrimSpace(contactName) == "" {
		return Destination{}, errs.NewValidationError("contactName")
	}
	if strings.TrimSpace(contactPhone) == "" {
		return Destination{}, errs.NewValidationError("contactPhone")
	}

	return Destination{
		coords:       coords,
		address:      address,
		contactName:  contactName,
		contactPhone: contactPhone,
		guard:        kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Destination was created via NewDestination.
func (d Destination) Validate() error {
	return d.guard.Validate(ErrDestinationIsNotConstructed)
}

// Coords returns the geocoded delivery point, or nil when the address was
// never geocoded.
func (d Destination) Coords() *kernel.GeoPoint {
	return d.coords
}

// Address returns the street address.
func (d Destination) Address() string {
	return d.address
}

// ContactName returns the recipient's name.
func (d Destination) ContactName() string {
	return d.contactName
}

// ContactPhone returns the recipient's phone number.
func (d Destination) ContactPhone() string {
	return d.contactPhone
}
