package queries

import (
	"errors"
	"time"

	"takeout/internal/core/domain/model/kernel"
)

var ErrGetAllCouriersQueryIsNotConstructed = errors.New(
	"GetAllCouriersQuery must be created via NewGetAllCouriersQuery constructor",
)

// GetAllCouriersQuery retrieves information about all couriers in the system.
// Returns courier identities, availability, workload and last known position
// for monitoring and dispatching.
type GetAllCouriersQuery struct {
	guard kernel.ConstructorGuard
}

// NewGetAllCouriersQuery creates a query to retrieve all couriers.
// This is a parameterless query that fetches the complete courier list.
func NewGetAllCouriersQuery() GetAllCouriersQuery {
	return GetAllCouriersQuery{guard: kernel.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllCouriersQueryIsNotConstructed if validation fails.
func (q GetAllCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllCouriersQueryIsNotConstructed)
}

// GetAllCouriersQueryResponse represents courier information in the read
// model. Location is nil for couriers that have never reported a position.
type GetAllCouriersQueryResponse struct {
	ID                kernel.UUID
	Name              string
	Status            string
	CurrentLoad       int
	Location          *kernel.GeoPoint
	LocationUpdatedAt *time.Time
}
