// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"takeout/internal/core/domain/model/kernel"
)

var ErrGetHallOrdersQueryIsNotConstructed = errors.New(
	"GetHallOrdersQuery must be created via NewGetHallOrdersQuery constructor",
)

// GetHallOrdersQuery retrieves the pickup hall: settled orders still waiting
// for a courier, oldest first.
type GetHallOrdersQuery struct {
	guard kernel.ConstructorGuard
}

// NewGetHallOrdersQuery creates a query for the pickup hall listing.
func NewGetHallOrdersQuery() GetHallOrdersQuery {
	return GetHallOrdersQuery{guard: kernel.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetHallOrdersQueryIsNotConstructed if validation fails.
func (q GetHallOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetHallOrdersQueryIsNotConstructed)
}

// GetHallOrdersQueryResponse is one order a courier can claim.
type GetHallOrdersQueryResponse struct {
	ID        kernel.UUID
	Address   string
	PayAmount kernel.Money
	CreatedAt time.Time
}
