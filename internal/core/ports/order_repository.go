// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, commission rate lookup and
// route estimation. These interfaces enable dependency inversion and
// testability.
package ports

import (
	"context"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns a NotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row for the duration of
	// the surrounding transaction, serializing concurrent claims of the same
	// order. Must be called inside an active unit of work.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetHallOrders retrieves settled orders waiting for a courier, oldest
	// first. This feeds the pickup hall where couriers claim work.
	GetHallOrders(ctx context.Context) ([]*order.Order, error)

	// GetStaleUnpaid retrieves identifiers of unpaid orders created before
	// the cutoff, for the payment timeout sweep.
	GetStaleUnpaid(ctx context.Context, cutoff time.Time) ([]kernel.UUID, error)

	// GetStalePaidUnassigned retrieves identifiers of settled, unassigned
	// orders paid before the cutoff, for the assignment sweeps.
	GetStalePaidUnassigned(ctx context.Context, cutoff time.Time) ([]kernel.UUID, error)
}
