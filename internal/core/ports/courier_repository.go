package ports

import (
	"context"

	"takeout/internal/core/domain/model/courier"
	"takeout/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate. Workload is
	// deliberately excluded: use IncrementLoad/DecrementLoad so concurrent
	// assignments never overwrite each other's counts.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	// Returns a NotFoundError when no such courier exists.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAll retrieves every courier, for operator views.
	GetAll(ctx context.Context) ([]*courier.Courier, error)

	// GetAssignable retrieves the dispatch pool: ACTIVE couriers ordered by
	// current workload ascending, then by identifier for a stable order.
	GetAssignable(ctx context.Context) ([]*courier.Courier, error)

	// IncrementLoad atomically adds one carried order to the courier's
	// workload with a single SQL statement.
	IncrementLoad(ctx context.Context, id kernel.UUID) error

	// DecrementLoad atomically releases one carried order, flooring the
	// workload at zero. Unknown couriers are a no-op.
	DecrementLoad(ctx context.Context, id kernel.UUID) error
}
