package ports

import (
	"context"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/payment"
)

// LedgerRepository is the append-only store of money movements.
type LedgerRepository interface {
	// Append persists a new ledger entry. Entries are never updated or
	// deleted.
	Append(ctx context.Context, entry *payment.LedgerEntry) error

	// GetByOrder retrieves every entry recorded for an order, oldest first.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.LedgerEntry, error)
}

// PromotionRepository provides the full-reduction rules used for discounts.
type PromotionRepository interface {
	// GetActiveFullReduction retrieves the restaurant's rules enabled and
	// inside their window at the given time.
	GetActiveFullReduction(ctx context.Context, restaurantID kernel.UUID, at time.Time) ([]*payment.Promotion, error)
}

// CommissionRateSource resolves the platform commission rate for a
// restaurant.
type CommissionRateSource interface {
	// RestaurantRate returns a restaurant-specific rate override. The second
	// result is false when the restaurant has no override configured.
	RestaurantRate(ctx context.Context, restaurantID kernel.UUID) (kernel.Rate, bool, error)

	// PlatformDefaultRate returns the rate applied when no override exists.
	PlatformDefaultRate() kernel.Rate
}
