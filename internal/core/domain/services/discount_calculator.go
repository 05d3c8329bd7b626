package services

import (
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/payment"
)

// DiscountCalculator is a domain service that resolves the discount for a new
// order from the restaurant's full-reduction promotions.
type DiscountCalculator struct{}

// NewDiscountCalculator creates a new DiscountCalculator instance.
func NewDiscountCalculator() DiscountCalculator {
	return DiscountCalculator{}
}

// BestFullReduction picks the single largest applicable discount: among rules
// active at the given time whose threshold the pre-discount total reaches, the
// biggest discount wins. Rules never stack. The result is capped at the total
// so the charged amount cannot go negative.
func (DiscountCalculator) BestFullReduction(promotions []*payment.Promotion,
	total kernel.Money, now time.Time) kernel.Money {
	var best kernel.Money

	for _, p := range promotions {
		if p == nil || p.Validate() != nil {
			continue
		}
		if !p.IsActiveAt(now) || !p.AppliesTo(total) {
			continue
		}
		if p.Discount() > best {
			best = p.Discount()
		}
	}

	return best.Min(total)
}
