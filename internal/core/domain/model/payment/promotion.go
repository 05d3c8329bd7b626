package payment

import (
	"errors"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"
)

// ErrPromotionIsNotConstructed is returned when a Promotion was not created
// through the NewPromotion constructor.
var ErrPromotionIsNotConstructed = errors.New("Promotion must be created via NewPromotion constructor")

// Promotion is a full-reduction rule published by a restaurant: orders whose
// pre-discount total reaches the threshold get a fixed amount off. Rules have
// an active window and can be switched off without deleting them.
type Promotion struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	threshold    kernel.Money
	discount     kernel.Money
	startsAt     time.Time
	endsAt       time.Time
	enabled      bool
	guard        kernel.ConstructorGuard
}

// NewPromotion creates a full-reduction rule. The window must be non-empty
// and the discount positive.
func NewPromotion(id, restaurantID kernel.UUID, threshold, discount kernel.Money,
	startsAt, endsAt time.Time, enabled bool) (*Promotion, error) {
	if err := errors.Join(
		id.Validate(),
		restaurantID.Validate(),
	); err != nil {
		return nil, err
	}
	if discount.IsZero() {
		return nil, errs.NewValidationError("discount")
	}
	if !endsAt.After(startsAt) {
		return nil, errs.NewValidationError("promotion window")
	}

	return &Promotion{
		id:           id,
		restaurantID: restaurantID,
		threshold:    threshold,
		discount:     discount,
		startsAt:     startsAt,
		endsAt:       endsAt,
		enabled:      enabled,
		guard:        kernel.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Promotion was properly constructed.
func (p *Promotion) Validate() error {
	if p == nil {
		return ErrPromotionIsNotConstructed
	}
	return p.guard.Validate(ErrPromotionIsNotConstructed)
}

// ID returns the promotion's unique identifier.
func (p *Promotion) ID() kernel.UUID {
	return p.id
}

// RestaurantID returns the restaurant that published the rule.
func (p *Promotion) RestaurantID() kernel.UUID {
	return p.restaurantID
}

// Threshold returns the minimum pre-discount total for the rule to apply.
func (p *Promotion) Threshold() kernel.Money {
	return p.threshold
}

// Discount returns the fixed amount taken off when the rule applies.
func (p *Promotion) Discount() kernel.Money {
	return p.discount
}

// StartsAt returns the start of the active window.
func (p *Promotion) StartsAt() time.Time {
	return p.startsAt
}

// EndsAt returns the end of the active window.
func (p *Promotion) EndsAt() time.Time {
	return p.endsAt
}

// IsEnabled reports whether the rule is switched on.
func (p *Promotion) IsEnabled() bool {
	return p.enabled
}

// IsActiveAt reports whether the rule is switched on and inside its window.
func (p *Promotion) IsActiveAt(now time.Time) bool {
	return p.enabled && !now.Before(p.startsAt) && now.Before(p.endsAt)
}

// AppliesTo reports whether an order total reaches the rule's threshold.
func (p *Promotion) AppliesTo(total kernel.Money) bool {
	return total >= p.threshold
}
