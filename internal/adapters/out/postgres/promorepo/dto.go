// Package promorepo persists restaurant full-reduction promotions and
// restaurant commission rate overrides, the read-side inputs of order
// creation and settlement.
package promorepo

import (
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

// PromotionDTO represents the database structure for full-reduction rules.
type PromotionDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID   uuid.UUID `gorm:"type:uuid;index"`
	ThresholdCents int64     `gorm:"not null"`
	DiscountCents  int64     `gorm:"not null"`
	StartsAt       time.Time `gorm:"not null"`
	EndsAt         time.Time `gorm:"not null"`
	Enabled        bool      `gorm:"not null;default:true"`
}

// TableName specifies the database table name for promotions.
func (PromotionDTO) TableName() string {
	return "promotions"
}

// RestaurantRateDTO stores a per-restaurant commission rate override in basis
// points. Restaurants without a row use the platform default.
type RestaurantRateDTO struct {
	RestaurantID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	RateBasisPoints int64     `gorm:"not null"`
}

// TableName specifies the database table name for commission rate overrides.
func (RestaurantRateDTO) TableName() string {
	return "restaurant_commission_rates"
}

// toDomain converts a database DTO to a promotion.
func toDomain(dto PromotionDTO) (*payment.Promotion, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	return payment.NewPromotion(id, restaurantID,
		kernel.Money(dto.ThresholdCents), kernel.Money(dto.DiscountCents),
		dto.StartsAt, dto.EndsAt, dto.Enabled)
}
