package promorepo

import (
	"context"
	"errors"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/payment"

	"gorm.io/gorm"
)

// GormPromotionRepository implements ports.PromotionRepository using GORM.
// Promotions are read-side data for order creation; they are managed outside
// the order flow, so the repository only reads.
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewGormPromotionRepository creates a new GORM promotion repository.
func NewGormPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// GetActiveFullReduction retrieves the restaurant's rules enabled and inside
// their window at the given time.
func (r *GormPromotionRepository) GetActiveFullReduction(ctx context.Context,
	restaurantID kernel.UUID, at time.Time) ([]*payment.Promotion, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PromotionDTO
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND enabled AND starts_at <= ? AND ends_at > ?",
			restaurantID.Bytes(), at, at).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	promotions := make([]*payment.Promotion, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		promotions = append(promotions, p)
	}

	return promotions, nil
}

// GormCommissionRateSource implements ports.CommissionRateSource: restaurant
// overrides come from the database, everything else uses the configured
// platform default.
type GormCommissionRateSource struct {
	db          *gorm.DB
	defaultRate kernel.Rate
}

// NewGormCommissionRateSource creates a rate source with the given platform
// default.
func NewGormCommissionRateSource(db *gorm.DB, defaultRate kernel.Rate) *GormCommissionRateSource {
	return &GormCommissionRateSource{db: db, defaultRate: defaultRate}
}

// RestaurantRate returns the restaurant's configured override, or false when
// none exists.
func (s *GormCommissionRateSource) RestaurantRate(ctx context.Context,
	restaurantID kernel.UUID) (kernel.Rate, bool, error) {
	if err := restaurantID.Validate(); err != nil {
		return 0, false, err
	}

	var dto RestaurantRateDTO
	err := s.db.WithContext(ctx).First(&dto, "restaurant_id = ?", restaurantID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	rate, err := kernel.NewRate(dto.RateBasisPoints)
	if err != nil {
		return 0, false, err
	}

	return rate, true, nil
}

// PlatformDefaultRate returns the rate applied when no override exists.
func (s *GormCommissionRateSource) PlatformDefaultRate() kernel.Rate {
	return s.defaultRate
}
