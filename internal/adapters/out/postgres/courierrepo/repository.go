package courierrepo

import (
	"context"
	"errors"

	"takeout/internal/core/domain/model/courier"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCourierRepository implements ports.CourierRepository using GORM.
type GormCourierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new courier to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing courier to the database. The workload column is
// deliberately left out: concurrent assignments adjust it through
// IncrementLoad and DecrementLoad, and a full-row write would overwrite their
// counts.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CourierDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "phone", "status", "lat", "lng", "location_updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewNotFoundError("courierId", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a courier by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("courierId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every courier ordered by name.
func (r *GormCourierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	var dtos []CourierDTO
	if err := r.db.WithContext(ctx).Order("name asc").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAssignable retrieves the dispatch pool: active couriers, least busy
// first, ties broken by identifier for a stable order.
func (r *GormCourierRepository) GetAssignable(ctx context.Context) ([]*courier.Courier, error) {
	var dtos []CourierDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", int(courier.StatusActive)).
		Order("current_load asc, id asc").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// IncrementLoad atomically adds one carried order to the courier's workload.
func (r *GormCourierRepository) IncrementLoad(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&CourierDTO{}).
		Where("id = ?", id.Bytes()).
		UpdateColumn("current_load", gorm.Expr("current_load + 1"))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewNotFoundError("courierId", id.String())
	}

	return nil
}

// DecrementLoad atomically releases one carried order, flooring the workload
// at zero. A missing courier is a no-op so releasing after courier removal
// never fails a business operation.
func (r *GormCourierRepository) DecrementLoad(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&CourierDTO{}).
		Where("id = ?", id.Bytes()).
		UpdateColumn("current_load", gorm.Expr("GREATEST(current_load - 1, 0)")).
		Error
}

func toDomainSlice(dtos []CourierDTO) ([]*courier.Courier, error) {
	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, c)
	}
	return couriers, nil
}
