package orderrepo

import (
	"context"
	"errors"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves an existing order to the database. All columns are written so
// fields cleared in the domain (a released courier, a zeroed commission) are
// cleared in storage too.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewNotFoundError("orderId", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves an order and locks its row until the surrounding
// transaction ends. Concurrent claims of the same order serialize on this
// lock.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, true)
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)
	if forUpdate {
		tx = tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	var dto OrderDTO
	if err := tx.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("orderId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetHallOrders retrieves settled orders waiting for a courier, oldest first.
func (r *GormOrderRepository) GetHallOrders(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND pay_status = ? AND courier_id IS NULL",
			int(order.StatusPaid), int(order.PayPaid)).
		Order("created_at asc").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetStaleUnpaid retrieves identifiers of unpaid orders created before the
// cutoff.
func (r *GormOrderRepository) GetStaleUnpaid(ctx context.Context, cutoff time.Time) ([]kernel.UUID, error) {
	return r.getIDs(ctx, r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("status = ? AND pay_status = ? AND created_at < ?",
			int(order.StatusCreated), int(order.PayUnpaid), cutoff).
		Order("created_at asc"))
}

// GetStalePaidUnassigned retrieves identifiers of settled, unassigned orders
// paid before the cutoff.
func (r *GormOrderRepository) GetStalePaidUnassigned(ctx context.Context, cutoff time.Time) ([]kernel.UUID, error) {
	return r.getIDs(ctx, r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("status = ? AND pay_status = ? AND courier_id IS NULL AND paid_at < ?",
			int(order.StatusPaid), int(order.PayPaid), cutoff).
		Order("paid_at asc"))
}

func (r *GormOrderRepository) getIDs(_ context.Context, query *gorm.DB) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := query.Pluck("id", &raw).Error; err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, b := range raw {
		id, err := kernel.UUIDFromBytes(b[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
