package ledgerrepo

import (
	"context"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/payment"

	"gorm.io/gorm"
)

// GormLedgerRepository implements ports.LedgerRepository using GORM.
type GormLedgerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB, tracker aggregateTracker) *GormLedgerRepository {
	return &GormLedgerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Append inserts a new ledger entry. Entries are immutable, there is no
// update path.
func (r *GormLedgerRepository) Append(ctx context.Context, entry *payment.LedgerEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

// GetByOrder retrieves every entry recorded for an order, oldest first.
func (r *GormLedgerRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.LedgerEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []LedgerEntryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at asc").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*payment.LedgerEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
