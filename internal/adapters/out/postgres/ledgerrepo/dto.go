// Package ledgerrepo persists the append-only ledger of money movements.
package ledgerrepo

import (
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

// LedgerEntryDTO represents the database structure for ledger entries.
// Rows are inserted once and never updated.
type LedgerEntryDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;index"`
	EntryType   int        `gorm:"not null"`
	AmountCents int64      `gorm:"not null"`
	Method      string     `gorm:"size:32"`
	ActorRole   string     `gorm:"size:16;not null"`
	ActorID     *uuid.UUID `gorm:"type:uuid"`
	Status      int        `gorm:"not null"`
	Note        string     `gorm:"size:255"`
	CreatedAt   time.Time  `gorm:"index"`
}

// TableName specifies the database table name for ledger entries.
func (LedgerEntryDTO) TableName() string {
	return "payment_ledger"
}

// fromDomain converts a ledger entry to its database representation.
func fromDomain(entry *payment.LedgerEntry) LedgerEntryDTO {
	var actorID *uuid.UUID
	if id := entry.ActorID(); id != nil {
		raw := id.Bytes()
		actorID = &raw
	}

	return LedgerEntryDTO{
		ID:          entry.ID().Bytes(),
		OrderID:     entry.OrderID().Bytes(),
		EntryType:   int(entry.Type()),
		AmountCents: entry.Amount().Cents(),
		Method:      entry.Method(),
		ActorRole:   entry.ActorRole(),
		ActorID:     actorID,
		Status:      int(entry.Status()),
		Note:        entry.Note(),
		CreatedAt:   entry.CreatedAt(),
	}
}

// toDomain converts a database DTO to a ledger entry.
func toDomain(dto LedgerEntryDTO) (*payment.LedgerEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var actorID *kernel.UUID
	if dto.ActorID != nil {
		aID, actorErr := kernel.UUIDFromBytes((*dto.ActorID)[:])
		if actorErr != nil {
			return nil, actorErr
		}
		actorID = &aID
	}

	return payment.NewLedgerEntry(id, orderID, payment.EntryType(dto.EntryType),
		kernel.Money(dto.AmountCents), dto.Method, dto.ActorRole, actorID,
		payment.EntryStatus(dto.Status), dto.Note, dto.CreatedAt)
}
