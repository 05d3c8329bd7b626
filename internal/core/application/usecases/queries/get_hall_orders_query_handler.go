package queries

import (
	"context"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetHallOrdersQueryHandler reads the pickup hall directly from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type GetHallOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetHallOrdersQueryHandler creates a handler for pickup hall queries.
// Requires a GORM database connection for query execution.
func NewGetHallOrdersQueryHandler(db *gorm.DB) GetHallOrdersQueryHandler {
	return GetHallOrdersQueryHandler{db: db}
}

// Handle executes the query. Returns claimable orders oldest first so the
// hall drains fairly.
func (h GetHallOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetHallOrdersQuery,
) ([]GetHallOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	hall := make([]GetHallOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			dest_address,
			pay_cents,
			created_at
		FROM orders
		WHERE status = ? AND pay_status = ? AND courier_id IS NULL
		ORDER BY created_at
	`, int(order.StatusPaid), int(order.PayPaid)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetHallOrdersQueryResponse
		var id uuid.UUID
		var payCents int64

		if err = rows.Scan(&id, &item.Address, &payCents, &item.CreatedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = orderID

		amount, moneyErr := kernel.NewMoney(payCents)
		if moneyErr != nil {
			return nil, moneyErr
		}
		item.PayAmount = amount

		hall = append(hall, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return hall, nil
}
