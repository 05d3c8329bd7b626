package queries

import (
	"context"
	"time"

	"takeout/internal/core/domain/model/courier"
	"takeout/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllCouriersQueryHandler retrieves all courier information from the
// database. Uses direct SQL queries for optimal read performance in the CQRS
// pattern.
type GetAllCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllCouriersQueryHandler creates a handler for courier retrieval
// queries. Requires a GORM database connection for query execution.
func NewGetAllCouriersQueryHandler(db *gorm.DB) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{db: db}
}

// Handle executes the query to retrieve all couriers.
// Returns a slice of courier read models sorted by name.
func (h GetAllCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCouriersQuery,
) ([]GetAllCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]GetAllCouriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			status,
			current_load,
			lat,
			lng,
			location_updated_at
		FROM couriers
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetAllCouriersQueryResponse
		var id uuid.UUID
		var status int
		var lat, lng *float64
		var locationUpdatedAt *time.Time

		err = rows.Scan(&id, &item.Name, &status, &item.CurrentLoad, &lat, &lng, &locationUpdatedAt)
		if err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = courierID
		item.Status = courier.Status(status).String()
		item.LocationUpdatedAt = locationUpdatedAt

		if lat != nil && lng != nil {
			location, locErr := kernel.NewGeoPoint(*lat, *lng)
			if locErr != nil {
				return nil, locErr
			}
			item.Location = &location
		}

		couriers = append(couriers, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
