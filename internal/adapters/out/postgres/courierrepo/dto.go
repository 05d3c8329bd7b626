// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence, converting between the courier domain aggregate
// and its database representation.
package courierrepo

import (
	"time"

	"takeout/internal/core/domain/model/courier"
	"takeout/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier
// aggregates. Indexed for the dispatch pool query, which filters by status
// and orders by workload.
type CourierDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"size:64;not null"`
	Phone             string    `gorm:"size:32;not null"`
	Status            int       `gorm:"index:idx_couriers_dispatch"`
	CurrentLoad       int       `gorm:"index:idx_couriers_dispatch;not null;default:0"`
	Lat               *float64
	Lng               *float64
	LocationUpdatedAt *time.Time
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database
// representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	dto := CourierDTO{
		ID:                aggregate.ID().Bytes(),
		Name:              aggregate.Name(),
		Phone:             aggregate.Phone(),
		Status:            int(aggregate.Status()),
		CurrentLoad:       aggregate.CurrentLoad(),
		LocationUpdatedAt: aggregate.LocationUpdatedAt(),
	}

	if location := aggregate.Location(); location != nil {
		lat, lng := location.Lat(), location.Lng()
		dto.Lat = &lat
		dto.Lng = &lng
	}

	return dto
}

// toDomain converts a database DTO to a courier domain aggregate using
// RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return courier.RestoreCourier(id, dto.Name, dto.Phone,
		courier.Status(dto.Status), dto.CurrentLoad, location, dto.LocationUpdatedAt)
}
