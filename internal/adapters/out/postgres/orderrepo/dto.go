// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// domain aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Money amounts are stored as integer cents. Indexed for the hall view and
// the reconciliation sweeps, which query by status pair and timestamps.
type OrderDTO struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID      `gorm:"type:uuid;index"`
	RestaurantID     uuid.UUID      `gorm:"type:uuid;index"`
	CourierID        *uuid.UUID     `gorm:"type:uuid;index"`
	TotalCents       int64          `gorm:"not null"`
	DiscountCents    int64          `gorm:"not null"`
	PayCents         int64          `gorm:"not null"`
	CommissionCents  *int64
	Status           int            `gorm:"index:idx_orders_lifecycle"`
	PayStatus        int            `gorm:"index:idx_orders_lifecycle"`
	Destination      DestinationDTO `gorm:"embedded;embeddedPrefix:dest_"`
	CancelReason     string         `gorm:"size:255"`
	PayMethod        string         `gorm:"size:32"`
	PayTransactionID string         `gorm:"size:128"`
	CreatedAt        time.Time      `gorm:"index"`
	PaidAt           *time.Time     `gorm:"index"`
	FinishedAt       *time.Time
	RefundedAt       *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// DestinationDTO represents the embedded delivery destination within the
// order table. Coordinates are nullable because not every address is
// geocoded.
type DestinationDTO struct {
	Lat          *float64
	Lng          *float64
	Address      string `gorm:"size:255"`
	ContactName  string `gorm:"size:64"`
	ContactPhone string `gorm:"size:32"`
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	var commissionCents *int64
	if commission := aggregate.CommissionAmount(); commission != nil {
		cents := commission.Cents()
		commissionCents = &cents
	}

	dest := aggregate.Destination()
	destDTO := DestinationDTO{
		Address:      dest.Address(),
		ContactName:  dest.ContactName(),
		ContactPhone: dest.ContactPhone(),
	}
	if coords := dest.Coords(); coords != nil {
		lat, lng := coords.Lat(), coords.Lng()
		destDTO.Lat = &lat
		destDTO.Lng = &lng
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		CustomerID:       aggregate.CustomerID().Bytes(),
		RestaurantID:     aggregate.RestaurantID().Bytes(),
		CourierID:        courierID,
		TotalCents:       aggregate.TotalAmount().Cents(),
		DiscountCents:    aggregate.DiscountAmount().Cents(),
		PayCents:         aggregate.PayAmount().Cents(),
		CommissionCents:  commissionCents,
		Status:           int(aggregate.Status()),
		PayStatus:        int(aggregate.PayStatus()),
		Destination:      destDTO,
		CancelReason:     aggregate.CancelReason(),
		PayMethod:        aggregate.PayMethod(),
		PayTransactionID: aggregate.PayTransactionID(),
		CreatedAt:        aggregate.CreatedAt(),
		PaidAt:           aggregate.PaidAt(),
		FinishedAt:       aggregate.FinishedAt(),
		RefundedAt:       aggregate.RefundedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	var coords *kernel.GeoPoint
	if dto.Destination.Lat != nil && dto.Destination.Lng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Destination.Lat, *dto.Destination.Lng)
		if pointErr != nil {
			return nil, pointErr
		}
		coords = &point
	}

	dest, err := order.NewDestination(coords, dto.Destination.Address,
		dto.Destination.ContactName, dto.Destination.ContactPhone)
	if err != nil {
		return nil, err
	}

	var commission *kernel.Money
	if dto.CommissionCents != nil {
		amount := kernel.Money(*dto.CommissionCents)
		commission = &amount
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:               id,
		CustomerID:       customerID,
		RestaurantID:     restaurantID,
		CourierID:        courierID,
		TotalAmount:      kernel.Money(dto.TotalCents),
		DiscountAmount:   kernel.Money(dto.DiscountCents),
		PayAmount:        kernel.Money(dto.PayCents),
		CommissionAmount: commission,
		Status:           order.Status(dto.Status),
		PayStatus:        order.PayStatus(dto.PayStatus),
		Destination:      dest,
		CancelReason:     dto.CancelReason,
		PayMethod:        dto.PayMethod,
		PayTransactionID: dto.PayTransactionID,
		CreatedAt:        dto.CreatedAt,
		PaidAt:           dto.PaidAt,
		FinishedAt:       dto.FinishedAt,
		RefundedAt:       dto.RefundedAt,
	})
}
