package queries

import (
	"errors"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/ports"
)

var ErrEstimateRouteQueryIsNotConstructed = errors.New(
	"EstimateRouteQuery must be created via NewEstimateRouteQuery constructor",
)

// EstimateRouteQuery asks for travel estimates between a rider, the
// restaurant and the customer.
type EstimateRouteQuery struct { //nolint:recvcheck //using for validation
	rider      kernel.GeoPoint
	restaurant kernel.GeoPoint
	customer   kernel.GeoPoint

	guard kernel.ConstructorGuard
}

// NewEstimateRouteQuery creates a query for the three delivery legs.
func NewEstimateRouteQuery(rider, restaurant, customer kernel.GeoPoint) (EstimateRouteQuery, error) {
	query := EstimateRouteQuery{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		rider.Validate(),
		restaurant.Validate(),
		customer.Validate(),
	); err != nil {
		return EstimateRouteQuery{}, err
	}

	query.rider = rider
	query.restaurant = restaurant
	query.customer = customer
	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrEstimateRouteQueryIsNotConstructed if validation fails.
func (q EstimateRouteQuery) Validate() error {
	return q.guard.Validate(ErrEstimateRouteQueryIsNotConstructed)
}

// Rider returns the rider's position.
func (q EstimateRouteQuery) Rider() kernel.GeoPoint {
	return q.rider
}

// Restaurant returns the restaurant's position.
func (q EstimateRouteQuery) Restaurant() kernel.GeoPoint {
	return q.restaurant
}

// Customer returns the customer's position.
func (q EstimateRouteQuery) Customer() kernel.GeoPoint {
	return q.customer
}

// EstimateRouteQueryResponse carries the three estimated delivery legs.
// Each leg reports whether it came from the live provider or the
// straight-line fallback.
type EstimateRouteQueryResponse struct {
	RiderToRestaurant    ports.RouteLeg
	RestaurantToCustomer ports.RouteLeg
	RiderToCustomer      ports.RouteLeg
}
