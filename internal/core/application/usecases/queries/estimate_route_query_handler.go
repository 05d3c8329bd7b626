package queries

import (
	"context"

	"takeout/internal/core/ports"
)

// EstimateRouteQueryHandler resolves the three delivery legs through the
// route estimator. The estimator degrades to a straight-line estimate on
// provider failures, so the query succeeds whenever the inputs are valid.
type EstimateRouteQueryHandler struct {
	estimator ports.RouteEstimator
}

// NewEstimateRouteQueryHandler creates a handler for route estimation
// queries.
func NewEstimateRouteQueryHandler(estimator ports.RouteEstimator) EstimateRouteQueryHandler {
	return EstimateRouteQueryHandler{estimator: estimator}
}

// Handle resolves rider to restaurant, restaurant to customer and rider to
// customer.
func (h EstimateRouteQueryHandler) Handle(
	ctx context.Context,
	query EstimateRouteQuery,
) (EstimateRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return EstimateRouteQueryResponse{}, err
	}

	var response EstimateRouteQueryResponse
	var err error

	if response.RiderToRestaurant, err = h.estimator.Estimate(ctx, query.Rider(), query.Restaurant()); err != nil {
		return EstimateRouteQueryResponse{}, err
	}
	if response.RestaurantToCustomer, err = h.estimator.Estimate(ctx, query.Restaurant(), query.Customer()); err != nil {
		return EstimateRouteQueryResponse{}, err
	}
	if response.RiderToCustomer, err = h.estimator.Estimate(ctx, query.Rider(), query.Customer()); err != nil {
		return EstimateRouteQueryResponse{}, err
	}

	return response, nil
}
