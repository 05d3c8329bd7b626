package queries_test

import (
	"context"
	"testing"

	"takeout/internal/core/application/usecases/queries"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEstimator struct {
	source string
	calls  []kernel.GeoPoint
}

func (s *stubEstimator) Estimate(_ context.Context, from, to kernel.GeoPoint) (ports.RouteLeg, error) {
	s.calls = append(s.calls, from, to)
	return ports.RouteLeg{
		DistanceKm:  from.DistanceKm(to),
		DurationMin: from.DistanceKm(to) / 25.0 * 60.0,
		Source:      s.source,
	}, nil
}

func mustPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func TestEstimateRouteQueryHandler_Handle(t *testing.T) {
	rider := mustPoint(t, 55.70, 37.60)
	restaurant := mustPoint(t, 55.75, 37.62)
	customer := mustPoint(t, 55.76, 37.64)

	t.Run("should resolve all three legs in order", func(t *testing.T) {
		estimator := &stubEstimator{source: ports.RouteSourceFallback}
		h := queries.NewEstimateRouteQueryHandler(estimator)

		query, err := queries.NewEstimateRouteQuery(rider, restaurant, customer)
		require.NoError(t, err)

		response, err := h.Handle(t.Context(), query)
		require.NoError(t, err)

		assert.InDelta(t, rider.DistanceKm(restaurant), response.RiderToRestaurant.DistanceKm, 1e-9)
		assert.InDelta(t, restaurant.DistanceKm(customer), response.RestaurantToCustomer.DistanceKm, 1e-9)
		assert.InDelta(t, rider.DistanceKm(customer), response.RiderToCustomer.DistanceKm, 1e-9)
		assert.Equal(t, ports.RouteSourceFallback, response.RiderToRestaurant.Source)

		require.Len(t, estimator.calls, 6)
		assert.True(t, estimator.calls[0].IsEqual(rider))
		assert.True(t, estimator.calls[1].IsEqual(restaurant))
		assert.True(t, estimator.calls[2].IsEqual(restaurant))
		assert.True(t, estimator.calls[3].IsEqual(customer))
		assert.True(t, estimator.calls[4].IsEqual(rider))
		assert.True(t, estimator.calls[5].IsEqual(customer))
	})

	t.Run("should reject a query built without the constructor", func(t *testing.T) {
		h := queries.NewEstimateRouteQueryHandler(&stubEstimator{})
		_, err := h.Handle(t.Context(), queries.EstimateRouteQuery{})
		require.Error(t, err)
		assert.ErrorIs(t, err, queries.ErrEstimateRouteQueryIsNotConstructed)
	})

	t.Run("should reject invalid coordinates", func(t *testing.T) {
		_, err := queries.NewEstimateRouteQuery(kernel.GeoPoint{}, restaurant, customer)
		require.Error(t, err)
	})
}
