package kernel_test

import (
	"testing"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("creates valid point", func(t *testing.T) {
		pt, err := kernel.NewGeoPoint(39.9042, 116.4074)

		require.NoError(t, err)
		assert.InDelta(t, 39.9042, pt.Lat(), 1e-9)
		assert.InDelta(t, 116.4074, pt.Lng(), 1e-9)
		require.NoError(t, pt.Validate())
	})

	t.Run("accepts boundary coordinates", func(t *testing.T) {
		for _, c := range [][2]float64{{-90, -180}, {90, 180}, {0, 0}} {
			_, err := kernel.NewGeoPoint(c[0], c[1])
			require.NoError(t, err)
		}
	})

	t.Run("rejects latitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(90.5, 0)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("rejects longitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -180.1)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var pt kernel.GeoPoint
		require.Error(t, pt.Validate())
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	t.Run("distance to itself is zero", func(t *testing.T) {
		pt, _ := kernel.NewGeoPoint(55.7558, 37.6173)
		assert.InDelta(t, 0, pt.DistanceKm(pt), 1e-9)
	})

	t.Run("is symmetric", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(39.9042, 116.4074)
		b, _ := kernel.NewGeoPoint(31.2304, 121.4737)

		assert.InDelta(t, a.DistanceKm(b), b.DistanceKm(a), 1e-9)
	})

	t.Run("one degree of latitude is about 111 km", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(0, 0)
		b, _ := kernel.NewGeoPoint(1, 0)

		assert.InDelta(t, 111.19, a.DistanceKm(b), 0.1)
	})
}
