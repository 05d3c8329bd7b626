package kernel

import (
	"fmt"
	"math"

	"takeout/internal/pkg/errs"
)

// Geographic bounds for coordinate validation.
const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

// earthRadiusKm is the mean Earth radius used for great-circle distance.
const earthRadiusKm = 6371.0088

// ErrGeoPointIsNotConstructed is returned when attempting to use an
// improperly initialized GeoPoint. Points must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValidationError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable value object holding a validated latitude/longitude
// pair. It is used for delivery destinations and courier positions.
//
// The zero value of GeoPoint is invalid and will fail validation - use the
// constructor to create instances.
//
// Example:
//
//	pt, err := kernel.NewGeoPoint(39.9042, 116.4074)
//	if err != nil {
//	    // handle validation error
//	}
//	dist := pt.DistanceKm(other)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given coordinates.
// Latitude must be within [-90, 90] and longitude within [-180, 180];
// out-of-range values yield a validation error.
func NewGeoPoint(lat float64, lng float64) (GeoPoint, error) {
	pt := GeoPoint{
		guard: NewConstructorGuard(),
	}

	if err := pt.setLat(lat); err != nil {
		return GeoPoint{}, err
	}
	if err := pt.setLng(lng); err != nil {
		return GeoPoint{}, err
	}

	return pt, nil
}

// Validate checks if the GeoPoint was properly constructed.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in decimal degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// IsEqual compares two points for coordinate equality.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lat == other.lat && p.lng == other.lng
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("(%f,%f)", p.lat, p.lng)
}

// DistanceKm returns the great-circle (haversine) distance to other in
// kilometers. It is the geometric fallback used whenever a live routing
// provider estimate is unavailable.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	dLat := toRadians(other.lat - p.lat)
	dLng := toRadians(other.lng - p.lng)

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(toRadians(p.lat))*math.Cos(toRadians(other.lat))*math.Pow(math.Sin(dLng/2), 2)
	c := 2 * math.Asin(math.Min(1, math.Sqrt(a)))

	return earthRadiusKm * c
}

func (p *GeoPoint) setLat(lat float64) error {
	if lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValidationErrorWithCause("lat",
			fmt.Errorf("%f is outside [%f, %f]", lat, LatitudeMin, LatitudeMax))
	}
	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValidationErrorWithCause("lng",
			fmt.Errorf("%f is outside [%f, %f]", lng, LongitudeMin, LongitudeMax))
	}
	p.lng = lng
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
