package ports

import (
	"context"

	"takeout/internal/core/domain/model/kernel"
)

// Route leg sources.
const (
	// RouteSourceLive marks a leg resolved by the live routing provider.
	RouteSourceLive = "live"

	// RouteSourceFallback marks a leg estimated from the straight-line
	// distance when the provider was unavailable or not configured.
	RouteSourceFallback = "fallback"
)

// RouteLeg is one resolved travel segment.
type RouteLeg struct {
	// DistanceKm is the travel distance in kilometers.
	DistanceKm float64

	// DurationMin is the estimated travel time in minutes.
	DurationMin float64

	// Source is RouteSourceLive or RouteSourceFallback.
	Source string
}

// RouteEstimator resolves travel legs between two points. Implementations
// must degrade to a straight-line estimate instead of failing when the live
// provider is unreachable, so an Estimate error is exceptional.
type RouteEstimator interface {
	Estimate(ctx context.Context, from, to kernel.GeoPoint) (RouteLeg, error)
}
