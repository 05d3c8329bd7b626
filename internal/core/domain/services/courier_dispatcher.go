package services

import (
	"context"
	"math"

	"takeout/internal/core/domain/model/courier"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
)

// loadWeight converts one carried order into score units, so a courier one
// order busier must be loadWeight kilometers closer to win.
const loadWeight = 0.8

// DistanceEstimator resolves the travel distance between two points in
// kilometers. Implementations are expected to degrade to a straight-line
// estimate rather than fail when the live source is unavailable.
type DistanceEstimator interface {
	DistanceKm(ctx context.Context, from, to kernel.GeoPoint) (float64, error)
}

// CourierDispatcher is a domain service that selects the best courier for an
// order from a pool of candidates.
//
// Selection algorithm:
//   - No candidates: no assignment (nil result, no error)
//   - Destination has no coordinates: the first candidate wins (the pool is
//     expected to arrive ordered by load, then id)
//   - Otherwise each candidate with a known position is scored as
//     distanceKm + currentLoad*0.8; the minimum score wins and ties keep the
//     earlier candidate. Candidates without a reported position are skipped.
//   - All candidates skipped: the first candidate wins, same as the
//     no-coordinates case
type CourierDispatcher struct {
	distances DistanceEstimator
}

// NewCourierDispatcher creates a dispatcher scoring candidates with the given
// distance estimator.
func NewCourierDispatcher(distances DistanceEstimator) CourierDispatcher {
	return CourierDispatcher{distances: distances}
}

// SelectCourier picks the best candidate for the order, or (nil, nil) when no
// candidate qualifies. It does not mutate the order or the candidates; the
// caller performs the actual assignment.
func (d CourierDispatcher) SelectCourier(ctx context.Context, o *order.Order,
	candidates []*courier.Courier) (*courier.Courier, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	dest := o.Destination().Coords()
	if dest == nil {
		first := candidates[0]
		if err := first.Validate(); err != nil {
			return nil, err
		}
		return first, nil
	}

	var (
		best      *courier.Courier
		bestScore = math.MaxFloat64
	)

	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if c.Location() == nil {
			continue
		}

		distance, err := d.distances.DistanceKm(ctx, *c.Location(), *dest)
		if err != nil {
			return nil, err
		}

		score := distance + float64(c.CurrentLoad())*loadWeight
		if score < bestScore {
			bestScore = score
			best = c
		}
	}

	// Nobody reported a position; fall back to pool order rather than leave
	// the order waiting.
	if best == nil {
		return candidates[0], nil
	}

	return best, nil
}
