// Package routing resolves travel distances and durations between geographic
// points. A live HTTP routing provider is queried when configured; on any
// failure the client degrades to a haversine estimate so callers never block
// on the provider.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/ports"
)

// fallbackSpeedKmh is the assumed average courier speed used to derive a
// duration from the straight-line distance.
const fallbackSpeedKmh = 25.0

// Config holds the live provider settings. An empty BaseURL disables the
// provider and every estimate uses the fallback.
type Config struct {
	// BaseURL is the provider endpoint, for example "https://maps.example.com".
	BaseURL string

	// APIKey authenticates provider calls.
	APIKey string

	// Timeout bounds each provider call.
	Timeout time.Duration
}

// Client implements ports.RouteEstimator and the dispatcher's
// DistanceEstimator against a live routing provider with haversine fallback.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a routing client. With an empty base URL the client only
// produces fallback estimates.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}

	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger.With("component", "routing_client"),
	}
}

// routeResponse is the provider's wire format: meters and seconds.
type routeResponse struct {
	DistanceM  float64 `json:"distance_m"`
	DurationS  float64 `json:"duration_s"`
	StatusCode int     `json:"status"`
}

// Estimate resolves one travel leg. Provider errors are logged and degrade
// to the haversine fallback; the returned leg's Source tells which path
// produced it.
func (c *Client) Estimate(ctx context.Context, from, to kernel.GeoPoint) (ports.RouteLeg, error) {
	if c.cfg.BaseURL == "" {
		return c.fallback(from, to), nil
	}

	leg, err := c.queryProvider(ctx, from, to)
	if err != nil {
		c.logger.WarnContext(ctx, "live routing failed, using fallback estimate", "error", err)
		return c.fallback(from, to), nil
	}

	return leg, nil
}

// DistanceKm resolves the travel distance in kilometers for dispatch scoring.
func (c *Client) DistanceKm(ctx context.Context, from, to kernel.GeoPoint) (float64, error) {
	leg, err := c.Estimate(ctx, from, to)
	if err != nil {
		return 0, err
	}
	return leg.DistanceKm, nil
}

func (c *Client) queryProvider(ctx context.Context, from, to kernel.GeoPoint) (ports.RouteLeg, error) {
	endpoint, err := url.Parse(c.cfg.BaseURL + "/v1/route")
	if err != nil {
		return ports.RouteLeg{}, fmt.Errorf("invalid routing base url: %w", err)
	}

	query := endpoint.Query()
	query.Set("origin", fmt.Sprintf("%f,%f", from.Lat(), from.Lng()))
	query.Set("destination", fmt.Sprintf("%f,%f", to.Lat(), to.Lng()))
	query.Set("key", c.cfg.APIKey)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return ports.RouteLeg{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ports.RouteLeg{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.RouteLeg{}, fmt.Errorf("routing provider returned %d", resp.StatusCode)
	}

	var body routeResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.RouteLeg{}, fmt.Errorf("decoding routing response: %w", err)
	}
	if body.StatusCode != 0 {
		return ports.RouteLeg{}, fmt.Errorf("routing provider status %d", body.StatusCode)
	}
	if body.DistanceM < 0 || body.DurationS < 0 {
		return ports.RouteLeg{}, fmt.Errorf("routing provider returned negative values")
	}

	return ports.RouteLeg{
		DistanceKm:  body.DistanceM / 1000,
		DurationMin: body.DurationS / 60,
		Source:      ports.RouteSourceLive,
	}, nil
}

func (c *Client) fallback(from, to kernel.GeoPoint) ports.RouteLeg {
	distance := from.DistanceKm(to)
	return ports.RouteLeg{
		DistanceKm:  distance,
		DurationMin: distance / fallbackSpeedKmh * 60,
		Source:      ports.RouteSourceFallback,
	}
}
