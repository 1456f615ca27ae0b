package ports

import (
	"context"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
)

// Contract for requesting an optimized path through ordered waypoints.
type RouteProvider interface {
	// Return an encoded polyline visiting the waypoints in order.
	// Requires at least two waypoints; ErrNotFound means the provider
	// could not produce a path.
	Route(ctx context.Context, waypoints []domain.Coordinates) (string, error)
}
