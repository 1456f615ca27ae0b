package ports

import (
	"context"
	"errors"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
)

// ErrNotFound signals that a lookup produced no usable result. It is a
// degraded outcome, not a fault: callers drop the affected slice and
// continue.
var ErrNotFound = errors.New("not found")

// Contract for resolving a free-text place name to coordinates.
// Resolve must be idempotent for identical input text.
type Geocoder interface {
	// Return coordinates for the place, or ErrNotFound when the
	// provider has no match.
	Resolve(ctx context.Context, place string) (domain.Coordinates, error)
}
