package ports

import (
	"context"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
)

// Port: a shared backing store for memoized geocode results, keyed by
// normalized place text. Implementations must be safe for concurrent
// use; overwriting an entry with identical values is acceptable since
// values are deterministic per key.
type GeocodeCache interface {
	// Retrieve a cached coordinate. The second return reports whether
	// the key was present.
	Get(ctx context.Context, place string) (domain.Coordinates, bool, error)
	// Store a resolved coordinate.
	Put(ctx context.Context, place string, c domain.Coordinates) error
}
