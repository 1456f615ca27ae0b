package ports

import (
	"context"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
)

// Port: a boundary for ranked lodging lookups.
type HotelFinder interface {
	// Return up to topK hotels in the destination city ranked by
	// similarity to the free-text preference. An empty slice means no
	// match; it is not an error.
	FindHotels(ctx context.Context, preference, destination string, topK int) ([]domain.Hotel, error)
}
