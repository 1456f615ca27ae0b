package ports

import (
	"context"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
)

// Port: a boundary for generating a day-by-day travel plan.
type ItineraryGenerator interface {
	// Generate a structured itinerary for the destination and chosen
	// hotel. An unusable model response yields an Itinerary whose Text
	// is a human-readable error and whose Locations are empty, with a
	// nil error; transport failures return an error.
	Generate(ctx context.Context, destination string, hotel domain.Hotel, days int) (domain.Itinerary, error)
}
