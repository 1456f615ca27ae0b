package ports

import (
	"context"
	"time"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
)

// Contract for retrieving a per-day weather forecast.
type WeatherProvider interface {
	// Return one ForecastDay per requested day, in date order.
	// Providers cap the horizon at 16 days.
	Forecast(ctx context.Context, c domain.Coordinates, start time.Time, days int) ([]domain.ForecastDay, error)
}

// Optional extension of WeatherProvider that can rank calendar months
// for a destination without a network call.
type MonthRanker interface {
	WeatherProvider
	// Return the best months to visit, highest score first.
	BestMonths(c domain.Coordinates) []domain.MonthScore
}
