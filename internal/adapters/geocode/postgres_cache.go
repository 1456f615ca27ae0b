package geocode

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
)

// PostgresGeocodeCache is a SQL-backed store mapping place text to
// coordinates. It survives restarts, unlike the in-process memo table,
// and can be wired instead of Redis when a database is already at hand.
type PostgresGeocodeCache struct {
	DB *sql.DB
}

func NewPostgresGeocodeCache(db *sql.DB) *PostgresGeocodeCache {
	return &PostgresGeocodeCache{DB: db}
}

// Get fetches the cached coordinate for a place key.
func (s *PostgresGeocodeCache) Get(ctx context.Context, place string) (domain.Coordinates, bool, error) {
	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	place = strings.TrimSpace(place)
	if place == "" {
		return domain.Coordinates{}, false, nil
	}

	q := `
	SELECT lon, lat
    FROM geocode_cache
    WHERE place = $1;
	`

	var lon, lat float64
	err := s.DB.QueryRowContext(ctx, q, place).Scan(&lon, &lat)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, true, nil
}

// Put stores a place -> coordinate mapping in the cache.
func (s *PostgresGeocodeCache) Put(ctx context.Context, place string, c domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	place = strings.TrimSpace(place)
	if place == "" {
		return errors.New("insert geocode cache: empty place key")
	}

	q := `
	INSERT INTO geocode_cache (place, lon, lat)
    VALUES ($1, $2, $3)
	ON CONFLICT (place) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat;
	`

	if _, err := s.DB.ExecContext(ctx, q, place, c.Lon, c.Lat); err != nil {
		return fmt.Errorf("insert geocode cache place=%q: %w", place, err)
	}

	return nil
}
