package hotels

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres schema for the hotel finder and the shared
// geocode cache.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createHotelsQuery := `
	CREATE TABLE IF NOT EXISTS hotels (
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		address TEXT NOT NULL,
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		embedding TEXT NOT NULL,
		PRIMARY KEY (name, address)
	);
	`

	createHotelsIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_hotels_address
    ON hotels(address);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        place TEXT PRIMARY KEY,
        lon DOUBLE PRECISION NOT NULL,
        lat DOUBLE PRECISION NOT NULL
    );
	`

	statements := []string{
		createHotelsQuery,
		createHotelsIndexQuery,
		createGeocodeCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type HotelSeed struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Rating      float64 `json:"rating"`
}

// Populate the hotels table from a JSON file. Description embeddings
// are computed here so queries can rank without an external model.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed hotels: read %q: %w", jsonPath, err)
	}

	var data []HotelSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed hotels: parse json: %w", err)
	}

	rows := make([]HotelSeed, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed hotels: item at index %d: name cannot be empty", i+1)
		}

		address := strings.TrimSpace(item.Address)
		if address == "" {
			return fmt.Errorf("seed hotels: item %q: address cannot be empty", name)
		}

		rows = append(rows, HotelSeed{
			Name:        name,
			Description: strings.TrimSpace(item.Description),
			Address:     TitleCase(address),
			Rating:      item.Rating,
		})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed hotels: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO hotels (name, description, address, rating, embedding)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (name, address) DO UPDATE
	SET description = EXCLUDED.description,
		rating = EXCLUDED.rating,
		embedding = EXCLUDED.embedding;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed hotels: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, h := range rows {
		embedding, err := json.Marshal(Embed(h.Description))
		if err != nil {
			return fmt.Errorf("seed hotels: encode embedding for %q: %w", h.Name, err)
		}

		if _, err := stmt.Exec(h.Name, h.Description, h.Address, h.Rating, string(embedding)); err != nil {
			return fmt.Errorf("seed hotels: insert %q: %w", h.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed hotels: commit tx: %w", err)
	}

	return nil
}
