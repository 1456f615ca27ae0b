package hotels

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/platform/obs"
)

// PostgresHotelFinder implements HotelFinder against a seeded hotels
// table. Candidate rows are filtered by destination city, then ranked
// in-process by cosine similarity between the stored description
// embedding and the embedded preference text.
//
// The finder is safe for concurrent use.
type PostgresHotelFinder struct {
	DB *sql.DB
}

func NewPostgresHotelFinder(db *sql.DB) *PostgresHotelFinder {
	return &PostgresHotelFinder{DB: db}
}

// FindHotels returns up to topK hotels for the destination ranked by
// preference similarity. An empty slice means no match in that city.
func (f *PostgresHotelFinder) FindHotels(
	ctx context.Context,
	preference string,
	destination string,
	topK int,
) (_ []domain.Hotel, err error) {
	defer obs.Time(ctx, "hotels.FindHotels")(&err)

	if f.DB == nil {
		return nil, errors.New("hotel finder: db is nil")
	}

	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, errors.New("find hotels: destination must not be empty")
	}

	if topK <= 0 {
		topK = 3
	}

	q := `
	SELECT name, description, address, rating, embedding
    FROM hotels
    WHERE address = $1;
	`

	rows, err := f.DB.QueryContext(ctx, q, TitleCase(destination))
	if err != nil {
		return nil, fmt.Errorf("find hotels: query hotels table: %w", err)
	}
	defer rows.Close()

	type scored struct {
		hotel domain.Hotel
		score float64
	}

	queryVec := Embed(preference)

	var candidates []scored
	for rows.Next() {
		var h domain.Hotel
		var rawEmbedding string
		if err := rows.Scan(&h.Name, &h.Description, &h.Address, &h.Rating, &rawEmbedding); err != nil {
			return nil, fmt.Errorf("find hotels: scan rows: %w", err)
		}

		var vec []float64
		if err := json.Unmarshal([]byte(rawEmbedding), &vec); err != nil {
			return nil, fmt.Errorf("find hotels: decode embedding for %q: %w", h.Name, err)
		}

		candidates = append(candidates, scored{hotel: h, score: Cosine(queryVec, vec)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find hotels: row iteration: %w", err)
	}

	// Rank by similarity; rating breaks ties so equal-scoring hotels
	// come back in a stable, sensible order.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].hotel.Rating > candidates[j].hotel.Rating
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	out := make([]domain.Hotel, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.hotel)
	}

	return out, nil
}

// TitleCase uppercases the first letter of each word, matching how
// city names are stored in the hotels table.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
