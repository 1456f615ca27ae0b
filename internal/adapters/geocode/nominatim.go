package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/platform/httpx"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/ports"
)

// NominatimGeocoder resolves free-text place names against the
// OpenStreetMap Nominatim search endpoint. The provider is safe for
// concurrent use; callers are expected to wrap it in MemoGeocoder to
// stay within Nominatim's usage policy.
type NominatimGeocoder struct {
	session   *http.Client
	baseURL   string
	userAgent string
}

func NewNominatimGeocoder() *NominatimGeocoder {
	return &NominatimGeocoder{
		session:   &http.Client{Timeout: 10 * time.Second},
		baseURL:   "https://nominatim.openstreetmap.org",
		userAgent: "multi-agentic-travel-planner/1.0",
	}
}

// Nominatim returns lat/lon as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve looks up a place name and returns its coordinates, or
// ports.ErrNotFound when Nominatim has no match.
func (g *NominatimGeocoder) Resolve(ctx context.Context, place string) (domain.Coordinates, error) {
	place = strings.Join(strings.Fields(place), " ")
	if place == "" {
		return domain.Coordinates{}, fmt.Errorf("resolve place: %w", ports.ErrNotFound)
	}

	endpoint := g.baseURL + "/search"

	resp, err := httpx.DoWithRetry(ctx, g.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", g.userAgent)
		req.Header.Set("Accept", "application/json")

		params := url.Values{}
		params.Set("q", place)
		params.Set("format", "json")
		params.Set("limit", "1")
		params.Set("accept-language", "en")
		req.URL.RawQuery = params.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", place, err)
	}
	defer resp.Body.Close()

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response for %q: %w", place, err)
	}

	if len(results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", place, ports.ErrNotFound)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse latitude for %q: %w", place, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse longitude for %q: %w", place, err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
