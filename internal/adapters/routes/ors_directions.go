package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/platform/httpx"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/platform/obs"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/ports"
)

// ORSRouteProvider implements RouteProvider using the OpenRouteService
// directions endpoint. Waypoints are visited in the order given; any
// optimization is left to the service. The provider is safe for
// concurrent use.
type ORSRouteProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
}

func NewORSRouteProvider(apiKey string) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSRouteProvider{
		session: &http.Client{Timeout: 15 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "foot-walking",
	}, nil
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

// Route requests a path through the waypoints and returns its encoded
// polyline. At least two waypoints are required.
func (o *ORSRouteProvider) Route(ctx context.Context, waypoints []domain.Coordinates) (_ string, err error) {
	defer obs.Time(ctx, "routes.Route")(&err)

	if len(waypoints) < 2 {
		return "", fmt.Errorf("route: need at least 2 waypoints, got %d", len(waypoints))
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	locations := make([][]float64, 0, len(waypoints))
	for _, w := range waypoints {
		locations = append(locations, w.CoordsToList())
	}

	payload, err := json.Marshal(directionsRequest{Coordinates: locations})
	if err != nil {
		return "", fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := httpx.DoWithRetry(ctx, o.session, func() (*http.Request, error) {
		return o.newRequest(ctx, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return "", fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return "", fmt.Errorf("decode directions response: %w", err)
	}

	if len(dr.Routes) == 0 || dr.Routes[0].Geometry == "" {
		return "", fmt.Errorf("directions returned no route: %w", ports.ErrNotFound)
	}

	return dr.Routes[0].Geometry, nil
}

func (o *ORSRouteProvider) newRequest(ctx context.Context, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
