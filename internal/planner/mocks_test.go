package planner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/ports"
)

type mockGeocoder struct {
	mu     sync.Mutex
	calls  map[string]int
	coords map[string]domain.Coordinates
	miss   map[string]bool
	delay  map[string]time.Duration
}

func newMockGeocoder() *mockGeocoder {
	return &mockGeocoder{
		calls:  map[string]int{},
		coords: map[string]domain.Coordinates{},
		miss:   map[string]bool{},
		delay:  map[string]time.Duration{},
	}
}

func (m *mockGeocoder) Resolve(ctx context.Context, place string) (domain.Coordinates, error) {
	m.mu.Lock()
	m.calls[place]++
	d := m.delay[place]
	miss := m.miss[place]
	c, known := m.coords[place]
	m.mu.Unlock()

	if d > 0 {
		select {
		case <-ctx.Done():
			return domain.Coordinates{}, ctx.Err()
		case <-time.After(d):
		}
	}

	if miss || !known {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", place, ports.ErrNotFound)
	}
	return c, nil
}

func (m *mockGeocoder) callCount(place string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[place]
}

func (m *mockGeocoder) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

type mockHotelFinder struct {
	mu     sync.Mutex
	calls  int
	hotels []domain.Hotel
	err    error
}

func (m *mockHotelFinder) FindHotels(ctx context.Context, preference, destination string, topK int) ([]domain.Hotel, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.hotels, nil
}

type mockWeather struct {
	mu       sync.Mutex
	calls    int
	forecast []domain.ForecastDay
	err      error
}

func (m *mockWeather) Forecast(ctx context.Context, c domain.Coordinates, start time.Time, days int) ([]domain.ForecastDay, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.forecast, nil
}

type mockItinerary struct {
	mu        sync.Mutex
	calls     int
	lastHotel domain.Hotel
	itin      domain.Itinerary
	err       error
}

func (m *mockItinerary) Generate(ctx context.Context, destination string, hotel domain.Hotel, days int) (domain.Itinerary, error) {
	m.mu.Lock()
	m.calls++
	m.lastHotel = hotel
	m.mu.Unlock()
	if m.err != nil {
		return domain.Itinerary{}, m.err
	}
	return m.itin, nil
}

type mockRouter struct {
	mu           sync.Mutex
	calls        [][]domain.Coordinates
	failFirstLat map[float64]bool
}

func (m *mockRouter) Route(ctx context.Context, waypoints []domain.Coordinates) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, waypoints)
	fail := m.failFirstLat[waypoints[0].Lat]
	m.mu.Unlock()

	if fail {
		return "", fmt.Errorf("route: %w", ports.ErrNotFound)
	}
	return fmt.Sprintf("path-%d-stops", len(waypoints)), nil
}

func (m *mockRouter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
