// Package planner holds the dependency-aware task graph that fans
// requests out to the external travel collaborators and joins their
// results into a single bundle.
//
// The stage order is fixed by data dependencies: the destination must
// geocode before anything else can run, the chosen hotel feeds the
// itinerary prompt, itinerary locations must exist before they can be
// geocoded, and geocoded markers must exist before routes can be
// requested. Only the destination geocode is fatal; every other
// failure degrades its own slice of the result.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/platform/obs"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/ports"
)

const hotelTopK = 3

// Timeouts bound the wait on each external call so one slow service
// cannot stall a whole batch. Expiry is the call's failure outcome,
// never a run-level fault.
type Timeouts struct {
	Geocode   time.Duration
	Hotels    time.Duration
	Weather   time.Duration
	Itinerary time.Duration
	Route     time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		Geocode:   10 * time.Second,
		Hotels:    10 * time.Second,
		Weather:   15 * time.Second,
		Itinerary: 90 * time.Second,
		Route:     20 * time.Second,
	}
}

// Planner orchestrates one planning run per Plan call. It holds no
// per-run state; all concurrency is scoped to a single call and torn
// down at that call's join points.
type Planner struct {
	geocoder  ports.Geocoder
	hotels    ports.HotelFinder
	weather   ports.WeatherProvider
	itinerary ports.ItineraryGenerator
	routes    ports.RouteProvider

	timeouts       Timeouts
	maxConcurrency int
}

func NewPlanner(
	geocoder ports.Geocoder,
	hotels ports.HotelFinder,
	weather ports.WeatherProvider,
	itinerary ports.ItineraryGenerator,
	routes ports.RouteProvider,
) *Planner {
	return &Planner{
		geocoder:       geocoder,
		hotels:         hotels,
		weather:        weather,
		itinerary:      itinerary,
		routes:         routes,
		timeouts:       DefaultTimeouts(),
		maxConcurrency: 5,
	}
}

// WithTimeouts overrides the per-call timeouts.
func (p *Planner) WithTimeouts(t Timeouts) *Planner {
	p.timeouts = t
	return p
}

// Plan runs the full orchestration for one trip request and returns
// exactly one bundle, possibly partially empty. The only fatal
// conditions are an invalid request and an unresolvable destination.
func (p *Planner) Plan(ctx context.Context, req domain.TripRequest) (_ *domain.ResultBundle, err error) {
	defer obs.Time(ctx, "planner.Plan")(&err)

	if req.Destination == "" {
		return nil, errors.New("plan trip: destination must not be empty")
	}
	if req.DurationDays < 1 {
		return nil, fmt.Errorf("plan trip: duration must be >= 1 day, got %d", req.DurationDays)
	}

	// Stage 1: destination resolution. Everything downstream needs this
	// coordinate, so failure aborts the run.
	dest, err := p.resolve(ctx, req.Destination)
	if err != nil {
		return nil, fmt.Errorf("plan trip: resolve destination %q: %w", req.Destination, err)
	}

	// Stage 2: hotel selection. An empty or failed search degrades to a
	// placeholder hotel; the itinerary still needs a hotel name.
	hotels, chosen := p.findHotels(ctx, req)

	// Stage 3: weather and itinerary are independent; run both and join.
	forecast, itin := p.fetchParallel(ctx, req, dest, chosen)

	// Stage 4: flat fan-out geocoding every itinerary location, then
	// regrouping by day.
	markers := p.geocodeLocations(ctx, itin.Locations)

	// Stage 5: one route request per day holding at least two markers.
	polylines := p.routePerDay(ctx, markers)

	bundle := &domain.ResultBundle{
		Destination: dest,
		Hotels:      hotels,
		Forecast:    forecast,
		Itinerary:   itin.Text,
		Markers:     markers,
		Polylines:   polylines,
	}

	if ranker, ok := p.weather.(ports.MonthRanker); ok {
		bundle.BestMonths = ranker.BestMonths(dest)
	}

	return bundle, nil
}

func (p *Planner) resolve(ctx context.Context, place string) (domain.Coordinates, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeouts.Geocode)
	defer cancel()

	return p.geocoder.Resolve(ctx, place)
}

// findHotels returns the ranked hotel list for the bundle and the
// hotel handed to the itinerary generator. When the search fails or
// matches nothing, both degrade to a synthetic placeholder.
func (p *Planner) findHotels(ctx context.Context, req domain.TripRequest) ([]domain.Hotel, domain.Hotel) {
	hctx, cancel := context.WithTimeout(ctx, p.timeouts.Hotels)
	defer cancel()

	found, err := p.hotels.FindHotels(hctx, req.Preferences, req.Destination, hotelTopK)
	if err != nil {
		log.Printf("hotel search failed destination=%q err=%v", req.Destination, err)
		found = nil
	}

	if len(found) == 0 {
		placeholder := domain.Hotel{Name: "Hotel in " + req.Destination}
		return []domain.Hotel{placeholder}, placeholder
	}

	return found, found[0]
}

// fetchParallel runs the weather fetch and the itinerary generation
// concurrently and waits for both to settle. Each task's failure
// degrades its own output without blocking or cancelling the other.
func (p *Planner) fetchParallel(
	ctx context.Context,
	req domain.TripRequest,
	dest domain.Coordinates,
	hotel domain.Hotel,
) ([]domain.ForecastDay, domain.Itinerary) {
	defer obs.Time(ctx, "planner.fetchParallel")(nil)

	var (
		forecast []domain.ForecastDay
		itin     domain.Itinerary
	)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()

		wctx, cancel := context.WithTimeout(ctx, p.timeouts.Weather)
		defer cancel()

		f, err := p.weather.Forecast(wctx, dest, req.StartDate, req.DurationDays)
		if err != nil {
			log.Printf("weather fetch failed destination=%q err=%v", req.Destination, err)
			return
		}
		forecast = f
	}()

	go func() {
		defer wg.Done()

		ictx, cancel := context.WithTimeout(ctx, p.timeouts.Itinerary)
		defer cancel()

		it, err := p.itinerary.Generate(ictx, req.Destination, hotel, req.DurationDays)
		if err != nil {
			log.Printf("itinerary generation failed destination=%q err=%v", req.Destination, err)
			itin = domain.Itinerary{
				Text: fmt.Sprintf("Error: itinerary generation failed: %v", err),
			}
			return
		}
		itin = it
	}()

	wg.Wait()

	return forecast, itin
}

type geocodeOutcome struct {
	index int
	coord domain.Coordinates
	ok    bool
}

// geocodeLocations resolves every itinerary location concurrently and
// rebuilds markers in the generator's original order. A failed geocode
// silently drops that location; all surviving markers keep their
// day/name pairing. Day values are grouped as-is, even out of range.
func (p *Planner) geocodeLocations(ctx context.Context, locations []domain.ItineraryLocation) []domain.MapMarker {
	defer obs.Time(ctx, "planner.geocodeLocations")(nil)

	if len(locations) == 0 {
		return nil
	}

	sem := make(chan struct{}, p.maxConcurrency)
	results := make(chan geocodeOutcome, len(locations))
	var wg sync.WaitGroup

	for i, loc := range locations {
		wg.Add(1)
		go func(i int, name string) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			gctx, cancel := context.WithTimeout(ctx, p.timeouts.Geocode)
			defer cancel()

			c, err := p.geocoder.Resolve(gctx, name)
			if err != nil {
				if !errors.Is(err, ports.ErrNotFound) {
					log.Printf("geocode failed place=%q err=%v", name, err)
				}
				results <- geocodeOutcome{index: i}
				return
			}
			results <- geocodeOutcome{index: i, coord: c, ok: true}
		}(i, loc.Name)
	}

	wg.Wait()
	close(results)

	// Results arrive in arbitrary completion order; the origin index
	// re-associates each outcome with its location.
	resolved := make(map[int]domain.Coordinates, len(locations))
	for r := range results {
		if r.ok {
			resolved[r.index] = r.coord
		}
	}

	markers := make([]domain.MapMarker, 0, len(resolved))
	for i, loc := range locations {
		c, ok := resolved[i]
		if !ok {
			continue
		}
		markers = append(markers, domain.MapMarker{
			Coordinates: c,
			Name:        loc.Name,
			Day:         loc.Day,
			ColorIndex:  domain.ColorIndex(loc.Day),
		})
	}

	return markers
}

type routeOutcome struct {
	day  int
	path string
	ok   bool
}

// routePerDay requests one route per day that has at least two markers,
// with waypoints in marker encounter order. A failed day is omitted
// without affecting the others.
func (p *Planner) routePerDay(ctx context.Context, markers []domain.MapMarker) []domain.RoutePolyline {
	defer obs.Time(ctx, "planner.routePerDay")(nil)

	byDay := make(map[int][]domain.Coordinates)
	dayOrder := make([]int, 0)
	for _, m := range markers {
		if _, seen := byDay[m.Day]; !seen {
			dayOrder = append(dayOrder, m.Day)
		}
		byDay[m.Day] = append(byDay[m.Day], m.Coordinates)
	}

	routable := make([]int, 0, len(dayOrder))
	for _, day := range dayOrder {
		if len(byDay[day]) >= 2 {
			routable = append(routable, day)
		}
	}
	if len(routable) == 0 {
		return nil
	}

	sem := make(chan struct{}, p.maxConcurrency)
	results := make(chan routeOutcome, len(routable))
	var wg sync.WaitGroup

	for _, day := range routable {
		wg.Add(1)
		go func(day int, waypoints []domain.Coordinates) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			rctx, cancel := context.WithTimeout(ctx, p.timeouts.Route)
			defer cancel()

			path, err := p.routes.Route(rctx, waypoints)
			if err != nil {
				log.Printf("route failed day=%d waypoints=%d err=%v", day, len(waypoints), err)
				results <- routeOutcome{day: day}
				return
			}
			results <- routeOutcome{day: day, path: path, ok: true}
		}(day, byDay[day])
	}

	wg.Wait()
	close(results)

	polylines := make([]domain.RoutePolyline, 0, len(routable))
	for r := range results {
		if r.ok {
			polylines = append(polylines, domain.RoutePolyline{
				Day:         r.day,
				EncodedPath: r.path,
				ColorIndex:  domain.ColorIndex(r.day),
			})
		}
	}

	sort.Slice(polylines, func(i, j int) bool { return polylines[i].Day < polylines[j].Day })

	return polylines
}
