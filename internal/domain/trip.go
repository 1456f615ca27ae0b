package domain

import "time"

// TripRequest is the immutable input to one planning run.
type TripRequest struct {
	Destination  string
	Preferences  string
	DurationDays int
	StartDate    time.Time
}

// Hotel is a candidate lodging returned by the hotel finder.
// A placeholder hotel carries only a Name when no match exists.
type Hotel struct {
	Name        string
	Description string
	Address     string
	Rating      float64
}

// ForecastDay holds the predicted weather for a single calendar day.
type ForecastDay struct {
	Date          time.Time
	TempMax       float64
	TempMin       float64
	Precipitation float64
	WindSpeed     float64
	WeatherCode   int
}

// MonthScore rates a calendar month (1-12) for visiting a destination.
type MonthScore struct {
	Month int
	Score float64
}

// ItineraryLocation is a named point of interest attached to a trip day.
// Name must be a full human-readable place description suitable for geocoding.
type ItineraryLocation struct {
	Day         int
	Name        string
	Description string
}

// Itinerary is the generator's structured output: the plan text plus
// the points of interest it mentions.
type Itinerary struct {
	Text      string
	Locations []ItineraryLocation
}

// MapMarker is a successfully geocoded itinerary location.
type MapMarker struct {
	Coordinates Coordinates
	Name        string
	Day         int
	ColorIndex  int
}

// RoutePolyline is the encoded walking path for one day's markers.
type RoutePolyline struct {
	Day         int
	EncodedPath string
	ColorIndex  int
}

// ResultBundle is the sole output of one planning run. It is assembled
// once and never mutated after return; any slice may be empty when the
// producing collaborator failed.
type ResultBundle struct {
	Destination Coordinates
	Hotels      []Hotel
	BestMonths  []MonthScore
	Forecast    []ForecastDay
	Itinerary   string
	Markers     []MapMarker
	Polylines   []RoutePolyline
}
