package dto

type TripRequest struct {
	Destination  string `json:"destination"`
	Preferences  string `json:"preferences"`
	DurationDays int    `json:"duration_days"`
	StartDate    string `json:"start_date"`
}

type CoordinateResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type HotelResponse struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Address     string  `json:"address,omitempty"`
	Rating      float64 `json:"rating"`
}

type MonthScoreResponse struct {
	Month int     `json:"month"`
	Score float64 `json:"score"`
}

type ForecastDayResponse struct {
	Date          string  `json:"date"`
	TempMax       float64 `json:"temp_max"`
	TempMin       float64 `json:"temp_min"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     float64 `json:"wind_speed"`
	WeatherCode   int     `json:"weather_code"`
}

type MarkerResponse struct {
	Lat   float64  `json:"lat"`
	Lon   float64  `json:"lon"`
	Name  string   `json:"name"`
	Day   int      `json:"day"`
	Color [3]uint8 `json:"color"`
}

type PolylineResponse struct {
	Day         int      `json:"day"`
	EncodedPath string   `json:"encoded_path"`
	Color       [3]uint8 `json:"color"`
}

type TripPlanResponse struct {
	Destination CoordinateResponse    `json:"destination"`
	Hotels      []HotelResponse       `json:"hotels"`
	BestMonths  []MonthScoreResponse  `json:"best_months"`
	Forecast    []ForecastDayResponse `json:"forecast"`
	Itinerary   string                `json:"itinerary"`
	Markers     []MarkerResponse      `json:"markers"`
	Polylines   []PolylineResponse    `json:"polylines"`
}
