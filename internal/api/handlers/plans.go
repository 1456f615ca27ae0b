package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/api/dto"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/ports"
)

// TripPlanner is the handler's view of the orchestration core.
type TripPlanner interface {
	Plan(ctx context.Context, req domain.TripRequest) (*domain.ResultBundle, error)
}

type PlanHandler struct {
	Planner TripPlanner
}

// Plan runs one orchestration for a trip request and renders the
// resulting bundle. An unresolvable destination maps to 422; every
// other collaborator failure is already degraded inside the bundle.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.TripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	destination := strings.Join(strings.Fields(req.Destination), " ")
	if destination == "" {
		writeError(w, r, http.StatusBadRequest, "destination is required")
		return
	}

	duration := req.DurationDays
	if duration == 0 {
		duration = 4
	}
	if duration < 1 || duration > 10 {
		writeError(w, r, http.StatusBadRequest, "duration_days must be between 1 and 10")
		return
	}

	start := time.Now()
	if s := strings.TrimSpace(req.StartDate); s != "" {
		parsed, err := parseDate(s)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "start_date must be YYYY-MM-DD or RFC 3339")
			return
		}
		start = parsed
	}

	bundle, err := h.Planner.Plan(r.Context(), domain.TripRequest{
		Destination:  destination,
		Preferences:  req.Preferences,
		DurationDays: duration,
		StartDate:    start,
	})
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			writeError(w, r, http.StatusUnprocessableEntity, "destination could not be resolved")
			return
		}
		log.Printf("plan trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toResponse(bundle))
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func toResponse(b *domain.ResultBundle) dto.TripPlanResponse {
	res := dto.TripPlanResponse{
		Destination: dto.CoordinateResponse{Lat: b.Destination.Lat, Lon: b.Destination.Lon},
		Itinerary:   b.Itinerary,
		Hotels:      make([]dto.HotelResponse, 0, len(b.Hotels)),
		BestMonths:  make([]dto.MonthScoreResponse, 0, len(b.BestMonths)),
		Forecast:    make([]dto.ForecastDayResponse, 0, len(b.Forecast)),
		Markers:     make([]dto.MarkerResponse, 0, len(b.Markers)),
		Polylines:   make([]dto.PolylineResponse, 0, len(b.Polylines)),
	}

	for _, h := range b.Hotels {
		res.Hotels = append(res.Hotels, dto.HotelResponse{
			Name:        h.Name,
			Description: h.Description,
			Address:     h.Address,
			Rating:      h.Rating,
		})
	}

	for _, m := range b.BestMonths {
		res.BestMonths = append(res.BestMonths, dto.MonthScoreResponse{Month: m.Month, Score: m.Score})
	}

	for _, f := range b.Forecast {
		res.Forecast = append(res.Forecast, dto.ForecastDayResponse{
			Date:          f.Date.Format("2006-01-02"),
			TempMax:       f.TempMax,
			TempMin:       f.TempMin,
			Precipitation: f.Precipitation,
			WindSpeed:     f.WindSpeed,
			WeatherCode:   f.WeatherCode,
		})
	}

	for _, m := range b.Markers {
		res.Markers = append(res.Markers, dto.MarkerResponse{
			Lat:   m.Coordinates.Lat,
			Lon:   m.Coordinates.Lon,
			Name:  m.Name,
			Day:   m.Day,
			Color: domain.DayColor(m.ColorIndex),
		})
	}

	for _, p := range b.Polylines {
		res.Polylines = append(res.Polylines, dto.PolylineResponse{
			Day:         p.Day,
			EncodedPath: p.EncodedPath,
			Color:       domain.DayColor(p.ColorIndex),
		})
	}

	return res
}
