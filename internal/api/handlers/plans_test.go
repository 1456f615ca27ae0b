package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/api/dto"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/ports"
)

type stubPlanner struct {
	bundle  *domain.ResultBundle
	err     error
	lastReq domain.TripRequest
	calls   int
}

func (s *stubPlanner) Plan(_ context.Context, req domain.TripRequest) (*domain.ResultBundle, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.bundle, nil
}

func sampleBundle() *domain.ResultBundle {
	return &domain.ResultBundle{
		Destination: domain.Coordinates{Lat: 19.076, Lon: 72.8777},
		Hotels:      []domain.Hotel{{Name: "Sea Breeze", Rating: 4.5}},
		Itinerary:   "## Day 1",
		Markers: []domain.MapMarker{{
			Coordinates: domain.Coordinates{Lat: 18.92, Lon: 72.83},
			Name:        "Gateway of India",
			Day:         1,
			ColorIndex:  0,
		}},
		Polylines: []domain.RoutePolyline{{Day: 1, EncodedPath: "abc", ColorIndex: 0}},
	}
}

func doPlan(t *testing.T, planner TripPlanner, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := &PlanHandler{Planner: planner}
	req := httptest.NewRequest(method, "/plans", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Plan(rec, req)
	return rec
}

func TestPlanReturnsBundle(t *testing.T) {
	stub := &stubPlanner{bundle: sampleBundle()}

	rec := doPlan(t, stub, http.MethodPost,
		`{"destination":"Mumbai","preferences":"spa","duration_days":3,"start_date":"2026-10-01"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp dto.TripPlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Destination.Lat != 19.076 {
		t.Errorf("destination lat = %f", resp.Destination.Lat)
	}
	if len(resp.Markers) != 1 || resp.Markers[0].Color != domain.DayColor(0) {
		t.Errorf("markers = %+v", resp.Markers)
	}

	want := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	if !stub.lastReq.StartDate.Equal(want) {
		t.Errorf("start date = %v, want %v", stub.lastReq.StartDate, want)
	}
}

func TestPlanNormalizesDestinationAndDefaultsDuration(t *testing.T) {
	stub := &stubPlanner{bundle: sampleBundle()}

	rec := doPlan(t, stub, http.MethodPost, `{"destination":"  new   delhi "}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if stub.lastReq.Destination != "new delhi" {
		t.Errorf("destination = %q", stub.lastReq.Destination)
	}
	if stub.lastReq.DurationDays != 4 {
		t.Errorf("duration = %d, want default 4", stub.lastReq.DurationDays)
	}
}

func TestPlanValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty destination", `{"destination":"   "}`},
		{"duration too long", `{"destination":"Mumbai","duration_days":11}`},
		{"negative duration", `{"destination":"Mumbai","duration_days":-1}`},
		{"bad start date", `{"destination":"Mumbai","start_date":"next tuesday"}`},
		{"unknown field", `{"destination":"Mumbai","budget":100}`},
		{"trailing object", `{"destination":"Mumbai"}{"destination":"Pune"}`},
		{"not json", `hello`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubPlanner{bundle: sampleBundle()}
			rec := doPlan(t, stub, http.MethodPost, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if stub.calls != 0 {
				t.Errorf("planner called %d times, want 0", stub.calls)
			}
		})
	}
}

func TestPlanRejectsNonPost(t *testing.T) {
	rec := doPlan(t, &stubPlanner{bundle: sampleBundle()}, http.MethodGet, "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestPlanUnresolvableDestinationIs422(t *testing.T) {
	stub := &stubPlanner{err: ports.ErrNotFound}

	rec := doPlan(t, stub, http.MethodPost, `{"destination":"Atlantis"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestPlanInternalErrorIs500(t *testing.T) {
	stub := &stubPlanner{err: context.DeadlineExceeded}

	rec := doPlan(t, stub, http.MethodPost, `{"destination":"Mumbai"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
