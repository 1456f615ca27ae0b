package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/ports"
)

func testGeocoder(ts *httptest.Server) *NominatimGeocoder {
	return &NominatimGeocoder{
		session:   &http.Client{Timeout: 2 * time.Second},
		baseURL:   ts.URL,
		userAgent: "test/1.0",
	}
}

func TestNominatimResolve(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Gateway of India, Mumbai, India" {
			t.Errorf("q = %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("limit = %q, want 1", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"18.9219841","lon":"72.8346543","display_name":"Gateway of India"}]`))
	}))
	defer ts.Close()

	c, err := testGeocoder(ts).Resolve(context.Background(), "Gateway of India,  Mumbai,  India")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lat != 18.9219841 || c.Lon != 72.8346543 {
		t.Errorf("coordinates = %+v", c)
	}
}

func TestNominatimResolveNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	_, err := testGeocoder(ts).Resolve(context.Background(), "no such place")
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestNominatimResolveEmptyInput(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty input")
	}))
	defer ts.Close()

	_, err := testGeocoder(ts).Resolve(context.Background(), "   ")
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestNominatimResolveServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer ts.Close()

	_, err := testGeocoder(ts).Resolve(context.Background(), "Mumbai")
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if errors.Is(err, ports.ErrNotFound) {
		t.Fatal("transport errors must not masquerade as NotFound")
	}
}
