package api

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/api/handlers"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner handlers.TripPlanner) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{Planner: planner}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/plans", planHandler.Plan)

	// The bundle is consumed by a browser form, so cross-origin POSTs
	// must be allowed.
	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	})

	return requestIDMiddleware(loggingMiddleware(c.Handler(mux)))
}
