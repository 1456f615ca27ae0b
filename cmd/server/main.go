package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/adapters/geocode"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/adapters/hotels"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/adapters/itinerary"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/adapters/routes"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/adapters/weather"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/api"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/config"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/planner"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/platform/db"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Nominatim, Open-Meteo,
// Anthropic, ORS) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	anthropicKey := os.Getenv("ANTHROPIC_API_KEY")
	if strings.TrimSpace(anthropicKey) == "" {
		log.Fatal("ANTHROPIC_API_KEY is required")
	}

	port := config.Get("PORT", "8080")
	seedPath := config.Get("SEED_PATH", "data/seeds/hotels.json")

	pool, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// Initialize schema and seed demo hotels on startup for local runs.
	if err := hotels.InitSchema(pool); err != nil {
		log.Fatal(err)
	}
	if _, err := os.Stat(seedPath); err == nil {
		if err := hotels.SeedFromJSON(pool, seedPath); err != nil {
			log.Fatal(err)
		}
	}

	// The geocode memo table can share results across instances via
	// Redis; Postgres is the fallback backing store.
	var shared ports.GeocodeCache
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		shared = geocode.NewRedisGeocodeCache(rdb, time.Hour)
	} else {
		shared = geocode.NewPostgresGeocodeCache(pool)
	}

	geocoder := geocode.NewMemoGeocoder(geocode.NewNominatimGeocoder(), shared)

	finder := hotels.NewPostgresHotelFinder(pool)

	generator, err := itinerary.NewAnthropicGenerator(
		anthropicKey,
		anthropic.Model(config.Get("ANTHROPIC_MODEL", "")),
	)
	if err != nil {
		log.Fatal(err)
	}

	router, err := routes.NewORSRouteProvider(orsKey)
	if err != nil {
		log.Fatal(err)
	}

	p := planner.NewPlanner(geocoder, finder, weather.NewOpenMeteoProvider(), generator, router)

	// Timeouts are tuned for cold-cache planning (external API latency,
	// itinerary generation included).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           api.NewRouter(p),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      180 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
