package main

import (
	"database/sql"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/adapters/hotels"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/config"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/platform/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pool, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/hotels.json")
	if err := initAndSeed(pool, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(pool *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := hotels.InitSchema(pool); err != nil {
		return err
	}
	log.Println("Schema ready.")

	log.Println("Seeding hotels...")
	if err := hotels.SeedFromJSON(pool, seedPath); err != nil {
		return err
	}
	log.Println("Seeding complete.")

	return nil
}
