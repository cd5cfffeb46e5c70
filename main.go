package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"pulseboard/adapters/postgres"
	"pulseboard/internal/config"
	"pulseboard/internal/errors"
	"pulseboard/internal/filter"
	"pulseboard/internal/registry"
	"pulseboard/internal/view"
	"pulseboard/ports"
	"pulseboard/ui"
)

// initDatabase connects to PostgreSQL and ensures the schema exists.
func initDatabase(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "failed to ensure schema")
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Persistence is optional: without DATABASE_URL the dashboard runs
	// purely in memory and datasets live until the process exits.
	var repo ports.DatasetRepository
	if cfg.Database.Enabled {
		db, err := initDatabase(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		repo = postgres.NewDatasetRepository(db)
	}

	reg := registry.New()
	filters := filter.NewEngine()
	views := view.NewServiceWithConfig(reg, filters, cfg.Engine.SampleSize, cfg.Engine.ZThreshold)

	server := ui.NewServer(cfg, reg, filters, views, repo)
	if err := server.RestoreFromRepository(context.Background()); err != nil {
		log.Fatalf("Failed to restore persisted datasets: %v", err)
	}

	if err := server.Run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
