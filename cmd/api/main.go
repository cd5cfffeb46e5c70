package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"pulseboard/adapters/ingest"
	"pulseboard/internal/filter"
	"pulseboard/internal/registry"
	"pulseboard/internal/view"
	"pulseboard/ui"
)

// Read-only API server: loads every CSV/XLSX file from DATA_DIR at boot and
// serves derived views over chi. There are no write endpoints; redeploy to
// change the dataset set.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	reg := registry.New()
	views := view.NewService(reg, filter.NewEngine())

	if err := loadDataDir(reg, dataDir); err != nil {
		log.Fatalf("Failed to load data directory %s: %v", dataDir, err)
	}
	if reg.Len() == 0 {
		log.Printf("Warning: no datasets found in %s", dataDir)
	}

	app := ui.NewApp(reg, views)
	if err := app.Start(port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func loadDataDir(reg *registry.Registry, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".csv" && ext != ".xlsx" {
			continue
		}

		decoded, err := ingest.NewReader(filepath.Join(dir, entry.Name())).Read()
		if err != nil {
			log.Printf("Skipping %s: %v", entry.Name(), err)
			continue
		}
		ds, err := reg.Add(decoded.DisplayName, decoded.Rows)
		if err != nil {
			log.Printf("Skipping %s: %v", entry.Name(), err)
			continue
		}
		log.Printf("Loaded %s (%d rows) as %s", ds.DisplayName, ds.RowCount, ds.CanonicalName)
	}
	return nil
}
