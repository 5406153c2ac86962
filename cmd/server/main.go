package main

import (
	"github.com/sirupsen/logrus"

	"github.com/cinema-engine/backend/internal/api"
	"github.com/cinema-engine/backend/internal/config"
	"github.com/cinema-engine/backend/internal/dataset"
	"github.com/cinema-engine/backend/internal/engine"
	"github.com/cinema-engine/backend/internal/search"
	"github.com/cinema-engine/backend/internal/storage"
)

func main() {
	// Setup Logging
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := logger.WithField("service", "recommender-api")

	entry.Info("Starting Cinema Engine API Service")

	// 1. Config
	cfg := config.Load()

	// 2. Catalog snapshot storage
	store, err := storage.NewFileStorage(cfg.Dataset.DataDir)
	if err != nil {
		entry.Fatalf("Failed to initialize storage: %v", err)
	}

	// 3. Catalog: reuse the snapshot when present, otherwise parse the CSV
	records := loadCatalog(cfg, store, entry)
	if len(records) == 0 {
		entry.Fatal("Catalog is empty; set DATASET_PATH to a CSV with Title and Plot columns")
	}

	// 4. Search index (memory)
	vectorStore := search.NewVectorStore()

	// 5. Engine
	eng, err := engine.NewEngine(cfg, entry, store, vectorStore)
	if err != nil {
		entry.Fatalf("Failed to initialize engine: %v", err)
	}
	eng.LoadCatalog(records)

	// 6. API Server
	server := api.NewServer(eng, entry)

	entry.Infof("Cinema Engine API ready on %s", cfg.Server.Addr)
	if err := server.Start(cfg.Server.Addr); err != nil {
		entry.Fatal(err)
	}
}

func loadCatalog(cfg *config.Config, store storage.CatalogStorage, log *logrus.Entry) []dataset.MovieRecord {
	records, err := store.List()
	if err == nil && len(records) > 0 {
		log.Infof("Pre-loaded %d records from snapshot", len(records))
		return records
	}

	loader := dataset.NewLoader(cfg.Dataset, log)
	records, err = loader.Load()
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	for i := range records {
		if err := store.Save(&records[i]); err != nil {
			log.Warnf("Failed to snapshot record %d: %v", records[i].ID, err)
			break
		}
	}

	return records
}
