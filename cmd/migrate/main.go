package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/recipeshare/catalog/backend/config"
	"github.com/recipeshare/catalog/backend/internal/database"
	"github.com/recipeshare/catalog/backend/internal/logging"
)

func main() {
	// Parse command line flags
	seed := flag.Bool("seed", true, "Insert missing dietary tags and difficulty levels after migrating")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db) //nolint:errcheck

	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}
	logger.Info("schema is up to date", zap.String("driver", cfg.DBDriver))

	if !*seed {
		return
	}
	if err := database.SeedReferenceData(context.Background(), db, logger); err != nil {
		logger.Fatal("failed to seed reference data", zap.Error(err))
	}
	logger.Info("reference data is up to date")
}
