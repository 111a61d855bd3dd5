package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/recipeshare/catalog/backend/config"
	"github.com/recipeshare/catalog/backend/internal/cache"
	"github.com/recipeshare/catalog/backend/internal/database"
	"github.com/recipeshare/catalog/backend/internal/logging"
	"github.com/recipeshare/catalog/backend/internal/repository"
	"github.com/recipeshare/catalog/backend/internal/router"
	"github.com/recipeshare/catalog/backend/internal/server"
	"github.com/recipeshare/catalog/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// Initialize database
	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db) //nolint:errcheck

	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}
	if err := database.SeedReferenceData(context.Background(), db, logger); err != nil {
		logger.Fatal("failed to seed reference data", zap.Error(err))
	}

	// Redis backs the shared cache and the write rate limiter
	var rdb redis.UniversalClient
	if cfg.UsesRedis() {
		client, err := database.NewRedisClient(cfg, logger)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		rdb = client
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	store, err := cache.New(cfg, rdb, registry, logger)
	if err != nil {
		logger.Fatal("failed to create cache", zap.Error(err))
	}

	// Initialize services
	recipeService := service.NewRecipeService(
		repository.NewRecipeRepository(db),
		store,
		logger,
		service.WithCacheTTL(cfg.CacheTTL),
	)

	handler := router.SetupRouter(router.Dependencies{
		Config:        cfg,
		RecipeService: recipeService,
		Redis:         rdb,
		Registry:      registry,
		Logger:        logger,
	})
	srv := server.New(cfg, handler, logger)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}
