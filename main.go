package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"opdeals/dealworker/config"
	"opdeals/dealworker/internal/scraper"
	"opdeals/dealworker/logger"
	"opdeals/dealworker/services/api"
	"opdeals/dealworker/services/cache"
	"opdeals/dealworker/services/publisher"
	"opdeals/dealworker/services/source"
	"opdeals/dealworker/services/storage"
	"opdeals/dealworker/services/watcher"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("message_channel", cfg.MessageChannel).
		Dur("fetch_timeout", cfg.FetchTimeout).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize services
	services, err := initializeServices(ctx, &cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer services.Cleanup()

	// Assemble the extraction pipeline
	fetcher := scraper.NewPageFetcher(cfg.FetchTimeout, services.Cache, cfg.FetchBlockTime)
	pipeline := scraper.NewPipeline(fetcher)

	// Create the watcher
	w := watcher.NewWatcher(
		ctx,
		services.Source,
		pipeline,
		services.Storage,
		services.Publisher,
		cfg.DealStreamKey,
	)

	// Start the admin API
	apiServer := api.NewServer(services.Storage, nil)
	go func() {
		if err := apiServer.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
			log.Error().Err(err).Msg("Admin API exited with error")
		}
	}()

	// Start watcher in a goroutine
	watcherDone := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting deal watcher")
		watcherDone <- w.Start()
	}()

	// Wait for shutdown signal or watcher error
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	case err := <-watcherDone:
		if err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("Watcher exited with error")
		} else {
			log.Info().Msg("Watcher exited normally")
		}
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down gracefully...")
}

// Services holds all the initialized services
type Services struct {
	Cache     cache.CacheService
	Storage   storage.Storage
	Publisher publisher.Publisher
	Source    source.Source
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
	if s.Source != nil {
		s.Source.Close()
	}
}

// initializeServices initializes all required services
func initializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	services := &Services{}

	// Initialize cache service
	cacheService := cache.NewMemcacheService(cfg.MemcacheAddr)
	if cacheService == nil {
		return nil, fmt.Errorf("failed to create cache service")
	}
	services.Cache = cacheService

	logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)

	// Initialize storage
	store, err := storage.NewFileStorage(cfg.StorageFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}
	services.Storage = store

	logger.Info("Using deal storage at %s", cfg.StorageFile)

	// Initialize publisher
	redisPublisher := publisher.NewRedisPublisher(
		ctx,
		cfg.RedisAddr,
		cfg.RedisDB,
		cfg.DealStreamPrefix,
		cfg.DealStreamCount,
		cfg.DealStreamMaxLength,
	)
	if redisPublisher == nil {
		return nil, fmt.Errorf("failed to create redis publisher")
	}
	services.Publisher = redisPublisher

	logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
		cfg.RedisAddr, cfg.RedisDB, cfg.DealStreamPrefix)

	// Initialize message source
	services.Source = source.NewRedisSource(cfg.RedisAddr, cfg.RedisDB, cfg.MessageChannel)

	logger.Info("Subscribing to message channel %s", cfg.MessageChannel)

	return services, nil
}
