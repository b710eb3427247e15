package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/consultacerta/noshow-backend/internal/adapters/cache"
	"github.com/consultacerta/noshow-backend/internal/adapters/database"
	"github.com/consultacerta/noshow-backend/internal/adapters/events"
	"github.com/consultacerta/noshow-backend/internal/adapters/model"
	"github.com/consultacerta/noshow-backend/internal/api/handlers"
	"github.com/consultacerta/noshow-backend/internal/api/routes"
	"github.com/consultacerta/noshow-backend/internal/application/services"
	"github.com/consultacerta/noshow-backend/internal/domain/providers"
	"github.com/consultacerta/noshow-backend/internal/infrastructure/clients/postgres"
	"github.com/consultacerta/noshow-backend/internal/infrastructure/clients/redis"
	"github.com/consultacerta/noshow-backend/internal/infrastructure/observability"
	"github.com/consultacerta/noshow-backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Load pretrained model artifacts. The service refuses to start without
	// a valid bundle; every prediction depends on it.
	bundle, err := model.LoadBundle(cfg.Model.Dir, cfg.Model.ThresholdOverride)
	if err != nil {
		log.Fatal().Err(err).Str("model_dir", cfg.Model.Dir).Msg("failed to load model bundle")
	}
	log.Info().Str("model_version", bundle.Version()).Msg("model bundle loaded successfully")

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client")
		// Continue without Redis - the application can work without caching
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized successfully")
	}

	// Initialize adapters
	profileAdapter := database.NewHealthProfileAdapter(pgClient)
	appointmentAdapter := database.NewAppointmentAdapter(pgClient)
	reminderAdapter := database.NewReminderAdapter(pgClient)
	predictionAdapter := database.NewPredictionAdapter(pgClient)

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for real-time prediction updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("event bus initialized successfully")
	} else {
		log.Info().Msg("event bus disabled (Redis not available)")
	}

	// Initialize services
	clusterService := services.NewClusterService(bundle.ClusteringScaler(), bundle.Clustering())
	composer := services.NewFeatureComposer(clusterService, bundle.FeatureOrder())
	scorer := services.NewRiskScorer(bundle.NoShowScaler(), bundle.NoShow(), bundle.Threshold())

	predictionService := services.NewPredictionService(
		profileAdapter,
		appointmentAdapter,
		reminderAdapter,
		predictionAdapter,
		composer,
		scorer,
		bundle.Version(),
	)
	predictionService.SetMetrics(metrics)

	if cacheProvider != nil {
		predictionService.SetCache(cacheProvider, cfg.Model.PredictionCacheTTL)
		log.Info().Int("ttl_seconds", cfg.Model.PredictionCacheTTL).Msg("prediction caching enabled")
	}
	if eventBus != nil {
		predictionService.SetEventBus(eventBus)
	}

	profileService := services.NewHealthProfileService(profileAdapter)
	if cacheProvider != nil {
		profileService.SetCache(appointmentAdapter, cacheProvider)
	}

	// Initialize handlers
	predictionHandler := handlers.NewPredictionHandler(predictionService, predictionAdapter)
	profileHandler := handlers.NewHealthProfileHandler(profileService)

	// Set up router
	router := routes.NewRouter(
		predictionHandler,
		profileHandler,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}
