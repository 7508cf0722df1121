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

	"github.com/pharmavault/backend/internal/adapters/cache"
	"github.com/pharmavault/backend/internal/adapters/catalog"
	"github.com/pharmavault/backend/internal/adapters/events"
	"github.com/pharmavault/backend/internal/adapters/search"
	"github.com/pharmavault/backend/internal/api/handlers"
	"github.com/pharmavault/backend/internal/api/middleware"
	"github.com/pharmavault/backend/internal/api/routes"
	"github.com/pharmavault/backend/internal/application/services"
	"github.com/pharmavault/backend/internal/domain/providers"
	"github.com/pharmavault/backend/internal/domain/repositories"
	"github.com/pharmavault/backend/internal/infrastructure/clients/openai"
	"github.com/pharmavault/backend/internal/infrastructure/clients/postgres"
	"github.com/pharmavault/backend/internal/infrastructure/clients/redis"
	"github.com/pharmavault/backend/internal/infrastructure/clients/typesense"
	"github.com/pharmavault/backend/internal/infrastructure/observability"
	"github.com/pharmavault/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env, cfg.OTEL.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
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
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	var healthChecks []handlers.HealthCheck

	// Catalog backend
	var baseCatalog repositories.MedicineRepository
	switch cfg.Catalog.Backend {
	case config.CatalogBackendPostgres:
		pgClient, err := postgres.NewClient(ctx, &cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()

		adapter := catalog.NewPostgresAdapter(pgClient)
		if err := adapter.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure catalog schema")
		}
		baseCatalog = adapter
		healthChecks = append(healthChecks, handlers.HealthCheck{Name: "postgres", Check: pgClient.Ping})
		log.Info().Msg("catalog backed by PostgreSQL")
	default:
		baseCatalog = catalog.NewSeededMemoryAdapter()
		log.Info().Int("medicines", len(catalog.SeedMedicines())).Msg("catalog backed by in-memory seed data")
	}

	// Redis is optional: without it nothing is cached
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient)
			eventBus = events.NewRedisEventBus(redisClient)
			defer eventBus.Close()
			healthChecks = append(healthChecks, handlers.HealthCheck{Name: "redis", Check: redisClient.Ping})
			log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis client initialized")
		}
	}

	medicineRepo := baseCatalog
	if cacheProvider != nil {
		cachedCatalog := catalog.NewCachedAdapter(baseCatalog, cacheProvider, cfg.Redis.CacheTTLSeconds).WithMetrics(metrics)
		medicineRepo = cachedCatalog
		log.Info().Msg("catalog wrapped with caching layer")

		services.NewCacheWarmingService(cachedCatalog).StartPeriodicWarming(ctx, cfg.Redis.WarmInterval)
	}

	// Typesense is optional: search falls back to catalog substring matching
	var searchProvider providers.MedicineSearchProvider
	if cfg.Typesense.URL != "" {
		tsClient, err := typesense.NewClient(ctx, &cfg.Typesense)
		if err != nil {
			log.Warn().Err(err).Msg("Typesense unavailable, using catalog search")
		} else {
			adapter := search.NewTypesenseAdapter(tsClient, medicineRepo)
			if err := adapter.InitSchema(ctx); err != nil {
				log.Warn().Err(err).Msg("failed to init Typesense schema")
			}
			searchProvider = adapter
			log.Info().Str("url", cfg.Typesense.URL).Msg("Typesense search enabled")
		}
	}

	var assistantProvider providers.AssistantProvider
	aiClient := openai.NewClient(&cfg.OpenAI)
	if aiClient.Available() {
		assistantProvider = aiClient
		log.Info().Str("model", cfg.OpenAI.Model).Msg("AI assistant enabled")
	} else {
		log.Info().Msg("OPENAI_API_KEY not set, assistant answers from triage tables")
	}

	// Services
	terms := services.NewTermExpansionService()
	if cfg.Catalog.SynonymsPath != "" {
		if err := terms.LoadFile(cfg.Catalog.SynonymsPath); err != nil {
			log.Warn().Err(err).Str("path", cfg.Catalog.SynonymsPath).Msg("using built-in search synonyms only")
		}
	}
	catalogService := services.NewCatalogService(medicineRepo, searchProvider).WithTermExpansion(terms)
	comparisonService := services.NewComparisonService(medicineRepo)
	authenticityService := services.NewAuthenticityService(medicineRepo, services.WithLatency(cfg.Authenticity.Latency))
	prescriptionService := services.NewPrescriptionService(medicineRepo)
	assistantService := services.NewAssistantService(catalogService, assistantProvider, cacheProvider, cfg.Redis.CacheTTLSeconds)
	conversationService := services.NewConversationService(assistantService, catalogService)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)

		invalidators := []services.MedicineCacheInvalidator{cacheMiddleware}
		if cachedCatalog, ok := medicineRepo.(*catalog.CachedAdapter); ok {
			invalidators = append(invalidators, cachedCatalog)
		}
		invalidation := services.NewCacheInvalidationService(eventBus, invalidators...)
		if err := invalidation.Start(); err != nil {
			log.Warn().Err(err).Msg("failed to start cache invalidation")
		} else {
			defer invalidation.Stop()
		}
	}

	router := routes.NewRouter(routes.Handlers{
		Health:       handlers.NewHealthHandler(healthChecks...),
		Medicine:     handlers.NewMedicineHandler(catalogService, comparisonService),
		Comparison:   handlers.NewComparisonHandler(comparisonService, cfg.Comparison.MaxMedicines),
		Vitals:       handlers.NewVitalsHandler(),
		Authenticity: handlers.NewAuthenticityHandler(authenticityService, metrics),
		Prescription: handlers.NewPrescriptionHandler(prescriptionService),
		Assistant:    handlers.NewAssistantHandler(assistantService, conversationService),
	}, cacheMiddleware, metrics, cfg.Server.AllowedOrigins)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
