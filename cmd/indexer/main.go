package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pharmavault/backend/internal/adapters/catalog"
	"github.com/pharmavault/backend/internal/adapters/events"
	"github.com/pharmavault/backend/internal/adapters/search"
	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/domain/providers"
	"github.com/pharmavault/backend/internal/domain/repositories"
	"github.com/pharmavault/backend/internal/infrastructure/clients/postgres"
	"github.com/pharmavault/backend/internal/infrastructure/clients/redis"
	"github.com/pharmavault/backend/internal/infrastructure/clients/typesense"
	"github.com/pharmavault/backend/internal/infrastructure/observability"
	"github.com/pharmavault/backend/pkg/config"
)

func main() {
	var reset, seed bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.BoolVar(&seed, "seed", false, "upsert the bundled medicines into Postgres before indexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger("pharmavault-indexer", cfg.Env, cfg.OTEL.LogLevel)

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Err(err).Str("interval", intervalValue).Msg("invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, cfg, reset, seed); err != nil {
			log.Error().Err(err).Msg("reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset, seed = false, false
		log.Info().Dur("interval", interval).Msg("reindex complete, waiting for next run")

		select {
		case <-ctx.Done():
			log.Info().Msg("indexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, cfg *config.Config, reset, seed bool) error {
	var repo repositories.MedicineRepository
	if cfg.Catalog.Backend == config.CatalogBackendPostgres {
		pgClient, err := postgres.NewClient(ctx, &cfg.Database)
		if err != nil {
			return err
		}
		defer pgClient.Close()

		adapter := catalog.NewPostgresAdapter(pgClient)
		if err := adapter.EnsureSchema(ctx); err != nil {
			return err
		}
		if seed {
			bus := catalogEventBus(ctx, cfg)
			if bus != nil {
				defer bus.Close()
			}
			for _, m := range catalog.SeedMedicines() {
				if err := adapter.Upsert(ctx, m); err != nil {
					return fmt.Errorf("failed to seed %s: %w", m.ID, err)
				}
				publishUpsert(ctx, bus, m.ID)
			}
			log.Info().Int("medicines", len(catalog.SeedMedicines())).Msg("seeded catalog into PostgreSQL")
		}
		repo = adapter
	} else {
		repo = catalog.NewSeededMemoryAdapter()
	}

	if cfg.Typesense.URL == "" {
		log.Info().Msg("TYPESENSE_URL not set, skipping search indexing")
		return nil
	}

	tsClient, err := typesense.NewClient(ctx, &cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Info().Str("collection", search.CollectionName).Msg("deleting collection before reindex")
		if _, err := tsClient.Client().Collection(search.CollectionName).Delete(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to delete collection")
		}
	}

	adapter := search.NewTypesenseAdapter(tsClient, repo)
	if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	medicines, err := repo.List(ctx)
	if err != nil {
		return err
	}

	log.Info().Int("medicines", len(medicines)).Msg("indexing medicines")
	indexed := 0
	for _, m := range medicines {
		if m == nil {
			continue
		}
		if err := adapter.IndexMedicine(ctx, m); err != nil {
			log.Warn().Err(err).Str("medicine_id", m.ID).Msg("failed to index medicine")
			continue
		}
		indexed++
	}
	log.Info().Int("indexed", indexed).Msg("indexing finished")
	return nil
}

// catalogEventBus returns nil when Redis is disabled or unreachable; API
// caches then converge by TTL.
func catalogEventBus(ctx context.Context, cfg *config.Config) providers.EventBus {
	if !cfg.Redis.Enabled {
		return nil
	}
	client, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, catalog events will not be published")
		return nil
	}
	return &closingEventBus{EventBus: events.NewRedisEventBus(client), client: client}
}

// closingEventBus also closes the Redis connection it was built on.
type closingEventBus struct {
	providers.EventBus
	client *redis.Client
}

func (b *closingEventBus) Close() error {
	err := b.EventBus.Close()
	if cerr := b.client.Close(); err == nil {
		err = cerr
	}
	return err
}

func publishUpsert(ctx context.Context, bus providers.EventBus, medicineID string) {
	if bus == nil {
		return
	}
	event := entities.NewCatalogEvent(medicineID, entities.CatalogEventUpserted)
	if err := bus.Publish(ctx, providers.EventChannelCatalogUpdates, event); err != nil {
		log.Warn().Err(err).Str("medicine_id", medicineID).Msg("failed to publish catalog event")
	}
}
