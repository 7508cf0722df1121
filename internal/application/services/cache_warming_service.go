package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pharmavault/backend/internal/domain/repositories"
)

// CacheWarmingService pre-populates a read-through catalog cache. The
// repository it is given must be the cached one; every read it makes stores
// the result.
type CacheWarmingService struct {
	catalog repositories.MedicineRepository
}

// NewCacheWarmingService creates a new cache warming service
func NewCacheWarmingService(catalog repositories.MedicineRepository) *CacheWarmingService {
	return &CacheWarmingService{catalog: catalog}
}

// WarmCache loads the full list, then each record by id and by both names.
// It returns the number of medicines warmed.
func (s *CacheWarmingService) WarmCache(ctx context.Context) (int, error) {
	medicines, err := s.catalog.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list catalog: %w", err)
	}

	warmed := 0
	categories := make(map[string]struct{})
	for _, m := range medicines {
		if m == nil {
			continue
		}
		if _, err := s.catalog.GetByID(ctx, m.ID); err != nil {
			log.Warn().Err(err).Str("medicine_id", m.ID).Msg("failed to warm medicine")
			continue
		}
		for _, name := range []string{m.Name, m.GenericName} {
			if name == "" {
				continue
			}
			if _, err := s.catalog.GetByName(ctx, name); err != nil {
				log.Debug().Err(err).Str("name", name).Msg("failed to warm name lookup")
			}
		}
		if m.Category != "" {
			categories[m.Category] = struct{}{}
		}
		warmed++
	}

	for category := range categories {
		if _, err := s.catalog.ListByCategory(ctx, category); err != nil {
			log.Debug().Err(err).Str("category", category).Msg("failed to warm category")
		}
	}

	log.Info().Int("medicines", warmed).Int("categories", len(categories)).Msg("catalog cache warmed")
	return warmed, nil
}

// StartPeriodicWarming warms once, then again every interval until ctx ends.
func (s *CacheWarmingService) StartPeriodicWarming(ctx context.Context, interval time.Duration) {
	if _, err := s.WarmCache(ctx); err != nil {
		log.Warn().Err(err).Msg("initial cache warming failed")
	}
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("stopping cache warming")
				return
			case <-ticker.C:
				if _, err := s.WarmCache(ctx); err != nil {
					log.Warn().Err(err).Msg("periodic cache warming failed")
				}
			}
		}
	}()
	log.Info().Dur("interval", interval).Msg("started periodic cache warming")
}
