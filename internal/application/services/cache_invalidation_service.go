package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/domain/providers"
)

// MedicineCacheInvalidator drops cached copies of one medicine.
type MedicineCacheInvalidator interface {
	Invalidate(ctx context.Context, id string) error
}

// CacheInvalidationService evicts cached catalog entries when catalog events
// arrive on the event bus. Every invalidator sees every event.
type CacheInvalidationService struct {
	caches   []MedicineCacheInvalidator
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(eventBus providers.EventBus, caches ...MedicineCacheInvalidator) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		caches:   caches,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start subscribes to catalog updates and processes them in the background.
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelCatalogUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to catalog updates: %w", err)
	}

	go s.processEvents(eventChan)
	log.Info().Str("channel", providers.EventChannelCatalogUpdates).Msg("cache invalidation service started")
	return nil
}

// Stop ends the subscription and waits for the worker to exit.
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	<-s.done
	log.Info().Msg("cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.CatalogEvent) {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

func (s *CacheInvalidationService) handleEvent(event *entities.CatalogEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if event.MedicineID == "" {
		log.Warn().Str("event_id", event.ID).Msg("catalog event without medicine id")
		return
	}

	for _, cache := range s.caches {
		if err := cache.Invalidate(ctx, event.MedicineID); err != nil {
			log.Warn().Err(err).Str("medicine_id", event.MedicineID).Msg("failed to invalidate cached medicine")
		}
	}
	log.Debug().
		Str("event_id", event.ID).
		Str("medicine_id", event.MedicineID).
		Str("event_type", string(event.EventType)).
		Msg("invalidated cached medicine")
}
