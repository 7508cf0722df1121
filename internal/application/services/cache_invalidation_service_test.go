package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmavault/backend/internal/application/services"
	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/domain/providers"
)

// channelEventBus delivers published events to a single in-process subscriber.
type channelEventBus struct {
	mu   sync.Mutex
	subs map[string]chan *entities.CatalogEvent
}

func newChannelEventBus() *channelEventBus {
	return &channelEventBus{subs: make(map[string]chan *entities.CatalogEvent)}
}

func (b *channelEventBus) Publish(ctx context.Context, channel string, event *entities.CatalogEvent) error {
	b.mu.Lock()
	ch, ok := b.subs[channel]
	b.mu.Unlock()
	if !ok {
		return errors.New("no subscriber")
	}
	ch <- event
	return nil
}

func (b *channelEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.CatalogEvent, error) {
	ch := make(chan *entities.CatalogEvent, 10)
	b.mu.Lock()
	b.subs[channel] = ch
	b.mu.Unlock()
	return ch, nil
}

func (b *channelEventBus) Unsubscribe(ctx context.Context, channel string) error { return nil }

func (b *channelEventBus) Close() error { return nil }

var _ providers.EventBus = (*channelEventBus)(nil)

type recordingInvalidator struct {
	mu  sync.Mutex
	ids []string
	err error
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
	return r.err
}

func (r *recordingInvalidator) invalidated() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ids...)
}

func TestCacheInvalidationService_InvalidatesOnCatalogEvents(t *testing.T) {
	bus := newChannelEventBus()
	invalidator := &recordingInvalidator{}
	second := &recordingInvalidator{}
	svc := services.NewCacheInvalidationService(bus, invalidator, second)
	require.NoError(t, svc.Start())
	defer svc.Stop()

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, providers.EventChannelCatalogUpdates,
		entities.NewCatalogEvent("med-001", entities.CatalogEventUpserted)))
	require.NoError(t, bus.Publish(ctx, providers.EventChannelCatalogUpdates,
		entities.NewCatalogEvent("med-004", entities.CatalogEventDeleted)))

	require.Eventually(t, func() bool {
		return len(invalidator.invalidated()) == 2
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"med-001", "med-004"}, invalidator.invalidated())
	require.Eventually(t, func() bool {
		return len(second.invalidated()) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestCacheInvalidationService_SkipsEventsWithoutMedicine(t *testing.T) {
	bus := newChannelEventBus()
	invalidator := &recordingInvalidator{err: errors.New("redis down")}
	svc := services.NewCacheInvalidationService(bus, invalidator)
	require.NoError(t, svc.Start())

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, providers.EventChannelCatalogUpdates, &entities.CatalogEvent{ID: "evt-1"}))
	require.NoError(t, bus.Publish(ctx, providers.EventChannelCatalogUpdates,
		entities.NewCatalogEvent("med-002", entities.CatalogEventUpserted)))

	require.Eventually(t, func() bool {
		return len(invalidator.invalidated()) == 1
	}, time.Second, 10*time.Millisecond)

	svc.Stop()
	assert.Equal(t, []string{"med-002"}, invalidator.invalidated())
}
