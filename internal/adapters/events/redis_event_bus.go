package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/domain/providers"
	redisclient "github.com/pharmavault/backend/internal/infrastructure/clients/redis"
)

// subscriberBuffer bounds how far a slow consumer can lag before events are
// dropped for it. Dropped events only delay eviction until the TTL.
const subscriberBuffer = 100

// RedisEventBus carries catalog events over Redis Pub/Sub. One Redis
// subscription per channel fans out to any number of local subscribers.
type RedisEventBus struct {
	client *redisclient.Client

	mu       sync.Mutex
	channels map[string]*channelFanout

	ctx    context.Context
	cancel context.CancelFunc
}

type channelFanout struct {
	pubsub      *redis.PubSub
	subscribers map[chan *entities.CatalogEvent]struct{}
}

var _ providers.EventBus = (*RedisEventBus)(nil)

// NewRedisEventBus creates a new Redis-based event bus
func NewRedisEventBus(client *redisclient.Client) *RedisEventBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		client:   client,
		channels: make(map[string]*channelFanout),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Publish sends event to every subscriber of channel, in any process.
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.CatalogEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := b.client.Client().Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.Debug().Str("channel", channel).Str("event_id", event.ID).Str("medicine_id", event.MedicineID).Msg("published catalog event")
	return nil
}

// Subscribe returns a channel of events that stays open until ctx ends, the
// channel is unsubscribed or the bus is closed.
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.CatalogEvent, error) {
	if b.ctx.Err() != nil {
		return nil, errors.New("event bus is closed")
	}

	b.mu.Lock()
	fan, ok := b.channels[channel]
	if !ok {
		fan = &channelFanout{
			pubsub:      b.client.Client().Subscribe(b.ctx, channel),
			subscribers: make(map[chan *entities.CatalogEvent]struct{}),
		}
		b.channels[channel] = fan
		go b.receive(channel, fan)
	}
	events := make(chan *entities.CatalogEvent, subscriberBuffer)
	fan.subscribers[events] = struct{}{}
	count := len(fan.subscribers)
	b.mu.Unlock()

	log.Info().Str("channel", channel).Int("subscribers", count).Msg("subscribed to channel")

	go func() {
		select {
		case <-ctx.Done():
		case <-b.ctx.Done():
		}
		b.removeSubscriber(channel, fan, events)
	}()
	return events, nil
}

func (b *RedisEventBus) receive(channel string, fan *channelFanout) {
	defer b.closeChannel(channel, fan)

	for msg := range fan.pubsub.Channel() {
		var event entities.CatalogEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("dropping malformed event")
			continue
		}

		b.mu.Lock()
		for subscriber := range fan.subscribers {
			select {
			case subscriber <- &event:
			default:
				log.Warn().Str("channel", channel).Str("event_id", event.ID).Msg("subscriber channel full, skipping event")
			}
		}
		b.mu.Unlock()
	}
}

func (b *RedisEventBus) removeSubscriber(channel string, fan *channelFanout, events chan *entities.CatalogEvent) {
	b.mu.Lock()
	if _, ok := fan.subscribers[events]; !ok {
		b.mu.Unlock()
		return
	}
	delete(fan.subscribers, events)
	close(events)
	last := len(fan.subscribers) == 0
	b.mu.Unlock()

	if last {
		b.closeChannel(channel, fan)
	}
}

// closeChannel tears down the Redis subscription and closes every local
// subscriber. It is safe to call more than once.
func (b *RedisEventBus) closeChannel(channel string, fan *channelFanout) error {
	b.mu.Lock()
	if b.channels[channel] == fan {
		delete(b.channels, channel)
	}
	for subscriber := range fan.subscribers {
		close(subscriber)
		delete(fan.subscribers, subscriber)
	}
	b.mu.Unlock()

	if err := fan.pubsub.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return fmt.Errorf("failed to close subscription %s: %w", channel, err)
	}
	log.Debug().Str("channel", channel).Msg("closed subscription")
	return nil
}

// Unsubscribe drops the Redis subscription for channel and closes its
// subscribers.
func (b *RedisEventBus) Unsubscribe(ctx context.Context, channel string) error {
	b.mu.Lock()
	fan, ok := b.channels[channel]
	b.mu.Unlock()
	if !ok {
		return nil
	}
	return b.closeChannel(channel, fan)
}

// Close closes every subscription. The bus cannot be reused.
func (b *RedisEventBus) Close() error {
	b.cancel()

	b.mu.Lock()
	fans := make(map[string]*channelFanout, len(b.channels))
	for channel, fan := range b.channels {
		fans[channel] = fan
	}
	b.mu.Unlock()

	var errs []error
	for channel, fan := range fans {
		if err := b.closeChannel(channel, fan); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("errors closing event bus: %w", err)
	}

	log.Info().Msg("event bus closed")
	return nil
}
