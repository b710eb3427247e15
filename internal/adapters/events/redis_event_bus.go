package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/consultacerta/noshow-backend/internal/domain/entities"
	"github.com/consultacerta/noshow-backend/internal/domain/providers"
	redisclient "github.com/consultacerta/noshow-backend/internal/infrastructure/clients/redis"
)

// listenerBuffer bounds per-listener backlog. A listener that falls this far
// behind starts dropping events rather than blocking the fan-out.
const listenerBuffer = 100

// RedisEventBus implements the EventBus interface using Redis Pub/Sub
type RedisEventBus struct {
	client    *redisclient.Client
	pubsubs   map[string]*redis.PubSub
	listeners map[string]map[chan *entities.PredictionEvent]struct{}
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewRedisEventBus creates a new Redis-based event bus
func NewRedisEventBus(client *redisclient.Client) providers.EventBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		client:    client,
		pubsubs:   make(map[string]*redis.PubSub),
		listeners: make(map[string]map[chan *entities.PredictionEvent]struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Publish publishes a prediction event to all listeners on the channel
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.PredictionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Client().Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.Debug().Str("channel", channel).Str("event_id", event.ID).Msg("published prediction event")
	return nil
}

// Subscribe registers a listener on a channel. The returned channel is closed
// when ctx is cancelled or the bus shuts down.
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.PredictionEvent, error) {
	b.mu.Lock()

	if _, open := b.pubsubs[channel]; !open {
		pubsub := b.client.Client().Subscribe(b.ctx, channel)
		b.pubsubs[channel] = pubsub
		go b.fanOut(channel, pubsub)
	}

	if b.listeners[channel] == nil {
		b.listeners[channel] = make(map[chan *entities.PredictionEvent]struct{})
	}

	events := make(chan *entities.PredictionEvent, listenerBuffer)
	b.listeners[channel][events] = struct{}{}
	count := len(b.listeners[channel])
	b.mu.Unlock()

	log.Debug().Str("channel", channel).Int("listeners", count).Msg("subscribed to channel")

	go func() {
		<-ctx.Done()
		b.dropListener(channel, events)
	}()

	return events, nil
}

// fanOut reads messages from the Redis subscription and broadcasts each to the
// channel's listeners.
func (b *RedisEventBus) fanOut(channel string, pubsub *redis.PubSub) {
	defer func() {
		if err := b.closeChannel(channel); err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("failed to close channel")
		}
	}()

	messages := pubsub.Channel()
	for {
		select {
		case <-b.ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}

			var event entities.PredictionEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Warn().Err(err).Str("channel", channel).Msg("failed to unmarshal event")
				continue
			}

			b.mu.RLock()
			for listener := range b.listeners[channel] {
				select {
				case listener <- &event:
				default:
					log.Warn().Str("channel", channel).Str("event_id", event.ID).Msg("listener buffer full, dropping event")
				}
			}
			b.mu.RUnlock()
		}
	}
}

func (b *RedisEventBus) dropListener(channel string, events chan *entities.PredictionEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	listeners, ok := b.listeners[channel]
	if !ok {
		return
	}
	if _, registered := listeners[events]; !registered {
		return
	}

	delete(listeners, events)
	close(events)

	// Last listener gone, tear down the Redis subscription too.
	if len(listeners) == 0 {
		delete(b.listeners, channel)
		if pubsub, open := b.pubsubs[channel]; open {
			_ = pubsub.Close()
			delete(b.pubsubs, channel)
		}
	}
}

func (b *RedisEventBus) closeChannel(channel string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if listeners, ok := b.listeners[channel]; ok {
		for listener := range listeners {
			close(listener)
		}
		delete(b.listeners, channel)
	}

	if pubsub, open := b.pubsubs[channel]; open {
		if err := pubsub.Close(); err != nil {
			return fmt.Errorf("failed to close subscription %s: %w", channel, err)
		}
		delete(b.pubsubs, channel)
	}

	return nil
}

// Unsubscribe tears down a channel and all its listeners
func (b *RedisEventBus) Unsubscribe(ctx context.Context, channel string) error {
	if err := b.closeChannel(channel); err != nil {
		return err
	}
	log.Debug().Str("channel", channel).Msg("unsubscribed from channel")
	return nil
}

// Close closes the event bus and all subscriptions
func (b *RedisEventBus) Close() error {
	b.cancel()

	b.mu.RLock()
	channels := make([]string, 0, len(b.pubsubs))
	for channel := range b.pubsubs {
		channels = append(channels, channel)
	}
	b.mu.RUnlock()

	var errs []error
	for _, channel := range channels {
		if err := b.closeChannel(channel); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing event bus: %v", errs)
	}

	return nil
}
