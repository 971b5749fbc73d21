package broadcaster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Config holds configuration for the Redis broadcaster
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisBroadcaster implements the Broadcaster interface using Redis pub/sub
type redisBroadcaster struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed broadcaster
func NewRedis(cfg *Config) (*redisBroadcaster, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisBroadcaster{
		client: cfg.RedisClient,
	}, nil
}

func channelName(roomID string) string {
	return fmt.Sprintf("room:%s", roomID)
}

// Publish delivers an event to every subscriber of the room's channel
func (b *redisBroadcaster) Publish(ctx context.Context, roomID string, event *Event) error {
	if roomID == "" || event == nil {
		return errors.New("room ID and event cannot be empty")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, channelName(roomID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Subscribe opens a subscription to the room's channel. Events arrive on
// the returned subscription's channel until Close is called. Messages that
// fail to decode are dropped.
func (b *redisBroadcaster) Subscribe(ctx context.Context, roomID string) (Subscription, error) {
	if roomID == "" {
		return nil, errors.New("room ID cannot be empty")
	}

	pubsub := b.client.Subscribe(ctx, channelName(roomID))

	// Force the subscription to be established before returning so a
	// publish issued right after Subscribe is not missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to room channel: %w", err)
	}

	sub := &redisSubscription{
		pubsub: pubsub,
		events: make(chan *Event, 64),
	}

	go sub.pump()

	return sub, nil
}

// redisSubscription adapts a redis PubSub to the Subscription interface
type redisSubscription struct {
	pubsub *redis.PubSub
	events chan *Event
}

func (s *redisSubscription) pump() {
	defer close(s.events)

	for msg := range s.pubsub.Channel() {
		var event Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			continue
		}

		s.events <- &event
	}
}

// Events returns the channel events arrive on
func (s *redisSubscription) Events() <-chan *Event {
	return s.events
}

// Close tears down the subscription and closes the events channel
func (s *redisSubscription) Close() error {
	return s.pubsub.Close()
}
