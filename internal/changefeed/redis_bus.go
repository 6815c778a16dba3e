package changefeed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const busChannel = "caseflow:changefeed"

// RedisBus bridges the in-process Hub over a redis pub/sub channel so
// that a mutation handled by one API instance reaches subscribers
// connected to every other instance.
type RedisBus struct {
	client *redis.Client
	hub    *Hub
	logger *slog.Logger
}

func NewRedisBus(redisURL, password string, hub *Hub, logger *slog.Logger) (*RedisBus, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisBus{client: rdb, hub: hub, logger: logger}, nil
}

// Publish puts the event on the shared channel. Local subscribers are
// served through Run's subscription like everyone else's, so an event
// is delivered exactly one way regardless of which instance created it.
func (b *RedisBus) Publish(event Event) {
	data, err := event.ToJSON()
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := b.client.Publish(ctx, busChannel, data).Err(); err != nil {
		b.logger.Error("failed to publish change event", "table", event.Table, "error", err)
		// Degrade to local delivery so this instance's subscribers
		// still hear about the change.
		b.hub.Publish(event)
	}
}

// Run consumes the shared channel and feeds events into the local hub
// until ctx is cancelled.
func (b *RedisBus) Run(ctx context.Context) {
	sub := b.client.Subscribe(ctx, busChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			event, err := EventFromJSON([]byte(msg.Payload))
			if err != nil {
				continue
			}
			b.hub.Publish(*event)
		}
	}
}

func (b *RedisBus) Close() error {
	return b.client.Close()
}
