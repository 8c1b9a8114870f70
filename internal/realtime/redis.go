package realtime

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const redisChannelPrefix = "visit:"

// RedisBroker fans out across API instances through Redis pub/sub.
type RedisBroker struct {
	client *redis.Client
}

func NewRedisBroker(ctx context.Context, url string) (*RedisBroker, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisBroker{client: client}, nil
}

func NewRedisBrokerFromClient(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

func (b *RedisBroker) Publish(ctx context.Context, topic string) error {
	return b.client.Publish(ctx, redisChannelPrefix+topic, "changed").Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context, topic string) (*Subscription, error) {
	ps := b.client.Subscribe(ctx, redisChannelPrefix+topic)

	// wait for the server to confirm so no publish is missed afterwards
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	s := newSubscription(ctx)
	ch := ps.Channel()

	go func() {
		defer ps.Close()
		for {
			select {
			case <-s.done():
				s.finish(nil)
				return
			case _, ok := <-ch:
				if !ok {
					s.finish(ErrConnectionLost)
					return
				}
				s.notify()
			}
		}
	}()

	return s, nil
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}
