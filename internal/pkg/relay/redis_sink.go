package relay

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisChannel = "payhook"

type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisSink publishes each message on the Pub/Sub channel "<channel>:<event>".
type RedisSink struct {
	client  redisPublisher
	channel string
}

func NewRedisSink(client redisPublisher, channel string) *RedisSink {
	if channel == "" {
		channel = DefaultRedisChannel
	}
	return &RedisSink{client: client, channel: channel}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Send(ctx context.Context, msg Message) error {
	return s.client.Publish(ctx, s.channel+":"+msg.Event, msg.Body).Err()
}

// Close is a no-op; the client is shared and closed by the cache package.
func (s *RedisSink) Close() error { return nil }
