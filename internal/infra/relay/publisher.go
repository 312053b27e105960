package relay

import (
	"context"
	"log/slog"

	"vehicle-rental/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher fans jobs out on Redis Pub/Sub, one channel per topic.
type RedisPublisher struct {
	client redis.UniversalClient
}

func NewRedisPublisher(client redis.UniversalClient) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	if err := p.client.Publish(ctx, topic, payload).Err(); err != nil {
		return errs.Wrapf(err, "publish to %s", topic)
	}
	return nil
}

// LogPublisher stands in for a message bus when none is configured.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (LogPublisher) Publish(_ context.Context, topic string, payload []byte) error {
	slog.Info("outbox message", "topic", topic, "payload", string(payload))
	return nil
}
