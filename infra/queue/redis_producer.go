package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisProducer appends events to a Redis stream with XADD.
type RedisProducer struct {
	client *redis.Client
	stream string
}

func NewRedisProducer(client *redis.Client, stream string) *RedisProducer {
	return &RedisProducer{
		client: client,
		stream: stream,
	}
}

func (p *RedisProducer) PublishMessage(key, value []byte) error {
	if p == nil || p.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"key":     string(key),
			"payload": string(value),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("redis xadd error: %w", err)
	}
	return nil
}

// Close is a no-op; the client is shared and closed by its owner.
func (p *RedisProducer) Close() error {
	return nil
}
