package source

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisSource implements Source over a Redis pub/sub channel. An
// external messenger bridge publishes raw message texts to the channel;
// each payload is one message.
type RedisSource struct {
	client  *redis.Client
	channel string
}

var _ Source = (*RedisSource)(nil)

// NewRedisSource creates a new Redis message source
func NewRedisSource(addr string, db int, channel string) *RedisSource {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisSource{
		client:  client,
		channel: channel,
	}
}

// Listen subscribes to the message channel and invokes handler for each
// payload until ctx is cancelled.
func (s *RedisSource) Listen(ctx context.Context, handler func(text string)) error {
	sub := s.client.Subscribe(ctx, s.channel)
	defer sub.Close()

	// Fail fast when the subscription cannot be established
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			handler(msg.Payload)
		}
	}
}

// Close closes the Redis connection
func (s *RedisSource) Close() error {
	return s.client.Close()
}
