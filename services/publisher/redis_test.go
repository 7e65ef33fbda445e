package publisher

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// This test requires a running Redis instance
// If Redis is not available, the test will be skipped
func TestRedisPublisher(t *testing.T) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   0,
	})
	defer client.Close()

	if _, err := client.Ping(ctx).Result(); err != nil {
		t.Skip("Redis is not available, skipping test")
	}

	publisher := NewRedisPublisher(ctx, "localhost:6379", 0, "test_deal_stream", 1, 10)
	defer publisher.Close()

	// Single stream, so the message lands in test_deal_stream:0
	client.Del(ctx, "test_deal_stream:0")

	err := publisher.Publish("deals", []byte(`{"title":"Widget"}`))
	assert.NoError(t, err)

	entries, err := client.XRange(ctx, "test_deal_stream:0", "-", "+").Result()
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	encoded, ok := entries[0].Values["deals"].(string)
	assert.True(t, ok)

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	assert.NoError(t, err)
	assert.Equal(t, `{"title":"Widget"}`, string(decoded))

	client.Del(ctx, "test_deal_stream:0")
}
