package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, "localhost:6379", config.RedisAddr)
	assert.Equal(t, 0, config.RedisDB)
	assert.Equal(t, "opdeals:messages", config.MessageChannel)
	assert.Equal(t, "opdeals:deals", config.DealStreamPrefix)
	assert.Equal(t, 1, config.DealStreamCount)
	assert.Equal(t, "localhost:11211", config.MemcacheAddr)
	assert.Equal(t, "deals.json", config.StorageFile)
	assert.Equal(t, 12*time.Second, config.FetchTimeout)
	assert.Equal(t, ":8000", config.ListenAddr)

	// Test with environment variables
	os.Setenv("REDIS_ADDR", "redis.example.com:6379")
	os.Setenv("REDIS_DB", "1")
	os.Setenv("MESSAGE_CHANNEL", "test:messages")
	os.Setenv("STORAGE_FILE", "/tmp/deals_test.json")
	os.Setenv("FETCH_TIMEOUT_SECONDS", "5")

	config = LoadConfig()
	assert.Equal(t, "redis.example.com:6379", config.RedisAddr)
	assert.Equal(t, 1, config.RedisDB)
	assert.Equal(t, "test:messages", config.MessageChannel)
	assert.Equal(t, "/tmp/deals_test.json", config.StorageFile)
	assert.Equal(t, 5*time.Second, config.FetchTimeout)

	// Clean up
	os.Unsetenv("REDIS_ADDR")
	os.Unsetenv("REDIS_DB")
	os.Unsetenv("MESSAGE_CHANNEL")
	os.Unsetenv("STORAGE_FILE")
	os.Unsetenv("FETCH_TIMEOUT_SECONDS")
}

func TestValidate(t *testing.T) {
	config := LoadConfig()
	assert.NoError(t, config.Validate())

	config.RedisAddr = ""
	assert.Error(t, config.Validate())

	config = LoadConfig()
	config.FetchTimeout = 0
	assert.Error(t, config.Validate())

	config = LoadConfig()
	config.DealStreamCount = 0
	assert.Error(t, config.Validate())
}
