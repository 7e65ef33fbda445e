package config

import (
	"os"
	"strconv"
	"time"

	apperrors "opdeals/dealworker/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Redis configuration
	RedisAddr      string
	RedisDB        int
	MessageChannel string

	// Deal stream configuration
	DealStreamPrefix    string
	DealStreamKey       string
	DealStreamCount     int
	DealStreamMaxLength int

	// Memcache configuration
	MemcacheAddr string

	// Storage configuration
	StorageFile string

	// Fetch configuration
	FetchTimeout   time.Duration
	FetchBlockTime time.Duration

	// Admin API
	ListenAddr string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("DEAL_STREAM_COUNT", "1"))
	streamMaxLen, _ := strconv.Atoi(getEnv("DEAL_STREAM_MAXLEN", "500"))
	fetchTimeout, _ := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "12"))
	blockTime, _ := strconv.Atoi(getEnv("FETCH_BLOCK_SECONDS", "300"))

	return Config{
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:             redisDB,
		MessageChannel:      getEnv("MESSAGE_CHANNEL", "opdeals:messages"),
		DealStreamPrefix:    getEnv("DEAL_STREAM_PREFIX", "opdeals:deals"),
		DealStreamKey:       getEnv("DEAL_STREAM_KEY", "deal"),
		DealStreamCount:     streamCount,
		DealStreamMaxLength: streamMaxLen,
		MemcacheAddr:        getEnv("MEMCACHE_ADDR", "localhost:11211"),
		StorageFile:         getEnv("STORAGE_FILE", "deals.json"),
		FetchTimeout:        time.Duration(fetchTimeout) * time.Second,
		FetchBlockTime:      time.Duration(blockTime) * time.Second,
		ListenAddr:          getEnv("LISTEN_ADDR", ":8000"),
		Environment:         getEnv("OPDEALS_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values that cannot work
func (c *Config) Validate() error {
	if c.RedisAddr == "" {
		return apperrors.NewConfiguration("REDIS_ADDR must not be empty", nil)
	}
	if c.MessageChannel == "" {
		return apperrors.NewConfiguration("MESSAGE_CHANNEL must not be empty", nil)
	}
	if c.StorageFile == "" {
		return apperrors.NewConfiguration("STORAGE_FILE must not be empty", nil)
	}
	if c.FetchTimeout <= 0 {
		return apperrors.NewConfiguration("FETCH_TIMEOUT_SECONDS must be positive", nil)
	}
	if c.DealStreamCount <= 0 {
		return apperrors.NewConfiguration("DEAL_STREAM_COUNT must be positive", nil)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
