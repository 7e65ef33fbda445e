package cache

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcacheService implements CacheService on memcached. Keeping the
// fetch block entries out of process means a worker restart does not
// clear an active block.
type MemcacheService struct {
	client *memcache.Client
}

// NewMemcacheService creates a cache service against one memcached
// server
func NewMemcacheService(serverAddr string) *MemcacheService {
	return &MemcacheService{
		client: memcache.New(serverAddr),
	}
}

// Get retrieves a value; a miss comes back as memcache's miss error
func (m *MemcacheService) Get(key string) ([]byte, error) {
	item, err := m.client.Get(key)
	if err != nil {
		return nil, err
	}
	return item.Value, nil
}

// Set stores a value with an expiration, rounded down to whole seconds
func (m *MemcacheService) Set(key string, value []byte, expiration time.Duration) error {
	return m.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(expiration.Seconds()),
	})
}

// Delete removes a value
func (m *MemcacheService) Delete(key string) error {
	return m.client.Delete(key)
}
