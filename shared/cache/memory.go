package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	raw       []byte
	expiresAt time.Time
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryCache keeps values in process memory. Values are lost on restart.
func NewMemoryCache() Cache {
	return &memoryCache{
		entries: map[string]entry{},
		now:     time.Now,
	}
}

func (cache *memoryCache) Save(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := encode(value)
	if err != nil {
		return err
	}

	e := entry{raw: raw}
	if ttl > 0 {
		e.expiresAt = cache.now().Add(ttl)
	}

	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.entries[key] = e

	return nil
}

func (cache *memoryCache) Get(_ context.Context, key string, value any) error {
	cache.mu.Lock()
	e, ok := cache.entries[key]

	if ok && !e.expiresAt.IsZero() && !cache.now().Before(e.expiresAt) {
		delete(cache.entries, key)

		ok = false
	}
	cache.mu.Unlock()

	if !ok {
		return ErrMiss
	}

	return decode(e.raw, value)
}

func (cache *memoryCache) Delete(_ context.Context, key string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	delete(cache.entries, key)

	return nil
}
