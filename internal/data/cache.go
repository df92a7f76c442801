package data

import (
	"os"
	"sync"
	"time"
)

// CacheEntry is one cached raw model download.
type CacheEntry struct {
	Raw       []byte
	ExpiresAt time.Time
}

// DownloadCache provides in-memory caching for BiGG model downloads.
// Genome-scale model JSON runs to tens of megabytes; re-downloading the same
// model for every screen run is wasteful and unkind to the public API.
//
// The cache is opt-in via ENABLE_BIGG_CACHE=true and disabled when
// API_ENV=production.
type DownloadCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
}

var globalCache *DownloadCache
var cacheOnce sync.Once

// GetCache returns the global cache instance if caching is enabled, nil
// otherwise. All DownloadCache methods are nil-safe.
func GetCache() *DownloadCache {
	if os.Getenv("ENABLE_BIGG_CACHE") != "true" {
		return nil
	}
	if os.Getenv("API_ENV") == "production" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 24 * time.Hour
		if ttlStr := os.Getenv("BIGG_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}

		globalCache = &DownloadCache{
			store: make(map[string]*CacheEntry),
			ttl:   ttl,
		}

		go globalCache.cleanup()
	})

	return globalCache
}

// Get retrieves a cached download if present and not expired.
func (c *DownloadCache) Get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Raw, true
}

// Set stores a raw download.
func (c *DownloadCache) Set(key string, raw []byte) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Raw:       raw,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries.
func (c *DownloadCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

func (c *DownloadCache) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.ExpiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}
