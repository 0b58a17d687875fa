package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache keys for built networks
const (
	KeySimilarityNetwork = "network:similarity"
	KeyGrammarNetwork    = "network:grammar"
)

// NetworkCache holds recently built networks until they expire or a sentence is added
type NetworkCache struct {
	cache *gocache.Cache
	ttl   time.Duration

	mu         sync.Mutex
	generation uint64
}

// NewNetworkCache creates a cache whose entries live for ttl.
// A non-positive ttl disables caching.
func NewNetworkCache(ttl time.Duration) *NetworkCache {
	cleanup := 2 * ttl
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &NetworkCache{
		cache: gocache.New(ttl, cleanup),
		ttl:   ttl,
	}
}

// Get retrieves a network from the cache
func (c *NetworkCache) Get(key string) (interface{}, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	return c.cache.Get(key)
}

// Generation identifies the current cache contents. Read it before loading the
// data a network is built from and pass it to SetIfCurrent.
func (c *NetworkCache) Generation() uint64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// SetIfCurrent stores a network under key unless the cache was invalidated
// after generation was read. It reports whether the network was stored.
func (c *NetworkCache) SetIfCurrent(key string, value interface{}, generation uint64) bool {
	if c == nil || c.ttl <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return false
	}
	c.cache.Set(key, value, gocache.DefaultExpiration)
	return true
}

// Invalidate drops every cached network and starts a new generation
func (c *NetworkCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.cache.Flush()
}
