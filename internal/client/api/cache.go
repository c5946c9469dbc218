package api

import (
	"sync"
	"time"
)

// CacheConfig controls entry lifetime and capacity of the tag cache.
type CacheConfig struct {
	TTL     time.Duration
	MaxSize int
}

// CacheStats are simple counters for cache behavior, intended for
// diagnostics.
type CacheStats struct {
	Hits          int64 `json:"hits"`
	Misses        int64 `json:"misses"`
	Sets          int64 `json:"sets"`
	Deletes       int64 `json:"deletes"`
	Invalidations int64 `json:"invalidations"`
	Size          int   `json:"size"`
}

type cachedRecord struct {
	value    any
	tags     []Tag
	cachedAt time.Time
}

// TagCache is an in-memory cache whose entries carry invalidation tags.
// Invalidating a tag drops every entry tagged with it and notifies
// subscribers, the client-side equivalent of the service's mutation/tag
// model.
type TagCache struct {
	mu      sync.RWMutex
	cache   map[string]*cachedRecord
	subs    map[Tag][]func()
	ttl     time.Duration
	maxSize int

	// counters
	hits          int64
	misses        int64
	sets          int64
	deletes       int64
	invalidations int64
}

func NewTagCache(c CacheConfig) *TagCache {
	if c.TTL == 0 {
		c.TTL = 5 * time.Minute
	}
	if c.MaxSize == 0 {
		c.MaxSize = 100
	}
	return &TagCache{
		cache:   make(map[string]*cachedRecord),
		subs:    make(map[Tag][]func()),
		ttl:     c.TTL,
		maxSize: c.MaxSize,
	}
}

// Set stores value under key, associated with the given tags.
func (c *TagCache) Set(key string, value any, tags ...Tag) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.cache[key]; !exists && len(c.cache) >= c.maxSize {
		c.evictOldestLocked()
	}

	c.cache[key] = &cachedRecord{value: value, tags: tags, cachedAt: time.Now()}
	c.sets++
}

// Get returns the cached value for key, or (nil, false) when absent or
// past its TTL.
func (c *TagCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.cache[key]
	if !ok || time.Since(rec.cachedAt) > c.ttl {
		if ok {
			delete(c.cache, key)
		}
		c.misses++
		return nil, false
	}
	c.hits++
	return rec.value, true
}

// Delete removes a single entry.
func (c *TagCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.cache[key]; ok {
		delete(c.cache, key)
		c.deletes++
	}
}

// Invalidate drops every entry carrying any of the given tags and runs the
// subscribers registered for them.
func (c *TagCache) Invalidate(tags ...Tag) {
	c.mu.Lock()
	tagged := make(map[Tag]struct{}, len(tags))
	for _, t := range tags {
		tagged[t] = struct{}{}
	}

	for key, rec := range c.cache {
		for _, t := range rec.tags {
			if _, hit := tagged[t]; hit {
				delete(c.cache, key)
				break
			}
		}
	}
	c.invalidations++

	var callbacks []func()
	for _, t := range tags {
		callbacks = append(callbacks, c.subs[t]...)
	}
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

// OnInvalidate registers fn to run whenever tag is invalidated. The
// callback runs outside the cache lock.
func (c *TagCache) OnInvalidate(tag Tag, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs[tag] = append(c.subs[tag], fn)
}

// Clear empties the cache without notifying subscribers.
func (c *TagCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]*cachedRecord)
}

// Stats returns a snapshot of the counters.
func (c *TagCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{
		Hits:          c.hits,
		Misses:        c.misses,
		Sets:          c.sets,
		Deletes:       c.deletes,
		Invalidations: c.invalidations,
		Size:          len(c.cache),
	}
}

func (c *TagCache) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for key, rec := range c.cache {
		if oldestKey == "" || rec.cachedAt.Before(oldest) {
			oldestKey, oldest = key, rec.cachedAt
		}
	}
	if oldestKey != "" {
		delete(c.cache, oldestKey)
	}
}
