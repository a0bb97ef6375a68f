// ============================================================================
// etds - Predictive Expression Translator
// ============================================================================
//
// Package:     cache
// Description: Thread-safe in-memory cache with TTL and a capacity bound
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cache

import (
	"sync"
	"time"
)

// entry represents a cached item with expiration
type entry[V any] struct {
	value      V
	expiration time.Time
	stored     time.Time
}

func (e *entry[V]) expired(now time.Time) bool {
	if e.expiration.IsZero() {
		return false // Never expires
	}
	return now.After(e.expiration)
}

// Config holds cache configuration
type Config struct {
	MaxItems int
	TTL      time.Duration // 0 keeps entries until evicted
	// CleanupInterval controls the background sweep; 0 disables it
	CleanupInterval time.Duration
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{
		MaxItems:        1024,
		TTL:             10 * time.Minute,
		CleanupInterval: time.Minute,
	}
}

// Cache is a thread-safe in-memory cache keyed by string
type Cache[V any] struct {
	mu       sync.Mutex
	items    map[string]*entry[V]
	maxItems int
	ttl      time.Duration
	now      func() time.Time

	hits   int64
	misses int64

	stop chan struct{}
	once sync.Once
}

// New creates a cache. Call Close to stop the cleanup goroutine.
func New[V any](cfg Config) *Cache[V] {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultConfig().MaxItems
	}

	c := &Cache[V]{
		items:    make(map[string]*entry[V]),
		maxItems: cfg.MaxItems,
		ttl:      cfg.TTL,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	if cfg.CleanupInterval > 0 {
		go c.cleanupLoop(cfg.CleanupInterval)
	}
	return c
}

// Get retrieves a value from the cache
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if ok && e.expired(c.now()) {
		delete(c.items, key)
		ok = false
	}
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	return e.value, true
}

// Set stores a value with the default TTL, evicting the oldest entry
// when the cache is full
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxItems {
		c.evictOldest()
	}

	now := c.now()
	e := &entry[V]{value: value, stored: now}
	if c.ttl > 0 {
		e.expiration = now.Add(c.ttl)
	}
	c.items[key] = e
}

// GetOrSet returns the cached value for key or stores the result of fn.
// Concurrent misses may call fn more than once.
func (c *Cache[V]) GetOrSet(key string, fn func() V) (V, bool) {
	if v, ok := c.Get(key); ok {
		return v, true
	}
	v := fn()
	c.Set(key, v)
	return v, false
}

// Delete removes a value from the cache
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Size returns the number of items in the cache
func (c *Cache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns cache statistics; hitRate is a percentage
func (c *Cache[V]) Stats() (hits, misses int64, hitRate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hits = c.hits
	misses = c.misses
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return
}

// Close stops the cleanup goroutine
func (c *Cache[V]) Close() {
	c.once.Do(func() { close(c.stop) })
}

// evictOldest removes the least recently stored entry (lock held)
func (c *Cache[V]) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for key, e := range c.items {
		if oldestKey == "" || e.stored.Before(oldest) {
			oldestKey = key
			oldest = e.stored
		}
	}
	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}

func (c *Cache[V]) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes all expired entries
func (c *Cache[V]) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.items {
		if e.expired(now) {
			delete(c.items, key)
		}
	}
}
