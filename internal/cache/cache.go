// Package cache provides a generic TTL cache
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e entry[T]) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// Cache is a thread-safe map whose entries expire after a TTL. A background
// sweeper drops expired entries until Close is called.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	ttl     time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a cache whose entries live for ttl
func New[T any](ttl time.Duration) *Cache[T] {
	c := &Cache[T]{
		entries: make(map[string]entry[T]),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Get returns the value for key if present and unexpired
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || e.expired(time.Now()) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with the default TTL
func (c *Cache[T]) Set(key string, value T) {
	c.SetTTL(key, value, c.ttl)
}

// SetTTL stores value under key with a specific TTL
func (c *Cache[T]) SetTTL(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[T]{value: value, expiresAt: time.Now().Add(ttl)}
}

// Len counts unexpired entries
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := time.Now()
	n := 0
	for _, e := range c.entries {
		if !e.expired(now) {
			n++
		}
	}
	return n
}

// Close stops the sweeper. It is safe to call more than once.
func (c *Cache[T]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cache[T]) sweep() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.dropExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache[T]) dropExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
		}
	}
}
