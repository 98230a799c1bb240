package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetSet(t *testing.T) {
	c := New[int](time.Minute)
	defer c.Close()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, c.Len())

	c.Set("a", 2)
	v, _ = c.Get("a")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())
}

func TestExpiry(t *testing.T) {
	c := New[string](time.Minute)
	defer c.Close()

	c.SetTTL("short", "x", 10*time.Millisecond)
	c.Set("long", "y")

	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get("short")
	assert.False(t, ok)
	_, ok = c.Get("long")
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestSweeperDropsExpired(t *testing.T) {
	c := New[int](10 * time.Millisecond)
	defer c.Close()

	c.Set("a", 1)
	assert.Eventually(t, func() bool {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return len(c.entries) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int](time.Minute)
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Set("k", i)
			c.Get("k")
			c.Len()
		}(i)
	}
	wg.Wait()

	_, ok := c.Get("k")
	assert.True(t, ok)
}

func TestCloseTwice(t *testing.T) {
	c := New[int](time.Minute)
	c.Close()
	assert.NotPanics(t, c.Close)
}
