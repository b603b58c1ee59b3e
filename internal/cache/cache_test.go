package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSet(t *testing.T) {
	c := New[string](time.Minute, 0)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("host", "biz-1")
	got, ok := c.Get("host")
	require.True(t, ok)
	assert.Equal(t, "biz-1", got)
}

func TestExpiry(t *testing.T) {
	c := New[string](time.Minute, 0)
	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("host", "biz-1")

	current = current.Add(59 * time.Second)
	_, ok := c.Get("host")
	assert.True(t, ok, "entry within TTL")

	current = current.Add(2 * time.Second)
	_, ok = c.Get("host")
	assert.False(t, ok, "entry past TTL")
}

func TestDelete(t *testing.T) {
	c := New[int](time.Minute, 0)
	c.Set("k", 1)
	c.Delete("k")
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestSizeBoundEvictsExpiredFirst(t *testing.T) {
	c := New[int](time.Minute, 2)
	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("a", 1)
	current = current.Add(2 * time.Minute) // "a" expires
	c.Set("b", 2)
	c.Set("c", 3)

	_, ok := c.Get("a")
	assert.False(t, ok, "expired entry purged on pressure")
	_, ok = c.Get("b")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestSizeBoundEvictsOldest(t *testing.T) {
	c := New[int](time.Minute, 2)
	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("old", 1)
	current = current.Add(10 * time.Second)
	c.Set("newer", 2)
	current = current.Add(10 * time.Second)
	c.Set("newest", 3)

	_, ok := c.Get("old")
	assert.False(t, ok, "entry closest to expiry evicted")
	_, ok = c.Get("newer")
	assert.True(t, ok)
	_, ok = c.Get("newest")
	assert.True(t, ok)
}

func TestOverwriteDoesNotEvict(t *testing.T) {
	c := New[int](time.Minute, 2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 3)

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, got)
	_, ok = c.Get("b")
	assert.True(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int](time.Minute, 100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d", j%20)
				c.Set(key, n)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 100)
}
