package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_GetSet(t *testing.T) {
	c := New[string, int](time.Hour, 0, nil)

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestCache_Expiry(t *testing.T) {
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	c := New[string, string](24*time.Hour, 0, clock)
	c.Set("ids", "cached")

	now = now.Add(23 * time.Hour)
	_, ok := c.Get("ids")
	assert.True(t, ok)

	now = now.Add(2 * time.Hour)
	_, ok = c.Get("ids")
	assert.False(t, ok)
}

func TestCache_OverwriteAtCapacityKeepsOtherEntries(t *testing.T) {
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	c := New[int, int](time.Hour, 2, clock)
	c.Set(1, 1)
	c.Set(2, 2)
	c.Set(1, 99)

	assert.Equal(t, 2, c.Len())
	v, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 99, v)
	_, ok = c.Get(2)
	assert.True(t, ok, "overwrite must not evict an unrelated entry")
}

func TestCache_CapacityEviction(t *testing.T) {
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	c := New[int, int](time.Hour, 2, clock)
	c.Set(1, 1)
	now = now.Add(time.Minute)
	c.Set(2, 2)
	now = now.Add(time.Minute)
	c.Set(3, 3)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(1)
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = c.Get(3)
	assert.True(t, ok)
}
