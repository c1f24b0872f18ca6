package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache_SetGetRoundTrip(t *testing.T) {
	c := NewMemoryService()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	err := c.Set(ctx, "k1", payload{Name: "tree", Count: 3}, time.Minute)
	assert.NoError(t, err)

	var got payload
	err = c.Get(ctx, "k1", &got)
	assert.NoError(t, err)
	assert.Equal(t, "tree", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestMemoryCache_MissingKey(t *testing.T) {
	c := NewMemoryService()

	var got string
	err := c.Get(context.Background(), "absent", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_ExpiryWithClock(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	c := NewMemoryServiceWithClock(func() time.Time { return clock() })
	ctx := context.Background()

	err := c.Set(ctx, "k1", "v1", time.Minute)
	assert.NoError(t, err)

	var got string
	assert.NoError(t, c.Get(ctx, "k1", &got))

	later := now.Add(2 * time.Minute)
	clock = func() time.Time { return later }

	err = c.Get(ctx, "k1", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryService()
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k1", "v1", time.Minute))
	assert.NoError(t, c.Set(ctx, "k2", "v2", time.Minute))

	assert.NoError(t, c.Delete(ctx, "k1", "k2"))

	var got string
	assert.ErrorIs(t, c.Get(ctx, "k1", &got), ErrCacheMiss)
	assert.ErrorIs(t, c.Get(ctx, "k2", &got), ErrCacheMiss)
}

func TestMemoryCache_ZeroTTLFallsBackToDefault(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	c := NewMemoryServiceWithClock(func() time.Time { return clock() })
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k1", "v1", 0))

	// still live just inside the default window
	later := now.Add(TTLDefault - time.Second)
	clock = func() time.Time { return later }

	var got string
	assert.NoError(t, c.Get(ctx, "k1", &got))
	assert.Equal(t, "v1", got)
}

func TestTreeKey(t *testing.T) {
	assert.Equal(t, "tree:art-1", TreeKey("art-1"))
}
