package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	val, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", val)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

	now = now.Add(59 * time.Second)
	_, ok, _ := c.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_SetSweepsExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	for i := 0; i < 10_000; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("k%d", i), "v", time.Minute))
	}
	require.NoError(t, c.Set(ctx, "forever", "v", 0))
	assert.Equal(t, 10_001, c.Len())

	// within the sweep interval nothing is scanned
	now = now.Add(30 * time.Second)
	require.NoError(t, c.Set(ctx, "early", "v", time.Minute))
	assert.Equal(t, 10_002, c.Len())

	now = now.Add(time.Hour)
	require.NoError(t, c.Set(ctx, "late", "v", time.Minute))
	assert.Equal(t, 2, c.Len())

	_, ok, err := c.Get(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, ok)
}
