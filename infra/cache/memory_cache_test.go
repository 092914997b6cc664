package cache_test

import (
	"context"
	"testing"
	"time"

	infracache "github.com/coreledger/banking/infra/cache"
	"github.com/coreledger/banking/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := infracache.NewMemoryCache(0)

	_, ok := c.Get(ctx, "A1")
	assert.False(t, ok)

	c.Set(ctx, &cache.AccountSnapshot{Number: "A1", BalancePaise: 5000, Status: "active"})
	snap, ok := c.Get(ctx, "A1")
	require.True(t, ok)
	assert.Equal(t, int64(5000), snap.BalancePaise)

	c.Delete(ctx, "A1")
	_, ok = c.Get(ctx, "A1")
	assert.False(t, ok)
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := infracache.NewMemoryCache(10 * time.Millisecond)

	c.Set(ctx, &cache.AccountSnapshot{Number: "A1"})
	_, ok := c.Get(ctx, "A1")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get(ctx, "A1")
	assert.False(t, ok)
}

func TestMemoryCache_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := infracache.NewMemoryCache(0)

	c.Set(ctx, &cache.AccountSnapshot{Number: "A1", BalancePaise: 100})
	snap, ok := c.Get(ctx, "A1")
	require.True(t, ok)
	snap.BalancePaise = 999

	again, ok := c.Get(ctx, "A1")
	require.True(t, ok)
	assert.Equal(t, int64(100), again.BalancePaise)
}
