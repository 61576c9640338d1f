package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	T int64 `json:"t"`
	V int64 `json:"v"`
}

func TestMemoryCacheRoundTripsJSON(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", []point{{1, 2}, {3, 4}}, time.Minute))

	var got []point
	require.NoError(t, mc.Get(ctx, "k", &got))
	assert.Equal(t, []point{{1, 2}, {3, 4}}, got)

	ok, err := mc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryCacheMissAndExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	var v int64
	assert.ErrorIs(t, mc.Get(ctx, "absent", &v), ErrCacheMiss)

	require.NoError(t, mc.Set(ctx, "short", int64(7), time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	assert.ErrorIs(t, mc.Get(ctx, "short", &v), ErrCacheMiss)
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "a", 1, time.Minute))
	time.Sleep(time.Millisecond)
	require.NoError(t, mc.Set(ctx, "b", 2, time.Minute))
	time.Sleep(time.Millisecond)

	var v int
	require.NoError(t, mc.Get(ctx, "a", &v)) // a is now fresher than b
	time.Sleep(time.Millisecond)
	require.NoError(t, mc.Set(ctx, "c", 3, time.Minute))

	assert.Equal(t, 2, mc.Len())
	assert.ErrorIs(t, mc.Get(ctx, "b", &v), ErrCacheMiss)
	require.NoError(t, mc.Get(ctx, "c", &v))
	assert.Equal(t, 3, v)
}

func TestLayeredCacheFillsL1FromRemote(t *testing.T) {
	remote := NewMemoryCache()
	lc := NewLayeredCache(remote, WithLayeredMemoryTTL(time.Minute))
	defer lc.Close()
	ctx := context.Background()

	require.NoError(t, remote.Set(ctx, "k", point{T: 5, V: 6}, time.Minute))

	var got point
	require.NoError(t, lc.Get(ctx, "k", &got))
	assert.Equal(t, point{T: 5, V: 6}, got)

	// served from L1 once the remote copy is gone
	require.NoError(t, remote.Delete(ctx, "k"))
	got = point{}
	require.NoError(t, lc.Get(ctx, "k", &got))
	assert.Equal(t, point{T: 5, V: 6}, got)
}

func TestGenerateKeyWithParams(t *testing.T) {
	assert.Equal(t, "timeseries:4151:5m", GenerateKeyWithParams("timeseries", 4151, "5m"))
}

func TestMemoryCacheCleanupDropsExpiredEntries(t *testing.T) {
	mc := NewMemoryCache(WithMemoryCleanup(5 * time.Millisecond))
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "short", int64(1), time.Millisecond))
	require.NoError(t, mc.Set(ctx, "long", int64(2), time.Hour))

	assert.Eventually(t, func() bool { return mc.Len() == 1 }, time.Second, 5*time.Millisecond)

	var v int64
	require.NoError(t, mc.Get(ctx, "long", &v))
	assert.Equal(t, int64(2), v)
}

func TestWithRedisPool(t *testing.T) {
	cfg := &RedisConfig{PoolSize: 10, MinIdleConns: 2, PoolTimeout: 30 * time.Second}

	WithRedisPool(32, 0, 5*time.Second)(cfg)
	assert.Equal(t, 32, cfg.PoolSize)
	assert.Equal(t, 2, cfg.MinIdleConns)
	assert.Equal(t, 5*time.Second, cfg.PoolTimeout)
}
