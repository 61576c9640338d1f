package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"GearValue/internal/domain/models"
	drepo "GearValue/internal/domain/repository"
	"GearValue/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	latestCalls int
	seriesCalls int
	err         error
}

func (s *countingSource) LatestHigh(_ context.Context, id int) (int64, error) {
	s.latestCalls++
	if s.err != nil {
		return 0, s.err
	}
	return int64(id) * 10, nil
}

func (s *countingSource) Timeseries(_ context.Context, id int, _ drepo.Timestep) ([]models.Candle, error) {
	s.seriesCalls++
	if s.err != nil {
		return nil, s.err
	}
	return []models.Candle{{Timestamp: 300, AvgHighPrice: int64(id)}}, nil
}

type brokenCache struct{}

func (brokenCache) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("down")
}
func (brokenCache) Get(context.Context, string, interface{}) error { return errors.New("down") }
func (brokenCache) Delete(context.Context, ...string) error        { return nil }
func (brokenCache) Exists(context.Context, ...string) (bool, error) {
	return false, errors.New("down")
}
func (brokenCache) Close() error { return nil }

func TestCachedSourceServesRepeatsFromCache(t *testing.T) {
	src := &countingSource{}
	mc := cache.NewMemoryCache()
	defer mc.Close()
	cs := NewCachedSource(src, mc, time.Minute, time.Minute, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		high, err := cs.LatestHigh(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(70), high)

		series, err := cs.Timeseries(ctx, 7, drepo.TS1h)
		require.NoError(t, err)
		assert.Equal(t, []models.Candle{{Timestamp: 300, AvgHighPrice: 7}}, series)
	}
	assert.Equal(t, 1, src.latestCalls)
	assert.Equal(t, 1, src.seriesCalls)

	// a different timestep is a different key
	_, err := cs.Timeseries(ctx, 7, drepo.TS6h)
	require.NoError(t, err)
	assert.Equal(t, 2, src.seriesCalls)
}

func TestCachedSourceDoesNotCacheErrors(t *testing.T) {
	src := &countingSource{err: errors.New("boom")}
	mc := cache.NewMemoryCache()
	defer mc.Close()
	cs := NewCachedSource(src, mc, time.Minute, time.Minute, nil)
	ctx := context.Background()

	_, err := cs.LatestHigh(ctx, 1)
	require.Error(t, err)
	_, err = cs.LatestHigh(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, 2, src.latestCalls)
}

func TestCachedSourceBypassesBrokenCache(t *testing.T) {
	src := &countingSource{}
	cs := NewCachedSource(src, brokenCache{}, time.Minute, time.Minute, nil)

	high, err := cs.LatestHigh(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(30), high)
}

func TestCachedSourceZeroTTLPassesThrough(t *testing.T) {
	src := &countingSource{}
	mc := cache.NewMemoryCache()
	defer mc.Close()
	cs := NewCachedSource(src, mc, 0, 0, nil)
	ctx := context.Background()

	_, _ = cs.LatestHigh(ctx, 1)
	_, _ = cs.LatestHigh(ctx, 1)
	assert.Equal(t, 2, src.latestCalls)
}
