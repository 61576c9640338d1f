package repository

import (
	"context"
	"errors"
	"time"

	"GearValue/internal/domain/models"
	drepo "GearValue/internal/domain/repository"
	"GearValue/pkg/cache"
	applogger "GearValue/pkg/logger"
)

// CachedSource wraps a PriceSource with a read-through cache. Cache failures
// are logged and bypassed. Upstream errors are never cached.
type CachedSource struct {
	next          drepo.PriceSource
	cache         cache.Service
	latestTTL     time.Duration
	timeseriesTTL time.Duration
	l             *applogger.Logger
}

// NewCachedSource decorates next. A zero TTL disables caching for that call.
func NewCachedSource(next drepo.PriceSource, c cache.Service, latestTTL, timeseriesTTL time.Duration, l *applogger.Logger) *CachedSource {
	if l == nil {
		l = applogger.Nop()
	}
	return &CachedSource{
		next:          next,
		cache:         c,
		latestTTL:     latestTTL,
		timeseriesTTL: timeseriesTTL,
		l:             l,
	}
}

func (s *CachedSource) LatestHigh(ctx context.Context, id int) (int64, error) {
	if s.latestTTL <= 0 {
		return s.next.LatestHigh(ctx, id)
	}
	key := cache.GenerateKeyWithParams("latest", id)

	var high int64
	if s.lookup(ctx, key, &high) {
		return high, nil
	}

	high, err := s.next.LatestHigh(ctx, id)
	if err != nil {
		return 0, err
	}
	s.store(ctx, key, high, s.latestTTL)
	return high, nil
}

func (s *CachedSource) Timeseries(ctx context.Context, id int, step drepo.Timestep) ([]models.Candle, error) {
	if s.timeseriesTTL <= 0 {
		return s.next.Timeseries(ctx, id, step)
	}
	key := cache.GenerateKeyWithParams("timeseries", id, step)

	var candles []models.Candle
	if s.lookup(ctx, key, &candles) {
		return candles, nil
	}

	candles, err := s.next.Timeseries(ctx, id, step)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, candles, s.timeseriesTTL)
	return candles, nil
}

func (s *CachedSource) lookup(ctx context.Context, key string, dest interface{}) bool {
	err := s.cache.Get(ctx, key, dest)
	switch {
	case err == nil:
		s.l.Debug("price cache hit", applogger.String("key", key))
		return true
	case errors.Is(err, cache.ErrCacheMiss):
		s.l.Debug("price cache miss", applogger.String("key", key))
	default:
		s.l.Warn("price cache get error", applogger.String("key", key), applogger.Error(err))
	}
	return false
}

func (s *CachedSource) store(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		s.l.Warn("price cache set error", applogger.String("key", key), applogger.Error(err))
	}
}

var _ drepo.PriceSource = (*CachedSource)(nil)
