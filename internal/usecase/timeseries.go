package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"GearValue/internal/catalog"
	"GearValue/internal/domain/models"
	drepo "GearValue/internal/domain/repository"
	"GearValue/internal/services/series"

	"golang.org/x/sync/errgroup"
)

// ErrUnknownItem is returned for a group name missing from the catalog.
var ErrUnknownItem = errors.New("unknown item")

// TimeseriesUseCase fetches per-id series and merges them.
type TimeseriesUseCase struct {
	source  drepo.PriceSource
	catalog *catalog.Catalog
	metrics drepo.Metrics
}

func NewTimeseriesUseCase(source drepo.PriceSource, cat *catalog.Catalog, metrics drepo.Metrics) *TimeseriesUseCase {
	return &TimeseriesUseCase{source: source, catalog: cat, metrics: metrics}
}

// Combined merges one series per id occurrence over the whole catalog.
func (uc *TimeseriesUseCase) Combined(ctx context.Context, step drepo.Timestep) ([]models.Candle, error) {
	return uc.merged(ctx, catalog.IDs(uc.catalog.Items()), step)
}

// Group merges the series of one catalog item.
func (uc *TimeseriesUseCase) Group(ctx context.Context, name string, step drepo.Timestep) ([]models.Candle, error) {
	it, ok := uc.catalog.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownItem, name)
	}
	return uc.merged(ctx, it.IDs, step)
}

// Item returns the upstream series of a single id unchanged.
func (uc *TimeseriesUseCase) Item(ctx context.Context, id int, step drepo.Timestep) ([]models.Candle, error) {
	s, err := uc.source.Timeseries(ctx, id, step)
	if err != nil {
		uc.metrics.RecordError("timeseries")
		return nil, err
	}
	if s == nil {
		s = []models.Candle{}
	}
	return s, nil
}

func (uc *TimeseriesUseCase) merged(ctx context.Context, ids []int, step drepo.Timestep) ([]models.Candle, error) {
	all, err := uc.fetch(ctx, ids, step)
	if err != nil {
		uc.metrics.RecordError("timeseries")
		return nil, err
	}

	start := time.Now()
	out := series.Merge(all)
	uc.metrics.RecordMerge(len(out), time.Since(start).Seconds())
	return out, nil
}

func (uc *TimeseriesUseCase) fetch(ctx context.Context, ids []int, step drepo.Timestep) ([][]models.Candle, error) {
	all := make([][]models.Candle, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			s, err := uc.source.Timeseries(gctx, id, step)
			if err != nil {
				return err
			}
			all[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}
