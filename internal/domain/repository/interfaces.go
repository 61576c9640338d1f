package repository

import (
	"context"

	"GearValue/internal/domain/models"
)

// PriceSource fetches prices for single item ids.
type PriceSource interface {
	LatestHigh(ctx context.Context, id int) (int64, error)
	Timeseries(ctx context.Context, id int, step Timestep) ([]models.Candle, error)
}

// SnapshotPublisher ships valuation snapshots to downstream consumers.
type SnapshotPublisher interface {
	Publish(ctx context.Context, s *models.Snapshot) error
	Close() error
}

type Metrics interface {
	RecordUpstream(endpoint, result string, seconds float64)
	RecordMerge(points int, seconds float64)
	RecordTotal(catalog string, total int64)
	RecordError(kind string)
}
