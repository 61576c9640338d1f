package usecase

import (
	"context"
	"fmt"
	"time"

	"GearValue/internal/catalog"
	"GearValue/internal/domain/models"
	drepo "GearValue/internal/domain/repository"
	"GearValue/pkg/util"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ValuationUseCase prices the catalog from the latest instant-buy prices.
type ValuationUseCase struct {
	source  drepo.PriceSource
	catalog *catalog.Catalog
	metrics drepo.Metrics
	now     func() time.Time
}

func NewValuationUseCase(source drepo.PriceSource, cat *catalog.Catalog, metrics drepo.Metrics) *ValuationUseCase {
	return &ValuationUseCase{source: source, catalog: cat, metrics: metrics, now: time.Now}
}

// FetchPrices fetches the latest high of every distinct id in items
// concurrently. The first failure cancels the rest and is returned.
func (uc *ValuationUseCase) FetchPrices(ctx context.Context, items []models.Item) (map[int]int64, error) {
	ids := catalog.UniqueIDs(items)
	prices := make([]int64, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			p, err := uc.source.LatestHigh(gctx, id)
			if err != nil {
				return err
			}
			prices[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		uc.metrics.RecordError("latest")
		return nil, err
	}

	out := make(map[int]int64, len(ids))
	for i, id := range ids {
		out[id] = prices[i]
	}
	return out, nil
}

// Total sums the latest price of every distinct id in the catalog.
func (uc *ValuationUseCase) Total(ctx context.Context) (models.Amount, error) {
	prices, err := uc.FetchPrices(ctx, uc.catalog.Items())
	if err != nil {
		return models.Amount{}, err
	}

	var total int64
	for _, p := range prices {
		total += p
	}
	uc.metrics.RecordTotal(uc.catalog.Name(), total)
	return NewAmount(total), nil
}

// Breakdown prices every catalog item in catalog order. Subtotals count an id
// once per occurrence, so the grand total can exceed Total when items share ids.
func (uc *ValuationUseCase) Breakdown(ctx context.Context) (*models.Valuation, error) {
	items := uc.catalog.Items()
	prices, err := uc.FetchPrices(ctx, items)
	if err != nil {
		return nil, err
	}

	v := &models.Valuation{Items: make([]models.ItemValue, 0, len(items))}
	var total int64
	for _, it := range items {
		var sub int64
		for _, id := range it.IDs {
			sub += prices[id]
		}
		total += sub
		v.Items = append(v.Items, models.ItemValue{
			Item:     it.Name,
			IDs:      it.IDs,
			Subtotal: NewAmount(sub),
		})
	}
	v.Total = NewAmount(total)
	return v, nil
}

// Snapshot computes a breakdown and stamps it for publishing.
func (uc *ValuationUseCase) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	v, err := uc.Breakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("breakdown: %w", err)
	}

	subtotals := make(map[string]int64, len(v.Items))
	for _, it := range v.Items {
		subtotals[it.Item] = it.Subtotal.Raw
	}
	uc.metrics.RecordTotal(uc.catalog.Name(), v.Total.Raw)

	return &models.Snapshot{
		ID:        uuid.NewString(),
		Catalog:   uc.catalog.Name(),
		TakenAt:   uc.now().UTC(),
		Total:     v.Total.Raw,
		Subtotals: subtotals,
	}, nil
}

// NewAmount renders raw in both display formats.
func NewAmount(raw int64) models.Amount {
	return models.Amount{
		Raw:       raw,
		Formatted: util.FormatGrouped(raw),
		Compact:   util.FormatGP(raw),
	}
}
