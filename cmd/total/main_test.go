package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"GearValue/internal/catalog"
	"GearValue/internal/domain/models"
	drepo "GearValue/internal/domain/repository"
	"GearValue/internal/usecase"
	"GearValue/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type latestOnly struct {
	prices map[int]int64
	err    error
}

func (s latestOnly) LatestHigh(_ context.Context, id int) (int64, error) {
	return s.prices[id], s.err
}

func (latestOnly) Timeseries(context.Context, int, drepo.Timestep) ([]models.Candle, error) {
	return nil, nil
}

func newValuation(t *testing.T, src drepo.PriceSource) *usecase.ValuationUseCase {
	t.Helper()
	// 12006 is listed twice and counts twice.
	cat, err := catalog.New("gear", []models.Item{
		{Name: "Abyssal tentacle", IDs: []int{12006, 12004}},
		{Name: "Kraken tentacle", IDs: []int{12006}},
	})
	require.NoError(t, err)
	return usecase.NewValuationUseCase(src, cat, metrics.Nop{})
}

func TestRunPrintsOccurrenceTotal(t *testing.T) {
	uc := newValuation(t, latestOnly{prices: map[int]int64{12006: 1_000_000, 12004: 500}})

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), uc, false, &out))
	assert.Equal(t, "2,000,500 gp\n", out.String())
}

func TestRunBreakdown(t *testing.T) {
	uc := newValuation(t, latestOnly{prices: map[int]int64{12006: 1_000_000, 12004: 500}})

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), uc, true, &out))
	assert.Contains(t, out.String(), "Abyssal tentacle")
	assert.Contains(t, out.String(), "1,000,500 gp")
	assert.Contains(t, out.String(), "Total")
	assert.Contains(t, out.String(), "2,000,500 gp")
}

func TestRunFailsOnUpstreamError(t *testing.T) {
	uc := newValuation(t, latestOnly{err: errors.New("dial tcp: refused")})

	var out bytes.Buffer
	assert.Error(t, run(context.Background(), uc, false, &out))
	assert.Empty(t, out.String())
}
