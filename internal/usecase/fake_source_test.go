package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"GearValue/internal/catalog"
	"GearValue/internal/domain/models"
	drepo "GearValue/internal/domain/repository"

	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu     sync.Mutex
	prices map[int]int64
	series map[int][]models.Candle
	fail   map[int]error
	calls  map[int]int
	steps  []drepo.Timestep
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		prices: map[int]int64{},
		series: map[int][]models.Candle{},
		fail:   map[int]error{},
		calls:  map[int]int{},
	}
}

func (f *fakeSource) LatestHigh(_ context.Context, id int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[id]++
	if err := f.fail[id]; err != nil {
		return 0, err
	}
	p, ok := f.prices[id]
	if !ok {
		return 0, fmt.Errorf("no price for %d", id)
	}
	return p, nil
}

func (f *fakeSource) Timeseries(_ context.Context, id int, step drepo.Timestep) ([]models.Candle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[id]++
	f.steps = append(f.steps, step)
	if err := f.fail[id]; err != nil {
		return nil, err
	}
	return f.series[id], nil
}

type recordingMetrics struct {
	mu     sync.Mutex
	totals map[string]int64
	errors []string
	merges int
}

func (m *recordingMetrics) RecordUpstream(string, string, float64) {}

func (m *recordingMetrics) RecordMerge(int, float64) {
	m.mu.Lock()
	m.merges++
	m.mu.Unlock()
}

func (m *recordingMetrics) RecordTotal(cat string, total int64) {
	m.mu.Lock()
	if m.totals == nil {
		m.totals = map[string]int64{}
	}
	m.totals[cat] = total
	m.mu.Unlock()
}

func (m *recordingMetrics) RecordError(kind string) {
	m.mu.Lock()
	m.errors = append(m.errors, kind)
	m.mu.Unlock()
}

func testCatalog(t *testing.T, items ...models.Item) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New("test", items)
	require.NoError(t, err)
	return c
}
