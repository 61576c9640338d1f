package series

import (
	"testing"

	"GearValue/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candle(ts, high int64) models.Candle {
	return models.Candle{Timestamp: ts, AvgHighPrice: high}
}

func TestMergeTwoSeriesBackfillAndForwardFill(t *testing.T) {
	a := []models.Candle{candle(100, 50)}
	b := []models.Candle{candle(200, 30)}

	got := Merge([][]models.Candle{a, b})

	assert.Equal(t, []models.Candle{candle(100, 80), candle(200, 80)}, got)
}

func TestMergeEmptyInput(t *testing.T) {
	got := Merge(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)

	got = Merge([][]models.Candle{{}, {}})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFillAllZeroSeries(t *testing.T) {
	s := []models.Candle{{Timestamp: 10}, {Timestamp: 20}}
	assert.Equal(t, models.Candle{}, FirstEntry(s))

	filled := Fill(s, []int64{5, 10, 15, 20})
	for _, c := range filled {
		assert.True(t, c.IsEmpty(), "ts %d", c.Timestamp)
	}
}

func TestMergeSingleSeriesEqualsFill(t *testing.T) {
	s := []models.Candle{
		{Timestamp: 300, AvgHighPrice: 0, AvgLowPrice: 9, LowPriceVolume: 2},
		{Timestamp: 600, AvgHighPrice: 12, AvgLowPrice: 0, HighPriceVolume: 4},
		{Timestamp: 900},
	}
	stamps := Timestamps([][]models.Candle{s})
	assert.Equal(t, Fill(s, stamps), Merge([][]models.Candle{s}))
}

func TestFillPerFieldForwardFill(t *testing.T) {
	s := []models.Candle{
		{Timestamp: 1, AvgHighPrice: 10, AvgLowPrice: 8, HighPriceVolume: 3, LowPriceVolume: 1},
		{Timestamp: 2, AvgHighPrice: 11},
		{Timestamp: 3, LowPriceVolume: 7},
	}
	got := Fill(s, []int64{1, 2, 3, 4})

	assert.Equal(t, []models.Candle{
		{Timestamp: 1, AvgHighPrice: 10, AvgLowPrice: 8, HighPriceVolume: 3, LowPriceVolume: 1},
		{Timestamp: 2, AvgHighPrice: 11, AvgLowPrice: 8, HighPriceVolume: 3, LowPriceVolume: 1},
		{Timestamp: 3, AvgHighPrice: 11, AvgLowPrice: 8, HighPriceVolume: 3, LowPriceVolume: 7},
		{Timestamp: 4, AvgHighPrice: 11, AvgLowPrice: 8, HighPriceVolume: 3, LowPriceVolume: 7},
	}, got)
}

func TestFillSeedsFromFirstNonEmptyEntry(t *testing.T) {
	// the first real candle is at 20, but 10 is empty: 10 is seeded from 20's values
	s := []models.Candle{
		{Timestamp: 10},
		{Timestamp: 20, AvgHighPrice: 5, AvgLowPrice: 4},
		{Timestamp: 30, AvgHighPrice: 6},
	}
	got := Fill(s, []int64{0, 10, 20, 30})

	assert.Equal(t, []models.Candle{
		{Timestamp: 0, AvgHighPrice: 5, AvgLowPrice: 4},
		{Timestamp: 10, AvgHighPrice: 5, AvgLowPrice: 4},
		{Timestamp: 20, AvgHighPrice: 5, AvgLowPrice: 4},
		{Timestamp: 30, AvgHighPrice: 6, AvgLowPrice: 4},
	}, got)
}

func TestFillRecordsCopies(t *testing.T) {
	s := []models.Candle{candle(1, 10), candle(2, 20)}
	got := Fill(s, []int64{1, 2})

	assert.Equal(t, int64(10), got[0].AvgHighPrice)
	assert.Equal(t, int64(20), got[1].AvgHighPrice)
}

func TestFillStalledCursorKeepsForwardFilling(t *testing.T) {
	// duplicated timestamp: the cursor stops at the second 10 and never consumes 30
	s := []models.Candle{candle(10, 1), candle(10, 2), candle(30, 3)}
	stamps := Timestamps([][]models.Candle{s})
	require.Equal(t, []int64{10, 30}, stamps)

	got := Fill(s, stamps)
	assert.Equal(t, []models.Candle{candle(10, 1), candle(30, 1)}, got)
}

func TestMergeProperties(t *testing.T) {
	inputs := [][]models.Candle{
		{candle(300, 7), candle(900, 0), {Timestamp: 1200, AvgLowPrice: 3}},
		{candle(0, 0), {Timestamp: 600, HighPriceVolume: 40, LowPriceVolume: 12}},
		{},
		{candle(300, 1), candle(600, 2), candle(1500, 3)},
	}

	stamps := Timestamps(inputs)
	got := Merge(inputs)

	t.Run("union of timestamps, sorted, no duplicates", func(t *testing.T) {
		require.Len(t, got, len(stamps))
		assert.Equal(t, []int64{0, 300, 600, 900, 1200, 1500}, stamps)
		for i, c := range got {
			assert.Equal(t, stamps[i], c.Timestamp)
		}
	})

	t.Run("each field is the sum of the filled series", func(t *testing.T) {
		filled := make([][]models.Candle, len(inputs))
		for i, s := range inputs {
			filled[i] = Fill(s, stamps)
		}
		for i, c := range got {
			var want models.Candle
			want.Timestamp = stamps[i]
			for _, f := range filled {
				want.Add(f[i])
			}
			assert.Equal(t, want, c)
		}
	})

	t.Run("forward fill holds between real entries", func(t *testing.T) {
		f := Fill(inputs[3], stamps)
		// 900 and 1200 have no real entry for series 3, so they repeat 600
		assert.Equal(t, f[2].AvgHighPrice, f[3].AvgHighPrice)
		assert.Equal(t, f[2].AvgHighPrice, f[4].AvgHighPrice)
	})

	t.Run("values are never negative", func(t *testing.T) {
		for _, c := range got {
			assert.GreaterOrEqual(t, c.AvgHighPrice, int64(0))
			assert.GreaterOrEqual(t, c.AvgLowPrice, int64(0))
			assert.GreaterOrEqual(t, c.HighPriceVolume, int64(0))
			assert.GreaterOrEqual(t, c.LowPriceVolume, int64(0))
		}
	})
}

func TestMergeLateSeriesContributesBaselineEarly(t *testing.T) {
	early := []models.Candle{candle(100, 1), candle(200, 1), candle(300, 1)}
	late := []models.Candle{candle(300, 1000)}

	got := Merge([][]models.Candle{early, late})
	for _, c := range got {
		assert.Equal(t, int64(1001), c.AvgHighPrice, "ts %d", c.Timestamp)
	}
}
