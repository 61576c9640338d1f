package series

import (
	"sort"

	"GearValue/internal/domain/models"
)

// Timestamps returns the sorted union of every timestamp in series, each once.
func Timestamps(series [][]models.Candle) []int64 {
	seen := make(map[int64]struct{})
	for _, s := range series {
		for _, c := range s {
			seen[c.Timestamp] = struct{}{}
		}
	}
	out := make([]int64, 0, len(seen))
	for ts := range seen {
		out = append(out, ts)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FirstEntry returns the first candle of s carrying any trade data,
// or the zero candle if there is none. The timestamp is cleared.
func FirstEntry(s []models.Candle) models.Candle {
	for _, c := range s {
		if !c.IsEmpty() {
			c.Timestamp = 0
			return c
		}
	}
	return models.Candle{}
}

// fillState is the accumulator of the fill fold: the last filled candle
// and whether it has been seeded yet.
type fillState struct {
	last   models.Candle
	seeded bool
}

func (st fillState) seed(first models.Candle) fillState {
	if st.seeded {
		return st
	}
	return fillState{last: first, seeded: true}
}

// observe folds a real candle into the state: each non-zero field replaces
// the remembered one, zero fields keep it.
func (st fillState) observe(c models.Candle, first models.Candle) fillState {
	st = st.seed(first)
	st.last = st.last.Overlay(c)
	return st
}

// Fill aligns s to stamps. Timestamps before the first matching candle get
// the series' first non-empty candle (backfill), later gaps repeat the last
// known value per field (forward-fill). The result has one candle per stamp.
//
// s is walked with a single cursor, so a candle is only consumed when its
// timestamp equals the current stamp. Out of order or duplicated candles stall
// the cursor and the rest of the series is forward-filled.
func Fill(s []models.Candle, stamps []int64) []models.Candle {
	first := FirstEntry(s)
	out := make([]models.Candle, len(stamps))

	var st fillState
	cursor := 0
	for i, ts := range stamps {
		if cursor < len(s) && s[cursor].Timestamp == ts {
			st = st.observe(s[cursor], first)
			cursor++
		} else {
			st = st.seed(first)
		}
		c := st.last
		c.Timestamp = ts
		out[i] = c
	}
	return out
}

// Merge combines several per-item series into one series over the union of
// their timestamps, each field being the sum of every filled series at that
// timestamp. The result is ascending by timestamp and never nil.
func Merge(series [][]models.Candle) []models.Candle {
	stamps := Timestamps(series)
	combined := make([]models.Candle, len(stamps))
	for i, ts := range stamps {
		combined[i].Timestamp = ts
	}
	for _, s := range series {
		for i, c := range Fill(s, stamps) {
			combined[i].Add(c)
		}
	}
	return combined
}
