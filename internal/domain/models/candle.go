package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Candle is one timestamped price/volume sample as served by the prices API.
// Zero means "no trade data" for every numeric field.
type Candle struct {
	Timestamp       int64 `json:"timestamp"`
	AvgHighPrice    int64 `json:"avgHighPrice"`
	AvgLowPrice     int64 `json:"avgLowPrice"`
	HighPriceVolume int64 `json:"highPriceVolume"`
	LowPriceVolume  int64 `json:"lowPriceVolume"`
}

// IsEmpty reports whether the candle carries no trade data at all.
func (c Candle) IsEmpty() bool {
	return c.AvgHighPrice == 0 && c.AvgLowPrice == 0 && c.HighPriceVolume == 0 && c.LowPriceVolume == 0
}

// Overlay returns c with every non-zero field of next copied over it.
// The timestamp of c is kept.
func (c Candle) Overlay(next Candle) Candle {
	if next.AvgHighPrice != 0 {
		c.AvgHighPrice = next.AvgHighPrice
	}
	if next.AvgLowPrice != 0 {
		c.AvgLowPrice = next.AvgLowPrice
	}
	if next.HighPriceVolume != 0 {
		c.HighPriceVolume = next.HighPriceVolume
	}
	if next.LowPriceVolume != 0 {
		c.LowPriceVolume = next.LowPriceVolume
	}
	return c
}

// Add sums the numeric fields of o into c.
func (c *Candle) Add(o Candle) {
	c.AvgHighPrice += o.AvgHighPrice
	c.AvgLowPrice += o.AvgLowPrice
	c.HighPriceVolume += o.HighPriceVolume
	c.LowPriceVolume += o.LowPriceVolume
}

type rawCandle struct {
	Timestamp       json.RawMessage `json:"timestamp"`
	AvgHighPrice    json.RawMessage `json:"avgHighPrice"`
	AvgLowPrice     json.RawMessage `json:"avgLowPrice"`
	HighPriceVolume json.RawMessage `json:"highPriceVolume"`
	LowPriceVolume  json.RawMessage `json:"lowPriceVolume"`
}

// UnmarshalJSON decodes a candle leniently: null, missing, negative or
// non-numeric fields become zero.
func (c *Candle) UnmarshalJSON(b []byte) error {
	var raw rawCandle
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*c = Candle{
		Timestamp:       toInt64(raw.Timestamp),
		AvgHighPrice:    toInt64(raw.AvgHighPrice),
		AvgLowPrice:     toInt64(raw.AvgLowPrice),
		HighPriceVolume: toInt64(raw.HighPriceVolume),
		LowPriceVolume:  toInt64(raw.LowPriceVolume),
	}
	return nil
}

// SeriesResponse is the {"data": [...]} envelope used upstream and downstream.
type SeriesResponse struct {
	Data []Candle `json:"data"`
}

// NewSeriesResponse wraps candles, never encoding a nil slice as null.
func NewSeriesResponse(candles []Candle) SeriesResponse {
	if candles == nil {
		candles = []Candle{}
	}
	return SeriesResponse{Data: candles}
}

func toInt64(raw json.RawMessage) int64 {
	s := string(bytes.TrimSpace(raw))
	if s == "" || s == "null" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return nonNegative(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return nonNegative(int64(f))
	}
	return 0
}

func nonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
