package models

import (
	"encoding/json"
	"time"
)

// LatestPrice is the most recent instant-buy/instant-sell pair for one item.
type LatestPrice struct {
	High     int64 `json:"high"`
	HighTime int64 `json:"highTime"`
	Low      int64 `json:"low"`
	LowTime  int64 `json:"lowTime"`
}

type rawLatestPrice struct {
	High     json.RawMessage `json:"high"`
	HighTime json.RawMessage `json:"highTime"`
	Low      json.RawMessage `json:"low"`
	LowTime  json.RawMessage `json:"lowTime"`
}

// UnmarshalJSON decodes leniently, null fields become zero.
func (p *LatestPrice) UnmarshalJSON(b []byte) error {
	var raw rawLatestPrice
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = LatestPrice{
		High:     toInt64(raw.High),
		HighTime: toInt64(raw.HighTime),
		Low:      toInt64(raw.Low),
		LowTime:  toInt64(raw.LowTime),
	}
	return nil
}

// LatestResponse is the upstream envelope keyed by item id.
type LatestResponse struct {
	Data map[string]LatestPrice `json:"data"`
}

// Item is one named gear entry made of one or more tradeable item ids.
type Item struct {
	Name string `json:"name" yaml:"name"`
	IDs  []int  `json:"ids" yaml:"ids"`
}

// Amount is a gp value in the three renderings served to clients.
type Amount struct {
	Raw       int64  `json:"raw"`
	Formatted string `json:"formatted"`
	Compact   string `json:"compact"`
}

// ItemValue is the valuation of one catalog item.
type ItemValue struct {
	Item     string
	IDs      []int
	Subtotal Amount
}

// Valuation is a full priced breakdown of the catalog.
type Valuation struct {
	Items []ItemValue
	Total Amount
}

// Snapshot is a point-in-time valuation published by the scheduler.
type Snapshot struct {
	ID        string           `json:"id"`
	Catalog   string           `json:"catalog"`
	TakenAt   time.Time        `json:"taken_at"`
	Total     int64            `json:"total"`
	Subtotals map[string]int64 `json:"subtotals"`
}
