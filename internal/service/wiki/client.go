package wiki

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"GearValue/internal/domain/models"
	drepo "GearValue/internal/domain/repository"
	xhttp "GearValue/pkg/http"
)

// Kind names the upstream endpoint a request went to.
type Kind string

const (
	KindLatest     Kind = "latest"
	KindTimeseries Kind = "timeseries"
)

// StatusError reports a non-200 answer from the prices API for one item.
type StatusError struct {
	Kind       Kind
	ItemID     int
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Kind == KindLatest {
		return fmt.Sprintf("Error fetching price for %d", e.ItemID)
	}
	return fmt.Sprintf("Error fetching timeseries for %d", e.ItemID)
}

// NotFoundError reports an item id missing from an otherwise valid response.
type NotFoundError struct {
	ItemID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no price for item %d", e.ItemID)
}

// Client implements PriceSource against the OSRS Wiki real-time prices API.
type Client struct {
	latestURL     string
	timeseriesURL string
	http          *xhttp.Client
	metrics       drepo.Metrics
}

// New creates a prices API client. The HTTP client is shared by every call
// and should carry the User-Agent the wiki asks for.
func New(latestURL, timeseriesURL string, httpClient *xhttp.Client, metrics drepo.Metrics) *Client {
	return &Client{
		latestURL:     latestURL,
		timeseriesURL: timeseriesURL,
		http:          httpClient,
		metrics:       metrics,
	}
}

// LatestHigh returns the latest instant-buy price of id. A null price is zero.
func (c *Client) LatestHigh(ctx context.Context, id int) (int64, error) {
	var resp models.LatestResponse
	err := c.get(ctx, KindLatest, id, c.latestURL, map[string][]string{
		"id": {strconv.Itoa(id)},
	}, &resp)
	if err != nil {
		return 0, err
	}

	p, ok := resp.Data[strconv.Itoa(id)]
	if !ok {
		return 0, &NotFoundError{ItemID: id}
	}
	return p.High, nil
}

// Timeseries returns the candles of id at step, in upstream order.
func (c *Client) Timeseries(ctx context.Context, id int, step drepo.Timestep) ([]models.Candle, error) {
	var resp models.SeriesResponse
	err := c.get(ctx, KindTimeseries, id, c.timeseriesURL, map[string][]string{
		"id":       {strconv.Itoa(id)},
		"timestep": {string(step)},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) get(ctx context.Context, kind Kind, id int, url string, query map[string][]string, dest interface{}) error {
	start := time.Now()
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         url,
		QueryParams: query,
	}, dest)
	c.metrics.RecordUpstream(string(kind), resultLabel(err), time.Since(start).Seconds())

	var se *xhttp.StatusError
	if errors.As(err, &se) {
		return &StatusError{Kind: kind, ItemID: id, StatusCode: se.StatusCode}
	}
	if err != nil {
		return fmt.Errorf("%s %d: %w", kind, id, err)
	}
	return nil
}

func resultLabel(err error) string {
	var se *xhttp.StatusError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &se):
		return strconv.Itoa(se.StatusCode)
	default:
		return "error"
	}
}

var _ drepo.PriceSource = (*Client)(nil)
