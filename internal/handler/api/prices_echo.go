package api

import (
	"errors"
	"net/http"
	"net/url"

	"GearValue/internal/domain/models"
	drepo "GearValue/internal/domain/repository"
	"GearValue/internal/service/wiki"
	"GearValue/internal/usecase"
	xhttp "GearValue/pkg/http"
	xlogger "GearValue/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PricesEchoHandler serves catalog valuations and merged price history.
type PricesEchoHandler struct {
	logger     *xlogger.Logger
	valuation  *usecase.ValuationUseCase
	timeseries *usecase.TimeseriesUseCase
	items      []models.Item
}

func NewPricesEchoHandler(logger *xlogger.Logger, valuation *usecase.ValuationUseCase, timeseries *usecase.TimeseriesUseCase, items []models.Item) *PricesEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &PricesEchoHandler{logger: logger, valuation: valuation, timeseries: timeseries, items: items}
}

func (h *PricesEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/total", h.Total)
	e.GET("/breakdown", h.Breakdown)
	e.GET("/items", h.Items)

	g := e.Group("/timeseries")
	g.GET("", h.Timeseries)
	g.GET("/items/:name", h.GroupTimeseries)
	g.GET("/ids/:id", h.ItemTimeseries)
}

type totalResponse struct {
	TotalRaw       int64  `json:"total_raw"`
	TotalFormatted string `json:"total_formatted"`
	TotalCompact   string `json:"total_compact"`
}

type breakdownItem struct {
	Item              string `json:"item"`
	IDs               []int  `json:"ids"`
	SubtotalRaw       int64  `json:"subtotal_raw"`
	SubtotalFormatted string `json:"subtotal_formatted"`
	SubtotalCompact   string `json:"subtotal_compact"`
}

type breakdownResponse struct {
	Items []breakdownItem `json:"items"`
	Total models.Amount   `json:"total"`
}

func (h *PricesEchoHandler) Total(c echo.Context) error {
	total, err := h.valuation.Total(c.Request().Context())
	if err != nil {
		return h.fail(c, "total", err)
	}
	return xhttp.RawResponse(c, totalResponse{
		TotalRaw:       total.Raw,
		TotalFormatted: total.Formatted,
		TotalCompact:   total.Compact,
	})
}

func (h *PricesEchoHandler) Breakdown(c echo.Context) error {
	v, err := h.valuation.Breakdown(c.Request().Context())
	if err != nil {
		return h.fail(c, "breakdown", err)
	}

	resp := breakdownResponse{Items: make([]breakdownItem, 0, len(v.Items)), Total: v.Total}
	for _, it := range v.Items {
		resp.Items = append(resp.Items, breakdownItem{
			Item:              it.Item,
			IDs:               it.IDs,
			SubtotalRaw:       it.Subtotal.Raw,
			SubtotalFormatted: it.Subtotal.Formatted,
			SubtotalCompact:   it.Subtotal.Compact,
		})
	}
	return xhttp.RawResponse(c, resp)
}

func (h *PricesEchoHandler) Items(c echo.Context) error {
	return xhttp.RawResponse(c, h.items)
}

func (h *PricesEchoHandler) Timeseries(c echo.Context) error {
	req := &models.TimeseriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	data, err := h.timeseries.Combined(c.Request().Context(), drepo.NormalizeTimestep(req.Timestep))
	if err != nil {
		return h.fail(c, "timeseries", err)
	}
	return xhttp.RawResponse(c, models.NewSeriesResponse(data))
}

func (h *PricesEchoHandler) GroupTimeseries(c echo.Context) error {
	req := &models.GroupTimeseriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	name, err := pathParam(c, req.Name)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("name is not a valid path segment").WithParam("name", req.Name).WithError(err))
	}

	data, err := h.timeseries.Group(c.Request().Context(), name, drepo.NormalizeTimestep(req.Timestep))
	if err != nil {
		return h.fail(c, "group timeseries", err)
	}
	return xhttp.RawResponse(c, models.NewSeriesResponse(data))
}

func (h *PricesEchoHandler) ItemTimeseries(c echo.Context) error {
	req := &models.ItemTimeseriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	data, err := h.timeseries.Item(c.Request().Context(), req.ID, drepo.NormalizeTimestep(req.Timestep))
	if err != nil {
		return h.fail(c, "item timeseries", err)
	}
	return xhttp.RawResponse(c, models.NewSeriesResponse(data))
}

// pathParam undoes percent-escapes echo leaves in place when the request
// carries a RawPath, as with names encoded by encodeURIComponent.
func pathParam(c echo.Context, v string) (string, error) {
	if c.Request().URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

func (h *PricesEchoHandler) fail(c echo.Context, op string, err error) error {
	appErr := toAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		h.logger.Error(op+" usecase error", xlogger.Error(err), xlogger.Int("status", appErr.Status))
	} else {
		h.logger.Warn(op+" usecase error", xlogger.Error(err), xlogger.Int("status", appErr.Status))
	}
	return xhttp.AppErrorResponse(c, appErr)
}

func toAppError(err error) *xhttp.AppError {
	var (
		se *wiki.StatusError
		nf *wiki.NotFoundError
	)
	switch {
	case errors.As(err, &se):
		return xhttp.UpstreamError(se.StatusCode, se.Error()).WithParam("item_id", se.ItemID).WithError(err)
	case errors.As(err, &nf):
		return xhttp.BadGatewayError(nf.Error()).WithParam("item_id", nf.ItemID).WithError(err)
	case errors.Is(err, usecase.ErrUnknownItem):
		return xhttp.NotFoundErrorf("%v", err).WithError(err)
	default:
		return xhttp.BadGatewayError("upstream request failed").WithError(err)
	}
}
