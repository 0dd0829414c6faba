package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/orderdash/internal/domain"
	"github.com/locvowork/orderdash/internal/logger"
	"github.com/locvowork/orderdash/internal/query"
	"github.com/locvowork/orderdash/internal/service"
)

const (
	mimeCSV  = "text/csv; charset=utf-8"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	reportFileName = "relatorio_pedidos.xlsx"
)

type DashboardHandler struct {
	svc         *service.DashboardService
	detailLimit int
}

func NewDashboardHandler(svc *service.DashboardService, detailLimit int) *DashboardHandler {
	return &DashboardHandler{svc: svc, detailLimit: detailLimit}
}

// DatasetHandler handles GET /api/dataset
func (h *DashboardHandler) DatasetHandler(c echo.Context) error {
	ds, err := h.svc.Dataset(c.Request().Context())
	if err != nil {
		return h.loadError(c, err)
	}
	return ResponseSuccess(c, http.StatusOK, "Dataset loaded", newDatasetResponse(ds))
}

// OptionsHandler handles GET /api/options
func (h *DashboardHandler) OptionsHandler(c echo.Context) error {
	opts, err := h.svc.Options(c.Request().Context())
	if err != nil {
		return h.loadError(c, err)
	}
	return ResponseSuccess(c, http.StatusOK, "Filter options listed", opts)
}

// SummaryHandler handles GET /api/summary
func (h *DashboardHandler) SummaryHandler(c echo.Context) error {
	spec, err := ParseFilterSpec(c.QueryParams())
	if err != nil {
		return ResponseError(c, http.StatusBadRequest, "Invalid filter", err)
	}
	summary, err := h.svc.Summary(c.Request().Context(), spec)
	if err != nil {
		return h.loadError(c, err)
	}
	return ResponseSuccess(c, http.StatusOK, "Summary computed", summary)
}

// AggregateHandler handles GET /api/aggregates/:dimension
func (h *DashboardHandler) AggregateHandler(c echo.Context) error {
	dim, err := query.ParseDimension(c.Param("dimension"))
	if err != nil {
		return ResponseError(c, http.StatusNotFound, "Unknown dimension", err)
	}
	spec, err := ParseFilterSpec(c.QueryParams())
	if err != nil {
		return ResponseError(c, http.StatusBadRequest, "Invalid filter", err)
	}

	var opts []query.AggregateOption
	if c.QueryParam("limit") != "" {
		limit, err := intParam(c.QueryParams(), "limit", 0)
		if err != nil {
			return ResponseError(c, http.StatusBadRequest, "Invalid limit", err)
		}
		opts = append(opts, query.WithLimit(limit))
	}

	rows, err := h.svc.Aggregate(c.Request().Context(), spec, dim, opts...)
	if err != nil {
		return h.loadError(c, err)
	}
	return ResponseSuccess(c, http.StatusOK, "Aggregate computed", AggregateResponse{
		Dimension: dim,
		Field:     dim.Field(),
		Rows:      rows,
	})
}

// OrdersHandler handles GET /api/orders
func (h *DashboardHandler) OrdersHandler(c echo.Context) error {
	spec, err := ParseFilterSpec(c.QueryParams())
	if err != nil {
		return ResponseError(c, http.StatusBadRequest, "Invalid filter", err)
	}
	limit, err := intParam(c.QueryParams(), "limit", h.detailLimit)
	if err != nil {
		return ResponseError(c, http.StatusBadRequest, "Invalid limit", err)
	}

	var opts []query.DetailOption
	switch sort := c.QueryParam("sort"); sort {
	case "", "date_desc":
		opts = append(opts, query.SortByDateDesc())
	case "none":
	default:
		return ResponseError(c, http.StatusBadRequest, "Invalid sort", fmt.Errorf("unsupported sort %q", sort))
	}

	ctx := c.Request().Context()
	full, err := h.svc.Detail(ctx, spec, opts...)
	if err != nil {
		return h.loadError(c, err)
	}
	total := len(full.Rows)
	if limit > 0 && total > limit {
		full.Rows = full.Rows[:limit]
	}
	return ResponseSuccess(c, http.StatusOK, "Orders listed", OrdersResponse{Total: total, DetailTable: full})
}

// ExportCSVHandler handles GET /api/export/csv
func (h *DashboardHandler) ExportCSVHandler(c echo.Context) error {
	spec, err := ParseFilterSpec(c.QueryParams())
	if err != nil {
		return ResponseError(c, http.StatusBadRequest, "Invalid filter", err)
	}
	var buf bytes.Buffer
	if err := h.svc.ExportCSV(c.Request().Context(), &buf, spec); err != nil {
		return h.loadError(c, err)
	}
	return attachment(c, service.CSVFileName, mimeCSV, buf.Bytes())
}

// ExportXLSXHandler handles GET /api/export/xlsx
func (h *DashboardHandler) ExportXLSXHandler(c echo.Context) error {
	spec, err := ParseFilterSpec(c.QueryParams())
	if err != nil {
		return ResponseError(c, http.StatusBadRequest, "Invalid filter", err)
	}
	var buf bytes.Buffer
	if err := h.svc.ExportXLSX(c.Request().Context(), &buf, spec); err != nil {
		return h.loadError(c, err)
	}
	return attachment(c, reportFileName, mimeXLSX, buf.Bytes())
}

// ReloadHandler handles POST /api/reload
func (h *DashboardHandler) ReloadHandler(c echo.Context) error {
	ds, err := h.svc.Reload(c.Request().Context())
	if err != nil {
		return h.loadError(c, err)
	}
	return ResponseSuccess(c, http.StatusOK, "Dataset reloaded", newDatasetResponse(ds))
}

// loadError maps consolidation failures: a missing or unusable input is unavailable, anything else is internal.
func (h *DashboardHandler) loadError(c echo.Context, err error) error {
	logger.ErrorLog(c.Request().Context(), "dashboard request failed", err)

	var schemaErr *domain.SchemaError
	var collisionErr *domain.ColumnCollisionError
	switch {
	case errors.Is(err, query.ErrUnknownDimension):
		return ResponseError(c, http.StatusNotFound, "Unknown dimension", err)
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, domain.ErrEmptyInput),
		errors.As(err, &schemaErr),
		errors.As(err, &collisionErr):
		return ResponseError(c, http.StatusServiceUnavailable, "Dataset unavailable", err)
	default:
		return ResponseError(c, http.StatusInternalServerError, "Failed to process dataset", err)
	}
}

func attachment(c echo.Context, name, contentType string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Blob(http.StatusOK, contentType, data)
}
