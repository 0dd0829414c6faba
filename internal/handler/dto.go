package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/locvowork/orderdash/internal/domain"
	"github.com/locvowork/orderdash/internal/query"
)

// DatasetResponse describes the loaded dataset without its rows.
type DatasetResponse struct {
	ID               uuid.UUID          `json:"id"`
	Source           string             `json:"source"`
	LoadedAt         time.Time          `json:"loaded_at"`
	Rows             int                `json:"rows"`
	IncompleteRows   int                `json:"incomplete_rows"`
	Columns          []string           `json:"columns"`
	DateField        string             `json:"date_field"`
	ValueField       string             `json:"value_field"`
	ValueSynthesized bool               `json:"value_synthesized"`
	OrderCountMode   domain.CountMode   `json:"order_count_mode"`
	Sheets           []domain.SheetStat `json:"sheets"`
	Collisions       []domain.Collision `json:"collisions"`
}

func newDatasetResponse(ds *domain.Dataset) DatasetResponse {
	return DatasetResponse{
		ID:               ds.ID,
		Source:           ds.Source,
		LoadedAt:         ds.LoadedAt,
		Rows:             ds.Len(),
		IncompleteRows:   ds.IncompleteRows(),
		Columns:          ds.Columns,
		DateField:        ds.DateField,
		ValueField:       ds.ValueField,
		ValueSynthesized: ds.ValueSynthesized,
		OrderCountMode:   ds.OrderCountMode,
		Sheets:           ds.Sheets,
		Collisions:       ds.Collisions,
	}
}

// AggregateResponse is one chart's data.
type AggregateResponse struct {
	Dimension query.Dimension      `json:"dimension"`
	Field     string               `json:"field"`
	Rows      []query.AggregateRow `json:"rows"`
}

// OrdersResponse is a page of the detail table.
type OrdersResponse struct {
	Total int `json:"total"`
	query.DetailTable
}
