package query

import (
	"sort"

	"github.com/locvowork/orderdash/internal/domain"
)

// detailFields is the projection of the order detail table. The value field is appended per dataset.
var detailFields = []string{
	domain.FieldOrderDate,
	domain.FieldOrderNumber,
	domain.FieldCustomerName,
	domain.FieldResponsibleUser,
	domain.FieldOrderSource,
	domain.FieldOrderStatus,
}

// DetailTable is a projection of a view on the detail columns.
type DetailTable struct {
	Columns []string         `json:"columns"`
	Rows    [][]domain.Value `json:"rows"`
}

type detailConfig struct {
	sortByDate bool
	limit      int
}

type DetailOption func(*detailConfig)

// SortByDateDesc orders rows newest first; rows without a date go last.
func SortByDateDesc() DetailOption {
	return func(c *detailConfig) { c.sortByDate = true }
}

// WithMaxRows truncates the table after sorting; 0 keeps all rows.
func WithMaxRows(n int) DetailOption {
	return func(c *detailConfig) {
		if n > 0 {
			c.limit = n
		}
	}
}

// DetailColumns returns the detail projection available in the dataset.
func DetailColumns(ds *domain.Dataset) []string {
	cols := make([]string, 0, len(detailFields)+1)
	for _, f := range detailFields {
		if f == domain.FieldOrderDate || ds.HasColumn(f) {
			cols = append(cols, f)
		}
	}
	return append(cols, ds.ValueField)
}

// Detail projects the view on the detail columns, in view order unless sorted.
func Detail(v View, opts ...DetailOption) DetailTable {
	cfg := &detailConfig{}
	for _, o := range opts {
		o(cfg)
	}

	positions := make([]int, v.Len())
	for i := range positions {
		positions[i] = i
	}
	if cfg.sortByDate {
		sort.SliceStable(positions, func(a, b int) bool {
			ra, rb := v.Row(positions[a]), v.Row(positions[b])
			if !ra.HasDate() || !rb.HasDate() {
				return ra.HasDate() && !rb.HasDate()
			}
			return ra.OrderDate.After(*rb.OrderDate)
		})
	}
	if cfg.limit > 0 && len(positions) > cfg.limit {
		positions = positions[:cfg.limit]
	}

	cols := DetailColumns(v.Dataset())
	table := DetailTable{Columns: cols, Rows: make([][]domain.Value, 0, len(positions))}
	for _, p := range positions {
		row := v.Row(p)
		out := make([]domain.Value, len(cols))
		for j, c := range cols {
			out[j] = row.Field(c)
		}
		table.Rows = append(table.Rows, out)
	}
	return table
}

// Records converts the table to column-keyed maps, the shape consumed by the report exporter.
func (t DetailTable) Records() []map[string]interface{} {
	out := make([]map[string]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		rec := make(map[string]interface{}, len(t.Columns))
		for j, c := range t.Columns {
			rec[c] = recordValue(row[j])
		}
		out[i] = rec
	}
	return out
}

func recordValue(v domain.Value) interface{} {
	switch v.Kind {
	case domain.KindNumber:
		return v.Num
	case domain.KindTime:
		return v.Time
	case domain.KindString:
		return v.Str
	default:
		return nil
	}
}
