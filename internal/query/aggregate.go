package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/locvowork/orderdash/internal/domain"
	"github.com/shopspring/decimal"
)

var ErrUnknownDimension = errors.New("unknown dimension")

// Dimension is a reporting axis of the dashboard.
type Dimension string

const (
	DimMonth       Dimension = "month"
	DimStatus      Dimension = "status"
	DimSalesperson Dimension = "salesperson"
	DimCustomer    Dimension = "customer"
	DimPolicy      Dimension = "policy"
	DimSource      Dimension = "source"
	DimSheet       Dimension = "sheet"
)

// SortOrder is the display order of aggregate rows.
type SortOrder int

const (
	SortFirstSeen SortOrder = iota
	SortKeyAsc
	SortOrdersDesc
	SortValueDesc
)

type dimensionSpec struct {
	field string
	sort  SortOrder
	limit int
}

// Display defaults follow the dashboard charts: monthly bars in calendar order,
// status share by order count, top-N rankings by value.
var dimensions = map[Dimension]dimensionSpec{
	DimMonth:       {field: domain.FieldYearMonth, sort: SortKeyAsc},
	DimStatus:      {field: domain.FieldOrderStatus, sort: SortOrdersDesc},
	DimSalesperson: {field: domain.FieldResponsibleUser, sort: SortValueDesc, limit: 20},
	DimCustomer:    {field: domain.FieldCustomerName, sort: SortValueDesc, limit: 10},
	DimPolicy:      {field: domain.FieldCommercialPolicy, sort: SortValueDesc, limit: 15},
	DimSource:      {field: domain.FieldOrderSource, sort: SortValueDesc},
	DimSheet:       {field: domain.FieldSheetName, sort: SortFirstSeen},
}

// Dimensions lists the supported dimensions in a stable order.
func Dimensions() []Dimension {
	return []Dimension{DimMonth, DimStatus, DimSalesperson, DimCustomer, DimPolicy, DimSource, DimSheet}
}

// ParseDimension validates a dimension name.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := dimensions[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDimension, s)
	}
	return d, nil
}

// Field returns the canonical field the dimension groups on.
func (d Dimension) Field() string { return dimensions[d].field }

// AggregateRow is one group of an aggregation. Missing marks the group of rows without a key.
type AggregateRow struct {
	Key     string          `json:"key"`
	Missing bool            `json:"missing,omitempty"`
	Orders  int             `json:"orders"`
	Value   decimal.Decimal `json:"value"`
}

type aggregateConfig struct {
	sort     SortOrder
	limit    int
	limitSet bool
}

type AggregateOption func(*aggregateConfig)

// WithLimit keeps the first n groups after sorting; 0 keeps all.
func WithLimit(n int) AggregateOption {
	return func(c *aggregateConfig) {
		if n >= 0 {
			c.limit = n
			c.limitSet = true
		}
	}
}

func WithSort(order SortOrder) AggregateOption {
	return func(c *aggregateConfig) { c.sort = order }
}

// Aggregate groups the view by dimension and computes the order count and value sum per group.
// Rows with no key are gathered in one trailing Missing group, so the group sums always add
// up to the view total when no limit is applied.
func Aggregate(v View, dim Dimension, opts ...AggregateOption) ([]AggregateRow, error) {
	spec, ok := dimensions[dim]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dim)
	}
	cfg := &aggregateConfig{sort: spec.sort, limit: spec.limit}
	for _, o := range opts {
		o(cfg)
	}

	groups := groupBy(v, spec.field)
	rows := make([]AggregateRow, 0, len(groups))
	var missing *AggregateRow
	for _, g := range groups {
		row := AggregateRow{
			Key:     g.key,
			Missing: g.missing,
			Orders:  countOrders(v, g.members),
			Value:   sumValue(v, g.members),
		}
		if g.missing {
			missing = &row
			continue
		}
		rows = append(rows, row)
	}

	sortRows(rows, cfg.sort)
	if missing != nil {
		rows = append(rows, *missing)
	}
	if cfg.limit > 0 && len(rows) > cfg.limit {
		rows = rows[:cfg.limit]
	}
	return rows, nil
}

type group struct {
	key     string
	missing bool
	members []int // positions in the view
}

// groupBy buckets view positions by field value in first-seen order.
func groupBy(v View, field string) []*group {
	index := make(map[string]*group)
	var order []*group
	var missing *group
	for i := 0; i < v.Len(); i++ {
		key, ok := v.Row(i).Text(field)
		if !ok {
			if missing == nil {
				missing = &group{missing: true}
			}
			missing.members = append(missing.members, i)
			continue
		}
		g, exists := index[key]
		if !exists {
			g = &group{key: key}
			index[key] = g
			order = append(order, g)
		}
		g.members = append(g.members, i)
	}
	if missing != nil {
		order = append(order, missing)
	}
	return order
}

func sortRows(rows []AggregateRow, order SortOrder) {
	switch order {
	case SortKeyAsc:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	case SortOrdersDesc:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Orders > rows[j].Orders })
	case SortValueDesc:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Value.GreaterThan(rows[j].Value) })
	}
}

// countOrders counts distinct order numbers when they are identifiers, rows otherwise.
func countOrders(v View, members []int) int {
	ds := v.Dataset()
	if ds.OrderCountMode != domain.CountDistinct {
		return len(members)
	}
	seen := make(map[string]struct{}, len(members))
	for _, i := range members {
		if id, ok := v.Row(i).Text(domain.FieldOrderNumber); ok {
			seen[id] = struct{}{}
		}
	}
	return len(seen)
}

func sumValue(v View, members []int) decimal.Decimal {
	total := decimal.Zero
	for _, i := range members {
		total = total.Add(v.Row(i).Value)
	}
	return total
}

// TotalValue sums VALUE over the whole view.
func TotalValue(v View) decimal.Decimal {
	total := decimal.Zero
	for i := 0; i < v.Len(); i++ {
		total = total.Add(v.Row(i).Value)
	}
	return total
}
