package query

import (
	"sort"
	"time"

	"github.com/locvowork/orderdash/internal/domain"
)

// FilterOptions lists the choices offered for each filter, plus the date bounds used as defaults.
type FilterOptions struct {
	MinDate     *time.Time `json:"min_date"`
	MaxDate     *time.Time `json:"max_date"`
	Salespeople []string   `json:"salespeople"`
	Customers   []string   `json:"customers"`
	Statuses    []string   `json:"statuses"`
	Sources     []string   `json:"sources"`
	Policies    []string   `json:"policies"`
}

// Options scans the dataset once for distinct filter values.
func Options(ds *domain.Dataset) FilterOptions {
	var opts FilterOptions
	sets := map[string]map[string]struct{}{
		domain.FieldResponsibleUser:  {},
		domain.FieldCustomerName:     {},
		domain.FieldOrderStatus:      {},
		domain.FieldOrderSource:      {},
		domain.FieldCommercialPolicy: {},
	}

	for i := range ds.Rows {
		row := &ds.Rows[i]
		if row.HasDate() {
			d := day(*row.OrderDate)
			if opts.MinDate == nil || d.Before(*opts.MinDate) {
				opts.MinDate = &d
			}
			if opts.MaxDate == nil || d.After(*opts.MaxDate) {
				opts.MaxDate = &d
			}
		}
		for field, set := range sets {
			if v, ok := row.Text(field); ok {
				set[v] = struct{}{}
			}
		}
	}

	opts.Salespeople = sortedKeys(sets[domain.FieldResponsibleUser])
	opts.Customers = sortedKeys(sets[domain.FieldCustomerName])
	opts.Statuses = sortedKeys(sets[domain.FieldOrderStatus])
	opts.Sources = sortedKeys(sets[domain.FieldOrderSource])
	opts.Policies = sortedKeys(sets[domain.FieldCommercialPolicy])
	return opts
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
