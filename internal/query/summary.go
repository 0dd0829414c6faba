package query

import (
	"strings"

	"github.com/locvowork/orderdash/internal/consolidate"
	"github.com/locvowork/orderdash/internal/domain"
	"github.com/shopspring/decimal"
)

var invoicedKeywords = []string{"FATURADO", "INVOICED"}

// Summary holds the headline metrics of a view. InvoicedPct is nil when the
// percentage is not applicable (no orders, or no status column).
type Summary struct {
	TotalOrders       int             `json:"total_orders"`
	TotalValue        decimal.Decimal `json:"total_value"`
	InvoicedPct       *float64        `json:"invoiced_pct"`
	ActiveSalespeople int             `json:"active_salespeople"`
	ActiveCustomers   int             `json:"active_customers"`
}

// Summarize computes the headline metrics over a view.
func Summarize(v View) Summary {
	ds := v.Dataset()
	s := Summary{
		TotalValue:        TotalValue(v),
		ActiveSalespeople: distinctCount(v, domain.FieldResponsibleUser),
		ActiveCustomers:   distinctCount(v, domain.FieldCustomerName),
	}

	hasOrderNumber := ds.HasColumn(domain.FieldOrderNumber)
	if hasOrderNumber {
		s.TotalOrders = distinctCount(v, domain.FieldOrderNumber)
	} else {
		s.TotalOrders = v.Len()
	}

	if s.TotalOrders == 0 || !ds.HasColumn(domain.FieldOrderStatus) {
		return s
	}

	invoiced := make(map[string]struct{})
	invoicedRows := 0
	for i := 0; i < v.Len(); i++ {
		row := v.Row(i)
		status, ok := row.Text(domain.FieldOrderStatus)
		if !ok || !isInvoiced(status) {
			continue
		}
		invoicedRows++
		if id, ok := row.Text(domain.FieldOrderNumber); ok {
			invoiced[id] = struct{}{}
		}
	}

	count := len(invoiced)
	if !hasOrderNumber {
		count = invoicedRows
	}
	pct := float64(count) / float64(s.TotalOrders) * 100
	s.InvoicedPct = &pct
	return s
}

func isInvoiced(status string) bool {
	folded := consolidate.Fold(status)
	for _, kw := range invoicedKeywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

// distinctCount counts distinct non-missing values of a field; 0 when the column is absent.
func distinctCount(v View, field string) int {
	if !v.Dataset().HasColumn(field) {
		return 0
	}
	seen := make(map[string]struct{})
	for i := 0; i < v.Len(); i++ {
		if val, ok := v.Row(i).Text(field); ok {
			seen[val] = struct{}{}
		}
	}
	return len(seen)
}
