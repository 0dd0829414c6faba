package service

import (
	"fmt"

	"github.com/locvowork/orderdash/internal/domain"
	"github.com/locvowork/orderdash/internal/query"
	"github.com/locvowork/orderdash/pkg/simpleexcel"
	"github.com/shopspring/decimal"
)

// Section IDs a report template can bind to. Aggregate sections use the dimension name.
const (
	SectionSummary = "summary"
	SectionOrders  = "orders"
)

const missingLabel = "(sem valor)"

// DefaultReportTemplate lays out the xlsx export: headline metrics, one ranking per
// dimension side by side, and the filtered orders.
const DefaultReportTemplate = `
sheets:
  - name: Resumo
    sections:
      - id: summary
        title: Resumo
        show_header: true
        columns:
          - field_name: Metric
            header: Indicador
            width: 28
          - field_name: Value
            header: Valor
            width: 18
            formatter: money
  - name: Agregados
    sections:
      - id: month
        title: Pedidos por mes
        show_header: true
        direction: horizontal
        columns: &aggregate_columns
          - field_name: Key
            header: Chave
            width: 22
          - field_name: Orders
            header: Pedidos
          - field_name: Value
            header: Valor (R$)
            width: 16
            num_fmt: 4
            formatter: money
      - id: status
        title: Pedidos por status
        show_header: true
        direction: horizontal
        columns: *aggregate_columns
      - id: salesperson
        title: Top vendedores
        show_header: true
        direction: horizontal
        columns: *aggregate_columns
      - id: customer
        title: Top clientes
        show_header: true
        direction: horizontal
        columns: *aggregate_columns
      - id: policy
        title: Valor por politica comercial
        show_header: true
        direction: horizontal
        columns: *aggregate_columns
      - id: source
        title: Valor por origem
        show_header: true
        direction: horizontal
        columns: *aggregate_columns
      - id: sheet
        title: Pedidos por aba
        show_header: true
        direction: horizontal
        columns: *aggregate_columns
  - name: Pedidos
    sections:
      - id: orders
        show_header: true
        has_filter: true
`

// moneyFormatter renders decimals as numbers so spreadsheets can sum them.
func moneyFormatter(v interface{}) interface{} {
	if d, ok := v.(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return v
}

func summaryRecords(s query.Summary) []map[string]interface{} {
	pct := interface{}("N/A")
	if s.InvoicedPct != nil {
		pct = fmt.Sprintf("%.1f%%", *s.InvoicedPct)
	}
	return []map[string]interface{}{
		{"Metric": "Total de pedidos", "Value": s.TotalOrders},
		{"Metric": "Valor total (R$)", "Value": s.TotalValue},
		{"Metric": "% faturado", "Value": pct},
		{"Metric": "Vendedores ativos", "Value": s.ActiveSalespeople},
		{"Metric": "Clientes ativos", "Value": s.ActiveCustomers},
	}
}

func aggregateRecords(rows []query.AggregateRow) []map[string]interface{} {
	out := make([]map[string]interface{}, len(rows))
	for i, r := range rows {
		key := r.Key
		if r.Missing {
			key = missingLabel
		}
		out[i] = map[string]interface{}{"Key": key, "Orders": r.Orders, "Value": r.Value}
	}
	return out
}

// detailColumns configures the orders section: canonical names as headers, money and date formats.
func detailColumns(ds *domain.Dataset) []simpleexcel.ColumnConfig {
	names := query.DetailColumns(ds)
	cols := make([]simpleexcel.ColumnConfig, len(names))
	for i, name := range names {
		col := simpleexcel.ColumnConfig{FieldName: name, Header: name, Width: 20}
		switch name {
		case domain.FieldOrderDate:
			col.NumFmt = 14
		case ds.ValueField:
			col.NumFmt = 4
		}
		cols[i] = col
	}
	return cols
}
