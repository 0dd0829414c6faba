package query

import (
	"time"

	"github.com/locvowork/orderdash/internal/domain"
	"github.com/shopspring/decimal"
)

type testOrder struct {
	date   string // YYYY-MM-DD, empty for missing
	number string
	status string
	user   string
	client string
	source string
	policy string
	value  string
	sheet  string
}

// newDataset builds a consolidated dataset the way the deriver would.
func newDataset(orders ...testOrder) *domain.Dataset {
	ds := &domain.Dataset{
		Columns: []string{
			domain.DefaultDateColumn,
			domain.FieldOrderNumber,
			domain.FieldResponsibleUser,
			domain.FieldOrderSource,
			domain.FieldOrderStatus,
			domain.FieldCustomerName,
			domain.FieldCommercialPolicy,
			"VALOR LÍQUIDO",
		},
		DateField:      domain.DefaultDateColumn,
		ValueField:     "VALOR LÍQUIDO",
		OrderCountMode: domain.CountDistinct,
	}
	for _, o := range orders {
		row := domain.ConsolidatedRow{
			Sheet: o.sheet,
			Cells: map[string]domain.Value{
				domain.FieldOrderNumber:      domain.StringValue(o.number),
				domain.FieldOrderStatus:      domain.StringValue(o.status),
				domain.FieldResponsibleUser:  domain.StringValue(o.user),
				domain.FieldCustomerName:     domain.StringValue(o.client),
				domain.FieldOrderSource:      domain.StringValue(o.source),
				domain.FieldCommercialPolicy: domain.StringValue(o.policy),
			},
			Value: decimal.Zero,
		}
		if row.Sheet == "" {
			row.Sheet = "Pedidos"
		}
		if o.date != "" {
			d, err := time.Parse("2006-01-02 15:04", o.date)
			if err != nil {
				d, _ = time.Parse("2006-01-02", o.date)
			}
			row.OrderDate = &d
			row.Year, row.Month = d.Year(), int(d.Month())
			row.YearMonth = d.Format("2006-01")
		} else {
			row.Issues |= domain.IssueDateMissing
		}
		if o.value != "" {
			row.Value = decimal.RequireFromString(o.value)
		}
		row.Cells["VALOR LÍQUIDO"] = domain.NumberValue(row.Value.InexactFloat64())
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func sampleDataset() *domain.Dataset {
	return newDataset(
		testOrder{date: "2024-01-05", number: "PV-1", status: "Faturado", user: "ANA", client: "LOJA A", source: "B2B", policy: "Padrao", value: "100", sheet: "Jan"},
		testOrder{date: "2024-01-20", number: "PV-2", status: "Cancelado", user: "BRUNO", client: "LOJA B", source: "Vendedor", policy: "Promo", value: "50", sheet: "Jan"},
		testOrder{date: "2024-02-10", number: "PV-3", status: "Faturado", user: "ANA", client: "LOJA B", source: "Vendedor", policy: "Padrao", value: "200", sheet: "Fev"},
		testOrder{date: "2024-02-10", number: "PV-3", status: "Faturado", user: "ANA", client: "LOJA B", source: "Vendedor", policy: "Padrao", value: "25.5", sheet: "Fev"},
		testOrder{date: "", number: "PV-4", status: "Em aberto", user: "CARLA", client: "LOJA C", value: "10", sheet: "Fev"},
		testOrder{date: "2024-03-01", number: "PV-5", status: "", user: "", client: "LOJA A", source: "B2B", value: "5", sheet: "Mar"},
	)
}

func keys(v View) []string {
	out := make([]string, v.Len())
	for i := range out {
		out[i], _ = v.Row(i).Text("ORDER_NUMBER")
	}
	return out
}
