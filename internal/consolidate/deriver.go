package consolidate

import (
	"strings"
	"time"

	"github.com/locvowork/orderdash/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	valueTokens     = []string{"VALOR", "VALUE"}
	valueQualifiers = []string{"LÍQUIDO", "NET", "FATURADO", "INVOICED", "TOTAL"}
)

// Deriver parses the order date, builds the calendar buckets and resolves the value column.
type Deriver struct {
	dateColumn string
}

type DeriverOption func(*Deriver)

// WithDateColumn overrides the designated order-date column.
func WithDateColumn(name string) DeriverOption {
	return func(d *Deriver) {
		if name = strings.TrimSpace(name); name != "" {
			d.dateColumn = name
		}
	}
}

func NewDeriver(opts ...DeriverOption) *Deriver {
	d := &Deriver{dateColumn: domain.DefaultDateColumn}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *Deriver) DateColumn() string { return d.dateColumn }

// ResolveValueColumn picks the monetary column: the first label holding a value token
// and a net/invoiced/total qualifier, else the first label holding a value token.
func ResolveValueColumn(columns []string) (string, bool) {
	folded := make([]string, len(columns))
	for i, c := range columns {
		folded[i] = Fold(c)
	}
	for i, f := range folded {
		if containsAny(f, valueTokens) && containsAny(f, valueQualifiers) {
			return columns[i], true
		}
	}
	for i, f := range folded {
		if containsAny(f, valueTokens) {
			return columns[i], true
		}
	}
	return "", false
}

func containsAny(folded string, keywords []string) bool {
	for _, kw := range keywords {
		if containsFolded(folded, kw) {
			return true
		}
	}
	return false
}

// Derive builds the consolidated dataset. It fails only when the date column is absent;
// per-row problems degrade the row's fields and are flagged on the row.
func (d *Deriver) Derive(t *Table) (*domain.Dataset, error) {
	if !t.hasColumn(d.dateColumn) {
		return nil, &domain.SchemaError{Column: d.dateColumn, Available: append([]string(nil), t.Columns...)}
	}

	ds := &domain.Dataset{
		Columns:   append([]string(nil), t.Columns...),
		Rows:      make([]domain.ConsolidatedRow, len(t.Rows)),
		DateField: d.dateColumn,
		Sheets:    t.Sheets,
	}

	valueCol, found := ResolveValueColumn(t.Columns)
	if !found {
		valueCol = domain.SynthesizedValueField
		ds.ValueSynthesized = true
		ds.Columns = append(ds.Columns, valueCol)
	}
	ds.ValueField = valueCol

	for i, row := range t.Rows {
		out := domain.ConsolidatedRow{
			Sheet: row.Sheet,
			Cells: make(map[string]domain.Value, len(row.Cells)+1),
		}
		for k, v := range row.Cells {
			out.Cells[k] = v
		}

		raw := row.Get(d.dateColumn)
		if date, ok := ParseDate(raw); ok {
			day := time.Date(date.Year(), date.Month(), date.Day(), date.Hour(), date.Minute(), date.Second(), 0, time.UTC)
			out.OrderDate = &day
			out.Year = day.Year()
			out.Month = int(day.Month())
			out.YearMonth = YearMonth(day)
		} else if raw.IsMissing() {
			out.Issues |= domain.IssueDateMissing
		} else {
			out.Issues |= domain.IssueDateUnparsable
		}

		if ds.ValueSynthesized {
			out.Value = decimal.Zero
		} else {
			cell := row.Get(valueCol)
			amount, ok := ParseAmount(cell)
			switch {
			case ok:
				out.Value = amount
			case cell.IsMissing():
				out.Issues |= domain.IssueValueMissing
			default:
				out.Issues |= domain.IssueValueUnparsable
			}
		}
		out.Cells[valueCol] = domain.NumberValue(out.Value.InexactFloat64())

		ds.Rows[i] = out
	}

	ds.OrderCountMode = orderCountMode(t)
	return ds, nil
}

// orderCountMode treats ORDER_NUMBER as an identifier unless it is absent or purely numeric.
func orderCountMode(t *Table) domain.CountMode {
	if !t.hasColumn(domain.FieldOrderNumber) {
		return domain.CountRows
	}
	for _, row := range t.Rows {
		v := row.Get(domain.FieldOrderNumber)
		if !v.IsMissing() && v.Kind != domain.KindNumber {
			return domain.CountDistinct
		}
	}
	return domain.CountRows
}
