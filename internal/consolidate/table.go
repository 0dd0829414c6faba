package consolidate

import "github.com/locvowork/orderdash/internal/domain"

// Table is the merged sheet data before derivation. Columns keep first-seen order.
type Table struct {
	Columns []string
	Rows    []Row
	Sheets  []domain.SheetStat
}

// Row is one merged row tagged with its originating sheet.
type Row struct {
	Sheet string
	Cells map[string]domain.Value
}

// Get returns the cell under column name, Missing when absent.
func (r Row) Get(name string) domain.Value {
	return r.Cells[name]
}

func (t *Table) hasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
