package consolidate

import (
	"fmt"
	"strings"

	"github.com/locvowork/orderdash/internal/domain"
)

// MergeSheets concatenates sheets in the given order into a single table.
// Rows keep their order inside each sheet and are tagged with the sheet name.
// Labels missing from a sheet read as Missing for that sheet's rows.
func MergeSheets(sheets []domain.RawSheet) (*Table, error) {
	if len(sheets) == 0 {
		return nil, domain.ErrEmptyInput
	}

	total := 0
	for _, s := range sheets {
		total += len(s.Rows)
	}

	table := &Table{
		Rows:   make([]Row, 0, total),
		Sheets: make([]domain.SheetStat, 0, len(sheets)),
	}
	seen := make(map[string]bool)

	for _, sheet := range sheets {
		labels := uniqueLabels(sheet.Header)
		for _, label := range labels {
			if !seen[label] {
				seen[label] = true
				table.Columns = append(table.Columns, label)
			}
		}

		for r := range sheet.Rows {
			cells := make(map[string]domain.Value, len(labels))
			for i, label := range labels {
				if v := sheet.Cell(r, i); !v.IsMissing() {
					cells[label] = v
				}
			}
			table.Rows = append(table.Rows, Row{Sheet: sheet.Name, Cells: cells})
		}

		table.Sheets = append(table.Sheets, domain.SheetStat{Name: sheet.Name, Rows: len(sheet.Rows)})
	}

	return table, nil
}

// uniqueLabels names blank headers and disambiguates repeated headers within one sheet,
// the same way spreadsheet readers usually do ("Unnamed: 3", "STATUS.1").
func uniqueLabels(header []string) []string {
	labels := make([]string, len(header))
	counts := make(map[string]int)
	for i, h := range header {
		label := h
		if strings.TrimSpace(label) == "" {
			label = fmt.Sprintf("Unnamed: %d", i)
		}
		if n := counts[label]; n > 0 {
			counts[label] = n + 1
			label = fmt.Sprintf("%s.%d", label, n)
		} else {
			counts[label] = 1
		}
		labels[i] = label
	}
	return labels
}
