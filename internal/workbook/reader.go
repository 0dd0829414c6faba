package workbook

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/locvowork/orderdash/internal/domain"
	"github.com/locvowork/orderdash/internal/logger"
	"github.com/xuri/excelize/v2"
)

// Reader loads every sheet of an xlsx workbook as raw, unnormalized tables.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

var _ domain.SheetSource = (*Reader)(nil)

// ReadSheets returns the sheets in workbook order. The first non-empty row of a
// sheet is its header; sheets without one are skipped. Blank data rows are dropped.
func (r *Reader) ReadSheets(ctx context.Context, path string) ([]domain.RawSheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	var sheets []domain.RawSheet
	for _, name := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sheet, ok, err := readSheet(f, name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		if !ok {
			logger.WarnLog(ctx, "Skipping sheet %q: no header row", name)
			continue
		}
		logger.DebugLog(ctx, "Read sheet %q: %d columns, %d rows", name, len(sheet.Header), len(sheet.Rows))
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

func readSheet(f *excelize.File, name string) (domain.RawSheet, bool, error) {
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return domain.RawSheet{}, false, err
	}

	headerAt := -1
	for i, row := range rows {
		if !blankRow(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return domain.RawSheet{}, false, nil
	}

	sheet := domain.RawSheet{Name: name, Header: rows[headerAt]}
	for i := headerAt + 1; i < len(rows); i++ {
		raw := rows[i]
		if blankRow(raw) {
			continue
		}
		width := len(sheet.Header)
		if len(raw) > width {
			width = len(raw)
		}
		values := make([]domain.Value, width)
		for c, text := range raw {
			values[c] = cellValue(f, name, c+1, i+1, text)
		}
		sheet.Rows = append(sheet.Rows, values)
	}
	return sheet, true, nil
}

// cellValue keeps text cells as strings even when they look numeric, so order numbers
// typed as text stay identifiers.
func cellValue(f *excelize.File, sheet string, col, row int, raw string) domain.Value {
	if strings.TrimSpace(raw) == "" {
		return domain.Missing()
	}
	n, ok := parseNumber(raw)
	if !ok {
		return domain.StringValue(raw)
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return domain.NumberValue(n)
	}
	switch typ, _ := f.GetCellType(sheet, cell); typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return domain.StringValue(raw)
	}
	return domain.NumberValue(n)
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseNumber accepts finite decimal numbers only; "NaN", "inf" and hex forms stay text.
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
