package workbook

import (
	"fmt"

	"github.com/locvowork/orderdash/internal/domain"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Write stores the sheets as an xlsx workbook, one worksheet per RawSheet in order.
func Write(path string, sheets []domain.RawSheet) error {
	if len(sheets) == 0 {
		return domain.ErrEmptyInput
	}

	f := excelize.NewFile()
	defer f.Close()

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return err
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet.Name, err)
		}
		if err := writeSheet(f, sheet, dateStyle); err != nil {
			return fmt.Errorf("write sheet %q: %w", sheet.Name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet domain.RawSheet, dateStyle int) error {
	header := make([]interface{}, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return err
	}

	for r, row := range sheet.Rows {
		for c, v := range row {
			if v.IsMissing() {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			switch v.Kind {
			case domain.KindNumber:
				err = f.SetCellFloat(sheet.Name, cell, v.Num, -1, 64)
			case domain.KindTime:
				if err = f.SetCellValue(sheet.Name, cell, v.Time); err == nil {
					err = f.SetCellStyle(sheet.Name, cell, cell, dateStyle)
				}
			default:
				err = f.SetCellStr(sheet.Name, cell, v.Str)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
