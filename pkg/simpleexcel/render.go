package simpleexcel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	defaultTitleStyle = &StyleTemplate{
		Font:      &FontTemplate{Bold: true},
		Alignment: &AlignmentTemplate{Horizontal: "center", Vertical: "top"},
	}
	defaultHeaderStyle = &StyleTemplate{
		Font:      &FontTemplate{Bold: true},
		Fill:      &FillTemplate{Color: "D9E1F2"},
		Alignment: &AlignmentTemplate{Horizontal: "center", Vertical: "top"},
	}
)

// renderSections lays sections out vertically (one below the other) unless a
// section asks for horizontal placement or an explicit position.
func (e *Exporter) renderSections(f *excelize.File, styles *styleCache, sheet string, sections []*SectionConfig) error {
	maxRow := 1
	nextCol := 1

	for _, sec := range sections {
		sec.Columns = mergeColumns(sec.Data, sec.Columns)
		sCol, sRow := calculatePosition(sec, nextCol, maxRow)
		row := sRow

		width := len(sec.Columns)
		if width == 0 {
			width = 1
		}

		if sec.Title != "" {
			cell, _ := excelize.CoordinatesToCellName(sCol, row)
			if err := f.SetCellValue(sheet, cell, sec.Title); err != nil {
				return err
			}
			styleID, err := styles.get(resolveStyle(sec.TitleStyle, defaultTitleStyle), 0)
			if err != nil {
				return err
			}
			endCell, _ := excelize.CoordinatesToCellName(sCol+width-1, row)
			if width > 1 {
				if err := f.MergeCell(sheet, cell, endCell); err != nil {
					return err
				}
			}
			if err := f.SetCellStyle(sheet, cell, endCell, styleID); err != nil {
				return err
			}
			row++
		}

		if sec.Type == SectionTypeTitleOnly {
			maxRow, nextCol = advance(maxRow, row, sCol, width)
			continue
		}

		headerRow := row
		if sec.ShowHeader {
			styleID, err := styles.get(resolveStyle(sec.HeaderStyle, defaultHeaderStyle), 0)
			if err != nil {
				return err
			}
			for i, col := range sec.Columns {
				cell, _ := excelize.CoordinatesToCellName(sCol+i, row)
				if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
					return err
				}
				if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
					return err
				}
				if col.Width > 0 {
					name, _ := excelize.ColumnNumberToName(sCol + i)
					if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
						return err
					}
				}
			}
			if sec.HeaderHeight > 0 {
				if err := f.SetRowHeight(sheet, row, sec.HeaderHeight); err != nil {
					return err
				}
			}
			row++
		}

		items := dataValue(sec.Data)
		for i := 0; i < items.Len(); i++ {
			item := items.Index(i)
			for j, col := range sec.Columns {
				cell, _ := excelize.CoordinatesToCellName(sCol+j, row)
				val := e.format(col, extractValue(item, col.FieldName))
				if val != nil {
					if err := f.SetCellValue(sheet, cell, val); err != nil {
						return err
					}
				}
				if sec.DataStyle == nil && col.NumFmt == 0 {
					continue
				}
				styleID, err := styles.get(resolveStyle(sec.DataStyle, nil), col.NumFmt)
				if err != nil {
					return err
				}
				if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
					return err
				}
			}
			row++
		}

		if sec.HasFilter && sec.ShowHeader && len(sec.Columns) > 0 {
			first, _ := excelize.CoordinatesToCellName(sCol, headerRow)
			last, _ := excelize.CoordinatesToCellName(sCol+len(sec.Columns)-1, row-1)
			if err := f.AutoFilter(sheet, fmt.Sprintf("%s:%s", first, last), nil); err != nil {
				return err
			}
		}

		maxRow, nextCol = advance(maxRow, row, sCol, width)
	}
	return nil
}

// advance moves the layout cursors past a rendered section, leaving one blank row between vertical sections.
func advance(maxRow, row, sCol, width int) (int, int) {
	if row+1 > maxRow {
		maxRow = row + 1
	}
	return maxRow, sCol + width + 1
}

// calculatePosition returns the start column and row for a section.
func calculatePosition(sec *SectionConfig, nextCol, maxRow int) (int, int) {
	if sec.Position != "" {
		if c, r, err := excelize.CellNameToCoordinates(sec.Position); err == nil {
			return c, r
		}
	}
	if sec.Direction == SectionDirectionHorizontal {
		return nextCol, 1
	}
	return 1, maxRow
}

// resolveStyle fills the parts a section style leaves unset from the default.
func resolveStyle(base, def *StyleTemplate) *StyleTemplate {
	s := &StyleTemplate{}
	if base != nil {
		*s = *base
	}
	if def == nil {
		return s
	}
	if s.Font == nil {
		s.Font = def.Font
	}
	if s.Fill == nil {
		s.Fill = def.Fill
	}
	if s.Alignment == nil {
		s.Alignment = def.Alignment
	}
	return s
}

// styleCache deduplicates excelize styles, which are otherwise created per cell.
type styleCache struct {
	f   *excelize.File
	ids map[string]int
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, ids: make(map[string]int)}
}

func (c *styleCache) get(tmpl *StyleTemplate, numFmt int) (int, error) {
	style := &excelize.Style{NumFmt: numFmt}
	var key strings.Builder
	fmt.Fprintf(&key, "n%d", numFmt)
	if tmpl.Font != nil {
		style.Font = &excelize.Font{Bold: tmpl.Font.Bold, Color: strings.TrimPrefix(tmpl.Font.Color, "#")}
		fmt.Fprintf(&key, "|f%t%s", tmpl.Font.Bold, style.Font.Color)
	}
	if tmpl.Fill != nil {
		color := strings.TrimPrefix(tmpl.Fill.Color, "#")
		style.Fill = excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
		fmt.Fprintf(&key, "|b%s", color)
	}
	if tmpl.Alignment != nil {
		style.Alignment = &excelize.Alignment{
			Horizontal: tmpl.Alignment.Horizontal,
			Vertical:   tmpl.Alignment.Vertical,
		}
		fmt.Fprintf(&key, "|a%s%s", tmpl.Alignment.Horizontal, tmpl.Alignment.Vertical)
	}

	if id, ok := c.ids[key.String()]; ok {
		return id, nil
	}
	id, err := c.f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	c.ids[key.String()] = id
	return id, nil
}
