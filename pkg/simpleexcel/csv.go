package simpleexcel

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// CSVOptions controls delimited export.
type CSVOptions struct {
	Delimiter rune
	// Sheet selects the sheet to export; empty means the first one.
	Sheet string
}

// ToCSV writes the sections of one sheet as delimited text: an optional title line,
// the header when ShowHeader is set, then the data rows. Sections are separated by an empty line.
func (e *Exporter) ToCSV(w io.Writer, opts CSVOptions) error {
	if len(e.sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}
	sheet := e.sheets[0]
	if opts.Sheet != "" {
		if sheet = e.GetSheet(opts.Sheet); sheet == nil {
			return fmt.Errorf("sheet %q not found", opts.Sheet)
		}
	}

	cw := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		cw.Comma = opts.Delimiter
	}

	e.bind(sheet.sections)
	for i, sec := range sheet.sections {
		if i > 0 {
			if err := cw.Write([]string{""}); err != nil {
				return err
			}
		}
		cols := mergeColumns(sec.Data, sec.Columns)
		if sec.Title != "" {
			if err := cw.Write([]string{sec.Title}); err != nil {
				return err
			}
		}
		if sec.ShowHeader && len(cols) > 0 {
			header := make([]string, len(cols))
			for j, col := range cols {
				header[j] = col.Header
			}
			if err := cw.Write(header); err != nil {
				return err
			}
		}
		items := dataValue(sec.Data)
		for r := 0; r < items.Len(); r++ {
			record := make([]string, len(cols))
			for j, col := range cols {
				record[j] = csvText(e.format(col, extractValue(items.Index(r), col.FieldName)))
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvText(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 {
			return v.Format("2006-01-02")
		}
		return v.Format("2006-01-02 15:04:05")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
