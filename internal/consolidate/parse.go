package consolidate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/locvowork/orderdash/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-1-2",
	"2/1/2006",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"2-1-2006",
	"2006/1/2",
}

// maxExcelSerial is 9999-12-31.
const maxExcelSerial = 2958465

// ParseDate converts a cell into a calendar date. Numbers are Excel serial dates;
// strings are tried against ISO and day-first layouts.
func ParseDate(v domain.Value) (time.Time, bool) {
	switch v.Kind {
	case domain.KindTime:
		return v.Time, true
	case domain.KindNumber:
		return fromSerial(v.Num)
	case domain.KindString:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return fromSerial(f)
		}
	}
	return time.Time{}, false
}

func fromSerial(serial float64) (time.Time, bool) {
	if math.IsNaN(serial) || serial <= 0 || serial > maxExcelSerial {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

var ptBRAmount = regexp.MustCompile(`^-?(\d{1,3}(\.\d{3})+|\d+)(,\d+)?$`)

// ParseAmount coerces a cell into a decimal amount.
// Plain decimals are tried first, then pt-BR formatted amounts ("R$ 1.234,56").
func ParseAmount(v domain.Value) (decimal.Decimal, bool) {
	switch v.Kind {
	case domain.KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(v.Num), true
	case domain.KindString:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return decimal.Zero, false
		}
		if d, err := decimal.NewFromString(s); err == nil {
			return d, true
		}
		s = strings.TrimPrefix(s, "R$")
		s = strings.Map(func(r rune) rune {
			if r == ' ' || r == '\u00a0' {
				return -1
			}
			return r
		}, s)
		if ptBRAmount.MatchString(s) {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
			if d, err := decimal.NewFromString(s); err == nil {
				return d, true
			}
		}
	}
	return decimal.Zero, false
}

// YearMonth formats the monthly bucket key, e.g. "2024-03".
func YearMonth(t time.Time) string {
	return t.Format("2006-01")
}
