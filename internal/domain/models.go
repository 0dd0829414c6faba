package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== SOURCE DATA ====================

// RawSheet is one worksheet as read from the workbook, before any normalization.
type RawSheet struct {
	Name   string
	Header []string
	Rows   [][]Value
}

// Cell returns the value under column index i of row r, Missing when the row is short.
func (s RawSheet) Cell(r, i int) Value {
	if r < 0 || r >= len(s.Rows) || i < 0 || i >= len(s.Rows[r]) {
		return Missing()
	}
	return s.Rows[r][i]
}

// SheetStat counts the rows contributed by one sheet.
type SheetStat struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

// Collision reasons.
const (
	CollisionWhitespace = "whitespace"
	CollisionRename     = "rename"
)

// Collision records two source columns that resolved to the same name.
type Collision struct {
	Canonical string `json:"canonical"`
	Kept      string `json:"kept"`
	Dropped   string `json:"dropped"`
	// Renamed is the name the dropped column ended up with, empty when its values were coalesced.
	Renamed string `json:"renamed,omitempty"`
	Reason  string `json:"reason"`
}

// ==================== DERIVED DATA ====================

// CountMode decides how orders are counted per group.
type CountMode int

const (
	// CountDistinct counts distinct ORDER_NUMBER values (identifier semantics).
	CountDistinct CountMode = iota
	// CountRows counts rows (ORDER_NUMBER absent or purely numeric).
	CountRows
)

func (m CountMode) String() string {
	if m == CountRows {
		return "rows"
	}
	return "distinct"
}

func (m CountMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Issue flags a field that could not be derived for a row.
type Issue uint8

const (
	IssueDateMissing Issue = 1 << iota
	IssueDateUnparsable
	IssueValueMissing
	IssueValueUnparsable
)

var issueNames = []struct {
	flag Issue
	name string
}{
	{IssueDateMissing, "date_missing"},
	{IssueDateUnparsable, "date_unparsable"},
	{IssueValueMissing, "value_missing"},
	{IssueValueUnparsable, "value_unparsable"},
}

func (i Issue) Has(flag Issue) bool { return i&flag != 0 }

func (i Issue) Names() []string {
	names := []string{}
	for _, n := range issueNames {
		if i.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return names
}

func (i Issue) String() string { return strings.Join(i.Names(), ",") }

func (i Issue) MarshalJSON() ([]byte, error) { return json.Marshal(i.Names()) }

// ConsolidatedRow is a merged row after normalization and derivation.
type ConsolidatedRow struct {
	Sheet     string           `json:"sheet_name"`
	Cells     map[string]Value `json:"cells"`
	OrderDate *time.Time       `json:"order_date,omitempty"`
	Year      int              `json:"year,omitempty"`
	Month     int              `json:"month,omitempty"`
	YearMonth string           `json:"year_month,omitempty"`
	Value     decimal.Decimal  `json:"value"`
	Issues    Issue            `json:"issues,omitempty"`
}

// HasDate reports whether ORDER_DATE was derived.
func (r ConsolidatedRow) HasDate() bool { return r.OrderDate != nil }

// Incomplete reports whether any derived field fell back to missing or zero.
func (r ConsolidatedRow) Incomplete() bool { return r.Issues != 0 }

// Field resolves canonical derived fields first, then normalized columns.
func (r ConsolidatedRow) Field(name string) Value {
	switch name {
	case FieldSheetName:
		return StringValue(r.Sheet)
	case FieldOrderDate:
		if r.OrderDate == nil {
			return Missing()
		}
		return TimeValue(*r.OrderDate)
	case FieldYear:
		if r.Year == 0 {
			return Missing()
		}
		return NumberValue(float64(r.Year))
	case FieldMonth:
		if r.Month == 0 {
			return Missing()
		}
		return NumberValue(float64(r.Month))
	case FieldYearMonth:
		return StringValue(r.YearMonth)
	case FieldValue:
		return NumberValue(r.Value.InexactFloat64())
	}
	return r.Cells[name]
}

// Text returns the trimmed text of a field, false when missing.
func (r ConsolidatedRow) Text(name string) (string, bool) {
	return r.Field(name).Text()
}

// Dataset is the consolidated table built once per load. It is never mutated after construction.
type Dataset struct {
	ID       uuid.UUID `json:"id"`
	Source   string    `json:"source"`
	ModTime  time.Time `json:"mod_time"`
	LoadedAt time.Time `json:"loaded_at"`

	Columns []string          `json:"columns"`
	Rows    []ConsolidatedRow `json:"-"`

	DateField        string      `json:"date_field"`
	ValueField       string      `json:"value_field"`
	ValueSynthesized bool        `json:"value_synthesized"`
	OrderCountMode   CountMode   `json:"order_count_mode"`
	Collisions       []Collision `json:"collisions"`
	Sheets           []SheetStat `json:"sheets"`
}

func (d *Dataset) Len() int { return len(d.Rows) }

// HasColumn reports whether a normalized column exists in the merged table.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// IncompleteRows counts rows carrying at least one derivation issue.
func (d *Dataset) IncompleteRows() int {
	n := 0
	for i := range d.Rows {
		if d.Rows[i].Incomplete() {
			n++
		}
	}
	return n
}
