package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ValueKind tells which field of a Value is meaningful.
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindString
	KindNumber
	KindTime
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindTime:
		return "time"
	default:
		return "missing"
	}
}

// Value is a single spreadsheet cell. The zero Value is Missing.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Time time.Time
}

func Missing() Value { return Value{} }

func StringValue(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{Kind: KindString, Str: s}
}

func NumberValue(f float64) Value { return Value{Kind: KindNumber, Num: f} }

func TimeValue(t time.Time) Value { return Value{Kind: KindTime, Time: t} }

// IsMissing reports whether the cell holds no data.
func (v Value) IsMissing() bool { return v.Kind == KindMissing }

// String renders the cell the way it is shown in filters, group keys and exports.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindTime:
		if v.Time.Hour() == 0 && v.Time.Minute() == 0 && v.Time.Second() == 0 {
			return v.Time.Format("2006-01-02")
		}
		return v.Time.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// Text returns the trimmed textual form and false for missing or blank cells.
func (v Value) Text() (string, bool) {
	if v.IsMissing() {
		return "", false
	}
	s := strings.TrimSpace(v.String())
	return s, s != ""
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindString, KindTime:
		return json.Marshal(v.String())
	default:
		return []byte("null"), nil
	}
}
