package consolidate

import (
	"github.com/locvowork/orderdash/internal/domain"
)

// sheet builds a RawSheet from plain Go values: string, float64, int and nil.
func sheet(name string, header []string, rows ...[]interface{}) domain.RawSheet {
	s := domain.RawSheet{Name: name, Header: header}
	for _, r := range rows {
		values := make([]domain.Value, len(r))
		for i, v := range r {
			values[i] = value(v)
		}
		s.Rows = append(s.Rows, values)
	}
	return s
}

func value(v interface{}) domain.Value {
	switch x := v.(type) {
	case nil:
		return domain.Missing()
	case string:
		return domain.StringValue(x)
	case float64:
		return domain.NumberValue(x)
	case int:
		return domain.NumberValue(float64(x))
	default:
		panic("unsupported test value")
	}
}
