package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	assert.True(t, StringValue("").IsMissing())
	assert.Equal(t, "12.5", NumberValue(12.5).String())
	assert.Equal(t, "2024-03-05", TimeValue(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)).String())
	assert.Equal(t, "2024-03-05 08:15:00", TimeValue(time.Date(2024, 3, 5, 8, 15, 0, 0, time.UTC)).String())

	text, ok := StringValue("  Faturado ").Text()
	assert.True(t, ok)
	assert.Equal(t, "Faturado", text)

	_, ok = StringValue("   ").Text()
	assert.False(t, ok)

	data, err := json.Marshal([]Value{Missing(), NumberValue(3), StringValue("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `[null, 3, "x"]`, string(data))
}

func TestConsolidatedRow_Field(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	row := ConsolidatedRow{
		Sheet:     "Jan",
		Cells:     map[string]Value{FieldOrderStatus: StringValue("Faturado")},
		OrderDate: &date,
		Year:      2024,
		Month:     3,
		YearMonth: "2024-03",
		Value:     decimal.RequireFromString("10.5"),
	}

	assert.Equal(t, "Jan", row.Field(FieldSheetName).Str)
	assert.Equal(t, KindTime, row.Field(FieldOrderDate).Kind)
	assert.Equal(t, 2024.0, row.Field(FieldYear).Num)
	assert.Equal(t, 10.5, row.Field(FieldValue).Num)
	assert.True(t, row.Field(FieldCustomerName).IsMissing())

	status, ok := row.Text(FieldOrderStatus)
	assert.True(t, ok)
	assert.Equal(t, "Faturado", status)

	empty := ConsolidatedRow{}
	assert.True(t, empty.Field(FieldOrderDate).IsMissing())
	assert.True(t, empty.Field(FieldYearMonth).IsMissing())
	assert.True(t, empty.Field(FieldMonth).IsMissing())
}

func TestIssue(t *testing.T) {
	i := IssueDateUnparsable | IssueValueMissing
	assert.True(t, i.Has(IssueValueMissing))
	assert.False(t, i.Has(IssueDateMissing))
	assert.Equal(t, "date_unparsable,value_missing", i.String())

	data, err := json.Marshal(Issue(0))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDataset(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"DATA DO PEDIDO", FieldOrderNumber},
		Rows:    []ConsolidatedRow{{}, {Issues: IssueDateMissing}},
	}
	assert.Equal(t, 2, ds.Len())
	assert.True(t, ds.HasColumn(FieldOrderNumber))
	assert.False(t, ds.HasColumn(FieldOrderStatus))
	assert.Equal(t, 1, ds.IncompleteRows())

	data, err := json.Marshal(CountRows)
	require.NoError(t, err)
	assert.Equal(t, `"rows"`, string(data))
}
