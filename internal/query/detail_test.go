package query

import (
	"testing"
	"time"

	"github.com/locvowork/orderdash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetail(t *testing.T) {
	ds := sampleDataset()

	t.Run("view order", func(t *testing.T) {
		table := Detail(Apply(ds, mustSpec(t, WithSalesperson("ANA"))))
		assert.Equal(t, []string{
			domain.FieldOrderDate,
			domain.FieldOrderNumber,
			domain.FieldCustomerName,
			domain.FieldResponsibleUser,
			domain.FieldOrderSource,
			domain.FieldOrderStatus,
			"VALOR LÍQUIDO",
		}, table.Columns)
		require.Len(t, table.Rows, 3)
		assert.Equal(t, "PV-1", table.Rows[0][1].Str)
		assert.Equal(t, 100.0, table.Rows[0][6].Num)
	})

	t.Run("newest first, undated last", func(t *testing.T) {
		table := Detail(All(ds), SortByDateDesc())
		var got []string
		for _, r := range table.Rows {
			got = append(got, r[1].Str)
		}
		assert.Equal(t, []string{"PV-5", "PV-3", "PV-3", "PV-2", "PV-1", "PV-4"}, got)
		assert.True(t, table.Rows[5][0].IsMissing())
	})

	t.Run("max rows", func(t *testing.T) {
		table := Detail(All(ds), SortByDateDesc(), WithMaxRows(2))
		assert.Len(t, table.Rows, 2)
	})

	t.Run("only existing columns", func(t *testing.T) {
		small := sampleDataset()
		small.Columns = []string{domain.DefaultDateColumn, "VALOR LÍQUIDO"}
		assert.Equal(t, []string{domain.FieldOrderDate, "VALOR LÍQUIDO"}, DetailColumns(small))
	})
}

func TestDetailTable_Records(t *testing.T) {
	table := Detail(All(sampleDataset()))
	records := table.Records()

	require.Len(t, records, 6)
	assert.Equal(t, "PV-1", records[0][domain.FieldOrderNumber])
	assert.Equal(t, 100.0, records[0]["VALOR LÍQUIDO"])
	assert.IsType(t, time.Time{}, records[0][domain.FieldOrderDate])
	assert.Nil(t, records[4][domain.FieldOrderDate])
	assert.Nil(t, records[5][domain.FieldOrderStatus])
}

func TestOptions(t *testing.T) {
	opts := Options(sampleDataset())

	require.NotNil(t, opts.MinDate)
	require.NotNil(t, opts.MaxDate)
	assert.Equal(t, date("2024-01-05"), *opts.MinDate)
	assert.Equal(t, date("2024-03-01"), *opts.MaxDate)
	assert.Equal(t, []string{"ANA", "BRUNO", "CARLA"}, opts.Salespeople)
	assert.Equal(t, []string{"LOJA A", "LOJA B", "LOJA C"}, opts.Customers)
	assert.Equal(t, []string{"Cancelado", "Em aberto", "Faturado"}, opts.Statuses)
	assert.Equal(t, []string{"B2B", "Vendedor"}, opts.Sources)
	assert.Equal(t, []string{"Padrao", "Promo"}, opts.Policies)
}
