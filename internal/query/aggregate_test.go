package query

import (
	"testing"

	"github.com/locvowork/orderdash/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAggregate_SumConservation(t *testing.T) {
	ds := sampleDataset()
	views := map[string]View{
		"all":      All(ds),
		"faturado": Apply(ds, mustSpec(t, WithStatuses("Faturado"))),
		"january":  Apply(ds, mustSpec(t, WithDateRange(date("2024-01-01"), date("2024-01-31")))),
	}

	for name, v := range views {
		for _, dim := range Dimensions() {
			t.Run(name+"/"+string(dim), func(t *testing.T) {
				rows, err := Aggregate(v, dim, WithLimit(0))
				require.NoError(t, err)

				sum := decimal.Zero
				for _, r := range rows {
					sum = sum.Add(r.Value)
				}
				assert.True(t, TotalValue(v).Equal(sum), "groups sum to %s, view total %s", sum, TotalValue(v))
			})
		}
	}
}

func TestAggregate_Month(t *testing.T) {
	rows, err := Aggregate(All(sampleDataset()), DimMonth)
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, "2024-01", rows[0].Key)
	assert.Equal(t, 2, rows[0].Orders)
	assert.True(t, dec("150").Equal(rows[0].Value))

	assert.Equal(t, "2024-02", rows[1].Key)
	assert.Equal(t, 1, rows[1].Orders, "PV-3 spans two rows but is one order")
	assert.True(t, dec("225.5").Equal(rows[1].Value))

	assert.Equal(t, "2024-03", rows[2].Key)

	missing := rows[3]
	assert.True(t, missing.Missing)
	assert.Equal(t, "", missing.Key)
	assert.True(t, dec("10").Equal(missing.Value))
}

func TestAggregate_StatusByOrders(t *testing.T) {
	rows, err := Aggregate(All(sampleDataset()), DimStatus)
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, "Faturado", rows[0].Key)
	assert.Equal(t, 2, rows[0].Orders)
	assert.Equal(t, "Cancelado", rows[1].Key)
	assert.Equal(t, "Em aberto", rows[2].Key)
	assert.True(t, rows[3].Missing)
}

func TestAggregate_RankingAndLimit(t *testing.T) {
	v := All(sampleDataset())

	rows, err := Aggregate(v, DimSalesperson)
	require.NoError(t, err)
	assert.Equal(t, "ANA", rows[0].Key)
	assert.True(t, dec("325.5").Equal(rows[0].Value))
	assert.Equal(t, "BRUNO", rows[1].Key)
	assert.Equal(t, "CARLA", rows[2].Key)
	assert.True(t, rows[len(rows)-1].Missing)

	top, err := Aggregate(v, DimCustomer, WithLimit(1))
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "LOJA B", top[0].Key)

	sheets, err := Aggregate(v, DimSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jan", "Fev", "Mar"}, []string{sheets[0].Key, sheets[1].Key, sheets[2].Key})

	byKey, err := Aggregate(v, DimPolicy, WithSort(SortKeyAsc))
	require.NoError(t, err)
	assert.Equal(t, "Padrao", byKey[0].Key)
	assert.Equal(t, "Promo", byKey[1].Key)
}

func TestAggregate_CountRows(t *testing.T) {
	ds := sampleDataset()
	ds.OrderCountMode = domain.CountRows

	rows, err := Aggregate(All(ds), DimMonth)
	require.NoError(t, err)
	assert.Equal(t, 2, rows[1].Orders)
}

func TestAggregate_EmptyView(t *testing.T) {
	ds := sampleDataset()
	v := Apply(ds, mustSpec(t, WithCustomer("NOBODY")))

	rows, err := Aggregate(v, DimStatus)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseDimension(t *testing.T) {
	dim, err := ParseDimension(" Month ")
	require.NoError(t, err)
	assert.Equal(t, DimMonth, dim)
	assert.Equal(t, domain.FieldYearMonth, dim.Field())

	_, err = ParseDimension("region")
	assert.ErrorIs(t, err, ErrUnknownDimension)

	_, err = Aggregate(All(sampleDataset()), Dimension("region"))
	assert.ErrorIs(t, err, ErrUnknownDimension)
}
