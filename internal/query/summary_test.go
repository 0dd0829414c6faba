package query

import (
	"testing"

	"github.com/locvowork/orderdash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s := Summarize(All(sampleDataset()))

	assert.Equal(t, 5, s.TotalOrders)
	assert.True(t, dec("390.5").Equal(s.TotalValue))
	require.NotNil(t, s.InvoicedPct)
	assert.InDelta(t, 40.0, *s.InvoicedPct, 1e-9)
	assert.Equal(t, 3, s.ActiveSalespeople)
	assert.Equal(t, 3, s.ActiveCustomers)
}

func TestSummarize_InvoicedKeywords(t *testing.T) {
	ds := newDataset(
		testOrder{number: "1A", status: "INVOICED"},
		testOrder{number: "2A", status: "Parcialmente faturado"},
		testOrder{number: "3A", status: "Aberto"},
		testOrder{number: "4A", status: "Aberto"},
	)
	s := Summarize(All(ds))
	require.NotNil(t, s.InvoicedPct)
	assert.InDelta(t, 50.0, *s.InvoicedPct, 1e-9)
}

func TestSummarize_NotApplicable(t *testing.T) {
	t.Run("no orders", func(t *testing.T) {
		ds := sampleDataset()
		s := Summarize(Apply(ds, mustSpec(t, WithCustomer("NOBODY"))))
		assert.Equal(t, 0, s.TotalOrders)
		assert.True(t, s.TotalValue.IsZero())
		assert.Nil(t, s.InvoicedPct)
	})

	t.Run("no status column", func(t *testing.T) {
		ds := sampleDataset()
		ds.Columns = []string{domain.DefaultDateColumn, domain.FieldOrderNumber, "VALOR LÍQUIDO"}
		s := Summarize(All(ds))
		assert.Equal(t, 5, s.TotalOrders)
		assert.Nil(t, s.InvoicedPct)
		assert.Equal(t, 0, s.ActiveSalespeople)
		assert.Equal(t, 0, s.ActiveCustomers)
	})

	t.Run("no order number column counts rows", func(t *testing.T) {
		ds := sampleDataset()
		ds.Columns = []string{domain.DefaultDateColumn, domain.FieldOrderStatus, "VALOR LÍQUIDO"}
		s := Summarize(All(ds))
		assert.Equal(t, 6, s.TotalOrders)
		require.NotNil(t, s.InvoicedPct)
		assert.InDelta(t, 50.0, *s.InvoicedPct, 1e-9)
	})
}
