package consolidate

import (
	"context"
	"errors"
	"testing"

	"github.com/locvowork/orderdash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_Run(t *testing.T) {
	p := NewPipeline(DefaultRules(), CollisionFirstWins, domain.DefaultDateColumn)

	ds, err := p.Run(context.Background(), []domain.RawSheet{
		sheet("Loja A",
			[]string{"DATA DO PEDIDO", "Número do Pedido", "Status do Pedido", "VALOR LÍQUIDO"},
			[]interface{}{"2024-01-05", "PV-1", "Faturado", 100.0},
			[]interface{}{"2024-01-06", "PV-2", "Cancelado", 50.0},
		),
		sheet("Loja B",
			[]string{" DATA DO PEDIDO", "Número do Pedido", "Status do Pedido", "VALOR LÍQUIDO"},
			[]interface{}{"06/02/2024", "PV-3", "Faturado", "R$ 1.000,00"},
			[]interface{}{"sem data", "PV-4", "Em aberto", 10.0},
		),
		sheet("Loja C",
			[]string{"DATA DO PEDIDO", "Número do Pedido", "VALOR LÍQUIDO"},
			[]interface{}{"2024-03-01", "PV-5", 1.0},
			[]interface{}{"2024-03-02", "PV-6", 2.0},
		),
	})
	require.NoError(t, err)

	assert.Equal(t, 6, ds.Len())
	assert.Equal(t, "VALOR LÍQUIDO", ds.ValueField)
	assert.Equal(t, domain.CountDistinct, ds.OrderCountMode)
	assert.Equal(t, []string{"DATA DO PEDIDO", domain.FieldOrderNumber, domain.FieldOrderStatus, "VALOR LÍQUIDO"}, ds.Columns)
	assert.Len(t, ds.Collisions, 1)

	sheets := make([]string, 0, ds.Len())
	for _, r := range ds.Rows {
		sheets = append(sheets, r.Sheet)
	}
	assert.Equal(t, []string{"Loja A", "Loja A", "Loja B", "Loja B", "Loja C", "Loja C"}, sheets)

	assert.Equal(t, "2024-02", ds.Rows[2].YearMonth)
	assert.Equal(t, "1000", ds.Rows[2].Value.String())
	assert.True(t, ds.Rows[3].Issues.Has(domain.IssueDateUnparsable))
	assert.True(t, ds.Rows[4].Field(domain.FieldOrderStatus).IsMissing())
	assert.Equal(t, "Loja C", ds.Rows[5].Field(domain.FieldSheetName).Str)
}

func TestPipeline_Errors(t *testing.T) {
	p := NewPipeline(nil, CollisionFail, "")

	_, err := p.Run(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)

	_, err = p.Run(context.Background(), []domain.RawSheet{sheet("S", []string{"DATA"})})
	var schemaErr *domain.SchemaError
	assert.True(t, errors.As(err, &schemaErr))

	_, err = p.Run(context.Background(), []domain.RawSheet{sheet("S", []string{"DATA DO PEDIDO", "USUARIO", "SALESPERSON"})})
	var collisionErr *domain.ColumnCollisionError
	assert.True(t, errors.As(err, &collisionErr))
}
