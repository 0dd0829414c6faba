package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/locvowork/orderdash/internal/consolidate"
	"github.com/locvowork/orderdash/internal/domain"
	"github.com/stretchr/testify/require"
)

// fakeSource serves fixed sheets and counts reads.
type fakeSource struct {
	sheets []domain.RawSheet
	err    error
	reads  int
}

func (f *fakeSource) ReadSheets(ctx context.Context, path string) ([]domain.RawSheet, error) {
	f.reads++
	if f.err != nil {
		return nil, f.err
	}
	return f.sheets, nil
}

var orderHeader = []string{"DATA DO PEDIDO", "Número do Pedido", "Status do Pedido", "Usuário", "Nome do Cliente", "VALOR LÍQUIDO"}

func orderSheets() []domain.RawSheet {
	row := func(date, number, status, user, client string, value float64) []domain.Value {
		return []domain.Value{
			domain.StringValue(date),
			domain.StringValue(number),
			domain.StringValue(status),
			domain.StringValue(user),
			domain.StringValue(client),
			domain.NumberValue(value),
		}
	}
	return []domain.RawSheet{
		{
			Name:   "Loja A",
			Header: orderHeader,
			Rows: [][]domain.Value{
				row("2024-01-05", "PV-1", "Faturado", "ANA", "LOJA A", 100),
				row("2024-02-10", "PV-2", "Cancelado", "BRUNO", "LOJA B", 50.5),
			},
		},
		{
			Name:   "Loja B",
			Header: orderHeader,
			Rows: [][]domain.Value{
				row("15/02/2024", "PV-3", "Faturado", "ANA", "LOJA; C", 20),
			},
		},
	}
}

// touchInput creates the file the cache stats; its contents are never parsed by fakeSource.
func touchInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pedidos.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("stub"), 0o644))
	return path
}

func newTestCache(src domain.SheetSource) *DatasetCache {
	return NewDatasetCache(src, consolidate.NewPipeline(consolidate.DefaultRules(), consolidate.CollisionFirstWins, domain.DefaultDateColumn))
}

func newTestService(t *testing.T, opts ...DashboardOption) (*DashboardService, *fakeSource, string) {
	t.Helper()
	src := &fakeSource{sheets: orderSheets()}
	path := touchInput(t)
	svc, err := NewDashboardService(newTestCache(src), path, opts...)
	require.NoError(t, err)
	return svc, src, path
}
