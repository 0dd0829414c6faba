package query

import "github.com/locvowork/orderdash/internal/domain"

// View is an ordered subset of a dataset's rows. It holds indices into the
// dataset, so filtering never copies or mutates rows.
type View struct {
	ds      *domain.Dataset
	indices []int
}

// All returns a view over every row of the dataset.
func All(ds *domain.Dataset) View {
	indices := make([]int, ds.Len())
	for i := range indices {
		indices[i] = i
	}
	return View{ds: ds, indices: indices}
}

func (v View) Len() int { return len(v.indices) }

func (v View) Dataset() *domain.Dataset { return v.ds }

// Row returns the i-th row of the view.
func (v View) Row(i int) *domain.ConsolidatedRow {
	return &v.ds.Rows[v.indices[i]]
}

// Indices returns a copy of the dataset row positions in view order.
func (v View) Indices() []int {
	return append([]int(nil), v.indices...)
}

func (v View) subset(indices []int) View {
	return View{ds: v.ds, indices: indices}
}
