package consolidate

import (
	"context"
	"fmt"

	"github.com/locvowork/orderdash/internal/domain"
	"github.com/locvowork/orderdash/internal/logger"
)

// Pipeline runs merge -> normalize -> derive over the sheets of one workbook.
type Pipeline struct {
	normalizer *Normalizer
	deriver    *Deriver
}

// NewPipeline wires a pipeline. The deriver's date column is protected from renaming.
func NewPipeline(rules []Rule, policy CollisionPolicy, dateColumn string) *Pipeline {
	deriver := NewDeriver(WithDateColumn(dateColumn))
	normalizer := NewNormalizer(
		WithRules(rules),
		WithCollisionPolicy(policy),
		WithProtectedColumns(deriver.DateColumn()),
	)
	return &Pipeline{normalizer: normalizer, deriver: deriver}
}

// Run consolidates the sheets. The returned dataset carries no identity yet; callers stamp it.
func (p *Pipeline) Run(ctx context.Context, sheets []domain.RawSheet) (*domain.Dataset, error) {
	merged, err := MergeSheets(sheets)
	if err != nil {
		return nil, err
	}
	logger.DebugLog(ctx, "merged %d sheets into %d rows, %d columns", len(sheets), len(merged.Rows), len(merged.Columns))

	normalized, collisions, err := p.normalizer.Normalize(merged)
	if err != nil {
		return nil, fmt.Errorf("normalize columns: %w", err)
	}
	for _, c := range collisions {
		logger.WarnLog(ctx, "column collision (%s): %q kept %s, %q now %q", c.Reason, c.Kept, c.Canonical, c.Dropped, c.Renamed)
	}

	ds, err := p.deriver.Derive(normalized)
	if err != nil {
		return nil, err
	}
	ds.Collisions = collisions

	logger.InfoLog(ctx, "consolidated %d rows (value column %q, %d incomplete)", ds.Len(), ds.ValueField, ds.IncompleteRows())
	return ds, nil
}
