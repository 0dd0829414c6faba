package service

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/locvowork/orderdash/internal/domain"
	"github.com/locvowork/orderdash/internal/logger"
	"github.com/locvowork/orderdash/internal/query"
	"github.com/locvowork/orderdash/pkg/simpleexcel"
)

// CSVFileName is the download name of the filtered orders export.
const CSVFileName = "pedidos_filtrados.csv"

type viewKey struct {
	dataset uuid.UUID
	filter  string
}

// DashboardService serves the dashboard queries over the dataset of one input file.
type DashboardService struct {
	cache     *DatasetCache
	inputPath string
	template  *simpleexcel.ReportTemplate
	delimiter rune

	mu    sync.Mutex
	views map[viewKey]query.View
}

type DashboardOption func(*DashboardService)

// WithReportTemplate replaces the default xlsx report layout.
func WithReportTemplate(tmpl *simpleexcel.ReportTemplate) DashboardOption {
	return func(s *DashboardService) {
		if tmpl != nil {
			s.template = tmpl
		}
	}
}

func WithCSVDelimiter(r rune) DashboardOption {
	return func(s *DashboardService) {
		if r != 0 {
			s.delimiter = r
		}
	}
}

func NewDashboardService(cache *DatasetCache, inputPath string, opts ...DashboardOption) (*DashboardService, error) {
	tmpl, err := simpleexcel.ParseTemplate([]byte(DefaultReportTemplate))
	if err != nil {
		return nil, fmt.Errorf("default report template: %w", err)
	}
	s := &DashboardService{
		cache:     cache,
		inputPath: inputPath,
		template:  tmpl,
		delimiter: ';',
		views:     make(map[viewKey]query.View),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Dataset returns the current consolidated dataset.
func (s *DashboardService) Dataset(ctx context.Context) (*domain.Dataset, error) {
	return s.cache.Load(ctx, s.inputPath)
}

// Reload drops the cached dataset and consolidates the input again.
func (s *DashboardService) Reload(ctx context.Context) (*domain.Dataset, error) {
	s.cache.Invalidate(s.inputPath)
	s.mu.Lock()
	s.views = make(map[viewKey]query.View)
	s.mu.Unlock()
	logger.InfoLog(ctx, "reloading %s", s.inputPath)
	return s.Dataset(ctx)
}

// View returns the filtered view of the current dataset, memoized per dataset and filter.
func (s *DashboardService) View(ctx context.Context, spec query.FilterSpec) (query.View, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return query.View{}, err
	}
	key := viewKey{dataset: ds.ID, filter: spec.Key()}

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.views[key]; ok {
		return v, nil
	}
	for k := range s.views {
		if k.dataset != ds.ID {
			delete(s.views, k)
		}
	}
	v := query.Apply(ds, spec)
	s.views[key] = v
	logger.DebugLog(ctx, "filtered %d of %d rows", v.Len(), ds.Len())
	return v, nil
}

func (s *DashboardService) Options(ctx context.Context) (query.FilterOptions, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return query.FilterOptions{}, err
	}
	return query.Options(ds), nil
}

func (s *DashboardService) Summary(ctx context.Context, spec query.FilterSpec) (query.Summary, error) {
	v, err := s.View(ctx, spec)
	if err != nil {
		return query.Summary{}, err
	}
	return query.Summarize(v), nil
}

func (s *DashboardService) Aggregate(ctx context.Context, spec query.FilterSpec, dim query.Dimension, opts ...query.AggregateOption) ([]query.AggregateRow, error) {
	v, err := s.View(ctx, spec)
	if err != nil {
		return nil, err
	}
	return query.Aggregate(v, dim, opts...)
}

func (s *DashboardService) Detail(ctx context.Context, spec query.FilterSpec, opts ...query.DetailOption) (query.DetailTable, error) {
	v, err := s.View(ctx, spec)
	if err != nil {
		return query.DetailTable{}, err
	}
	return query.Detail(v, opts...), nil
}

// ExportCSV writes the filtered detail rows as delimited text, in dataset order.
func (s *DashboardService) ExportCSV(ctx context.Context, w io.Writer, spec query.FilterSpec) error {
	v, err := s.View(ctx, spec)
	if err != nil {
		return err
	}
	exporter := simpleexcel.NewExporter()
	exporter.AddSheet("Pedidos").AddSection(&simpleexcel.SectionConfig{
		ID:         SectionOrders,
		ShowHeader: true,
		Columns:    detailColumns(v.Dataset()),
		Data:       query.Detail(v).Records(),
	})
	if err := exporter.ToCSV(w, simpleexcel.CSVOptions{Delimiter: s.delimiter}); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	logger.InfoLog(ctx, "exported %d orders to csv", v.Len())
	return nil
}

// ExportXLSX writes the report workbook: summary, aggregates per dimension and orders newest first.
func (s *DashboardService) ExportXLSX(ctx context.Context, w io.Writer, spec query.FilterSpec) error {
	v, err := s.View(ctx, spec)
	if err != nil {
		return err
	}

	exporter := simpleexcel.NewExporterFromTemplate(s.template).
		RegisterFormatter("money", moneyFormatter).
		BindSectionData(SectionSummary, summaryRecords(query.Summarize(v))).
		BindSectionData(SectionOrders, query.Detail(v, query.SortByDateDesc()).Records())

	for _, dim := range query.Dimensions() {
		rows, err := query.Aggregate(v, dim)
		if err != nil {
			return err
		}
		exporter.BindSectionData(string(dim), aggregateRecords(rows))
	}
	if sec := exporter.Section(SectionOrders); sec != nil && len(sec.Columns) == 0 {
		sec.Columns = detailColumns(v.Dataset())
	}

	if err := exporter.ToWriter(w); err != nil {
		return fmt.Errorf("export xlsx: %w", err)
	}
	logger.InfoLog(ctx, "exported report with %d orders", v.Len())
	return nil
}
