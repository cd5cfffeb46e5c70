// Package view composes the engine: for each active dataset it derives the
// filtered row set, the guessed schema, the chart aggregates, and the KPIs.
// Derivation is pure over (rows, filter state, granularity), so results are
// memoized by (dataset, filter hash, granularity) and recomputed only when
// the dataset set changes.
package view

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"pulseboard/domain/core"
	"pulseboard/domain/table"
	"pulseboard/internal/aggregate"
	"pulseboard/internal/classify"
	"pulseboard/internal/filter"
	"pulseboard/internal/kpi"
	"pulseboard/internal/registry"
)

// DatasetView is the fully derived state for one dataset under the current
// filter: plain immutable data with no references back into engine internals.
type DatasetView struct {
	DatasetID     core.DatasetID          `json:"dataset_id"`
	DisplayName   string                  `json:"display_name"`
	CanonicalName string                  `json:"canonical_name"`
	Color         string                  `json:"color"`
	RowCount      int                     `json:"row_count"`
	FilteredCount int                     `json:"filtered_count"`
	Registry      table.ColumnRegistry    `json:"registry"`
	DateColumn    string                  `json:"date_column,omitempty"`
	CategoryCol   string                  `json:"category_column,omitempty"`
	ValueColumn   string                  `json:"value_column,omitempty"`
	ByCategory    table.AggregationResult `json:"by_category"`
	Series        table.TimeSeries        `json:"series"`
	KPIs          []kpi.Value             `json:"kpis"`
	Recovery      kpi.Value               `json:"recovery"`
	Summary       *kpi.NumericSummary     `json:"summary,omitempty"`
	Anomalies     []kpi.Anomaly           `json:"anomalies,omitempty"`
}

// categoryKeywords steer the category-column pick for charts and the unique
// count KPI.
var categoryKeywords = []string{"type", "category", "status", "region"}

// Service derives and caches dataset views.
type Service struct {
	registry   *registry.Registry
	filters    *filter.Engine
	calc       *kpi.Calculator
	sampleSize int
	zThreshold float64

	mu   sync.Mutex
	memo map[string]*DatasetView
}

// NewService wires the engine components with default tunables. The memo is
// dropped whenever the dataset set changes; filter changes need no
// invalidation because the filter hash is part of every memo key.
func NewService(reg *registry.Registry, filters *filter.Engine) *Service {
	return NewServiceWithConfig(reg, filters, classify.DefaultSampleSize, kpi.DefaultZThreshold)
}

// NewServiceWithConfig wires the engine components with explicit
// classification sample size and anomaly z-threshold.
func NewServiceWithConfig(reg *registry.Registry, filters *filter.Engine, sampleSize int, zThreshold float64) *Service {
	s := &Service{
		registry:   reg,
		filters:    filters,
		calc:       kpi.NewCalculator(),
		sampleSize: sampleSize,
		zThreshold: zThreshold,
		memo:       make(map[string]*DatasetView),
	}
	reg.Subscribe(s.invalidate)
	return s
}

// DeriveAll computes the current view for every registered dataset.
// Independent datasets share no mutable state, so derivation fans out.
func (s *Service) DeriveAll(ctx context.Context, g table.Granularity) ([]*DatasetView, error) {
	if !g.Valid() {
		return nil, core.ErrInvalidGranularity
	}

	datasets := s.registry.List()
	state := s.filters.Current()

	views := make([]*DatasetView, len(datasets))
	grp, _ := errgroup.WithContext(ctx)
	for i, ds := range datasets {
		i, ds := i, ds
		grp.Go(func() error {
			v, err := s.derive(ds, state, g)
			if err != nil {
				return err
			}
			views[i] = v
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

// Derive computes the current view for one dataset.
func (s *Service) Derive(id core.DatasetID, g table.Granularity) (*DatasetView, error) {
	if !g.Valid() {
		return nil, core.ErrInvalidGranularity
	}
	ds, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}
	return s.derive(ds, s.filters.Current(), g)
}

// CombinedSeries aligns one series per dataset to the union of bucket keys,
// so a dataset with a gap still shows a zero-valued point.
func (s *Service) CombinedSeries(g table.Granularity) (map[core.DatasetID]table.TimeSeries, error) {
	if !g.Valid() {
		return nil, core.ErrInvalidGranularity
	}

	state := s.filters.Current()
	rowSets := make(map[core.DatasetID][]table.Row)
	dateCols := make(map[core.DatasetID]string)
	valueCols := make(map[core.DatasetID]string)

	for _, ds := range s.registry.List() {
		reg := classify.Classify(ds.Rows, s.sampleSize)
		dateCol := findDateColumn(reg)
		filtered, err := filter.Apply(ds.Rows, dateCol, state)
		if err != nil {
			return nil, err
		}

		valueCol := ""
		if m, ok := classify.FindBestColumn(reg, table.RoleNumeric, kpi.TotalRevenue.Keywords); ok {
			valueCol = m.Column
		}

		rowSets[ds.ID] = filtered
		dateCols[ds.ID] = dateCol
		valueCols[ds.ID] = valueCol
	}

	return aggregate.BucketizeAll(rowSets, dateCols, valueCols, g)
}

func (s *Service) derive(ds *table.Dataset, state table.FilterState, g table.Granularity) (*DatasetView, error) {
	key := memoKey(ds.ID, state.Hash(), g)
	s.mu.Lock()
	if v, ok := s.memo[key]; ok {
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	reg := classify.Classify(ds.Rows, s.sampleSize)
	dateCol := findDateColumn(reg)

	filtered, err := filter.Apply(ds.Rows, dateCol, state)
	if err != nil {
		return nil, err
	}

	v := &DatasetView{
		DatasetID:     ds.ID,
		DisplayName:   ds.DisplayName,
		CanonicalName: ds.CanonicalName,
		Color:         ds.Color,
		RowCount:      ds.RowCount,
		FilteredCount: len(filtered),
		Registry:      reg,
		DateColumn:    dateCol,
	}

	if m, ok := classify.FindBestColumn(reg, table.RoleCategorical, categoryKeywords); ok {
		v.CategoryCol = m.Column
	}
	if m, ok := classify.FindBestColumn(reg, table.RoleNumeric, kpi.TotalRevenue.Keywords); ok {
		v.ValueColumn = m.Column
	}

	// Category chart: numeric reduction when a value column exists,
	// otherwise the count-only degenerate form.
	if v.CategoryCol != "" {
		if v.ValueColumn != "" {
			v.ByCategory = aggregate.ByCategory(filtered, v.CategoryCol, v.ValueColumn)
		} else {
			v.ByCategory = aggregate.CountByColumn(filtered, v.CategoryCol)
		}
	}

	if dateCol != "" && v.ValueColumn != "" {
		series, err := aggregate.Bucketize(filtered, dateCol, v.ValueColumn, g)
		if err != nil {
			return nil, err
		}
		v.Series = series
		v.Anomalies = kpi.DetectAnomalies(series, s.zThreshold)
	}

	v.KPIs = append(v.KPIs, s.calc.RecordCount(filtered))
	for _, spec := range kpi.Defaults {
		v.KPIs = append(v.KPIs, s.calc.Compute(filtered, reg, spec))
	}
	v.KPIs = append(v.KPIs, s.calc.UniqueCount(filtered, reg, categoryKeywords))
	v.Recovery = s.calc.ComputeRatio(filtered, reg, kpi.MDARecovery)

	if v.ValueColumn != "" {
		if summary, ok := kpi.Summarize(filtered, v.ValueColumn); ok {
			v.Summary = &summary
		}
	}

	s.mu.Lock()
	s.memo[key] = v
	s.mu.Unlock()
	return v, nil
}

func (s *Service) invalidate() {
	s.mu.Lock()
	s.memo = make(map[string]*DatasetView)
	s.mu.Unlock()
}

func memoKey(id core.DatasetID, hash core.FilterHash, g table.Granularity) string {
	return fmt.Sprintf("%s|%s|%s", id, hash, g)
}

func findDateColumn(reg table.ColumnRegistry) string {
	if m, ok := classify.FindBestColumn(reg, table.RoleDate, []string{"date"}); ok {
		return m.Column
	}
	return ""
}
