package engine

import (
	"fmt"
)

// ============================================================================
// EXECUTOR — One aggregation spec in, render-ready result out
// ============================================================================
// Pipeline:
//   1. (Optional) explode a list field → ExplodedView
//   2. Apply QuerySpec filters → SubView
//   3. Group and aggregate
//   4. Build chart and table
//
// Pure and local: no I/O, no logging, no shared state.
// ============================================================================

// Execute runs a QuerySpec against a RecordView and returns a render-ready Result.
// An empty input view yields ErrNoData; callers are expected to short-circuit
// before that point.
func Execute(spec QuerySpec, view RecordView, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts)

	if view.Len() == 0 {
		return nil, ErrNoData
	}
	if !spec.Aggregation.Valid() {
		return nil, fmt.Errorf("query %q: unknown aggregation %q", spec.ID, spec.Aggregation)
	}
	if spec.Measure == "" && spec.Aggregation != ReduceCount {
		return nil, fmt.Errorf("query %q: aggregation %q needs a measure", spec.ID, spec.Aggregation)
	}

	// 1. Explode
	if spec.Explode != nil {
		view = Explode(view, spec.Explode.List, spec.Explode.As)
	}

	// 2. Filter
	view = ApplyFilters(view, spec.Filters)

	// 3. Group and aggregate
	groups := GroupAndAggregate(view, spec.GroupBy, spec.Measure, spec.Aggregation, spec.SortBy, spec.Limit)

	// 4. Build
	return assemble(spec, groups, cfg), nil
}

// Assemble builds the chart and table for groups that were already
// aggregated, such as a TopN slice of an earlier Result.
func Assemble(spec QuerySpec, groups []Group, opts ...Option) *Result {
	return assemble(spec, groups, applyOptions(opts))
}

func assemble(spec QuerySpec, groups []Group, cfg *config) *Result {
	result := &Result{
		Spec:      spec,
		Groups:    groups,
		TableData: BuildTable(spec, groups, cfg.Currency, cfg.Label),
	}
	if spec.Visualize != "" {
		result.ChartConfig = BuildChart(spec, groups, cfg.Palette, cfg.Label)
	}
	return result
}
