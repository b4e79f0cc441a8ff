package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// AGGREGATORS — Grouping, Aggregation, and Sorting via RecordView
// ============================================================================
// All functions operate on RecordView — zero-copy access to any data source.
// Grouping produces SubViews (index lists into parent view).
// Group order is first-seen order and every sort is stable, so identical
// input always yields identical output order.
// ============================================================================

// keySep joins tuple values into a map key. Cell values are assumed not to
// contain the ASCII unit separator.
const keySep = "\x1f"

// GroupAndAggregate is the main entry point for the aggregation pipeline.
// Pipeline: group → aggregate → sort → limit.
func GroupAndAggregate(
	view RecordView,
	groupBy []string,
	measure string,
	reducer Reducer,
	sortBy string,
	limit int,
) []Group {
	if view.Len() == 0 {
		return nil
	}

	// 1. Group
	var groups []Group
	if len(groupBy) == 0 {
		groups = []Group{{
			Key:   "all",
			Label: "Total",
			View:  view,
		}}
	} else {
		groups = groupByTuple(view, groupBy)
	}

	// 2. Aggregate
	for i := range groups {
		aggregateGroup(&groups[i], measure, reducer)
	}

	// 3. Sort
	SortGroups(groups, sortBy)

	// 4. Limit
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	return groups
}

// ============================================================================
// GROUPING
// ============================================================================

// groupByTuple groups rows by the ordered tuple of dimension values.
// One group per tuple present in the view; absent combinations are not filled.
func groupByTuple(view RecordView, dimensions []string) []Group {
	grouped := make(map[string][]int)
	tuples := make(map[string][]string)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		keys := make([]string, len(dimensions))
		for d, dim := range dimensions {
			keys[d] = view.Dimension(i, dim)
		}
		k := strings.Join(keys, keySep)
		if _, exists := grouped[k]; !exists {
			order = append(order, k)
			tuples[k] = keys
		}
		grouped[k] = append(grouped[k], i)
	}

	groups := make([]Group, 0, len(order))
	for _, k := range order {
		keys := tuples[k]
		label := strings.Join(keys, " / ")
		groups = append(groups, Group{
			Keys:  keys,
			Key:   label,
			Label: label,
			View:  newSubView(view, grouped[k]),
		})
	}
	return groups
}

// ============================================================================
// AGGREGATION
// ============================================================================

func aggregateGroup(group *Group, measure string, reducer Reducer) {
	group.Count = group.View.Len()
	if group.Count == 0 {
		return
	}

	switch reducer {
	case ReduceSum:
		group.Value = SumMeasure(group.View, measure)
	case ReduceCount:
		group.Value = decimal.NewFromInt(int64(group.Count))
	case ReduceCountDistinct:
		group.Value = decimal.NewFromInt(int64(CountDistinct(group.View, measure)))
	case ReduceMax:
		group.Value = MaxMeasure(group.View, measure)
	default:
		group.Value = SumMeasure(group.View, measure)
	}
}

// SumMeasure sums a named measure across a view.
func SumMeasure(view RecordView, measure string) decimal.Decimal {
	total := decimal.Zero
	for i := 0; i < view.Len(); i++ {
		total = total.Add(view.Measure(i, measure))
	}
	return total
}

// CountDistinct counts distinct values of a dimension across a view.
func CountDistinct(view RecordView, dimension string) int {
	seen := make(map[string]struct{})
	for i := 0; i < view.Len(); i++ {
		seen[view.Dimension(i, dimension)] = struct{}{}
	}
	return len(seen)
}

// MaxMeasure returns the largest value of a named measure.
func MaxMeasure(view RecordView, measure string) decimal.Decimal {
	n := view.Len()
	if n == 0 {
		return decimal.Zero
	}
	m := view.Measure(0, measure)
	for i := 1; i < n; i++ {
		if v := view.Measure(i, measure); v.GreaterThan(m) {
			m = v
		}
	}
	return m
}

// ArgMax returns the first group holding the largest value.
func ArgMax(groups []Group) (Group, bool) {
	if len(groups) == 0 {
		return Group{}, false
	}
	top := groups[0]
	for _, g := range groups[1:] {
		if g.Value.GreaterThan(top.Value) {
			top = g
		}
	}
	return top, true
}

// TopN returns the n highest-valued groups without mutating the input.
// Ties keep their input order.
func TopN(groups []Group, n int) []Group {
	out := make([]Group, len(groups))
	copy(out, groups)
	SortGroups(out, SortValueDesc)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Labels returns the first key of every group, in order.
func Labels(groups []Group) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		if len(g.Keys) > 0 {
			out = append(out, g.Keys[0])
		} else {
			out = append(out, g.Key)
		}
	}
	return out
}

// ============================================================================
// SORTING
// ============================================================================

// SortGroups sorts aggregate groups by the specified sort mode.
func SortGroups(groups []Group, sortBy string) {
	switch sortBy {
	case SortValueDesc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value.GreaterThan(groups[j].Value) })
	case SortValueAsc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value.LessThan(groups[j].Value) })
	case SortChronological:
		sort.SliceStable(groups, func(i, j int) bool { return parseSortableDate(groups[i].Key) < parseSortableDate(groups[j].Key) })
	case SortLabelAsc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	default:
		// preserve grouping order
	}
}

// parseSortableDate maps temporal labels onto a sortable int.
// Understands ISO dates, "Jan-2006" and bare month names.
func parseSortableDate(key string) int {
	if t, err := time.Parse("2006-01-02", key); err == nil {
		return t.Year()*10000 + int(t.Month())*100 + t.Day()
	}
	if t, err := time.Parse("Jan-2006", key); err == nil {
		return t.Year()*10000 + int(t.Month())*100
	}
	if t, err := time.Parse("January", key); err == nil {
		return int(t.Month()) * 100
	}
	return 0
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatCurrency formats an amount with currency prefix and comma separators.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	negative := amount.IsNegative()
	amount = amount.Abs().Round(2)

	intStr := FormatInt(amount.IntPart())
	cents := amount.Sub(amount.Truncate(0)).Shift(2).IntPart()

	result := fmt.Sprintf("%s.%02d", intStr, cents)
	if currency != "" {
		result = currency + " " + result
	}
	if negative {
		result = "-" + result
	}
	return result
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int64) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// UniqueValues returns distinct values for a dimension across a view,
// in first-seen order.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

// LabelForDimension returns a readable label for a snake_case key.
func LabelForDimension(dimension string) string {
	if len(dimension) == 0 {
		return ""
	}
	words := strings.Split(dimension, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// LabelForAggregation returns a human-readable label for a reducer.
func LabelForAggregation(reducer Reducer) string {
	switch reducer {
	case ReduceSum:
		return "Amount"
	case ReduceCount:
		return "Count"
	case ReduceCountDistinct:
		return "Distinct Count"
	case ReduceMax:
		return "Maximum"
	default:
		return "Value"
	}
}
