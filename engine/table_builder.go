package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from QuerySpec + Groups
// ============================================================================
// One row per group-key tuple, in group order. No zero-filled rows.
// ============================================================================

// BuildTable produces a TableData from a QuerySpec and aggregated groups.
func BuildTable(spec QuerySpec, groups []Group, unit string, label Labeler) *TableData {
	if label == nil {
		label = LabelForDimension
	}
	if len(groups) == 0 {
		return &TableData{
			Title:   spec.Title,
			Columns: []Column{},
			Rows:    [][]string{},
		}
	}

	columns := make([]Column, 0, len(spec.GroupBy)+2)
	for _, key := range spec.GroupBy {
		columns = append(columns, Column{
			Key:   key,
			Label: label(key),
			Type:  "text",
			Align: "left",
		})
	}
	if len(spec.GroupBy) == 0 {
		columns = append(columns, Column{Key: "group", Label: "Group", Type: "text", Align: "left"})
	}

	valueKey := spec.Measure
	if valueKey == "" {
		valueKey = "value"
	}
	valueLabel := spec.Axis.ZLabel
	if valueLabel == "" && len(spec.GroupBy) < 2 {
		valueLabel = spec.Axis.YLabel
	}
	if valueLabel == "" {
		valueLabel = LabelForAggregation(spec.Aggregation)
	}
	columns = append(columns,
		Column{Key: valueKey, Label: valueLabel, Type: "number", Align: "right"},
		Column{Key: "count", Label: "Rows", Type: "number", Align: "center"},
	)

	rows := make([][]string, 0, len(groups))
	totalValue := decimal.Zero
	var totalCount int

	for _, g := range groups {
		row := make([]string, 0, len(columns))
		if len(spec.GroupBy) == 0 {
			row = append(row, g.Label)
		} else {
			row = append(row, g.Keys...)
		}
		row = append(row, formatValue(spec.Aggregation, g.Value), fmt.Sprintf("%d", g.Count))
		rows = append(rows, row)
		totalValue = totalValue.Add(g.Value)
		totalCount += g.Count
	}

	table := &TableData{
		Title:   spec.Title,
		Columns: columns,
		Rows:    rows,
	}

	// Totals are only meaningful for additive reducers.
	if spec.Aggregation == ReduceSum || spec.Aggregation == ReduceCount {
		total := FormatInt(totalValue.IntPart())
		if spec.Aggregation == ReduceSum {
			total = FormatCurrency(totalValue, unit)
		}
		table.Summary = &Summary{
			Label: "Total",
			Values: map[string]string{
				valueKey: total,
				"count":  fmt.Sprintf("%d", totalCount),
			},
		}
	}
	return table
}

// formatValue prints counts as integers and everything else with two
// decimals.
func formatValue(reducer Reducer, v decimal.Decimal) string {
	if reducer == ReduceCount || reducer == ReduceCountDistinct {
		return v.StringFixed(0)
	}
	return v.StringFixed(2)
}
