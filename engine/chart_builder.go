package engine

// ============================================================================
// CHART BUILDER — Produces ChartConfig from QuerySpec + Groups
// ============================================================================
// Single-key specs become one series. Two-key specs (stacked bars, heatmaps)
// put the key bound to Axis.X on the point labels and make one series per
// value of the other key, one point per group actually present. Missing
// combinations get no point.
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#C94A4A", "#6B8E23", "#A47551", "#8FBC8F",
}

// BuildChart produces a ChartConfig from a QuerySpec and aggregated groups.
func BuildChart(spec QuerySpec, groups []Group, palette []string, label Labeler) *ChartConfig {
	if len(groups) == 0 {
		return nil
	}
	if len(palette) == 0 {
		palette = defaultColors
	}

	chartType := spec.Visualize
	if chartType == "" {
		chartType = ChartBar
	}

	config := &ChartConfig{
		ChartType:   chartType,
		Title:       spec.Title,
		Axis:        spec.Axis,
		Orientation: spec.Orientation,
		Hole:        spec.Hole,
		ShowLegend:  chartType == ChartPie || chartType == ChartStackedBar,
		ShowGrid:    chartType != ChartPie && chartType != ChartTreemap,
	}

	if label == nil {
		label = LabelForDimension
	}
	config.XAxis = spec.Axis.XLabel
	if config.XAxis == "" && len(spec.GroupBy) > 0 {
		config.XAxis = label(spec.GroupBy[pivotIndex(spec)])
	}
	config.YAxis = spec.Axis.YLabel
	if config.YAxis == "" {
		config.YAxis = LabelForAggregation(spec.Aggregation)
	}

	if len(spec.GroupBy) >= 2 {
		config.Series = buildMultiSeries(groups, pivotIndex(spec))
	} else {
		config.Series = buildSingleSeries(groups, spec.Title)
	}

	colors := spec.Colors
	if len(colors) == 0 {
		colors = palette
	}
	config.Colors = colors
	for i, c := range assignColors(len(config.Series), colors) {
		config.Series[i].Color = c
	}
	return config
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildSingleSeries(groups []Group, seriesName string) []ChartSeries {
	if seriesName == "" {
		seriesName = "Value"
	}

	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{
			Label: g.Label,
			Value: g.Value.Round(2).InexactFloat64(),
		})
	}

	return []ChartSeries{{
		Name: seriesName,
		Data: points,
	}}
}

// pivotIndex is the position in GroupBy of the key bound to the x axis.
// Without a binding the first key is used.
func pivotIndex(spec QuerySpec) int {
	for i, key := range spec.GroupBy {
		if key == spec.Axis.X {
			return i
		}
	}
	return 0
}

// buildMultiSeries puts Keys[x] on the point labels and makes one series
// per value of the other key.
func buildMultiSeries(groups []Group, x int) []ChartSeries {
	s := 1
	if x == 1 {
		s = 0
	}
	index := make(map[string]int)
	var series []ChartSeries

	for _, g := range groups {
		if len(g.Keys) < 2 {
			continue
		}
		name := g.Keys[s]
		pos, ok := index[name]
		if !ok {
			pos = len(series)
			index[name] = pos
			series = append(series, ChartSeries{Name: name})
		}
		series[pos].Data = append(series[pos].Data, ChartPoint{
			Label: g.Keys[x],
			Value: g.Value.Round(2).InexactFloat64(),
		})
	}

	return series
}

func assignColors(count int, palette []string) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = palette[i%len(palette)]
	}
	return colors
}
