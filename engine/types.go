package engine

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ============================================================================
// ENGINE TYPES — Aggregation Specs and Render-Ready Output
// ============================================================================
// The engine knows nothing about pizzas. It reads typed domain rows through
// RecordView accessors and returns groups plus chart/table structures that a
// rendering surface can draw without further computation.
// ============================================================================

// ErrNoData is returned by Execute when the input view is empty.
var ErrNoData = errors.New("engine: no data")

// ============================================================================
// REDUCERS
// ============================================================================

// Reducer names the per-group reduction applied to a measure.
type Reducer string

const (
	ReduceSum           Reducer = "sum"
	ReduceCount         Reducer = "count"
	ReduceCountDistinct Reducer = "count_distinct" // distinct Dimension(i, measure) values
	ReduceMax           Reducer = "max"
)

// Valid reports whether r is a known reducer.
func (r Reducer) Valid() bool {
	switch r {
	case ReduceSum, ReduceCount, ReduceCountDistinct, ReduceMax:
		return true
	}
	return false
}

// Sort modes understood by SortGroups.
const (
	SortNone          = ""
	SortValueDesc     = "value_desc"
	SortValueAsc      = "value_asc"
	SortChronological = "chronological"
	SortLabelAsc      = "label_asc"
)

// Chart kinds a rendering surface is expected to draw.
const (
	ChartLine       = "line"
	ChartBar        = "bar"
	ChartStackedBar = "stacked_bar"
	ChartPie        = "pie"
	ChartTreemap    = "treemap"
	ChartHeatmap    = "heatmap"
)

// ============================================================================
// QUERYSPEC — one aggregation (group keys, measure, reducer) plus rendering hints
// ============================================================================

// QuerySpec defines what the engine should compute for one panel.
type QuerySpec struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	GroupBy     []string     `json:"groupBy"` // ordered tuple of dimension keys
	Measure     string       `json:"measure"`
	Aggregation Reducer      `json:"aggregation"`
	SortBy      string       `json:"sortBy,omitempty"`
	Limit       int          `json:"limit,omitempty"` // 0 = all
	Filters     Filters      `json:"filters,omitempty"`
	Explode     *ExplodeSpec `json:"explode,omitempty"`
	Visualize   string       `json:"visualize"`
	Axis        AxisBinding  `json:"axis"`
	Orientation string       `json:"orientation,omitempty"` // "h" for horizontal bars
	Hole        float64      `json:"hole,omitempty"`        // donut hole for pie charts
	Colors      []string     `json:"colors,omitempty"`
}

// ExplodeSpec expands a list field into one synthetic row per element
// before filtering and grouping.
type ExplodeSpec struct {
	List string `json:"list"` // list key on the source view
	As   string `json:"as"`   // dimension key the element is exposed under
}

// AxisBinding maps result columns onto chart axes. Empty fields are unused.
type AxisBinding struct {
	X      string `json:"x,omitempty"`
	Y      string `json:"y,omitempty"`
	Color  string `json:"color,omitempty"`
	Z      string `json:"z,omitempty"`
	XLabel string `json:"xLabel,omitempty"`
	YLabel string `json:"yLabel,omitempty"`
	ZLabel string `json:"zLabel,omitempty"`
}

// Filters define which records to include.
// Keys are dimension names, values are allowed values.
// OR within a dimension, AND across dimensions. Empty = all.
type Filters struct {
	Dimensions map[string][]string `json:"dimensions,omitempty"`
}

// HasFilter returns true if a specific dimension filter is set.
func (f Filters) HasFilter(dimension string) bool {
	if f.Dimensions == nil {
		return false
	}
	vals, ok := f.Dimensions[dimension]
	return ok && len(vals) > 0
}

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	for _, vals := range f.Dimensions {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// ============================================================================
// RESULT
// ============================================================================

// Result is the output of one Execute call. Groups are kept so that callers
// can derive further facts (argmax, shares) without re-aggregating.
type Result struct {
	Spec        QuerySpec    `json:"spec"`
	Groups      []Group      `json:"-"`
	ChartConfig *ChartConfig `json:"chartConfig,omitempty"`
	TableData   *TableData   `json:"tableData,omitempty"`
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group is one distinct group-key tuple and its reduced value.
type Group struct {
	Keys  []string        `json:"keys"`
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
	Count int             `json:"count"`
	View  RecordView      `json:"-"` // records in this group (zero-copy)
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType   string        `json:"chartType"`
	Title       string        `json:"title"`
	XAxis       string        `json:"xAxis,omitempty"`
	YAxis       string        `json:"yAxis,omitempty"`
	Axis        AxisBinding   `json:"axis"`
	Orientation string        `json:"orientation,omitempty"`
	Hole        float64       `json:"hole,omitempty"`
	Series      []ChartSeries `json:"series"`
	Colors      []string      `json:"colors,omitempty"`
	ShowLegend  bool          `json:"showLegend"`
	ShowGrid    bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}
