package surface

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/dashboard"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/engine"
)

// ============================================================================
// CSV — Sheets-ready output
// ============================================================================
// One block per chart: a title row, a header row, then data rows. Blocks
// are separated by an empty line. KPIs go into a leading Metric/Value block.
// ============================================================================

// CSV writes chart data as CSV.
type CSV struct {
	cw      *csv.Writer
	metrics bool
	blocks  int
}

// NewCSV writes to w.
func NewCSV(w io.Writer) *CSV {
	return &CSV{cw: csv.NewWriter(w)}
}

func (s *CSV) startBlock(title string) {
	if s.blocks > 0 {
		s.cw.Write([]string{})
	}
	s.blocks++
	if title != "" {
		s.cw.Write([]string{title})
	}
}

func (s *CSV) Header(title, period string) {}

func (s *CSV) Metric(k dashboard.KPI) {
	if !s.metrics {
		s.metrics = true
		s.startBlock("Key Metrics")
		s.cw.Write([]string{"Metric", "Value"})
	}
	s.cw.Write([]string{k.Label, k.Value})
}

func (s *CSV) Chart(p dashboard.Panel) {
	s.metrics = false
	s.startBlock(p.Title)
	if p.Chart != nil && writeChartCSV(s.cw, p.Chart) {
		return
	}
	if p.Table != nil && writeTableCSV(s.cw, p.Table) {
		return
	}
	s.cw.Write([]string{"Result", "No data"})
}

func (s *CSV) Text(heading, body string) {
	s.metrics = false
	s.startBlock(heading)
	s.cw.Write([]string{body})
}

func (s *CSV) Empty(message string) {
	s.startBlock("")
	s.cw.Write([]string{"Result", message})
}

// Flush writes buffered rows and reports any write error.
func (s *CSV) Flush() error {
	s.cw.Flush()
	return s.cw.Error()
}

// writeChartCSV writes one column per series. Multi-series charts are
// aligned by label; a series without a point for a label leaves the cell
// empty.
func writeChartCSV(cw *csv.Writer, chart *engine.ChartConfig) bool {
	if len(chart.Series) == 0 {
		return false
	}

	xLabel := chart.XAxis
	yLabel := chart.YAxis
	if xLabel == "" {
		xLabel = "Label"
	}
	if yLabel == "" {
		yLabel = "Value"
	}

	// Single series → two columns
	if len(chart.Series) == 1 {
		cw.Write([]string{xLabel, yLabel})
		for _, d := range chart.Series[0].Data {
			cw.Write([]string{d.Label, fmtNum(d.Value)})
		}
		return true
	}

	// Multi-series → label + one column per series
	headers := []string{xLabel}
	var labels []string
	seen := make(map[string]bool)
	cells := make([]map[string]float64, len(chart.Series))
	for i, s := range chart.Series {
		headers = append(headers, s.Name)
		cells[i] = make(map[string]float64, len(s.Data))
		for _, d := range s.Data {
			cells[i][d.Label] = d.Value
			if !seen[d.Label] {
				seen[d.Label] = true
				labels = append(labels, d.Label)
			}
		}
	}
	cw.Write(headers)

	for _, label := range labels {
		row := []string{label}
		for i := range chart.Series {
			if v, ok := cells[i][label]; ok {
				row = append(row, fmtNum(v))
			} else {
				row = append(row, "")
			}
		}
		cw.Write(row)
	}
	return true
}

func writeTableCSV(cw *csv.Writer, table *engine.TableData) bool {
	if len(table.Columns) == 0 {
		return false
	}
	headers := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		headers[i] = c.Label
	}
	cw.Write(headers)
	for _, row := range table.Rows {
		cw.Write(row)
	}
	return true
}

func fmtNum(v float64) string {
	// Whole numbers → no decimals, fractional → 2 decimals
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
