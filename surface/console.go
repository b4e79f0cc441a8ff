package surface

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/dashboard"
)

// Console writes a human-readable report. Write errors are sticky and
// reported by Flush.
type Console struct {
	w   io.Writer
	tab dashboard.Tab
	err error
}

// NewConsole writes to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) printf(format string, args ...interface{}) {
	if c.err != nil {
		return
	}
	_, c.err = fmt.Fprintf(c.w, format, args...)
}

func (c *Console) section(t dashboard.Tab) {
	if c.tab == t {
		return
	}
	c.tab = t
	c.printf("\n== %s ==\n", t)
}

func (c *Console) Header(title, period string) {
	c.printf("%s\n", title)
	if period != "" {
		c.printf("Period: %s\n", period)
	}
}

func (c *Console) Metric(k dashboard.KPI) {
	c.section(k.Tab)
	c.printf("  %-26s %s\n", k.Label+":", k.Value)
}

func (c *Console) Chart(p dashboard.Panel) {
	c.section(p.Tab)
	c.printf("\n%s\n", p.Title)
	if p.Table == nil || len(p.Table.Rows) == 0 {
		c.printf("  (no data)\n")
		return
	}

	if c.err != nil {
		return
	}
	tw := tabwriter.NewWriter(c.w, 0, 0, 2, ' ', 0)
	headers := make([]string, len(p.Table.Columns))
	for i, col := range p.Table.Columns {
		headers[i] = col.Label
	}
	fmt.Fprintf(tw, "  %s\n", strings.Join(headers, "\t"))
	for _, row := range p.Table.Rows {
		fmt.Fprintf(tw, "  %s\n", strings.Join(row, "\t"))
	}
	c.err = tw.Flush()
}

func (c *Console) Text(heading, body string) {
	c.section(dashboard.TabConclusions)
	c.printf("\n%s\n", heading)
	for _, line := range strings.Split(body, "\n") {
		c.printf("  %s\n", line)
	}
}

func (c *Console) Empty(message string) {
	c.printf("\n%s\n", message)
}

// Flush reports the first write error.
func (c *Console) Flush() error { return c.err }
