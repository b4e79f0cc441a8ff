// Package pizzadash builds the pizza sales dashboard: KPIs, tabbed chart
// panels and a written summary over a spreadsheet of order line items.
//
// Usage:
//
//	rows, err := sales.Derive(raw)
//	d, err := dashboard.NewBuilder().Build(ctx, rows, st, dashboard.TrendDaily)
//	dashboard.Publish(d, surface.NewConsole(os.Stdout))
//
// Loading lives in helpers and storage, aggregation in engine, and the
// HTTP API in server. The cmd/pizzadash binary wires them together.
package pizzadash
