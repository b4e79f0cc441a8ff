package dashboard

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/engine"
)

// Metrics are the headline numbers of the Overview tab.
type Metrics struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"` // exact sum
	TotalOrders       int64           `json:"totalOrders"`
	TotalPizzas       int64           `json:"totalPizzas"`
	AvgOrderValue     int64           `json:"avgOrderValue"`
	AvgPizzasPerOrder decimal.Decimal `json:"avgPizzasPerOrder"`
	TopPizza          string          `json:"topPizza"`
}

// KPI is one labelled scalar handed to the rendering surface.
type KPI struct {
	ID    string `json:"id"`
	Tab   Tab    `json:"tab"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// ComputeMetrics reads the KPI aggregates. Revenue is truncated to whole
// dollars before the average order value is taken, and that average is
// truncated again. Orders are never zero here: an empty selection never
// reaches aggregation.
func ComputeMetrics(res *Results) Metrics {
	m := Metrics{
		TotalRevenue: total(res.TotalRevenue),
		TotalOrders:  total(res.TotalOrders).IntPart(),
		TotalPizzas:  total(res.TotalPizzas).IntPart(),
	}
	if top, ok := engine.ArgMax(res.PizzaRevenue.Groups); ok {
		m.TopPizza = top.Label
	}
	if m.TotalOrders == 0 {
		return m
	}
	orders := decimal.NewFromInt(m.TotalOrders)
	m.AvgOrderValue = m.TotalRevenue.Truncate(0).Div(orders).Truncate(0).IntPart()
	// DivRound rounds half away from zero.
	m.AvgPizzasPerOrder = decimal.NewFromInt(m.TotalPizzas).DivRound(orders, 2)
	return m
}

// KPIs renders the metrics with their display labels, in display order.
func (m Metrics) KPIs() []KPI {
	return []KPI{
		{ID: "total_revenue", Tab: TabOverview, Label: "Total Revenue ($)", Value: m.TotalRevenue.Truncate(0).String()},
		{ID: "total_orders", Tab: TabOverview, Label: "Total Orders", Value: strconv.FormatInt(m.TotalOrders, 10)},
		{ID: "total_pizzas", Tab: TabOverview, Label: "Total Pizzas Sold", Value: strconv.FormatInt(m.TotalPizzas, 10)},
		{ID: "avg_order_value", Tab: TabOverview, Label: "Average Order Value ($)", Value: strconv.FormatInt(m.AvgOrderValue, 10)},
		{ID: "avg_pizzas_per_order", Tab: TabOverview, Label: "Average Pizzas per Order", Value: m.AvgPizzasPerOrder.String()},
		{ID: "top_pizza", Tab: TabOverview, Label: "Highest Revenue Pizza", Value: m.TopPizza},
	}
}

// total reads the single ungrouped value of a KPI aggregate.
func total(r *engine.Result) decimal.Decimal {
	if r == nil || len(r.Groups) == 0 {
		return decimal.Zero
	}
	return r.Groups[0].Value
}
