package dashboard

import (
	"fmt"

	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/engine"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/schema"
)

// ============================================================================
// PANEL CATALOGUE — one QuerySpec per chart, plus the hidden KPI aggregates
// ============================================================================
// Categorical panels sort by label so legends and bars keep a fixed order
// across filter changes. Trend panels sort chronologically.
// ============================================================================

// Tab is a dashboard section.
type Tab string

const (
	TabOverview    Tab = "Overview"
	TabTrends      Tab = "Trends"
	TabProductMix  Tab = "Product Mix"
	TabDemand      Tab = "Demand Pattern"
	TabConclusions Tab = "Conclusion and Key Insights"
)

// Tabs lists the sections in display order.
var Tabs = []Tab{TabOverview, TabTrends, TabProductMix, TabDemand, TabConclusions}

// Trend is the granularity of the time-series panels.
type Trend string

const (
	TrendDaily   Trend = "daily"
	TrendMonthly Trend = "monthly"
)

// ParseTrend accepts "daily" or "monthly"; empty means daily.
func ParseTrend(s string) (Trend, error) {
	switch Trend(s) {
	case "", TrendDaily:
		return TrendDaily, nil
	case TrendMonthly:
		return TrendMonthly, nil
	default:
		return "", fmt.Errorf("unknown trend %q (want daily or monthly)", s)
	}
}

func (t Trend) dimension() (key, label string) {
	if t == TrendMonthly {
		return schema.OrderMonth, "Order Month"
	}
	return schema.OrderDate, "Order Date"
}

// Panel IDs.
const (
	PanelRevenueTrend        = "revenue_trend"
	PanelOrderTrend          = "order_trend"
	PanelCategoryShare       = "category_revenue_share"
	PanelSizeRevenue         = "size_revenue"
	PanelCategorySizeRevenue = "category_size_revenue"
	PanelIngredientUsage     = "ingredient_usage"
	PanelIngredientCategory  = "ingredient_category_heatmap"
	PanelDaytimeDemand       = "daytime_demand"
	PanelTopPizzas           = "top_pizzas"
)

var (
	paletteCategory = []string{"#C94A4A", "#6B8E23", "#A47551", "#8FBC8F"}
	paletteSize     = []string{"#C94A4A", "#6B8E23", "#8FBC8F"}
	paletteDaytime  = []string{"#C94A4A", "#6B8E23", "#8FBC8F", "#A47551"}
)

const (
	topIngredients        = 10
	heatmapIngredients    = 5
	topPizzas             = 5
	usageCountKey         = "usage_count"
	orientationHorizontal = "h"
)

// ── KPI aggregates ───────────────────────────────────────────────────────────

func totalRevenueSpec() engine.QuerySpec {
	return engine.QuerySpec{ID: "total_revenue", Measure: schema.TotalPrice, Aggregation: engine.ReduceSum}
}

func totalOrdersSpec() engine.QuerySpec {
	return engine.QuerySpec{ID: "total_orders", Measure: schema.OrderID, Aggregation: engine.ReduceCountDistinct}
}

func totalPizzasSpec() engine.QuerySpec {
	return engine.QuerySpec{ID: "total_pizzas", Measure: schema.Quantity, Aggregation: engine.ReduceSum}
}

func pizzaRevenueSpec() engine.QuerySpec {
	return engine.QuerySpec{
		ID:          "pizza_revenue",
		Title:       "Revenue by Pizza",
		GroupBy:     []string{schema.PizzaName},
		Measure:     schema.TotalPrice,
		Aggregation: engine.ReduceSum,
		SortBy:      engine.SortLabelAsc,
	}
}

// ── Trends ───────────────────────────────────────────────────────────────────

func revenueTrendSpec(t Trend) engine.QuerySpec {
	key, label := t.dimension()
	return engine.QuerySpec{
		ID:          PanelRevenueTrend,
		Title:       "Revenue Trend Over Time",
		GroupBy:     []string{key},
		Measure:     schema.TotalPrice,
		Aggregation: engine.ReduceSum,
		SortBy:      engine.SortChronological,
		Visualize:   engine.ChartLine,
		Axis:        engine.AxisBinding{X: key, Y: schema.TotalPrice, XLabel: label, YLabel: "Revenue"},
		Colors:      []string{"#C94A4A"},
	}
}

func orderTrendSpec(t Trend) engine.QuerySpec {
	key, label := t.dimension()
	return engine.QuerySpec{
		ID:          PanelOrderTrend,
		Title:       "Order Volume Trend Over Time",
		GroupBy:     []string{key},
		Measure:     schema.OrderID,
		Aggregation: engine.ReduceCountDistinct,
		SortBy:      engine.SortChronological,
		Visualize:   engine.ChartLine,
		Axis:        engine.AxisBinding{X: key, Y: "orders", XLabel: label, YLabel: "Number of Orders"},
		Colors:      []string{"#6B8E23"},
	}
}

// ── Product mix ──────────────────────────────────────────────────────────────

func categoryShareSpec() engine.QuerySpec {
	return engine.QuerySpec{
		ID:          PanelCategoryShare,
		Title:       "Revenue Share by Pizza Category",
		GroupBy:     []string{schema.PizzaCategory},
		Measure:     schema.TotalPrice,
		Aggregation: engine.ReduceSum,
		SortBy:      engine.SortLabelAsc,
		Visualize:   engine.ChartPie,
		Axis:        engine.AxisBinding{X: schema.PizzaCategory, Y: schema.TotalPrice, XLabel: "Pizza Category", YLabel: "Revenue"},
		Hole:        0.4,
		Colors:      paletteCategory,
	}
}

func sizeRevenueSpec() engine.QuerySpec {
	return engine.QuerySpec{
		ID:          PanelSizeRevenue,
		Title:       "Revenue by Pizza Size",
		GroupBy:     []string{schema.PizzaSize},
		Measure:     schema.TotalPrice,
		Aggregation: engine.ReduceSum,
		SortBy:      engine.SortLabelAsc,
		Visualize:   engine.ChartBar,
		Axis:        engine.AxisBinding{X: schema.PizzaSize, Y: schema.TotalPrice, XLabel: "Pizza Size", YLabel: "Revenue"},
		Colors:      []string{"#A47551"},
	}
}

func categorySizeSpec() engine.QuerySpec {
	return engine.QuerySpec{
		ID:          PanelCategorySizeRevenue,
		Title:       "Category and Size Revenue Mix",
		GroupBy:     []string{schema.PizzaCategory, schema.PizzaSize},
		Measure:     schema.TotalPrice,
		Aggregation: engine.ReduceSum,
		SortBy:      engine.SortLabelAsc,
		Visualize:   engine.ChartStackedBar,
		Axis: engine.AxisBinding{
			X: schema.PizzaCategory, Y: schema.TotalPrice, Color: schema.PizzaSize,
			XLabel: "Pizza Category", YLabel: "Revenue",
		},
		Colors: paletteSize,
	}
}

// ── Demand ───────────────────────────────────────────────────────────────────

var explodeIngredients = &engine.ExplodeSpec{List: schema.IngredientList, As: schema.Ingredient}

// ingredientUsageSpec counts occurrences: one per line item carrying the
// ingredient, whatever its quantity.
func ingredientUsageSpec() engine.QuerySpec {
	return engine.QuerySpec{
		ID:          PanelIngredientUsage,
		Title:       "Top 10 Ingredients by Usage",
		GroupBy:     []string{schema.Ingredient},
		Aggregation: engine.ReduceCount,
		SortBy:      engine.SortValueDesc,
		Limit:       topIngredients,
		Explode:     explodeIngredients,
		Visualize:   engine.ChartTreemap,
		Axis:        engine.AxisBinding{X: schema.Ingredient, Y: usageCountKey, XLabel: "Ingredient", YLabel: "Usage Count"},
	}
}

// ingredientCategorySpec sums units sold, restricted to the given ingredients.
func ingredientCategorySpec(ingredients []string) engine.QuerySpec {
	return engine.QuerySpec{
		ID:          PanelIngredientCategory,
		Title:       "Ingredient Usage Across Pizza Categories",
		GroupBy:     []string{schema.Ingredient, schema.PizzaCategory},
		Measure:     schema.Quantity,
		Aggregation: engine.ReduceSum,
		SortBy:      engine.SortLabelAsc,
		Filters:     engine.Filters{Dimensions: map[string][]string{schema.Ingredient: ingredients}},
		Explode:     explodeIngredients,
		Visualize:   engine.ChartHeatmap,
		Axis: engine.AxisBinding{
			X: schema.PizzaCategory, Y: schema.Ingredient, Z: schema.Quantity,
			XLabel: "Pizza Category", YLabel: "Ingredient", ZLabel: "Units Sold",
		},
	}
}

func daytimeDemandSpec() engine.QuerySpec {
	return engine.QuerySpec{
		ID:          PanelDaytimeDemand,
		Title:       "Share of Pizzas Sold by Time of Day",
		GroupBy:     []string{schema.Daytime},
		Measure:     schema.Quantity,
		Aggregation: engine.ReduceSum,
		SortBy:      engine.SortLabelAsc,
		Visualize:   engine.ChartPie,
		Axis:        engine.AxisBinding{X: schema.Daytime, Y: schema.Quantity, XLabel: "Daytime", YLabel: "Pizzas Sold"},
		Hole:        0.35,
		Colors:      paletteDaytime,
	}
}

// topPizzasSpec describes a slice of the pizza revenue aggregate; it is
// never executed on its own.
func topPizzasSpec() engine.QuerySpec {
	return engine.QuerySpec{
		ID:          PanelTopPizzas,
		Title:       "Top 5 Pizzas by Revenue",
		GroupBy:     []string{schema.PizzaName},
		Measure:     schema.TotalPrice,
		Aggregation: engine.ReduceSum,
		SortBy:      engine.SortValueDesc,
		Limit:       topPizzas,
		Visualize:   engine.ChartBar,
		Orientation: orientationHorizontal,
		Axis:        engine.AxisBinding{X: schema.TotalPrice, Y: schema.PizzaName, XLabel: "Revenue", YLabel: "Pizza Name"},
		Colors:      []string{"#C94A4A"},
	}
}
