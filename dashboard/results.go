package dashboard

import (
	"fmt"

	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/engine"
)

// Results holds every aggregate of one render pass. KPIs, panels and
// insights all read from here, so text and charts never disagree.
type Results struct {
	Trend Trend

	TotalRevenue *engine.Result
	TotalOrders  *engine.Result
	TotalPizzas  *engine.Result
	PizzaRevenue *engine.Result

	RevenueTrend *engine.Result
	OrderTrend   *engine.Result

	CategoryRevenue     *engine.Result
	SizeRevenue         *engine.Result
	CategorySizeRevenue *engine.Result

	IngredientUsage    *engine.Result
	IngredientCategory *engine.Result
	DaytimeDemand      *engine.Result
	TopPizzas          *engine.Result
}

// Aggregate runs every dashboard aggregation over an already filtered view.
// The view must not be empty; callers short-circuit before this point.
func Aggregate(view engine.RecordView, trend Trend, opts ...engine.Option) (*Results, error) {
	res := &Results{Trend: trend}

	run := func(dst **engine.Result, spec engine.QuerySpec) error {
		r, err := engine.Execute(spec, view, opts...)
		if err != nil {
			return fmt.Errorf("aggregate %s: %w", spec.ID, err)
		}
		*dst = r
		return nil
	}

	steps := []struct {
		dst  **engine.Result
		spec engine.QuerySpec
	}{
		{&res.TotalRevenue, totalRevenueSpec()},
		{&res.TotalOrders, totalOrdersSpec()},
		{&res.TotalPizzas, totalPizzasSpec()},
		{&res.PizzaRevenue, pizzaRevenueSpec()},
		{&res.RevenueTrend, revenueTrendSpec(trend)},
		{&res.OrderTrend, orderTrendSpec(trend)},
		{&res.CategoryRevenue, categoryShareSpec()},
		{&res.SizeRevenue, sizeRevenueSpec()},
		{&res.CategorySizeRevenue, categorySizeSpec()},
		{&res.IngredientUsage, ingredientUsageSpec()},
		{&res.DaytimeDemand, daytimeDemandSpec()},
	}
	for _, s := range steps {
		if err := run(s.dst, s.spec); err != nil {
			return nil, err
		}
	}

	// The heatmap is restricted to the leading ingredients of the usage
	// ranking, and the top pizzas are a slice of the pizza revenue table.
	leading := engine.Labels(engine.TopN(res.IngredientUsage.Groups, heatmapIngredients))
	if err := run(&res.IngredientCategory, ingredientCategorySpec(leading)); err != nil {
		return nil, err
	}
	res.TopPizzas = engine.Assemble(topPizzasSpec(), engine.TopN(res.PizzaRevenue.Groups, topPizzas), opts...)

	return res, nil
}

// Panel is one chart of the dashboard with its backing table.
type Panel struct {
	ID    string              `json:"id"`
	Tab   Tab                 `json:"tab"`
	Title string              `json:"title"`
	Chart *engine.ChartConfig `json:"chart,omitempty"`
	Table *engine.TableData   `json:"table,omitempty"`
}

// Panels returns the charts in tab order.
func (r *Results) Panels() []Panel {
	entries := []struct {
		tab Tab
		res *engine.Result
	}{
		{TabTrends, r.RevenueTrend},
		{TabTrends, r.OrderTrend},
		{TabProductMix, r.CategoryRevenue},
		{TabProductMix, r.SizeRevenue},
		{TabProductMix, r.CategorySizeRevenue},
		{TabDemand, r.IngredientUsage},
		{TabDemand, r.IngredientCategory},
		{TabDemand, r.DaytimeDemand},
		{TabDemand, r.TopPizzas},
	}

	panels := make([]Panel, 0, len(entries))
	for _, e := range entries {
		if e.res == nil {
			continue
		}
		panels = append(panels, Panel{
			ID:    e.res.Spec.ID,
			Tab:   e.tab,
			Title: e.res.Spec.Title,
			Chart: e.res.ChartConfig,
			Table: e.res.TableData,
		})
	}
	return panels
}
