package dashboard

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/engine"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/sales"
)

// ── Test Data ─────────────────────────────────────────────────────────────────

type line struct {
	order       int64
	date, clock string
	name        string
	category    string
	size        string
	ingredients string
	qty         int64
	price       string
}

func derive(t *testing.T, lines []line) []sales.Row {
	t.Helper()
	raw := make([]sales.RawRow, len(lines))
	for i, l := range lines {
		raw[i] = sales.RawRow{
			Line:             i + 2,
			OrderID:          l.order,
			OrderDate:        l.date,
			OrderTime:        l.clock,
			PizzaName:        l.name,
			PizzaCategory:    l.category,
			PizzaSize:        l.size,
			PizzaIngredients: l.ingredients,
			Quantity:         l.qty,
			TotalPrice:       decimal.RequireFromString(l.price),
		}
	}
	rows, err := sales.Derive(raw)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	return rows
}

func allOf(rows []sales.Row) sales.FilterState {
	return sales.NewStore(rows).DefaultFilterState()
}

func build(t *testing.T, rows []sales.Row, st sales.FilterState, trend Trend) *Dashboard {
	t.Helper()
	d, err := NewBuilder().Build(context.Background(), rows, st, trend)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return d
}

func kpi(d *Dashboard, id string) string {
	for _, k := range d.KPIs {
		if k.ID == id {
			return k.Value
		}
	}
	return "<missing>"
}

func panel(d *Dashboard, id string) Panel {
	for _, p := range d.Panels {
		if p.ID == id {
			return p
		}
	}
	return Panel{}
}

func firstColumn(p Panel) []string {
	var out []string
	for _, row := range p.Table.Rows {
		out = append(out, row[0])
	}
	return out
}

// ============================================================================
// KPIs
// ============================================================================

func TestMetricsDistinctOrdersAndAverages(t *testing.T) {
	rows := derive(t, []line{
		{1, "2015-01-01", "11:38:36", "The Hawaiian Pizza", "Classic", "M", "Sliced Ham, Pineapple", 2, "10"},
		{1, "2015-01-01", "11:38:36", "The Thai Chicken Pizza", "Chicken", "L", "Chicken, Pineapple", 1, "5"},
		{2, "2015-01-02", "18:10:00", "The Hawaiian Pizza", "Classic", "S", "Sliced Ham, Pineapple", 1, "7.5"},
		{3, "2015-02-01", "21:30:00", "The Five Cheese Pizza", "Veggie", "L", "Mozzarella Cheese", 4, "20.25"},
	})
	d := build(t, rows, allOf(rows), TrendDaily)

	m := d.Metrics
	if m.TotalOrders != 3 || m.TotalPizzas != 8 {
		t.Errorf("expected 3 orders and 8 pizzas, got %d and %d", m.TotalOrders, m.TotalPizzas)
	}
	if !m.TotalRevenue.Equal(decimal.RequireFromString("42.75")) {
		t.Errorf("expected exact revenue 42.75, got %s", m.TotalRevenue)
	}
	if m.AvgOrderValue != 14 {
		t.Errorf("expected average order value trunc(42/3)=14, got %d", m.AvgOrderValue)
	}
	if m.AvgPizzasPerOrder.String() != "2.67" {
		t.Errorf("expected 2.67 pizzas per order, got %s", m.AvgPizzasPerOrder)
	}
	if m.TopPizza != "The Five Cheese Pizza" {
		t.Errorf("expected top pizza The Five Cheese Pizza, got %s", m.TopPizza)
	}

	want := map[string]string{
		"total_revenue":        "42",
		"total_orders":         "3",
		"total_pizzas":         "8",
		"avg_order_value":      "14",
		"avg_pizzas_per_order": "2.67",
		"top_pizza":            "The Five Cheese Pizza",
	}
	for id, v := range want {
		if got := kpi(d, id); got != v {
			t.Errorf("KPI %s: expected %q, got %q", id, v, got)
		}
	}
	if d.KPIs[0].Label != "Total Revenue ($)" || d.KPIs[0].Tab != TabOverview {
		t.Errorf("unexpected first KPI %+v", d.KPIs[0])
	}
	if d.Period != "January – February" {
		t.Errorf("unexpected period %q", d.Period)
	}
}

func TestPizzasPerOrderRoundsHalfAwayFromZero(t *testing.T) {
	var lines []line
	for order := int64(1); order <= 8; order++ {
		qty := int64(1)
		if order == 1 {
			qty = 2
		}
		lines = append(lines, line{order, "2015-01-01", "12:00:00", "The Hawaiian Pizza", "Classic", "M", "Sliced Ham, Pineapple", qty, "10"})
	}
	rows := derive(t, lines)
	d := build(t, rows, allOf(rows), TrendDaily)

	// 9 pizzas over 8 orders is exactly 1.125.
	if got := kpi(d, "avg_pizzas_per_order"); got != "1.13" {
		t.Errorf("expected 1.13, got %q", got)
	}
}

// ============================================================================
// INSIGHTS
// ============================================================================

func TestInsightsTopCategoryShare(t *testing.T) {
	rows := derive(t, []line{
		{1, "2015-01-01", "12:00:00", "The Hawaiian Pizza", "Classic", "M", "Pineapple", 1, "10"},
		{2, "2015-01-01", "12:05:00", "The Green Garden Pizza", "Veggie", "M", "Spinach", 1, "5"},
		{3, "2015-01-01", "19:00:00", "The Pepperoni Pizza", "Classic", "M", "Pepperoni", 1, "3"},
	})
	view := sales.Bind(rows)
	res, err := Aggregate(view, TrendDaily)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	got := make(map[string]string)
	for _, g := range res.CategoryRevenue.Groups {
		got[g.Label] = g.Value.String()
	}
	if want := map[string]string{"Classic": "13", "Veggie": "5"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected category revenue %v, got %v", want, got)
	}

	set := Summarize(res)
	if set.TopCategory != "Classic" || set.TopCategoryShare.String() != "72.2" {
		t.Errorf("expected Classic at 72.2%%, got %s at %s%%", set.TopCategory, set.TopCategoryShare)
	}
	if set.TopPizza != "The Hawaiian Pizza" || set.TopDaytime != "Afternoon" {
		t.Errorf("unexpected insight set %+v", set)
	}

	sections := set.Sections()
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	if sections[0].Heading != "Revenue & Sales Drivers" || !strings.Contains(sections[0].Body(), "approximately 72.2% of total revenue") {
		t.Errorf("unexpected revenue section %+v", sections[0])
	}
	if !strings.Contains(sections[1].Body(), "operational focus during afternoon hours") {
		t.Errorf("daytime hint should be lower-case, got %q", sections[1].Body())
	}
}

func TestInsightsDropUnknownFacts(t *testing.T) {
	rows := derive(t, []line{
		{1, "2015-01-01", "12:00:00", "The Hawaiian Pizza", "Classic", "M", "", 1, "10"},
	})
	res, err := Aggregate(sales.Bind(rows), TrendDaily)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	for _, sec := range Summarize(res).Sections() {
		if sec.Heading == "Product & Ingredient Insights" {
			t.Errorf("no ingredient data, yet got %+v", sec)
		}
	}
}

// ============================================================================
// EXPLODED PANELS
// ============================================================================

func TestIngredientUsageCountsRowsHeatmapSumsQuantity(t *testing.T) {
	rows := derive(t, []line{
		{1, "2015-01-01", "12:00:00", "The Margherita Pizza", "Classic", "M", "Mozzarella Cheese, Tomatoes, Basil", 1, "12"},
		{2, "2015-01-01", "12:10:00", "The Five Cheese Pizza", "Veggie", "L", "Mozzarella Cheese, Garlic", 2, "37"},
		{3, "2015-01-01", "13:00:00", "The Margherita Pizza", "Classic", "S", "Mozzarella Cheese, Tomatoes, Basil", 1, "9"},
		{4, "2015-01-01", "13:10:00", "The Spinach Pizza", "Veggie", "M", "Spinach, Garlic, Tomatoes", 1, "16"},
		{5, "2015-01-01", "13:20:00", "The Pepperoni Pizza", "Classic", "M", "Pepperoni, Oregano", 1, "12"},
	})
	d := build(t, rows, allOf(rows), TrendDaily)

	usage := panel(d, PanelIngredientUsage)
	if usage.Chart == nil || usage.Chart.ChartType != engine.ChartTreemap {
		t.Fatalf("expected a treemap, got %+v", usage.Chart)
	}
	if usage.Table.Rows[0][0] != "Mozzarella Cheese" || usage.Table.Rows[0][1] != "3" {
		t.Errorf("expected Mozzarella Cheese used 3 times first, got %v", usage.Table.Rows[0])
	}
	if want := []string{"Mozzarella Cheese", "Tomatoes", "Basil", "Garlic", "Spinach", "Pepperoni", "Oregano"}; !reflect.DeepEqual(firstColumn(usage), want) {
		t.Errorf("expected usage ranking %v, got %v", want, firstColumn(usage))
	}

	heat := panel(d, PanelIngredientCategory)
	units := make(map[string]string)
	for _, row := range heat.Table.Rows {
		units[row[0]+"/"+row[1]] = row[2]
		if row[0] == "Pepperoni" || row[0] == "Oregano" {
			t.Errorf("heatmap should only hold the 5 leading ingredients, found %s", row[0])
		}
	}
	if units["Mozzarella Cheese/Classic"] != "2.00" || units["Mozzarella Cheese/Veggie"] != "2.00" {
		t.Errorf("expected Mozzarella Cheese units 2 per category, got %v", units)
	}
	if heat.Chart.XAxis != "Pizza Category" {
		t.Errorf("unexpected heatmap x axis %q", heat.Chart.XAxis)
	}
	if len(heat.Chart.Series) != 5 {
		t.Errorf("expected one heatmap series per leading ingredient, got %d", len(heat.Chart.Series))
	}
	for _, series := range heat.Chart.Series {
		for _, p := range series.Data {
			if p.Label != "Classic" && p.Label != "Veggie" {
				t.Errorf("series %s: x label %q is not a category", series.Name, p.Label)
			}
		}
	}
}

// ============================================================================
// TRENDS + TOP PIZZAS
// ============================================================================

func TestTrendGranularity(t *testing.T) {
	rows := derive(t, []line{
		{1, "2015-03-02", "12:00:00", "A", "Classic", "M", "Cheese", 1, "10"},
		{2, "2015-01-05", "12:00:00", "A", "Classic", "M", "Cheese", 1, "10"},
		{3, "2015-01-05", "12:30:00", "A", "Classic", "M", "Cheese", 1, "10"},
		{4, "2015-02-11", "12:00:00", "A", "Classic", "M", "Cheese", 1, "10"},
	})

	daily := panel(build(t, rows, allOf(rows), TrendDaily), PanelRevenueTrend)
	if want := []string{"2015-01-05", "2015-02-11", "2015-03-02"}; !reflect.DeepEqual(firstColumn(daily), want) {
		t.Errorf("daily trend: expected %v, got %v", want, firstColumn(daily))
	}
	if daily.Chart.XAxis != "Order Date" || daily.Chart.ChartType != engine.ChartLine {
		t.Errorf("unexpected daily chart %+v", daily.Chart)
	}

	monthly := build(t, rows, allOf(rows), TrendMonthly)
	orders := panel(monthly, PanelOrderTrend)
	if want := []string{"January", "February", "March"}; !reflect.DeepEqual(firstColumn(orders), want) {
		t.Errorf("monthly trend: expected %v, got %v", want, firstColumn(orders))
	}
	if orders.Table.Rows[0][1] != "2" {
		t.Errorf("expected 2 distinct January orders, got %s", orders.Table.Rows[0][1])
	}
}

func TestTopPizzasSliceRevenueTable(t *testing.T) {
	var lines []line
	for i, name := range []string{"F", "B", "E", "A", "D", "C"} {
		lines = append(lines, line{int64(i + 1), "2015-01-01", "12:00:00", name, "Classic", "M", "Cheese", 1, []string{"6", "5", "4", "3", "2", "5"}[i]})
	}
	rows := derive(t, lines)
	d := build(t, rows, allOf(rows), TrendDaily)

	top := panel(d, PanelTopPizzas)
	// Revenue ties (B and C at 5) keep the alphabetical order of the
	// pizza revenue table.
	if want := []string{"F", "B", "C", "E", "A"}; !reflect.DeepEqual(firstColumn(top), want) {
		t.Errorf("expected top pizzas %v, got %v", want, firstColumn(top))
	}
	if top.Chart.Orientation != "h" || top.Tab != TabDemand {
		t.Errorf("expected a horizontal bar on the demand tab, got %+v", top)
	}
}

// ============================================================================
// EMPTY SELECTION + PUBLISH
// ============================================================================

type recorder struct {
	calls []string
}

func (r *recorder) Header(title, period string) { r.calls = append(r.calls, "header:"+title) }
func (r *recorder) Metric(k KPI)                { r.calls = append(r.calls, "metric:"+k.ID) }
func (r *recorder) Chart(p Panel)               { r.calls = append(r.calls, "chart:"+p.ID) }
func (r *recorder) Text(heading, _ string)      { r.calls = append(r.calls, "text:"+heading) }
func (r *recorder) Empty(message string)        { r.calls = append(r.calls, "empty:"+message) }

func TestEmptySelectionShortCircuits(t *testing.T) {
	rows := derive(t, []line{
		{1, "2015-01-01", "12:00:00", "The Hawaiian Pizza", "Classic", "M", "Pineapple", 1, "10"},
	})
	st := allOf(rows)
	st.Categories = []string{"Dessert"}

	d := build(t, rows, st, TrendDaily)
	if !d.NoData || d.Message != "No data available" {
		t.Fatalf("expected the no-data signal, got %+v", d)
	}
	if d.Metrics != nil || len(d.Panels) != 0 || len(d.KPIs) != 0 {
		t.Error("no aggregation should run for an empty selection")
	}

	rec := &recorder{}
	Publish(d, rec)
	if want := []string{"header:Pizza Sales Dashboard", "empty:No data available"}; !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("expected %v, got %v", want, rec.calls)
	}
}

func TestPublishOrder(t *testing.T) {
	rows := derive(t, []line{
		{1, "2015-01-01", "12:00:00", "The Hawaiian Pizza", "Classic", "M", "Pineapple", 1, "10"},
	})
	d := build(t, rows, allOf(rows), TrendMonthly)

	rec := &recorder{}
	Publish(d, rec)

	if len(rec.calls) != 1+6+9+3 {
		t.Fatalf("expected header, 6 metrics, 9 charts, 3 texts; got %v", rec.calls)
	}
	if rec.calls[1] != "metric:total_revenue" || rec.calls[7] != "chart:"+PanelRevenueTrend || rec.calls[16] != "text:Revenue & Sales Drivers" {
		t.Errorf("unexpected publish order %v", rec.calls)
	}
}

func TestParseTrend(t *testing.T) {
	if tr, err := ParseTrend(""); err != nil || tr != TrendDaily {
		t.Errorf("empty trend: got %q, %v", tr, err)
	}
	if tr, err := ParseTrend("monthly"); err != nil || tr != TrendMonthly {
		t.Errorf("monthly: got %q, %v", tr, err)
	}
	if _, err := ParseTrend("weekly"); err == nil {
		t.Error("expected an error for weekly")
	}
}
