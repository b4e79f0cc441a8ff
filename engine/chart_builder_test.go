package engine

import (
	"reflect"
	"testing"
)

func TestBuildChartPivotsOnSecondKey(t *testing.T) {
	view := saleAdapter.Bind([]sale{
		{category: "Classic", size: "M", qty: 2},
		{category: "Classic", size: "L", qty: 1},
		{category: "Veggie", size: "L", qty: 3},
	})
	spec := QuerySpec{
		ID:          "category_size",
		Title:       "Pizza Size Distribution by Category",
		GroupBy:     []string{"pizza_category", "pizza_size"},
		Measure:     "quantity",
		Aggregation: ReduceSum,
		Visualize:   ChartStackedBar,
		Axis:        AxisBinding{X: "pizza_category", Y: "quantity", Color: "pizza_size", YLabel: "Quantity Sold"},
	}
	res, err := Execute(spec, view)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	chart := res.ChartConfig

	if len(chart.Series) != 2 {
		t.Fatalf("expected 2 series (one per size), got %d", len(chart.Series))
	}
	if chart.Series[0].Name != "M" || chart.Series[1].Name != "L" {
		t.Errorf("series should follow first-seen order, got %s, %s", chart.Series[0].Name, chart.Series[1].Name)
	}
	// Veggie has no M sales, so the M series has a single point.
	if len(chart.Series[0].Data) != 1 {
		t.Errorf("missing combinations must not be zero-filled, got %+v", chart.Series[0].Data)
	}
	if got := chart.Series[1].Data; len(got) != 2 || got[1].Label != "Veggie" || got[1].Value != 3 {
		t.Errorf("unexpected L series %+v", got)
	}
	if !chart.ShowLegend || !chart.ShowGrid {
		t.Error("stacked bars should show a legend and a grid")
	}
	if chart.XAxis != "Pizza Category" || chart.YAxis != "Quantity Sold" {
		t.Errorf("unexpected axis labels %q / %q", chart.XAxis, chart.YAxis)
	}
	if chart.Series[0].Color != defaultColors[0] || chart.Series[1].Color != defaultColors[1] {
		t.Errorf("series colors should cycle the palette, got %s, %s", chart.Series[0].Color, chart.Series[1].Color)
	}
}

func TestBuildChartPieUsesFullPalette(t *testing.T) {
	view := saleAdapter.Bind([]sale{
		{category: "Classic", price: "10.005"},
		{category: "Veggie", price: "5"},
	})
	spec := QuerySpec{
		ID:          "category_share",
		Title:       "Revenue Share by Pizza Category",
		GroupBy:     []string{"pizza_category"},
		Measure:     "total_price",
		Aggregation: ReduceSum,
		Visualize:   ChartPie,
		Hole:        0.4,
		Colors:      []string{"#111111", "#222222", "#333333"},
	}
	res, err := Execute(spec, view, WithPalette("#ffffff"))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	chart := res.ChartConfig
	if !reflect.DeepEqual(chart.Colors, spec.Colors) {
		t.Errorf("query colors should win over the palette, got %v", chart.Colors)
	}
	if chart.Hole != 0.4 || chart.ShowGrid {
		t.Errorf("pie should carry its hole and hide the grid: %+v", chart)
	}
	if len(chart.Series) != 1 || chart.Series[0].Data[0].Value != 10.01 {
		t.Errorf("expected one series with rounded value 10.01, got %+v", chart.Series)
	}
}

func TestBuildTableSummary(t *testing.T) {
	view := saleAdapter.Bind([]sale{
		{size: "L", price: "1500.50"},
		{size: "S", price: "9.75"},
		{size: "L", price: "0.25"},
	})
	spec := QuerySpec{
		ID:          "size_revenue",
		Title:       "Revenue by Size",
		GroupBy:     []string{"pizza_size"},
		Measure:     "total_price",
		Aggregation: ReduceSum,
	}
	res, err := Execute(spec, view, WithCurrency("$"))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	table := res.TableData
	if res.ChartConfig != nil {
		t.Error("no chart expected without a visualization")
	}
	if want := [][]string{{"L", "1500.75", "2"}, {"S", "9.75", "1"}}; !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("expected rows %v, got %v", want, table.Rows)
	}
	if table.Summary == nil || table.Summary.Values["total_price"] != "$ 1,510.50" {
		t.Errorf("unexpected summary %+v", table.Summary)
	}

	spec.Aggregation = ReduceCount
	spec.Measure = ""
	res, _ = Execute(spec, view)
	if got := res.TableData.Summary.Values["value"]; got != "3" {
		t.Errorf("count totals should be plain integers, got %q", got)
	}

	spec.Aggregation = ReduceMax
	spec.Measure = "total_price"
	res, _ = Execute(spec, view)
	if res.TableData.Summary != nil {
		t.Error("max has no meaningful total")
	}
}

func TestBuildChartPivotsOnAxisX(t *testing.T) {
	view := saleAdapter.Bind([]sale{
		{category: "Classic", qty: 1, ingredients: []string{"Basil", "Mozzarella"}},
		{category: "Veggie", qty: 2, ingredients: []string{"Mozzarella"}},
	})
	spec := QuerySpec{
		ID:          "heatmap",
		GroupBy:     []string{"ingredient", "pizza_category"},
		Measure:     "quantity",
		Aggregation: ReduceSum,
		SortBy:      SortLabelAsc,
		Explode:     &ExplodeSpec{List: "ingredient_list", As: "ingredient"},
		Visualize:   ChartHeatmap,
		Axis:        AxisBinding{X: "pizza_category", Y: "ingredient", Z: "quantity"},
	}
	labels := map[string]string{"pizza_category": "Category", "ingredient": "Topping"}
	res, err := Execute(spec, view, WithLabels(func(key string) string { return labels[key] }))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	chart := res.ChartConfig

	if chart.XAxis != "Category" {
		t.Errorf("x axis should name the bound key, got %q", chart.XAxis)
	}
	var names []string
	for _, s := range chart.Series {
		names = append(names, s.Name)
		for _, p := range s.Data {
			if p.Label != "Classic" && p.Label != "Veggie" {
				t.Errorf("series %s: point label %q should be a category", s.Name, p.Label)
			}
		}
	}
	if want := []string{"Basil", "Mozzarella"}; !reflect.DeepEqual(names, want) {
		t.Errorf("expected one series per ingredient %v, got %v", want, names)
	}
	if got := res.TableData.Columns; got[0].Label != "Topping" || got[1].Label != "Category" {
		t.Errorf("table columns should use the labeler, got %+v", got)
	}
}

func TestBuildTableFormatsCountsAsIntegers(t *testing.T) {
	view := saleAdapter.Bind([]sale{
		{order: "1", category: "Classic"},
		{order: "1", category: "Classic"},
		{order: "2", category: "Veggie"},
	})
	for _, tt := range []struct {
		reducer Reducer
		measure string
		want    string
	}{
		{ReduceCount, "", "2"},
		{ReduceCountDistinct, "order_id", "1"},
		{ReduceSum, "quantity", "0.00"},
	} {
		res, err := Execute(QuerySpec{GroupBy: []string{"pizza_category"}, Measure: tt.measure, Aggregation: tt.reducer, SortBy: SortLabelAsc}, view)
		if err != nil {
			t.Fatalf("%s: Execute failed: %v", tt.reducer, err)
		}
		if got := res.TableData.Rows[0][1]; got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.reducer, tt.want, got)
		}
	}
}
