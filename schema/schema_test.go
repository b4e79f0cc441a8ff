package schema

import (
	"errors"
	"testing"
)

// ============================================================================
// HEADER VALIDATION TESTS
// ============================================================================

func TestValidateHeadersMapsEveryRawColumn(t *testing.T) {
	headers := []string{"pizza_id", "Order ID", "order_date", "Order Time", "pizza_name",
		"Pizza-Category", "pizza_size", "pizza_ingredients", " quantity ", "TOTAL_PRICE", "unit_price"}

	index, err := ValidateHeaders(headers)
	if err != nil {
		t.Fatalf("ValidateHeaders failed: %v", err)
	}

	expected := map[string]int{
		OrderID: 1, OrderDate: 2, OrderTime: 3, PizzaName: 4, PizzaCategory: 5,
		PizzaSize: 6, PizzaIngredients: 7, Quantity: 8, TotalPrice: 9,
	}
	for key, want := range expected {
		if got := index[key]; got != want {
			t.Errorf("column %s: expected index %d, got %d", key, want, got)
		}
	}
}

func TestValidateHeadersReportsMissingColumns(t *testing.T) {
	_, err := ValidateHeaders([]string{"order_id", "order_date", "pizza_name"})
	if err == nil {
		t.Fatal("expected an error for missing columns")
	}

	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingColumnsError, got %T", err)
	}
	assertContains(t, missing.Columns, OrderTime, "order_time should be reported missing")
	assertContains(t, missing.Columns, TotalPrice, "total_price should be reported missing")
	if len(missing.Columns) != 6 {
		t.Errorf("expected 6 missing columns, got %d: %v", len(missing.Columns), missing.Columns)
	}
}

func TestNormalizeHeaderStripsByteOrderMark(t *testing.T) {
	if got := NormalizeHeader("\ufefforder_id"); got != OrderID {
		t.Errorf("expected %q, got %q", OrderID, got)
	}
}

func TestPizzaSalesDisplayNames(t *testing.T) {
	cfg := PizzaSales()

	cases := map[string]string{
		PizzaCategory: "Pizza Category",
		TotalPrice:    "Revenue",
		Quantity:      "Units Sold",
		"unknown_key": "unknown_key",
	}
	for key, want := range cases {
		if got := cfg.DisplayName(key); got != want {
			t.Errorf("DisplayName(%q): expected %q, got %q", key, want, got)
		}
	}

	var derived []string
	for _, d := range cfg.Dimensions {
		if d.DerivedFrom != "" {
			derived = append(derived, d.Key)
		}
	}
	assertContains(t, derived, OrderMonth, "order_month should be derived")
	assertContains(t, RawColumns, TotalPrice, "total_price should be a raw column")
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func assertContains(t *testing.T, slice []string, item, msg string) {
	t.Helper()
	for _, s := range slice {
		if s == item {
			return
		}
	}
	t.Errorf("%s — %q not found in %v", msg, item, slice)
}
