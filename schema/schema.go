package schema

import (
	"fmt"
	"strings"
)

// ============================================================================
// SCHEMA — Describes the shape of the pizza-sales dataset
// ============================================================================
// The loaders use it to locate raw columns; the dashboard uses it for
// table and axis labels, and the API serves it to the front end. Derived
// fields are listed with DerivedFrom set.
// ============================================================================

// Raw column keys, as they appear (snake_cased) in the source spreadsheet.
const (
	OrderID          = "order_id"
	OrderDate        = "order_date"
	OrderTime        = "order_time"
	PizzaName        = "pizza_name"
	PizzaCategory    = "pizza_category"
	PizzaSize        = "pizza_size"
	PizzaIngredients = "pizza_ingredients"
	Quantity         = "quantity"
	TotalPrice       = "total_price"
)

// Derived field keys.
const (
	OrderMonth     = "order_month"
	Daytime        = "daytime"
	IngredientList = "ingredient_list"
	Ingredient     = "ingredient" // one exploded element of IngredientList
)

// RawColumns lists every column the source file must carry.
var RawColumns = []string{
	OrderID, OrderDate, OrderTime, PizzaName, PizzaCategory,
	PizzaSize, PizzaIngredients, Quantity, TotalPrice,
}

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string          `json:"name"`
	Version     string          `json:"version,omitempty"`
	Description string          `json:"description,omitempty"`
	Dimensions  []DimensionMeta `json:"dimensions"`
	Measures    []MeasureMeta   `json:"measures"`
}

// DimensionMeta describes a string field used for grouping/filtering.
type DimensionMeta struct {
	Key           string `json:"key"`
	DisplayName   string `json:"displayName"`
	Filterable    bool   `json:"filterable"`
	IsTemporal    bool   `json:"isTemporal,omitempty"`
	TemporalOrder string `json:"temporalOrder,omitempty"` // "chronological"
	DerivedFrom   string `json:"derivedFrom,omitempty"`
}

// MeasureMeta describes a numeric field used for aggregation.
type MeasureMeta struct {
	Key                string `json:"key"`
	DisplayName        string `json:"displayName"`
	Unit               string `json:"unit,omitempty"` // "currency", "units"
	IsCurrency         bool   `json:"isCurrency,omitempty"`
	DefaultAggregation string `json:"defaultAggregation,omitempty"`
}

// PizzaSales returns the schema of the pizza-sales spreadsheet.
func PizzaSales() Config {
	return Config{
		Name:        "Pizza Sales",
		Version:     "1.0",
		Description: "One row per pizza line item of an order",
		Dimensions: []DimensionMeta{
			{Key: OrderID, DisplayName: "Order ID"},
			{Key: OrderDate, DisplayName: "Order Date", IsTemporal: true, TemporalOrder: "chronological"},
			{Key: OrderMonth, DisplayName: "Order Month", Filterable: true, IsTemporal: true, TemporalOrder: "chronological", DerivedFrom: OrderDate},
			{Key: PizzaName, DisplayName: "Pizza Name"},
			{Key: PizzaCategory, DisplayName: "Pizza Category", Filterable: true},
			{Key: PizzaSize, DisplayName: "Pizza Size", Filterable: true},
			{Key: Daytime, DisplayName: "Daytime", DerivedFrom: OrderTime},
			{Key: Ingredient, DisplayName: "Ingredient", DerivedFrom: PizzaIngredients},
		},
		Measures: []MeasureMeta{
			{Key: TotalPrice, DisplayName: "Revenue", Unit: "currency", IsCurrency: true, DefaultAggregation: "sum"},
			{Key: Quantity, DisplayName: "Units Sold", Unit: "units", DefaultAggregation: "sum"},
		},
	}
}

// DisplayName returns the display name for a dimension or measure key,
// or the key itself when unknown.
func (c Config) DisplayName(key string) string {
	for _, d := range c.Dimensions {
		if d.Key == key {
			return d.DisplayName
		}
	}
	for _, m := range c.Measures {
		if m.Key == key {
			return m.DisplayName
		}
	}
	return key
}

// ============================================================================
// HEADER VALIDATION
// ============================================================================

// MissingColumnsError lists raw columns absent from a header row.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// ValidateHeaders maps every raw column to its index in headers.
// Header names are compared after NormalizeHeader. Extra columns are ignored.
func ValidateHeaders(headers []string) (map[string]int, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := NormalizeHeader(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	var missing []string
	for _, col := range RawColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return index, nil
}

// NormalizeHeader converts "Order Date" → "order_date".
func NormalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
