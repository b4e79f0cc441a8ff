package sales

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/engine"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/schema"
)

// adapter exposes Row fields to the engine under their schema keys.
var adapter = engine.NewDomainAdapter[Row]().
	Dimension(schema.OrderID, func(r Row) string { return strconv.FormatInt(r.OrderID, 10) }).
	Dimension(schema.OrderDate, Row.OrderDay).
	Dimension(schema.OrderMonth, func(r Row) string { return r.OrderMonth }).
	Dimension(schema.PizzaName, func(r Row) string { return r.PizzaName }).
	Dimension(schema.PizzaCategory, func(r Row) string { return r.PizzaCategory }).
	Dimension(schema.PizzaSize, func(r Row) string { return r.PizzaSize }).
	Dimension(schema.Daytime, func(r Row) string { return string(r.Daytime) }).
	Measure(schema.TotalPrice, func(r Row) decimal.Decimal { return r.TotalPrice }).
	Measure(schema.Quantity, func(r Row) decimal.Decimal { return decimal.NewFromInt(r.Quantity) }).
	List(schema.IngredientList, func(r Row) []string { return r.Ingredients })

// Bind wraps rows in a zero-copy engine view.
func Bind(rows []Row) engine.RecordView {
	return adapter.Bind(rows)
}
