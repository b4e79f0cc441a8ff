// Package sales holds the pizza-sales row model: raw spreadsheet rows, the
// derived immutable Row, the filter evaluator, and the load-once Store.
package sales

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RawRow is one spreadsheet line before derivation. Dates and times are kept
// as the text (or Excel serial) the source file carried.
type RawRow struct {
	Line             int // 1-based source line, for error reporting
	OrderID          int64
	OrderDate        string
	OrderTime        string
	PizzaName        string
	PizzaCategory    string
	PizzaSize        string
	PizzaIngredients string
	Quantity         int64
	TotalPrice       decimal.Decimal
}

// Row is one sold pizza line item with its derived fields.
// Rows are built by Derive and never modified afterwards.
type Row struct {
	OrderID          int64
	OrderDate        time.Time     // midnight UTC of the order day
	OrderTime        time.Duration // offset from midnight
	PizzaName        string
	PizzaCategory    string
	PizzaSize        string
	PizzaIngredients string
	Quantity         int64
	TotalPrice       decimal.Decimal

	OrderMonth    string // "January"
	OrderMonthNum int    // 1..12
	OrderHour     int    // 0..23
	Daytime       Daytime
	Ingredients   []string
}

// OrderDay formats the order date as an ISO day, the daily trend key.
func (r Row) OrderDay() string {
	return r.OrderDate.Format("2006-01-02")
}

// MalformedRowError reports a raw row that could not be derived.
type MalformedRowError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("line %d: malformed %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }
