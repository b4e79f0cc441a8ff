package sales

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/schema"
)

var (
	errNegative    = errors.New("must not be negative")
	errUnknownForm = errors.New("unrecognised format")
)

// dateLayouts are tried in order. "02-01-2006" is day-month-year, the form
// used by the public pizza-sales export.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"1/2/2006",
	"02-01-2006",
}

var timeLayouts = []string{
	"15:04:05",
	"15:04",
	"15:04:05.000",
	"3:04:05 PM",
	"3:04 PM",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Derive computes the derived fields of every raw row. It does not modify
// raw. The first malformed row aborts the whole load with a
// *MalformedRowError; no partial dataset is returned.
func Derive(raw []RawRow) ([]Row, error) {
	rows := make([]Row, 0, len(raw))
	for _, r := range raw {
		row, err := deriveRow(r)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func deriveRow(r RawRow) (Row, error) {
	date, err := parseDate(r.OrderDate)
	if err != nil {
		return Row{}, &MalformedRowError{Line: r.Line, Field: schema.OrderDate, Value: r.OrderDate, Err: err}
	}
	clock, err := parseClock(r.OrderTime)
	if err != nil {
		return Row{}, &MalformedRowError{Line: r.Line, Field: schema.OrderTime, Value: r.OrderTime, Err: err}
	}
	if r.Quantity < 0 {
		return Row{}, &MalformedRowError{Line: r.Line, Field: schema.Quantity, Value: fmt.Sprint(r.Quantity), Err: errNegative}
	}
	if r.TotalPrice.IsNegative() {
		return Row{}, &MalformedRowError{Line: r.Line, Field: schema.TotalPrice, Value: r.TotalPrice.String(), Err: errNegative}
	}

	hour := int(clock / time.Hour)
	return Row{
		OrderID:          r.OrderID,
		OrderDate:        date,
		OrderTime:        clock,
		PizzaName:        r.PizzaName,
		PizzaCategory:    r.PizzaCategory,
		PizzaSize:        r.PizzaSize,
		PizzaIngredients: r.PizzaIngredients,
		Quantity:         r.Quantity,
		TotalPrice:       r.TotalPrice,
		OrderMonth:       date.Month().String(),
		OrderMonthNum:    int(date.Month()),
		OrderHour:        hour,
		Daytime:          DaytimeForHour(hour),
		Ingredients:      SplitIngredients(r.PizzaIngredients),
	}, nil
}

// SplitIngredients splits a comma-separated ingredient string and trims
// every entry. Order is preserved; a blank string has no ingredients.
func SplitIngredients(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errUnknownForm
}

func parseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, errUnknownForm
}
