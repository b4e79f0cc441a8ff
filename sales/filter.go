package sales

import (
	"strconv"
	"strings"
)

// AllMonths is the month selection that disables the month axis.
const AllMonths = "All"

// FilterState is the set of selections for one render pass.
//
// Months: empty, or containing AllMonths, applies no month restriction.
// Categories and Sizes: a row passes only if its value is selected, so an
// empty selection passes no rows. Store.DefaultFilterState selects every
// category and size, which is the state a fresh dashboard starts in.
type FilterState struct {
	Months     []string `json:"months"`
	Categories []string `json:"categories"`
	Sizes      []string `json:"sizes"`
}

// AllMonthsSelected reports whether the month axis is inactive.
func (s FilterState) AllMonthsSelected() bool {
	if len(s.Months) == 0 {
		return true
	}
	for _, m := range s.Months {
		if m == AllMonths {
			return true
		}
	}
	return false
}

// Match reports whether a row passes all three axes.
func (s FilterState) Match(r Row) bool {
	if !s.AllMonthsSelected() && !contains(s.Months, r.OrderMonth) {
		return false
	}
	return contains(s.Categories, r.PizzaCategory) && contains(s.Sizes, r.PizzaSize)
}

// Key returns a canonical string for the state, independent of selection
// order and duplicates. Equal keys mean equal filter results.
func (s FilterState) Key() string {
	months := []string{AllMonths}
	if !s.AllMonthsSelected() {
		months = canonical(s.Months)
	}
	return "m=" + joinQuoted(months) +
		"|c=" + joinQuoted(canonical(s.Categories)) +
		"|s=" + joinQuoted(canonical(s.Sizes))
}

// joinQuoted quotes each value so separators inside values stay unambiguous.
func joinQuoted(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = strconv.Quote(item)
	}
	return strings.Join(quoted, ",")
}

// Filter returns the rows matching st, in input order. The input slice is
// not modified. An empty result is valid.
func Filter(rows []Row, st FilterState) []Row {
	months := toSet(st.Months)
	categories := toSet(st.Categories)
	sizes := toSet(st.Sizes)
	allMonths := st.AllMonthsSelected()

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if !allMonths && !months[r.OrderMonth] {
			continue
		}
		if !categories[r.PizzaCategory] || !sizes[r.PizzaSize] {
			continue
		}
		out = append(out, r)
	}
	return out
}

func contains(items []string, v string) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
