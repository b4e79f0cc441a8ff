package dashboard

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/engine"
)

// InsightSet holds the superlatives quoted in the narrative. Every field is
// picked from an aggregate in Results; nothing is recomputed from rows.
type InsightSet struct {
	TopCategory      string          `json:"topCategory"`
	TopCategoryShare decimal.Decimal `json:"topCategoryShare"` // percent, 1 dp
	TopPizza         string          `json:"topPizza"`
	TopDaytime       string          `json:"topDaytime"`
	TopIngredient    string          `json:"topIngredient"`
}

// Section is one narrative block of the insights tab.
type Section struct {
	Heading string   `json:"heading"`
	Bullets []string `json:"bullets"`
}

// Body joins the bullets into one text block.
func (s Section) Body() string {
	lines := make([]string, len(s.Bullets))
	for i, b := range s.Bullets {
		lines[i] = "• " + b
	}
	return strings.Join(lines, "\n")
}

// Summarize selects the insight facts from an aggregated render pass.
func Summarize(res *Results) *InsightSet {
	set := &InsightSet{TopCategoryShare: decimal.Zero}

	if top, ok := engine.ArgMax(res.CategoryRevenue.Groups); ok {
		set.TopCategory = top.Label
		if revenue := total(res.TotalRevenue); revenue.IsPositive() {
			set.TopCategoryShare = top.Value.Mul(decimal.NewFromInt(100)).DivRound(revenue, 1)
		}
	}
	if top, ok := engine.ArgMax(res.PizzaRevenue.Groups); ok {
		set.TopPizza = top.Label
	}
	if top, ok := engine.ArgMax(res.DaytimeDemand.Groups); ok {
		set.TopDaytime = top.Label
	}
	if top, ok := engine.ArgMax(res.IngredientUsage.Groups); ok {
		set.TopIngredient = top.Label
	}
	return set
}

// Sections renders the narrative. Facts that could not be determined
// (no ingredient data, for instance) drop their bullets.
func (s *InsightSet) Sections() []Section {
	var revenue []string
	if s.TopCategory != "" {
		revenue = append(revenue,
			fmt.Sprintf("%s pizzas generate the highest revenue under the current selection.", s.TopCategory),
			fmt.Sprintf("The top category contributes approximately %s%% of total revenue.", s.TopCategoryShare.StringFixed(1)),
		)
	}
	if s.TopPizza != "" {
		revenue = append(revenue, fmt.Sprintf("%s is the highest revenue-generating pizza.", s.TopPizza))
	}

	var demand []string
	if s.TopDaytime != "" {
		demand = append(demand,
			fmt.Sprintf("%s accounts for the highest volume of pizzas sold.", s.TopDaytime),
			fmt.Sprintf("Demand patterns suggest operational focus during %s hours.", strings.ToLower(s.TopDaytime)),
		)
	}

	var product []string
	if s.TopIngredient != "" {
		product = append(product,
			fmt.Sprintf("%s is the most frequently used ingredient across pizzas.", s.TopIngredient),
			"Ingredient usage indicates strong dependency on a small set of core ingredients.",
		)
	}

	var out []Section
	for _, sec := range []Section{
		{Heading: "Revenue & Sales Drivers", Bullets: revenue},
		{Heading: "Demand Patterns", Bullets: demand},
		{Heading: "Product & Ingredient Insights", Bullets: product},
	} {
		if len(sec.Bullets) > 0 {
			out = append(out, sec)
		}
	}
	return out
}
