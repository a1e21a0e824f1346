package main

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/lox/betbuilder/portfolio"
)

type BudgetCmd struct {
	Income   decimal.Decimal `arg:"" help:"Monthly income"`
	Expenses decimal.Decimal `arg:"" help:"Monthly expenses"`
	Spent    decimal.Decimal `short:"s" help:"Amount already spent or planned on bets this month"`
}

func (c *BudgetCmd) Run(g *Globals) error {
	if c.Income.IsNegative() || c.Expenses.IsNegative() || c.Spent.IsNegative() {
		return fmt.Errorf("amounts must not be negative")
	}
	v := checkGuard(g.Logger(), portfolio.NewGuard(c.Income, c.Expenses), c.Spent)
	renderVerdict(os.Stdout, v)
	return nil
}

func renderVerdict(w io.Writer, v portfolio.Verdict) {
	fmt.Fprintf(w, "surplus   %s\n", moneyStyle.Render(v.Surplus.StringFixed(2)))
	fmt.Fprintf(w, "limit     %s\n", moneyStyle.Render(v.Limit.StringFixed(2)))
	fmt.Fprintf(w, "spent     %s\n", v.Spent.StringFixed(2))
	fmt.Fprintf(w, "headroom  %s\n", v.Headroom().StringFixed(2))

	switch v.Status {
	case portfolio.GuardCrisis:
		fmt.Fprintf(w, "%s\n", warnStyle.Render("Crisis: expenses meet or exceed income. Avoid betting this month."))
	case portfolio.GuardOverLimit:
		fmt.Fprintf(w, "%s\n", warnStyle.Render("Over the safe limit of 20% of your surplus."))
	case portfolio.GuardOK:
		fmt.Fprintf(w, "%s\n", percentStyle.Render("Within the safe limit."))
	default:
		fmt.Fprintf(w, "%s\n", noteStyle.Render("Enter income and expenses to compute a limit."))
	}
}
