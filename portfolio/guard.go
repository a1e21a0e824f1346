package portfolio

import (
	"github.com/shopspring/decimal"
)

// GuardStatus classifies spending against a household budget.
type GuardStatus uint8

const (
	// GuardUnconfigured means no income or expenses were provided.
	GuardUnconfigured GuardStatus = iota
	GuardOK
	GuardOverLimit
	// GuardCrisis means expenses meet or exceed income; any betting is
	// discouraged.
	GuardCrisis
)

func (s GuardStatus) String() string {
	switch s {
	case GuardOK:
		return "ok"
	case GuardOverLimit:
		return "over-limit"
	case GuardCrisis:
		return "crisis"
	default:
		return "unconfigured"
	}
}

// LimitFraction is the share of monthly surplus considered safe to bet.
var LimitFraction = decimal.RequireFromString("0.20")

// Guard caps betting spend at a fraction of the user's surplus.
type Guard struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// NewGuard returns a guard for the given monthly income and expenses.
func NewGuard(income, expenses decimal.Decimal) Guard {
	return Guard{Income: income, Expenses: expenses}
}

// Surplus is income minus expenses.
func (g Guard) Surplus() decimal.Decimal {
	return g.Income.Sub(g.Expenses)
}

// Limit is the spending cap: LimitFraction of a positive surplus, else zero.
func (g Guard) Limit() decimal.Decimal {
	surplus := g.Surplus()
	if !surplus.IsPositive() {
		return decimal.Zero
	}
	return surplus.Mul(LimitFraction)
}

// Verdict is the outcome of checking an amount against the guard.
type Verdict struct {
	Status  GuardStatus
	Spent   decimal.Decimal
	Limit   decimal.Decimal
	Surplus decimal.Decimal
}

// Headroom is how much more may be spent before the limit; never negative.
func (v Verdict) Headroom() decimal.Decimal {
	h := v.Limit.Sub(v.Spent)
	if h.IsNegative() {
		return decimal.Zero
	}
	return h
}

// Check classifies spent against the guard. It only advises; callers decide
// whether to proceed.
func (g Guard) Check(spent decimal.Decimal) Verdict {
	v := Verdict{Spent: spent, Limit: g.Limit(), Surplus: g.Surplus()}
	switch {
	case g.Income.IsZero() && g.Expenses.IsZero():
		v.Status = GuardUnconfigured
	case !v.Surplus.IsPositive():
		v.Status = GuardCrisis
	case spent.GreaterThan(v.Limit):
		v.Status = GuardOverLimit
	default:
		v.Status = GuardOK
	}
	return v
}
