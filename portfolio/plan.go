package portfolio

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lox/betbuilder/lottery"
)

// ErrInvalidPlan is returned for plans the allocator cannot process.
var ErrInvalidPlan = errors.New("invalid allocation plan")

// Allocation targets a fraction of the budget at one game.
type Allocation struct {
	GameID string
	Weight decimal.Decimal
}

// Plan is the allocator's input. Weights are treated independently and need
// not sum to one.
type Plan struct {
	Budget      decimal.Decimal
	Allocations []Allocation
	// Featured, when set, moves that game's slice to the front of the
	// distribution if it received any bets.
	Featured string
}

// Validate checks the plan's shape; game ids are checked against the
// catalog during allocation.
func (p Plan) Validate() error {
	if !p.Budget.IsPositive() {
		return fmt.Errorf("%w: budget must be positive, got %s", ErrInvalidPlan, p.Budget)
	}
	if len(p.Allocations) == 0 {
		return fmt.Errorf("%w: no allocations", ErrInvalidPlan)
	}
	for i, a := range p.Allocations {
		if a.GameID == "" {
			return fmt.Errorf("%w: allocation %d has no game", ErrInvalidPlan, i)
		}
		if a.Weight.IsNegative() {
			return fmt.Errorf("%w: %s weight must be >= 0, got %s", ErrInvalidPlan, a.GameID, a.Weight)
		}
	}
	return nil
}

// GameIDs returns the referenced game ids in plan order.
func (p Plan) GameIDs() []string {
	ids := make([]string, len(p.Allocations))
	for i, a := range p.Allocations {
		ids[i] = a.GameID
	}
	return ids
}

// DefaultPlan spreads budget 40/30/20/10 across lotofacil, mega-sena, quina
// and lotomania, featuring lotofacil.
func DefaultPlan(budget decimal.Decimal) Plan {
	return Plan{
		Budget: budget,
		Allocations: []Allocation{
			{GameID: "lotofacil", Weight: decimal.RequireFromString("0.40")},
			{GameID: "mega-sena", Weight: decimal.RequireFromString("0.30")},
			{GameID: "quina", Weight: decimal.RequireFromString("0.20")},
			{GameID: "lotomania", Weight: decimal.RequireFromString("0.10")},
		},
		Featured: "lotofacil",
	}
}

// Slice is one game's share of a portfolio.
type Slice struct {
	GameID string
	Name   string
	// TargetPercent is the nominal weight of the game, rounded.
	TargetPercent int
	// Percent is the game's share of the actual spend. Across a non-empty
	// portfolio the percents sum to exactly 100.
	Percent  int
	BetCount int
	Spend    decimal.Decimal
}

// Portfolio is the costed set of bets produced by one allocation run.
type Portfolio struct {
	Budget       decimal.Decimal
	Bets         []lottery.Bet
	TotalSpent   decimal.Decimal
	TotalBets    int
	Distribution []Slice
	// Fallback is set when the single cheapest-game bet was forced because
	// no weighted slice could afford a bet.
	Fallback bool
}

// Remaining is the part of the budget left unspent.
func (p Portfolio) Remaining() decimal.Decimal {
	return p.Budget.Sub(p.TotalSpent)
}

// IsEmpty reports whether the portfolio holds no bets.
func (p Portfolio) IsEmpty() bool {
	return p.TotalBets == 0
}

// Slice returns the distribution entry for gameID.
func (p Portfolio) Slice(gameID string) (Slice, bool) {
	for _, s := range p.Distribution {
		if s.GameID == gameID {
			return s, true
		}
	}
	return Slice{}, false
}
