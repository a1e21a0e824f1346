package portfolio

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/lox/betbuilder/lottery"
)

// DefaultStrategies are the labels attached to allocated bets as their
// rationale.
var DefaultStrategies = []string{
	"Cycle closing",
	"Hot numbers",
	"Odd/even balance",
	"Quadrant analysis",
	"Economic wheel",
	"Delay pattern",
	"Recent frequency",
}

// FallbackRationale labels the single bet forced by the fallback policy.
const FallbackRationale = "Single opportunity"

// MaxBets caps the bets one allocation may generate. Plans that would buy
// more are rejected with ErrInvalidPlan.
const MaxBets = 100_000

var (
	hundred  = decimal.NewFromInt(100)
	maxCount = decimal.NewFromInt(math.MaxInt32)
)

// Allocator partitions a budget across games and generates the bets.
type Allocator struct {
	catalog    *lottery.Catalog
	logger     *log.Logger
	strategies []string
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithLogger sets the logger used for allocation diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(a *Allocator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithStrategies replaces the rationale labels drawn for allocated bets.
// An empty list leaves bets without a rationale.
func WithStrategies(labels ...string) Option {
	return func(a *Allocator) {
		a.strategies = slices.Clone(labels)
	}
}

// NewAllocator returns an allocator drawing games from catalog.
func NewAllocator(catalog *lottery.Catalog, opts ...Option) *Allocator {
	a := &Allocator{
		catalog:    catalog,
		logger:     log.New(io.Discard),
		strategies: DefaultStrategies,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Allocate spends plan.Budget across the plan's games. Each slice buys
// floor(budget*weight/unitCost) bets. When no slice can afford a bet but the
// budget covers the cheapest referenced game, exactly one bet of that game
// is bought instead. A budget below every referenced cost yields an empty
// portfolio, not an error.
func (a *Allocator) Allocate(plan Plan, src lottery.Source) (Portfolio, error) {
	if err := plan.Validate(); err != nil {
		return Portfolio{}, err
	}

	defs := make([]lottery.GameDefinition, len(plan.Allocations))
	counts := make([]int, len(plan.Allocations))
	planned := 0
	for i, alloc := range plan.Allocations {
		def, err := a.catalog.Lookup(alloc.GameID)
		if err != nil {
			return Portfolio{}, fmt.Errorf("allocation %d: %w", i, err)
		}
		defs[i] = def
		counts[i] = BetCount(plan.Budget.Mul(alloc.Weight), def.UnitCost)
		if counts[i] > MaxBets-planned {
			return Portfolio{}, fmt.Errorf("%w: budget %s buys more than %d bets", ErrInvalidPlan, plan.Budget, MaxBets)
		}
		planned += counts[i]
	}

	p := Portfolio{Budget: plan.Budget}
	weights := make(map[string]decimal.Decimal)
	index := make(map[string]int)

	for i, alloc := range plan.Allocations {
		def := defs[i]
		target := plan.Budget.Mul(alloc.Weight)
		count := counts[i]

		a.logger.Debug("Allocation slice",
			"game", def.ID,
			"weight", alloc.Weight.String(),
			"target", target.StringFixed(2),
			"unit_cost", def.UnitCost.StringFixed(2),
			"bets", count)

		if count == 0 {
			continue
		}

		for n := 0; n < count; n++ {
			bet, err := a.generate(def, src)
			if err != nil {
				return Portfolio{}, err
			}
			p.Bets = append(p.Bets, bet)
		}

		weights[def.ID] = weights[def.ID].Add(alloc.Weight)
		if _, seen := index[def.ID]; !seen {
			index[def.ID] = len(p.Distribution)
			p.Distribution = append(p.Distribution, Slice{GameID: def.ID, Name: def.DisplayName()})
		}
		p.Distribution[index[def.ID]].TargetPercent = int(weights[def.ID].Mul(hundred).Round(0).IntPart())
	}

	if len(p.Bets) == 0 {
		cheapest, err := a.catalog.Cheapest(plan.GameIDs()...)
		if err != nil {
			return Portfolio{}, err
		}
		if plan.Budget.GreaterThanOrEqual(cheapest.UnitCost) {
			bet, err := lottery.Generate(cheapest, src)
			if err != nil {
				return Portfolio{}, err
			}
			p.Bets = []lottery.Bet{bet.WithRationale(FallbackRationale)}
			p.Distribution = []Slice{{GameID: cheapest.ID, Name: cheapest.DisplayName(), TargetPercent: 100}}
			p.Fallback = true

			a.logger.Info("No slice affords a bet, falling back to cheapest game",
				"budget", plan.Budget.StringFixed(2),
				"game", cheapest.ID,
				"cost", cheapest.UnitCost.StringFixed(2))
		} else {
			a.logger.Info("Budget below the cheapest referenced game",
				"budget", plan.Budget.StringFixed(2),
				"cheapest", cheapest.UnitCost.StringFixed(2))
		}
	}

	p = Summarize(p)
	if plan.Featured != "" {
		p.Distribution = featureFirst(p.Distribution, plan.Featured)
	}
	return p, nil
}

func (a *Allocator) generate(def lottery.GameDefinition, src lottery.Source) (lottery.Bet, error) {
	bet, err := lottery.Generate(def, src)
	if err != nil {
		return lottery.Bet{}, err
	}
	if len(a.strategies) > 0 {
		i, err := src.IntN(len(a.strategies))
		if err != nil {
			return lottery.Bet{}, fmt.Errorf("pick strategy: %w", err)
		}
		bet = bet.WithRationale(a.strategies[i])
	}
	return bet, nil
}

// BetCount returns how many whole bets of unitCost fit in amount, rounding
// toward zero. Non-positive amounts or costs buy nothing; counts beyond
// math.MaxInt32 saturate there.
func BetCount(amount, unitCost decimal.Decimal) int {
	if !amount.IsPositive() || !unitCost.IsPositive() {
		return 0
	}
	q, _ := amount.QuoRem(unitCost, 0)
	if q.GreaterThan(maxCount) {
		return math.MaxInt32
	}
	return int(q.IntPart())
}

func featureFirst(dist []Slice, gameID string) []Slice {
	i := slices.IndexFunc(dist, func(s Slice) bool { return s.GameID == gameID })
	if i <= 0 {
		return dist
	}
	out := make([]Slice, 0, len(dist))
	out = append(out, dist[i])
	out = append(out, dist[:i]...)
	out = append(out, dist[i+1:]...)
	return out
}
