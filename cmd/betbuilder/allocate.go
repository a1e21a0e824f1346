package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/shopspring/decimal"

	"github.com/lox/betbuilder/internal/config"
	"github.com/lox/betbuilder/internal/export"
	"github.com/lox/betbuilder/portfolio"
)

type AllocateCmd struct {
	Budget   decimal.Decimal `arg:"" optional:"" help:"Budget to spend (defaults to the plan's budget)"`
	Plan     string          `short:"p" default:"weekly" help:"Plan name from the config file"`
	Weight   []string        `short:"w" help:"Override the plan with game=weight pairs, in order (repeatable)"`
	Featured string          `help:"Game to list first"`
	Bets     bool            `short:"b" help:"List every bet"`
	Annotate bool            `short:"a" help:"Attach rationales and confidence scores to bets"`
	Out      string          `short:"o" type:"path" help:"Export the portfolio to a TOML file"`

	Income   decimal.Decimal `help:"Monthly income for the spending guard"`
	Expenses decimal.Decimal `help:"Monthly expenses for the spending guard"`
}

func (c *AllocateCmd) Run(g *Globals) error {
	logger := g.Logger()
	cfg, err := g.Load(logger)
	if err != nil {
		return err
	}

	plan, err := c.plan(cfg)
	if err != nil {
		return err
	}

	checkGuard(logger, portfolio.NewGuard(c.Income, c.Expenses), plan.Budget)

	src := g.Source()
	p, err := portfolio.NewAllocator(cfg.Catalog, portfolio.WithLogger(logger)).Allocate(plan, src)
	if err != nil {
		return err
	}
	if c.Annotate {
		if p, err = annotatePortfolio(cfg, p, src); err != nil {
			return err
		}
	}

	renderPortfolio(os.Stdout, cfg.Catalog, p, c.Bets)

	if c.Out != "" {
		var seed int64
		if g.Seed != nil {
			seed = *g.Seed
		}
		if err := export.New(quartz.NewReal()).WriteFile(c.Out, p, seed); err != nil {
			return err
		}
		logger.Info("Exported portfolio", "path", c.Out, "bets", p.TotalBets)
	}
	return nil
}

// plan resolves the named plan and applies command-line overrides.
func (c *AllocateCmd) plan(cfg *config.Config) (portfolio.Plan, error) {
	plan, err := cfg.Plan(c.Plan)
	if err != nil {
		return portfolio.Plan{}, err
	}
	if len(c.Weight) > 0 {
		allocs, err := parseWeights(c.Weight)
		if err != nil {
			return portfolio.Plan{}, err
		}
		plan.Allocations = allocs
		plan.Featured = ""
	}
	if !c.Budget.IsZero() {
		plan.Budget = c.Budget
	}
	if c.Featured != "" {
		plan.Featured = c.Featured
	}
	return plan, nil
}

// parseWeights parses game=weight pairs, keeping their order.
func parseWeights(pairs []string) ([]portfolio.Allocation, error) {
	allocs := make([]portfolio.Allocation, 0, len(pairs))
	for _, pair := range pairs {
		id, raw, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("weight %q: expected game=weight", pair)
		}
		weight, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("weight %q: %w", pair, err)
		}
		allocs = append(allocs, portfolio.Allocation{GameID: strings.TrimSpace(id), Weight: weight})
	}
	return allocs, nil
}

// checkGuard warns when the budget breaks the spending guard. It never
// blocks the allocation.
func checkGuard(logger *log.Logger, guard portfolio.Guard, budget decimal.Decimal) portfolio.Verdict {
	v := guard.Check(budget)
	switch v.Status {
	case portfolio.GuardCrisis:
		logger.Warn("Expenses meet or exceed income, betting is not advised",
			"surplus", v.Surplus.StringFixed(2))
	case portfolio.GuardOverLimit:
		logger.Warn("Budget exceeds the safe limit",
			"budget", budget.StringFixed(2),
			"limit", v.Limit.StringFixed(2))
	case portfolio.GuardOK:
		logger.Debug("Budget within the safe limit", "headroom", v.Headroom().StringFixed(2))
	}
	return v
}
