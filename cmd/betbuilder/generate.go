package main

import (
	"fmt"
	"os"

	"github.com/lox/betbuilder/internal/config"
	"github.com/lox/betbuilder/lottery"
	"github.com/lox/betbuilder/portfolio"
)

type GenerateCmd struct {
	Game     string `arg:"" help:"Game id (see 'betbuilder games')"`
	Count    int    `short:"n" default:"1" help:"Number of bets to generate"`
	Annotate bool   `short:"a" help:"Attach a rationale and confidence score"`
}

func (c *GenerateCmd) Run(g *Globals) error {
	if c.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", c.Count)
	}

	logger := g.Logger()
	cfg, err := g.Load(logger)
	if err != nil {
		return err
	}
	def, err := cfg.Catalog.Lookup(c.Game)
	if err != nil {
		return err
	}

	src := g.Source()
	for i := 0; i < c.Count; i++ {
		bet, err := lottery.Generate(def, src)
		if err != nil {
			return err
		}
		if c.Annotate {
			if bet, err = lottery.Annotate(def, bet, src); err != nil {
				return err
			}
		}
		renderBet(os.Stdout, def, bet)
	}
	logger.Debug("Generated bets", "game", def.ID, "count", c.Count, "unit_cost", def.UnitCost.StringFixed(2))
	return nil
}

// annotatePortfolio replaces each bet's strategy label with a rationale and
// confidence score. Costs are untouched, so the aggregates stay valid.
func annotatePortfolio(cfg *config.Config, p portfolio.Portfolio, src lottery.Source) (portfolio.Portfolio, error) {
	bets := make([]lottery.Bet, len(p.Bets))
	for i, bet := range p.Bets {
		def, err := cfg.Catalog.Lookup(bet.GameID())
		if err != nil {
			return portfolio.Portfolio{}, err
		}
		if bets[i], err = lottery.Annotate(def, bet, src); err != nil {
			return portfolio.Portfolio{}, err
		}
	}
	p.Bets = bets
	return p, nil
}
