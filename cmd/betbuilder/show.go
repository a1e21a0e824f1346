package main

import (
	"fmt"
	"os"

	"github.com/lox/betbuilder/internal/export"
)

type ShowCmd struct {
	File string `arg:"" type:"existingfile" help:"Portfolio exported with 'allocate --out'"`
	Bets bool   `short:"b" help:"List every bet"`
}

func (c *ShowCmd) Run(g *Globals) error {
	logger := g.Logger()
	cfg, err := g.Load(logger)
	if err != nil {
		return err
	}

	doc, err := export.ReadFile(c.File)
	if err != nil {
		return err
	}
	p, err := doc.Portfolio(cfg.Catalog)
	if err != nil {
		return err
	}
	if spent := p.TotalSpent.StringFixed(2); spent != doc.TotalSpent {
		logger.Warn("File totals disagree with its bets, using the bets", "file", doc.TotalSpent, "bets", spent)
	}

	fmt.Printf("%s %s (%s)\n\n", headerStyle.Render("portfolio"), doc.ID, doc.GeneratedAt.Local().Format("2006-01-02 15:04"))
	renderPortfolio(os.Stdout, cfg.Catalog, p, c.Bets)
	return nil
}
