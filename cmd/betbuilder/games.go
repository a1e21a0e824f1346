package main

import (
	"fmt"
	"os"
)

type GamesCmd struct {
	Plans bool `help:"Also list configured plans"`
}

func (c *GamesCmd) Run(g *Globals) error {
	logger := g.Logger()
	cfg, err := g.Load(logger)
	if err != nil {
		return err
	}

	renderCatalog(os.Stdout, cfg.Catalog)

	if c.Plans {
		fmt.Println()
		for _, name := range cfg.PlanNames() {
			plan, err := cfg.Plan(name)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", headerStyle.Render(name), moneyStyle.Render(plan.Budget.StringFixed(2)))
			for _, a := range plan.Allocations {
				marker := " "
				if a.GameID == plan.Featured {
					marker = "*"
				}
				fmt.Printf(" %s %-16s %s\n", marker, a.GameID, a.Weight.String())
			}
		}
	}
	return nil
}
