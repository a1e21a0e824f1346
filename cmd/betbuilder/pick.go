package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lox/betbuilder/lottery"
)

type PickCmd struct {
	Game     string   `arg:"" help:"Game id"`
	Picks    []string `arg:"" optional:"" help:"Picks: N toggles a number, +N a secondary number, P=V sets position P (from 1), P=- clears it"`
	Annotate bool     `short:"a" help:"Attach a rationale and confidence score"`
}

func (c *PickCmd) Run(g *Globals) error {
	logger := g.Logger()
	cfg, err := g.Load(logger)
	if err != nil {
		return err
	}
	def, err := cfg.Catalog.Lookup(c.Game)
	if err != nil {
		return err
	}

	sel := lottery.NewSelection(def)
	for _, token := range c.Picks {
		if err := applyPick(sel, token); err != nil {
			return fmt.Errorf("pick %q: %w", token, err)
		}
		logger.Debug("Applied pick", "token", token, "state", sel.State())
	}

	bet, err := sel.Finalize()
	if err != nil {
		numbers, secondary := sel.Picks()
		logger.Warn("Selection incomplete", "state", sel.State(), "numbers", numbers, "secondary", secondary)
		return err
	}
	if c.Annotate {
		if bet, err = lottery.Annotate(def, bet, g.Source()); err != nil {
			return err
		}
	}
	renderBet(os.Stdout, def, bet)
	return nil
}

// applyPick applies one command-line token to sel.
func applyPick(sel *lottery.Selection, token string) error {
	token = strings.TrimSpace(token)
	if pos, val, ok := strings.Cut(token, "="); ok {
		index, err := strconv.Atoi(pos)
		if err != nil {
			return fmt.Errorf("invalid position %q", pos)
		}
		if val == "-" {
			return sel.ClearSlot(index - 1)
		}
		v, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid value %q", val)
		}
		return sel.SetSlot(index-1, v)
	}

	pool := lottery.PrimaryPool
	if rest, ok := strings.CutPrefix(token, "+"); ok {
		pool, token = lottery.SecondaryPool, rest
	}
	v, err := strconv.Atoi(token)
	if err != nil {
		return fmt.Errorf("invalid number %q", token)
	}
	if sel.Game().Kind() == lottery.FixedTicket {
		return sel.SetTicket(v)
	}
	return sel.ToggleIn(pool, v)
}
