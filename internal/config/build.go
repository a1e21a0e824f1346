package config

import (
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"github.com/lox/betbuilder/lottery"
	"github.com/lox/betbuilder/portfolio"
)

func decode(body hcl.Body, filename string) (*Config, error) {
	var file File
	if diags := gohcl.DecodeBody(body, nil, &file); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	catalog, err := file.catalog()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	cfg := Default()
	cfg.Catalog = catalog
	seen := make(map[string]bool, len(file.Plans))
	for _, block := range file.Plans {
		if seen[block.Name] {
			return nil, fmt.Errorf("%s: plan %q defined twice", filename, block.Name)
		}
		seen[block.Name] = true

		plan, err := block.plan(catalog)
		if err != nil {
			return nil, fmt.Errorf("%s: plan %q: %w", filename, block.Name, err)
		}
		cfg.plans[block.Name] = plan
	}
	return cfg, nil
}

// catalog merges the file's games over the built-in ones: a matching id
// replaces the default definition in place, new ids are appended.
func (f File) catalog() (*lottery.Catalog, error) {
	defs := lottery.DefaultCatalog().Games()
	for _, block := range f.Games {
		def, err := block.definition()
		if err != nil {
			return nil, fmt.Errorf("game %q: %w", block.ID, err)
		}
		i := slices.IndexFunc(defs, func(d lottery.GameDefinition) bool { return d.ID == def.ID })
		if i >= 0 {
			defs[i] = def
		} else {
			defs = append(defs, def)
		}
	}
	return lottery.NewCatalog(defs...)
}

func (g GameBlock) definition() (lottery.GameDefinition, error) {
	cost, err := decimalValue(g.Cost)
	if err != nil {
		return lottery.GameDefinition{}, fmt.Errorf("cost: %w", err)
	}

	kind := lottery.Simple
	if g.Layout != "" {
		if kind, err = lottery.ParseLayoutKind(g.Layout); err != nil {
			return lottery.GameDefinition{}, err
		}
	}

	var layout lottery.Layout
	switch kind {
	case lottery.Simple:
		layout = lottery.SimpleLayout{Pool: lottery.Pool{Min: g.Min, Max: g.Max, Count: g.Count}}
	case lottery.DoubleWithSecondary:
		l := lottery.DefaultDoubleLayout()
		if g.Primary != nil {
			l.Primary = g.Primary.pool()
		}
		if g.Secondary != nil {
			l.Secondary = g.Secondary.pool()
		}
		layout = l
	case lottery.DigitColumns:
		l := lottery.DefaultColumnsLayout()
		if g.Columns != 0 {
			l.Columns = g.Columns
		}
		if g.Digits != 0 {
			l.Digits = g.Digits
		}
		layout = l
	case lottery.TripleOutcome:
		l := lottery.DefaultOutcomeLayout()
		if g.Slots != 0 {
			l.Slots = g.Slots
		}
		if len(g.Outcomes) > 0 {
			l.Outcomes = slices.Clone(g.Outcomes)
		}
		layout = l
	case lottery.FixedTicket:
		l := lottery.DefaultTicketLayout()
		if g.Range != 0 {
			l.Range = g.Range
		}
		layout = l
	}

	return lottery.GameDefinition{ID: g.ID, Name: g.Name, Layout: layout, UnitCost: cost}, nil
}

func (p PoolBlock) pool() lottery.Pool {
	return lottery.Pool{Min: p.Min, Max: p.Max, Count: p.Count}
}

func (b PlanBlock) plan(catalog *lottery.Catalog) (portfolio.Plan, error) {
	budget, err := decimalValue(b.Budget)
	if err != nil {
		return portfolio.Plan{}, fmt.Errorf("budget: %w", err)
	}

	plan := portfolio.Plan{Budget: budget, Featured: b.Featured}
	for _, a := range b.Allocations {
		weight, err := decimalValue(a.Weight)
		if err != nil {
			return portfolio.Plan{}, fmt.Errorf("allocation %q weight: %w", a.GameID, err)
		}
		plan.Allocations = append(plan.Allocations, portfolio.Allocation{GameID: a.GameID, Weight: weight})
	}

	if err := plan.Validate(); err != nil {
		return portfolio.Plan{}, err
	}
	for _, id := range plan.GameIDs() {
		if _, err := catalog.Lookup(id); err != nil {
			return portfolio.Plan{}, err
		}
	}
	if plan.Featured != "" && !slices.Contains(plan.GameIDs(), plan.Featured) {
		return portfolio.Plan{}, fmt.Errorf("featured game %q is not allocated", plan.Featured)
	}
	return plan, nil
}

// decimalValue accepts either an HCL number or a string such as "3.50".
func decimalValue(v cty.Value) (decimal.Decimal, error) {
	if v.IsNull() || !v.IsWhollyKnown() {
		return decimal.Decimal{}, fmt.Errorf("value is not set")
	}
	switch v.Type() {
	case cty.Number:
		return decimal.NewFromString(v.AsBigFloat().Text('f', -1))
	case cty.String:
		return decimal.NewFromString(v.AsString())
	default:
		return decimal.Decimal{}, fmt.Errorf("expected number or string, got %s", v.Type().FriendlyName())
	}
}
