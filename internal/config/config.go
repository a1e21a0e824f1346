// Package config loads game catalogs and allocation plans from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"github.com/lox/betbuilder/lottery"
	"github.com/lox/betbuilder/portfolio"
)

// DefaultPlanName is the plan used when none is named.
const DefaultPlanName = "weekly"

// DefaultBudget is the weekly budget of the built-in plan.
var DefaultBudget = decimal.RequireFromString("50.00")

// ErrUnknownPlan is returned when a named plan is not configured.
var ErrUnknownPlan = errors.New("unknown plan")

// File is the raw shape of a betbuilder HCL file.
type File struct {
	Games []GameBlock `hcl:"game,block"`
	Plans []PlanBlock `hcl:"plan,block"`
}

// GameBlock defines or overrides one game. The layout attribute selects
// which of the remaining attributes apply.
type GameBlock struct {
	ID     string    `hcl:"id,label"`
	Name   string    `hcl:"name,optional"`
	Layout string    `hcl:"layout,optional"`
	Cost   cty.Value `hcl:"cost"`

	// simple
	Min   int `hcl:"min,optional"`
	Max   int `hcl:"max,optional"`
	Count int `hcl:"count,optional"`

	// double
	Primary   *PoolBlock `hcl:"primary,block"`
	Secondary *PoolBlock `hcl:"secondary,block"`

	// columns
	Columns int `hcl:"columns,optional"`
	Digits  int `hcl:"digits,optional"`

	// outcomes
	Slots    int   `hcl:"slots,optional"`
	Outcomes []int `hcl:"outcomes,optional"`

	// ticket
	Range int `hcl:"range,optional"`
}

// PoolBlock is a number pool inside a double layout game.
type PoolBlock struct {
	Min   int `hcl:"min"`
	Max   int `hcl:"max"`
	Count int `hcl:"count"`
}

// PlanBlock is a named allocation plan.
type PlanBlock struct {
	Name        string            `hcl:"name,label"`
	Budget      cty.Value         `hcl:"budget"`
	Featured    string            `hcl:"featured,optional"`
	Allocations []AllocationBlock `hcl:"allocation,block"`
}

// AllocationBlock weights one game within a plan.
type AllocationBlock struct {
	GameID string    `hcl:"game,label"`
	Weight cty.Value `hcl:"weight"`
}

// Config is a validated catalog plus the plans that reference it.
type Config struct {
	Catalog *lottery.Catalog
	plans   map[string]portfolio.Plan
}

// Default returns the built-in catalog and the weekly plan.
func Default() *Config {
	return &Config{
		Catalog: lottery.DefaultCatalog(),
		plans:   map[string]portfolio.Plan{DefaultPlanName: portfolio.DefaultPlan(DefaultBudget)},
	}
}

// Plan returns the named plan.
func (c *Config) Plan(name string) (portfolio.Plan, error) {
	p, ok := c.plans[name]
	if !ok {
		return portfolio.Plan{}, fmt.Errorf("%w: %q", ErrUnknownPlan, name)
	}
	p.Allocations = slices.Clone(p.Allocations)
	return p, nil
}

// PlanNames returns the configured plan names, sorted.
func (c *Config) PlanNames() []string {
	names := make([]string, 0, len(c.plans))
	for name := range c.plans {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load reads an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body, filename)
}

// Parse decodes HCL source held in memory; filename is used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body, filename)
}
