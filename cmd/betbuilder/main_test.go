package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/betbuilder/cmd/betbuilder/shared"
	"github.com/lox/betbuilder/internal/config"
	"github.com/lox/betbuilder/lottery"
	"github.com/lox/betbuilder/portfolio"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("betbuilder"), kong.Vars{"version": "test"}, kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestParseAllocateFlags(t *testing.T) {
	t.Setenv("BETBUILDER_SEED", "42")
	cli, ctx := parse(t, "allocate", "25.50", "-w", "quina=0.6", "-w", "lotofacil=0.4", "--featured", "lotofacil", "--income", "3000", "--expenses", "2500")

	assert.True(t, strings.HasPrefix(ctx.Command(), "allocate"), ctx.Command())
	require.NotNil(t, cli.Seed)
	assert.Equal(t, int64(42), *cli.Seed)
	assert.True(t, cli.Allocate.Budget.Equal(decimal.RequireFromString("25.50")))
	assert.Equal(t, []string{"quina=0.6", "lotofacil=0.4"}, cli.Allocate.Weight)
	assert.True(t, cli.Allocate.Income.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, "weekly", cli.Allocate.Plan)
	assert.Equal(t, "text", cli.LogFormat)
}

func TestAllocatePlanOverrides(t *testing.T) {
	cfg := config.Default()

	cmd := AllocateCmd{Plan: "weekly"}
	plan, err := cmd.plan(cfg)
	require.NoError(t, err)
	assert.True(t, plan.Budget.Equal(config.DefaultBudget))
	assert.Equal(t, "lotofacil", plan.Featured)

	cmd = AllocateCmd{
		Plan:     "weekly",
		Budget:   decimal.NewFromInt(20),
		Weight:   []string{"quina=1"},
		Featured: "quina",
	}
	plan, err = cmd.plan(cfg)
	require.NoError(t, err)
	assert.True(t, plan.Budget.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, []string{"quina"}, plan.GameIDs())
	assert.Equal(t, "quina", plan.Featured)

	_, err = (&AllocateCmd{Plan: "monthly"}).plan(cfg)
	assert.ErrorIs(t, err, config.ErrUnknownPlan)
}

func TestParseWeights(t *testing.T) {
	allocs, err := parseWeights([]string{"quina=0.5", " mega-sena = 0.25 "})
	require.NoError(t, err)
	require.Len(t, allocs, 2)
	assert.Equal(t, "quina", allocs[0].GameID)
	assert.Equal(t, "mega-sena", allocs[1].GameID)
	assert.True(t, allocs[1].Weight.Equal(decimal.RequireFromString("0.25")))

	for _, bad := range []string{"quina", "=0.5", "quina=lots"} {
		_, err := parseWeights([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestApplyPick(t *testing.T) {
	catalog := lottery.DefaultCatalog()
	lookup := func(id string) lottery.GameDefinition {
		def, err := catalog.Lookup(id)
		require.NoError(t, err)
		return def
	}

	t.Run("double", func(t *testing.T) {
		sel := lottery.NewSelection(lookup("mais-milionaria"))
		for _, tok := range []string{"5", "12", "19", "33", "41", "50", "+2", "+6"} {
			require.NoError(t, applyPick(sel, tok))
		}
		bet, err := sel.Finalize()
		require.NoError(t, err)
		assert.Equal(t, []int{5, 12, 19, 33, 41, 50}, bet.Numbers())
		assert.Equal(t, []int{2, 6}, bet.Secondary())
	})

	t.Run("columns", func(t *testing.T) {
		sel := lottery.NewSelection(lookup("super-sete"))
		for i, tok := range []string{"1=3", "2=0", "3=9", "4=9", "5=1", "6=4", "7=7"} {
			require.NoError(t, applyPick(sel, tok), i)
		}
		require.NoError(t, applyPick(sel, "7=-"))
		assert.Equal(t, lottery.Partial, sel.State())
		require.NoError(t, applyPick(sel, "7=2"))

		bet, err := sel.Finalize()
		require.NoError(t, err)
		assert.Equal(t, []int{3, 0, 9, 9, 1, 4, 2}, bet.Numbers())
	})

	t.Run("ticket", func(t *testing.T) {
		sel := lottery.NewSelection(lookup("federal"))
		require.NoError(t, applyPick(sel, "4521"))
		bet, err := sel.Finalize()
		require.NoError(t, err)
		assert.Equal(t, []int{4521}, bet.Numbers())
	})

	t.Run("errors", func(t *testing.T) {
		sel := lottery.NewSelection(lookup("quina"))
		assert.ErrorIs(t, applyPick(sel, "81"), lottery.ErrValueOutOfRange)
		assert.ErrorIs(t, applyPick(sel, "+3"), lottery.ErrLayoutMismatch)
		assert.ErrorIs(t, applyPick(sel, "1=3"), lottery.ErrLayoutMismatch)
		assert.Error(t, applyPick(sel, "seven"))
		assert.Error(t, applyPick(sel, "x=3"))
	})
}

func TestDescribeLayout(t *testing.T) {
	tests := []struct {
		layout lottery.Layout
		want   string
	}{
		{lottery.SimpleLayout{Pool: lottery.Pool{Min: 1, Max: 25, Count: 15}}, "15 of 1-25"},
		{lottery.DefaultDoubleLayout(), "6 of 1-50 + 2 of 1-6"},
		{lottery.DefaultColumnsLayout(), "7 columns of 0-9"},
		{lottery.DefaultOutcomeLayout(), "14 slots of {1,0,2}"},
		{lottery.DefaultTicketLayout(), "ticket 0-99999"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, describeLayout(tt.layout))
	}
}

func TestCheckGuardWarnsWithoutBlocking(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	v := checkGuard(logger, portfolio.NewGuard(decimal.NewFromInt(3000), decimal.NewFromInt(2500)), decimal.NewFromInt(150))
	assert.Equal(t, portfolio.GuardOverLimit, v.Status)
	assert.Contains(t, buf.String(), "exceeds the safe limit")

	buf.Reset()
	v = checkGuard(logger, portfolio.NewGuard(decimal.NewFromInt(1000), decimal.NewFromInt(1200)), decimal.NewFromInt(10))
	assert.Equal(t, portfolio.GuardCrisis, v.Status)
	assert.Contains(t, buf.String(), "not advised")
}

func TestRenderPortfolio(t *testing.T) {
	catalog := lottery.DefaultCatalog()
	plan := portfolio.DefaultPlan(decimal.NewFromInt(50))
	p, err := portfolio.NewAllocator(catalog).Allocate(plan, (&Globals{Seed: ptr(int64(1))}).Source())
	require.NoError(t, err)

	var buf bytes.Buffer
	renderPortfolio(&buf, catalog, p, true)
	out := buf.String()
	assert.Contains(t, out, "Lotofácil")
	assert.Contains(t, out, "of 50.00")
	assert.Equal(t, p.TotalBets, strings.Count(out, "\n  ")) // one rationale line per bet

	buf.Reset()
	renderPortfolio(&buf, catalog, portfolio.Portfolio{Budget: decimal.NewFromInt(1)}, false)
	assert.Contains(t, buf.String(), "does not cover any bet")
}

func TestSimulateIsReproducible(t *testing.T) {
	cfg := config.Default()
	plan, err := cfg.Plan(config.DefaultPlanName)
	require.NoError(t, err)

	cmd := SimulateCmd{Runs: 50, MinBudget: decimal.NewFromInt(1), MaxBudget: decimal.NewFromInt(60)}
	logger := log.New(io.Discard)

	a, err := cmd.simulate(context.Background(), cfg.Catalog, plan, 99, 3, logger)
	require.NoError(t, err)
	b, err := cmd.simulate(context.Background(), cfg.Catalog, plan, 99, 3, logger)
	require.NoError(t, err)

	require.NoError(t, a.Validate())
	assert.Equal(t, 50, a.Runs)
	assert.Equal(t, a.TotalBets, b.TotalBets)
	assert.True(t, a.TotalSpent.Equal(b.TotalSpent))
	assert.InDelta(t, a.Mean(), b.Mean(), 1e-9)
	assert.Equal(t, a.FallbackRuns+a.EmptyRuns, b.FallbackRuns+b.EmptyRuns)
}

func TestSimulateStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	plan, err := cfg.Plan(config.DefaultPlanName)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd := SimulateCmd{Runs: 10, MinBudget: decimal.NewFromInt(1), MaxBudget: decimal.NewFromInt(10)}
	_, err = cmd.simulate(ctx, cfg.Catalog, plan, 1, 2, log.New(io.Discard))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoggerFormats(t *testing.T) {
	var buf bytes.Buffer
	logger := shared.NewLogger(&buf, false, "json")
	logger.Debug("hidden")
	logger.Info("Allocated", "bets", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"Allocated"`)
	assert.Contains(t, out, `"bets":3`)
}

func ptr[T any](v T) *T { return &v }
