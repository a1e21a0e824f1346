package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/lox/betbuilder/cmd/betbuilder/shared"
	"github.com/lox/betbuilder/internal/randutil"
	"github.com/lox/betbuilder/internal/statistics"
	"github.com/lox/betbuilder/lottery"
	"github.com/lox/betbuilder/portfolio"
)

type SimulateCmd struct {
	Runs      int             `short:"n" default:"1000" help:"Number of allocation runs"`
	Workers   int             `default:"0" help:"Parallel workers (0 = number of CPUs)"`
	Plan      string          `short:"p" default:"weekly" help:"Plan name from the config file"`
	MinBudget decimal.Decimal `default:"1.00" help:"Smallest budget drawn per run"`
	MaxBudget decimal.Decimal `default:"100.00" help:"Largest budget drawn per run"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	if c.Runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", c.Runs)
	}
	if !c.MinBudget.IsPositive() || c.MaxBudget.LessThan(c.MinBudget) {
		return fmt.Errorf("budget range must satisfy 0 < min <= max, got %s..%s", c.MinBudget, c.MaxBudget)
	}

	logger := g.Logger()
	cfg, err := g.Load(logger)
	if err != nil {
		return err
	}
	plan, err := cfg.Plan(c.Plan)
	if err != nil {
		return err
	}

	seed := time.Now().UnixNano()
	if g.Seed != nil {
		seed = *g.Seed
	}
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, c.Runs)

	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	logger.Info("Starting simulation", "runs", c.Runs, "workers", workers, "plan", c.Plan, "seed", seed)
	start := time.Now()
	stats, err := c.simulate(ctx, cfg.Catalog, plan, seed, workers, logger)
	if err != nil {
		return err
	}
	if err := stats.Validate(); err != nil {
		return fmt.Errorf("statistics: %w", err)
	}

	printStatistics(os.Stdout, stats, time.Since(start))
	return nil
}

// simulate runs c.Runs allocations with budgets drawn from the configured
// range. Each worker derives its own generator from the master seed and
// aggregates locally, so results depend only on seed and worker count.
func (c *SimulateCmd) simulate(ctx context.Context, catalog *lottery.Catalog, plan portfolio.Plan, seed int64, workers int, logger *log.Logger) (*statistics.Statistics, error) {
	minCents := c.MinBudget.Shift(2).IntPart()
	span := c.MaxBudget.Shift(2).IntPart() - minCents + 1

	master := randutil.New(seed)
	perWorker, remainder := c.Runs/workers, c.Runs%workers
	results := make([]*statistics.Statistics, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		runs := perWorker
		if w < remainder {
			runs++
		}
		workerSeed := master.Int64()

		g.Go(func() error {
			rng := randutil.New(workerSeed)
			src := randutil.FromRand(rng)
			allocator := portfolio.NewAllocator(catalog)
			stats := &statistics.Statistics{}

			for i := 0; i < runs; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				run := plan
				run.Budget = decimal.New(minCents+rng.Int64N(span), -2)

				p, err := allocator.Allocate(run, src)
				if err != nil {
					return fmt.Errorf("worker %d run %d: %w", w, i, err)
				}
				stats.Add(statistics.FromPortfolio(workerSeed, p))
			}
			logger.Debug("Worker finished", "worker", w, "runs", runs, "mean_utilization", stats.Mean())
			results[w] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for _, s := range results {
		total.Merge(s)
	}
	return total, nil
}

func printStatistics(w io.Writer, stats *statistics.Statistics, elapsed time.Duration) {
	low, high := stats.ConfidenceInterval95()
	fmt.Fprintf(w, "%s\n", headerStyle.Render("budget utilization"))
	fmt.Fprintf(w, "mean    %s ± %.2f (95%% CI %.2f-%.2f)\n",
		percentStyle.Render(fmt.Sprintf("%.2f%%", stats.Mean())), stats.StdError(), low, high)
	fmt.Fprintf(w, "median  %.2f%%  p10 %.2f%%  p90 %.2f%%\n",
		stats.Median(), stats.Percentile(0.10), stats.Percentile(0.90))
	fmt.Fprintf(w, "bets    %.2f per run (min %d, max %d)\n", stats.MeanBets(), stats.MinBets, stats.MaxBets)
	fmt.Fprintf(w, "spent   %s total\n", moneyStyle.Render(stats.TotalSpent.StringFixed(2)))
	fmt.Fprintf(w, "special %d fallback, %d empty\n\n", stats.FallbackRuns, stats.EmptyRuns)

	ids := make([]string, 0, len(stats.GameBets))
	for id := range stats.GameBets {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", headerStyle.Render("game"), headerStyle.Render("bets"), headerStyle.Render("share"))
	for _, id := range ids {
		n := stats.GameBets[id]
		share := 0.0
		if stats.TotalBets > 0 {
			share = float64(n) / float64(stats.TotalBets) * 100
		}
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", gameStyle.Render(id), n, share)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d runs in %v\n", stats.Runs, elapsed.Truncate(time.Millisecond))
}
