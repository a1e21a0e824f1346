package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lox/betbuilder/portfolio"
)

// RunResult represents the outcome of a single allocation run
type RunResult struct {
	Seed     int64           // RNG seed for this run (for replay)
	Budget   decimal.Decimal // Budget handed to the allocator
	Spent    decimal.Decimal // Total cost of the generated bets
	Bets     int             // Number of bets generated
	Fallback bool            // Was the single cheapest-game bet forced?
	GameBets map[string]int  // Bets per game id
}

// FromPortfolio summarises an allocation result for aggregation.
func FromPortfolio(seed int64, p portfolio.Portfolio) RunResult {
	games := make(map[string]int, len(p.Distribution))
	for _, s := range p.Distribution {
		games[s.GameID] += s.BetCount
	}
	return RunResult{
		Seed:     seed,
		Budget:   p.Budget,
		Spent:    p.TotalSpent,
		Bets:     p.TotalBets,
		Fallback: p.Fallback,
		GameBets: games,
	}
}

// Utilization returns the percentage of the budget that was spent.
func (r RunResult) Utilization() float64 {
	if !r.Budget.IsPositive() {
		return 0
	}
	return r.Spent.Mul(decimal.NewFromInt(100)).Div(r.Budget).InexactFloat64()
}

// Statistics aggregates many allocation runs. Moments are tracked over
// budget utilization in percent.
type Statistics struct {
	Runs   int
	SumU   float64
	SumU2  float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation

	TotalSpent decimal.Decimal
	TotalBets  int
	GameBets   map[string]int

	FallbackRuns int // Runs where no slice afforded a bet
	EmptyRuns    int // Runs with a budget below every referenced cost
	MinBets      int
	MaxBets      int
}

// Mean returns the arithmetic mean utilization
func (s *Statistics) Mean() float64 {
	if s.Runs == 0 {
		return 0
	}
	return s.SumU / float64(s.Runs)
}

// Variance returns the sample variance of utilization
func (s *Statistics) Variance() float64 {
	if s.Runs < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumU2 - float64(s.Runs)*mean*mean) / float64(s.Runs-1)
	if v < 0 {
		// float cancellation on identical values
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation of utilization
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Runs == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Runs))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a run result into the statistics
func (s *Statistics) Add(result RunResult) {
	u := result.Utilization()
	s.Runs++
	s.SumU += u
	s.SumU2 += u * u
	s.Values = append(s.Values, u)

	s.TotalSpent = s.TotalSpent.Add(result.Spent)
	s.TotalBets += result.Bets
	if s.GameBets == nil {
		s.GameBets = make(map[string]int)
	}
	for id, n := range result.GameBets {
		s.GameBets[id] += n
	}

	switch {
	case result.Fallback:
		s.FallbackRuns++
	case result.Bets == 0:
		s.EmptyRuns++
	}

	if s.Runs == 1 || result.Bets < s.MinBets {
		s.MinBets = result.Bets
	}
	if result.Bets > s.MaxBets {
		s.MaxBets = result.Bets
	}
}

// Merge folds other into s. Workers aggregate locally and merge at the end.
func (s *Statistics) Merge(other *Statistics) {
	if other == nil || other.Runs == 0 {
		return
	}
	if s.Runs == 0 || other.MinBets < s.MinBets {
		s.MinBets = other.MinBets
	}
	if other.MaxBets > s.MaxBets {
		s.MaxBets = other.MaxBets
	}

	s.Runs += other.Runs
	s.SumU += other.SumU
	s.SumU2 += other.SumU2
	s.Values = append(s.Values, other.Values...)
	s.TotalSpent = s.TotalSpent.Add(other.TotalSpent)
	s.TotalBets += other.TotalBets
	if s.GameBets == nil {
		s.GameBets = make(map[string]int)
	}
	for id, n := range other.GameBets {
		s.GameBets[id] += n
	}
	s.FallbackRuns += other.FallbackRuns
	s.EmptyRuns += other.EmptyRuns
}

// MeanBets returns the average number of bets per run
func (s *Statistics) MeanBets() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.TotalBets) / float64(s.Runs)
}

// Median returns the median utilization
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the utilization at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks that per-game bet counts add up to the total
func (s *Statistics) IsLedgerBalanced() bool {
	sum := 0
	for _, n := range s.GameBets {
		sum += n
	}
	return sum == s.TotalBets
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: per-game bets do not add up to %d", s.TotalBets)
	}

	if s.Runs <= 0 {
		return fmt.Errorf("invalid runs count: %d", s.Runs)
	}

	if len(s.Values) != s.Runs {
		return fmt.Errorf("values array length (%d) does not match runs count (%d)",
			len(s.Values), s.Runs)
	}

	if s.FallbackRuns+s.EmptyRuns > s.Runs {
		return fmt.Errorf("fallback and empty runs (%d) exceed total runs (%d)",
			s.FallbackRuns+s.EmptyRuns, s.Runs)
	}

	for _, u := range s.Values {
		if u < 0 {
			return fmt.Errorf("negative utilization %.4f", u)
		}
	}

	return nil
}
