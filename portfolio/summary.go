package portfolio

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Summarize recomputes a portfolio's aggregates from its bets: totals,
// per-game counts and spend, and display percentages. Existing slices keep
// their order, names and target percents; games with bets but no slice are
// appended in bet order, named by game id since no catalog is at hand.
// Applying Summarize twice gives the same result.
func Summarize(p Portfolio) Portfolio {
	out := p
	out.Bets = slices.Clone(p.Bets)

	counts := make(map[string]int)
	spend := make(map[string]decimal.Decimal)
	var order []string
	total := decimal.Zero

	for _, bet := range p.Bets {
		id := bet.GameID()
		if _, seen := counts[id]; !seen {
			order = append(order, id)
		}
		counts[id]++
		spend[id] = spend[id].Add(bet.Cost())
		total = total.Add(bet.Cost())
	}

	dist := make([]Slice, 0, len(order))
	added := make(map[string]bool, len(order))
	for _, s := range p.Distribution {
		if counts[s.GameID] == 0 || added[s.GameID] {
			continue
		}
		s.BetCount, s.Spend = counts[s.GameID], spend[s.GameID]
		dist = append(dist, s)
		added[s.GameID] = true
	}
	for _, id := range order {
		if added[id] {
			continue
		}
		dist = append(dist, Slice{GameID: id, Name: id, BetCount: counts[id], Spend: spend[id]})
		added[id] = true
	}
	assignPercents(dist, total)

	out.TotalSpent = total
	out.TotalBets = len(p.Bets)
	out.Distribution = dist
	return out
}

// assignPercents gives each slice a whole percent of total using the
// largest-remainder method: every share is floored, then the missing points
// go one at a time to the largest fractional parts, ties to the larger slice.
// The percents sum to 100 and none is negative.
func assignPercents(dist []Slice, total decimal.Decimal) {
	if len(dist) == 0 {
		return
	}

	share := func(s Slice) decimal.Decimal { return s.Spend }
	if !total.IsPositive() {
		// zero-cost bets: fall back to bet counts
		total = decimal.Zero
		for _, s := range dist {
			total = total.Add(decimal.NewFromInt(int64(s.BetCount)))
		}
		share = func(s Slice) decimal.Decimal { return decimal.NewFromInt(int64(s.BetCount)) }
	}

	fractions := make([]decimal.Decimal, len(dist))
	order := make([]int, len(dist))
	sum := 0
	for i := range dist {
		exact := share(dist[i]).Mul(hundred).Div(total)
		whole := exact.Floor()
		dist[i].Percent = int(whole.IntPart())
		fractions[i] = exact.Sub(whole)
		order[i] = i
		sum += dist[i].Percent
	}

	slices.SortStableFunc(order, func(a, b int) int {
		if c := fractions[b].Cmp(fractions[a]); c != 0 {
			return c
		}
		return share(dist[b]).Cmp(share(dist[a]))
	})
	for k := 0; k < 100-sum; k++ {
		dist[order[k%len(order)]].Percent++
	}
}
