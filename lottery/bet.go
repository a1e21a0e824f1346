package lottery

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Bet is one finalized combination for a single game. Bets are values;
// accessors return copies so a Bet never changes after construction.
type Bet struct {
	gameID     string
	numbers    []int
	secondary  []int
	cost       decimal.Decimal
	rationale  string
	confidence float64
}

// NewBet builds a bet from already validated numbers. secondary is only
// meaningful for DoubleWithSecondary games.
func NewBet(gameID string, numbers, secondary []int, cost decimal.Decimal) Bet {
	return Bet{
		gameID:    gameID,
		numbers:   slices.Clone(numbers),
		secondary: slices.Clone(secondary),
		cost:      cost,
	}
}

// GameID returns the id of the game this bet is for.
func (b Bet) GameID() string { return b.gameID }

// Numbers returns the primary picks, the column digits, the slot outcomes,
// or the single ticket number, depending on the layout.
func (b Bet) Numbers() []int { return slices.Clone(b.numbers) }

// Secondary returns the secondary pool picks (empty unless DoubleWithSecondary).
func (b Bet) Secondary() []int { return slices.Clone(b.secondary) }

// Cost is the price paid for this bet.
func (b Bet) Cost() decimal.Decimal { return b.cost }

// Rationale is an opaque annotation attached by the caller.
func (b Bet) Rationale() string { return b.rationale }

// Confidence is an opaque 0-10 score; zero means unscored.
func (b Bet) Confidence() float64 { return b.confidence }

// Encoded returns the single signed sequence used by legacy collaborators:
// primary values followed by secondary values negated.
func (b Bet) Encoded() []int {
	out := make([]int, 0, len(b.numbers)+len(b.secondary))
	out = append(out, b.numbers...)
	for _, v := range b.secondary {
		out = append(out, -v)
	}
	return out
}

// WithCost returns a copy of b priced at cost.
func (b Bet) WithCost(cost decimal.Decimal) Bet {
	b.cost = cost
	return b
}

// WithRationale returns a copy of b carrying the given annotation.
func (b Bet) WithRationale(rationale string) Bet {
	b.rationale = rationale
	return b
}

// WithConfidence returns a copy of b with the score clamped to [0, 10].
func (b Bet) WithConfidence(score float64) Bet {
	b.confidence = min(max(score, 0), 10)
	return b
}

// DecodeBet splits a legacy signed sequence back into primary and
// secondary picks.
func DecodeBet(gameID string, encoded []int, cost decimal.Decimal) Bet {
	var numbers, secondary []int
	for _, v := range encoded {
		if v < 0 {
			secondary = append(secondary, -v)
		} else {
			numbers = append(numbers, v)
		}
	}
	return NewBet(gameID, numbers, secondary, cost)
}
