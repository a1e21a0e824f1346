package lottery

import (
	"fmt"
	"strconv"
	"strings"
)

// Analysis summarises the shape of a bet's numbers.
type Analysis struct {
	Odd       int
	Even      int
	Sequences int // adjacent pairs that differ by exactly one
	Sum       int
}

// Analyze inspects the primary numbers of a bet.
func Analyze(bet Bet) Analysis {
	var a Analysis
	for i, v := range bet.numbers {
		if v%2 != 0 {
			a.Odd++
		} else {
			a.Even++
		}
		a.Sum += v
		if i > 0 && bet.numbers[i-1]+1 == v {
			a.Sequences++
		}
	}
	return a
}

// Confidence scores attached by Annotate fall in [7.5, 9.8].
const (
	minConfidenceTenths = 75
	maxConfidenceTenths = 98
)

// Annotate attaches a rationale derived from Analyze and a confidence score
// drawn from src. Both are presentation annotations with no effect on the bet.
func Annotate(def GameDefinition, bet Bet, src Source) (Bet, error) {
	tenths, err := src.IntN(maxConfidenceTenths - minConfidenceTenths + 1)
	if err != nil {
		return Bet{}, fmt.Errorf("annotate %s: %w", def.ID, err)
	}
	return bet.
		WithRationale(Rationale(def, Analyze(bet))).
		WithConfidence(float64(minConfidenceTenths+tenths) / 10), nil
}

// Rationale renders an analysis as a short explanation.
func Rationale(def GameDefinition, a Analysis) string {
	if a.Odd+a.Even == 0 {
		return "Analysis pending."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Balanced picks for %s: %d odd and %d even, sum %d.", def.DisplayName(), a.Odd, a.Even, a.Sum)
	if a.Sequences > 0 {
		fmt.Fprintf(&b, " %d consecutive pair(s).", a.Sequences)
	} else {
		b.WriteString(" Evenly spaced.")
	}
	return b.String()
}

// Format renders a bet as a single line such as "Quina: 05, 12, 33, 47, 80".
// Secondary picks follow a "+" separator.
func Format(def GameDefinition, bet Bet) string {
	width := 2
	if t, ok := def.Layout.(TicketLayout); ok {
		width = len(strconv.Itoa(t.Range - 1))
	} else if def.Kind() == DigitColumns || def.Kind() == TripleOutcome {
		width = 1
	}

	join := func(values []int) string {
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = fmt.Sprintf("%0*d", width, v)
		}
		return strings.Join(parts, ", ")
	}

	line := def.DisplayName() + ": " + join(bet.numbers)
	if len(bet.secondary) > 0 {
		line += " + " + join(bet.secondary)
	}
	return line
}
