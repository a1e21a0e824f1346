package lottery

import (
	"fmt"
	"strings"
)

// LayoutKind identifies the structural shape of a game's bets.
type LayoutKind uint8

const (
	Simple LayoutKind = iota
	DoubleWithSecondary
	DigitColumns
	TripleOutcome
	FixedTicket
)

var layoutNames = [...]string{
	Simple:              "simple",
	DoubleWithSecondary: "double",
	DigitColumns:        "columns",
	TripleOutcome:       "outcomes",
	FixedTicket:         "ticket",
}

// String returns the configuration name of the layout kind.
func (k LayoutKind) String() string {
	if int(k) < len(layoutNames) {
		return layoutNames[k]
	}
	return fmt.Sprintf("layout(%d)", k)
}

// ParseLayoutKind parses a configuration name such as "simple" or "double".
func ParseLayoutKind(s string) (LayoutKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range layoutNames {
		if name == s {
			return LayoutKind(i), nil
		}
	}
	// Names used by the upstream catalog
	switch s {
	case "soccer":
		return TripleOutcome, nil
	case "digits":
		return DigitColumns, nil
	}
	return 0, fmt.Errorf("unknown layout %q", s)
}

// Layout is the closed set of per-kind parameters. Exactly one of the layout
// structs below implements it for each LayoutKind.
type Layout interface {
	Kind() LayoutKind
	validate() error
}

// Pool is a range of integers from which Count distinct values are picked.
type Pool struct {
	Min   int
	Max   int
	Count int
}

// Size returns the number of distinct values in the pool.
func (p Pool) Size() int { return p.Max - p.Min + 1 }

// Contains reports whether v lies within the pool's range.
func (p Pool) Contains(v int) bool { return v >= p.Min && v <= p.Max }

func (p Pool) validate() error {
	if p.Count < 1 {
		return fmt.Errorf("pick count must be > 0, got %d", p.Count)
	}
	if p.Min > p.Max {
		return fmt.Errorf("min %d exceeds max %d", p.Min, p.Max)
	}
	if p.Count > p.Size() {
		return fmt.Errorf("cannot pick %d distinct values from [%d, %d]", p.Count, p.Min, p.Max)
	}
	return nil
}

// SimpleLayout picks Count distinct integers from a single pool.
type SimpleLayout struct {
	Pool Pool
}

func (SimpleLayout) Kind() LayoutKind { return Simple }

func (l SimpleLayout) validate() error { return l.Pool.validate() }

// DoubleLayout picks from a primary pool and an independent secondary pool.
type DoubleLayout struct {
	Primary   Pool
	Secondary Pool
}

// DefaultDoubleLayout is 6 of 1-50 plus 2 clovers of 1-6.
func DefaultDoubleLayout() DoubleLayout {
	return DoubleLayout{
		Primary:   Pool{Min: 1, Max: 50, Count: 6},
		Secondary: Pool{Min: 1, Max: 6, Count: 2},
	}
}

func (DoubleLayout) Kind() LayoutKind { return DoubleWithSecondary }

func (l DoubleLayout) validate() error {
	if err := l.Primary.validate(); err != nil {
		return fmt.Errorf("primary pool: %w", err)
	}
	if l.Secondary.Min < 1 {
		// secondary values are negated in the legacy encoding, zero would be ambiguous
		return fmt.Errorf("secondary pool: min must be >= 1, got %d", l.Secondary.Min)
	}
	if err := l.Secondary.validate(); err != nil {
		return fmt.Errorf("secondary pool: %w", err)
	}
	return nil
}

// ColumnsLayout is a fixed-position vector with one digit per column.
type ColumnsLayout struct {
	Columns int
	Digits  int // each column holds a value in [0, Digits)
}

// DefaultColumnsLayout is 7 columns of 0-9.
func DefaultColumnsLayout() ColumnsLayout {
	return ColumnsLayout{Columns: 7, Digits: 10}
}

func (ColumnsLayout) Kind() LayoutKind { return DigitColumns }

func (l ColumnsLayout) validate() error {
	if l.Columns < 1 {
		return fmt.Errorf("columns must be > 0, got %d", l.Columns)
	}
	if l.Digits < 1 {
		return fmt.Errorf("digits must be > 0, got %d", l.Digits)
	}
	return nil
}

// OutcomeLayout assigns one outcome code to each of a fixed number of slots.
type OutcomeLayout struct {
	Slots    int
	Outcomes []int
}

// DefaultOutcomeLayout is 14 matches with home win (1), draw (0) and away win (2).
func DefaultOutcomeLayout() OutcomeLayout {
	return OutcomeLayout{Slots: 14, Outcomes: []int{1, 0, 2}}
}

func (OutcomeLayout) Kind() LayoutKind { return TripleOutcome }

func (l OutcomeLayout) validate() error {
	if l.Slots < 1 {
		return fmt.Errorf("slots must be > 0, got %d", l.Slots)
	}
	if len(l.Outcomes) == 0 {
		return fmt.Errorf("at least one outcome code is required")
	}
	seen := make(map[int]bool, len(l.Outcomes))
	for _, o := range l.Outcomes {
		if o < 0 {
			return fmt.Errorf("outcome codes must be >= 0, got %d", o)
		}
		if seen[o] {
			return fmt.Errorf("duplicate outcome code %d", o)
		}
		seen[o] = true
	}
	return nil
}

func (l OutcomeLayout) allows(v int) bool {
	for _, o := range l.Outcomes {
		if o == v {
			return true
		}
	}
	return false
}

// TicketLayout is a single opaque ticket number in [0, Range).
type TicketLayout struct {
	Range int
}

// DefaultTicketLayout draws tickets 0-99999.
func DefaultTicketLayout() TicketLayout {
	return TicketLayout{Range: 100000}
}

func (TicketLayout) Kind() LayoutKind { return FixedTicket }

func (l TicketLayout) validate() error {
	if l.Range < 1 {
		return fmt.Errorf("ticket range must be > 0, got %d", l.Range)
	}
	return nil
}
