package lottery

import (
	"errors"

	"github.com/shopspring/decimal"
)

// scriptedSource replays fixed draws, reduced modulo n.
type scriptedSource struct {
	values []int
	index  int
}

func script(values ...int) *scriptedSource {
	return &scriptedSource{values: values}
}

func (s *scriptedSource) IntN(n int) (int, error) {
	if s.index >= len(s.values) {
		return 0, nil
	}
	v := s.values[s.index] % n
	s.index++
	return v, nil
}

var errEntropy = errors.New("entropy unavailable")

type failingSource struct{}

func (failingSource) IntN(int) (int, error) { return 0, errEntropy }

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func simpleGame(min, max, count int) GameDefinition {
	return GameDefinition{
		ID:       "simple",
		Name:     "Simple",
		Layout:   SimpleLayout{Pool: Pool{Min: min, Max: max, Count: count}},
		UnitCost: money("3.00"),
	}
}

func doubleGame() GameDefinition {
	return GameDefinition{ID: "double", Name: "Double", Layout: DefaultDoubleLayout(), UnitCost: money("6.00")}
}

func columnsGame() GameDefinition {
	return GameDefinition{ID: "columns", Name: "Columns", Layout: DefaultColumnsLayout(), UnitCost: money("3.00")}
}

func outcomesGame() GameDefinition {
	return GameDefinition{ID: "outcomes", Name: "Outcomes", Layout: DefaultOutcomeLayout(), UnitCost: money("4.00")}
}

func ticketGame() GameDefinition {
	return GameDefinition{ID: "ticket", Name: "Ticket", Layout: DefaultTicketLayout(), UnitCost: money("4.00")}
}
