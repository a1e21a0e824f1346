package lottery

import (
	"fmt"
	"slices"
)

// Source supplies random integers in [0, n). Implementations backed by an
// external entropy service may fail; such errors are returned unchanged.
type Source interface {
	IntN(n int) (int, error)
}

// Generate draws a structurally valid random bet for def. The bet is priced
// at the game's unit cost.
func Generate(def GameDefinition, src Source) (Bet, error) {
	var (
		numbers   []int
		secondary []int
		err       error
	)

	switch l := def.Layout.(type) {
	case SimpleLayout:
		numbers, err = drawPool(l.Pool, src)
	case DoubleLayout:
		if numbers, err = drawPool(l.Primary, src); err == nil {
			secondary, err = drawPool(l.Secondary, src)
		}
	case ColumnsLayout:
		numbers = make([]int, l.Columns)
		for i := range numbers {
			if numbers[i], err = src.IntN(l.Digits); err != nil {
				break
			}
		}
	case OutcomeLayout:
		numbers = make([]int, l.Slots)
		for i := range numbers {
			var idx int
			if idx, err = src.IntN(len(l.Outcomes)); err != nil {
				break
			}
			numbers[i] = l.Outcomes[idx]
		}
	case TicketLayout:
		var ticket int
		if ticket, err = src.IntN(l.Range); err == nil {
			numbers = []int{ticket}
		}
	default:
		return Bet{}, fmt.Errorf("game %s: %w: %T", def.ID, ErrLayoutMismatch, def.Layout)
	}
	if err != nil {
		return Bet{}, fmt.Errorf("generate %s: %w", def.ID, err)
	}

	return NewBet(def.ID, numbers, secondary, def.UnitCost), nil
}

// drawPool picks Count distinct values uniformly from the pool by rejection
// and returns them in ascending order. The pool must already be validated.
func drawPool(p Pool, src Source) ([]int, error) {
	seen := make(map[int]struct{}, p.Count)
	picks := make([]int, 0, p.Count)
	size := p.Size()
	for len(picks) < p.Count {
		n, err := src.IntN(size)
		if err != nil {
			return nil, err
		}
		v := p.Min + n
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		picks = append(picks, v)
	}
	slices.Sort(picks)
	return picks, nil
}

// Validate checks that bet has the shape required by def's layout. It is the
// same check applied to generated and manually finalized bets.
func Validate(def GameDefinition, bet Bet) error {
	if bet.gameID != def.ID {
		return fmt.Errorf("bet is for game %s, not %s", bet.gameID, def.ID)
	}

	switch l := def.Layout.(type) {
	case SimpleLayout:
		if len(bet.secondary) != 0 {
			return fmt.Errorf("%w: %s has no secondary pool", ErrLayoutMismatch, def.ID)
		}
		return checkPool("numbers", l.Pool, bet.numbers)
	case DoubleLayout:
		if err := checkPool("primary", l.Primary, bet.numbers); err != nil {
			return err
		}
		return checkPool("secondary", l.Secondary, bet.secondary)
	case ColumnsLayout:
		if len(bet.numbers) != l.Columns || len(bet.secondary) != 0 {
			return fmt.Errorf("expected %d columns, got %d", l.Columns, len(bet.numbers))
		}
		for i, v := range bet.numbers {
			if v < 0 || v >= l.Digits {
				return fmt.Errorf("column %d: %w: %d", i, ErrValueOutOfRange, v)
			}
		}
	case OutcomeLayout:
		if len(bet.numbers) != l.Slots || len(bet.secondary) != 0 {
			return fmt.Errorf("expected %d slots, got %d", l.Slots, len(bet.numbers))
		}
		for i, v := range bet.numbers {
			if !l.allows(v) {
				return fmt.Errorf("slot %d: %w: %d", i, ErrValueOutOfRange, v)
			}
		}
	case TicketLayout:
		if len(bet.numbers) != 1 || len(bet.secondary) != 0 {
			return fmt.Errorf("expected a single ticket number, got %d values", len(bet.numbers))
		}
		if v := bet.numbers[0]; v < 0 || v >= l.Range {
			return fmt.Errorf("ticket: %w: %d", ErrValueOutOfRange, v)
		}
	default:
		return fmt.Errorf("%w: %T", ErrLayoutMismatch, def.Layout)
	}
	return nil
}

func checkPool(name string, p Pool, values []int) error {
	if len(values) != p.Count {
		return fmt.Errorf("%s: expected %d values, got %d", name, p.Count, len(values))
	}
	for i, v := range values {
		if !p.Contains(v) {
			return fmt.Errorf("%s: %w: %d not in [%d, %d]", name, ErrValueOutOfRange, v, p.Min, p.Max)
		}
		if i > 0 && values[i-1] >= v {
			return fmt.Errorf("%s: values must be distinct and ascending", name)
		}
	}
	return nil
}
