package lottery

import (
	"fmt"
	"slices"
)

// Unset marks a column or slot that has not been assigned yet.
const Unset = -1

// SelectionState is the completion state of a manual selection.
type SelectionState uint8

const (
	Empty SelectionState = iota
	Partial
	Complete
)

func (s SelectionState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Partial:
		return "partial"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("state(%d)", s)
	}
}

// PoolID names one of the two pools of a DoubleWithSecondary game.
type PoolID uint8

const (
	PrimaryPool PoolID = iota
	SecondaryPool
)

func (p PoolID) String() string {
	if p == SecondaryPool {
		return "secondary"
	}
	return "primary"
}

// Selection is a user's in-progress manual bet for one game. It is owned by
// a single session and is not safe for concurrent use.
type Selection struct {
	def       GameDefinition
	primary   []int // simple picks or double primary picks, ascending
	secondary []int // double secondary picks, ascending
	slots     []int // columns or outcomes, Unset when not assigned
	ticket    int
	hasTicket bool
}

// NewSelection starts an empty selection for def.
func NewSelection(def GameDefinition) *Selection {
	s := &Selection{def: def}
	s.Reset()
	return s
}

// Game returns the definition the selection is for.
func (s *Selection) Game() GameDefinition { return s.def }

// Reset discards every pick.
func (s *Selection) Reset() {
	s.primary = s.primary[:0]
	s.secondary = s.secondary[:0]
	s.hasTicket = false
	s.ticket = 0
	s.slots = nil

	var n int
	switch l := s.def.Layout.(type) {
	case ColumnsLayout:
		n = l.Columns
	case OutcomeLayout:
		n = l.Slots
	}
	if n > 0 {
		s.slots = make([]int, n)
		for i := range s.slots {
			s.slots[i] = Unset
		}
	}
}

// Toggle flips value in the primary pool. It applies to Simple games and to
// the primary pool of DoubleWithSecondary games.
func (s *Selection) Toggle(value int) error {
	return s.ToggleIn(PrimaryPool, value)
}

// ToggleIn flips value in the given pool. A selected value is removed; an
// unselected value is added while the pool has room. Picks beyond the pool's
// capacity are ignored.
func (s *Selection) ToggleIn(pool PoolID, value int) error {
	var (
		p      Pool
		target *[]int
	)
	switch l := s.def.Layout.(type) {
	case SimpleLayout:
		if pool != PrimaryPool {
			return fmt.Errorf("%w: %s has no %s pool", ErrLayoutMismatch, s.def.ID, pool)
		}
		p, target = l.Pool, &s.primary
	case DoubleLayout:
		if pool == SecondaryPool {
			p, target = l.Secondary, &s.secondary
		} else {
			p, target = l.Primary, &s.primary
		}
	default:
		return fmt.Errorf("%w: cannot toggle numbers on a %s game", ErrLayoutMismatch, s.def.Kind())
	}

	if !p.Contains(value) {
		return fmt.Errorf("%s pool: %w: %d not in [%d, %d]", pool, ErrValueOutOfRange, value, p.Min, p.Max)
	}

	picks := *target
	if i, found := slices.BinarySearch(picks, value); found {
		*target = slices.Delete(picks, i, i+1)
	} else if len(picks) < p.Count {
		*target = slices.Insert(picks, i, value)
	}
	return nil
}

// SetSlot assigns value to a fixed position of a DigitColumns or
// TripleOutcome game, overwriting any previous value.
func (s *Selection) SetSlot(index, value int) error {
	switch l := s.def.Layout.(type) {
	case ColumnsLayout:
		if value < 0 || value >= l.Digits {
			return fmt.Errorf("column %d: %w: %d", index, ErrValueOutOfRange, value)
		}
	case OutcomeLayout:
		if !l.allows(value) {
			return fmt.Errorf("slot %d: %w: %d not in %v", index, ErrValueOutOfRange, value, l.Outcomes)
		}
	default:
		return fmt.Errorf("%w: cannot set slots on a %s game", ErrLayoutMismatch, s.def.Kind())
	}
	if index < 0 || index >= len(s.slots) {
		return fmt.Errorf("%w: slot index %d", ErrValueOutOfRange, index)
	}
	s.slots[index] = value
	return nil
}

// ClearSlot returns a position to Unset.
func (s *Selection) ClearSlot(index int) error {
	if s.slots == nil {
		return fmt.Errorf("%w: cannot clear slots on a %s game", ErrLayoutMismatch, s.def.Kind())
	}
	if index < 0 || index >= len(s.slots) {
		return fmt.Errorf("%w: slot index %d", ErrValueOutOfRange, index)
	}
	s.slots[index] = Unset
	return nil
}

// SetTicket records the ticket number of a FixedTicket game.
func (s *Selection) SetTicket(value int) error {
	l, ok := s.def.Layout.(TicketLayout)
	if !ok {
		return fmt.Errorf("%w: cannot set a ticket on a %s game", ErrLayoutMismatch, s.def.Kind())
	}
	if value < 0 || value >= l.Range {
		return fmt.Errorf("ticket: %w: %d", ErrValueOutOfRange, value)
	}
	s.ticket, s.hasTicket = value, true
	return nil
}

// Picks returns the current primary/positional values and secondary values.
// Unassigned slots are reported as Unset.
func (s *Selection) Picks() (numbers, secondary []int) {
	switch s.def.Layout.(type) {
	case ColumnsLayout, OutcomeLayout:
		return slices.Clone(s.slots), nil
	case TicketLayout:
		if s.hasTicket {
			return []int{s.ticket}, nil
		}
		return nil, nil
	}
	return slices.Clone(s.primary), slices.Clone(s.secondary)
}

// progress returns how many picks are made and how many are required.
func (s *Selection) progress() (have, need int) {
	switch l := s.def.Layout.(type) {
	case SimpleLayout:
		return len(s.primary), l.Pool.Count
	case DoubleLayout:
		return len(s.primary) + len(s.secondary), l.Primary.Count + l.Secondary.Count
	case ColumnsLayout, OutcomeLayout:
		for _, v := range s.slots {
			if v != Unset {
				have++
			}
		}
		return have, len(s.slots)
	case TicketLayout:
		if s.hasTicket {
			return 1, 1
		}
		return 0, 1
	}
	return 0, 1
}

// State reports Empty, Partial or Complete.
func (s *Selection) State() SelectionState {
	have, need := s.progress()
	switch {
	case have == 0:
		return Empty
	case have >= need:
		return Complete
	default:
		return Partial
	}
}

// IsComplete is the single completion predicate used to gate Finalize.
func (s *Selection) IsComplete() bool {
	return s.State() == Complete
}

// Finalize converts a complete selection into an immutable bet priced at the
// game's unit cost.
func (s *Selection) Finalize() (Bet, error) {
	if !s.IsComplete() {
		have, need := s.progress()
		return Bet{}, &IncompleteSelectionError{GameID: s.def.ID, Missing: need - have}
	}
	numbers, secondary := s.Picks()
	bet := NewBet(s.def.ID, numbers, secondary, s.def.UnitCost)
	if err := Validate(s.def, bet); err != nil {
		return Bet{}, fmt.Errorf("finalize %s: %w", s.def.ID, err)
	}
	return bet, nil
}
