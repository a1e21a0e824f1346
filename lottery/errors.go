package lottery

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownGame is returned when a game identifier is not registered.
	ErrUnknownGame = errors.New("unknown game")

	// ErrIncompleteSelection is returned when finalizing a selection that
	// does not yet satisfy its layout.
	ErrIncompleteSelection = errors.New("selection is incomplete")

	// ErrInvalidCatalog marks a game definition that cannot be generated.
	ErrInvalidCatalog = errors.New("invalid catalog configuration")

	// ErrValueOutOfRange is returned for picks outside the layout's range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrLayoutMismatch is returned when an operation does not apply to the
	// selection's layout, e.g. SetSlot on a simple game.
	ErrLayoutMismatch = errors.New("operation not supported by layout")
)

// UnknownGameError carries the identifier that failed lookup.
type UnknownGameError struct {
	ID string
}

func (e *UnknownGameError) Error() string {
	return fmt.Sprintf("unknown game %q", e.ID)
}

func (e *UnknownGameError) Is(target error) bool { return target == ErrUnknownGame }

// IncompleteSelectionError reports how far a selection is from completion.
type IncompleteSelectionError struct {
	GameID  string
	Missing int
}

func (e *IncompleteSelectionError) Error() string {
	return fmt.Sprintf("selection for %s is incomplete: %d pick(s) missing", e.GameID, e.Missing)
}

func (e *IncompleteSelectionError) Is(target error) bool { return target == ErrIncompleteSelection }
