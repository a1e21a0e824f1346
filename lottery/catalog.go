package lottery

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GameDefinition describes one registered game. Definitions are built once
// at startup and never mutated.
type GameDefinition struct {
	ID       string
	Name     string
	Layout   Layout
	UnitCost decimal.Decimal
}

// Kind returns the layout kind of the game.
func (d GameDefinition) Kind() LayoutKind { return d.Layout.Kind() }

// DisplayName returns Name, falling back to ID.
func (d GameDefinition) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// Validate checks that bets of this game can always be generated.
func (d GameDefinition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: game id is required", ErrInvalidCatalog)
	}
	if d.Layout == nil {
		return fmt.Errorf("%w: game %s: layout is required", ErrInvalidCatalog, d.ID)
	}
	if err := d.Layout.validate(); err != nil {
		return fmt.Errorf("%w: game %s: %s layout: %v", ErrInvalidCatalog, d.ID, d.Layout.Kind(), err)
	}
	if !d.UnitCost.IsPositive() {
		return fmt.Errorf("%w: game %s: unit cost must be positive, got %s", ErrInvalidCatalog, d.ID, d.UnitCost)
	}
	return nil
}

// Catalog is a read-only registry of game definitions keyed by id.
type Catalog struct {
	games map[string]GameDefinition
	order []string
}

// NewCatalog validates defs and builds a catalog preserving their order.
func NewCatalog(defs ...GameDefinition) (*Catalog, error) {
	c := &Catalog{
		games: make(map[string]GameDefinition, len(defs)),
		order: make([]string, 0, len(defs)),
	}
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.games[def.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate game id %s", ErrInvalidCatalog, def.ID)
		}
		c.games[def.ID] = def
		c.order = append(c.order, def.ID)
	}
	return c, nil
}

// MustCatalog is NewCatalog for static tables; it panics on invalid input.
func MustCatalog(defs ...GameDefinition) *Catalog {
	c, err := NewCatalog(defs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the definition registered under id.
func (c *Catalog) Lookup(id string) (GameDefinition, error) {
	def, ok := c.games[id]
	if !ok {
		return GameDefinition{}, &UnknownGameError{ID: id}
	}
	return def, nil
}

// Games returns all definitions in registration order.
func (c *Catalog) Games() []GameDefinition {
	out := make([]GameDefinition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.games[id])
	}
	return out
}

// Len returns the number of registered games.
func (c *Catalog) Len() int { return len(c.order) }

// Cheapest returns the lowest-cost game among ids. Ties go to the first id
// in the given order.
func (c *Catalog) Cheapest(ids ...string) (GameDefinition, error) {
	var best GameDefinition
	found := false
	for _, id := range ids {
		def, err := c.Lookup(id)
		if err != nil {
			return GameDefinition{}, err
		}
		if !found || def.UnitCost.LessThan(best.UnitCost) {
			best = def
			found = true
		}
	}
	if !found {
		return GameDefinition{}, fmt.Errorf("no games given")
	}
	return best, nil
}

func simple(id, name, cost string, min, max, count int) GameDefinition {
	return GameDefinition{
		ID:       id,
		Name:     name,
		Layout:   SimpleLayout{Pool: Pool{Min: min, Max: max, Count: count}},
		UnitCost: decimal.RequireFromString(cost),
	}
}

// DefaultCatalog returns the built-in registry of supported games.
func DefaultCatalog() *Catalog {
	return MustCatalog(
		simple("mega-virada", "Mega da Virada", "6.00", 1, 60, 6),
		simple("mega-sena", "Mega-Sena", "6.00", 1, 60, 6),
		simple("lotofacil", "Lotofácil", "3.50", 1, 25, 15),
		simple("quina", "Quina", "3.00", 1, 80, 5),
		simple("lotomania", "Lotomania", "3.00", 0, 99, 50),
		simple("timemania", "Timemania", "3.50", 1, 80, 10),
		simple("dupla-sena", "Dupla Sena", "3.00", 1, 50, 6),
		simple("dia-de-sorte", "Dia de Sorte", "2.50", 1, 31, 7),
		GameDefinition{
			ID:       "super-sete",
			Name:     "Super Sete",
			Layout:   DefaultColumnsLayout(),
			UnitCost: decimal.RequireFromString("3.00"),
		},
		GameDefinition{
			ID:       "mais-milionaria",
			Name:     "+Milionária",
			Layout:   DefaultDoubleLayout(),
			UnitCost: decimal.RequireFromString("6.00"),
		},
		GameDefinition{
			ID:       "loteca",
			Name:     "Loteca",
			Layout:   DefaultOutcomeLayout(),
			UnitCost: decimal.RequireFromString("4.00"),
		},
		GameDefinition{
			ID:       "federal",
			Name:     "Federal",
			Layout:   DefaultTicketLayout(),
			UnitCost: decimal.RequireFromString("4.00"),
		},
	)
}
