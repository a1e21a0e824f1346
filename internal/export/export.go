// Package export writes allocated portfolios to TOML files and reads them
// back.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lox/betbuilder/internal/fileutil"
	"github.com/lox/betbuilder/lottery"
	"github.com/lox/betbuilder/portfolio"
)

// ErrCostMismatch is returned when an imported bet is not priced at its
// game's unit cost.
var ErrCostMismatch = errors.New("bet cost does not match the catalog")

// Exporter stamps portfolios with ids and a generation time.
type Exporter struct {
	clock quartz.Clock
	newID func() string
}

// New returns an exporter reading time from clock.
func New(clock quartz.Clock) *Exporter {
	return &Exporter{clock: clock, newID: uuid.NewString}
}

// Document converts p into its exported form. seed is recorded so the run
// can be replayed; pass 0 when the source was not seeded.
func (e *Exporter) Document(p portfolio.Portfolio, seed int64) Document {
	doc := Document{
		ID:          e.newID(),
		GeneratedAt: e.clock.Now().UTC(),
		Seed:        seed,
		Budget:      p.Budget.StringFixed(2),
		TotalSpent:  p.TotalSpent.StringFixed(2),
		Remaining:   p.Remaining().StringFixed(2),
		TotalBets:   p.TotalBets,
		Fallback:    p.Fallback,
	}
	for _, s := range p.Distribution {
		doc.Distribution = append(doc.Distribution, Slice{
			Game:          s.GameID,
			Name:          s.Name,
			TargetPercent: s.TargetPercent,
			Percent:       s.Percent,
			Bets:          s.BetCount,
			Spend:         s.Spend.StringFixed(2),
		})
	}
	for _, b := range p.Bets {
		doc.Bets = append(doc.Bets, Bet{
			ID:         e.newID(),
			Game:       b.GameID(),
			Numbers:    b.Numbers(),
			Secondary:  b.Secondary(),
			Cost:       b.Cost().StringFixed(2),
			Rationale:  b.Rationale(),
			Confidence: b.Confidence(),
		})
	}
	return doc
}

// WriteFile exports p to filename atomically.
func (e *Exporter) WriteFile(filename string, p portfolio.Portfolio, seed int64) error {
	doc := e.Document(p, seed)
	return fileutil.WriteAtomic(filename, 0o644, func(w io.Writer) error {
		return Encode(w, doc)
	})
}

// Encode writes doc to w in TOML.
func Encode(w io.Writer, doc Document) error {
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(doc)
}

// ReadFile decodes an exported document.
func ReadFile(filename string) (Document, error) {
	var doc Document
	if _, err := toml.DecodeFile(filename, &doc); err != nil {
		return Document{}, fmt.Errorf("export: read %s: %w", filename, err)
	}
	return doc, nil
}

// Portfolio rebuilds the portfolio described by doc, checking every bet
// against catalog. Aggregates are recomputed from the bets rather than
// trusted from the file.
func (doc Document) Portfolio(catalog *lottery.Catalog) (portfolio.Portfolio, error) {
	budget, err := decimal.NewFromString(doc.Budget)
	if err != nil {
		return portfolio.Portfolio{}, fmt.Errorf("export: budget: %w", err)
	}

	p := portfolio.Portfolio{Budget: budget, Fallback: doc.Fallback}
	for i, eb := range doc.Bets {
		def, err := catalog.Lookup(eb.Game)
		if err != nil {
			return portfolio.Portfolio{}, fmt.Errorf("export: bet %d: %w", i, err)
		}
		cost, err := decimal.NewFromString(eb.Cost)
		if err != nil {
			return portfolio.Portfolio{}, fmt.Errorf("export: bet %d cost: %w", i, err)
		}
		if !cost.Equal(def.UnitCost) {
			return portfolio.Portfolio{}, fmt.Errorf("export: bet %d: %w: %s costs %s, file says %s",
				i, ErrCostMismatch, def.ID, def.UnitCost.StringFixed(2), cost.StringFixed(2))
		}
		bet := lottery.NewBet(eb.Game, eb.Numbers, eb.Secondary, cost).
			WithRationale(eb.Rationale).
			WithConfidence(eb.Confidence)
		if err := lottery.Validate(def, bet); err != nil {
			return portfolio.Portfolio{}, fmt.Errorf("export: bet %d: %w", i, err)
		}
		p.Bets = append(p.Bets, bet)
	}
	listed := make(map[string]bool, len(doc.Distribution))
	for _, s := range doc.Distribution {
		name := s.Name
		if def, err := catalog.Lookup(s.Game); err == nil {
			name = def.DisplayName()
		}
		p.Distribution = append(p.Distribution, portfolio.Slice{
			GameID:        s.Game,
			Name:          name,
			TargetPercent: s.TargetPercent,
		})
		listed[s.Game] = true
	}
	// games the file has bets for but no slice
	for _, bet := range p.Bets {
		if listed[bet.GameID()] {
			continue
		}
		def, _ := catalog.Lookup(bet.GameID())
		p.Distribution = append(p.Distribution, portfolio.Slice{GameID: def.ID, Name: def.DisplayName()})
		listed[def.ID] = true
	}
	return portfolio.Summarize(p), nil
}
