// Package lottery implements the game catalog, random bet generation and the
// manual selection state machine for lottery-style games.
//
// # Layouts
//
// Every game has one of five layouts, each carrying only its own parameters:
//   - SimpleLayout: Count distinct numbers from [Min, Max], ascending
//   - DoubleLayout: a primary pool plus an independent secondary pool
//   - ColumnsLayout: one digit per column, repeats allowed
//   - OutcomeLayout: one outcome code per slot
//   - TicketLayout: a single opaque ticket number
//
// # Randomness
//
// Generation never touches a global generator. Callers pass a Source, which
// makes every draw reproducible under a fixed seed:
//
//	src := randutil.Seeded(42)
//	bet, err := lottery.Generate(def, src)
//
// # Manual selection
//
// A Selection mirrors the generator's rules for interactive picking:
//
//	sel := lottery.NewSelection(def)
//	_ = sel.Toggle(7)
//	if sel.IsComplete() {
//	    bet, _ := sel.Finalize()
//	}
//
// Bets store the secondary pool of DoubleWithSecondary games as a separate
// sequence. Bet.Encoded returns the legacy single-sequence form in which
// secondary values are negated.
package lottery
