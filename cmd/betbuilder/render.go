package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/betbuilder/lottery"
	"github.com/lox/betbuilder/portfolio"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	gameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	moneyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	noteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("8"))

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))
)

// describeLayout summarises a layout's shape for the games table.
func describeLayout(l lottery.Layout) string {
	switch l := l.(type) {
	case lottery.SimpleLayout:
		return describePool(l.Pool)
	case lottery.DoubleLayout:
		return describePool(l.Primary) + " + " + describePool(l.Secondary)
	case lottery.ColumnsLayout:
		return fmt.Sprintf("%d columns of 0-%d", l.Columns, l.Digits-1)
	case lottery.OutcomeLayout:
		codes := make([]string, len(l.Outcomes))
		for i, o := range l.Outcomes {
			codes[i] = fmt.Sprint(o)
		}
		return fmt.Sprintf("%d slots of {%s}", l.Slots, strings.Join(codes, ","))
	case lottery.TicketLayout:
		return fmt.Sprintf("ticket 0-%d", l.Range-1)
	default:
		return "?"
	}
}

func describePool(p lottery.Pool) string {
	return fmt.Sprintf("%d of %d-%d", p.Count, p.Min, p.Max)
}

func renderCatalog(w io.Writer, catalog *lottery.Catalog) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("id"),
		headerStyle.Render("name"),
		headerStyle.Render("layout"),
		headerStyle.Render("shape"),
		headerStyle.Render("cost"))
	for _, def := range catalog.Games() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			gameStyle.Render(def.ID),
			def.DisplayName(),
			def.Kind(),
			describeLayout(def.Layout),
			moneyStyle.Render(def.UnitCost.StringFixed(2)))
	}
	tw.Flush()
}

func renderBet(w io.Writer, def lottery.GameDefinition, bet lottery.Bet) {
	fmt.Fprintln(w, lottery.Format(def, bet))
	if bet.Rationale() == "" {
		return
	}
	note := bet.Rationale()
	if bet.Confidence() > 0 {
		note = fmt.Sprintf("%s (confidence %.1f)", note, bet.Confidence())
	}
	fmt.Fprintf(w, "  %s\n", noteStyle.Render(note))
}

func renderPortfolio(w io.Writer, catalog *lottery.Catalog, p portfolio.Portfolio, showBets bool) {
	if p.IsEmpty() {
		fmt.Fprintf(w, "%s\n", warnStyle.Render(fmt.Sprintf("Budget %s does not cover any bet", p.Budget.StringFixed(2))))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("game"),
		headerStyle.Render("bets"),
		headerStyle.Render("spend"),
		headerStyle.Render("share"),
		headerStyle.Render("target"))
	for _, s := range p.Distribution {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			gameStyle.Render(s.Name),
			s.BetCount,
			moneyStyle.Render(s.Spend.StringFixed(2)),
			percentStyle.Render(fmt.Sprintf("%d%%", s.Percent)),
			fmt.Sprintf("%d%%", s.TargetPercent))
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d bets, spent %s of %s (%s left)\n",
		p.TotalBets,
		moneyStyle.Render(p.TotalSpent.StringFixed(2)),
		p.Budget.StringFixed(2),
		p.Remaining().StringFixed(2))
	if p.Fallback {
		fmt.Fprintf(w, "%s\n", noteStyle.Render("No slice afforded a bet; bought one bet of the cheapest game."))
	}

	if !showBets {
		return
	}
	fmt.Fprintln(w)
	for _, bet := range p.Bets {
		def, err := catalog.Lookup(bet.GameID())
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", bet.GameID(), bet.Numbers())
			continue
		}
		renderBet(w, def, bet)
	}
}
