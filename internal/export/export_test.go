package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/betbuilder/internal/randutil"
	"github.com/lox/betbuilder/lottery"
	"github.com/lox/betbuilder/portfolio"
)

var generatedAt = time.Date(2026, time.March, 14, 20, 0, 0, 0, time.UTC)

func testExporter(t *testing.T) *Exporter {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(generatedAt)
	return New(clock)
}

func allocate(t *testing.T, budget string, seed int64) portfolio.Portfolio {
	t.Helper()
	catalog := lottery.DefaultCatalog()
	plan := portfolio.Plan{
		Budget: decimal.RequireFromString(budget),
		Allocations: []portfolio.Allocation{
			{GameID: "mais-milionaria", Weight: decimal.RequireFromString("0.5")},
			{GameID: "quina", Weight: decimal.RequireFromString("0.5")},
		},
		Featured: "quina",
	}
	p, err := portfolio.NewAllocator(catalog).Allocate(plan, randutil.Seeded(seed))
	require.NoError(t, err)
	return p
}

func TestDocument(t *testing.T) {
	p := allocate(t, "30.00", 11)
	doc := testExporter(t).Document(p, 11)

	assert.Equal(t, generatedAt, doc.GeneratedAt)
	assert.Equal(t, int64(11), doc.Seed)
	assert.Equal(t, "30.00", doc.Budget)
	assert.Equal(t, p.TotalSpent.StringFixed(2), doc.TotalSpent)
	assert.Equal(t, p.Remaining().StringFixed(2), doc.Remaining)
	assert.Equal(t, p.TotalBets, len(doc.Bets))

	ids := map[string]bool{doc.ID: true}
	for _, b := range doc.Bets {
		_, err := uuid.Parse(b.ID)
		require.NoError(t, err)
		assert.False(t, ids[b.ID], "duplicate id %s", b.ID)
		ids[b.ID] = true
	}

	require.Len(t, doc.Distribution, 2)
	assert.Equal(t, "quina", doc.Distribution[0].Game, "featured slice first")
	for _, b := range doc.Bets {
		if b.Game == "mais-milionaria" {
			assert.Len(t, b.Secondary, 2)
		} else {
			assert.Empty(t, b.Secondary)
		}
	}
}

func TestEncodeWritesTOML(t *testing.T) {
	p := allocate(t, "12.00", 3)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testExporter(t).Document(p, 3)))

	out := buf.String()
	assert.Contains(t, out, `budget = "12.00"`)
	assert.Contains(t, out, "generated_at = 2026-03-14T20:00:00Z")
	assert.Contains(t, out, "[[bets]]")
	assert.Contains(t, out, "[[distribution]]")
}

func TestWriteFileAndReadBack(t *testing.T) {
	p := allocate(t, "30.00", 5)
	path := filepath.Join(t.TempDir(), "portfolio.toml")
	require.NoError(t, testExporter(t).WriteFile(path, p, 5))

	doc, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, generatedAt, doc.GeneratedAt)

	back, err := doc.Portfolio(lottery.DefaultCatalog())
	require.NoError(t, err)
	assert.True(t, back.Budget.Equal(p.Budget))
	assert.True(t, back.TotalSpent.Equal(p.TotalSpent))
	assert.Equal(t, p.TotalBets, back.TotalBets)
	require.Len(t, back.Bets, len(p.Bets))
	for i := range p.Bets {
		assert.Equal(t, p.Bets[i].Encoded(), back.Bets[i].Encoded())
		assert.Equal(t, p.Bets[i].Rationale(), back.Bets[i].Rationale())
	}
	require.Len(t, back.Distribution, len(p.Distribution))
	for i := range p.Distribution {
		assert.Equal(t, p.Distribution[i].GameID, back.Distribution[i].GameID)
		assert.Equal(t, p.Distribution[i].Percent, back.Distribution[i].Percent)
		assert.Equal(t, p.Distribution[i].TargetPercent, back.Distribution[i].TargetPercent)
	}
}

func TestPortfolioRejectsTamperedBets(t *testing.T) {
	doc := testExporter(t).Document(allocate(t, "30.00", 5), 5)
	catalog := lottery.DefaultCatalog()

	unknown := doc
	unknown.Bets = append([]Bet(nil), doc.Bets...)
	unknown.Bets[0].Game = "ghost"
	_, err := unknown.Portfolio(catalog)
	assert.ErrorIs(t, err, lottery.ErrUnknownGame)

	bad := doc
	bad.Bets = append([]Bet(nil), doc.Bets...)
	bad.Bets[0].Numbers = []int{1, 1, 1}
	_, err = bad.Portfolio(catalog)
	assert.Error(t, err)

	cost := doc
	cost.Bets = append([]Bet(nil), doc.Bets...)
	cost.Bets[0].Cost = "free"
	_, err = cost.Portfolio(catalog)
	assert.ErrorContains(t, err, "cost")

	repriced := doc
	repriced.Bets = append([]Bet(nil), doc.Bets...)
	repriced.Bets[0].Cost = "0.01"
	_, err = repriced.Portfolio(catalog)
	assert.ErrorIs(t, err, ErrCostMismatch)
}

func TestPortfolioNamesSlicesFromCatalog(t *testing.T) {
	doc := testExporter(t).Document(allocate(t, "30.00", 5), 5)
	catalog := lottery.DefaultCatalog()
	doc.Distribution = nil

	p, err := doc.Portfolio(catalog)
	require.NoError(t, err)
	require.NotEmpty(t, p.Distribution)
	for _, s := range p.Distribution {
		def, err := catalog.Lookup(s.GameID)
		require.NoError(t, err)
		assert.Equal(t, def.DisplayName(), s.Name)
	}
}

func TestReadFileErrors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("budget = [unterminated"), 0o644))
	_, err = ReadFile(path)
	assert.ErrorContains(t, err, "export: read")
}
