package export

import "time"

// Document is a portfolio encoded for storage as TOML. Money is written as
// fixed two-decimal strings so no precision is lost.
type Document struct {
	ID           string    `toml:"id"`
	GeneratedAt  time.Time `toml:"generated_at"`
	Seed         int64     `toml:"seed,omitempty"`
	Budget       string    `toml:"budget"`
	TotalSpent   string    `toml:"total_spent"`
	Remaining    string    `toml:"remaining"`
	TotalBets    int       `toml:"total_bets"`
	Fallback     bool      `toml:"fallback,omitempty"`
	Distribution []Slice   `toml:"distribution"`
	Bets         []Bet     `toml:"bets"`
}

// Slice is one game's share of the exported portfolio.
type Slice struct {
	Game          string `toml:"game"`
	Name          string `toml:"name"`
	TargetPercent int    `toml:"target_percent"`
	Percent       int    `toml:"percent"`
	Bets          int    `toml:"bets"`
	Spend         string `toml:"spend"`
}

// Bet is a single exported bet.
type Bet struct {
	ID         string  `toml:"id"`
	Game       string  `toml:"game"`
	Numbers    []int   `toml:"numbers"`
	Secondary  []int   `toml:"secondary,omitempty"`
	Cost       string  `toml:"cost"`
	Rationale  string  `toml:"rationale,omitempty"`
	Confidence float64 `toml:"confidence,omitempty"`
}
