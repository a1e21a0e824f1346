package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/betbuilder/cmd/betbuilder/shared"
	"github.com/lox/betbuilder/internal/config"
	"github.com/lox/betbuilder/internal/randutil"
	"github.com/lox/betbuilder/lottery"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Config    string `short:"c" help:"HCL file with games and plans" env:"BETBUILDER_CONFIG" default:"betbuilder.hcl" type:"path"`
	Seed      *int64 `help:"Seed for reproducible bets (crypto randomness when unset)" env:"BETBUILDER_SEED"`
	Debug     bool   `help:"Enable debug logging"`
	LogFormat string `help:"Log format" enum:"text,json,logfmt" default:"text"`
	NoColor   bool   `help:"Disable coloured output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Games    GamesCmd         `cmd:"" help:"List the game catalog"`
	Generate GenerateCmd      `cmd:"" help:"Generate random bets for one game"`
	Pick     PickCmd          `cmd:"" help:"Build a bet from manual picks"`
	Allocate AllocateCmd      `cmd:"" help:"Spend a budget across games"`
	Simulate SimulateCmd      `cmd:"" help:"Run many seeded allocations and report statistics"`
	Budget   BudgetCmd        `cmd:"" help:"Check spending against income and expenses"`
	Show     ShowCmd          `cmd:"" help:"Display an exported portfolio"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("betbuilder"),
		kong.Description("Lottery bet construction and budget allocation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	if cli.NoColor || termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// Logger builds the command logger from the global flags.
func (g *Globals) Logger() *log.Logger {
	return shared.SetupLogger(g.Debug, g.LogFormat)
}

// Load reads the configuration, falling back to the built-in catalog.
func (g *Globals) Load(logger *log.Logger) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded configuration", "path", g.Config, "games", cfg.Catalog.Len(), "plans", len(cfg.PlanNames()))
	return cfg, nil
}

// Source returns a seeded source when --seed is set, else crypto randomness.
func (g *Globals) Source() lottery.Source {
	if g.Seed != nil {
		return randutil.Seeded(*g.Seed)
	}
	return randutil.Crypto{}
}
