package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/handequity/internal/config"
	"github.com/lox/handequity/internal/randutil"
	"github.com/lox/handequity/internal/render"
	"github.com/lox/handequity/internal/tui"
	"github.com/lox/handequity/poker"
	"github.com/lox/handequity/sdk/analysis"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command plus the state they resolve to.
type Globals struct {
	Config   string `short:"c" default:"poker-odds.hcl" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	NoColor  bool   `help:"Disable colored output"`
	Seed     *int64 `help:"Random seed for reproducible results (overrides config)"`

	cfg    *config.Config `kong:"-"`
	logger *log.Logger    `kong:"-"`
	clock  quartz.Clock   `kong:"-"`
	stdout io.Writer      `kong:"-"`
	stderr io.Writer      `kong:"-"`
}

type CLI struct {
	Globals

	Version   kong.VersionFlag `short:"v" help:"Show version"`
	Analyze   AnalyzeCmd       `cmd:"" help:"Full report: category, outs, equity, EV and likely beaters"`
	Equity    EquityCmd        `cmd:"" help:"Monte Carlo win/tie odds against random opponents"`
	Outs      OutsCmd          `cmd:"" help:"Count the cards that improve your hand"`
	EV        EVCmd            `cmd:"" name:"ev" help:"Expected value of a call"`
	Dashboard DashboardCmd     `cmd:"" help:"Interactive card grid dashboard"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("poker-odds"),
		kong.Description("Poker hand analysis: hand category, outs, equity and expected value"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Globals.stdout = stdout
	cli.Globals.stderr = stderr
	if err := cli.Globals.setup(); err != nil {
		return err
	}
	return ctx.Run(&cli.Globals)
}

// setup loads configuration, applies flag overrides and builds the logger.
func (g *Globals) setup() error {
	cfg, err := config.LoadConfig(g.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.Seed != nil {
		cfg.Simulation.Seed = *g.Seed
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	g.cfg = cfg

	if g.NoColor {
		render.DisableColor()
	}

	level, _ := log.ParseLevel(cfg.Log.Level)
	g.logger = log.NewWithOptions(g.stderr, log.Options{
		Level:           level,
		Prefix:          "poker-odds",
		ReportTimestamp: true,
	})
	if g.clock == nil {
		g.clock = quartz.NewReal()
	}
	return nil
}

func (g *Globals) rng() *rand.Rand {
	if g.cfg.Simulation.Seed != 0 {
		return randutil.New(g.cfg.Simulation.Seed)
	}
	return randutil.NewFromTime()
}

func (g *Globals) workers(flag int) int {
	switch {
	case flag > 0:
		return flag
	case g.cfg.Simulation.Workers > 0:
		return g.cfg.Simulation.Workers
	default:
		return runtime.NumCPU()
	}
}

// orDefault returns v unless it is zero.
func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// signalContext is cancelled on interrupt so long simulations stop promptly.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// HandArgs are the card arguments shared by the analysis commands.
type HandArgs struct {
	Hole  string `arg:"" help:"Your two hole cards, e.g. 'AsKs' or 'A♠ K♠'"`
	Board string `short:"b" help:"Community cards, e.g. 'QsJs2d'"`
}

func (h HandArgs) cards() (hole, board []poker.Card, err error) {
	hole, err = poker.ParseCards(h.Hole)
	if err != nil {
		return nil, nil, fmt.Errorf("hole cards: %w", err)
	}
	board, err = poker.ParseCards(h.Board)
	if err != nil {
		return nil, nil, fmt.Errorf("board: %w", err)
	}
	return hole, board, nil
}

type AnalyzeCmd struct {
	HandArgs
	Pot     float64 `short:"p" help:"Current pot size"`
	Call    float64 `help:"Amount to call"`
	Players int     `short:"n" help:"Players including you (defaults to config)"`
	Trials  int     `short:"i" help:"Monte Carlo trials (defaults to config)"`
	Workers int     `short:"w" help:"Simulation goroutines (defaults to config or CPU count)"`
}

func (c *AnalyzeCmd) Run(g *Globals) error {
	hole, board, err := c.cards()
	if err != nil {
		return err
	}

	analyzer := analysis.NewAnalyzer(g.logger,
		analysis.WithClock(g.clock),
		analysis.WithWorkers(g.workers(c.Workers)),
		analysis.WithBeaterOptions(g.cfg.BeaterOptions()),
		analysis.WithRand(g.rng()),
	)

	ctx, cancel := signalContext()
	defer cancel()

	report, err := analyzer.Analyze(ctx, analysis.Selection{
		Hole:    hole,
		Board:   board,
		Pot:     c.Pot,
		Call:    c.Call,
		Players: orDefault(c.Players, g.cfg.Simulation.Players),
		Trials:  orDefault(c.Trials, g.cfg.Simulation.Trials),
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(g.stdout, render.Report(report))
	return err
}

type EquityCmd struct {
	HandArgs
	Players int `short:"n" help:"Players including you (defaults to config)"`
	Trials  int `short:"i" help:"Monte Carlo trials (defaults to config)"`
	Workers int `short:"w" help:"Simulation goroutines (defaults to config or CPU count)"`
}

func (c *EquityCmd) Run(g *Globals) error {
	hole, board, err := c.cards()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := g.clock.Now()
	result, err := analysis.SimulateEquity(ctx, hole, board,
		orDefault(c.Players, g.cfg.Simulation.Players),
		orDefault(c.Trials, g.cfg.Simulation.Trials),
		g.rng(),
		analysis.WithParallelism(g.workers(c.Workers)))
	if err != nil {
		return err
	}
	elapsed := g.clock.Since(start)
	g.logger.Debug("Simulation finished", "trials", result.Trials, "elapsed", elapsed)

	_, err = fmt.Fprint(g.stdout, render.Equity(hole, board, result, elapsed))
	return err
}

type OutsCmd struct {
	HandArgs
	List bool `help:"List the outs grouped by the hand they make"`
}

func (c *OutsCmd) Run(g *Globals) error {
	hole, board, err := c.cards()
	if err != nil {
		return err
	}

	outs, err := analysis.Outs(hole, board)
	if err != nil {
		return err
	}

	fmt.Fprintf(g.stdout, "outs: %d\n", len(outs))
	if c.List && len(outs) > 0 {
		fmt.Fprintf(g.stdout, "\n%s", render.OutsByCategory(analysis.OutsByCategory(outs)))
	}
	return nil
}

type EVCmd struct {
	Pot  float64 `short:"p" required:"" help:"Current pot size"`
	Call float64 `required:"" help:"Amount to call"`
	Win  float64 `required:"" help:"Win percentage (0-100)"`
	Tie  float64 `help:"Tie percentage (0-100)"`
}

func (c *EVCmd) Run(g *Globals) error {
	if c.Pot < 0 || c.Call < 0 {
		return fmt.Errorf("%w: pot and call must not be negative", poker.ErrInvalidInput)
	}
	if c.Win < 0 || c.Tie < 0 || c.Win+c.Tie > 100 {
		return fmt.Errorf("%w: win and tie must be percentages summing to at most 100", poker.ErrInvalidInput)
	}
	ev := analysis.ComputeEV(c.Pot, c.Call, c.Win, c.Tie)
	_, err := fmt.Fprint(g.stdout, render.EV(c.Pot, c.Call, ev))
	return err
}

type DashboardCmd struct {
	Players int    `short:"n" help:"Players including you (defaults to config)"`
	Trials  int    `short:"i" help:"Monte Carlo trials (defaults to config)"`
	LogFile string `help:"Write logs to this file while the dashboard runs"`
}

func (c *DashboardCmd) Run(g *Globals) error {
	// The dashboard owns the terminal, so logs go to a file or nowhere.
	logOut := io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		logOut = f
	}
	logger := log.NewWithOptions(logOut, log.Options{
		Level:           g.logger.GetLevel(),
		Prefix:          "poker-odds",
		ReportTimestamp: true,
	})

	analyzer := analysis.NewAnalyzer(logger,
		analysis.WithClock(g.clock),
		analysis.WithWorkers(g.workers(0)),
		analysis.WithBeaterOptions(g.cfg.BeaterOptions()),
		analysis.WithRand(g.rng()),
	)
	model := tui.NewModel(analyzer, tui.Settings{
		Players: orDefault(c.Players, g.cfg.Simulation.Players),
		Trials:  orDefault(c.Trials, g.cfg.Simulation.Trials),
	}, logger)

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
