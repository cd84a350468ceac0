package analysis

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/handequity/internal/randutil"
	"github.com/lox/handequity/poker"
)

// Selection is one analysis request: the known cards plus the betting
// situation and simulation size.
type Selection struct {
	Hole    []poker.Card
	Board   []poker.Card
	Pot     float64
	Call    float64
	Players int
	Trials  int
}

// Validate rejects selections that cannot be analysed.
func (s Selection) Validate() error {
	_, err := s.evaluate()
	return err
}

// evaluate validates the selection and ranks the known cards in one pass.
func (s Selection) evaluate() (poker.HandRank, error) {
	rank, err := validateSimulation(s.Hole, s.Board, s.Players, s.Trials)
	if err != nil {
		return poker.WorstRank, err
	}
	if s.Pot < 0 || s.Call < 0 {
		return poker.WorstRank, fmt.Errorf("%w: pot and call must not be negative", poker.ErrInvalidInput)
	}
	return rank, nil
}

// CardCount returns the number of known cards.
func (s Selection) CardCount() int {
	return len(s.Hole) + len(s.Board)
}

// Report is the full result of analysing a Selection.
type Report struct {
	ID        uuid.UUID
	Selection Selection

	Rank           poker.HandRank
	Classification poker.Classification
	StartingTier   poker.StartingTier

	Outs           []Out
	OutsByCategory []CategoryOuts

	Equity         EquityResult
	EV             float64
	PotOdds        float64
	RequiredEquity float64

	// Aggression is meaningful only when HasAggression is set.
	Aggression    float64
	HasAggression bool

	Beaters []Beater
	Elapsed time.Duration
}

// Profitable reports whether calling has a positive expected value.
func (r Report) Profitable() bool {
	return r.EV > 0
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClock sets the clock used to time each analysis.
func WithClock(clock quartz.Clock) Option {
	return func(a *Analyzer) {
		a.clock = clock
	}
}

// WithWorkers sets how many goroutines share the equity trials.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		a.workers = n
	}
}

// WithBeaterOptions overrides the likely-beaters limits.
func WithBeaterOptions(opts BeaterOptions) Option {
	return func(a *Analyzer) {
		a.beaters = opts
	}
}

// WithRand sets the random source; analyses become reproducible for a seeded source.
func WithRand(rng *rand.Rand) Option {
	return func(a *Analyzer) {
		a.rng = rng
	}
}

// Analyzer runs the evaluation, outs, equity, EV and beaters pipeline.
// It is safe for concurrent use.
type Analyzer struct {
	logger  *log.Logger
	clock   quartz.Clock
	workers int
	beaters BeaterOptions

	mu  sync.Mutex
	rng *rand.Rand
}

// NewAnalyzer creates an analyzer with a real clock, one worker per CPU
// and a clock-seeded random source unless overridden.
func NewAnalyzer(logger *log.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		logger:  logger.WithPrefix("analyzer"),
		clock:   quartz.NewReal(),
		workers: runtime.NumCPU(),
		beaters: DefaultBeaterOptions(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = randutil.NewFromTime()
	}
	return a
}

// Analyze evaluates the selection once and derives every metric from it.
func (a *Analyzer) Analyze(ctx context.Context, sel Selection) (Report, error) {
	start := a.clock.Now("analyze")

	rank, err := sel.evaluate()
	if err != nil {
		return Report{}, err
	}
	classification := poker.Classify(rank, sel.CardCount())

	report := Report{
		ID:             uuid.New(),
		Selection:      sel,
		Rank:           rank,
		Classification: classification,
		StartingTier:   poker.GradeStartingHand(sel.Hole[0], sel.Hole[1]),
		PotOdds:        PotOdds(sel.Pot, sel.Call),
		RequiredEquity: RequiredEquity(sel.Pot, sel.Call),
	}
	report.Aggression, report.HasAggression = AggressionIndex(classification)

	if report.Outs, err = Outs(sel.Hole, sel.Board); err != nil {
		return Report{}, err
	}
	report.OutsByCategory = OutsByCategory(report.Outs)

	a.mu.Lock()
	rngs := randutil.Split(a.rng, 2)
	a.mu.Unlock()

	report.Equity, err = SimulateEquity(ctx, sel.Hole, sel.Board, sel.Players, sel.Trials, rngs[0], WithParallelism(a.workers))
	if err != nil {
		return Report{}, fmt.Errorf("simulate equity: %w", err)
	}
	report.EV = ComputeEV(sel.Pot, sel.Call, report.Equity.WinPct, report.Equity.TiePct)

	if report.Beaters, err = LikelyBeaters(sel.Hole, sel.Board, rngs[1], a.beaters); err != nil {
		return Report{}, fmt.Errorf("likely beaters: %w", err)
	}

	report.Elapsed = a.clock.Since(start, "analyze")
	a.logger.Debug("Analysis complete",
		"id", report.ID,
		"hole", poker.FormatCards(sel.Hole),
		"board", poker.FormatCards(sel.Board),
		"category", classification,
		"outs", len(report.Outs),
		"win", report.Equity.WinPct,
		"tie", report.Equity.TiePct,
		"ev", report.EV,
		"elapsed", report.Elapsed)

	return report, nil
}
