// Package analysis estimates how a hand fares against random opponents:
// outs, Monte Carlo equity, likely beaters and expected value.
package analysis

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/lox/handequity/internal/randutil"
	"github.com/lox/handequity/poker"
)

// MaxPlayers is the most players a single deck can deal to alongside a full board.
const MaxPlayers = (52 - 5) / 2

// cancelCheckInterval is how many trials run between context checks.
const cancelCheckInterval = 256

// EquityResult represents the result of an equity simulation
type EquityResult struct {
	Wins   int
	Ties   int
	Trials int

	// Percentages in [0, 100] rounded to two decimals.
	WinPct float64
	TiePct float64
}

func newEquityResult(wins, ties, trials int) EquityResult {
	return EquityResult{
		Wins:   wins,
		Ties:   ties,
		Trials: trials,
		WinPct: percent(wins, trials),
		TiePct: percent(ties, trials),
	}
}

// Losses returns the number of trials in which an opponent was stronger.
func (e EquityResult) Losses() int {
	return e.Trials - e.Wins - e.Ties
}

// LossPct returns the loss rate as a percentage rounded to two decimals.
func (e EquityResult) LossPct() float64 {
	return percent(e.Losses(), e.Trials)
}

// Equity returns the overall equity (0.0 to 1.0)
// Wins count as 1.0, ties count as 0.5
func (e EquityResult) Equity() float64 {
	if e.Trials == 0 {
		return 0.0
	}
	return (float64(e.Wins) + float64(e.Ties)*0.5) / float64(e.Trials)
}

// ConfidenceInterval returns the 95% confidence interval for equity
func (e EquityResult) ConfidenceInterval() (lower, upper float64) {
	n := float64(e.Trials)
	if n == 0 {
		return 0.0, 0.0
	}

	equity := e.Equity()
	// Standard error for binomial proportion
	se := math.Sqrt((equity * (1.0 - equity)) / n)
	margin := 1.96 * se

	return math.Max(0.0, equity-margin), math.Min(1.0, equity+margin)
}

// SimOption configures SimulateEquity.
type SimOption func(*simConfig)

type simConfig struct {
	workers int
}

// WithParallelism splits the trials across n goroutines. Each worker draws
// from its own source derived from the caller's rng.
func WithParallelism(n int) SimOption {
	return func(c *simConfig) {
		c.workers = n
	}
}

type tally struct {
	wins, ties int
}

// SimulateEquity runs trials Monte Carlo deals of the unknown cards and
// reports how often hole beats or ties players-1 random opponents.
// Each trial shuffles the remaining deck, completes the board from the
// front and then deals two cards to each opponent. A nil rng is seeded from the clock.
func SimulateEquity(ctx context.Context, hole, board []poker.Card, players, trials int, rng *rand.Rand, opts ...SimOption) (EquityResult, error) {
	if _, err := validateSimulation(hole, board, players, trials); err != nil {
		return EquityResult{}, err
	}

	cfg := simConfig{workers: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	workers := min(max(cfg.workers, 1), trials)

	if rng == nil {
		rng = randutil.NewFromTime()
	}
	rngs := []*rand.Rand{rng}
	if workers > 1 {
		rngs = randutil.Split(rng, workers)
	}

	holeHand := poker.NewHand(hole...)
	boardHand := poker.NewHand(board...)
	tallies := make([]tally, workers)

	g, gctx := errgroup.WithContext(ctx)
	perWorker, remainder := trials/workers, trials%workers
	for w := range workers {
		n := perWorker
		if w < remainder {
			n++
		}
		g.Go(func() error {
			t, err := runTrials(gctx, holeHand, boardHand, len(board), players-1, n, rngs[w])
			tallies[w] = t
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return EquityResult{}, err
	}

	var total tally
	for _, t := range tallies {
		total.wins += t.wins
		total.ties += t.ties
	}
	return newEquityResult(total.wins, total.ties, trials), nil
}

func runTrials(ctx context.Context, hole, board poker.Hand, boardCount, opponents, n int, rng *rand.Rand) (tally, error) {
	var t tally
	deck := poker.NewDeckWithout(hole|board, rng)
	for i := 0; i < n; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return t, err
			}
		}

		deck.Shuffle()
		finalBoard := board | poker.NewHand(deck.Deal(5-boardCount)...)
		hero := poker.Evaluate(hole | finalBoard)

		beaten, tied := false, false
		for o := 0; o < opponents; o++ {
			opp := poker.Evaluate(poker.NewHand(deck.Deal(2)...) | finalBoard)
			if opp.StrongerThan(hero) {
				beaten = true
				break
			}
			if opp == hero {
				tied = true
			}
		}

		switch {
		case beaten:
		case tied:
			t.ties++
		default:
			t.wins++
		}
	}
	return t, nil
}

// validateSimulation checks the cards and counts and returns the rank of the known cards.
func validateSimulation(hole, board []poker.Card, players, trials int) (poker.HandRank, error) {
	rank, err := poker.EvaluateHand(hole, board)
	if err != nil {
		return poker.WorstRank, err
	}
	if players < 2 || players > MaxPlayers {
		return poker.WorstRank, fmt.Errorf("%w: players must be between 2 and %d, got %d", poker.ErrInvalidInput, MaxPlayers, players)
	}
	if trials <= 0 {
		return poker.WorstRank, fmt.Errorf("%w: trials must be positive, got %d", poker.ErrInvalidInput, trials)
	}
	return rank, nil
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(100 * float64(n) / float64(total))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
