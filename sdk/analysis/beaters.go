package analysis

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/lox/handequity/internal/randutil"
	"github.com/lox/handequity/poker"
)

// Beater is an opponent holding that beats the hero on the current board.
type Beater struct {
	Hole     [2]poker.Card
	Rank     poker.HandRank
	Category poker.Category
}

// String formats the holding as "Flush: A♠ 9♠".
func (b Beater) String() string {
	return fmt.Sprintf("%s: %s", b.Category, poker.PrettyCards(b.Hole[:]))
}

// BeaterOptions bounds the likely-beaters search.
type BeaterOptions struct {
	MaxHands  int // stop after this many distinct beaters
	MaxTrials int // random holdings to draw at most
}

// DefaultBeaterOptions returns the dashboard defaults: five hands from 500 draws.
func DefaultBeaterOptions() BeaterOptions {
	return BeaterOptions{MaxHands: 5, MaxTrials: 500}
}

// LikelyBeaters samples random opponent hole cards against the current board
// (no board completion) and collects distinct holdings that are strictly
// stronger than hole. Results are ordered strongest first.
func LikelyBeaters(hole, board []poker.Card, rng *rand.Rand, opts BeaterOptions) ([]Beater, error) {
	current, err := poker.EvaluateHand(hole, board)
	if err != nil {
		return nil, err
	}
	if opts.MaxHands <= 0 || opts.MaxTrials <= 0 {
		return nil, fmt.Errorf("%w: beater limits must be positive", poker.ErrInvalidInput)
	}
	if rng == nil {
		rng = randutil.NewFromTime()
	}

	boardHand := poker.NewHand(board...)
	deck := poker.NewDeckWithout(poker.NewHand(hole...)|boardHand, rng)
	seen := make(map[poker.Hand]bool)

	var beaters []Beater
	for i := 0; i < opts.MaxTrials && len(beaters) < opts.MaxHands; i++ {
		deck.Shuffle()
		cards := deck.Deal(2)
		opp := poker.NewHand(cards...)
		if seen[opp] {
			continue
		}

		rank := poker.Evaluate(opp | boardHand)
		if !rank.StrongerThan(current) {
			continue
		}
		seen[opp] = true
		beaters = append(beaters, Beater{
			Hole:     [2]poker.Card{cards[0], cards[1]},
			Rank:     rank,
			Category: rank.Category(),
		})
	}

	sort.SliceStable(beaters, func(i, j int) bool {
		return beaters[i].Rank < beaters[j].Rank
	})
	return beaters, nil
}
