package analysis

import (
	"sort"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"

	"github.com/lox/handequity/poker"
)

// Out is an unseen card that makes the hand strictly stronger.
type Out struct {
	Card     poker.Card
	Rank     poker.HandRank
	Category poker.Category
}

// CategoryOuts groups the outs that complete the same class of hand.
type CategoryOuts struct {
	Category poker.Category
	Cards    []poker.Card
}

// CountOuts returns the number of unseen cards that improve hole+board.
// A complete board has no outs.
func CountOuts(hole, board []poker.Card) (int, error) {
	outs, err := Outs(hole, board)
	if err != nil {
		return 0, err
	}
	return len(outs), nil
}

// Outs lists every unseen card that improves hole+board, strongest result first.
// Each candidate is ranked against the board extended by that one card.
// Before the river is complete the hand is compared as its weakest completion,
// so preflop any card that pairs or outranks the lowest fillers counts as an out.
func Outs(hole, board []poker.Card) ([]Out, error) {
	current, err := poker.EvaluateHand(hole, board)
	if err != nil {
		return nil, err
	}
	if len(board) == 5 {
		return nil, nil
	}

	known := poker.NewHand(hole...) | poker.NewHand(board...)

	var outs []Out
	for _, card := range poker.RemainingCards(known) {
		rank := poker.Evaluate(known | poker.Hand(card))
		if rank.StrongerThan(current) {
			outs = append(outs, Out{Card: card, Rank: rank, Category: rank.Category()})
		}
	}

	sort.SliceStable(outs, func(i, j int) bool {
		return outs[i].Rank < outs[j].Rank
	})
	return outs, nil
}

// OutsByCategory groups outs by the category they make, strongest category first.
func OutsByCategory(outs []Out) []CategoryOuts {
	groups := treemap.NewWith(func(a, b interface{}) int {
		return utils.IntComparator(b, a)
	})
	for _, out := range outs {
		key := int(out.Category)
		cards := []poker.Card{}
		if v, found := groups.Get(key); found {
			cards = v.([]poker.Card)
		}
		groups.Put(key, append(cards, out.Card))
	}

	result := make([]CategoryOuts, 0, groups.Size())
	iter := groups.Iterator()
	for iter.Next() {
		result = append(result, CategoryOuts{
			Category: poker.Category(iter.Key().(int)),
			Cards:    iter.Value().([]poker.Card),
		})
	}
	return result
}
