package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handequity/internal/randutil"
	"github.com/lox/handequity/poker"
)

func TestLikelyBeaters(t *testing.T) {
	hole := poker.MustParseCards("7c2d")
	board := poker.MustParseCards("AsKsQh9d4c")

	beaters, err := LikelyBeaters(hole, board, randutil.New(11), DefaultBeaterOptions())
	require.NoError(t, err)
	require.Len(t, beaters, 5, "almost any holding beats seven high")

	current, err := poker.EvaluateHand(hole, board)
	require.NoError(t, err)

	seen := make(map[poker.Hand]bool)
	for i, b := range beaters {
		assert.True(t, b.Rank.StrongerThan(current))
		assert.Equal(t, b.Rank.Category(), b.Category)

		h := poker.NewHand(b.Hole[:]...)
		assert.False(t, seen[h], "duplicate beater %s", b)
		seen[h] = true
		for _, c := range append(hole, board...) {
			assert.False(t, h.HasCard(c), "beater uses known card %s", c)
		}
		if i > 0 {
			assert.LessOrEqual(t, beaters[i-1].Rank, b.Rank, "beaters are ordered strongest first")
		}
	}
}

func TestLikelyBeatersNutHand(t *testing.T) {
	beaters, err := LikelyBeaters(poker.MustParseCards("AsKs"), poker.MustParseCards("QsJsTs"), randutil.New(1), DefaultBeaterOptions())
	require.NoError(t, err)
	assert.Empty(t, beaters)
}

func TestLikelyBeatersRespectsLimits(t *testing.T) {
	hole := poker.MustParseCards("7c2d")
	board := poker.MustParseCards("AsKsQh9d4c")

	beaters, err := LikelyBeaters(hole, board, randutil.New(3), BeaterOptions{MaxHands: 2, MaxTrials: 500})
	require.NoError(t, err)
	assert.Len(t, beaters, 2)

	_, err = LikelyBeaters(hole, board, randutil.New(3), BeaterOptions{})
	assert.ErrorIs(t, err, poker.ErrInvalidInput)
}

func TestBeaterString(t *testing.T) {
	b := Beater{
		Hole:     [2]poker.Card{poker.MustParseCard("As"), poker.MustParseCard("9s")},
		Category: poker.Flush,
	}
	assert.Equal(t, "Flush: A♠ 9♠", b.String())
}
