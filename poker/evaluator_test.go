package poker

import (
	"math/rand/v2"
	"testing"

	ph "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankOf(t *testing.T, codes string) HandRank {
	t.Helper()
	rank, err := EvaluateCards(MustParseCards(codes)...)
	require.NoError(t, err, codes)
	return rank
}

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		cards string
		want  Category
	}{
		{"royal flush", "AsKsQsJsTs", RoyalFlush},
		{"straight flush", "9h8h7h6h5h", StraightFlush},
		{"steel wheel", "5d4d3d2dAd", StraightFlush},
		{"four of a kind", "AcAdAhAsKc", FourOfAKind},
		{"full house", "KcKdKhQsQc", FullHouse},
		{"flush", "AhJh9h6h3h", Flush},
		{"straight", "Tc9d8h7s6c", Straight},
		{"wheel", "5c4d3h2sAc", Straight},
		{"three of a kind", "7c7d7hKsQc", ThreeOfAKind},
		{"two pair", "JcJdTcTs2h", TwoPair},
		{"one pair", "9c9dAhKsQc", OnePair},
		{"high card", "AcJd9h6s3c", HighCard},
		{"seven card royal", "AsKsQsJsTs2c3d", RoyalFlush},
		{"six card flush over straight", "AhJh9h6h3hTc", Flush},
		{"two trips make a full house", "KcKdKh5s5c5d2h", FullHouse},
		{"quads beat a flush on board", "AsAhAdAc2s3s4s", FourOfAKind},
		{"three pair plays two", "AcAdKhKsQcQd2h", TwoPair},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, rankOf(t, tc.cards).Category())
		})
	}
}

func TestRankBoundaries(t *testing.T) {
	t.Parallel()
	assert.Equal(t, HandRank(0), rankOf(t, "AsKsQsJsTs"))
	assert.Equal(t, WorstRank, rankOf(t, "7c5d4h3s2c"))
	assert.Equal(t, 7462, NumRanks)
	assert.Equal(t, "High Card", WorstRank.String())
	assert.Equal(t, StraightFlush, HandRank(1).Category())
}

func TestKickerOrdering(t *testing.T) {
	t.Parallel()
	// Each pair is strictly stronger first.
	tests := []struct {
		name           string
		stronger, weak string
	}{
		{"high card top kicker", "KcJd9h6s2c", "QcJd9h7s6c"},
		{"high card low kicker", "AcJd9h6s3c", "AcJd9h6s2c"},
		{"pair beats high card", "2c2d5h7s9c", "AcKdQhJs9c"},
		{"pair kicker", "9c9dAhKsQc", "9c9dAhKsJc"},
		{"higher pair", "TcTd4h3s2c", "9c9dAhKsQc"},
		{"two pair top pair", "AcAd3h3s2c", "KcKdQhQsJc"},
		{"two pair kicker", "JcJdTcTsAh", "JcJdTcTsKh"},
		{"trips kicker", "7c7d7hAs2c", "7c7d7hKsQc"},
		{"six high straight over wheel", "6c5d4h3s2c", "5c4d3h2sAc"},
		{"broadway over king high", "AcKdQhJsTc", "KcQdJhTs9c"},
		{"flush second card", "AhKh9h6h3h", "AhQhJh9h8h"},
		{"full house trips first", "3c3d3hAsAc", "2c2d2hAsAc"},
		{"full house pair second", "KcKdKhQsQc", "KcKdKhJsJc"},
		{"quads kicker", "9c9d9h9sAc", "9c9d9h9sKc"},
		{"straight flush over quads", "6h5h4h3h2h", "AcAdAhAsKc"},
	}
	for _, tt := range tests {
		s, w := rankOf(t, tt.stronger), rankOf(t, tt.weak)
		assert.True(t, s.StrongerThan(w), "%s: %s (%d) should beat %s (%d)", tt.name, tt.stronger, s, tt.weak, w)
		assert.Equal(t, 1, CompareHands(s, w), tt.name)
		assert.Equal(t, -1, w.Compare(s), tt.name)
	}
}

func TestHigherStraightWithWheelPresent(t *testing.T) {
	t.Parallel()
	withWheel := rankOf(t, "Ac2d3h4s5c6d9h")
	sixHigh := rankOf(t, "6c5d4h3s2c")
	assert.Equal(t, sixHigh, withWheel)
}

func TestStraightSuitPermutations(t *testing.T) {
	t.Parallel()
	ranks := []uint8{Nine, Eight, Seven, Six, Five}

	var flushes, straights int
	for assign := 0; assign < 1024; assign++ {
		cards := make([]Card, 5)
		a := assign
		for i, r := range ranks {
			cards[i] = NewCard(r, uint8(a%4))
			a /= 4
		}
		rank, err := EvaluateCards(cards...)
		require.NoError(t, err)
		switch rank.Category() {
		case StraightFlush:
			flushes++
		case Straight:
			straights++
		default:
			t.Fatalf("unexpected category %s for %s", rank.Category(), FormatCards(cards))
		}
	}
	assert.Equal(t, 4, flushes)
	assert.Equal(t, 1020, straights)
}

func TestBoardOrderDoesNotMatter(t *testing.T) {
	t.Parallel()
	hole := MustParseCards("AsKd")
	board := MustParseCards("Qh Jc 2s 7d Ts")

	want, err := EvaluateHand(hole, board)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 20; i++ {
		shuffled := append([]Card(nil), board...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got, err := EvaluateHand(hole, shuffled)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestAddingCardsNeverWeakens(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 500; i++ {
		cards := NewDeck(rng).Deal(7)
		prev := Evaluate(NewHand(cards[:5]...))
		for n := 6; n <= 7; n++ {
			cur := Evaluate(NewHand(cards[:n]...))
			require.LessOrEqual(t, cur, prev, "adding a card weakened %s", FormatCards(cards[:n]))
			prev = cur
		}
	}
}

// bestOfSubsets evaluates every five-card subset and keeps the strongest.
func bestOfSubsets(cards []Card) HandRank {
	best := WorstRank
	var pick func(start int, chosen []Card)
	pick = func(start int, chosen []Card) {
		if len(chosen) == 5 {
			if r := Evaluate(NewHand(chosen...)); r < best {
				best = r
			}
			return
		}
		for i := start; i < len(cards); i++ {
			pick(i+1, append(chosen, cards[i]))
		}
	}
	pick(0, make([]Card, 0, 5))
	return best
}

func TestSevenCardsMatchBestFiveCardSubset(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(42, 1))
	for i := 0; i < 2000; i++ {
		n := 6 + i%2
		cards := NewDeck(rng).Deal(n)
		assert.Equal(t, bestOfSubsets(cards), Evaluate(NewHand(cards...)), FormatCards(cards))
	}
}

func toOracle(t *testing.T, c Card) ph.Card {
	t.Helper()
	suits := [4]ph.Suit{ph.Club, ph.Diamond, ph.Heart, ph.Spade}
	rank := ph.Rank(c.Rank() + 2)
	if c.Rank() == Ace {
		rank = ph.Rank(1)
	}
	card, err := ph.MakeCard(suits[c.Suit()], rank)
	require.NoError(t, err)
	return card
}

func TestOrderingMatchesReferenceEvaluator(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(2024, 9))

	oracle := func(cards []Card) int16 {
		var arr [7]ph.Card
		for i, c := range cards {
			arr[i] = toOracle(t, c)
		}
		return ph.Eval7(&arr)
	}
	sign := func(v int) int {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		}
		return 0
	}

	for i := 0; i < 5000; i++ {
		deck := NewDeck(rng)
		a := append([]Card(nil), deck.Deal(7)...)
		b := append([]Card(nil), deck.Deal(7)...)

		ours := CompareHands(Evaluate(NewHand(a...)), Evaluate(NewHand(b...)))
		theirs := sign(int(oracle(a)) - int(oracle(b)))
		require.Equal(t, theirs, ours, "%s vs %s", FormatCards(a), FormatCards(b))
	}
}

func TestAllFiveCardHands(t *testing.T) {
	if testing.Short() {
		t.Skip("full enumeration")
	}
	t.Parallel()

	deck := FullDeck.Cards()
	counts := make(map[Category]int)
	seen := make(map[HandRank]bool)

	for a := 0; a < 52; a++ {
		for b := a + 1; b < 52; b++ {
			for c := b + 1; c < 52; c++ {
				for d := c + 1; d < 52; d++ {
					for e := d + 1; e < 52; e++ {
						r := Evaluate(NewHand(deck[a], deck[b], deck[c], deck[d], deck[e]))
						counts[r.Category()]++
						seen[r] = true
					}
				}
			}
		}
	}

	assert.Len(t, seen, NumRanks)
	assert.Equal(t, map[Category]int{
		RoyalFlush:    4,
		StraightFlush: 36,
		FourOfAKind:   624,
		FullHouse:     3744,
		Flush:         5108,
		Straight:      10200,
		ThreeOfAKind:  54912,
		TwoPair:       123552,
		OnePair:       1098240,
		HighCard:      1302540,
	}, counts)
}

func TestPartialHands(t *testing.T) {
	t.Parallel()

	pocketAces := Evaluate(NewHand(MustParseCards("AsAh")...))
	assert.Equal(t, rankOf(t, "AsAh2c3d4h"), pocketAces)
	assert.Equal(t, OnePair, pocketAces.Category())

	assert.Equal(t, WorstRank, Evaluate(NewHand(MustParseCards("2c3d")...)))
	assert.Equal(t, HighCard, rankOf(t, "Ks Qs Js Ts").Category(), "four to a flush and straight is still high card")
	assert.Equal(t, FourOfAKind, rankOf(t, "9c9d9h9s").Category())
	assert.Equal(t, TwoPair, rankOf(t, "AsAhKsKh").Category())

	classification := Classify(pocketAces, 2)
	assert.True(t, classification.Incomplete)
	assert.Equal(t, OnePair, classification.Category)
	assert.Equal(t, "Incomplete Hand", classification.String())

	complete := Classify(rankOf(t, "AsKsQsJsTs"), 5)
	assert.False(t, complete.Incomplete)
	assert.Equal(t, "Royal Flush", complete.String())
}

func TestEvaluateHand(t *testing.T) {
	t.Parallel()

	rank, err := EvaluateHand(MustParseCards("AsKs"), MustParseCards("QsJsTs"))
	require.NoError(t, err)
	assert.Equal(t, HandRank(0), rank)

	preflop, err := EvaluateHand(MustParseCards("AsKs"), nil)
	require.NoError(t, err)
	assert.Equal(t, HighCard, preflop.Category())

	again, err := EvaluateHand(MustParseCards("AsKs"), MustParseCards("QsJsTs"))
	require.NoError(t, err)
	assert.Equal(t, rank, again, "evaluation is deterministic")
}

func TestEvaluateErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		hole    string
		board   string
		wantErr error
	}{
		{"one hole card", "As", "KdQh2c", ErrInvalidInput},
		{"three hole cards", "AsKdQh", "", ErrInvalidInput},
		{"six board cards", "AsKd", "2c3c4c5c6c7c", ErrInvalidInput},
		{"duplicate between hole and board", "AsKd", "As2c3c", ErrDuplicateCard},
		{"duplicate on board", "AsKd", "2c2c3c", ErrDuplicateCard},
	}
	for _, tt := range tests {
		_, err := EvaluateHand(MustParseCards(tt.hole), MustParseCards(tt.board))
		assert.ErrorIs(t, err, tt.wantErr, tt.name)
	}

	_, err := EvaluateCards(MustParseCard("As"))
	assert.ErrorIs(t, err, ErrIncompleteHand)

	_, err = EvaluateCards(MustParseCards("AsKsQsJsTs9s8s7s")...)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = EvaluateCards(MustParseCard("As"), Card(0))
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func BenchmarkEvaluate7(b *testing.B) {
	hand := NewHand(MustParseCards("AsKsQhJd9c3h2s")...)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Evaluate(hand)
	}
}
