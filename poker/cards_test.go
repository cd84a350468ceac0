package poker

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardCreation(t *testing.T) {
	t.Parallel()
	aceSpades := NewCard(Ace, Spades)
	assert.Equal(t, Ace, aceSpades.Rank())
	assert.Equal(t, Spades, aceSpades.Suit())
	assert.Equal(t, "As", aceSpades.String())
	assert.Equal(t, "A♠", aceSpades.Pretty())
	assert.False(t, aceSpades.Red())

	twoClubs := NewCard(Two, Clubs)
	assert.Equal(t, "2c", twoClubs.String())

	assert.True(t, NewCard(Queen, Hearts).Red())
	assert.Equal(t, "??", Card(0).String())
	assert.False(t, Card(3).Valid(), "two bits set is not a card")
}

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		wantCard Card
		wantErr  bool
	}{
		{"ace of spades", "As", NewCard(Ace, Spades), false},
		{"two of hearts", "2h", NewCard(Two, Hearts), false},
		{"lower case", "kd", NewCard(King, Diamonds), false},
		{"ten with T notation", "Tc", NewCard(Ten, Clubs), false},
		{"nine of spades", "9S", NewCard(Nine, Spades), false},
		{"suit symbol", "Q♥", NewCard(Queen, Hearts), false},
		{"emoji suit symbol", "J♣️", NewCard(Jack, Clubs), false},
		{"invalid rank", "Xs", 0, true},
		{"ten as digits", "10s", 0, true},
		{"invalid suit", "Ax", 0, true},
		{"empty string", "", 0, true},
		{"too short", "A", 0, true},
		{"too long", "Asd", 0, true},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			card, err := ParseCard(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidCard)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantCard, card)
		})
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  string
	}{
		{"AsKd", "As Kd"},
		{"As Kd", "As Kd"},
		{"As,Kd, 2c", "As Kd 2c"},
		{"A♠K♦", "As Kd"},
		{"", ""},
	}
	for _, tt := range tests {
		cards, err := ParseCards(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, FormatCards(cards), tt.input)
	}

	_, err := ParseCards("AsK")
	assert.ErrorIs(t, err, ErrInvalidCard)

	assert.Panics(t, func() { MustParseCards("Zz") })
}

func TestAll52CardsRoundTrip(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)

	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank < 13; rank++ {
			card := NewCard(rank, suit)
			str := card.String()
			require.False(t, seen[str], "duplicate card %s", str)
			seen[str] = true

			parsed, err := ParseCard(str)
			require.NoError(t, err)
			assert.Equal(t, card, parsed, "round-trip failed for %s", str)

			pretty, err := ParseCard(card.Pretty())
			require.NoError(t, err)
			assert.Equal(t, card, pretty, "symbol round-trip failed for %s", card.Pretty())
		}
	}

	assert.Len(t, seen, 52)
	assert.Equal(t, 52, FullDeck.CountCards())
}

func TestHandOperations(t *testing.T) {
	t.Parallel()
	aceSpades := MustParseCard("As")
	kingHearts := MustParseCard("Kh")
	queenDiamonds := MustParseCard("Qd")

	hand := NewHand(aceSpades, kingHearts)
	assert.True(t, hand.HasCard(aceSpades))
	assert.True(t, hand.HasCard(kingHearts))
	assert.False(t, hand.HasCard(queenDiamonds))
	assert.Equal(t, 2, hand.CountCards())

	hand.AddCard(queenDiamonds)
	assert.True(t, hand.HasCard(queenDiamonds))
	assert.Equal(t, 3, hand.CountCards())

	assert.Equal(t, "Qd Kh As", hand.String(), "cards list clubs first, then by rank")
	assert.Equal(t, uint16(1<<Ace|1<<King|1<<Queen), hand.GetRankMask())
}

func TestHandBitset(t *testing.T) {
	t.Parallel()
	aceSpades := MustParseCard("As")
	aceHearts := MustParseCard("Ah")
	twoClubs := MustParseCard("2c")

	assert.Equal(t, 1, bits.OnesCount64(uint64(aceSpades)))
	assert.Zero(t, aceSpades&aceHearts)
	assert.Zero(t, aceSpades&twoClubs)
	assert.Zero(t, aceHearts&twoClubs)

	combined := Hand(aceSpades) | Hand(aceHearts) | Hand(twoClubs)
	assert.Equal(t, 3, combined.CountCards())
}

func TestGetSuitMask(t *testing.T) {
	t.Parallel()
	var cards []Card
	for rank := uint8(0); rank < 13; rank++ {
		cards = append(cards, NewCard(rank, Spades))
	}
	hand := NewHand(cards...)

	assert.Equal(t, uint16(0x1FFF), hand.GetSuitMask(Spades))
	assert.Zero(t, hand.GetSuitMask(Hearts))
}

func TestCollectRejectsDuplicates(t *testing.T) {
	t.Parallel()
	_, err := collect(MustParseCards("AsKs"), MustParseCards("Qs As"))
	require.ErrorIs(t, err, ErrDuplicateCard)
	assert.Contains(t, err.Error(), "As")

	_, err = collect([]Card{Card(3)})
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func BenchmarkParseCard(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = ParseCard("As")
	}
}
