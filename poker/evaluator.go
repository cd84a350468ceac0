package poker

import (
	"fmt"
	"math/bits"
)

// HandRank represents the strength of a poker hand. Lower values are stronger:
// 0 is a royal flush and WorstRank is 7-5-4-3-2 offsuit. Hands of equal
// composition (ignoring suits) share a HandRank.
type HandRank uint16

// Category enumerates the classes of poker hands ordered from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// Categories lists every category from weakest to strongest.
var Categories = [...]Category{
	HighCard, OnePair, TwoPair, ThreeOfAKind, Straight,
	Flush, FullHouse, FourOfAKind, StraightFlush, RoyalFlush,
}

const (
	straightFlushCount = 10
	fourOfAKindCount   = 13 * 12
	fullHouseCount     = 13 * 12
	flushCount         = 1277
	straightCount      = 10
	threeOfAKindCount  = 13 * 66
	twoPairCount       = 78 * 11
	onePairCount       = 13 * 220
	highCardCount      = 1277
)

const (
	baseStraightFlush = 0
	baseFourOfAKind   = baseStraightFlush + straightFlushCount
	baseFullHouse     = baseFourOfAKind + fourOfAKindCount
	baseFlush         = baseFullHouse + fullHouseCount
	baseStraight      = baseFlush + flushCount
	baseThreeOfAKind  = baseStraight + straightCount
	baseTwoPair       = baseThreeOfAKind + threeOfAKindCount
	baseOnePair       = baseTwoPair + twoPairCount
	baseHighCard      = baseOnePair + onePairCount

	// NumRanks is the number of distinct hand strengths.
	NumRanks = baseHighCard + highCardCount

	// WorstRank is the weakest possible hand.
	WorstRank HandRank = NumRanks - 1
)

// categoryBounds holds the exclusive upper rank of each category, strongest first.
var categoryBounds = [...]struct {
	limit    HandRank
	category Category
}{
	{1, RoyalFlush},
	{baseFourOfAKind, StraightFlush},
	{baseFullHouse, FourOfAKind},
	{baseFlush, FullHouse},
	{baseStraight, Flush},
	{baseThreeOfAKind, Straight},
	{baseTwoPair, ThreeOfAKind},
	{baseOnePair, TwoPair},
	{baseHighCard, OnePair},
	{NumRanks, HighCard},
}

// Category returns the class of hand the rank belongs to.
func (hr HandRank) Category() Category {
	for _, b := range categoryBounds {
		if hr < b.limit {
			return b.category
		}
	}
	return HighCard
}

// String returns the category name of the rank.
func (hr HandRank) String() string {
	return hr.Category().String()
}

// Compare returns 1 if hr is stronger than other, -1 if weaker and 0 if equal.
func (hr HandRank) Compare(other HandRank) int {
	return CompareHands(hr, other)
}

// StrongerThan reports whether hr beats other.
func (hr HandRank) StrongerThan(other HandRank) bool {
	return hr < other
}

// CompareHands compares two hands and returns 1 if a wins, -1 if b wins, 0 for tie
func CompareHands(a, b HandRank) int {
	if a < b {
		return 1
	} else if a > b {
		return -1
	}
	return 0
}

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Classification is the category of an evaluated hand, or Incomplete when
// fewer than five cards were available.
type Classification struct {
	Category   Category
	Incomplete bool
}

// IncompleteLabel is shown for hands that cannot yet form five cards.
const IncompleteLabel = "Incomplete Hand"

// Classify maps a rank to its category. Hands built from fewer than five
// cards are reported as Incomplete; Category then holds what has been made so far.
func Classify(rank HandRank, cardCount int) Classification {
	return Classification{
		Category:   rank.Category(),
		Incomplete: cardCount < 5,
	}
}

// String returns the category name or "Incomplete Hand".
func (c Classification) String() string {
	if c.Incomplete {
		return IncompleteLabel
	}
	return c.Category.String()
}

// EvaluateHand ranks the best hand formed by two hole cards and up to five
// board cards. Boards of fewer than three cards are ranked as partial hands.
func EvaluateHand(hole, board []Card) (HandRank, error) {
	if len(hole) != 2 {
		return WorstRank, fmt.Errorf("%w: need exactly 2 hole cards, got %d", ErrInvalidInput, len(hole))
	}
	if len(board) > 5 {
		return WorstRank, fmt.Errorf("%w: board has %d cards (max 5)", ErrInvalidInput, len(board))
	}
	hand, err := collect(hole, board)
	if err != nil {
		return WorstRank, err
	}
	return Evaluate(hand), nil
}

// EvaluateCards ranks between two and seven distinct cards.
func EvaluateCards(cards ...Card) (HandRank, error) {
	if len(cards) < 2 {
		return WorstRank, fmt.Errorf("%w: %d cards", ErrIncompleteHand, len(cards))
	}
	if len(cards) > 7 {
		return WorstRank, fmt.Errorf("%w: %d cards (max 7)", ErrInvalidInput, len(cards))
	}
	hand, err := collect(cards)
	if err != nil {
		return WorstRank, err
	}
	return Evaluate(hand), nil
}

// Evaluate ranks the best five-card hand in h, which must hold at most seven cards.
// Hands with fewer than five cards are ranked as their weakest completion:
// the missing cards are filled with the lowest absent ranks that make
// neither a straight nor a flush, so they never improve the hand.
func Evaluate(h Hand) HandRank {
	var suitMasks [4]uint16
	var rankMask uint16
	for suit := uint8(0); suit < 4; suit++ {
		mask := h.GetSuitMask(suit)
		suitMasks[suit] = mask
		rankMask |= mask
	}

	if n := h.CountCards(); n < 5 {
		suitMasks, rankMask = weakestCompletion(suitMasks, rankMask, 5-n)
	}

	return rankFromMasks(suitMasks, rankMask)
}

// weakestCompletion pads the masks with need filler cards.
func weakestCompletion(suitMasks [4]uint16, rankMask uint16, need int) ([4]uint16, uint16) {
	for r := uint8(0); r < 13 && need > 0; r++ {
		bit := uint16(1) << r
		if rankMask&bit != 0 || straightHigh(rankMask|bit) > 0 {
			continue
		}

		// The emptiest suit takes the filler, which keeps five cards off a single suit.
		fill := 0
		for s := 1; s < 4; s++ {
			if bits.OnesCount16(suitMasks[s]) < bits.OnesCount16(suitMasks[fill]) {
				fill = s
			}
		}
		suitMasks[fill] |= bit
		rankMask |= bit
		need--
	}
	return suitMasks, rankMask
}

// rankFromMasks ranks the best five cards described by per-suit rank masks.
func rankFromMasks(suitMasks [4]uint16, rankMask uint16) HandRank {
	flushRank := HandRank(NumRanks)
	for _, suitMask := range suitMasks {
		if bits.OnesCount16(suitMask) < 5 {
			continue
		}
		if high := straightHigh(suitMask); high > 0 {
			return HandRank(baseStraightFlush + straightFlushCount - 1 - straightIndex(high))
		}
		if r := HandRank(baseFlush + flushCount - 1 - fiveRankIndex(keepTop(suitMask, 5))); r < flushRank {
			flushRank = r
		}
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]
	quadsMask := s0 & s1 & s2 & s3
	tripCandidates := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	tripsMask := tripCandidates &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripCandidates

	if quad := highest(quadsMask); quad >= 0 {
		q := uint8(quad)
		kicker := clampRank(highest(rankMask &^ bit(q)))
		idx := uint16(q)*12 + uint16(ordinal(kicker, bit(q)))
		return HandRank(baseFourOfAKind + fourOfAKindCount - 1 - idx)
	}

	if trip := highest(tripsMask); trip >= 0 {
		t := uint8(trip)
		if pair := highest(pairsMask | tripsMask&^bit(t)); pair >= 0 {
			idx := uint16(t)*12 + uint16(ordinal(uint8(pair), bit(t)))
			return HandRank(baseFullHouse + fullHouseCount - 1 - idx)
		}
	}

	if flushRank < NumRanks {
		return flushRank
	}

	if high := straightHigh(rankMask); high > 0 {
		return HandRank(baseStraight + straightCount - 1 - straightIndex(high))
	}

	if trip := highest(tripsMask); trip >= 0 {
		t := uint8(trip)
		kickers := squeeze(keepTop(rankMask&^bit(t), 2), t)
		idx := uint16(t)*66 + comboIndex(kickers)
		return HandRank(baseThreeOfAKind + threeOfAKindCount - 1 - idx)
	}

	if hi := highest(pairsMask); hi >= 0 {
		high := uint8(hi)
		if lo := highest(pairsMask &^ bit(high)); lo >= 0 {
			low := uint8(lo)
			both := bit(high) | bit(low)
			kicker := clampRank(highest(rankMask &^ both))
			idx := comboIndex(both)*11 + uint16(ordinal(kicker, both))
			return HandRank(baseTwoPair + twoPairCount - 1 - idx)
		}
		kickers := squeeze(keepTop(rankMask&^bit(high), 3), high)
		idx := uint16(high)*220 + comboIndex(kickers)
		return HandRank(baseOnePair + onePairCount - 1 - idx)
	}

	return HandRank(baseHighCard + highCardCount - 1 - fiveRankIndex(keepTop(rankMask, 5)))
}

func bit(r uint8) uint16 {
	return 1 << r
}

// highest returns the highest rank present in the bitmask (or -1 when empty).
func highest(mask uint16) int {
	if mask == 0 {
		return -1
	}
	return bits.Len16(mask) - 1
}

func clampRank(r int) uint8 {
	if r < 0 {
		return 0
	}
	return uint8(r)
}

// keepTop clears low bits until at most n ranks remain.
func keepTop(mask uint16, n int) uint16 {
	for bits.OnesCount16(mask) > n {
		mask &= mask - 1
	}
	return mask
}

// ordinal returns the position of rank among the ranks not in excluded.
func ordinal(rank uint8, excluded uint16) uint8 {
	below := excluded & (bit(rank) - 1)
	return rank - uint8(bits.OnesCount16(below))
}

// squeeze removes bit position r from mask, shifting higher ranks down.
func squeeze(mask uint16, r uint8) uint16 {
	low := mask & (bit(r) - 1)
	high := (mask >> (r + 1)) << r
	return low | high
}

// binomial[n][k] is n choose k for n < 14 and k < 6.
var binomial = func() [14][6]uint16 {
	var t [14][6]uint16
	for n := range t {
		t[n][0] = 1
		for k := 1; k < 6 && k <= n; k++ {
			t[n][k] = t[n-1][k-1]
			if k <= n-1 {
				t[n][k] += t[n-1][k]
			}
		}
	}
	return t
}()

// comboIndex returns the colexicographic index of a rank set. Sets compare by
// their highest rank first, which is exactly kicker order.
func comboIndex(mask uint16) uint16 {
	var idx uint16
	k := 1
	for m := mask; m != 0; m &= m - 1 {
		idx += binomial[bits.TrailingZeros16(m)][k]
		k++
	}
	return idx
}

// straightComboIndices are the combo indices of the ten straights, wheel first.
var straightComboIndices = func() [10]uint16 {
	var arr [10]uint16
	arr[0] = comboIndex(wheelMask)
	for high := uint8(4); high <= 12; high++ {
		arr[high-3] = comboIndex(uint16(0x1F) << (high - 4))
	}
	return arr
}()

// fiveRankIndex ranks five distinct non-straight ranks densely from 0 (7-5-4-3-2) to 1276.
func fiveRankIndex(mask uint16) uint16 {
	idx := comboIndex(mask)
	var skip uint16
	for _, s := range straightComboIndices {
		if s < idx {
			skip++
		}
	}
	return idx - skip
}

const wheelMask = 0x100F // Ace + 2-3-4-5

// straightHigh returns the high-card rank of the best straight in the mask (0 if none).
// The wheel reports rank 3 (the five).
func straightHigh(mask uint16) uint8 {
	mask &= rankMask13

	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		return uint8(bits.Len16(seq)-1) + 4
	}
	if mask&wheelMask == wheelMask {
		return 3
	}
	return 0
}

func straightIndex(high uint8) uint16 {
	if high == 3 { // wheel
		return 0
	}
	return uint16(high - 3)
}
