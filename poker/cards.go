package poker

import (
	"fmt"
	"math/bits"
	"strings"
	"unicode/utf8"
)

// Card is a single playing card encoded as one set bit in a uint64.
// Bit position is suit*13 + rank, so the layout is
// [13 spades][13 hearts][13 diamonds][13 clubs] from high to low.
type Card uint64

// Hand is a set of cards sharing the Card bit layout.
type Hand uint64

// Suit constants
const (
	Clubs    uint8 = 0
	Diamonds uint8 = 1
	Hearts   uint8 = 2
	Spades   uint8 = 3
)

// Rank constants (0-12 for 2-A)
const (
	Two   uint8 = 0
	Three uint8 = 1
	Four  uint8 = 2
	Five  uint8 = 3
	Six   uint8 = 4
	Seven uint8 = 5
	Eight uint8 = 6
	Nine  uint8 = 7
	Ten   uint8 = 8
	Jack  uint8 = 9
	Queen uint8 = 10
	King  uint8 = 11
	Ace   uint8 = 12
)

const (
	rankChars   = "23456789TJQKA"
	suitChars   = "cdhs"
	rankMask13  = 0x1FFF
	fullDeckBit = (1 << 52) - 1
)

var suitSymbols = [4]string{"♣", "♦", "♥", "♠"}

// variationSelector trails emoji suit symbols such as "♠️".
const variationSelector = "\ufe0f"

// FullDeck is the hand holding all 52 cards.
const FullDeck Hand = fullDeckBit

// NewCard creates a card from rank (0-12) and suit (0-3).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (uint(suit)*13 + uint(rank))
}

// index returns the bit position of the card (0-51), or 255 for an invalid card.
func (c Card) index() uint8 {
	if c == 0 || c&(c-1) != 0 || uint64(c) > fullDeckBit {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c)))
}

// Valid reports whether c encodes exactly one of the 52 cards.
func (c Card) Valid() bool {
	return c.index() != 255
}

// Rank returns the rank of the card (0-12), or 255 for an invalid card.
func (c Card) Rank() uint8 {
	idx := c.index()
	if idx == 255 {
		return 255
	}
	return idx % 13
}

// Suit returns the suit of the card (0-3), or 255 for an invalid card.
func (c Card) Suit() uint8 {
	idx := c.index()
	if idx == 255 {
		return 255
	}
	return idx / 13
}

// String returns the two-character code, e.g. "As" or "Td".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string(rankChars[c.Rank()]) + string(suitChars[c.Suit()])
}

// Pretty returns the card with a suit symbol, e.g. "A♠".
func (c Card) Pretty() string {
	if !c.Valid() {
		return "??"
	}
	return string(rankChars[c.Rank()]) + suitSymbols[c.Suit()]
}

// Red reports whether the card is a heart or a diamond.
func (c Card) Red() bool {
	s := c.Suit()
	return s == Hearts || s == Diamonds
}

// ParseCard parses a card code such as "As", "td" or "Q♥".
func ParseCard(s string) (Card, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty card code", ErrInvalidCard)
	}

	rank, err := parseRank(s[0])
	if err != nil {
		return 0, err
	}

	rest := s[1:]
	if rest == "" {
		return 0, fmt.Errorf("%w: %q is missing a suit", ErrInvalidCard, s)
	}

	var suit uint8
	if len(rest) == 1 {
		suit, err = parseSuit(rest[0])
		if err != nil {
			return 0, err
		}
	} else {
		r, size := utf8.DecodeRuneInString(rest)
		suit, err = parseSuitSymbol(r)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
		}
		// Emoji suits carry a trailing variation selector.
		tail := strings.TrimPrefix(rest[size:], variationSelector)
		if tail != "" {
			return 0, fmt.Errorf("%w: %q has trailing characters", ErrInvalidCard, s)
		}
	}

	return NewCard(rank, suit), nil
}

// MustParseCard parses a card and panics on error (for tests and constants)
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses a list of card codes. Codes may be concatenated ("AsKd")
// or separated by spaces or commas ("As Kd", "As,Kd").
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})

	var cards []Card
	for _, field := range fields {
		for field != "" {
			n := codeLength(field)
			card, err := ParseCard(field[:n])
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
			field = field[n:]
		}
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

// codeLength returns the byte length of the first card code in s.
func codeLength(s string) int {
	if len(s) < 2 {
		return len(s)
	}
	if s[1] < utf8.RuneSelf {
		return 2
	}
	_, size := utf8.DecodeRuneInString(s[1:])
	n := 1 + size
	if strings.HasPrefix(s[n:], variationSelector) {
		n += len(variationSelector)
	}
	return n
}

func parseRank(c byte) (uint8, error) {
	switch c {
	case 'T', 't':
		return Ten, nil
	case 'J', 'j':
		return Jack, nil
	case 'Q', 'q':
		return Queen, nil
	case 'K', 'k':
		return King, nil
	case 'A', 'a':
		return Ace, nil
	}
	if c >= '2' && c <= '9' {
		return c - '2', nil
	}
	return 0, fmt.Errorf("%w: unknown rank '%c'", ErrInvalidCard, c)
}

func parseSuit(c byte) (uint8, error) {
	switch c {
	case 'c', 'C':
		return Clubs, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'h', 'H':
		return Hearts, nil
	case 's', 'S':
		return Spades, nil
	default:
		return 0, fmt.Errorf("%w: unknown suit '%c'", ErrInvalidCard, c)
	}
}

func parseSuitSymbol(r rune) (uint8, error) {
	switch r {
	case '♣', '♧':
		return Clubs, nil
	case '♦', '♢':
		return Diamonds, nil
	case '♥', '♡':
		return Hearts, nil
	case '♠', '♤':
		return Spades, nil
	default:
		return 0, fmt.Errorf("unknown suit symbol %q", r)
	}
}

// FormatCards joins card codes with spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// PrettyCards joins card symbols with spaces.
func PrettyCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Pretty()
	}
	return strings.Join(parts, " ")
}

// NewHand creates a hand from multiple cards
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard checks if the hand contains a specific card
func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

// CountCards returns the number of cards in the hand
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// GetSuitMask returns the ranks held in one suit as a 13-bit mask.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	return uint16((h >> (uint(suit) * 13)) & rankMask13)
}

// GetRankMask returns a 13-bit mask of the ranks present in any suit.
func (h Hand) GetRankMask() uint16 {
	var mask uint16
	for suit := uint8(0); suit < 4; suit++ {
		mask |= h.GetSuitMask(suit)
	}
	return mask
}

// Cards lists the cards of the hand in ascending bit order (clubs first, deuce first).
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for rest := uint64(h); rest != 0; rest &= rest - 1 {
		cards = append(cards, Card(rest&-rest))
	}
	return cards
}

// String returns the hand as space separated card codes.
func (h Hand) String() string {
	return FormatCards(h.Cards())
}

// collect unions cards into a hand and reports the first duplicate, if any.
func collect(groups ...[]Card) (Hand, error) {
	var h Hand
	for _, group := range groups {
		for _, c := range group {
			if !c.Valid() {
				return 0, fmt.Errorf("%w: invalid card encoding %#x", ErrInvalidCard, uint64(c))
			}
			if h.HasCard(c) {
				return 0, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
			}
			h.AddCard(c)
		}
	}
	return h, nil
}
