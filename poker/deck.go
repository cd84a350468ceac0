package poker

import (
	"math/rand/v2"
)

// Deck holds the cards not yet assigned to any hole or board slot.
// It never contains duplicates or a known card.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates a new shuffled 52-card deck with explicit RNG
func NewDeck(rng *rand.Rand) *Deck {
	return NewDeckWithout(0, rng)
}

// NewDeckWithout creates a shuffled deck of every card not in known.
func NewDeckWithout(known Hand, rng *rand.Rand) *Deck {
	d := &Deck{
		cards: RemainingCards(known),
		rng:   rng,
	}
	d.Shuffle()
	return d
}

// RemainingCards lists the cards missing from known in canonical order.
func RemainingCards(known Hand) []Card {
	return (FullDeck &^ known).Cards()
}

// Shuffle restores every card and shuffles the deck using Fisher-Yates
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the deck. The returned slice aliases the deck
// and is valid until the next Shuffle.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || d.next+n > len(d.cards) {
		return nil
	}
	cards := d.cards[d.next : d.next+n]
	d.next += n
	return cards
}

// DealOne deals a single card from the deck
func (d *Deck) DealOne() (Card, bool) {
	if d.next >= len(d.cards) {
		return 0, false
	}
	card := d.cards[d.next]
	d.next++
	return card, true
}

// Reset resets and reshuffles the deck
func (d *Deck) Reset() {
	d.Shuffle()
}

// Size returns the number of cards the deck was built with.
func (d *Deck) Size() int {
	return len(d.cards)
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}
