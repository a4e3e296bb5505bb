package poker

import (
	rand "math/rand/v2"
)

// Deck deals cards from a shuffled 52-card sequence. Given the same
// RNG state the ordering is identical on every platform, which is what
// makes scripted scenarios and replays reproducible.
type Deck struct {
	cards []Card
	next  int
}

// NewDeck returns a full 52-card deck shuffled with rng.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{cards: allCards()}
	d.shuffle(rng)
	return d
}

// NewDeckWithout returns a deck shuffled with rng from the 52-card set
// minus the reserved cards. Scripted scenarios pin hole or board cards
// to fixed positions and deal the rest from this residual deck.
func NewDeckWithout(rng *rand.Rand, reserved ...Card) *Deck {
	taken := NewHand(reserved...)
	cards := make([]Card, 0, 52-len(reserved))
	for _, c := range allCards() {
		if !taken.Has(c) {
			cards = append(cards, c)
		}
	}
	d := &Deck{cards: cards}
	d.shuffle(rng)
	return d
}

func allCards() []Card {
	cards := make([]Card, 0, 52)
	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank < 13; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// shuffle is a Fisher-Yates permutation driven entirely by rng.
func (d *Deck) shuffle(rng *rand.Rand) {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the next n cards. It returns nil if fewer
// than n cards remain.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > len(d.cards) {
		return nil
	}
	cards := d.cards[d.next : d.next+n]
	d.next += n
	return cards
}

// DealOne removes and returns the next card, or 0 if the deck is
// exhausted.
func (d *Deck) DealOne() Card {
	if d.next >= len(d.cards) {
		return 0
	}
	c := d.cards[d.next]
	d.next++
	return c
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// Undealt returns a copy of the cards not yet dealt, in deal order.
func (d *Deck) Undealt() []Card {
	rest := make([]Card, len(d.cards)-d.next)
	copy(rest, d.cards[d.next:])
	return rest
}

// Restore rebuilds a deck from a previously captured undealt sequence.
// Used when cloning immutable game states.
func Restore(undealt []Card) *Deck {
	cards := make([]Card, len(undealt))
	copy(cards, undealt)
	return &Deck{cards: cards}
}
