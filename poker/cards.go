// Package poker provides card values, a seeded deck and a hand
// evaluator for Texas Hold'em.
package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card is a single playing card encoded as one set bit in a uint64.
// Layout: [13 clubs][13 diamonds][13 hearts][13 spades], ranks
// ascending within each suit. The encoding makes hand evaluation a
// matter of bitwise masks.
type Card uint64

// Hand is a set of cards, represented as the union of their bits.
type Hand uint64

// Suit constants.
const (
	Clubs    uint8 = 0
	Diamonds uint8 = 1
	Hearts   uint8 = 2
	Spades   uint8 = 3
)

// Rank constants (0-12 for deuce through ace).
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
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// NewCard builds a card from a rank (0-12) and suit (0-3).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (suit*13 + rank)
}

// Rank returns the rank of the card (0-12), or 255 for the zero Card.
func (c Card) Rank() uint8 {
	if c == 0 {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c))) % 13
}

// Suit returns the suit of the card (0-3), or 255 for the zero Card.
func (c Card) Suit() uint8 {
	if c == 0 {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c))) / 13
}

// String renders the card in the conventional two-character form, e.g.
// "As" or "Td".
func (c Card) String() string {
	rank, suit := c.Rank(), c.Suit()
	if rank > 12 || suit > 3 {
		return "??"
	}
	return string(rankChars[rank]) + string(suitChars[suit])
}

// MarshalText implements encoding.TextMarshaler so cards serialize as
// their two-character form in JSON snapshots.
func (c Card) MarshalText() ([]byte, error) {
	if c.Rank() > 12 {
		return nil, fmt.Errorf("cannot marshal invalid card %#x", uint64(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Card) UnmarshalText(text []byte) error {
	card, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = card
	return nil
}

// ParseCard parses a two-character card string like "As" or "7h".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card string %q", s)
	}
	rank := strings.IndexByte(rankChars, upperRank(s[0]))
	if rank < 0 {
		return 0, fmt.Errorf("invalid rank %q", s[0])
	}
	suit := strings.IndexByte(suitChars, lowerSuit(s[1]))
	if suit < 0 {
		return 0, fmt.Errorf("invalid suit %q", s[1])
	}
	return NewCard(uint8(rank), uint8(suit)), nil
}

// MustParseCards parses a space-separated list of cards, panicking on
// malformed input. Intended for tests and scripted scenarios.
func MustParseCards(s string) []Card {
	fields := strings.Fields(s)
	cards := make([]Card, len(fields))
	for i, f := range fields {
		card, err := ParseCard(f)
		if err != nil {
			panic(err)
		}
		cards[i] = card
	}
	return cards
}

func upperRank(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lowerSuit(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// NewHand builds a hand from the given cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// Add returns the hand with the card added.
func (h Hand) Add(c Card) Hand {
	return h | Hand(c)
}

// Has reports whether the hand contains the card.
func (h Hand) Has(c Card) bool {
	return h&Hand(c) != 0
}

// Count returns the number of cards in the hand.
func (h Hand) Count() int {
	return bits.OnesCount64(uint64(h))
}

// Cards expands the hand into individual cards, lowest bit first.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.Count())
	for rest := uint64(h); rest != 0; rest &= rest - 1 {
		cards = append(cards, Card(rest&-rest))
	}
	return cards
}

// SuitMask returns the 13-bit rank mask for one suit.
func (h Hand) SuitMask(suit uint8) uint16 {
	return uint16((h >> (suit * 13)) & 0x1FFF)
}

// RankMask returns a 13-bit mask of which ranks are present in any
// suit.
func (h Hand) RankMask() uint16 {
	var mask uint16
	for suit := uint8(0); suit < 4; suit++ {
		mask |= h.SuitMask(suit)
	}
	return mask
}

// MarshalText renders the hand as space-separated cards in JSON
// snapshots. The zero Hand marshals as an empty string.
func (h Hand) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText parses a space-separated card list.
func (h *Hand) UnmarshalText(text []byte) error {
	var hand Hand
	for _, f := range strings.Fields(string(text)) {
		card, err := ParseCard(f)
		if err != nil {
			return err
		}
		hand = hand.Add(card)
	}
	*h = hand
	return nil
}

// String renders the hand as space-separated cards.
func (h Hand) String() string {
	cards := h.Cards()
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
