package poker

import (
	"math/bits"
)

// Strength is a totally ordered measure of hand strength. Higher
// values win. The top 4 bits hold the hand category and the remaining
// bits break ties within the category, so two Strengths compare
// correctly with the ordinary < and == operators. Equal Strengths are
// an exact tie and split the pot.
type Strength uint32

// Hand categories, weakest to strongest.
const (
	HighCard Strength = iota << 28
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// Category strips the tie-break detail, leaving only the hand type.
func (s Strength) Category() Strength {
	return s & 0xF0000000
}

// String returns the category name.
func (s Strength) String() string {
	switch s.Category() {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
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
	default:
		return "Unknown"
	}
}

// Compare returns 1 if a beats b, -1 if b beats a and 0 for a tie.
func Compare(a, b Strength) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// Evaluate ranks a hand of 5 to 7 cards. For 6- and 7-card inputs it
// evaluates every 5-card subset and returns the strongest, so the
// result is always the best achievable 5-card hand. Inputs outside
// 5-7 cards evaluate to 0.
func Evaluate(h Hand) Strength {
	n := h.Count()
	if n < 5 || n > 7 {
		return 0
	}
	if n == 5 {
		return evaluate5(h)
	}

	cards := h.Cards()
	var best Strength
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						s := evaluate5(NewHand(cards[a], cards[b], cards[c], cards[d], cards[e]))
						if s > best {
							best = s
						}
					}
				}
			}
		}
	}
	return best
}

// evaluate5 ranks exactly five cards.
func evaluate5(h Hand) Strength {
	rankMask := h.RankMask()

	var flushMask uint16
	for suit := uint8(0); suit < 4; suit++ {
		if m := h.SuitMask(suit); bits.OnesCount16(m) == 5 {
			flushMask = m
			break
		}
	}

	high := straightHigh(rankMask)
	if flushMask != 0 {
		if high >= 0 {
			return StraightFlush | Strength(high)
		}
		return Flush | Strength(flushMask)
	}

	switch bits.OnesCount16(rankMask) {
	case 5:
		if high >= 0 {
			return Straight | Strength(high)
		}
		return HighCard | Strength(rankMask)

	case 4: // one pair
		pair := pairedRank(h, 2)
		kickers := rankMask &^ (1 << pair)
		return Pair | Strength(pair)<<13 | Strength(kickers)

	case 3: // trips or two pair
		if trip := pairedRank(h, 3); trip >= 0 {
			kickers := rankMask &^ (1 << trip)
			return ThreeOfAKind | Strength(trip)<<13 | Strength(kickers)
		}
		highPair := pairedRank(h, 2)
		lowPair := lowPairedRank(h)
		kicker := highestRank(rankMask &^ (1<<highPair | 1<<lowPair))
		return TwoPair | Strength(highPair)<<8 | Strength(lowPair)<<4 | Strength(kicker)

	default: // 2 distinct ranks: quads or full house
		if quad := pairedRank(h, 4); quad >= 0 {
			kicker := highestRank(rankMask &^ (1 << quad))
			return FourOfAKind | Strength(quad)<<4 | Strength(kicker)
		}
		trip := pairedRank(h, 3)
		pair := highestRank(rankMask &^ (1 << trip))
		return FullHouse | Strength(trip)<<4 | Strength(pair)
	}
}

// straightHigh returns the high rank of a straight formed by exactly
// the ranks in mask, or -1 when the ranks are not consecutive. The
// wheel (A-2-3-4-5) counts as a five-high straight.
func straightHigh(mask uint16) int {
	const wheel = 0x100F // A + 2-3-4-5
	if mask == wheel {
		return int(Five)
	}
	if bits.OnesCount16(mask) != 5 {
		return -1
	}
	low := bits.TrailingZeros16(mask)
	if mask == 0x1F<<low {
		return low + 4
	}
	return -1
}

// pairedRank returns the highest rank appearing exactly count times in
// the hand, or -1.
func pairedRank(h Hand, count int) int {
	for rank := 12; rank >= 0; rank-- {
		if rankCount(h, uint8(rank)) == count {
			return rank
		}
	}
	return -1
}

// lowPairedRank returns the lowest rank appearing exactly twice.
func lowPairedRank(h Hand) int {
	for rank := 0; rank <= 12; rank++ {
		if rankCount(h, uint8(rank)) == 2 {
			return rank
		}
	}
	return -1
}

func rankCount(h Hand, rank uint8) int {
	n := 0
	for suit := uint8(0); suit < 4; suit++ {
		if h.SuitMask(suit)&(1<<rank) != 0 {
			n++
		}
	}
	return n
}

func highestRank(mask uint16) int {
	if mask == 0 {
		return -1
	}
	return bits.Len16(mask) - 1
}
