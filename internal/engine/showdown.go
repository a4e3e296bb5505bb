package engine

import (
	"sort"

	"github.com/cardroom/trainer/poker"
)

// resolveUncontested ends the hand when only one player has not
// folded. The survivor is awarded every pot without any hand being
// evaluated or revealed.
func (g *GameState) resolveUncontested() {
	g.sweepBets()
	g.Street = Showdown
	g.ActionSeat = -1

	var survivor *Player
	for i := range g.Players {
		if g.Players[i].InHand() {
			survivor = &g.Players[i]
			break
		}
	}

	for potIdx, pot := range g.Pots {
		survivor.Stack += pot.Amount
		g.Winners = append(g.Winners, Winner{
			Seat:     survivor.Seat,
			PlayerID: survivor.ID,
			Amount:   pot.Amount,
			Pot:      potIdx,
		})
		g.record(EventWin, survivor.Seat, pot.Amount, false)
	}
	g.emptyPots()
}

// resolveShowdown compares the remaining hands and distributes every
// pot. Pots are processed smallest cap first; within a pot, ties split
// evenly and any odd chips go one at a time to the tied winners
// closest clockwise to the dealer.
func (g *GameState) resolveShowdown() {
	g.Street = Showdown
	g.ActionSeat = -1

	board := poker.NewHand(g.Board...)
	strengths := make(map[int]poker.Strength, len(g.Players))
	for i := range g.Players {
		p := &g.Players[i]
		if p.InHand() {
			strengths[p.Seat] = poker.Evaluate(p.HoleCards | board)
		}
	}

	for potIdx, pot := range g.Pots {
		var best poker.Strength
		var winners []int
		for _, seat := range pot.Eligible {
			s, ok := strengths[seat]
			if !ok {
				continue
			}
			switch poker.Compare(s, best) {
			case 1:
				best = s
				winners = []int{seat}
			case 0:
				winners = append(winners, seat)
			}
		}
		if len(winners) == 0 {
			continue
		}

		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)
		g.sortByOddChipOrder(winners)
		for _, seat := range winners {
			amount := share
			if remainder > 0 {
				amount++
				remainder--
			}
			winner := g.PlayerBySeat(seat)
			winner.Stack += amount
			g.Winners = append(g.Winners, Winner{
				Seat:     seat,
				PlayerID: winner.ID,
				Amount:   amount,
				HandDesc: strengths[seat].String(),
				Pot:      potIdx,
			})
			g.record(EventWin, seat, amount, false)
		}
	}
	g.emptyPots()
}

// sortByOddChipOrder orders seats by clockwise distance from the seat
// immediately after the dealer, the standard odd-chip rule.
func (g *GameState) sortByOddChipOrder(seats []int) {
	dist := func(seat int) int {
		return (seat - g.Dealer - 1 + 2*MaxSeats) % MaxSeats
	}
	sort.Slice(seats, func(i, j int) bool {
		return dist(seats[i]) < dist(seats[j])
	})
}
