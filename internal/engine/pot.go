package engine

import "sort"

// sweepBets closes out a betting round: any lone over-contribution is
// refunded, street bets move into the players' committed totals, and
// the pot partition is rebuilt from those totals.
func (g *GameState) sweepBets() {
	g.refundUncalled()
	for i := range g.Players {
		p := &g.Players[i]
		p.Committed += p.Bet
		p.Bet = 0
	}
	g.Pots = buildPots(g.Players)
}

// emptyPots zeroes the pot amounts after they have been paid out. The
// pot structure stays on the snapshot for display, but the chips now
// live in the winners' stacks and must not be counted twice.
func (g *GameState) emptyPots() {
	for i := range g.Pots {
		g.Pots[i].Amount = 0
	}
}

// refundUncalled returns the uncalled portion of the highest wager to
// its owner. When exactly one player has contributed more than anyone
// else could match, the excess never enters a pot.
func (g *GameState) refundUncalled() {
	top, second, topIdx, topCount := 0, 0, -1, 0
	for i := range g.Players {
		total := g.Players[i].Committed + g.Players[i].Bet
		switch {
		case total > top:
			second = top
			top, topIdx, topCount = total, i, 1
		case total == top && total > 0:
			topCount++
		case total > second:
			second = total
		}
	}
	if topCount != 1 || top == second {
		return
	}
	// Per-street sweeps keep committed levels matched, so the excess
	// is always part of the current street's bet.
	p := &g.Players[topIdx]
	excess := top - second
	p.Bet -= excess
	p.Stack += excess
}

// buildPots partitions the committed totals into a main pot and side
// pots. Cap levels are the distinct all-in totals plus the overall
// maximum; pots are ordered smallest cap first, which is also the
// order they must be resolved in at showdown. Folded players'
// contributions stay in the pots they funded but are never eligible.
func buildPots(players []Player) []Pot {
	maxCommitted := 0
	capSet := map[int]bool{}
	for i := range players {
		p := &players[i]
		if p.Committed > maxCommitted {
			maxCommitted = p.Committed
		}
		if p.Status == AllIn && p.Committed > 0 {
			capSet[p.Committed] = true
		}
	}
	if maxCommitted == 0 {
		return nil
	}
	capSet[maxCommitted] = true

	caps := make([]int, 0, len(capSet))
	for c := range capSet {
		caps = append(caps, c)
	}
	sort.Ints(caps)

	var pots []Pot
	prev := 0
	for _, cap := range caps {
		pot := Pot{Cap: cap}
		for i := range players {
			p := &players[i]
			slice := min(p.Committed, cap) - prev
			if slice > 0 {
				pot.Amount += slice
			}
			if p.InHand() && p.Committed >= cap {
				pot.Eligible = append(pot.Eligible, p.Seat)
			}
		}
		if pot.Amount > 0 {
			pots = append(pots, pot)
		}
		prev = cap
	}
	return pots
}
