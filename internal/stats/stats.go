// Package stats computes display statistics over engine snapshots.
// Everything here is a pure read; nothing mutates state.
package stats

import (
	"github.com/cardroom/trainer/internal/engine"
)

// PotOdds returns the price the acting player is being offered: the
// amount to call divided by the pot after their call. Zero when no
// call is pending.
func PotOdds(g *engine.GameState) float64 {
	p := g.PlayerBySeat(g.ActionSeat)
	if p == nil {
		return 0
	}
	toCall := g.CurrentBet - p.Bet
	if toCall <= 0 {
		return 0
	}
	if toCall > p.Stack {
		toCall = p.Stack
	}
	return float64(toCall) / float64(g.PotTotal()+toCall)
}

// StackToPotRatio returns the seat's remaining stack divided by the
// current pot. Zero when the seat is empty or the pot is empty.
func StackToPotRatio(g *engine.GameState, seat int) float64 {
	p := g.PlayerBySeat(seat)
	pot := g.PotTotal()
	if p == nil || pot == 0 {
		return 0
	}
	return float64(p.Stack) / float64(pot)
}

// MRatio returns the seat's stack divided by the cost of one orbit
// (blinds plus antes for every seated player), the classic tournament
// pressure measure. Zero when the seat is empty.
func MRatio(g *engine.GameState, seat int) float64 {
	p := g.PlayerBySeat(seat)
	if p == nil {
		return 0
	}
	orbit := g.Table.SmallBlind + g.Table.BigBlind + g.Table.Ante*len(g.Players)
	if orbit == 0 {
		return 0
	}
	return float64(p.Stack) / float64(orbit)
}
