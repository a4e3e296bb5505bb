package engine

import (
	"testing"
)

// newTestHand deals a hand at 5/10 with the given stacks seated from
// seat 0 upward and the dealer on seat 0. The seed is fixed so card
// order is identical across runs.
func newTestHand(t *testing.T, stacks ...int) *GameState {
	t.Helper()
	return newTestHandWith(t, HandConfig{}, nil, stacks...)
}

func newTestHandWith(t *testing.T, cfg HandConfig, scenario *Scenario, stacks ...int) *GameState {
	t.Helper()
	if cfg.Table.SmallBlind == 0 {
		cfg.Table = Table{MaxSeats: MaxSeats, SmallBlind: 5, BigBlind: 10, Ante: cfg.Table.Ante}
	}
	for seat, stack := range stacks {
		cfg.Players = append(cfg.Players, SeatConfig{
			ID:    string(rune('a' + seat)),
			Seat:  seat,
			Stack: stack,
		})
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	g, err := NewHand(cfg, scenario)
	if err != nil {
		t.Fatalf("NewHand: %v", err)
	}
	return g
}

func mustApply(t *testing.T, g *GameState, action Action) *GameState {
	t.Helper()
	next, err := Apply(g, action)
	if err != nil {
		t.Fatalf("Apply(%s by seat %d): %v", action.Kind(), action.ActorSeat(), err)
	}
	return next
}

// mustReject applies an action expecting a rejection with the given
// code and verifies the returned state is the untouched input.
func mustReject(t *testing.T, g *GameState, action Action, code RejectCode) {
	t.Helper()
	prior, err := Apply(g, action)
	if err == nil {
		t.Fatalf("Apply(%s by seat %d): expected rejection %s", action.Kind(), action.ActorSeat(), code)
	}
	rej, ok := IsRejection(err)
	if !ok {
		t.Fatalf("Apply(%s): expected rejection, got %v", action.Kind(), err)
	}
	if rej.Code != code {
		t.Fatalf("Apply(%s): expected code %s, got %s (%s)", action.Kind(), code, rej.Code, rej.Reason)
	}
	if prior != g {
		t.Fatal("Rejection must return the unchanged prior state")
	}
}

func at(g *GameState, seat int) Base {
	return Base{Seat: seat, Street: g.Street}
}

func fold(g *GameState, seat int) Fold   { return Fold{Base: at(g, seat)} }
func check(g *GameState, seat int) Check { return Check{Base: at(g, seat)} }
func call(g *GameState, seat int) Call   { return Call{Base: at(g, seat)} }

func bet(g *GameState, seat, amount int) Bet {
	return Bet{Base: at(g, seat), Amount: amount}
}

func allInBet(g *GameState, seat int) Bet {
	return Bet{Base: at(g, seat), AllIn: true}
}

func raise(g *GameState, seat, increment int) Raise {
	return Raise{Base: at(g, seat), Amount: increment}
}

func allInRaise(g *GameState, seat int) Raise {
	return Raise{Base: at(g, seat), AllIn: true}
}

func stackOf(t *testing.T, g *GameState, seat int) int {
	t.Helper()
	p := g.PlayerBySeat(seat)
	if p == nil {
		t.Fatalf("No player on seat %d", seat)
	}
	return p.Stack
}
