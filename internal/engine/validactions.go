package engine

// Option describes one legal action for the seat awaiting action,
// with the amount bounds the trainer UI needs to build its controls.
// Min and Max are zero for actions without an amount. For a raise the
// bounds are increments above the current bet; Max always means
// committing the whole stack.
type Option struct {
	Kind ActionKind `json:"kind"`
	Min  int        `json:"min,omitempty"`
	Max  int        `json:"max,omitempty"`
}

// ValidActions enumerates the legal actions in the current state. At
// showdown the only possible action is next-hand, and only while at
// least two players still have chips.
func ValidActions(g *GameState) []Option {
	if g.Street == Showdown {
		withChips := g.countWhere(func(p *Player) bool { return p.Stack > 0 })
		if withChips >= 2 {
			return []Option{{Kind: KindNextHand}}
		}
		return nil
	}

	p := g.PlayerBySeat(g.ActionSeat)
	if p == nil || !p.CanAct() {
		return nil
	}

	opts := []Option{{Kind: KindFold}}
	toCall := g.CurrentBet - p.Bet

	if toCall == 0 {
		opts = append(opts, Option{Kind: KindCheck})
	} else {
		call := min(toCall, p.Stack)
		opts = append(opts, Option{Kind: KindCall, Min: call, Max: call})
	}

	if g.CurrentBet == 0 && p.Stack > 0 {
		opts = append(opts, Option{Kind: KindBet, Min: min(g.MinRaise, p.Stack), Max: p.Stack})
	}
	if g.CurrentBet > 0 && p.Stack > toCall && !g.hasActed(p.Seat) {
		// Raise increments; an all-in below the minimum is legal, so
		// Min is capped by the stack. A seat that already acted is
		// facing at most a short all-in and may not raise again.
		opts = append(opts, Option{Kind: KindRaise, Min: min(g.MinRaise, p.Stack-toCall), Max: p.Stack - toCall})
	}
	return opts
}
