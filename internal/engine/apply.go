package engine

import (
	"fmt"

	"github.com/cardroom/trainer/poker"
)

// Apply is the engine's single entry point. It validates the action
// against the current state and returns the resulting snapshot. On a
// rejection the prior state is returned unchanged alongside the
// *Rejection; the input state is never mutated either way. Any
// automatic street run-out and showdown resolution triggered by the
// action completes before Apply returns.
func Apply(g *GameState, action Action) (*GameState, error) {
	if g == nil || action == nil {
		return g, fmt.Errorf("apply: nil state or action")
	}

	if _, ok := action.(NextHand); ok {
		return nextHand(g)
	}

	if g.Street == Showdown {
		return g, reject(RejectHandOver, "hand is complete, submit next-hand to continue")
	}
	seat := action.ActorSeat()
	if seat != g.ActionSeat {
		return g, reject(RejectOutOfTurn, "seat %d acted but action is on seat %d", seat, g.ActionSeat)
	}
	if ds := action.DeclaredStreet(); ds != g.Street {
		return g, reject(RejectWrongStreet, "action declared for %s but hand is on %s", ds, g.Street)
	}

	next := g.clone()
	p := next.PlayerBySeat(seat)

	var err error
	switch a := action.(type) {
	case Fold:
		next.applyFold(p)
	case Check:
		err = next.applyCheck(p)
	case Call:
		next.applyCall(p)
	case Bet:
		err = next.applyBet(p, a)
	case Raise:
		err = next.applyRaise(p, a)
	}
	if err != nil {
		return g, err
	}

	next.advance()
	if err := next.checkConservation(); err != nil {
		return g, err
	}
	return next, nil
}

func (g *GameState) applyFold(p *Player) {
	p.Status = Folded
	g.markActed(p.Seat)
	g.record(EventFold, p.Seat, 0, false)
}

func (g *GameState) applyCheck(p *Player) error {
	if p.Bet != g.CurrentBet {
		return reject(RejectIllegalAction, "cannot check facing a bet of %d", g.CurrentBet)
	}
	g.markActed(p.Seat)
	g.record(EventCheck, p.Seat, 0, false)
	return nil
}

// applyCall matches the current bet. Calling for more than the stack
// is automatically an all-in call for the full remaining stack.
func (g *GameState) applyCall(p *Player) {
	toCall := g.CurrentBet - p.Bet
	commit := min(toCall, p.Stack)
	p.Stack -= commit
	p.Bet += commit
	if p.Stack == 0 {
		p.Status = AllIn
	}
	g.markActed(p.Seat)
	g.record(EventCall, p.Seat, commit, p.Status == AllIn)
}

func (g *GameState) applyBet(p *Player, a Bet) error {
	if g.CurrentBet != 0 {
		return reject(RejectIllegalAction, "bet of %d is outstanding, raise instead", g.CurrentBet)
	}
	amount := a.Amount
	if a.AllIn {
		amount = p.Stack
	}
	if amount <= 0 {
		return reject(RejectBelowMinimum, "bet must be positive")
	}
	if amount > p.Stack {
		return reject(RejectInsufficientChips, "bet of %d exceeds stack of %d", amount, p.Stack)
	}
	// An all-in for less than the minimum is always legal.
	if amount < g.MinRaise && amount < p.Stack {
		return reject(RejectBelowMinimum, "bet of %d is below minimum of %d", amount, g.MinRaise)
	}

	p.Stack -= amount
	p.Bet = amount
	if p.Stack == 0 {
		p.Status = AllIn
	}
	g.reopenBetting(p.Seat, amount)
	// A short all-in opening bet never lowers the raise bar below the
	// big blind.
	if g.MinRaise < g.Table.BigBlind {
		g.MinRaise = g.Table.BigBlind
	}
	g.record(EventBet, p.Seat, amount, p.Status == AllIn)
	return nil
}

func (g *GameState) applyRaise(p *Player, a Raise) error {
	if g.CurrentBet == 0 {
		return reject(RejectIllegalAction, "no bet outstanding, bet instead")
	}
	// Only a full raise re-opens the action. A seat that already acted
	// this round is facing at most a short all-in and may call or fold,
	// never raise again.
	if g.hasActed(p.Seat) {
		return reject(RejectIllegalAction, "betting was not re-opened, call or fold")
	}

	var commit, newBet int
	if a.AllIn {
		commit = p.Stack
		newBet = p.Bet + commit
		if commit <= 0 {
			return reject(RejectIllegalAction, "no chips left to raise")
		}
	} else {
		increment := a.Amount
		if increment <= 0 {
			return reject(RejectBelowMinimum, "raise must be positive")
		}
		newBet = g.CurrentBet + increment
		commit = newBet - p.Bet
		if commit > p.Stack {
			return reject(RejectInsufficientChips, "raise needs %d chips but stack is %d", commit, p.Stack)
		}
		// A short raise is only legal when it puts the player all-in.
		if increment < g.MinRaise && commit < p.Stack {
			return reject(RejectBelowMinimum, "raise of %d is below minimum of %d", increment, g.MinRaise)
		}
	}

	p.Stack -= commit
	p.Bet = newBet
	if p.Stack == 0 {
		p.Status = AllIn
	}
	switch increment := newBet - g.CurrentBet; {
	case increment >= g.MinRaise:
		g.reopenBetting(p.Seat, increment)
	case increment > 0:
		// Short all-in: the bet to match rises, but the minimum raise
		// is unchanged and the action is not reopened. Players yet to
		// match the new bet still get to call.
		g.CurrentBet = newBet
		g.markActed(p.Seat)
	default:
		// All-in that fails to exceed the outstanding bet plays as a
		// call; it cannot reopen the betting.
		g.markActed(p.Seat)
	}
	g.record(EventRaise, p.Seat, commit, p.Status == AllIn)
	return nil
}

// reopenBetting applies the bookkeeping for an aggressive action:
// everyone else must act again, and the increment sets the bar for the
// next raise.
func (g *GameState) reopenBetting(seat, increment int) {
	p := g.PlayerBySeat(seat)
	g.MinRaise = increment
	g.CurrentBet = p.Bet
	g.acted = 0
	g.markActed(seat)
}

// advance moves the action to the next seat, or closes the betting
// round when no action remains.
func (g *GameState) advance() {
	if g.countInHand() == 1 {
		g.resolveUncontested()
		return
	}
	if g.bettingComplete() {
		g.closeStreet()
		return
	}
	g.ActionSeat = g.nextSeat(g.ActionSeat, (*Player).CanAct)
}

// bettingComplete reports whether every player who can still act has
// both acted this street and matched the current bet. Blinds do not
// count as having acted, which is what gives the big blind its
// preflop option.
func (g *GameState) bettingComplete() bool {
	for i := range g.Players {
		p := &g.Players[i]
		if !p.CanAct() {
			continue
		}
		if !g.hasActed(p.Seat) || p.Bet != g.CurrentBet {
			return false
		}
	}
	return true
}

// closeStreet sweeps the bets and advances to the next street. When
// fewer than two players can still act, the remaining community cards
// are dealt in one deterministic step straight through to showdown.
func (g *GameState) closeStreet() {
	g.sweepBets()
	for {
		if g.Street == River {
			g.resolveShowdown()
			return
		}
		g.dealNextStreet()
		g.CurrentBet = 0
		g.MinRaise = g.Table.BigBlind
		g.acted = 0
		if g.countCanAct() > 1 {
			g.ActionSeat = g.nextSeat(g.Dealer, (*Player).CanAct)
			return
		}
		// Run-out: betting is over for the hand.
		g.ActionSeat = -1
	}
}

func (g *GameState) dealNextStreet() {
	switch g.Street {
	case Preflop:
		g.Street = Flop
		cards := g.draw(3)
		g.Board = append(g.Board, cards...)
		g.recordDeal(EventDealFlop, cards)
	case Flop:
		g.Street = Turn
		cards := g.draw(1)
		g.Board = append(g.Board, cards...)
		g.recordDeal(EventDealTurn, cards)
	case Turn:
		g.Street = River
		cards := g.draw(1)
		g.Board = append(g.Board, cards...)
		g.recordDeal(EventDealRiver, cards)
	}
}

// draw takes the next n community cards, preferring any scripted board
// cards before falling back to the deck.
func (g *GameState) draw(n int) []poker.Card {
	cards := make([]poker.Card, 0, n)
	for len(cards) < n {
		if len(g.scriptedBoard) > 0 {
			cards = append(cards, g.scriptedBoard[0])
			g.scriptedBoard = g.scriptedBoard[1:]
			continue
		}
		cards = append(cards, g.deck[0])
		g.deck = g.deck[1:]
	}
	return cards
}
