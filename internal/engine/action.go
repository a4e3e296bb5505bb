package engine

import "time"

// ActionKind names an action variant. Used in the history log and in
// valid-action enumeration for the trainer UI.
type ActionKind string

const (
	KindFold     ActionKind = "fold"
	KindCheck    ActionKind = "check"
	KindCall     ActionKind = "call"
	KindBet      ActionKind = "bet"
	KindRaise    ActionKind = "raise"
	KindNextHand ActionKind = "next-hand"
)

// Action is a closed set of player action variants. Each variant
// carries only the fields it legitimately uses: a Fold has no amount,
// only Bet and Raise do. The engine serializes actions strictly by
// arrival order; the timestamp is advisory.
type Action interface {
	ActorSeat() int
	DeclaredStreet() Street
	Kind() ActionKind
	isAction()
}

// Base carries the fields common to every action: the acting seat,
// the street the client believes it is acting on (checked against the
// engine's own street), and an advisory timestamp.
type Base struct {
	Seat   int
	Street Street
	At     time.Time
}

// ActorSeat returns the acting player's seat.
func (b Base) ActorSeat() int { return b.Seat }

// DeclaredStreet returns the street the action was declared for.
func (b Base) DeclaredStreet() Street { return b.Street }

// Fold gives up the hand.
type Fold struct{ Base }

// Check passes when no bet is outstanding.
type Check struct{ Base }

// Call matches the current bet. The amount is derived from state; a
// call for more than the player's stack becomes an all-in call for the
// full remaining stack.
type Call struct{ Base }

// Bet opens the betting on a street. Amount is the wager; AllIn
// commits the whole stack and ignores Amount.
type Bet struct {
	Base
	Amount int
	AllIn  bool
}

// Raise increases an outstanding bet. Amount is the increment above
// the current bet-to-match; AllIn commits the whole stack and ignores
// Amount.
type Raise struct {
	Base
	Amount int
	AllIn  bool
}

// NextHand advances from showdown to the next hand.
type NextHand struct{ Base }

func (Fold) Kind() ActionKind     { return KindFold }
func (Check) Kind() ActionKind    { return KindCheck }
func (Call) Kind() ActionKind     { return KindCall }
func (Bet) Kind() ActionKind      { return KindBet }
func (Raise) Kind() ActionKind    { return KindRaise }
func (NextHand) Kind() ActionKind { return KindNextHand }

func (Fold) isAction()     {}
func (Check) isAction()    {}
func (Call) isAction()     {}
func (Bet) isAction()      {}
func (Raise) isAction()    {}
func (NextHand) isAction() {}
