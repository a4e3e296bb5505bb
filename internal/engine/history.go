package engine

import "github.com/cardroom/trainer/poker"

// EventKind names a history entry.
type EventKind string

const (
	EventPostAnte       EventKind = "post-ante"
	EventPostSmallBlind EventKind = "post-small-blind"
	EventPostBigBlind   EventKind = "post-big-blind"
	EventFold           EventKind = "fold"
	EventCheck          EventKind = "check"
	EventCall           EventKind = "call"
	EventBet            EventKind = "bet"
	EventRaise          EventKind = "raise"
	EventDealFlop       EventKind = "deal-flop"
	EventDealTurn       EventKind = "deal-turn"
	EventDealRiver      EventKind = "deal-river"
	EventWin            EventKind = "win"
)

// Event is one entry in the hand's ordered history. The external
// strategy service replays this log to reconstruct its decision-tree
// path for the hand; deals carry the revealed cards, player entries
// carry the chips moved by that action.
type Event struct {
	Kind   EventKind    `json:"kind"`
	Street Street       `json:"street"`
	Seat   int          `json:"seat"` // -1 for deal events
	Amount int          `json:"amount,omitempty"`
	AllIn  bool         `json:"allIn,omitempty"`
	Cards  []poker.Card `json:"cards,omitempty"`
}

func (g *GameState) record(kind EventKind, seat, amount int, allIn bool) {
	g.History = append(g.History, Event{
		Kind:   kind,
		Street: g.Street,
		Seat:   seat,
		Amount: amount,
		AllIn:  allIn,
	})
}

func (g *GameState) recordDeal(kind EventKind, cards []poker.Card) {
	g.History = append(g.History, Event{
		Kind:   kind,
		Street: g.Street,
		Seat:   -1,
		Cards:  cards,
	})
}
