// Package engine implements the deterministic hand state machine for
// the trainer. Every transition is a pure function from (state,
// action) to a new state: callers keep snapshots, the engine never
// retains references across calls.
package engine

import (
	"fmt"
	"slices"

	"github.com/cardroom/trainer/poker"
)

// MaxSeats is the largest table the engine supports.
const MaxSeats = 10

// Street is a betting round or the terminal resolution phase.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

var streetNames = [...]string{"preflop", "flop", "turn", "river", "showdown"}

func (s Street) String() string {
	if s < Preflop || s > Showdown {
		return "unknown"
	}
	return streetNames[s]
}

// MarshalText renders the street name in snapshots.
func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses the street name in snapshots.
func (s *Street) UnmarshalText(text []byte) error {
	parsed, err := ParseStreet(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStreet parses a street name as submitted by clients.
func ParseStreet(name string) (Street, error) {
	for i, n := range streetNames {
		if n == name {
			return Street(i), nil
		}
	}
	return 0, fmt.Errorf("unknown street %q", name)
}

// Status describes a player's standing within the current hand.
type Status int

const (
	Active Status = iota
	Folded
	AllIn
	SittingOut
)

var statusNames = [...]string{"active", "folded", "all-in", "sitting-out"}

func (s Status) String() string {
	if s < Active || s > SittingOut {
		return "unknown"
	}
	return statusNames[s]
}

// MarshalText renders the status name in snapshots.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses the status name in snapshots.
func (s *Status) UnmarshalText(text []byte) error {
	for i, n := range statusNames {
		if n == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Player is one seat's state within a hand.
type Player struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Seat      int        `json:"seat"`
	Stack     int        `json:"stack"`
	Bet       int        `json:"bet"`       // current street, not yet swept into a pot
	Committed int        `json:"committed"` // swept into pots this hand
	Status    Status     `json:"status"`
	HoleCards poker.Hand `json:"holeCards"`
}

// CanAct reports whether the player may still take betting actions.
func (p *Player) CanAct() bool {
	return p.Status == Active
}

// InHand reports whether the player is still contesting the pot.
func (p *Player) InHand() bool {
	return p.Status == Active || p.Status == AllIn
}

// Pot is a main or side pot together with the seats allowed to win it.
type Pot struct {
	Amount   int   `json:"amount"`
	Eligible []int `json:"eligible"` // seats, ascending
	Cap      int   `json:"cap"`      // per-player contribution level that closes this pot
}

// Winner records one payout at showdown: a player, the pot it came
// from, and the winning hand category. HandDesc is empty for
// uncontested wins, where no cards are evaluated or revealed.
type Winner struct {
	Seat     int    `json:"seat"`
	PlayerID string `json:"playerId"`
	Amount   int    `json:"amount"`
	HandDesc string `json:"handDesc,omitempty"`
	Pot      int    `json:"pot"`
}

// Table holds the fixed table parameters for a hand.
type Table struct {
	MaxSeats   int `json:"maxSeats"`
	SmallBlind int `json:"smallBlind"`
	BigBlind   int `json:"bigBlind"`
	Ante       int `json:"ante"`
}

// SeatConfig seats one player for a new hand.
type SeatConfig struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stack int    `json:"stack"`
	Seat  int    `json:"seat"`
}

// HandConfig describes everything needed to start a hand.
type HandConfig struct {
	ID      string       `json:"id"`
	Players []SeatConfig `json:"players"`
	Table   Table        `json:"table"`
	Dealer  int          `json:"dealer"`
	Seed    int64        `json:"seed"`
}

// Scenario pins cards for scripted setups ("Hero has AA"). Pinned
// cards are removed from the deck and the residual set is shuffled
// with the hand's seed, so scripted hands stay fully reproducible.
type Scenario struct {
	HoleCards map[int][]poker.Card // seat -> exactly two cards
	Board     []poker.Card         // up to five community cards, dealt in order
}

// GameState is the authoritative snapshot of a hand. Transitions
// return a new value; the input is never mutated.
type GameState struct {
	HandID     string       `json:"handId"`
	HandNo     int          `json:"handNo"`
	Players    []Player     `json:"players"` // seat ascending, fixed for the hand
	Pots       []Pot        `json:"pots"`
	Street     Street       `json:"street"`
	Board      []poker.Card `json:"board"`
	CurrentBet int          `json:"currentBet"`
	MinRaise   int          `json:"minRaise"`
	ActionSeat int          `json:"actionSeat"` // -1 when no action is pending
	Dealer     int          `json:"dealer"`
	Table      Table        `json:"table"`
	Winners    []Winner     `json:"winners,omitempty"`
	Seed       int64        `json:"seed"`
	History    []Event      `json:"history"`

	seatIdx       [MaxSeats]int // seat -> index into Players, -1 when empty
	acted         uint16        // seats that have acted this street
	deck          []poker.Card  // undealt cards, in deal order
	scriptedBoard []poker.Card  // pinned community cards not yet dealt
	startChips    int           // chip-conservation reference
}

// PlayerBySeat returns the player occupying seat, or nil. The returned
// pointer is into this snapshot's backing array and must be treated as
// read-only by callers.
func (g *GameState) PlayerBySeat(seat int) *Player {
	if seat < 0 || seat >= MaxSeats {
		return nil
	}
	i := g.seatIdx[seat]
	if i < 0 {
		return nil
	}
	return &g.Players[i]
}

// PotTotal returns all pot amounts plus unswept street bets.
func (g *GameState) PotTotal() int {
	total := 0
	for _, pot := range g.Pots {
		total += pot.Amount
	}
	for i := range g.Players {
		total += g.Players[i].Bet
	}
	return total
}

func (g *GameState) rebuildSeatIndex() {
	for i := range g.seatIdx {
		g.seatIdx[i] = -1
	}
	for i := range g.Players {
		g.seatIdx[g.Players[i].Seat] = i
	}
}

// clone deep-copies the state so a transition can mutate freely while
// the caller's snapshot stays intact.
func (g *GameState) clone() *GameState {
	next := *g
	next.Players = slices.Clone(g.Players)
	next.Pots = make([]Pot, len(g.Pots))
	for i, pot := range g.Pots {
		next.Pots[i] = Pot{Amount: pot.Amount, Eligible: slices.Clone(pot.Eligible), Cap: pot.Cap}
	}
	next.Board = slices.Clone(g.Board)
	next.Winners = slices.Clone(g.Winners)
	next.History = slices.Clone(g.History)
	next.deck = slices.Clone(g.deck)
	next.scriptedBoard = slices.Clone(g.scriptedBoard)
	return &next
}

// nextSeat returns the first seat strictly clockwise of from for which
// keep returns true, or -1.
func (g *GameState) nextSeat(from int, keep func(*Player) bool) int {
	for i := 1; i <= MaxSeats; i++ {
		seat := (from + i) % MaxSeats
		if p := g.PlayerBySeat(seat); p != nil && keep(p) {
			return seat
		}
	}
	return -1
}

func (g *GameState) countWhere(keep func(*Player) bool) int {
	n := 0
	for i := range g.Players {
		if keep(&g.Players[i]) {
			n++
		}
	}
	return n
}

func (g *GameState) countCanAct() int {
	return g.countWhere((*Player).CanAct)
}

func (g *GameState) countInHand() int {
	return g.countWhere((*Player).InHand)
}

func (g *GameState) hasActed(seat int) bool {
	return g.acted&(1<<seat) != 0
}

func (g *GameState) markActed(seat int) {
	g.acted |= 1 << seat
}

// checkConservation verifies that no chip was created or destroyed by
// a transition. A failure is a defect in the engine, never a caller
// error, and aborts the transition.
func (g *GameState) checkConservation() error {
	total := g.PotTotal()
	for i := range g.Players {
		total += g.Players[i].Stack
	}
	if total != g.startChips {
		return fmt.Errorf("%w: have %d chips, want %d", ErrInvariant, total, g.startChips)
	}
	return nil
}
