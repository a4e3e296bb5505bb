package server

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroom/trainer/internal/engine"
	"github.com/cardroom/trainer/internal/stats"
	"github.com/cardroom/trainer/internal/validate"
)

// Session is the single writer for one table's state. All mutation goes
// through Submit under the mutex; reads hand out the current snapshot
// pointer, which is safe because applied states are never mutated
// again.
type Session struct {
	mu     sync.Mutex
	state  *engine.GameState
	clock  quartz.Clock
	logger *log.Logger

	subscribers map[chan *engine.GameState]bool
}

// NewSession starts a session by dealing the first hand from the given
// configuration.
func NewSession(cfg engine.HandConfig, clock quartz.Clock, logger *log.Logger) (*Session, error) {
	state, err := engine.NewHand(cfg, nil)
	if err != nil {
		return nil, err
	}
	logger = logger.WithPrefix("session")
	logger.Info("hand dealt", "hand", state.HandID, "players", len(state.Players), "dealer", state.Dealer)
	return &Session{
		state:       state,
		clock:       clock,
		logger:      logger,
		subscribers: make(map[chan *engine.GameState]bool),
	}, nil
}

// State returns the current snapshot.
func (s *Session) State() *engine.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit validates and applies one raw action. A validation failure or
// an engine rejection leaves the state untouched and is returned to the
// caller; only invariant violations are fatal.
func (s *Session) Submit(raw validate.RawAction) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	action, err := validate.Action(raw, s.state.Table, s.clock.Now())
	if err != nil {
		s.logger.Debug("rejected input", "err", err)
		return s.state, err
	}

	next, err := engine.Apply(s.state, action)
	if err != nil {
		if _, ok := engine.IsRejection(err); ok {
			s.logger.Debug("rejected action",
				"kind", action.Kind(), "seat", action.ActorSeat(), "err", err)
			return s.state, err
		}
		s.logger.Error("engine invariant violated", "err", err)
		return s.state, err
	}

	s.logger.Info("applied action",
		"kind", action.Kind(), "seat", action.ActorSeat(),
		"street", next.Street, "pot", next.PotTotal())
	s.state = next
	s.broadcast(next)
	return next, nil
}

// Subscribe registers a channel that receives every state transition.
// The channel is buffered by the caller; slow subscribers miss updates
// rather than blocking the writer.
func (s *Session) Subscribe() chan *engine.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan *engine.GameState, 16)
	s.subscribers[ch] = true
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (s *Session) Unsubscribe(ch chan *engine.GameState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscribers[ch] {
		delete(s.subscribers, ch)
		close(ch)
	}
}

func (s *Session) broadcast(state *engine.GameState) {
	for ch := range s.subscribers {
		select {
		case ch <- state:
		default:
		}
	}
}

// Stats bundles the derived numbers the trainer UI shows alongside the
// table.
type Stats struct {
	PotOdds    float64         `json:"potOdds"`
	SPR        map[int]float64 `json:"spr"`
	MRatio     map[int]float64 `json:"mRatio"`
	Options    []engine.Option `json:"options"`
	ActionSeat int             `json:"actionSeat"`
}

// Stats computes display statistics for the current state.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()

	out := Stats{
		PotOdds:    stats.PotOdds(state),
		SPR:        make(map[int]float64),
		MRatio:     make(map[int]float64),
		Options:    engine.ValidActions(state),
		ActionSeat: state.ActionSeat,
	}
	for _, p := range state.Players {
		out.SPR[p.Seat] = stats.StackToPotRatio(state, p.Seat)
		out.MRatio[p.Seat] = stats.MRatio(state, p.Seat)
	}
	return out
}
