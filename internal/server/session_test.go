package server

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/trainer/internal/engine"
	"github.com/cardroom/trainer/internal/validate"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	cfg := engine.HandConfig{
		Table: engine.Table{MaxSeats: 6, SmallBlind: 5, BigBlind: 10},
		Players: []engine.SeatConfig{
			{ID: "a", Seat: 0, Stack: 1000},
			{ID: "b", Seat: 1, Stack: 1000},
			{ID: "c", Seat: 2, Stack: 1000},
		},
		Seed: 42,
	}
	s, err := NewSession(cfg, quartz.NewMock(t), log.New(io.Discard))
	require.NoError(t, err)
	return s
}

func TestSessionSubmitAppliesAction(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	require.Equal(t, 0, s.State().ActionSeat)

	state, err := s.Submit(validate.RawAction{Type: "call", Seat: 0, Street: "preflop"})
	require.NoError(t, err)
	assert.Equal(t, 1, state.ActionSeat)
	assert.Equal(t, 990, state.PlayerBySeat(0).Stack)
	assert.Same(t, state, s.State())
}

func TestSessionSubmitValidationFailure(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	before := s.State()

	_, err := s.Submit(validate.RawAction{Type: "bet", Seat: 0, Amount: 10.5, Street: "preflop"})
	var fe *validate.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, validate.CodeNotInteger, fe.Code)
	assert.Same(t, before, s.State())
}

func TestSessionSubmitEngineRejection(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	before := s.State()

	_, err := s.Submit(validate.RawAction{Type: "fold", Seat: 2, Street: "preflop"})
	rej, ok := engine.IsRejection(err)
	require.True(t, ok, "expected an engine rejection, got %v", err)
	assert.Equal(t, engine.RejectOutOfTurn, rej.Code)
	assert.Same(t, before, s.State())
}

func TestSessionBroadcastsTransitions(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	updates := s.Subscribe()
	defer s.Unsubscribe(updates)

	state, err := s.Submit(validate.RawAction{Type: "call", Seat: 0, Street: "preflop"})
	require.NoError(t, err)

	got := <-updates
	assert.Same(t, state, got)
}

func TestSessionUnsubscribeClosesChannel(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	updates := s.Subscribe()
	s.Unsubscribe(updates)

	_, open := <-updates
	assert.False(t, open)

	// A second unsubscribe of the same channel is a no-op.
	s.Unsubscribe(updates)
}

func TestSessionStats(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	st := s.Stats()

	assert.Equal(t, 0, st.ActionSeat)
	assert.InDelta(t, 10.0/25.0, st.PotOdds, 1e-9)
	assert.NotEmpty(t, st.Options)
	assert.Len(t, st.SPR, 3)
	assert.Len(t, st.MRatio, 3)
}

func TestSessionFullHandFlow(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)

	submit := func(typ string, seat int, amount float64) {
		t.Helper()
		street := s.State().Street.String()
		_, err := s.Submit(validate.RawAction{Type: typ, Seat: seat, Amount: amount, Street: street})
		require.NoError(t, err)
	}

	submit("fold", 0, 0)
	submit("fold", 1, 0)
	require.Equal(t, engine.Showdown, s.State().Street)

	submit("next-hand", 0, 0)
	state := s.State()
	assert.Equal(t, 2, state.HandNo)
	assert.Equal(t, engine.Preflop, state.Street)
	assert.Equal(t, 1, state.Dealer)
}
