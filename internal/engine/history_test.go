package engine

import (
	"testing"
)

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestHistoryRecordsHandFlow(t *testing.T) {
	t.Parallel()

	g := newTestHand(t, 1000, 1000, 1000)
	g = mustApply(t, g, call(g, 0))
	g = mustApply(t, g, call(g, 1))
	g = mustApply(t, g, check(g, 2))

	want := []EventKind{
		EventPostSmallBlind, EventPostBigBlind,
		EventCall, EventCall, EventCheck,
		EventDealFlop,
	}
	got := kinds(g.History)
	if len(got) != len(want) {
		t.Fatalf("History = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("History[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	flop := g.History[len(g.History)-1]
	if len(flop.Cards) != 3 {
		t.Errorf("Flop event should carry 3 cards, got %v", flop.Cards)
	}
	if flop.Street != Flop {
		t.Errorf("Flop event street = %s, want %s", flop.Street, Flop)
	}
}

func TestHistoryRecordsAmountsAndAllIn(t *testing.T) {
	t.Parallel()

	g := newTestHand(t, 1000, 1000, 100)
	g = mustApply(t, g, raise(g, 0, 200)) // to 210
	g = mustApply(t, g, fold(g, 1))
	g = mustApply(t, g, call(g, 2)) // all-in for 90 more

	var calls []Event
	for _, e := range g.History {
		if e.Kind == EventCall {
			calls = append(calls, e)
		}
	}
	if len(calls) != 1 {
		t.Fatalf("Expected one call event, got %v", kinds(g.History))
	}
	if calls[0].Amount != 90 || !calls[0].AllIn {
		t.Errorf("Call event = %+v, want amount=90 allIn=true", calls[0])
	}

	// The hand ran out; a win event closes the history.
	last := g.History[len(g.History)-1]
	if last.Kind != EventWin {
		t.Errorf("Last event = %s, want %s", last.Kind, EventWin)
	}
}

func TestHistoryAntes(t *testing.T) {
	t.Parallel()

	cfg := HandConfig{Table: Table{MaxSeats: MaxSeats, SmallBlind: 5, BigBlind: 10, Ante: 2}}
	g := newTestHandWith(t, cfg, nil, 1000, 1000, 1000)

	antes := 0
	for _, e := range g.History {
		if e.Kind == EventPostAnte {
			antes++
			if e.Amount != 2 {
				t.Errorf("Ante amount = %d, want 2", e.Amount)
			}
		}
	}
	if antes != 3 {
		t.Errorf("Expected 3 ante events, got %d", antes)
	}
}
