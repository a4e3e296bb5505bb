package engine

import (
	"reflect"
	"testing"
)

func TestBuildPotsSinglePot(t *testing.T) {
	t.Parallel()

	players := []Player{
		{Seat: 0, Committed: 30, Status: Active},
		{Seat: 1, Committed: 30, Status: Active},
		{Seat: 2, Committed: 30, Status: Folded},
	}
	pots := buildPots(players)

	if len(pots) != 1 {
		t.Fatalf("Expected 1 pot, got %d", len(pots))
	}
	if pots[0].Amount != 90 {
		t.Errorf("Pot amount = %d, want 90", pots[0].Amount)
	}
	if !reflect.DeepEqual(pots[0].Eligible, []int{0, 1}) {
		t.Errorf("Folded player must not be eligible, got %v", pots[0].Eligible)
	}
}

// Three all-ins at 100, 300 and 500: after the 200 uncalled refund the
// partition is a 300-chip main pot for everyone and a 400-chip side
// pot for the two larger stacks.
func TestSidePotsThreeAllIns(t *testing.T) {
	t.Parallel()

	g := newTestHand(t, 100, 300, 500)
	g = mustApply(t, g, allInRaise(g, 0))
	g = mustApply(t, g, allInRaise(g, 1))
	g = mustApply(t, g, allInRaise(g, 2))

	if g.Street != Showdown {
		t.Fatalf("Expected showdown, on %s", g.Street)
	}

	// Reconstruct the pre-payout partition from the hand history: the
	// resolved pots are reflected in the winners.
	byPot := map[int]int{}
	for _, w := range g.Winners {
		byPot[w.Pot] += w.Amount
	}
	if len(byPot) != 2 {
		t.Fatalf("Expected 2 pots, got %d (%+v)", len(byPot), g.Winners)
	}
	if byPot[0] != 300 {
		t.Errorf("Main pot = %d, want 300", byPot[0])
	}
	if byPot[1] != 400 {
		t.Errorf("Side pot = %d, want 400", byPot[1])
	}

	total := 0
	for seat := 0; seat < 3; seat++ {
		total += stackOf(t, g, seat)
	}
	if total != 900 {
		t.Errorf("Chips not conserved: %d, want 900", total)
	}
}

func TestUncalledBetRefunded(t *testing.T) {
	t.Parallel()

	g := newTestHand(t, 1000, 1000, 1000)
	g = mustApply(t, g, raise(g, 0, 490)) // to 500
	g = mustApply(t, g, fold(g, 1))
	g = mustApply(t, g, fold(g, 2))

	// Seat 0 wins the blinds; the uncalled 490 comes straight back.
	if got := stackOf(t, g, 0); got != 1015 {
		t.Errorf("Winner stack = %d, want 1015", got)
	}
	if len(g.Winners) != 1 || g.Winners[0].Amount != 25 {
		t.Errorf("Winners = %+v, want one 25-chip award", g.Winners)
	}
}

func TestBuildPotsEligibilityLevels(t *testing.T) {
	t.Parallel()

	players := []Player{
		{Seat: 0, Committed: 100, Status: AllIn},
		{Seat: 1, Committed: 300, Status: AllIn},
		{Seat: 2, Committed: 300, Status: Active},
	}
	pots := buildPots(players)

	if len(pots) != 2 {
		t.Fatalf("Expected 2 pots, got %+v", pots)
	}
	if pots[0].Cap != 100 || pots[0].Amount != 300 {
		t.Errorf("Main pot cap=%d amount=%d, want 100/300", pots[0].Cap, pots[0].Amount)
	}
	if !reflect.DeepEqual(pots[0].Eligible, []int{0, 1, 2}) {
		t.Errorf("Main pot eligible = %v, want all three", pots[0].Eligible)
	}
	if pots[1].Cap != 300 || pots[1].Amount != 400 {
		t.Errorf("Side pot cap=%d amount=%d, want 300/400", pots[1].Cap, pots[1].Amount)
	}
	if !reflect.DeepEqual(pots[1].Eligible, []int{1, 2}) {
		t.Errorf("Side pot eligible = %v, want seats 1 and 2", pots[1].Eligible)
	}
}

func TestPotConservationAcrossSweeps(t *testing.T) {
	t.Parallel()

	g := newTestHand(t, 1000, 1000, 1000)
	g = mustApply(t, g, call(g, 0))
	g = mustApply(t, g, call(g, 1))
	g = mustApply(t, g, check(g, 2))

	if len(g.Pots) != 1 || g.Pots[0].Amount != 30 {
		t.Fatalf("Preflop sweep should leave one 30-chip pot, got %+v", g.Pots)
	}

	g = mustApply(t, g, bet(g, 1, 50))
	g = mustApply(t, g, call(g, 2))
	g = mustApply(t, g, fold(g, 0))

	if g.Pots[0].Amount != 130 {
		t.Errorf("Pot after flop = %d, want 130", g.Pots[0].Amount)
	}
	if g.PotTotal() != 130 {
		t.Errorf("PotTotal = %d, want 130", g.PotTotal())
	}
}
