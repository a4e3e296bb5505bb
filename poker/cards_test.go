package poker

import (
	"testing"
)

func TestCardRankSuit(t *testing.T) {
	t.Parallel()

	aceSpades := NewCard(Ace, Spades)
	if aceSpades.Rank() != Ace {
		t.Errorf("Expected rank Ace, got %d", aceSpades.Rank())
	}
	if aceSpades.Suit() != Spades {
		t.Errorf("Expected suit Spades, got %d", aceSpades.Suit())
	}
	if aceSpades.String() != "As" {
		t.Errorf("Expected 'As', got %s", aceSpades.String())
	}

	twoClubs := NewCard(Two, Clubs)
	if twoClubs.String() != "2c" {
		t.Errorf("Expected '2c', got %s", twoClubs.String())
	}
}

func TestParseCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Card
		wantErr bool
	}{
		{"As", NewCard(Ace, Spades), false},
		{"2h", NewCard(Two, Hearts), false},
		{"Kd", NewCard(King, Diamonds), false},
		{"Tc", NewCard(Ten, Clubs), false},
		{"9s", NewCard(Nine, Spades), false},
		{"Xs", 0, true},
		{"Ax", 0, true},
		{"A", 0, true},
		{"", 0, true},
		{"Asx", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseCard(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCard(%q): expected error, got %s", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCard(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCard(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestHandOperations(t *testing.T) {
	t.Parallel()

	h := NewHand(MustParseCards("As Kd 7c")...)
	if h.Count() != 3 {
		t.Fatalf("Expected 3 cards, got %d", h.Count())
	}
	if !h.Has(NewCard(Ace, Spades)) {
		t.Error("Hand should contain As")
	}
	if h.Has(NewCard(Two, Clubs)) {
		t.Error("Hand should not contain 2c")
	}

	h = h.Add(NewCard(Two, Clubs))
	if h.Count() != 4 {
		t.Errorf("Expected 4 cards after add, got %d", h.Count())
	}

	// Adding a card twice is a no-op on a bitset.
	h = h.Add(NewCard(Two, Clubs))
	if h.Count() != 4 {
		t.Errorf("Expected 4 cards after duplicate add, got %d", h.Count())
	}
}

func TestHandCardsRoundTrip(t *testing.T) {
	t.Parallel()

	cards := MustParseCards("As Kd 7c 2h")
	h := NewHand(cards...)
	got := h.Cards()
	if len(got) != len(cards) {
		t.Fatalf("Expected %d cards, got %d", len(cards), len(got))
	}
	for _, c := range cards {
		if !h.Has(c) {
			t.Errorf("Hand missing %s", c)
		}
	}
}

func TestCardTextMarshalling(t *testing.T) {
	t.Parallel()

	c := NewCard(Queen, Hearts)
	text, err := c.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(text) != "Qh" {
		t.Errorf("Expected 'Qh', got %q", text)
	}

	var back Card
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if back != c {
		t.Errorf("Round trip changed card: %s -> %s", c, back)
	}
}
