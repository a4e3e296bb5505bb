package handid

import (
	"testing"
	"time"

	"github.com/cardroom/trainer/internal/randutil"
)

func TestNewProducesValidIDs(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := New()
		if err := Validate(id); err != nil {
			t.Fatalf("Generated invalid ID %q: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("Duplicate ID %q", id)
		}
		seen[id] = true
	}
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	t.Parallel()

	clock := func() time.Time { return time.UnixMilli(1700000000000) }
	a := NewGenerator(randutil.New(7), clock).Generate()
	b := NewGenerator(randutil.New(7), clock).Generate()
	if a != b {
		t.Errorf("Same seed and clock gave different IDs: %q vs %q", a, b)
	}

	c := NewGenerator(randutil.New(8), clock).Generate()
	if a == c {
		t.Error("Different seeds gave the same ID")
	}
}

func TestIDsSortByTime(t *testing.T) {
	t.Parallel()

	early := NewGenerator(randutil.New(1), func() time.Time { return time.UnixMilli(1700000000000) }).Generate()
	late := NewGenerator(randutil.New(1), func() time.Time { return time.UnixMilli(1700000100000) }).Generate()
	if !(early < late) {
		t.Errorf("Expected %q < %q", early, late)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id      string
		wantErr bool
	}{
		{"01h455vb4pex5vsknk084sn02q", false},
		{"01h455vb4pex5vsknk084sn02", true},   // too short
		{"01h455vb4pex5vsknk084sn02qq", true}, // too long
		{"01h455vb4pex5vsknk084sn0iq", true},  // 'i' not in alphabet
		{"91h455vb4pex5vsknk084sn02q", true},  // first char out of range
	}
	for _, tt := range tests {
		err := Validate(tt.id)
		if tt.wantErr && err == nil {
			t.Errorf("Validate(%q): expected error", tt.id)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("Validate(%q): unexpected error %v", tt.id, err)
		}
	}
}
