// Package handid generates hand identifiers: UUIDv7 values encoded as
// 26-character Crockford base32 strings. They sort by creation time
// and stay deterministic when a rand source is injected.
package handid

import (
	crand "crypto/rand"
	"fmt"
	"strings"
	"time"
)

// Crockford's base32 alphabet, as used by TypeID.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random tail of an ID. Injecting one makes ID
// generation reproducible for a seeded hand sequence.
type RandSource interface {
	IntN(n int) int
}

// Clock supplies the timestamp half of an ID.
type Clock func() time.Time

// Generator builds hand IDs with configurable randomness and time.
type Generator struct {
	rand  RandSource
	clock Clock
}

// NewGenerator returns a generator. Either argument may be nil: a nil
// rand source falls back to crypto/rand, a nil clock to time.Now.
func NewGenerator(rand RandSource, clock Clock) *Generator {
	if clock == nil {
		clock = time.Now
	}
	return &Generator{rand: rand, clock: clock}
}

// New generates a hand ID with crypto/rand randomness.
func New() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate creates a new hand ID.
func (g *Generator) Generate() string {
	var uuid [16]byte

	// UUIDv7: 48-bit millisecond timestamp, then version/variant bits
	// over random data.
	now := g.clock().UnixMilli()
	for i := 0; i < 6; i++ {
		uuid[i] = byte(now >> (40 - 8*i))
	}

	if g.rand != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(g.rand.IntN(256))
		}
	} else {
		if _, err := crand.Read(uuid[6:]); err != nil {
			panic("handid: " + err.Error())
		}
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70 // version 7
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // variant 10

	return encode(uuid)
}

// encode writes the 128-bit value as 26 base32 characters, 5 bits per
// character, two leading zero bits of padding.
func encode(data [16]byte) string {
	var out [26]byte
	for i := range out {
		bit := i * 5
		idx := bit / 8
		off := bit % 8

		var v byte
		if off <= 3 {
			v = (data[idx] >> (3 - off)) & 0x1f
		} else {
			v = (data[idx] << (off - 3)) & 0x1f
			if idx+1 < len(data) {
				v |= data[idx+1] >> (11 - off)
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Validate checks that id is a well-formed hand ID.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("hand ID must be 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("hand ID first character must be 0-7, got %c", id[0])
	}
	for i, ch := range id {
		if !strings.ContainsRune(alphabet, ch) {
			return fmt.Errorf("invalid character %c at position %d", ch, i)
		}
	}
	return nil
}
