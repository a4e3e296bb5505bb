// Package randutil centralises deterministic RNG construction so every
// call site derives identical sequences from the same seed on every
// platform.
package randutil

import (
	"hash/fnv"
	rand "math/rand/v2"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. rand/v2
// PCG needs two 64-bit seeds; both are derived here so all call sites
// get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// SeedFromString maps an arbitrary string seed onto an int64. Callers
// may supply either form; scripted scenarios often use readable names.
func SeedFromString(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// Derive produces the seed for the nth follow-up hand of a session, so
// a whole sequence of hands replays from one root seed.
func Derive(seed int64, n uint64) int64 {
	return int64(mix(uint64(seed) + n*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
