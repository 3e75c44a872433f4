package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Source is the slice of *rand.Rand that shuffles and computer players need.
// Accepting the interface keeps callers free to pass scripted sources in tests.
type Source interface {
	IntN(n int) int
}

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The two 64-bit PCG seeds are derived with a splitmix step so that adjacent
// seeds (seed, seed+1, ...) still produce unrelated sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewOrRandom uses seed when it is non-zero, otherwise the current time.
// It returns the seed actually used so it can be logged for replay.
func NewOrRandom(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return New(seed), seed
}

// Derive returns the seed for the n-th independent game of a batch.
func Derive(seed int64, n int) int64 {
	return int64(mix(uint64(seed) + uint64(n)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
