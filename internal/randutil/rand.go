package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Identical seeds always produce identical sequences, which is what hand
// replay relies on. The helper centralises how the two 64-bit seeds required
// by rand/v2 are derived from a single user-facing seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewUnseeded returns a *rand.Rand with a non-reproducible seed. Used for
// shuffles where no replay seed was requested.
func NewUnseeded() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), mix(uint64(time.Now().UnixNano()))))
}

// Derive computes an independent sub-seed from a base seed and an
// index. Sessions use it to give every hand its own shuffle seed while
// staying replayable from a single seed.
func Derive(seed int64, index int) int64 {
	return int64(mix(uint64(seed) ^ mix(uint64(index)+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
