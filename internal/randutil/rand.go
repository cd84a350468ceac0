// Package randutil derives reproducible math/rand/v2 sources for the simulators.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words are derived from the one seed so that every call site
// gets the same sequence for the same seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewFromTime seeds a source from the wall clock. Used when no seed is configured.
func NewFromTime() *rand.Rand {
	return New(time.Now().UnixNano())
}

// Split draws n independent child sources from parent. The children depend
// only on the parent's state, so a seeded parent gives reproducible children.
func Split(parent *rand.Rand, n int) []*rand.Rand {
	if parent == nil {
		parent = NewFromTime()
	}
	children := make([]*rand.Rand, n)
	for i := range children {
		hi, lo := parent.Uint64(), parent.Uint64()
		children[i] = rand.New(rand.NewPCG(mix(hi), mix(lo^goldenRatio64)))
	}
	return children
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
