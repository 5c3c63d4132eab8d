package randx

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the shared pseudo-random source. Override (or wrap with Seed) in
// tests for deterministic sequences.
var (
	mu     sync.Mutex
	source = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// Seed replaces the shared source with one seeded from the given value.
func Seed(seed int64) {
	mu.Lock()
	source = rand.New(rand.NewSource(seed))
	mu.Unlock()
}

// IntBetween returns a uniformly distributed integer in [lo, hi]. When the
// bounds are inverted or equal it returns lo.
func IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	mu.Lock()
	defer mu.Unlock()
	return lo + source.Intn(hi-lo+1)
}

// Vector returns a slice of n integers, each drawn from [lo, hi].
func Vector(n, lo, hi int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = IntBetween(lo, hi)
	}
	return out
}
