package game

import (
	"math/rand"
	"time"
)

// Rand is the random source for encounter rolls, flee attempts and
// enemy selection. Tests inject a scripted implementation for
// deterministic replay.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a pseudo-random source. Seed 0 seeds from the clock;
// any other value gives a reproducible sequence.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
