package disruption

import (
	"math/rand"
	"time"
)

// Source supplies the random draws used by the simulator.
type Source interface {
	// Choice returns an index in [0, n).
	Choice(n int) int
	// UniformInt returns an integer in [lo, hi], both inclusive.
	UniformInt(lo, hi int) int
	// UniformFloat returns a float in [lo, hi).
	UniformFloat(lo, hi float64) float64
}

// RandSource is a Source backed by math/rand.
//
// Thread-safety: NOT thread-safe. Callers serialise access (the session holds its lock).
type RandSource struct {
	seed int64
	rng  *rand.Rand
}

// NewSource creates a RandSource. A zero seed is replaced by the current time.
func NewSource(seed int64) *RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandSource{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// Seed returns the seed the source was created with.
func (s *RandSource) Seed() int64 { return s.seed }

func (s *RandSource) Choice(n int) int {
	return s.rng.Intn(n)
}

func (s *RandSource) UniformInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

func (s *RandSource) UniformFloat(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}
