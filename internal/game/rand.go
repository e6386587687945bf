package game

import (
	"math/rand"
	"sync"
)

// Rand is the random source used by every non-deterministic rule. Tests
// inject a seeded or scripted implementation to assert exact outcomes.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// LockedRand serializes access to a shared source. The pacing timers and
// HTTP handlers may touch the server-wide source from different goroutines.
type LockedRand struct {
	mu  sync.Mutex
	src Rand
}

func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{src: NewRand(seed)}
}

func (r *LockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}

func (r *LockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}
