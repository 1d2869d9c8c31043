package mathutil

import (
	"math"
	"math/rand"
)

// Rand is a seeded source of uniform values. Not safe for concurrent use;
// the simulation owns one per session.
type Rand struct {
	r *rand.Rand
}

// NewRand creates a generator with a fixed seed so runs can be replayed.
func NewRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// RandInt returns an integer uniformly drawn from [lo, hi], both inclusive.
func (g *Rand) RandInt(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + g.r.Intn(hi-lo+1)
}

// RandRange returns a float uniformly drawn between lo and hi. The bounds
// may be given in either order.
func (g *Rand) RandRange(lo, hi float64) float64 {
	return lo + g.r.Float64()*(hi-lo)
}

// Angle returns a uniform angle in [0, 2π).
func (g *Rand) Angle() float64 {
	return g.r.Float64() * 2 * math.Pi
}

// Pick returns a uniform index into a collection of length n.
func (g *Rand) Pick(n int) int {
	return g.r.Intn(n)
}
