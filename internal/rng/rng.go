// Package rng provides the shared unseeded random source used for noise,
// reverb impulses, drone jitter and particle placement.
package rng

import (
	"math"

	"github.com/pion/randutil"
)

// Rand wraps a concurrency-safe generator seeded from crypto/rand.
type Rand struct {
	g randutil.MathRandomGenerator
}

func New() *Rand {
	return &Rand{g: randutil.NewMathRandomGenerator()}
}

// Float64 returns a uniform value in [0,1).
func (r *Rand) Float64() float64 {
	return float64(r.g.Uint64()>>11) * (1.0 / (1 << 53))
}

// Signed returns a uniform value in [-1,1).
func (r *Rand) Signed() float64 {
	return r.Float64()*2 - 1
}

// Angle returns a uniform angle in [0,2π).
func (r *Rand) Angle() float64 {
	return r.Float64() * 2 * math.Pi
}

// Polar returns an inclination angle acos(2u-1) for uniform points on a sphere.
func (r *Rand) Polar() float64 {
	return math.Acos(2*r.Float64() - 1)
}
