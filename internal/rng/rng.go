// Package rng provides the injectable random source used by agent behaviors.
// Every draw goes through Source so tests can fix seeds or script exact values.
package rng

import (
	"math"
	"math/rand/v2"

	"github.com/udisondev/npcwander/internal/model"
)

// Source yields uniformly distributed values in [0, 1).
type Source interface {
	Float64() float64
}

// New returns a seeded PCG source. Not safe for concurrent use; give each agent its own.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Range returns a value uniformly distributed in [lo, hi].
// A reversed or empty range returns lo.
func Range(src Source, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + (hi-lo)*src.Float64()
}

// Chance reports true with probability p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// InsideUnitSphere returns a point uniformly distributed inside the unit sphere.
// Uses exactly three draws (radius, azimuth, polar) so replays stay aligned.
func InsideUnitSphere(src Source) model.Vec3 {
	r := math.Cbrt(src.Float64())
	theta := 2 * math.Pi * src.Float64()
	cosPhi := 2*src.Float64() - 1
	sinPhi := math.Sqrt(1 - cosPhi*cosPhi)
	return model.Vec3{
		X: r * sinPhi * math.Cos(theta),
		Y: r * cosPhi,
		Z: r * sinPhi * math.Sin(theta),
	}
}

// HorizontalDirection returns a unit vector in the XZ plane built from two
// components drawn in [-1, 1]. Degenerate draws fall back to +X.
func HorizontalDirection(src Source) model.Vec3 {
	d := model.Vec3{X: Range(src, -1, 1), Z: Range(src, -1, 1)}.Normalized()
	if d.IsZero() {
		return model.Vec3{X: 1}
	}
	return d
}
