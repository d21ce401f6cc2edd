package testutil

import (
	"testing"

	"github.com/udisondev/npcwander/internal/model"
)

// AssertVecInDelta checks every component of got is within delta of want.
func AssertVecInDelta(t testing.TB, want, got model.Vec3, delta float64) {
	t.Helper()

	d := got.Sub(want)
	if abs(d.X) > delta || abs(d.Y) > delta || abs(d.Z) > delta {
		t.Errorf("vector mismatch: expected %+v, got %+v (delta %v)", want, got, delta)
	}
}

// AssertOnGround checks pos lies at ground height within a small tolerance.
func AssertOnGround(t testing.TB, groundY float64, pos model.Vec3) {
	t.Helper()

	if abs(pos.Y-groundY) > 1e-9 {
		t.Errorf("position %+v is not on ground height %v", pos, groundY)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
