package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange(t *testing.T) {
	tests := []struct {
		name   string
		src    Source
		lo, hi float64
		want   float64
	}{
		{"lower bound", Constant(0), 5, 15, 5},
		{"fifth", Constant(0.2), 5, 15, 7},
		{"empty range", Constant(0.7), 3, 3, 3},
		{"reversed range", Constant(0.7), 8, 2, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Range(tt.src, tt.lo, tt.hi), 1e-9)
		})
	}
}

func TestInsideUnitSphere_Bounded(t *testing.T) {
	src := New(42)
	for range 1000 {
		p := InsideUnitSphere(src)
		require.LessOrEqual(t, p.Length(), 1.0+1e-9)
	}
}

func TestInsideUnitSphere_ThreeDraws(t *testing.T) {
	seq := NewSequence(0.5, 0.25, 0.5)
	p := InsideUnitSphere(seq)

	assert.Equal(t, 3, seq.Draws())
	// cosPhi = 0 puts the point on the horizontal plane, azimuth 90 degrees.
	assert.InDelta(t, 0.0, p.Y, 1e-9)
	assert.InDelta(t, 0.0, p.X, 1e-9)
	assert.Greater(t, p.Z, 0.0)
}

func TestHorizontalDirection(t *testing.T) {
	src := New(7)
	for range 200 {
		d := HorizontalDirection(src)
		assert.InDelta(t, 1.0, d.Length(), 1e-9)
		assert.Equal(t, 0.0, d.Y)
	}

	// Both components drawn as zero fall back to +X.
	d := HorizontalDirection(Constant(0.5))
	assert.Equal(t, 1.0, d.X)
}

func TestSequence_Cycles(t *testing.T) {
	seq := NewSequence(0.1, 0.2)
	assert.Equal(t, 0.1, seq.Float64())
	assert.Equal(t, 0.2, seq.Float64())
	assert.Equal(t, 0.1, seq.Float64())
	assert.Equal(t, 0.0, NewSequence().Float64())
}

func TestNew_Deterministic(t *testing.T) {
	a, b := New(99), New(99)
	for range 10 {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}
