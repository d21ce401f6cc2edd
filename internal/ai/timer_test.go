package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/npcwander/internal/rng"
)

func TestTimer_AdvanceRearms(t *testing.T) {
	src := rng.NewSequence(0.5, 0.0)
	tm := NewTimer(2, 4)
	require.InDelta(t, 3.0, tm.Arm(src), 1e-9)

	assert.False(t, tm.Advance(2.5, src))
	assert.True(t, tm.Advance(0.5, src), "fires at zero")
	assert.True(t, tm.Armed())
	assert.InDelta(t, 2.0, tm.Remaining(), 1e-9, "re-armed from range")
}

func TestTimer_FixedRangeDoesNotDraw(t *testing.T) {
	src := rng.NewSequence(0.9)
	tm := NewTimer(0.1, 0.1)
	tm.Arm(src)

	for range 10 {
		tm.Advance(0.1, src)
	}
	assert.Equal(t, 0, src.Draws())
}

func TestTimer_NeverNegativeAcrossTicks(t *testing.T) {
	src := rng.New(5)
	tm := NewTimer(0.2, 1.5)
	tm.Arm(src)

	for range 1000 {
		tm.Advance(0.37, src)
		require.Greater(t, tm.Remaining(), 0.0)
	}
}

func TestTimer_AbsorbsFloatDrift(t *testing.T) {
	tm := NewTimer(7, 7)
	tm.Set(7)

	fired := 0
	for i := 1; i <= 70; i++ {
		if tm.Elapse(0.1) {
			fired++
			assert.Equal(t, 70, i, "fires on the 70th tenth of a second")
		}
	}
	assert.Equal(t, 1, fired)
}

func TestTimer_Elapse(t *testing.T) {
	tm := NewTimer(1, 1)
	assert.False(t, tm.Elapse(5), "disarmed timer never fires")

	tm.Set(1)
	assert.False(t, tm.Elapse(0.5))
	assert.True(t, tm.Elapse(0.5))
	assert.False(t, tm.Armed())
	assert.Equal(t, 0.0, tm.Remaining())
	assert.False(t, tm.Elapse(10))
}
