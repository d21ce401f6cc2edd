package ai

import "github.com/udisondev/npcwander/internal/rng"

// timerEpsilon absorbs float drift from summing many small dt values.
const timerEpsilon = 1e-9

// Timer is a countdown with a randomized re-arm range [min, max].
// A fixed cadence is a range with min == max, which re-arms without drawing.
type Timer struct {
	min       float64
	max       float64
	remaining float64
	armed     bool
}

// NewTimer creates a disarmed timer with the given re-arm range (seconds).
func NewTimer(minSec, maxSec float64) Timer {
	return Timer{min: minSec, max: maxSec}
}

// Arm starts the countdown with a fresh duration drawn from the range.
func (t *Timer) Arm(src rng.Source) float64 {
	t.remaining = rng.Range(src, t.min, t.max)
	t.armed = true
	return t.remaining
}

// Set starts the countdown with an explicit duration.
func (t *Timer) Set(d float64) {
	t.remaining = d
	t.armed = true
}

// Disarm stops the countdown. Advance on a disarmed timer never fires.
func (t *Timer) Disarm() {
	t.armed = false
	t.remaining = 0
}

// Advance counts down by dt. On expiry it re-arms from its range and returns true,
// so the countdown never stays negative past the tick that fired it.
func (t *Timer) Advance(dt float64, src rng.Source) bool {
	if !t.armed {
		return false
	}
	t.remaining -= dt
	if t.remaining > timerEpsilon {
		return false
	}
	t.Arm(src)
	return true
}

// Elapse counts down a one-shot phase by dt. On expiry the timer disarms and
// Elapse returns true; the owner arms the next phase explicitly.
func (t *Timer) Elapse(dt float64) bool {
	if !t.armed {
		return false
	}
	t.remaining -= dt
	if t.remaining > timerEpsilon {
		return false
	}
	t.Disarm()
	return true
}

// Remaining returns seconds left until expiry.
func (t *Timer) Remaining() float64 {
	return t.remaining
}

// Armed reports whether the timer is counting down.
func (t *Timer) Armed() bool {
	return t.armed
}
