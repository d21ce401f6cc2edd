package ai

import "github.com/udisondev/npcwander/internal/rng"

// AFKTransition is the outcome of advancing the AFK scheduler.
type AFKTransition int32

const (
	AFKNone AFKTransition = iota
	AFKEnter
	AFKExit
)

// String returns human-readable transition name
func (t AFKTransition) String() string {
	switch t {
	case AFKNone:
		return "none"
	case AFKEnter:
		return "enter"
	case AFKExit:
		return "exit"
	default:
		return "unknown"
	}
}

// AFKScheduler drives the repeating two-phase idle cycle of pathfound agents:
// wait a random delay, go idle for a random duration, repeat.
// Only one of the two timers is armed at a time.
type AFKScheduler struct {
	delay    Timer
	duration Timer
	away     bool
}

// NewAFKScheduler creates a scheduler and arms the first delay.
func NewAFKScheduler(delayMin, delayMax, afkMin, afkMax float64, src rng.Source) *AFKScheduler {
	s := &AFKScheduler{
		delay:    NewTimer(delayMin, delayMax),
		duration: NewTimer(afkMin, afkMax),
	}
	s.delay.Arm(src)
	return s
}

// Advance counts down the active phase and reports a transition on expiry.
func (s *AFKScheduler) Advance(dt float64, src rng.Source) AFKTransition {
	if !s.away {
		if !s.delay.Elapse(dt) {
			return AFKNone
		}
		s.duration.Arm(src)
		s.away = true
		return AFKEnter
	}

	if !s.duration.Elapse(dt) {
		return AFKNone
	}
	s.delay.Arm(src)
	s.away = false
	return AFKExit
}

// Away reports whether the idle phase is running.
func (s *AFKScheduler) Away() bool {
	return s.away
}

// Remaining returns seconds left in the active phase.
func (s *AFKScheduler) Remaining() float64 {
	if s.away {
		return s.duration.Remaining()
	}
	return s.delay.Remaining()
}
