package ai

import (
	"log/slog"

	"github.com/udisondev/npcwander/internal/model"
	"github.com/udisondev/npcwander/internal/rng"
)

type patrolPhase int32

const (
	phaseRetarget patrolPhase = iota // pick a destination this tick
	phaseSeeking                     // waiting for arrival or the deadline
	phaseDwelling                    // arrived, resting before the next pick
)

// PathfoundMovement patrols random reachable points around the agent.
// Path following is delegated to the Navigator; this type only decides when
// and where to re-target.
type PathfoundMovement struct {
	nav     Navigator
	surface Surface
	src     rng.Source

	radius        float64
	wait          float64
	arrive        float64
	rotationSpeed float64

	phase      patrolPhase
	deadline   Timer
	dwell      Timer
	target     model.Vec3
	hasTarget  bool
	overridden bool
}

// NewPathfoundMovement creates the navmesh patrol strategy.
func NewPathfoundMovement(nav Navigator, surface Surface, src rng.Source, p Params) *PathfoundMovement {
	return &PathfoundMovement{
		nav:           nav,
		surface:       surface,
		src:           src,
		radius:        p.PatrolRadius,
		wait:          p.PatrolPointWaitTime,
		arrive:        p.ArriveDistance,
		rotationSpeed: p.RotationSpeed,
		deadline:      NewTimer(p.PatrolPointWaitTime, p.PatrolPointWaitTime),
		dwell:         NewTimer(p.PatrolPointWaitTime, p.PatrolPointWaitTime),
	}
}

// Kind returns MovementPathfound.
func (m *PathfoundMovement) Kind() MovementKind {
	return MovementPathfound
}

// Begin schedules the first patrol target.
func (m *PathfoundMovement) Begin(a *Agent) {
	m.phase = phaseRetarget
}

// Step runs the re-target policy, then lets the navigator follow the path.
func (m *PathfoundMovement) Step(a *Agent, dt float64) StepResult {
	switch m.phase {
	case phaseRetarget:
		m.retarget(a)

	case phaseSeeking:
		if m.arrived() {
			m.overridden = false
			m.phase = phaseDwelling
			m.dwell.Set(m.wait)
		} else if m.deadline.Elapse(dt) {
			if IsDebugEnabled() {
				slog.Debug("patrol target abandoned",
					"agent", a.ID(),
					"target", m.target,
					"remaining", m.nav.RemainingDistance())
			}
			m.overridden = false
			m.retarget(a)
		}

	case phaseDwelling:
		if m.dwell.Elapse(dt) {
			m.retarget(a)
		}
	}

	pos, vel := m.nav.Advance(a.pos, dt)
	a.pos = pos
	if dir := vel.Horizontal().Normalized(); !dir.IsZero() {
		a.facing = a.facing.Slerp(dir, m.rotationSpeed*dt)
	}
	return StepResult{Velocity: vel}
}

// arrived reports whether the path resolved and the agent is within the arrive distance.
func (m *PathfoundMovement) arrived() bool {
	return !m.nav.PathPending() && m.nav.RemainingDistance() <= m.arrive
}

// retarget samples a new patrol point inside the patrol sphere and hands it to the navigator.
// On a failed sample or path the previous target stays and the pick is retried after a dwell.
func (m *PathfoundMovement) retarget(a *Agent) {
	candidate := a.pos.Add(rng.InsideUnitSphere(m.src).Scale(m.radius))

	point, ok := m.surface.SamplePoint(candidate, m.radius)
	if !ok {
		m.retryLater(a, "no reachable sample point", candidate)
		return
	}

	if err := m.nav.SetDestination(a.pos, point); err != nil {
		m.retryLater(a, err.Error(), point)
		return
	}

	m.target = point
	m.hasTarget = true
	m.phase = phaseSeeking
	m.deadline.Set(m.wait)

	if IsDebugEnabled() {
		slog.Debug("patrol target selected", "agent", a.ID(), "target", point)
	}
}

func (m *PathfoundMovement) retryLater(a *Agent, reason string, point model.Vec3) {
	m.phase = phaseDwelling
	m.dwell.Set(m.wait)

	if IsDebugEnabled() {
		slog.Debug("patrol retarget failed",
			"agent", a.ID(),
			"point", point,
			"reason", reason)
	}
}

// Idle never ends the idle phase; the AFK scheduler owns it for this variant.
func (m *PathfoundMovement) Idle(a *Agent, dt float64) bool {
	return false
}

// Redirect sends the navigator to the flee point and holds patrol re-targeting
// until it is reached or the wait deadline passes. The point is projected onto
// the surface first, the way a navmesh destination snaps to the nearest polygon.
func (m *PathfoundMovement) Redirect(a *Agent, target model.Vec3) {
	if p, ok := m.surface.SamplePoint(target, m.radius); ok {
		target = p
	}
	if err := m.nav.SetDestination(a.pos, target); err != nil {
		if IsDebugEnabled() {
			slog.Debug("avoidance path failed", "agent", a.ID(), "target", target, "err", err)
		}
		return
	}
	m.target = target
	m.hasTarget = true
	m.overridden = true
	m.phase = phaseSeeking
	m.deadline.Set(m.wait)
}

// OnObstacle is a no-op: the navigator routes around static obstacles.
func (m *PathfoundMovement) OnObstacle(a *Agent) {}

// Halt stops the navigator in place.
func (m *PathfoundMovement) Halt(a *Agent) {
	m.nav.SetStopped(true)
}

// Resume releases the navigator.
func (m *PathfoundMovement) Resume(a *Agent) {
	m.nav.SetStopped(false)
}

// Target returns the current patrol or flee destination.
func (m *PathfoundMovement) Target() (model.Vec3, bool) {
	return m.target, m.hasTarget
}

// Overridden reports whether the current destination came from threat avoidance.
func (m *PathfoundMovement) Overridden() bool {
	return m.overridden
}
