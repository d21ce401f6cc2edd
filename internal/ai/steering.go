package ai

import (
	"log/slog"

	"github.com/udisondev/npcwander/internal/model"
	"github.com/udisondev/npcwander/internal/rng"
)

// DirectSteering walks along a held heading, turning on obstacles and
// occasionally dropping into an idle phase.
type DirectSteering struct {
	probe ObstacleProbe
	src   rng.Source

	speed          float64
	rotationSpeed  float64
	raycast        float64
	afkProbability float64

	heading    model.Vec3
	reconsider Timer
	idle       Timer
}

// NewDirectSteering creates the raycast wander strategy.
func NewDirectSteering(probe ObstacleProbe, src rng.Source, p Params) *DirectSteering {
	return &DirectSteering{
		probe:          probe,
		src:            src,
		speed:          p.MoveSpeed,
		rotationSpeed:  p.RotationSpeed,
		raycast:        p.RaycastDistance,
		afkProbability: p.AFKProbability,
		reconsider:     NewTimer(p.ReconsiderMin, p.ReconsiderMax),
		idle:           NewTimer(p.IdleMin, p.IdleMax),
	}
}

// Kind returns MovementSteering.
func (m *DirectSteering) Kind() MovementKind {
	return MovementSteering
}

// Begin picks the first heading and arms the reconsider timer.
func (m *DirectSteering) Begin(a *Agent) {
	m.heading = rng.HorizontalDirection(m.src)
	m.reconsider.Arm(m.src)
}

// Step probes ahead, moves along the heading and rolls for idle when the
// reconsider timer expires. A probe hit turns the agent before it moves.
func (m *DirectSteering) Step(a *Agent, dt float64) StepResult {
	if m.probe.Raycast(a.pos, m.heading, m.raycast) {
		m.changeDirection(a, "probe")
	}

	velocity := m.heading.Scale(m.speed)
	a.pos = a.pos.Add(velocity.Scale(dt))
	a.facing = a.facing.Slerp(m.heading, m.rotationSpeed*dt)

	if !m.reconsider.Advance(dt, m.src) {
		return StepResult{Velocity: velocity}
	}

	if rng.Chance(m.src, m.afkProbability) {
		return StepResult{Velocity: velocity, EnterIdle: true}
	}
	m.heading = rng.HorizontalDirection(m.src)
	return StepResult{Velocity: velocity}
}

// Idle counts down the idle phase and reports its end.
func (m *DirectSteering) Idle(a *Agent, dt float64) bool {
	return m.idle.Elapse(dt)
}

// Redirect turns the heading toward the flee point.
func (m *DirectSteering) Redirect(a *Agent, target model.Vec3) {
	dir := target.Sub(a.pos).Horizontal().Normalized()
	if dir.IsZero() {
		return
	}
	m.heading = dir
}

// OnObstacle picks a new random heading.
func (m *DirectSteering) OnObstacle(a *Agent) {
	m.changeDirection(a, "contact")
}

func (m *DirectSteering) changeDirection(a *Agent, cause string) {
	m.heading = rng.HorizontalDirection(m.src)
	if IsDebugEnabled() {
		slog.Debug("heading changed", "agent", a.ID(), "cause", cause, "heading", m.heading)
	}
}

// Halt arms the idle phase.
func (m *DirectSteering) Halt(a *Agent) {
	m.idle.Arm(m.src)
}

// Resume ends the idle phase with a fresh heading and reconsider countdown.
func (m *DirectSteering) Resume(a *Agent) {
	m.idle.Disarm()
	m.heading = rng.HorizontalDirection(m.src)
	m.reconsider.Arm(m.src)
}

// Target returns false: steering holds a heading, not a destination.
func (m *DirectSteering) Target() (model.Vec3, bool) {
	return model.Vec3{}, false
}

// Heading returns the current movement direction.
func (m *DirectSteering) Heading() model.Vec3 {
	return m.heading
}
