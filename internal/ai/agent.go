package ai

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/udisondev/npcwander/internal/model"
	"github.com/udisondev/npcwander/internal/rng"
)

// Snapshot is a point-in-time view of an agent for logs and diagnostics.
type Snapshot struct {
	ID        uint32
	State     model.BehaviorState
	Movement  MovementKind
	Position  model.Vec3
	Facing    model.Vec3
	Target    model.Vec3
	HasTarget bool
	Pose      model.Pose
	PoseIndex int
	Disabled  bool
}

// Agent is the behavior controller of one NPC.
// Tick, OnContact and Snapshot must be called from the same goroutine; agents
// share no mutable state, so different agents may tick in parallel.
type Agent struct {
	id     uint32
	params Params
	deps   Deps
	src    rng.Source

	pos    model.Vec3
	facing model.Vec3
	spawn  model.Vec3

	state    model.BehaviorState
	movement Movement
	avoider  *ThreatAvoider
	afk      *AFKScheduler
	poses    *PoseSelector
	lastPose model.Pose

	isRunning atomic.Bool
	disabled  bool
	err       error
}

// NewAgent creates the controller for one NPC spawned at pos.
// Missing collaborators do not fail construction: the agent logs the problem,
// stays static for its lifetime and reports the cause through Err.
func NewAgent(id uint32, pos model.Vec3, p Params, deps Deps, src rng.Source) *Agent {
	if src == nil {
		src = rng.New(uint64(id))
	}

	a := &Agent{
		id:     id,
		params: p,
		deps:   deps,
		src:    src,
		pos:    pos,
		spawn:  pos,
		facing: model.Vec3{Z: 1},
		state:  model.StatePatrolling,
		poses:  NewPoseSelector(),
	}

	if err := a.init(); err != nil {
		a.disabled = true
		a.err = fmt.Errorf("agent %d: %w", id, err)
		slog.Error("agent behavior disabled",
			"agent", id,
			"movement", p.Movement,
			"err", err)
	}

	return a
}

// init validates collaborators and builds the behavior components.
func (a *Agent) init() error {
	if a.deps.Poses == nil {
		return ErrMissingPoseSink
	}
	if a.params.needsSpatial() && a.deps.Spatial == nil {
		return ErrMissingSpatial
	}

	switch a.params.Movement {
	case MovementPathfound:
		if a.deps.Navigator == nil {
			return ErrMissingNavigator
		}
		if a.deps.Surface == nil {
			return ErrMissingSurface
		}
		a.movement = NewPathfoundMovement(a.deps.Navigator, a.deps.Surface, a.src, a.params)
		a.afk = NewAFKScheduler(a.params.AFKDelayMin, a.params.AFKDelayMax, a.params.AFKMin, a.params.AFKMax, a.src)

	case MovementSteering:
		if a.deps.Probe == nil {
			return ErrMissingProbe
		}
		a.movement = NewDirectSteering(a.deps.Probe, a.src, a.params)

	default:
		return fmt.Errorf("%w: %d", ErrUnknownMovement, a.params.Movement)
	}

	if a.params.needsSpatial() {
		a.avoider = NewThreatAvoider(a.deps.Spatial, a.params.DetectionRadius, a.params.AvoidDistance, a.params.AvoidanceInterval)
	}

	a.movement.Begin(a)
	return nil
}

// ID returns the agent's object ID.
func (a *Agent) ID() uint32 {
	return a.id
}

// Start enables per-tick updates. A disabled agent never starts.
func (a *Agent) Start() {
	if a.disabled {
		return
	}
	a.isRunning.Store(true)
	slog.Debug("agent behavior started",
		"agent", a.id,
		"movement", a.params.Movement,
		"position", a.pos)
}

// Stop disables per-tick updates.
func (a *Agent) Stop() {
	a.isRunning.Store(false)
	slog.Debug("agent behavior stopped", "agent", a.id)
}

// Disabled reports whether initialization failed.
func (a *Agent) Disabled() bool {
	return a.disabled
}

// Err returns the initialization error of a disabled agent.
func (a *Agent) Err() error {
	return a.err
}

// State returns the current behavior state.
func (a *Agent) State() model.BehaviorState {
	return a.state
}

// Position returns the current position.
func (a *Agent) Position() model.Vec3 {
	return a.pos
}

// Facing returns the current orientation as a unit vector.
func (a *Agent) Facing() model.Vec3 {
	return a.facing
}

// Spawn returns the spawn position.
func (a *Agent) Spawn() model.Vec3 {
	return a.spawn
}

// Movement returns the active movement strategy (nil for a disabled agent).
func (a *Agent) Movement() Movement {
	return a.movement
}

// LastPose returns the last pose signal emitted.
func (a *Agent) LastPose() model.Pose {
	return a.lastPose
}

// Tick runs one decision pass: AFK cycle, threat scan, idle or movement,
// pose signal, height clamp and world sync.
func (a *Agent) Tick(dt float64) {
	if a.disabled || !a.isRunning.Load() {
		return
	}

	entered := false
	if a.afk != nil {
		switch a.afk.Advance(dt, a.src) {
		case AFKEnter:
			entered = a.enterIdle("afk")
		case AFKExit:
			a.exitIdle("afk")
		}
	}

	if a.avoider != nil && a.avoider.Due(dt, a.src) {
		a.scanThreats()
	}

	if a.state == model.StateIdle {
		if a.movement.Idle(a, dt) {
			a.exitIdle("idle elapsed")
		}
		// Entering already emitted the first idle pose this tick.
		if !entered {
			a.emit(a.poses.Next())
		}
	} else {
		a.move(dt)
	}

	a.clampHeight()
	a.sync()
}

// move runs the movement strategy and picks the pose for the resulting velocity.
func (a *Agent) move(dt float64) {
	res := a.movement.Step(a, dt)
	if res.EnterIdle {
		a.enterIdle("reconsider")
		return
	}

	if res.Velocity.Length() > a.params.StationaryEpsilon {
		a.emit(a.poses.Moving())
		return
	}
	// Momentarily stopped while patrolling: play idle poses without entering Idle.
	a.emit(a.poses.Next())
}

// scanThreats applies the nearest threat as a target override.
// While idle the override is suppressed; steering agents may wake up instead.
func (a *Agent) scanThreats() {
	threat, ok := a.avoider.Nearest(a.pos)
	if !ok {
		return
	}

	if a.state == model.StateIdle {
		if a.params.Movement == MovementSteering && a.params.WakeOnThreat {
			a.exitIdle("threat nearby")
		}
		return
	}

	if !a.params.AvoidanceEnabled {
		return
	}

	target := a.avoider.FleePoint(a.pos, threat.Position())
	a.movement.Redirect(a, target)

	if IsDebugEnabled() {
		slog.Debug("avoiding threat",
			"agent", a.id,
			"threat", threat.ObjectID(),
			"class", threat.Class(),
			"target", target)
	}
}

// enterIdle switches to Idle, halts movement and emits the first idle pose.
// It reports false when the agent was already idle.
func (a *Agent) enterIdle(cause string) bool {
	if a.state == model.StateIdle {
		return false
	}
	a.setState(model.StateIdle, cause)
	a.movement.Halt(a)
	a.emit(a.poses.Next())
	return true
}

func (a *Agent) exitIdle(cause string) {
	if a.state != model.StateIdle {
		return
	}
	a.setState(model.StatePatrolling, cause)
	a.movement.Resume(a)
}

func (a *Agent) setState(s model.BehaviorState, cause string) {
	old := a.state
	a.state = s

	if IsDebugEnabled() {
		slog.Debug("behavior state changed",
			"agent", a.id,
			"from", old,
			"to", s,
			"cause", cause)
	}
}

func (a *Agent) emit(p model.Pose) {
	a.lastPose = p
	a.deps.Poses.Play(a.id, p)
}

// clampHeight keeps the agent at or below the configured ceiling.
func (a *Agent) clampHeight() {
	if a.pos.Y > a.params.MaxY {
		a.pos.Y = a.params.MaxY
	}
}

// sync publishes the new position and dispatches the contacts it produced.
func (a *Agent) sync() {
	if a.deps.Body == nil {
		return
	}
	for _, ev := range a.deps.Body.MoveTo(a.pos) {
		a.OnContact(ev)
	}
}

// OnContact handles a contact event from the physics collaborator.
// Only contacts with obstacle-capable entities change direction.
func (a *Agent) OnContact(ev ContactEvent) {
	if a.disabled || !ev.Obstacle {
		return
	}
	a.movement.OnObstacle(a)
}

// Snapshot returns the current agent view.
func (a *Agent) Snapshot() Snapshot {
	s := Snapshot{
		ID:        a.id,
		State:     a.state,
		Movement:  a.params.Movement,
		Position:  a.pos,
		Facing:    a.facing,
		Pose:      a.lastPose,
		PoseIndex: a.poses.Index(),
		Disabled:  a.disabled,
	}
	if a.movement != nil {
		s.Target, s.HasTarget = a.movement.Target()
	}
	return s
}
