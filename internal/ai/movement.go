package ai

import "github.com/udisondev/npcwander/internal/model"

// StepResult is what a movement strategy reports after one patrolling tick.
type StepResult struct {
	Velocity  model.Vec3
	EnterIdle bool
}

// Movement decides how an agent's position advances while it is patrolling.
// All methods run on the agent's tick goroutine.
type Movement interface {
	Kind() MovementKind
	// Begin runs once when the agent starts.
	Begin(a *Agent)
	// Step advances the agent by dt while patrolling.
	Step(a *Agent, dt float64) StepResult
	// Idle runs while the agent is idle and reports whether the strategy ends the idle phase itself.
	Idle(a *Agent, dt float64) bool
	// Redirect overrides the current target with a flee point.
	Redirect(a *Agent, target model.Vec3)
	// OnObstacle reacts to a contact with an obstacle.
	OnObstacle(a *Agent)
	// Halt freezes movement on entering idle.
	Halt(a *Agent)
	// Resume releases movement on leaving idle.
	Resume(a *Agent)
	// Target returns the current destination, if the strategy has one.
	Target() (model.Vec3, bool)
}
