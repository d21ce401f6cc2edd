package ai

import "github.com/udisondev/npcwander/internal/model"

// Controller is the per-agent behavior driven by TickManager.
type Controller interface {
	// ID returns the controlled object ID
	ID() uint32

	// Start enables per-tick updates
	Start()

	// Stop disables per-tick updates
	Stop()

	// Tick performs one decision pass with dt seconds elapsed
	Tick(dt float64)

	// State returns the current behavior state
	State() model.BehaviorState

	// Disabled reports whether the controller failed to initialize
	Disabled() bool
}

var _ Controller = (*Agent)(nil)
