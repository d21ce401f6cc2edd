package model

// BehaviorState is the mutually exclusive high-level mode of an agent.
type BehaviorState int32

const (
	// StatePatrolling - agent follows its movement strategy
	StatePatrolling BehaviorState = iota
	// StateIdle - movement suppressed, idle poses cycle
	StateIdle
)

// String returns human-readable state name
func (s BehaviorState) String() string {
	switch s {
	case StatePatrolling:
		return "PATROLLING"
	case StateIdle:
		return "IDLE"
	default:
		return "UNKNOWN"
	}
}
