package ai

import "fmt"

// MovementKind selects the movement strategy of an agent.
type MovementKind int32

const (
	MovementPathfound MovementKind = iota
	MovementSteering
)

// String returns the config name of the movement kind.
func (k MovementKind) String() string {
	switch k {
	case MovementPathfound:
		return "pathfound"
	case MovementSteering:
		return "steering"
	default:
		return "unknown"
	}
}

// ParseMovementKind converts a config name to MovementKind.
func ParseMovementKind(name string) (MovementKind, error) {
	switch name {
	case "pathfound":
		return MovementPathfound, nil
	case "steering":
		return MovementSteering, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMovement, name)
	}
}

// Params holds the tunables of one behavior profile. Durations are in seconds,
// distances in world units.
type Params struct {
	Movement MovementKind

	// Shared
	MoveSpeed         float64
	RotationSpeed     float64
	MaxY              float64
	StationaryEpsilon float64

	// Pathfound patrol
	PatrolRadius        float64
	PatrolPointWaitTime float64
	ArriveDistance      float64

	// AFK two-phase cycle (pathfound)
	AFKDelayMin float64
	AFKDelayMax float64
	AFKMin      float64
	AFKMax      float64

	// Direct steering
	ReconsiderMin   float64
	ReconsiderMax   float64
	IdleMin         float64
	IdleMax         float64
	AFKProbability  float64
	RaycastDistance float64
	WakeOnThreat    bool

	// Threat avoidance
	AvoidanceEnabled  bool
	DetectionRadius   float64
	AvoidDistance     float64
	AvoidanceInterval float64
}

// DefaultPathfoundParams returns the navmesh patrol profile.
func DefaultPathfoundParams() Params {
	return Params{
		Movement:            MovementPathfound,
		MoveSpeed:           3.5,
		RotationSpeed:       5,
		MaxY:                1,
		StationaryEpsilon:   0.1,
		PatrolRadius:        20,
		PatrolPointWaitTime: 2,
		ArriveDistance:      0.5,
		AFKDelayMin:         5,
		AFKDelayMax:         15,
		AFKMin:              2,
		AFKMax:              8,
		AvoidanceEnabled:    true,
		DetectionRadius:     10,
		AvoidDistance:       3,
		AvoidanceInterval:   0.1,
	}
}

// DefaultSteeringParams returns the raycast wander profile.
func DefaultSteeringParams() Params {
	return Params{
		Movement:          MovementSteering,
		MoveSpeed:         3,
		RotationSpeed:     5,
		MaxY:              1,
		StationaryEpsilon: 0.1,
		ReconsiderMin:     2,
		ReconsiderMax:     10,
		IdleMin:           2,
		IdleMax:           10,
		AFKProbability:    0.1,
		RaycastDistance:   0.5,
		WakeOnThreat:      true,
		AvoidanceEnabled:  true,
		DetectionRadius:   5,
		AvoidDistance:     3,
		AvoidanceInterval: 0.1,
	}
}

// needsSpatial reports whether the profile queries nearby entities at all.
func (p Params) needsSpatial() bool {
	return p.AvoidanceEnabled || (p.Movement == MovementSteering && p.WakeOnThreat)
}
