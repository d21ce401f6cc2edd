package config

import (
	"gopkg.in/yaml.v3"

	"github.com/udisondev/npcwander/internal/ai"
)

// Profile is a named set of behavior tunables.
// Fields omitted in YAML keep the defaults of the profile's movement kind.
type Profile struct {
	Movement          string  `yaml:"movement"`
	MoveSpeed         float64 `yaml:"move_speed"`
	RotationSpeed     float64 `yaml:"rotation_speed"`
	StationaryEpsilon float64 `yaml:"stationary_epsilon"`
	Radius            float64 `yaml:"radius"` // contact radius of the agent body

	PatrolRadius        float64 `yaml:"patrol_radius"`
	PatrolPointWaitTime float64 `yaml:"patrol_point_wait_time"`
	ArriveDistance      float64 `yaml:"arrive_distance"`
	AFKDelay            Range   `yaml:"afk_delay"`
	AFK                 Range   `yaml:"afk"`

	Reconsider      Range   `yaml:"reconsider"`
	Idle            Range   `yaml:"idle"`
	AFKProbability  float64 `yaml:"afk_probability"`
	RaycastDistance float64 `yaml:"raycast_distance"`
	WakeOnThreat    bool    `yaml:"wake_on_threat"`

	Avoidance         bool    `yaml:"avoidance"`
	DetectionRadius   float64 `yaml:"detection_radius"`
	AvoidDistance     float64 `yaml:"avoid_distance"`
	AvoidanceInterval float64 `yaml:"avoidance_interval"`
}

const defaultBodyRadius = 0.4

// DefaultProfile returns the profile defaults for a movement kind.
func DefaultProfile(kind ai.MovementKind) Profile {
	p := ai.DefaultPathfoundParams()
	if kind == ai.MovementSteering {
		p = ai.DefaultSteeringParams()
	}

	return Profile{
		Movement:            kind.String(),
		MoveSpeed:           p.MoveSpeed,
		RotationSpeed:       p.RotationSpeed,
		StationaryEpsilon:   p.StationaryEpsilon,
		Radius:              defaultBodyRadius,
		PatrolRadius:        p.PatrolRadius,
		PatrolPointWaitTime: p.PatrolPointWaitTime,
		ArriveDistance:      p.ArriveDistance,
		AFKDelay:            Range{Min: p.AFKDelayMin, Max: p.AFKDelayMax},
		AFK:                 Range{Min: p.AFKMin, Max: p.AFKMax},
		Reconsider:          Range{Min: p.ReconsiderMin, Max: p.ReconsiderMax},
		Idle:                Range{Min: p.IdleMin, Max: p.IdleMax},
		AFKProbability:      p.AFKProbability,
		RaycastDistance:     p.RaycastDistance,
		WakeOnThreat:        p.WakeOnThreat,
		Avoidance:           p.AvoidanceEnabled,
		DetectionRadius:     p.DetectionRadius,
		AvoidDistance:       p.AvoidDistance,
		AvoidanceInterval:   p.AvoidanceInterval,
	}
}

// UnmarshalYAML seeds the profile with its movement kind's defaults before decoding.
func (p *Profile) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Movement string `yaml:"movement"`
	}
	if err := node.Decode(&head); err != nil {
		return err
	}
	if head.Movement == "" {
		head.Movement = ai.MovementPathfound.String()
	}
	kind, err := ai.ParseMovementKind(head.Movement)
	if err != nil {
		return err
	}

	*p = DefaultProfile(kind)
	type plain Profile
	return node.Decode((*plain)(p))
}

// Kind returns the parsed movement kind.
func (p Profile) Kind() (ai.MovementKind, error) {
	return ai.ParseMovementKind(p.Movement)
}

// Params converts the profile to agent parameters. maxY is the world height ceiling.
func (p Profile) Params(maxY float64) (ai.Params, error) {
	kind, err := p.Kind()
	if err != nil {
		return ai.Params{}, err
	}

	return ai.Params{
		Movement:            kind,
		MoveSpeed:           p.MoveSpeed,
		RotationSpeed:       p.RotationSpeed,
		MaxY:                maxY,
		StationaryEpsilon:   p.StationaryEpsilon,
		PatrolRadius:        p.PatrolRadius,
		PatrolPointWaitTime: p.PatrolPointWaitTime,
		ArriveDistance:      p.ArriveDistance,
		AFKDelayMin:         p.AFKDelay.Min,
		AFKDelayMax:         p.AFKDelay.Max,
		AFKMin:              p.AFK.Min,
		AFKMax:              p.AFK.Max,
		ReconsiderMin:       p.Reconsider.Min,
		ReconsiderMax:       p.Reconsider.Max,
		IdleMin:             p.Idle.Min,
		IdleMax:             p.Idle.Max,
		AFKProbability:      p.AFKProbability,
		RaycastDistance:     p.RaycastDistance,
		WakeOnThreat:        p.WakeOnThreat,
		AvoidanceEnabled:    p.Avoidance,
		DetectionRadius:     p.DetectionRadius,
		AvoidDistance:       p.AvoidDistance,
		AvoidanceInterval:   p.AvoidanceInterval,
	}, nil
}
