package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/npcwander/internal/ai"
	"github.com/udisondev/npcwander/internal/model"
)

// Simulation holds all configuration for the npcsim binary.
type Simulation struct {
	LogLevel     string        `yaml:"log_level"`
	TickInterval time.Duration `yaml:"tick_interval"`
	Workers      int           `yaml:"workers"`
	Seed         uint64        `yaml:"seed"`

	World    WorldConfig        `yaml:"world"`
	Database DatabaseConfig     `yaml:"database"`
	Profiles map[string]Profile `yaml:"profiles"`
	Spawns   []SpawnConfig      `yaml:"spawns"`
	Traffic  []TrafficConfig    `yaml:"traffic"`
}

// WorldConfig describes the walkable area and its static contents.
type WorldConfig struct {
	MinX       float64 `yaml:"min_x"`
	MinZ       float64 `yaml:"min_z"`
	Width      float64 `yaml:"width"`
	Depth      float64 `yaml:"depth"`
	CellSize   float64 `yaml:"cell_size"`
	RegionSize float64 `yaml:"region_size"`
	GroundY    float64 `yaml:"ground_y"`
	MaxY       float64 `yaml:"max_y"`

	Blocked []RectConfig `yaml:"blocked"`
	Props   []PropConfig `yaml:"props"`
}

// RectConfig is an unwalkable area of the XZ plane.
type RectConfig struct {
	MinX float64 `yaml:"min_x"`
	MinZ float64 `yaml:"min_z"`
	MaxX float64 `yaml:"max_x"`
	MaxZ float64 `yaml:"max_z"`
}

// PropConfig is a static obstacle entity agents turn away from on contact.
type PropConfig struct {
	Position Point   `yaml:"position"`
	Radius   float64 `yaml:"radius"`
}

// SpawnConfig places Count agents of a profile around Position.
type SpawnConfig struct {
	Profile  string `yaml:"profile"`
	Position Point  `yaml:"position"`
	Count    int    `yaml:"count"`
}

// TrafficConfig is a scripted threat moving along waypoints in a loop.
type TrafficConfig struct {
	Class     string  `yaml:"class"`
	Speed     float64 `yaml:"speed"`
	Radius    float64 `yaml:"radius"`
	Waypoints []Point `yaml:"waypoints"`
}

// DefaultSimulation returns a small self-contained scene.
func DefaultSimulation() Simulation {
	return Simulation{
		LogLevel:     "info",
		TickInterval: 100 * time.Millisecond,
		Workers:      4,
		Seed:         1,
		World: WorldConfig{
			MinX:       -50,
			MinZ:       -50,
			Width:      100,
			Depth:      100,
			CellSize:   1,
			RegionSize: 16,
			GroundY:    0,
			MaxY:       1,
			Blocked: []RectConfig{
				{MinX: -5, MinZ: -20, MaxX: -4, MaxZ: 20},
			},
			Props: []PropConfig{
				{Position: Point{X: 15, Z: 15}, Radius: 1.5},
			},
		},
		Database: DefaultDatabase(),
		Profiles: map[string]Profile{
			"walker":   DefaultProfile(ai.MovementPathfound),
			"wanderer": DefaultProfile(ai.MovementSteering),
		},
		Spawns: []SpawnConfig{
			{Profile: "walker", Position: Point{X: 10, Z: 0}, Count: 20},
			{Profile: "wanderer", Position: Point{X: -20, Z: 10}, Count: 10},
		},
		Traffic: []TrafficConfig{
			{
				Class:  "vehicle",
				Speed:  6,
				Radius: 1.5,
				Waypoints: []Point{
					{X: -40, Z: -30}, {X: 40, Z: -30}, {X: 40, Z: 30}, {X: -40, Z: 30},
				},
			},
		},
	}
}

// LoadSimulation loads simulation config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := ValidateDocument(data); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks cross-field constraints the schema cannot express.
func (s Simulation) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if s.TickInterval <= 0 {
		fail("tick_interval must be positive, got %v", s.TickInterval)
	}
	if s.Workers < 1 {
		fail("workers must be at least 1, got %d", s.Workers)
	}
	if s.World.Width <= 0 || s.World.Depth <= 0 {
		fail("world must have a positive area, got %vx%v", s.World.Width, s.World.Depth)
	}
	if s.World.CellSize <= 0 {
		fail("world.cell_size must be positive, got %v", s.World.CellSize)
	}
	for i, r := range s.World.Blocked {
		if r.MinX > r.MaxX || r.MinZ > r.MaxZ {
			fail("world.blocked[%d] has min > max", i)
		}
	}

	for name, p := range s.Profiles {
		errs = append(errs, p.validate(name)...)
	}

	for i, sp := range s.Spawns {
		if _, ok := s.Profiles[sp.Profile]; !ok {
			fail("spawns[%d] references unknown profile %q", i, sp.Profile)
		}
		if sp.Count < 1 {
			fail("spawns[%d].count must be at least 1, got %d", i, sp.Count)
		}
	}

	for i, tr := range s.Traffic {
		class, ok := model.ParseEntityClass(tr.Class)
		if !ok || !class.IsThreat() {
			fail("traffic[%d].class must be player or vehicle, got %q", i, tr.Class)
		}
		if len(tr.Waypoints) == 0 {
			fail("traffic[%d] has no waypoints", i)
		} else if len(tr.Waypoints) > 1 && !slices.ContainsFunc(tr.Waypoints[1:], func(p Point) bool { return p != tr.Waypoints[0] }) {
			fail("traffic[%d] waypoints are all identical", i)
		}
		if tr.Speed <= 0 {
			fail("traffic[%d].speed must be positive, got %v", i, tr.Speed)
		}
	}

	return errors.Join(errs...)
}

func (p Profile) validate(name string) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: profile %q: "+format, append([]any{ErrInvalid, name}, args...)...))
	}

	kind, err := p.Kind()
	if err != nil {
		fail("%v", err)
		return errs
	}

	if p.MoveSpeed <= 0 {
		fail("move_speed must be positive, got %v", p.MoveSpeed)
	}
	if p.Radius <= 0 {
		fail("radius must be positive, got %v", p.Radius)
	}

	checkRange := func(field string, r Range) {
		if r.Min < 0 || r.Min > r.Max {
			fail("%s must satisfy 0 <= min <= max, got [%v, %v]", field, r.Min, r.Max)
		}
	}

	switch kind {
	case ai.MovementPathfound:
		if p.PatrolRadius <= 0 {
			fail("patrol_radius must be positive, got %v", p.PatrolRadius)
		}
		if p.PatrolPointWaitTime < 0 {
			fail("patrol_point_wait_time must not be negative, got %v", p.PatrolPointWaitTime)
		}
		if p.ArriveDistance < 0 {
			fail("arrive_distance must not be negative, got %v", p.ArriveDistance)
		}
		checkRange("afk_delay", p.AFKDelay)
		checkRange("afk", p.AFK)
	case ai.MovementSteering:
		checkRange("reconsider", p.Reconsider)
		checkRange("idle", p.Idle)
		if p.AFKProbability < 0 || p.AFKProbability > 1 {
			fail("afk_probability must be within [0, 1], got %v", p.AFKProbability)
		}
		if p.RaycastDistance <= 0 {
			fail("raycast_distance must be positive, got %v", p.RaycastDistance)
		}
	}

	if p.Avoidance {
		if p.DetectionRadius <= 0 {
			fail("detection_radius must be positive, got %v", p.DetectionRadius)
		}
		if p.AvoidDistance < 0 {
			fail("avoid_distance must not be negative, got %v", p.AvoidDistance)
		}
		if p.AvoidanceInterval <= 0 {
			fail("avoidance_interval must be positive, got %v", p.AvoidanceInterval)
		}
	}

	return errs
}
