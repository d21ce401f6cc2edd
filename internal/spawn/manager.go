package spawn

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/udisondev/npcwander/internal/ai"
	"github.com/udisondev/npcwander/internal/game/geo"
	"github.com/udisondev/npcwander/internal/model"
	"github.com/udisondev/npcwander/internal/rng"
	"github.com/udisondev/npcwander/internal/world"
)

var ErrUnknownProfile = errors.New("unknown behavior profile")

// SpawnRepository loads spawn points.
type SpawnRepository interface {
	LoadAll(ctx context.Context) ([]model.SpawnPoint, error)
}

// Profile is a behavior profile ready for spawning.
type Profile struct {
	Params ai.Params
	Radius float64 // contact radius of the agent body
}

// spawnSpread is how far from the spawn point agents of one point are scattered.
const spawnSpread = 2.0

// Manager turns spawn points into running agents: it creates the world body,
// the navigation collaborators and the controller, and registers it for ticking.
type Manager struct {
	spawns   sync.Map // map[int64]model.SpawnPoint keyed by spawn ID
	agents   sync.Map // map[uint32]*Spawned keyed by object ID
	profiles map[string]Profile

	grid  *geo.Grid
	world *world.World
	ticks *ai.TickManager
	poses ai.PoseSink
	seed  uint64

	spawnCount    atomic.Int32
	agentCount    atomic.Int32
	disabledCount atomic.Int32
}

// Spawned is one agent together with its world presence.
type Spawned struct {
	Agent   *ai.Agent
	Body    *world.Body
	SpawnID int64
}

// NewManager creates new spawn manager
func NewManager(
	profiles map[string]Profile,
	grid *geo.Grid,
	w *world.World,
	ticks *ai.TickManager,
	poses ai.PoseSink,
	seed uint64,
) *Manager {
	return &Manager{
		profiles: profiles,
		grid:     grid,
		world:    w,
		ticks:    ticks,
		poses:    poses,
		seed:     seed,
	}
}

// LoadSpawns loads all spawn points from repo.
func (m *Manager) LoadSpawns(ctx context.Context, repo SpawnRepository) error {
	spawns, err := repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading spawns: %w", err)
	}

	for _, sp := range spawns {
		if _, loaded := m.spawns.LoadOrStore(sp.ID, sp); !loaded {
			m.spawnCount.Add(1)
		}
	}

	slog.Info("spawns loaded", "count", len(spawns))
	return nil
}

// DoSpawn creates one agent for sp. index distinguishes agents of the same point.
// An agent whose behavior cannot initialize is still registered; it stays static.
func (m *Manager) DoSpawn(sp model.SpawnPoint, index int) (*Spawned, error) {
	profile, ok := m.profiles[sp.Profile]
	if !ok {
		return nil, fmt.Errorf("spawn %d: %w: %q", sp.ID, ErrUnknownProfile, sp.Profile)
	}

	src := rng.New(m.seed ^ uint64(sp.ID)<<20 ^ uint64(index))
	pos := m.placement(sp.Position, src)

	entity, err := m.world.Spawn(model.ClassNPC, pos, profile.Radius, false)
	if err != nil {
		return nil, fmt.Errorf("spawn %d: %w", sp.ID, err)
	}
	body := world.NewBody(m.world, entity)

	deps := ai.Deps{
		Spatial: m.world,
		Poses:   m.poses,
		Body:    body,
	}
	switch profile.Params.Movement {
	case ai.MovementPathfound:
		deps.Navigator = geo.NewNavAgent(m.grid, profile.Params.MoveSpeed)
		deps.Surface = m.grid
	case ai.MovementSteering:
		deps.Probe = m.grid
	}

	agent := ai.NewAgent(entity.ObjectID(), pos, profile.Params, deps, src)
	s := &Spawned{Agent: agent, Body: body, SpawnID: sp.ID}

	m.agents.Store(agent.ID(), s)
	m.agentCount.Add(1)
	if agent.Disabled() {
		m.disabledCount.Add(1)
	}
	m.ticks.Register(agent)

	if ai.IsDebugEnabled() {
		slog.Debug("agent spawned",
			"agent", agent.ID(),
			"spawnID", sp.ID,
			"profile", sp.Profile,
			"movement", profile.Params.Movement,
			"pos", pos)
	}
	return s, nil
}

// placement scatters agents around the spawn point onto walkable ground.
func (m *Manager) placement(center model.Vec3, src rng.Source) model.Vec3 {
	offset := rng.InsideUnitSphere(src).Horizontal().Scale(spawnSpread)
	if p, ok := m.grid.SamplePoint(center.Add(offset), spawnSpread); ok {
		return p
	}
	if p, ok := m.grid.SamplePoint(center, spawnSpread); ok {
		return p
	}
	return center
}

// Despawn removes an agent from ticking and from the world.
func (m *Manager) Despawn(objectID uint32) {
	value, ok := m.agents.LoadAndDelete(objectID)
	if !ok {
		return
	}
	s := value.(*Spawned)

	m.ticks.Unregister(objectID)
	s.Body.Remove()
	if f, ok := m.poses.(ai.PoseForgetter); ok {
		f.Forget(objectID)
	}
	m.agentCount.Add(-1)
	if s.Agent.Disabled() {
		m.disabledCount.Add(-1)
	}

	slog.Debug("agent despawned", "agent", objectID, "spawnID", s.SpawnID)
}

// SpawnAll spawns Count agents for every loaded spawn point, in spawn ID order.
func (m *Manager) SpawnAll() error {
	var points []model.SpawnPoint
	m.spawns.Range(func(_, value any) bool {
		points = append(points, value.(model.SpawnPoint))
		return true
	})
	slices.SortFunc(points, func(a, b model.SpawnPoint) int {
		return cmp.Compare(a.ID, b.ID)
	})

	count := 0
	var errs []error
	for _, sp := range points {
		for i := range sp.Count {
			if _, err := m.DoSpawn(sp, i); err != nil {
				slog.Error("failed to spawn agent",
					"spawnID", sp.ID,
					"profile", sp.Profile,
					"error", err)
				errs = append(errs, err)
				break // continue with next spawn
			}
			count++
		}
	}

	slog.Info("agents spawned",
		"count", count,
		"disabled", m.DisabledCount(),
		"spawns", len(points))

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("spawning all agents: %w", err)
	}
	return nil
}

// GetSpawn returns spawn point by ID
func (m *Manager) GetSpawn(spawnID int64) (model.SpawnPoint, bool) {
	value, ok := m.spawns.Load(spawnID)
	if !ok {
		return model.SpawnPoint{}, false
	}
	return value.(model.SpawnPoint), true
}

// GetAgent returns a spawned agent by object ID.
func (m *Manager) GetAgent(objectID uint32) (*Spawned, bool) {
	value, ok := m.agents.Load(objectID)
	if !ok {
		return nil, false
	}
	return value.(*Spawned), true
}

// SpawnCount returns number of loaded spawn points.
func (m *Manager) SpawnCount() int {
	return int(m.spawnCount.Load())
}

// AgentCount returns number of live agents.
func (m *Manager) AgentCount() int {
	return int(m.agentCount.Load())
}

// DisabledCount returns number of live agents whose behavior failed to initialize.
func (m *Manager) DisabledCount() int {
	return int(m.disabledCount.Load())
}
