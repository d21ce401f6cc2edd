package spawn

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/npcwander/internal/ai"
	"github.com/udisondev/npcwander/internal/anim"
	"github.com/udisondev/npcwander/internal/game/geo"
	"github.com/udisondev/npcwander/internal/model"
	"github.com/udisondev/npcwander/internal/testutil"
	"github.com/udisondev/npcwander/internal/world"
)

// failingRepository always fails to load.
type failingRepository struct{}

func (failingRepository) LoadAll(context.Context) ([]model.SpawnPoint, error) {
	return nil, errors.New("connection refused")
}

type fixture struct {
	grid    *geo.Grid
	world   *world.World
	ticks   *ai.TickManager
	tracker *anim.Tracker
	mgr     *Manager
}

func newFixture(t *testing.T, poses ai.PoseSink) *fixture {
	t.Helper()

	scene := testutil.NewScene(t, 40, geo.Rect{MinX: 5, MinZ: -20, MaxX: 6, MaxZ: 10})
	grid, w := scene.Grid, scene.World

	profiles := map[string]Profile{
		"walker":   {Params: ai.DefaultPathfoundParams(), Radius: 0.4},
		"wanderer": {Params: ai.DefaultSteeringParams(), Radius: 0.4},
	}

	tracker := anim.NewTracker()
	if poses == nil {
		poses = tracker
	}

	ticks := ai.NewTickManager(100*time.Millisecond, 2)
	return &fixture{
		grid:    grid,
		world:   w,
		ticks:   ticks,
		tracker: tracker,
		mgr:     NewManager(profiles, grid, w, ticks, poses, 7),
	}
}

func TestManager_SpawnAll(t *testing.T) {
	f := newFixture(t, nil)

	repo := NewStaticRepository([]model.SpawnPoint{
		{Profile: "walker", Position: model.Vec3{X: -10, Z: 0}, Count: 3},
		{Profile: "wanderer", Position: model.Vec3{X: 10, Z: 15}, Count: 2},
	})
	require.NoError(t, f.mgr.LoadSpawns(context.Background(), repo))
	assert.Equal(t, 2, f.mgr.SpawnCount())

	require.NoError(t, f.mgr.SpawnAll())
	assert.Equal(t, 5, f.mgr.AgentCount())
	assert.Equal(t, 0, f.mgr.DisabledCount())
	assert.Equal(t, 5, f.ticks.Count())
	assert.Equal(t, 5, f.world.Count())

	sp, ok := f.mgr.GetSpawn(2)
	require.True(t, ok)
	assert.Equal(t, "wanderer", sp.Profile)

	f.world.ForEach(func(e *model.Entity) bool {
		assert.Equal(t, model.ClassNPC, e.Class())
		assert.True(t, f.grid.WalkableAt(e.Position()), "agent %d placed on blocked ground", e.ObjectID())
		testutil.AssertOnGround(t, f.grid.GroundY(), e.Position())

		s, ok := f.mgr.GetAgent(e.ObjectID())
		require.True(t, ok)
		assert.LessOrEqual(t, s.Agent.Position().Horizontal().Distance(spawnCenter(t, f.mgr, s.SpawnID)), spawnSpread+1)
		return true
	})
}

func spawnCenter(t *testing.T, m *Manager, spawnID int64) model.Vec3 {
	t.Helper()
	sp, ok := m.GetSpawn(spawnID)
	require.True(t, ok)
	return sp.Position.Horizontal()
}

func TestManager_AgentsRun(t *testing.T) {
	f := newFixture(t, nil)

	repo := NewStaticRepository([]model.SpawnPoint{
		{Profile: "walker", Position: model.Vec3{X: 0, Z: 0}, Count: 4},
		{Profile: "wanderer", Position: model.Vec3{X: -10, Z: -10}, Count: 4},
	})
	require.NoError(t, f.mgr.LoadSpawns(context.Background(), repo))
	require.NoError(t, f.mgr.SpawnAll())

	ctx := testutil.ContextWithTimeout(t, 10*time.Second)
	for range 300 {
		require.NoError(t, f.ticks.TickAll(ctx, 0.1))
	}

	moved := 0
	f.world.ForEach(func(e *model.Entity) bool {
		s, ok := f.mgr.GetAgent(e.ObjectID())
		require.True(t, ok)

		pos := s.Agent.Position()
		assert.Equal(t, pos, e.Position(), "world entity mirrors agent position")
		assert.LessOrEqual(t, pos.Y, 1.0)
		if s.Agent.Movement().Kind() == ai.MovementPathfound {
			assert.True(t, f.grid.InBounds(f.grid.CellOf(pos)), "pathfound agent %d left the grid", e.ObjectID())
		}
		if pos.Horizontal().Distance(s.Agent.Spawn().Horizontal()) > 0.5 {
			moved++
		}
		return true
	})
	assert.Positive(t, moved)
	assert.Positive(t, f.tracker.Count(model.PoseMoving))
}

func TestManager_DisabledAgentsCounted(t *testing.T) {
	f := newFixture(t, nil)
	f.mgr.poses = nil // every agent misses its pose sink

	repo := NewStaticRepository([]model.SpawnPoint{
		{Profile: "walker", Position: model.Vec3{}, Count: 2},
	})
	require.NoError(t, f.mgr.LoadSpawns(context.Background(), repo))
	require.NoError(t, f.mgr.SpawnAll())

	assert.Equal(t, 2, f.mgr.AgentCount())
	assert.Equal(t, 2, f.mgr.DisabledCount())
	assert.Equal(t, 2, f.ticks.Counts().Disabled)
}

func TestManager_UnknownProfile(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.mgr.DoSpawn(model.SpawnPoint{ID: 9, Profile: "ghost", Count: 1}, 0)
	assert.ErrorIs(t, err, ErrUnknownProfile)

	repo := NewStaticRepository([]model.SpawnPoint{
		{Profile: "ghost", Count: 2},
		{Profile: "walker", Count: 1},
	})
	require.NoError(t, f.mgr.LoadSpawns(context.Background(), repo))
	err = f.mgr.SpawnAll()
	assert.ErrorIs(t, err, ErrUnknownProfile)
	assert.Equal(t, 1, f.mgr.AgentCount(), "other spawns still run")
}

func TestManager_Despawn(t *testing.T) {
	f := newFixture(t, nil)

	s, err := f.mgr.DoSpawn(model.SpawnPoint{ID: 1, Profile: "wanderer", Count: 1}, 0)
	require.NoError(t, err)
	id := s.Agent.ID()

	require.NoError(t, f.ticks.TickAll(context.Background(), 0.1))
	_, ok := f.tracker.Last(id)
	require.True(t, ok, "agent played a pose before despawn")

	f.mgr.Despawn(id)
	f.mgr.Despawn(id)

	assert.Equal(t, 0, f.mgr.AgentCount())
	assert.Equal(t, 0, f.ticks.Count())
	_, ok = f.world.Get(id)
	assert.False(t, ok)
	_, ok = f.mgr.GetAgent(id)
	assert.False(t, ok)
	_, ok = f.tracker.Last(id)
	assert.False(t, ok, "despawn clears the remembered pose")
}

func TestManager_LoadSpawnsError(t *testing.T) {
	f := newFixture(t, nil)
	assert.Error(t, f.mgr.LoadSpawns(context.Background(), failingRepository{}))
	assert.Equal(t, 0, f.mgr.SpawnCount())
}

func TestStaticRepositoryAssignsIDs(t *testing.T) {
	repo := NewStaticRepository([]model.SpawnPoint{{Profile: "a", Count: 1}, {Profile: "b", Count: 1}})

	points, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, int64(1), points[0].ID)
	assert.Equal(t, int64(2), points[1].ID)

	points[0].Profile = "changed"
	again, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].Profile)
}
