package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/npcwander/internal/model"
)

func TestNavAgentFollowsPath(t *testing.T) {
	g, err := NewGrid(0, 0, 20, 20, 1, 0)
	require.NoError(t, err)
	nav := NewNavAgent(g, 2)

	from := model.Vec3{X: 1, Z: 1}
	require.NoError(t, nav.SetDestination(from, model.Vec3{X: 7, Z: 1}))
	assert.True(t, nav.PathPending())
	assert.InDelta(t, 6.0, nav.RemainingDistance(), 1e-9)

	pos, vel := nav.Advance(from, 1)
	assert.False(t, nav.PathPending())
	assert.InDelta(t, 3.0, pos.X, 1e-9)
	assert.InDelta(t, 2.0, vel.X, 1e-9)
	assert.InDelta(t, 4.0, nav.RemainingDistance(), 1e-9)

	pos, _ = nav.Advance(pos, 5)
	assert.InDelta(t, 7.0, pos.X, 1e-9, "does not overshoot goal")
	assert.Equal(t, 0.0, nav.RemainingDistance())
	assert.Nil(t, nav.Path())

	pos2, vel := nav.Advance(pos, 1)
	assert.Equal(t, pos, pos2)
	assert.True(t, vel.IsZero())
}

func TestNavAgentStopped(t *testing.T) {
	g, err := NewGrid(0, 0, 20, 20, 1, 0)
	require.NoError(t, err)
	nav := NewNavAgent(g, 2)

	from := model.Vec3{X: 1, Z: 1}
	require.NoError(t, nav.SetDestination(from, model.Vec3{X: 7, Z: 1}))
	nav.SetStopped(true)
	assert.True(t, nav.Stopped())

	pos, vel := nav.Advance(from, 1)
	assert.Equal(t, from, pos)
	assert.True(t, vel.IsZero())

	nav.SetStopped(false)
	pos, _ = nav.Advance(from, 1)
	assert.InDelta(t, 3.0, pos.X, 1e-9)
}

func TestNavAgentFailureKeepsPath(t *testing.T) {
	g := setupWallGrid(t)
	nav := NewNavAgent(g, 1)

	from := model.Vec3{X: 2, Z: 2}
	require.NoError(t, nav.SetDestination(from, model.Vec3{X: 5, Z: 2}))
	before := nav.Path()

	err := nav.SetDestination(from, model.Vec3{X: 9.5, Z: 2})
	assert.ErrorIs(t, err, ErrNoPath)
	assert.Equal(t, before, nav.Path())
}

func TestNavAgentKeepsHeight(t *testing.T) {
	g, err := NewGrid(0, 0, 20, 20, 1, 0)
	require.NoError(t, err)
	nav := NewNavAgent(g, 1)

	from := model.Vec3{X: 1, Y: 0.8, Z: 1}
	require.NoError(t, nav.SetDestination(from, model.Vec3{X: 1, Z: 5}))
	pos, _ := nav.Advance(from, 1)
	assert.Equal(t, 0.8, pos.Y)
	assert.InDelta(t, 2.0, pos.Z, 1e-9)
}
