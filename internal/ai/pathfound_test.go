package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/npcwander/internal/model"
	"github.com/udisondev/npcwander/internal/rng"
)

func newPatrolAgent(t *testing.T, nav *fakeNav, surface Surface, p Params, src rng.Source) (*Agent, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	a := NewAgent(1, model.Zero, p, Deps{
		Navigator: nav,
		Surface:   surface,
		Spatial:   &fakeSpatial{},
		Poses:     sink,
	}, src)
	require.False(t, a.Disabled(), "agent init: %v", a.Err())
	a.Start()
	return a, sink
}

func quietPatrolParams() Params {
	p := DefaultPathfoundParams()
	// Push the AFK cycle out of the way.
	p.AFKDelayMin, p.AFKDelayMax = 1000, 1000
	return p
}

func TestPathfound_FirstRetargetWithinRadius(t *testing.T) {
	for seed := range uint64(50) {
		nav := &fakeNav{}
		a, _ := newPatrolAgent(t, nav, identitySurface{}, quietPatrolParams(), rng.New(seed))

		a.Tick(0.1)

		require.Len(t, nav.destinations, 1)
		target, ok := a.Movement().Target()
		require.True(t, ok)
		assert.Equal(t, target, nav.destinations[0], "solver receives exactly the sampled point")
		assert.LessOrEqual(t, target.Distance(a.Spawn()), 20.0)
	}
}

func TestPathfound_DwellsAfterArrival(t *testing.T) {
	nav := &fakeNav{speed: 1000} // arrives within one tick
	p := quietPatrolParams()
	p.PatrolPointWaitTime = 1
	a, _ := newPatrolAgent(t, nav, identitySurface{}, p, rng.New(3))

	a.Tick(0.25) // retarget + arrive
	require.Len(t, nav.destinations, 1)

	a.Tick(0.25) // arrival observed, dwell 1s starts
	for range 3 {
		a.Tick(0.25)
		assert.Len(t, nav.destinations, 1, "still dwelling")
	}
	a.Tick(0.25)
	assert.Len(t, nav.destinations, 2, "next target after the dwell")
}

func TestPathfound_DeadlineRetargetsImmediately(t *testing.T) {
	nav := &fakeNav{} // never moves, so never arrives
	p := quietPatrolParams()
	p.PatrolPointWaitTime = 2
	a, _ := newPatrolAgent(t, nav, identitySurface{}, p, rng.New(8))

	a.Tick(0.5)
	require.Len(t, nav.destinations, 1)
	first := nav.destinations[0]

	for range 3 { // 1.5s of waiting
		a.Tick(0.5)
	}
	assert.Len(t, nav.destinations, 1)

	a.Tick(0.5) // 2s deadline passes
	require.Len(t, nav.destinations, 2, "abandoned and re-targeted in the same tick")
	assert.NotEqual(t, first, nav.destinations[1])
}

func TestPathfound_SampleFailureKeepsTarget(t *testing.T) {
	nav := &fakeNav{}
	surface := &toggleSurface{}
	p := quietPatrolParams()
	p.PatrolPointWaitTime = 1
	a, _ := newPatrolAgent(t, nav, surface, p, rng.New(4))

	a.Tick(0.5)
	require.Len(t, nav.destinations, 1)
	target, _ := a.Movement().Target()

	surface.fail = true
	a.Tick(0.5)
	a.Tick(0.5) // deadline passes, sample fails
	got, ok := a.Movement().Target()
	assert.True(t, ok)
	assert.Equal(t, target, got, "previous target kept")
	assert.Len(t, nav.destinations, 1)
	assert.Equal(t, model.StatePatrolling, a.State(), "timer cycle keeps running")

	surface.fail = false
	a.Tick(0.5)
	a.Tick(0.5) // retry after the wait
	assert.Len(t, nav.destinations, 2)
}

func TestPathfound_PathFailureKeepsTarget(t *testing.T) {
	nav := &fakeNav{}
	p := quietPatrolParams()
	p.PatrolPointWaitTime = 1
	a, _ := newPatrolAgent(t, nav, identitySurface{}, p, rng.New(4))

	a.Tick(0.5)
	target, _ := a.Movement().Target()

	nav.fail = true
	a.Tick(0.5)
	a.Tick(0.5)
	got, _ := a.Movement().Target()
	assert.Equal(t, target, got)
	assert.Len(t, nav.destinations, 1)
}

func TestPathfound_RedirectHoldsPatrol(t *testing.T) {
	nav := &fakeNav{}
	m := NewPathfoundMovement(nav, identitySurface{}, rng.New(1), quietPatrolParams())
	a := &Agent{id: 9, facing: model.Vec3{Z: 1}}
	m.Begin(a)
	m.Step(a, 0.1)
	require.Len(t, nav.destinations, 1)

	flee := model.NewVec3(3, 0, 0)
	m.Redirect(a, flee)
	assert.True(t, m.Overridden())
	got, _ := m.Target()
	assert.Equal(t, flee, got)

	m.Step(a, 0.1)
	assert.Len(t, nav.destinations, 2, "no patrol pick while the override is pending")
	assert.Equal(t, flee, nav.destinations[1])
}

func TestPathfound_HaltResume(t *testing.T) {
	nav := &fakeNav{}
	m := NewPathfoundMovement(nav, identitySurface{}, rng.New(1), quietPatrolParams())
	a := &Agent{id: 9}

	m.Halt(a)
	assert.True(t, nav.stopped)
	assert.False(t, m.Idle(a, 100), "AFK scheduler owns idle")
	m.Resume(a)
	assert.False(t, nav.stopped)
}

type toggleSurface struct {
	fail bool
}

func (s *toggleSurface) SamplePoint(center model.Vec3, radius float64) (model.Vec3, bool) {
	if s.fail {
		return model.Vec3{}, false
	}
	return center, true
}
