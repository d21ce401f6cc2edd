package geo

import (
	"sync"

	"github.com/udisondev/npcwander/internal/ai"
	"github.com/udisondev/npcwander/internal/model"
)

var (
	_ ai.Navigator     = (*NavAgent)(nil)
	_ ai.Surface       = (*Grid)(nil)
	_ ai.ObstacleProbe = (*Grid)(nil)
)

// NavAgent follows grid paths at a fixed speed. Implements ai.Navigator.
// One NavAgent belongs to one behavior agent; the grid may be shared.
type NavAgent struct {
	grid  *Grid
	speed float64

	mu       sync.Mutex
	path     []model.Vec3
	next     int
	pending  bool
	stopped  bool
	lastFrom model.Vec3
}

// NewNavAgent creates a path follower on grid moving at speed units per second.
func NewNavAgent(grid *Grid, speed float64) *NavAgent {
	return &NavAgent{grid: grid, speed: speed}
}

// SetDestination computes a path from -> to. On error the previous path is kept.
func (n *NavAgent) SetDestination(from, to model.Vec3) error {
	path, err := n.grid.FindPath(from, to)
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = path
	n.next = 0
	n.pending = true
	n.lastFrom = from
	return nil
}

// PathPending reports whether the current path has not been advanced along yet.
func (n *NavAgent) PathPending() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pending
}

// RemainingDistance returns the horizontal distance left along the path from
// the last known position.
func (n *NavAgent) RemainingDistance() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.next >= len(n.path) {
		return 0
	}
	total := n.lastFrom.Horizontal().Distance(n.path[n.next].Horizontal())
	for i := n.next + 1; i < len(n.path); i++ {
		total += n.path[i-1].Horizontal().Distance(n.path[i].Horizontal())
	}
	return total
}

// SetStopped freezes or releases path following.
func (n *NavAgent) SetStopped(stopped bool) {
	n.mu.Lock()
	n.stopped = stopped
	n.mu.Unlock()
}

// Stopped reports whether path following is frozen.
func (n *NavAgent) Stopped() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stopped
}

// Path returns a copy of the remaining waypoints.
func (n *NavAgent) Path() []model.Vec3 {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.next >= len(n.path) {
		return nil
	}
	out := make([]model.Vec3, len(n.path)-n.next)
	copy(out, n.path[n.next:])
	return out
}

// Advance walks along the path for dt seconds, consuming waypoints it reaches.
func (n *NavAgent) Advance(from model.Vec3, dt float64) (model.Vec3, model.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.pending = false
	n.lastFrom = from
	if n.stopped || dt <= 0 || n.next >= len(n.path) {
		return from, model.Vec3{}
	}

	budget := n.speed * dt
	pos := from
	for budget > 0 && n.next < len(n.path) {
		wp := n.path[n.next].WithY(pos.Y)
		d := pos.Distance(wp)
		if d <= budget {
			pos = wp
			budget -= d
			n.next++
			continue
		}
		pos = pos.Add(wp.Sub(pos).Scale(budget / d))
		budget = 0
	}

	n.lastFrom = pos
	velocity := pos.Sub(from).Scale(1 / dt)
	return pos, velocity
}
