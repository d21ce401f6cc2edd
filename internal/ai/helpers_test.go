package ai

import (
	"errors"
	"sync"

	"github.com/udisondev/npcwander/internal/model"
)

var errNoPath = errors.New("no path")

// fakeNav walks in a straight line toward the destination.
type fakeNav struct {
	speed        float64
	dest         model.Vec3
	hasDest      bool
	pending      bool
	remaining    float64
	stopped      bool
	fail         bool
	destinations []model.Vec3
}

func (n *fakeNav) SetDestination(from, to model.Vec3) error {
	if n.fail {
		return errNoPath
	}
	n.dest = to
	n.hasDest = true
	n.pending = true
	n.remaining = from.Distance(to)
	n.destinations = append(n.destinations, to)
	return nil
}

func (n *fakeNav) PathPending() bool          { return n.pending }
func (n *fakeNav) RemainingDistance() float64 { return n.remaining }
func (n *fakeNav) SetStopped(stopped bool)    { n.stopped = stopped }

func (n *fakeNav) Advance(from model.Vec3, dt float64) (model.Vec3, model.Vec3) {
	n.pending = false
	if n.stopped || !n.hasDest || n.speed == 0 {
		return from, model.Vec3{}
	}
	delta := n.dest.Sub(from)
	dist := delta.Length()
	step := n.speed * dt
	if step >= dist {
		n.remaining = 0
		if dt == 0 {
			return n.dest, model.Vec3{}
		}
		return n.dest, delta.Scale(1 / dt)
	}
	dir := delta.Normalized()
	n.remaining = dist - step
	return from.Add(dir.Scale(step)), dir.Scale(n.speed)
}

// identitySurface returns the sampled point unchanged (flat open ground).
type identitySurface struct {
	fail bool
}

func (s identitySurface) SamplePoint(center model.Vec3, radius float64) (model.Vec3, bool) {
	if s.fail {
		return model.Vec3{}, false
	}
	return center, true
}

type fakeProbe struct {
	hits  int // number of upcoming probes that report an obstacle
	calls int
}

func (p *fakeProbe) Raycast(origin, dir model.Vec3, distance float64) bool {
	p.calls++
	if p.hits > 0 {
		p.hits--
		return true
	}
	return false
}

type fakeSpatial struct {
	entities []*model.Entity
	queries  int
}

func (s *fakeSpatial) QueryNearby(center model.Vec3, radius float64) []*model.Entity {
	s.queries++
	out := make([]*model.Entity, 0, len(s.entities))
	for _, e := range s.entities {
		if center.Distance(e.Position()) <= radius {
			out = append(out, e)
		}
	}
	return out
}

type recordingSink struct {
	mu    sync.Mutex
	poses []model.Pose
}

func (r *recordingSink) Play(agentID uint32, pose model.Pose) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.poses = append(r.poses, pose)
}

func (r *recordingSink) all() []model.Pose {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Pose(nil), r.poses...)
}

type fakeBody struct {
	moves    []model.Vec3
	contacts []ContactEvent
}

func (b *fakeBody) MoveTo(pos model.Vec3) []ContactEvent {
	b.moves = append(b.moves, pos)
	out := b.contacts
	b.contacts = nil
	return out
}

func threat(id uint32, class model.EntityClass, pos model.Vec3) *model.Entity {
	return model.NewEntity(id, class, pos, 0.5, false)
}
