package world

import (
	"github.com/udisondev/npcwander/internal/ai"
	"github.com/udisondev/npcwander/internal/model"
)

var (
	_ ai.Body         = (*Body)(nil)
	_ ai.SpatialQuery = (*World)(nil)
)

// Body is an agent's presence in the world. Implements ai.Body.
// Each move re-files the entity and reports overlaps with other entities:
// ContactEnter for a new overlap, ContactStay while it persists.
type Body struct {
	world  *World
	entity *model.Entity

	touching map[uint32]struct{} // owned by the agent's tick goroutine
}

// NewBody wraps a registered entity.
func NewBody(w *World, e *model.Entity) *Body {
	return &Body{
		world:    w,
		entity:   e,
		touching: make(map[uint32]struct{}),
	}
}

// Entity returns the wrapped entity.
func (b *Body) Entity() *model.Entity {
	return b.entity
}

// MoveTo moves the entity and returns the contacts at the new position, ordered by ID.
func (b *Body) MoveTo(pos model.Vec3) []ai.ContactEvent {
	id := b.entity.ObjectID()
	b.world.Move(id, pos)

	reach := b.entity.Radius() + b.world.MaxRadius()
	nearby := b.world.QueryNearby(pos, reach)

	var events []ai.ContactEvent
	now := make(map[uint32]struct{}, len(b.touching))
	flat := pos.Horizontal()

	for _, other := range nearby {
		oid := other.ObjectID()
		if oid == id {
			continue
		}
		r := b.entity.Radius() + other.Radius()
		if other.Position().Horizontal().DistanceSquared(flat) > r*r {
			continue
		}

		phase := ai.ContactEnter
		if _, ok := b.touching[oid]; ok {
			phase = ai.ContactStay
		}
		now[oid] = struct{}{}
		events = append(events, ai.ContactEvent{
			OtherID:  oid,
			Phase:    phase,
			Obstacle: other.Obstacle(),
		})
	}

	b.touching = now
	return events
}

// Remove unregisters the entity from the world.
func (b *Body) Remove() {
	b.world.Remove(b.entity.ObjectID())
	clear(b.touching)
}
