package world

import (
	"sync"
	"sync/atomic"

	"github.com/udisondev/npcwander/internal/model"
)

// Region holds the entities currently inside one square of the world.
type Region struct {
	rx, rz int32

	entities sync.Map // map[uint32]*model.Entity

	// Snapshot cache (immutable slice), rebuilt lazily after Add/Remove
	snapshotCache atomic.Value // []*model.Entity
	snapshotDirty atomic.Bool

	version atomic.Uint64 // incremented on Add/Remove
}

// NewRegion creates a new region
func NewRegion(rx, rz int32) *Region {
	return &Region{rx: rx, rz: rz}
}

// RX returns region X index
func (r *Region) RX() int32 {
	return r.rx
}

// RZ returns region Z index
func (r *Region) RZ() int32 {
	return r.rz
}

// Version returns current region version (incremented on Add/Remove).
func (r *Region) Version() uint64 {
	return r.version.Load()
}

// Add adds entity to the region (concurrent-safe).
func (r *Region) Add(e *model.Entity) {
	r.entities.Store(e.ObjectID(), e)
	r.version.Add(1)
	r.snapshotDirty.Store(true)
}

// Remove removes entity from the region (concurrent-safe).
func (r *Region) Remove(objectID uint32) {
	r.entities.Delete(objectID)
	r.version.Add(1)
	r.snapshotDirty.Store(true)
}

// ForEach iterates over all entities in this region.
// If fn returns false, iteration stops
func (r *Region) ForEach(fn func(*model.Entity) bool) {
	r.entities.Range(func(_, value any) bool {
		return fn(value.(*model.Entity))
	})
}

// Snapshot returns cached snapshot of the region's entities.
// IMPORTANT: Returned slice is immutable, DO NOT modify.
func (r *Region) Snapshot() []*model.Entity {
	if !r.snapshotDirty.Load() {
		if cache := r.snapshotCache.Load(); cache != nil {
			return cache.([]*model.Entity)
		}
	}
	return r.rebuildSnapshot()
}

func (r *Region) rebuildSnapshot() []*model.Entity {
	// Clear the flag first so a concurrent Add re-dirties it
	r.snapshotDirty.Store(false)

	entities := make([]*model.Entity, 0, 16)
	r.entities.Range(func(_, value any) bool {
		entities = append(entities, value.(*model.Entity))
		return true
	})

	r.snapshotCache.Store(entities)
	return entities
}
