package world

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/udisondev/npcwander/internal/model"
)

var ErrDuplicateEntity = errors.New("entity already registered")

// World is the spatial registry of all entities, bucketed into a 2D region grid.
type World struct {
	layout   regionLayout
	regions  [][]*Region // [cols][rows]
	entities sync.Map    // map[uint32]*tracked

	ids *ObjectIDGenerator

	radiusMu  sync.RWMutex
	maxRadius float64 // largest contact radius ever added
}

// tracked pairs an entity with the region it is currently filed under.
type tracked struct {
	entity *model.Entity

	mu     sync.Mutex
	region *Region
}

// New creates a world covering bounds.
func New(b Bounds) (*World, error) {
	layout, err := newRegionLayout(b)
	if err != nil {
		return nil, err
	}

	w := &World{
		layout: layout,
		ids:    NewObjectIDGenerator(),
	}
	w.regions = make([][]*Region, layout.cols)
	for rx := range layout.cols {
		w.regions[rx] = make([]*Region, layout.rows)
		for rz := range layout.rows {
			w.regions[rx][rz] = NewRegion(rx, rz)
		}
	}
	return w, nil
}

// IDs returns the world's object ID generator.
func (w *World) IDs() *ObjectIDGenerator {
	return w.ids
}

// GetRegion returns the region containing world coordinates (x, z).
func (w *World) GetRegion(x, z float64) *Region {
	rx, rz := w.layout.CoordToRegionIndex(x, z)
	return w.regions[rx][rz]
}

// GetRegionByIndex returns region at index (rx, rz), or nil if out of bounds.
func (w *World) GetRegionByIndex(rx, rz int32) *Region {
	if !w.layout.IsValidRegionIndex(rx, rz) {
		return nil
	}
	return w.regions[rx][rz]
}

// RegionCount returns total number of regions
func (w *World) RegionCount() int {
	return int(w.layout.cols) * int(w.layout.rows)
}

// Add registers e at its current position.
func (w *World) Add(e *model.Entity) error {
	pos := e.Position()
	region := w.GetRegion(pos.X, pos.Z)

	t := &tracked{entity: e, region: region}
	if _, loaded := w.entities.LoadOrStore(e.ObjectID(), t); loaded {
		return fmt.Errorf("adding entity %d: %w", e.ObjectID(), ErrDuplicateEntity)
	}
	region.Add(e)

	w.radiusMu.Lock()
	w.maxRadius = max(w.maxRadius, e.Radius())
	w.radiusMu.Unlock()
	return nil
}

// MaxRadius returns the largest contact radius of any entity added so far.
func (w *World) MaxRadius() float64 {
	w.radiusMu.RLock()
	defer w.radiusMu.RUnlock()
	return w.maxRadius
}

// Remove unregisters entity by ID. Unknown IDs are ignored.
func (w *World) Remove(objectID uint32) {
	value, ok := w.entities.LoadAndDelete(objectID)
	if !ok {
		return
	}
	t := value.(*tracked)
	t.mu.Lock()
	t.region.Remove(objectID)
	t.mu.Unlock()
}

// Get returns entity by ID
func (w *World) Get(objectID uint32) (*model.Entity, bool) {
	value, ok := w.entities.Load(objectID)
	if !ok {
		return nil, false
	}
	return value.(*tracked).entity, true
}

// Move updates the entity position and refiles it when it crosses a region border.
func (w *World) Move(objectID uint32, pos model.Vec3) bool {
	value, ok := w.entities.Load(objectID)
	if !ok {
		return false
	}
	t := value.(*tracked)
	t.entity.SetPosition(pos)

	region := w.GetRegion(pos.X, pos.Z)
	t.mu.Lock()
	defer t.mu.Unlock()
	if region != t.region {
		t.region.Remove(objectID)
		region.Add(t.entity)
		t.region = region
	}
	return true
}

// QueryNearby returns entities whose horizontal distance to center is at most radius,
// ordered by object ID. Implements ai.SpatialQuery.
func (w *World) QueryNearby(center model.Vec3, radius float64) []*model.Entity {
	if radius < 0 {
		return nil
	}

	rx0, rz0 := w.layout.CoordToRegionIndex(center.X-radius, center.Z-radius)
	rx1, rz1 := w.layout.CoordToRegionIndex(center.X+radius, center.Z+radius)

	limit := radius * radius
	flat := center.Horizontal()

	var result []*model.Entity
	for rx := rx0; rx <= rx1; rx++ {
		for rz := rz0; rz <= rz1; rz++ {
			for _, e := range w.regions[rx][rz].Snapshot() {
				if e.Position().Horizontal().DistanceSquared(flat) <= limit {
					result = append(result, e)
				}
			}
		}
	}

	// Callers take the first match on ties
	slices.SortFunc(result, func(a, b *model.Entity) int {
		return int(int64(a.ObjectID()) - int64(b.ObjectID()))
	})
	return result
}

// Count returns total number of entities in world (O(N)).
func (w *World) Count() int {
	count := 0
	w.entities.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// ForEach iterates over all entities. If fn returns false, iteration stops.
func (w *World) ForEach(fn func(*model.Entity) bool) {
	w.entities.Range(func(_, value any) bool {
		return fn(value.(*tracked).entity)
	})
}

// Spawn creates an entity of class at pos with a fresh ID and registers it.
func (w *World) Spawn(class model.EntityClass, pos model.Vec3, radius float64, obstacle bool) (*model.Entity, error) {
	e := model.NewEntity(w.ids.Next(class), class, pos, radius, obstacle)
	if err := w.Add(e); err != nil {
		return nil, err
	}
	slog.Debug("entity spawned", "id", e.ObjectID(), "class", class, "pos", pos)
	return e, nil
}
