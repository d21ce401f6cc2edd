package model

import "sync"

// EntityClass tags a world entity. Threat avoidance filters on it.
type EntityClass int32

const (
	ClassNPC EntityClass = iota
	ClassPlayer
	ClassVehicle
	ClassProp
)

// IsThreat reports whether agents should flee from entities of this class.
func (c EntityClass) IsThreat() bool {
	return c == ClassPlayer || c == ClassVehicle
}

// String returns human-readable class name
func (c EntityClass) String() string {
	switch c {
	case ClassNPC:
		return "npc"
	case ClassPlayer:
		return "player"
	case ClassVehicle:
		return "vehicle"
	case ClassProp:
		return "prop"
	default:
		return "unknown"
	}
}

// ParseEntityClass converts a config name to EntityClass.
func ParseEntityClass(name string) (EntityClass, bool) {
	switch name {
	case "npc":
		return ClassNPC, true
	case "player":
		return ClassPlayer, true
	case "vehicle":
		return ClassVehicle, true
	case "prop":
		return ClassProp, true
	default:
		return 0, false
	}
}

// Entity is anything registered in the world: agents, players, vehicles, props.
// Position is guarded so spatial queries may run while the owner moves it.
type Entity struct {
	objectID uint32
	class    EntityClass
	radius   float64
	obstacle bool

	mu       sync.RWMutex
	position Vec3
}

// NewEntity creates a new world entity.
// radius is the contact radius; obstacle marks it as something agents steer away from on contact.
func NewEntity(objectID uint32, class EntityClass, pos Vec3, radius float64, obstacle bool) *Entity {
	return &Entity{
		objectID: objectID,
		class:    class,
		radius:   radius,
		obstacle: obstacle,
		position: pos,
	}
}

// ObjectID returns unique entity ID (immutable after creation).
func (e *Entity) ObjectID() uint32 {
	return e.objectID
}

// Class returns the entity class.
func (e *Entity) Class() EntityClass {
	return e.class
}

// Radius returns the contact radius.
func (e *Entity) Radius() float64 {
	return e.radius
}

// Obstacle reports whether contact with this entity should turn an agent around.
func (e *Entity) Obstacle() bool {
	return e.obstacle
}

// Position returns a copy of the current position.
func (e *Entity) Position() Vec3 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.position
}

// SetPosition updates the position.
func (e *Entity) SetPosition(pos Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.position = pos
}
