package world

import (
	"sync/atomic"

	"github.com/udisondev/npcwander/internal/model"
)

// ObjectIDGenerator generates unique object IDs for all world entities.
//
// ID ranges (convention):
//
//	0x00000000 - 0x0FFFFFFF: Reserved (0 = invalid)
//	0x10000000 - 0x1FFFFFFF: Players
//	0x20000000 - 0x2FFFFFFF: NPC agents
//	0x30000000 - 0x3FFFFFFF: Vehicles
//	0x40000000 - 0x4FFFFFFF: Props
type ObjectIDGenerator struct {
	next [4]atomic.Uint32
}

var idBase = [4]uint32{
	model.ClassNPC:     0x20000000,
	model.ClassPlayer:  0x10000000,
	model.ClassVehicle: 0x30000000,
	model.ClassProp:    0x40000000,
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	for i, base := range idBase {
		gen.next[i].Store(base)
	}
	return gen
}

// Next generates the next unique object ID for class.
// Unknown classes draw from the prop range.
func (g *ObjectIDGenerator) Next(class model.EntityClass) uint32 {
	if class < 0 || int(class) >= len(g.next) {
		class = model.ClassProp
	}
	return g.next[class].Add(1)
}

// ClassOfID returns the class whose range contains id.
func ClassOfID(id uint32) (model.EntityClass, bool) {
	for class, base := range idBase {
		if id > base && id < base+0x10000000 {
			return model.EntityClass(class), true
		}
	}
	return 0, false
}
