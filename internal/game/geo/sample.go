package geo

import (
	"math"

	"github.com/udisondev/npcwander/internal/model"
)

// SamplePoint projects center onto the nearest walkable point within radius.
// A walkable center keeps its X/Z and is snapped to ground height; otherwise the
// nearest walkable cell center is returned. Implements ai.Surface.
func (g *Grid) SamplePoint(center model.Vec3, radius float64) (model.Vec3, bool) {
	if g.WalkableAt(center) {
		return center.WithY(g.groundY), true
	}

	origin := g.CellOf(center)
	maxRing := int32(math.Ceil(radius/g.cellSize)) + 1
	limit := radius * radius

	var (
		best     model.Vec3
		bestDist = math.Inf(1)
		found    bool
	)

	// Scan rings outward; once a hit is found, one more ring can still hold a closer cell.
	for ring := int32(1); ring <= maxRing; ring++ {
		for dz := -ring; dz <= ring; dz++ {
			for dx := -ring; dx <= ring; dx++ {
				if max(abs32(dx), abs32(dz)) != ring {
					continue
				}
				c := Cell{X: origin.X + dx, Z: origin.Z + dz}
				if !g.Walkable(c) {
					continue
				}
				p := g.Center(c)
				d := p.Horizontal().DistanceSquared(center.Horizontal())
				if d <= limit && d < bestDist {
					best, bestDist, found = p, d, true
				}
			}
		}
		if found && float64(ring-1)*g.cellSize > math.Sqrt(bestDist) {
			break
		}
	}

	return best, found
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
