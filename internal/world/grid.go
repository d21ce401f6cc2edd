package world

import (
	"fmt"
	"math"
)

// DefaultRegionSize is the edge length of one spatial region in world units.
const DefaultRegionSize = 16.0

// Bounds describes the XZ area covered by the region grid.
type Bounds struct {
	MinX, MinZ   float64
	Width, Depth float64
	RegionSize   float64
}

// regionLayout maps world coordinates to region indices.
type regionLayout struct {
	minX, minZ float64
	size       float64
	cols, rows int32
}

func newRegionLayout(b Bounds) (regionLayout, error) {
	size := b.RegionSize
	if size <= 0 {
		size = DefaultRegionSize
	}
	if b.Width <= 0 || b.Depth <= 0 {
		return regionLayout{}, fmt.Errorf("world bounds must have a positive area, got %vx%v", b.Width, b.Depth)
	}
	return regionLayout{
		minX: b.MinX,
		minZ: b.MinZ,
		size: size,
		cols: int32(math.Ceil(b.Width / size)),
		rows: int32(math.Ceil(b.Depth / size)),
	}, nil
}

// CoordToRegionIndex converts a world coordinate to a region index.
// Coordinates outside the bounds map to the nearest edge region.
func (l regionLayout) CoordToRegionIndex(x, z float64) (rx, rz int32) {
	rx = int32(math.Floor((x - l.minX) / l.size))
	rz = int32(math.Floor((z - l.minZ) / l.size))
	return min(max(rx, 0), l.cols-1), min(max(rz, 0), l.rows-1)
}

// IsValidRegionIndex checks if region index is within bounds.
func (l regionLayout) IsValidRegionIndex(rx, rz int32) bool {
	return rx >= 0 && rx < l.cols && rz >= 0 && rz < l.rows
}
