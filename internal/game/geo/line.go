package geo

import "github.com/udisondev/npcwander/internal/model"

// LineIterator steps through grid cells along a Bresenham line from start to end.
type LineIterator struct {
	currentX, currentZ int32
	targetX, targetZ   int32
	deltaX, deltaZ     int32
	stepX, stepZ       int32
	err                int32
	started            bool
}

// NewLineIterator creates a cell line iterator.
func NewLineIterator(from, to Cell) *LineIterator {
	it := &LineIterator{
		currentX: from.X, currentZ: from.Z,
		targetX: to.X, targetZ: to.Z,
		deltaX: abs32(to.X - from.X),
		deltaZ: -abs32(to.Z - from.Z),
		stepX:  1,
		stepZ:  1,
	}
	if from.X > to.X {
		it.stepX = -1
	}
	if from.Z > to.Z {
		it.stepZ = -1
	}
	it.err = it.deltaX + it.deltaZ
	return it
}

// Next advances to the next cell. The first call yields the start cell.
// Returns false once the target has been yielded.
func (it *LineIterator) Next() bool {
	if !it.started {
		it.started = true
		return true
	}
	if it.currentX == it.targetX && it.currentZ == it.targetZ {
		return false
	}

	e2 := 2 * it.err
	if e2 >= it.deltaZ {
		it.err += it.deltaZ
		it.currentX += it.stepX
	}
	if e2 <= it.deltaX {
		it.err += it.deltaX
		it.currentZ += it.stepZ
	}
	return true
}

// Cell returns the current cell.
func (it *LineIterator) Cell() Cell {
	return Cell{X: it.currentX, Z: it.currentZ}
}

// LineWalkable reports whether every cell on the line between a and b is walkable.
func (g *Grid) LineWalkable(a, b model.Vec3) bool {
	it := NewLineIterator(g.CellOf(a), g.CellOf(b))
	for it.Next() {
		if !g.Walkable(it.Cell()) {
			return false
		}
	}
	return true
}

// Raycast reports whether a blocked cell or the grid edge lies within distance
// of origin along dir. Implements ai.ObstacleProbe.
func (g *Grid) Raycast(origin, dir model.Vec3, distance float64) bool {
	d := dir.Horizontal().Normalized()
	if d.IsZero() || distance <= 0 {
		return false
	}
	end := origin.Add(d.Scale(distance))
	return !g.LineWalkable(origin, end)
}
