package geo

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/npcwander/internal/model"
)

var (
	ErrNoPath      = errors.New("no path")
	ErrOutOfBounds = errors.New("position outside navigation grid")
)

// Rect is an axis-aligned area of the XZ plane.
type Rect struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

// Cell addresses one grid cell.
type Cell struct {
	X, Z int32
}

// Grid is a walkable-cell navigation surface on the XZ plane at a fixed ground height.
// Read-only after construction, so any number of agents may query it concurrently.
type Grid struct {
	minX, minZ float64
	cellSize   float64
	cols, rows int32
	groundY    float64
	blocked    []bool
}

// NewGrid creates an open grid covering width × depth world units from (minX, minZ).
func NewGrid(minX, minZ, width, depth, cellSize, groundY float64) (*Grid, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("cell size must be positive, got %v", cellSize)
	}
	cols := int32(math.Ceil(width / cellSize))
	rows := int32(math.Ceil(depth / cellSize))
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("grid must have a positive area, got %vx%v", width, depth)
	}

	return &Grid{
		minX:     minX,
		minZ:     minZ,
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		groundY:  groundY,
		blocked:  make([]bool, int(cols)*int(rows)),
	}, nil
}

// Block marks every cell whose center lies inside r as not walkable.
func (g *Grid) Block(r Rect) int {
	n := 0
	for z := range g.rows {
		for x := range g.cols {
			cell := Cell{X: x, Z: z}
			c := g.Center(cell)
			if c.X < r.MinX || c.X > r.MaxX || c.Z < r.MinZ || c.Z > r.MaxZ {
				continue
			}
			if idx := g.index(cell); !g.blocked[idx] {
				g.blocked[idx] = true
				n++
			}
		}
	}
	slog.Debug("navigation cells blocked", "rect", r, "cells", n)
	return n
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (cols, rows int32) {
	return g.cols, g.rows
}

// CellSize returns the edge length of one cell in world units.
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// GroundY returns the height of the walkable surface.
func (g *Grid) GroundY() float64 {
	return g.groundY
}

// CellOf returns the cell containing pos. The result may lie outside the grid.
func (g *Grid) CellOf(pos model.Vec3) Cell {
	return Cell{
		X: int32(math.Floor((pos.X - g.minX) / g.cellSize)),
		Z: int32(math.Floor((pos.Z - g.minZ) / g.cellSize)),
	}
}

// Center returns the world position of a cell center on the ground.
func (g *Grid) Center(c Cell) model.Vec3 {
	return model.Vec3{
		X: g.minX + (float64(c.X)+0.5)*g.cellSize,
		Y: g.groundY,
		Z: g.minZ + (float64(c.Z)+0.5)*g.cellSize,
	}
}

// InBounds reports whether c is a grid cell.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.cols && c.Z >= 0 && c.Z < g.rows
}

// Walkable reports whether c is inside the grid and not blocked.
func (g *Grid) Walkable(c Cell) bool {
	return g.InBounds(c) && !g.blocked[g.index(c)]
}

// WalkableAt reports whether the cell under pos is walkable.
func (g *Grid) WalkableAt(pos model.Vec3) bool {
	return g.Walkable(g.CellOf(pos))
}

func (g *Grid) index(c Cell) int {
	return int(c.Z)*int(g.cols) + int(c.X)
}

// isOpen reports whether all 8 neighbours of c are walkable.
func (g *Grid) isOpen(c Cell) bool {
	for dz := int32(-1); dz <= 1; dz++ {
		for dx := int32(-1); dx <= 1; dx++ {
			if !g.Walkable(Cell{X: c.X + dx, Z: c.Z + dz}) {
				return false
			}
		}
	}
	return true
}
