package testutil

import (
	"testing"

	"github.com/udisondev/npcwander/internal/game/geo"
	"github.com/udisondev/npcwander/internal/world"
)

// Scene is a navigation grid and a spatial world covering the same square.
type Scene struct {
	Grid  *geo.Grid
	World *world.World
}

// NewScene creates an open scene of size×size units centered on the origin.
// blocked areas are marked unwalkable on the grid.
func NewScene(t testing.TB, size float64, blocked ...geo.Rect) Scene {
	t.Helper()

	half := size / 2
	grid, err := geo.NewGrid(-half, -half, size, size, 1, 0)
	if err != nil {
		t.Fatalf("creating grid: %v", err)
	}
	for _, r := range blocked {
		grid.Block(r)
	}

	w, err := world.New(world.Bounds{MinX: -half, MinZ: -half, Width: size, Depth: size, RegionSize: 8})
	if err != nil {
		t.Fatalf("creating world: %v", err)
	}

	return Scene{Grid: grid, World: w}
}
