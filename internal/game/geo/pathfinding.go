package geo

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/udisondev/npcwander/internal/model"
)

// FindPath finds a path from start to end using A* over walkable cells.
// The returned waypoints are cell centers except the last one, which is end
// itself snapped to ground height.
func (g *Grid) FindPath(start, end model.Vec3) ([]model.Vec3, error) {
	from := g.CellOf(start)
	to := g.CellOf(end)

	if !g.Walkable(to) {
		return nil, fmt.Errorf("%w: destination %v not walkable", ErrNoPath, end)
	}
	if !g.InBounds(from) {
		return nil, fmt.Errorf("%w: start %v", ErrOutOfBounds, start)
	}

	goal := end.WithY(g.groundY)

	// Same cell or clear straight line: direct path
	if from == to || g.LineWalkable(start, end) {
		return []model.Vec3{goal}, nil
	}

	result := g.astar(from, to)
	if result == nil {
		return nil, fmt.Errorf("%w: %v -> %v", ErrNoPath, start, end)
	}

	path := make([]model.Vec3, 0, 32)
	for n := result; n != nil; n = n.parent {
		path = append(path, g.Center(Cell{X: n.x, Z: n.z}))
	}

	// Reverse (A* builds path backward)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	// The start cell center is behind the agent; the exact goal replaces the last center.
	path = path[1:]
	path[len(path)-1] = goal

	return g.smoothPath(start.WithY(g.groundY), path), nil
}

// smoothPath removes intermediate waypoints that can be skipped on a straight walkable line.
func (g *Grid) smoothPath(start model.Vec3, path []model.Vec3) []model.Vec3 {
	for range smoothPasses {
		if len(path) <= 1 {
			return path
		}

		changed := false
		smoothed := make([]model.Vec3, 0, len(path))
		prev := start

		for i := 0; i < len(path)-1; i++ {
			if g.LineWalkable(prev, path[i+1]) {
				changed = true
				continue
			}
			smoothed = append(smoothed, path[i])
			prev = path[i]
		}
		smoothed = append(smoothed, path[len(path)-1])
		path = smoothed

		if !changed {
			break
		}
	}
	return path
}

// pathNode represents a node in the A* search graph.
type pathNode struct {
	x, z   int32
	parent *pathNode
	gCost  float64 // Actual cost from start
	hCost  float64 // Heuristic cost to target
	fCost  float64 // gCost + hCost
	index  int     // heap index
}

// astar implements the A* algorithm on grid cells.
func (g *Grid) astar(from, to Cell) *pathNode {
	start := &pathNode{x: from.X, z: from.Z}
	start.hCost = heuristic(from.X, from.Z, to.X, to.Z)
	start.fCost = start.hCost

	openList := &nodeHeap{}
	heap.Init(openList)
	heap.Push(openList, start)

	closed := make(map[Cell]struct{}, 256)

	for range MaxPathfindIterations {
		if openList.Len() == 0 {
			return nil
		}

		current := heap.Pop(openList).(*pathNode)
		if current.x == to.X && current.z == to.Z {
			return current
		}

		key := Cell{X: current.x, Z: current.z}
		if _, exists := closed[key]; exists {
			continue
		}
		closed[key] = struct{}{}

		g.expandNeighbors(current, to, openList, closed)
	}

	return nil // Max iterations exceeded
}

// expandNeighbors adds walkable adjacent cells to the open list.
func (g *Grid) expandNeighbors(current *pathNode, to Cell, openList *nodeHeap, closed map[Cell]struct{}) {
	cardinals := [4]struct{ dx, dz int32 }{
		{0, -1}, // N
		{1, 0},  // E
		{0, 1},  // S
		{-1, 0}, // W
	}
	var passable [4]bool

	push := func(nx, nz int32, weight float64) {
		c := Cell{X: nx, Z: nz}
		if _, exists := closed[c]; exists {
			return
		}
		if !g.isOpen(c) {
			weight = max(weight, WeightHigh)
		}
		node := &pathNode{
			x: nx, z: nz,
			parent: current,
			gCost:  current.gCost + weight,
			hCost:  heuristic(nx, nz, to.X, to.Z),
		}
		node.fCost = node.gCost + node.hCost
		heap.Push(openList, node)
	}

	for i, d := range cardinals {
		nx, nz := current.x+d.dx, current.z+d.dz
		if !g.Walkable(Cell{X: nx, Z: nz}) {
			continue
		}
		passable[i] = true
		push(nx, nz, WeightLow)
	}

	// Diagonal directions (anti-corner-cut: both adjacent cardinals must be passable)
	diagonals := [4]struct {
		dx, dz     int32
		adj1, adj2 int
	}{
		{1, -1, 0, 1},  // NE
		{1, 1, 1, 2},   // SE
		{-1, 1, 2, 3},  // SW
		{-1, -1, 3, 0}, // NW
	}
	for _, d := range diagonals {
		if !passable[d.adj1] || !passable[d.adj2] {
			continue
		}
		nx, nz := current.x+d.dx, current.z+d.dz
		if !g.Walkable(Cell{X: nx, Z: nz}) {
			continue
		}
		push(nx, nz, WeightDiagonal)
	}
}

// heuristic is the Euclidean cell distance.
func heuristic(x, z, tx, tz int32) float64 {
	dx := float64(x - tx)
	dz := float64(z - tz)
	return math.Sqrt(dx*dx + dz*dz)
}

// nodeHeap implements container/heap for the A* open list (min-heap by fCost).
type nodeHeap []*pathNode

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].fCost < h[j].fCost }
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any)        { n := x.(*pathNode); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // GC
	node.index = -1
	*h = old[:n-1]
	return node
}
