package geo

// Pathfinding configuration.
const (
	// MaxPathfindIterations bounds A* CPU time per request.
	MaxPathfindIterations = 7000

	// A* weights. Cells next to a wall cost more so paths keep some clearance.
	WeightLow      = 1.0
	WeightHigh     = 3.0
	WeightDiagonal = 1.414 // sqrt(2)

	// smoothPasses is how many anti-zigzag passes run over a raw A* path.
	smoothPasses = 3
)
