package spawn

import (
	"context"

	"github.com/udisondev/npcwander/internal/model"
)

// StaticRepository serves spawn points defined in configuration.
type StaticRepository struct {
	points []model.SpawnPoint
}

// NewStaticRepository assigns IDs 1..n to points in order.
func NewStaticRepository(points []model.SpawnPoint) *StaticRepository {
	out := make([]model.SpawnPoint, len(points))
	for i, p := range points {
		p.ID = int64(i + 1)
		out[i] = p
	}
	return &StaticRepository{points: out}
}

// LoadAll implements SpawnRepository.
func (r *StaticRepository) LoadAll(context.Context) ([]model.SpawnPoint, error) {
	out := make([]model.SpawnPoint, len(r.points))
	copy(out, r.points)
	return out, nil
}
