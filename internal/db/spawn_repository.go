package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/npcwander/internal/model"
)

// ErrSpawnNotFound is returned when a spawn point ID does not exist.
var ErrSpawnNotFound = errors.New("spawn point not found")

// SpawnRepository handles spawn point CRUD operations
type SpawnRepository struct {
	pool *pgxpool.Pool
}

// NewSpawnRepository creates a new spawn repository
func NewSpawnRepository(pool *pgxpool.Pool) *SpawnRepository {
	return &SpawnRepository{pool: pool}
}

// LoadAll loads all spawn points ordered by ID.
func (r *SpawnRepository) LoadAll(ctx context.Context) ([]model.SpawnPoint, error) {
	query := `
		SELECT spawn_id, profile, x, y, z, count
		FROM npc_spawns
		ORDER BY spawn_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading all spawns: %w", err)
	}
	defer rows.Close()

	spawns := make([]model.SpawnPoint, 0, 16)
	for rows.Next() {
		var sp model.SpawnPoint
		if err := rows.Scan(&sp.ID, &sp.Profile, &sp.Position.X, &sp.Position.Y, &sp.Position.Z, &sp.Count); err != nil {
			return nil, fmt.Errorf("scanning spawn row: %w", err)
		}
		spawns = append(spawns, sp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spawn rows: %w", err)
	}

	return spawns, nil
}

// LoadByID loads spawn point by ID
func (r *SpawnRepository) LoadByID(ctx context.Context, spawnID int64) (model.SpawnPoint, error) {
	query := `
		SELECT spawn_id, profile, x, y, z, count
		FROM npc_spawns
		WHERE spawn_id = $1
	`

	var sp model.SpawnPoint
	err := r.pool.QueryRow(ctx, query, spawnID).Scan(
		&sp.ID, &sp.Profile, &sp.Position.X, &sp.Position.Y, &sp.Position.Z, &sp.Count,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return sp, fmt.Errorf("loading spawn %d: %w", spawnID, ErrSpawnNotFound)
	}
	if err != nil {
		return sp, fmt.Errorf("loading spawn %d: %w", spawnID, err)
	}
	return sp, nil
}

// Create inserts a spawn point and returns its ID.
func (r *SpawnRepository) Create(ctx context.Context, sp model.SpawnPoint) (int64, error) {
	query := `
		INSERT INTO npc_spawns (profile, x, y, z, count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING spawn_id
	`

	var spawnID int64
	err := r.pool.QueryRow(ctx, query,
		sp.Profile, sp.Position.X, sp.Position.Y, sp.Position.Z, sp.Count,
	).Scan(&spawnID)
	if err != nil {
		return 0, fmt.Errorf("creating spawn for profile %q: %w", sp.Profile, err)
	}

	return spawnID, nil
}

// Delete removes a spawn point.
func (r *SpawnRepository) Delete(ctx context.Context, spawnID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM npc_spawns WHERE spawn_id = $1`, spawnID)
	if err != nil {
		return fmt.Errorf("deleting spawn %d: %w", spawnID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting spawn %d: %w", spawnID, ErrSpawnNotFound)
	}
	return nil
}
