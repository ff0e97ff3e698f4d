package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Solifugus/storysplicer/internal/domain/world"
	"github.com/Solifugus/storysplicer/internal/repository"
)

// WorldRepository implements world.Repository against PostgreSQL.
type WorldRepository struct {
	db *DB
}

// NewWorldRepository creates a WorldRepository.
func NewWorldRepository(db *DB) *WorldRepository {
	return &WorldRepository{db: db}
}

// Create inserts a new world row.
func (r *WorldRepository) Create(ctx context.Context, w *world.World) error {
	const q = `INSERT INTO worlds (id, name, description, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, q, w.ID, w.Name, w.Description, w.CreatedAt); err != nil {
		return fmt.Errorf("inserting world: %w", mapErr(err))
	}
	return nil
}

// Get fetches a world by id.
func (r *WorldRepository) Get(ctx context.Context, id string) (*world.World, error) {
	const q = `SELECT id, name, description, created_at FROM worlds WHERE id = $1`
	var w world.World
	err := r.db.QueryRowContext(ctx, q, id).Scan(&w.ID, &w.Name, &w.Description, &w.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting world: %w", mapErr(err))
	}
	return &w, nil
}

// List returns every world.
func (r *WorldRepository) List(ctx context.Context) ([]world.World, error) {
	const q = `SELECT id, name, description, created_at FROM worlds ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing worlds: %w", mapErr(err))
	}
	defer rows.Close()

	var out []world.World
	for rows.Next() {
		var w world.World
		if err := rows.Scan(&w.ID, &w.Name, &w.Description, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning world row: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Delete removes a world row. Cascades to areas/characters/items/styles
// are enforced by the migration's FK ON DELETE CASCADE.
func (r *WorldRepository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM worlds WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("deleting world: %w", mapErr(err))
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetWritingStyle fetches the one writing style row for a world, if any.
func (r *WorldRepository) GetWritingStyle(ctx context.Context, worldID string) (*world.WritingStyle, error) {
	const q = `SELECT world_id, tone, voice, notes FROM writing_styles WHERE world_id = $1`
	var s world.WritingStyle
	err := r.db.QueryRowContext(ctx, q, worldID).Scan(&s.WorldID, &s.Tone, &s.Voice, &s.Notes)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting writing style: %w", mapErr(err))
	}
	return &s, nil
}

var _ world.Repository = (*WorldRepository)(nil)
