package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Solifugus/storysplicer/internal/domain/area"
	"github.com/Solifugus/storysplicer/internal/trigger"
)

// AreaRepository implements area.Repository against PostgreSQL, decoding
// the exits and triggers JSONB columns on every read.
type AreaRepository struct {
	db *DB
}

// NewAreaRepository creates an AreaRepository.
func NewAreaRepository(db *DB) *AreaRepository {
	return &AreaRepository{db: db}
}

// Create inserts a new area row.
func (r *AreaRepository) Create(ctx context.Context, a *area.Area) error {
	exits, triggers, err := encodeArea(a)
	if err != nil {
		return err
	}
	const q = `INSERT INTO areas (id, world_id, name, description, temperature, exits, triggers)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(ctx, q, a.ID, a.WorldID, a.Name, a.Description, a.Temperature, exits, triggers); err != nil {
		return fmt.Errorf("inserting area: %w", mapErr(err))
	}
	return nil
}

// Get fetches an area by id.
func (r *AreaRepository) Get(ctx context.Context, id string) (*area.Area, error) {
	const q = `SELECT id, world_id, name, description, temperature, exits, triggers FROM areas WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// ListByWorld returns every area in a world.
func (r *AreaRepository) ListByWorld(ctx context.Context, worldID string) ([]area.Area, error) {
	const q = `SELECT id, world_id, name, description, temperature, exits, triggers FROM areas WHERE world_id = $1`
	rows, err := r.db.QueryContext(ctx, q, worldID)
	if err != nil {
		return nil, fmt.Errorf("listing areas: %w", mapErr(err))
	}
	defer rows.Close()

	var out []area.Area
	for rows.Next() {
		a, err := scanAreaRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// Update rewrites every mutable column of an area.
func (r *AreaRepository) Update(ctx context.Context, a *area.Area) error {
	exits, triggers, err := encodeArea(a)
	if err != nil {
		return err
	}
	const q = `UPDATE areas SET name = $2, description = $3, temperature = $4, exits = $5, triggers = $6 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, a.ID, a.Name, a.Description, a.Temperature, exits, triggers); err != nil {
		return fmt.Errorf("updating area: %w", mapErr(err))
	}
	return nil
}

// Delete removes an area row.
func (r *AreaRepository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM areas WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting area: %w", mapErr(err))
	}
	return nil
}

// UpdateTriggers persists only the trigger list, used by the kernel after
// the trigger engine prunes one-time triggers that fired.
func (r *AreaRepository) UpdateTriggers(ctx context.Context, id string, triggers []trigger.Trigger) error {
	encoded, err := json.Marshal(triggers)
	if err != nil {
		return fmt.Errorf("encoding triggers: %w", err)
	}
	const q = `UPDATE areas SET triggers = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, id, encoded); err != nil {
		return fmt.Errorf("updating triggers: %w", mapErr(err))
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *AreaRepository) scanOne(row rowScanner) (*area.Area, error) {
	return scanAreaRow(row)
}

func scanAreaRow(row rowScanner) (*area.Area, error) {
	var a area.Area
	var exits, triggers []byte
	if err := row.Scan(&a.ID, &a.WorldID, &a.Name, &a.Description, &a.Temperature, &exits, &triggers); err != nil {
		return nil, fmt.Errorf("scanning area: %w", mapErr(err))
	}
	if err := json.Unmarshal(exits, &a.Exits); err != nil {
		return nil, fmt.Errorf("decoding exits: %w", err)
	}
	if a.Exits == nil {
		a.Exits = area.NewExits()
	}
	if err := json.Unmarshal(triggers, &a.Triggers); err != nil {
		return nil, fmt.Errorf("decoding triggers: %w", err)
	}
	return &a, nil
}

func encodeArea(a *area.Area) (exits, triggers []byte, err error) {
	exits, err = json.Marshal(a.Exits)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding exits: %w", err)
	}
	triggers, err = json.Marshal(a.Triggers)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding triggers: %w", err)
	}
	return exits, triggers, nil
}

var _ area.Repository = (*AreaRepository)(nil)
