package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Solifugus/storysplicer/internal/domain/item"
)

// ItemRepository implements item.Repository against PostgreSQL.
type ItemRepository struct {
	db *DB
}

// NewItemRepository creates an ItemRepository.
func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `id, world_id, name, description, properties, current_area_id, held_by_character_id, held_location, created_at`

// Create inserts a new item row.
func (r *ItemRepository) Create(ctx context.Context, i *item.Item) error {
	props, err := json.Marshal(i.Properties)
	if err != nil {
		return fmt.Errorf("encoding properties: %w", err)
	}
	const q = `INSERT INTO items (` + itemColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err = r.db.ExecContext(ctx, q,
		i.ID, i.WorldID, i.Name, i.Description, props,
		nullString(i.AreaID), nullString(i.HeldByCharacterID), nullString(i.HeldLocation), i.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", mapErr(err))
	}
	return nil
}

// Get fetches an item by id.
func (r *ItemRepository) Get(ctx context.Context, id string) (*item.Item, error) {
	q := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return scanItemRow(r.db.QueryRowContext(ctx, q, id))
}

// ListByArea returns every item currently sitting in an area.
func (r *ItemRepository) ListByArea(ctx context.Context, areaID string) ([]item.Item, error) {
	q := `SELECT ` + itemColumns + ` FROM items WHERE current_area_id = $1`
	return r.queryList(ctx, q, areaID)
}

// ListByHolder returns every item a character is currently carrying.
func (r *ItemRepository) ListByHolder(ctx context.Context, characterID string) ([]item.Item, error) {
	q := `SELECT ` + itemColumns + ` FROM items WHERE held_by_character_id = $1`
	return r.queryList(ctx, q, characterID)
}

func (r *ItemRepository) queryList(ctx context.Context, q string, arg string) ([]item.Item, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", mapErr(err))
	}
	defer rows.Close()

	var out []item.Item
	for rows.Next() {
		i, err := scanItemRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *i)
	}
	return out, rows.Err()
}

// Update rewrites every mutable column of an item.
func (r *ItemRepository) Update(ctx context.Context, i *item.Item) error {
	props, err := json.Marshal(i.Properties)
	if err != nil {
		return fmt.Errorf("encoding properties: %w", err)
	}
	const q = `UPDATE items SET name = $2, description = $3, properties = $4,
		current_area_id = $5, held_by_character_id = $6, held_location = $7 WHERE id = $1`
	_, err = r.db.ExecContext(ctx, q,
		i.ID, i.Name, i.Description, props,
		nullString(i.AreaID), nullString(i.HeldByCharacterID), nullString(i.HeldLocation),
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", mapErr(err))
	}
	return nil
}

// Delete removes an item row.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM items WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting item: %w", mapErr(err))
	}
	return nil
}

// ClearHolder nulls held_by_character_id (and its held_location) for every
// item held by a deleted character, used by the kernel's character-delete
// cascade. It deliberately leaves current_area_id null too: the item has
// nowhere to fall, and the kernel logs that as needing repair rather than
// guessing a location (see SPEC_FULL.md §3).
func (r *ItemRepository) ClearHolder(ctx context.Context, characterID string) error {
	const q = `UPDATE items SET held_by_character_id = NULL, held_location = NULL WHERE held_by_character_id = $1`
	if _, err := r.db.ExecContext(ctx, q, characterID); err != nil {
		return fmt.Errorf("clearing held items: %w", mapErr(err))
	}
	return nil
}

func scanItemRow(row rowScanner) (*item.Item, error) {
	var i item.Item
	var areaID, holderID, heldLoc sql.NullString
	var props []byte

	err := row.Scan(&i.ID, &i.WorldID, &i.Name, &i.Description, &props, &areaID, &holderID, &heldLoc, &i.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scanning item: %w", mapErr(err))
	}
	i.AreaID = areaID.String
	i.HeldByCharacterID = holderID.String
	i.HeldLocation = heldLoc.String

	if err := json.Unmarshal(props, &i.Properties); err != nil {
		return nil, fmt.Errorf("decoding properties: %w", err)
	}
	return &i, nil
}

var _ item.Repository = (*ItemRepository)(nil)
