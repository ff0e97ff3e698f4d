package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Solifugus/storysplicer/internal/domain/character"
)

// CharacterRepository implements character.Repository against PostgreSQL.
type CharacterRepository struct {
	db *DB
}

// NewCharacterRepository creates a CharacterRepository.
func NewCharacterRepository(db *DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

const characterColumns = `id, world_id, current_area_id, name, age, gender, species, description,
	backstory, interests, likes, dislikes, beliefs, internal_conflict, character_class,
	nutrition, hydration, tiredness, alertness, damage, memory, owner_id, created_at`

// Create inserts a new character row.
func (r *CharacterRepository) Create(ctx context.Context, c *character.Character) error {
	damage, memory, err := encodeCharacter(c)
	if err != nil {
		return err
	}
	const q = `INSERT INTO characters (` + characterColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)`
	_, err = r.db.ExecContext(ctx, q,
		c.ID, c.WorldID, nullString(c.AreaID), c.Name, c.Age, c.Gender, c.Species, c.Description,
		c.Backstory, c.Interests, c.Likes, c.Dislikes, c.Beliefs, c.InternalConflict, string(c.Class),
		c.Nutrition, c.Hydration, c.Tiredness, c.Alertness, damage, memory, nullString(c.OwnerID), c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting character: %w", mapErr(err))
	}
	return nil
}

// Get fetches a character by id.
func (r *CharacterRepository) Get(ctx context.Context, id string) (*character.Character, error) {
	q := `SELECT ` + characterColumns + ` FROM characters WHERE id = $1`
	return scanCharacterRow(r.db.QueryRowContext(ctx, q, id))
}

// ListByArea returns every character currently in an area.
func (r *CharacterRepository) ListByArea(ctx context.Context, areaID string) ([]character.Character, error) {
	q := `SELECT ` + characterColumns + ` FROM characters WHERE current_area_id = $1`
	return r.queryList(ctx, q, areaID)
}

// ListAwakeByWorld returns every character with alertness >= 20 in a world.
func (r *CharacterRepository) ListAwakeByWorld(ctx context.Context, worldID string) ([]character.Character, error) {
	q := `SELECT ` + characterColumns + ` FROM characters WHERE world_id = $1 AND alertness >= 20`
	return r.queryList(ctx, q, worldID)
}

// ListEligibleForCycle returns unowned, awake characters in a world,
// ordered story-first then deterministically by id (spec.md §4.5).
func (r *CharacterRepository) ListEligibleForCycle(ctx context.Context, worldID string) ([]character.Character, error) {
	q := `SELECT ` + characterColumns + ` FROM characters
		WHERE world_id = $1 AND owner_id IS NULL AND alertness >= 20
		ORDER BY character_class DESC, id ASC`
	return r.queryList(ctx, q, worldID)
}

func (r *CharacterRepository) queryList(ctx context.Context, q string, arg string) ([]character.Character, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", mapErr(err))
	}
	defer rows.Close()

	var out []character.Character
	for rows.Next() {
		c, err := scanCharacterRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Update rewrites every mutable column of a character.
func (r *CharacterRepository) Update(ctx context.Context, c *character.Character) error {
	damage, memory, err := encodeCharacter(c)
	if err != nil {
		return err
	}
	const q = `UPDATE characters SET
		current_area_id = $2, name = $3, age = $4, gender = $5, species = $6, description = $7,
		backstory = $8, interests = $9, likes = $10, dislikes = $11, beliefs = $12,
		internal_conflict = $13, character_class = $14, nutrition = $15, hydration = $16,
		tiredness = $17, alertness = $18, damage = $19, memory = $20, owner_id = $21
		WHERE id = $1`
	_, err = r.db.ExecContext(ctx, q,
		c.ID, nullString(c.AreaID), c.Name, c.Age, c.Gender, c.Species, c.Description,
		c.Backstory, c.Interests, c.Likes, c.Dislikes, c.Beliefs, c.InternalConflict, string(c.Class),
		c.Nutrition, c.Hydration, c.Tiredness, c.Alertness, damage, memory, nullString(c.OwnerID),
	)
	if err != nil {
		return fmt.Errorf("updating character: %w", mapErr(err))
	}
	return nil
}

// Delete removes a character row.
func (r *CharacterRepository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM characters WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting character: %w", mapErr(err))
	}
	return nil
}

func scanCharacterRow(row rowScanner) (*character.Character, error) {
	var c character.Character
	var areaID, ownerID sql.NullString
	var class string
	var damage, memory []byte

	err := row.Scan(
		&c.ID, &c.WorldID, &areaID, &c.Name, &c.Age, &c.Gender, &c.Species, &c.Description,
		&c.Backstory, &c.Interests, &c.Likes, &c.Dislikes, &c.Beliefs, &c.InternalConflict, &class,
		&c.Nutrition, &c.Hydration, &c.Tiredness, &c.Alertness, &damage, &memory, &ownerID, &c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning character: %w", mapErr(err))
	}
	c.AreaID = areaID.String
	c.OwnerID = ownerID.String
	c.Class = character.Class(class)

	if err := json.Unmarshal(damage, &c.Damage); err != nil {
		return nil, fmt.Errorf("decoding damage: %w", err)
	}
	if err := json.Unmarshal(memory, &c.Memory); err != nil {
		return nil, fmt.Errorf("decoding memory: %w", err)
	}
	return &c, nil
}

func encodeCharacter(c *character.Character) (damage, memory []byte, err error) {
	damage, err = json.Marshal(c.Damage)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding damage: %w", err)
	}
	memory, err = json.Marshal(c.Memory)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding memory: %w", err)
	}
	return damage, memory, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ character.Repository = (*CharacterRepository)(nil)
