package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Migration is one forward/backward schema change, recorded into the
// migrations ledger by name once applied (spec.md §6: "Forward/backward
// functions per migration, recorded in a migrations table with (id, name
// UNIQUE, executed_at)"). Hand-rolled rather than built on golang-migrate:
// golang-migrate owns its own schema_migrations version table and
// file-based source model, which can't produce this exact ledger shape
// (see DESIGN.md).
type Migration struct {
	ID   int
	Name string
	Up   func(ctx context.Context, tx *sql.Tx) error
	Down func(ctx context.Context, tx *sql.Tx) error
}

// Migrations is the ordered list of schema changes this core ships with.
var Migrations = []Migration{
	{ID: 1, Name: "initial_schema", Up: upInitialSchema, Down: downInitialSchema},
}

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS migrations (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	executed_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// Migrate applies every migration not yet recorded in the ledger, in id
// order, each inside its own transaction.
func Migrate(ctx context.Context, db *DB) error {
	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range Migrations {
		if applied[m.Name] {
			continue
		}
		if err := applyMigration(ctx, db, m); err != nil {
			return fmt.Errorf("applying migration %q: %w", m.Name, err)
		}
	}
	return nil
}

// Rollback reverses the most recently applied migration.
func Rollback(ctx context.Context, db *DB) error {
	var id int
	var name string
	err := db.QueryRowContext(ctx, `SELECT id, name FROM migrations ORDER BY id DESC LIMIT 1`).Scan(&id, &name)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("finding last migration: %w", err)
	}

	var target *Migration
	for i := range Migrations {
		if Migrations[i].Name == name {
			target = &Migrations[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no registered migration named %q to roll back", name)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning rollback transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := target.Down(ctx, tx); err != nil {
		return fmt.Errorf("reverting migration %q: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM migrations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("removing migration record: %w", err)
	}
	return tx.Commit()
}

func appliedMigrations(ctx context.Context, db *DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM migrations`)
	if err != nil {
		return nil, fmt.Errorf("listing applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning migration row: %w", err)
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

func applyMigration(ctx context.Context, db *DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := m.Up(ctx, tx); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO migrations (id, name) VALUES ($1, $2)`, m.ID, m.Name); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}
	return tx.Commit()
}

// --- migration 1: initial_schema -------------------------------------------
//
// Declares all eight relations from spec.md §6. This core's repositories
// only read/write worlds, writing_styles, areas, items, characters; series,
// books, chapters are declared empty and FK-ready so a future narrator
// component (out of scope, §1) can attach without a schema change.
func upInitialSchema(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE worlds (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE TABLE writing_styles (
			world_id TEXT PRIMARY KEY REFERENCES worlds(id) ON DELETE CASCADE,
			tone TEXT NOT NULL DEFAULT '',
			voice TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE areas (
			id TEXT PRIMARY KEY,
			world_id TEXT NOT NULL REFERENCES worlds(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			temperature DOUBLE PRECISION NOT NULL DEFAULT 20,
			exits JSONB NOT NULL DEFAULT '{}',
			triggers JSONB NOT NULL DEFAULT '[]'
		);`,
		`CREATE INDEX areas_world_id_idx ON areas(world_id);`,
		`CREATE TABLE characters (
			id TEXT PRIMARY KEY,
			world_id TEXT NOT NULL REFERENCES worlds(id) ON DELETE CASCADE,
			current_area_id TEXT REFERENCES areas(id) ON DELETE SET NULL,
			name TEXT NOT NULL,
			age TEXT NOT NULL DEFAULT '',
			gender TEXT NOT NULL DEFAULT '',
			species TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			backstory TEXT NOT NULL DEFAULT '',
			interests TEXT NOT NULL DEFAULT '',
			likes TEXT NOT NULL DEFAULT '',
			dislikes TEXT NOT NULL DEFAULT '',
			beliefs TEXT NOT NULL DEFAULT '',
			internal_conflict TEXT NOT NULL DEFAULT '',
			character_class TEXT NOT NULL CHECK (character_class IN ('story', 'minor')),
			nutrition DOUBLE PRECISION NOT NULL DEFAULT 100 CHECK (nutrition BETWEEN 0 AND 100),
			hydration DOUBLE PRECISION NOT NULL DEFAULT 100 CHECK (hydration BETWEEN 0 AND 100),
			tiredness DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (tiredness BETWEEN 0 AND 100),
			alertness DOUBLE PRECISION NOT NULL DEFAULT 100 CHECK (alertness BETWEEN 0 AND 100),
			damage JSONB NOT NULL DEFAULT '[]',
			memory JSONB NOT NULL DEFAULT '[]',
			owner_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX characters_world_id_idx ON characters(world_id);`,
		`CREATE INDEX characters_current_area_id_idx ON characters(current_area_id);`,
		`CREATE INDEX characters_owner_id_idx ON characters(owner_id);`,
		`CREATE INDEX characters_character_class_idx ON characters(character_class);`,
		`CREATE TABLE items (
			id TEXT PRIMARY KEY,
			world_id TEXT NOT NULL REFERENCES worlds(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			properties JSONB NOT NULL DEFAULT '{}',
			current_area_id TEXT REFERENCES areas(id) ON DELETE SET NULL,
			held_by_character_id TEXT REFERENCES characters(id) ON DELETE SET NULL,
			held_location TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			-- Kernel mutators (pickup/drop) always leave exactly one of these
			-- set; this only forbids holding an item AND leaving it sitting in
			-- an area at once. Both null is tolerated transiently by
			-- area/character delete cascades (see SPEC_FULL.md §3) and
			-- repaired at the application level, not rejected here.
			CONSTRAINT items_not_both_located CHECK (
				NOT (current_area_id IS NOT NULL AND held_by_character_id IS NOT NULL)
			)
		);`,
		`CREATE INDEX items_world_id_idx ON items(world_id);`,
		`CREATE INDEX items_current_area_id_idx ON items(current_area_id);`,
		`CREATE INDEX items_held_by_character_id_idx ON items(held_by_character_id);`,
		`CREATE TABLE series (
			id UUID PRIMARY KEY,
			world_id TEXT NOT NULL REFERENCES worlds(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX series_world_id_idx ON series(world_id);`,
		`CREATE TABLE books (
			id UUID PRIMARY KEY,
			series_id UUID NOT NULL REFERENCES series(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'drafting' CHECK (status IN ('drafting', 'revising', 'published')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX books_series_id_idx ON books(series_id);`,
		`CREATE TABLE chapters (
			id UUID PRIMARY KEY,
			book_id UUID NOT NULL REFERENCES books(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'drafting' CHECK (status IN ('drafting', 'revising', 'published')),
			body TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX chapters_book_id_idx ON chapters(book_id);`,
	}
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("running statement: %w", err)
		}
	}
	return nil
}

func downInitialSchema(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`DROP TABLE IF EXISTS chapters;`,
		`DROP TABLE IF EXISTS books;`,
		`DROP TABLE IF EXISTS series;`,
		`DROP TABLE IF EXISTS items;`,
		`DROP TABLE IF EXISTS characters;`,
		`DROP TABLE IF EXISTS areas;`,
		`DROP TABLE IF EXISTS writing_styles;`,
		`DROP TABLE IF EXISTS worlds;`,
	}
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("running statement: %w", err)
		}
	}
	return nil
}
