// Package store implements the Persistence Adapter: typed reads/writes for
// each entity, with JSON-valued fields decoded on load, against PostgreSQL
// (SPEC_FULL.md §6). It is the only package that issues SQL; every domain
// Repository interface is satisfied structurally by the types here.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB wraps a PostgreSQL connection pool opened through the pgx stdlib
// driver, mirroring the teacher's sqlite.DB wrapper shape so repositories
// read the same way regardless of backend.
type DB struct {
	*sql.DB
}

// Config configures the connection pool (spec.md §6 environment contract).
type Config struct {
	Host           string
	Port           int
	Name           string
	User           string
	Password       string
	PoolMax        int
	IdleTimeout    time.Duration
	ConnectTimeout time.Duration
}

// Open dials PostgreSQL, configures the pool bounds, and confirms
// reachability with a ping bounded by ConnectTimeout.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable connect_timeout=%d",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, int(cfg.ConnectTimeout.Seconds()),
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.PoolMax)
	db.SetMaxIdleConns(cfg.PoolMax)
	db.SetConnMaxIdleTime(cfg.IdleTimeout)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{db}, nil
}
