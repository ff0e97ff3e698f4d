package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Solifugus/storysplicer/internal/repository"
)

// Postgres error codes this adapter distinguishes (see
// https://www.postgresql.org/docs/current/errcodes-appendix.html).
const (
	pgCodeUniqueViolation     = "23505"
	pgCodeForeignKeyViolation = "23503"
)

// mapErr translates a raw database/sql or pgx error into one of the
// repository package's sentinels so domain/kernel code never needs to
// import this package to interpret a failure.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeForeignKeyViolation:
			return repository.ErrForeignKeyViolation
		case pgCodeUniqueViolation:
			return repository.ErrConflict
		}
	}
	return err
}
