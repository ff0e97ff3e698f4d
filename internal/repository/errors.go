// Package repository holds the sentinel errors shared by every persistence
// adapter. Domain packages declare their own narrow Repository interfaces;
// concrete adapters (internal/store) satisfy them structurally and report
// failures using these sentinels so domain/kernel code can use errors.Is
// without importing a storage-specific package.
package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an optimistic concurrency check fails.
	ErrConflict = errors.New("conflict: entity was modified concurrently")
	// ErrForeignKeyViolation is returned when a foreign key constraint fails.
	ErrForeignKeyViolation = errors.New("foreign key violation")
	// ErrInvalidInput is returned when input validation fails at the
	// persistence boundary.
	ErrInvalidInput = errors.New("invalid input")
)
