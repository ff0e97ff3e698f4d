package world

import "errors"

var (
	// ErrNotFound indicates the world doesn't exist.
	ErrNotFound = errors.New("world not found")
	// ErrInvalidInput indicates invalid world input.
	ErrInvalidInput = errors.New("invalid world input")
)
