package area

import "errors"

var (
	// ErrNotFound indicates the area doesn't exist.
	ErrNotFound = errors.New("area not found")
	// ErrInvalidInput indicates invalid area input.
	ErrInvalidInput = errors.New("invalid area input")
	// ErrNoSuchExit indicates a move was attempted through an exit the area
	// doesn't have.
	ErrNoSuchExit = errors.New("no such exit")
)
