package character

import "errors"

var (
	// ErrNotFound indicates the character doesn't exist.
	ErrNotFound = errors.New("character not found")
	// ErrInvalidInput indicates invalid character input.
	ErrInvalidInput = errors.New("invalid character input")
	// ErrNotControllable indicates an action was attempted by a session
	// that doesn't currently hold this character.
	ErrNotControllable = errors.New("character is not controllable by this session")
)
