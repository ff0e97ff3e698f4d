package session

import "errors"

var (
	// ErrInvalidToken indicates the token is unknown or has expired.
	ErrInvalidToken = errors.New("invalid or expired session token")
	// ErrAlreadyControlled indicates the character is already claimed by
	// another session.
	ErrAlreadyControlled = errors.New("character is already controlled by another session")
	// ErrNotOwner indicates the token is valid but doesn't own the
	// character in question.
	ErrNotOwner = errors.New("session does not control this character")
)
