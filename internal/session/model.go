// Package session implements the in-memory ownership layer that lets a
// player claim control of a character for the lifetime of a token. Sessions
// are never persisted: a process restart drops every token, while the
// owner_id the kernel recorded on the character row stays as it was (see
// SPEC_FULL.md §4.3).
package session

import "time"

// Session binds one player to one character for as long as the token is
// valid.
type Session struct {
	Token        string
	PlayerID     string
	CharacterID  string
	CreatedAt    time.Time
	LastActivity time.Time
	ExpiresAt    time.Time
}

// Expired reports whether the session has passed its TTL as of now.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
