// Package world holds the World and WritingStyle entities: the top-level
// container a simulation runs inside.
package world

import "time"

// World is a named container that owns all areas, characters, items, and
// styles in a simulation.
type World struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// WritingStyle is a one-per-world prose generation configuration. The core
// only reads it; the narrator (out of scope) is the sole writer in the full
// system.
type WritingStyle struct {
	WorldID string `json:"world_id"`
	Tone    string `json:"tone,omitempty"`
	Voice   string `json:"voice,omitempty"`
	Notes   string `json:"notes,omitempty"`
}
