// Package character holds the Character entity: the identity, physiology,
// location, and ownership of one actor in a world. Characters may be
// player-controlled (owner_id set, claimed through a session) or
// scheduler-controlled (owner_id unset), interchangeably, at any moment.
package character

import "time"

// Class selects which LLM tier and which memory tail length a character
// uses. Story characters get the larger tier and a longer memory; minor
// characters get the smaller tier and a shorter one.
type Class string

const (
	ClassStory Class = "story"
	ClassMinor Class = "minor"
)

// MemoryCap returns the tail length this class's memory log is truncated
// to: 5 for story characters, 3 for minor ones (spec.md §8, invariant 3).
func (c Class) MemoryCap() int {
	if c == ClassStory {
		return 5
	}
	return 3
}

// MemoryEntry is one line of a character's running memory log.
type MemoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Result    string    `json:"result"`
}

// DamageEntry records one wound: a body part, a damage type, and a
// severity percentage that decays over time.
type DamageEntry struct {
	Part     string  `json:"part"`
	Type     string  `json:"type"`
	Severity float64 `json:"severity"`
}

// Character is one actor in a world: a person, creature, or other agent
// that occupies an area, can act and speak, and can hold items.
type Character struct {
	ID      string `json:"id"`
	WorldID string `json:"world_id"`
	AreaID  string `json:"area_id,omitempty"` // current_area_id; empty = no area

	Name            string `json:"name"`
	Age             string `json:"age,omitempty"`
	Gender          string `json:"gender,omitempty"`
	Species         string `json:"species,omitempty"`
	Description     string `json:"description,omitempty"`
	Backstory       string `json:"backstory,omitempty"`
	Interests       string `json:"interests,omitempty"`
	Likes           string `json:"likes,omitempty"`
	Dislikes        string `json:"dislikes,omitempty"`
	Beliefs         string `json:"beliefs,omitempty"`
	InternalConflict string `json:"internal_conflict,omitempty"`

	Class Class `json:"character_class"`

	// Physiology percentages, clamped to [0,100] by every kernel mutator
	// that touches them.
	Nutrition float64 `json:"nutrition"`
	Hydration float64 `json:"hydration"`
	Tiredness float64 `json:"tiredness"`
	Alertness float64 `json:"alertness"`

	Damage []DamageEntry `json:"damage,omitempty"`
	Memory []MemoryEntry `json:"memory,omitempty"`

	// OwnerID is the claiming player's id, or empty if the scheduler
	// controls this character. The kernel is the only writer of this
	// field; the session layer mirrors it in its token map.
	OwnerID string `json:"owner_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Awake reports whether the character is eligible for scheduler cycles
// (alertness >= 20, per spec.md §4.5/glossary).
func (c *Character) Awake() bool {
	return c.Alertness >= 20
}

// Eligible reports whether the scheduler should process this character
// this cycle: awake and not claimed by a player.
func (c *Character) Eligible() bool {
	return c.OwnerID == "" && c.Awake()
}
