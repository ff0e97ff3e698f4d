// Package item holds the Item entity. An item is located one of two ways:
// sitting in an area, or held by a character in a named holding slot, never
// both (spec.md §8, invariant 2). The kernel's area-delete and
// character-delete cascades can leave an item with neither set.
package item

import "time"

// Hand slot names the pickup action allocates between. Other slot names
// are accepted from direct WCP calls; only the two hands are mandatory.
const (
	RightHand = "right hand"
	LeftHand  = "left hand"
)

// Item is a physical object that occupies an area or is carried by a
// character.
type Item struct {
	ID          string            `json:"id"`
	WorldID     string            `json:"world_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Properties  map[string]string `json:"properties,omitempty"`

	// At most one of AreaID / HeldByCharacterID is set.
	AreaID            string `json:"area_id,omitempty"`
	HeldByCharacterID string `json:"held_by_character_id,omitempty"`
	HeldLocation      string `json:"held_location,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// InArea reports whether the item currently sits in an area rather than
// being held.
func (i *Item) InArea() bool {
	return i.AreaID != ""
}

// Held reports whether the item is currently held by a character.
func (i *Item) Held() bool {
	return i.HeldByCharacterID != ""
}
