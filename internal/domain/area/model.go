// Package area holds the Area entity: a location with exits, environmental
// state, and the trigger list the trigger engine matches events against.
package area

import "github.com/Solifugus/storysplicer/internal/trigger"

// Area is a location in a world.
type Area struct {
	ID          string             `json:"id"`
	WorldID     string             `json:"world_id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Temperature float64            `json:"temperature"`
	Exits       map[string]string  `json:"exits"`
	Triggers    []trigger.Trigger  `json:"triggers"`
}

// NewExits returns an empty, non-nil exits map.
func NewExits() map[string]string {
	return make(map[string]string)
}
