// Package trigger implements the data-driven reactive layer attached to
// areas. Triggers are plain data — a tagged-variant condition and a
// sequence of tagged-variant reactions — interpreted by Engine, never
// compiled or dynamically loaded.
package trigger

import "encoding/json"

// EventType enumerates the kernel mutations the engine can react to.
type EventType string

const (
	EventCharacterEnters EventType = "character_enters"
	EventCharacterSpeech EventType = "character_speech"
	EventItemPickedUp    EventType = "item_picked_up"
	EventItemDropped     EventType = "item_dropped"
)

// Event is emitted by the kernel after a mutation commits.
type Event struct {
	Type        EventType
	AreaID      string
	CharacterID string
	ItemID      string
	Text        string // populated for character_speech
}

// Condition matches an Event. It accepts two JSON shapes: a bare string
// (just the event type) or an object with optional keyword/id filters.
type Condition struct {
	Type        EventType `json:"type"`
	Keywords    []string  `json:"keywords,omitempty"`
	CharacterID *string   `json:"character_id,omitempty"`
	ItemID      *string   `json:"item_id,omitempty"`
}

// UnmarshalJSON accepts either `"event_type"` or `{"type": "...", ...}`.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		c.Type = EventType(asString)
		c.Keywords = nil
		c.CharacterID = nil
		c.ItemID = nil
		return nil
	}

	type alias Condition
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = Condition(a)
	return nil
}

// ReactionType enumerates the reaction kinds a trigger can perform.
type ReactionType string

const (
	ReactionAddItem            ReactionType = "add_item"
	ReactionRemoveItem         ReactionType = "remove_item"
	ReactionAddExit            ReactionType = "add_exit"
	ReactionRemoveExit         ReactionType = "remove_exit"
	ReactionModifyDescription  ReactionType = "modify_description"
	ReactionAppendDescription  ReactionType = "append_description" // standalone alias, handled in execute
	ReactionModifyTemperature  ReactionType = "modify_temperature"
)

// ItemTemplate is the embedded item definition used by add_item reactions.
type ItemTemplate struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"`
}

// Reaction is one effect a trigger performs, in declared order, through the
// kernel.
type Reaction struct {
	Type ReactionType `json:"type"`

	// add_item
	Item *ItemTemplate `json:"item,omitempty"`

	// remove_item
	ItemID string `json:"item_id,omitempty"`

	// add_exit / remove_exit
	Direction    string `json:"direction,omitempty"`
	TargetAreaID string `json:"target_area_id,omitempty"`

	// modify_description / append_description
	NewDescription    *string `json:"new_description,omitempty"`
	AppendDescription *string `json:"append_description,omitempty"`

	// modify_temperature
	Temperature      *float64 `json:"temperature,omitempty"`
	TemperatureDelta *float64 `json:"temperature_delta,omitempty"`
}

// Trigger is a condition/reaction pair stored on an area.
type Trigger struct {
	Condition Condition  `json:"condition"`
	Reactions []Reaction `json:"reactions"`
	OneTime   bool       `json:"one_time"`
}
