package wcp

// Request/response payload shapes for the WCP tool catalogue (spec.md §6).
// Each tool's params struct is decoded from the JSON-RPC request's params
// object; each response struct (or slice/plain value) is returned as the
// "content" payload.

// WorldCreateParams are the inputs to world_create.
type WorldCreateParams struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// WorldIDParams names a world by id, used by world_get and
// world_get_writing_style.
type WorldIDParams struct {
	WorldID string `json:"world_id"`
}

// AreaListParams are the inputs to area_list.
type AreaListParams struct {
	WorldID string `json:"world_id"`
}

// AreaIDParams names an area by id, used by area_get, area_get_characters,
// and area_get_items.
type AreaIDParams struct {
	AreaID string `json:"area_id"`
}

// AreaCreateParams are the inputs to area_create.
type AreaCreateParams struct {
	WorldID     string            `json:"world_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Temperature *float64          `json:"temperature,omitempty"`
	Exits       map[string]string `json:"exits,omitempty"`
}

// CharacterIDParams names a character by id, used by character_get,
// character_get_inventory.
type CharacterIDParams struct {
	CharacterID string `json:"character_id"`
}

// CharacterListAwakeParams are the inputs to character_list_awake.
type CharacterListAwakeParams struct {
	WorldID string `json:"world_id"`
}

// CharacterMoveParams are the inputs to character_move.
type CharacterMoveParams struct {
	CharacterID string `json:"character_id"`
	AreaID      string `json:"area_id"`
}

// CharacterSpeakParams are the inputs to character_speak.
type CharacterSpeakParams struct {
	CharacterID string `json:"character_id"`
	Text        string `json:"text"`
	ActionType  string `json:"action_type"`
}

// DamageEntryParams mirrors character.DamageEntry for the wire format.
type DamageEntryParams struct {
	Part     string  `json:"part"`
	Type     string  `json:"type"`
	Severity float64 `json:"severity"`
}

// CharacterUpdateStateParams are the inputs to character_update_state. Nil
// fields are left unchanged, matching kernel.StatePartial's semantics.
type CharacterUpdateStateParams struct {
	CharacterID string              `json:"character_id"`
	Nutrition   *float64            `json:"nutrition,omitempty"`
	Hydration   *float64            `json:"hydration,omitempty"`
	Tiredness   *float64            `json:"tiredness,omitempty"`
	Alertness   *float64            `json:"alertness,omitempty"`
	Damage      []DamageEntryParams `json:"damage,omitempty"`
}

// CharacterAddMemoryParams are the inputs to character_add_memory.
type CharacterAddMemoryParams struct {
	CharacterID string `json:"character_id"`
	Action      string `json:"action"`
	Result      string `json:"result"`
}

// ItemIDParams names an item by id, used by item_get.
type ItemIDParams struct {
	ItemID string `json:"item_id"`
}

// ItemPickupParams are the inputs to item_pickup.
type ItemPickupParams struct {
	CharacterID string `json:"character_id"`
	ItemID      string `json:"item_id"`
	Location    string `json:"location"`
}

// ItemDropParams are the inputs to item_drop.
type ItemDropParams struct {
	CharacterID string `json:"character_id"`
	ItemID      string `json:"item_id"`
}

// ItemCreateParams are the inputs to item_create.
type ItemCreateParams struct {
	WorldID     string            `json:"world_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Properties  map[string]string `json:"properties,omitempty"`
	AreaID      string            `json:"area_id,omitempty"`
}

// CharacterClaimParams are the inputs to character_claim.
type CharacterClaimParams struct {
	PlayerID    string `json:"player_id"`
	CharacterID string `json:"character_id"`
}

// SessionResult is character_claim's response.
type SessionResult struct {
	Token       string `json:"token"`
	CharacterID string `json:"character_id"`
	ExpiresAt   string `json:"expires_at"`
}

// IDResult is the response shape for every *_create tool.
type IDResult struct {
	ID string `json:"id"`
}

// AreaGetResult is area_get's response: the area plus the characters and
// items currently inside it.
type AreaGetResult struct {
	Area       any `json:"area"`
	Characters any `json:"characters"`
	Items      any `json:"items"`
}

// CharacterGetResult is character_get's response: the character plus its
// held inventory.
type CharacterGetResult struct {
	Character any `json:"character"`
	Inventory any `json:"inventory"`
}
