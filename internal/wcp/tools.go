package wcp

// Tool describes one entry in the WCP tool catalogue (spec.md §6). The
// catalogue is intentionally narrower than the kernel's full mutator set:
// there are no *_delete tools, and character/item creation is exposed only
// where spec.md's table lists it.
type Tool struct {
	Name        string
	Description string
	Mutates     bool
	// Subject, if non-empty, is the params field name that holds the
	// character id a mutating call acts on. Empty means the tool has no
	// character subject (world/area/item metadata calls), so it is never
	// gated by canControl even when it mutates.
	Subject string
}

// Tools is the fixed, closed catalogue of 23 WCP tools: the 20 from
// spec.md §6 plus character_claim, character_release, and tools_list.
var Tools = []Tool{
	{Name: "world_list", Description: "List all worlds."},
	{Name: "world_create", Description: "Create a new world.", Mutates: true},
	{Name: "world_get", Description: "Fetch a world by id."},
	{Name: "world_get_writing_style", Description: "Fetch a world's writing style."},
	{Name: "area_list", Description: "List areas in a world."},
	{Name: "area_get", Description: "Fetch an area with its characters and items."},
	{Name: "area_get_characters", Description: "List the characters currently in an area."},
	{Name: "area_get_items", Description: "List the items currently in an area."},
	{Name: "area_create", Description: "Create a new area in a world.", Mutates: true},
	{Name: "character_get", Description: "Fetch a character by id."},
	{Name: "character_list_awake", Description: "List awake characters in a world."},
	{Name: "character_get_inventory", Description: "List a character's held items."},
	{Name: "character_move", Description: "Move a character to another area.", Mutates: true, Subject: "character_id"},
	{Name: "character_speak", Description: "Have a character speak, act, or think.", Mutates: true, Subject: "character_id"},
	{Name: "character_update_state", Description: "Update a character's physiology.", Mutates: true, Subject: "character_id"},
	{Name: "character_add_memory", Description: "Append a memory entry to a character.", Mutates: true, Subject: "character_id"},
	{Name: "item_get", Description: "Fetch an item by id."},
	{Name: "item_create", Description: "Create a new item in an area.", Mutates: true},
	{Name: "item_pickup", Description: "Pick up an item into a character's hand.", Mutates: true, Subject: "character_id"},
	{Name: "item_drop", Description: "Drop a held item into the character's area.", Mutates: true, Subject: "character_id"},
	{Name: "character_claim", Description: "Claim ownership and a session for a character.", Mutates: true, Subject: "character_id"},
	{Name: "character_release", Description: "Release ownership of a character.", Mutates: true, Subject: "character_id"},
	{Name: "tools_list", Description: "List the WCP tool catalogue."},
}

func findTool(name string) (Tool, bool) {
	for _, t := range Tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}
