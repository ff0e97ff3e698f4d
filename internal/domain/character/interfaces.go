package character

import "context"

// Repository provides persistence for characters.
type Repository interface {
	Create(ctx context.Context, c *Character) error
	Get(ctx context.Context, id string) (*Character, error)
	ListByArea(ctx context.Context, areaID string) ([]Character, error)
	// ListAwakeByWorld returns every character with alertness >= 20 in a
	// world, regardless of ownership (backs the character_list_awake tool).
	ListAwakeByWorld(ctx context.Context, worldID string) ([]Character, error)
	// ListEligibleForCycle returns unowned, awake characters in a world,
	// ordered character_class DESC then id ASC (story characters first,
	// deterministic) — the scheduler's per-cycle query (spec.md §4.5).
	ListEligibleForCycle(ctx context.Context, worldID string) ([]Character, error)
	Update(ctx context.Context, c *Character) error
	Delete(ctx context.Context, id string) error
}
