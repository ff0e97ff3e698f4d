package area

import (
	"context"

	"github.com/Solifugus/storysplicer/internal/trigger"
)

// Repository provides persistence for areas.
type Repository interface {
	Create(ctx context.Context, a *Area) error
	Get(ctx context.Context, id string) (*Area, error)
	ListByWorld(ctx context.Context, worldID string) ([]Area, error)
	Update(ctx context.Context, a *Area) error
	Delete(ctx context.Context, id string) error

	// UpdateTriggers persists the trigger list after the engine prunes
	// one-time triggers that fired. It never touches any other field.
	UpdateTriggers(ctx context.Context, id string, triggers []trigger.Trigger) error
}
