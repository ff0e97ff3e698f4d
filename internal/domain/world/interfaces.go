package world

import "context"

// Repository provides persistence for worlds and their writing styles.
type Repository interface {
	Create(ctx context.Context, w *World) error
	Get(ctx context.Context, id string) (*World, error)
	List(ctx context.Context) ([]World, error)
	Delete(ctx context.Context, id string) error
	GetWritingStyle(ctx context.Context, worldID string) (*WritingStyle, error)
}
