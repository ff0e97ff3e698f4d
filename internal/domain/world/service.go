package world

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Solifugus/storysplicer/internal/repository"
)

// Service answers read-only queries about worlds. All mutation goes through
// the kernel, which is the sole writer to persistence (see internal/kernel).
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new world query service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get fetches a world by ID.
func (s *Service) Get(ctx context.Context, id string) (*World, error) {
	w, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting world: %w", err)
	}
	return w, nil
}

// List returns all worlds.
func (s *Service) List(ctx context.Context) ([]World, error) {
	return s.repo.List(ctx)
}

// GetWritingStyle returns the writing style for a world, if any.
func (s *Service) GetWritingStyle(ctx context.Context, worldID string) (*WritingStyle, error) {
	style, err := s.repo.GetWritingStyle(ctx, worldID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting writing style: %w", err)
	}
	return style, nil
}
