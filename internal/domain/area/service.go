package area

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Solifugus/storysplicer/internal/repository"
)

// Service answers read-only queries about areas. Creation, deletion, and
// exit/trigger mutation all go through the kernel.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new area query service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get fetches an area by ID.
func (s *Service) Get(ctx context.Context, id string) (*Area, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting area: %w", err)
	}
	return a, nil
}

// ListByWorld returns every area belonging to a world.
func (s *Service) ListByWorld(ctx context.Context, worldID string) ([]Area, error) {
	return s.repo.ListByWorld(ctx, worldID)
}
