package item

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Solifugus/storysplicer/internal/repository"
)

// Service answers read-only queries about items. Pickup, drop, creation,
// and destruction all go through the kernel.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new item query service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get fetches an item by ID.
func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	i, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return i, nil
}

// ListByArea returns every item currently sitting in an area.
func (s *Service) ListByArea(ctx context.Context, areaID string) ([]Item, error) {
	return s.repo.ListByArea(ctx, areaID)
}

// ListByHolder returns every item a character is currently carrying.
func (s *Service) ListByHolder(ctx context.Context, characterID string) ([]Item, error) {
	return s.repo.ListByHolder(ctx, characterID)
}
