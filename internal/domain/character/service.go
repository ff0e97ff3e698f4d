package character

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Solifugus/storysplicer/internal/repository"
)

// Service answers read-only queries about characters. Movement, speech,
// state updates, and memory appends all go through the kernel.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new character query service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get fetches a character by ID.
func (s *Service) Get(ctx context.Context, id string) (*Character, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting character: %w", err)
	}
	return c, nil
}

// ListByArea returns every character currently in an area.
func (s *Service) ListByArea(ctx context.Context, areaID string) ([]Character, error) {
	return s.repo.ListByArea(ctx, areaID)
}

// ListAwakeByWorld returns every awake character in a world, owned or not.
func (s *Service) ListAwakeByWorld(ctx context.Context, worldID string) ([]Character, error) {
	return s.repo.ListAwakeByWorld(ctx, worldID)
}

// ListEligibleForCycle returns the unowned, awake characters in a world in
// scheduler order: the set the scheduler iterates each cycle.
func (s *Service) ListEligibleForCycle(ctx context.Context, worldID string) ([]Character, error) {
	return s.repo.ListEligibleForCycle(ctx, worldID)
}

// CanControl reports whether playerID owns characterID.
func (s *Service) CanControl(ctx context.Context, characterID, playerID string) (bool, error) {
	c, err := s.Get(ctx, characterID)
	if err != nil {
		return false, err
	}
	return c.OwnerID == playerID, nil
}
