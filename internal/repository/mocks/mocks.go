// Package mocks provides testify mocks for each domain package's Repository
// interface, used by the kernel, wcp, transport, and integration tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Solifugus/storysplicer/internal/domain/area"
	"github.com/Solifugus/storysplicer/internal/domain/character"
	"github.com/Solifugus/storysplicer/internal/domain/item"
	"github.com/Solifugus/storysplicer/internal/domain/world"
	"github.com/Solifugus/storysplicer/internal/trigger"
)

// WorldRepository is a mock for world.Repository.
type WorldRepository struct {
	mock.Mock
}

func (m *WorldRepository) Create(ctx context.Context, w *world.World) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *WorldRepository) Get(ctx context.Context, id string) (*world.World, error) {
	args := m.Called(ctx, id)
	if w, ok := args.Get(0).(*world.World); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WorldRepository) List(ctx context.Context) ([]world.World, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]world.World); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WorldRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *WorldRepository) GetWritingStyle(ctx context.Context, worldID string) (*world.WritingStyle, error) {
	args := m.Called(ctx, worldID)
	if s, ok := args.Get(0).(*world.WritingStyle); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// AreaRepository is a mock for area.Repository.
type AreaRepository struct {
	mock.Mock
}

func (m *AreaRepository) Create(ctx context.Context, a *area.Area) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *AreaRepository) Get(ctx context.Context, id string) (*area.Area, error) {
	args := m.Called(ctx, id)
	if a, ok := args.Get(0).(*area.Area); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AreaRepository) ListByWorld(ctx context.Context, worldID string) ([]area.Area, error) {
	args := m.Called(ctx, worldID)
	if list, ok := args.Get(0).([]area.Area); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AreaRepository) Update(ctx context.Context, a *area.Area) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *AreaRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AreaRepository) UpdateTriggers(ctx context.Context, id string, triggers []trigger.Trigger) error {
	args := m.Called(ctx, id, triggers)
	return args.Error(0)
}

// CharacterRepository is a mock for character.Repository.
type CharacterRepository struct {
	mock.Mock
}

func (m *CharacterRepository) Create(ctx context.Context, c *character.Character) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CharacterRepository) Get(ctx context.Context, id string) (*character.Character, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*character.Character); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CharacterRepository) ListByArea(ctx context.Context, areaID string) ([]character.Character, error) {
	args := m.Called(ctx, areaID)
	if list, ok := args.Get(0).([]character.Character); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CharacterRepository) ListAwakeByWorld(ctx context.Context, worldID string) ([]character.Character, error) {
	args := m.Called(ctx, worldID)
	if list, ok := args.Get(0).([]character.Character); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CharacterRepository) ListEligibleForCycle(ctx context.Context, worldID string) ([]character.Character, error) {
	args := m.Called(ctx, worldID)
	if list, ok := args.Get(0).([]character.Character); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CharacterRepository) Update(ctx context.Context, c *character.Character) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CharacterRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ItemRepository is a mock for item.Repository.
type ItemRepository struct {
	mock.Mock
}

func (m *ItemRepository) Create(ctx context.Context, i *item.Item) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *ItemRepository) Get(ctx context.Context, id string) (*item.Item, error) {
	args := m.Called(ctx, id)
	if i, ok := args.Get(0).(*item.Item); ok {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ItemRepository) ListByArea(ctx context.Context, areaID string) ([]item.Item, error) {
	args := m.Called(ctx, areaID)
	if list, ok := args.Get(0).([]item.Item); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ItemRepository) ListByHolder(ctx context.Context, characterID string) ([]item.Item, error) {
	args := m.Called(ctx, characterID)
	if list, ok := args.Get(0).([]item.Item); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ItemRepository) Update(ctx context.Context, i *item.Item) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *ItemRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ItemRepository) ClearHolder(ctx context.Context, characterID string) error {
	args := m.Called(ctx, characterID)
	return args.Error(0)
}
