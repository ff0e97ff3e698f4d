package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Solifugus/storysplicer/internal/domain/world"
	"github.com/Solifugus/storysplicer/internal/repository"
)

func TestWorldRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorldRepository(db)
	ctx := context.Background()

	w := &world.World{ID: "w1", Name: "Aldervale", Description: "a quiet kingdom", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, w))

	got, err := repo.Get(ctx, "w1")
	require.NoError(t, err)
	require.Equal(t, "Aldervale", got.Name)
	require.Equal(t, "a quiet kingdom", got.Description)
}

func TestWorldRepository_GetNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorldRepository(db)

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWorldRepository_List(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorldRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &world.World{ID: "w1", Name: "First", CreatedAt: time.Now()}))
	require.NoError(t, repo.Create(ctx, &world.World{ID: "w2", Name: "Second", CreatedAt: time.Now()}))

	worlds, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, worlds, 2)
}

func TestWorldRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorldRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &world.World{ID: "w1", Name: "Gone Soon", CreatedAt: time.Now()}))
	require.NoError(t, repo.Delete(ctx, "w1"))

	_, err := repo.Get(ctx, "w1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWorldRepository_GetWritingStyleNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorldRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &world.World{ID: "w1", Name: "Styleless", CreatedAt: time.Now()}))

	_, err := repo.GetWritingStyle(ctx, "w1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
