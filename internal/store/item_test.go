package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Solifugus/storysplicer/internal/domain/character"
	"github.com/Solifugus/storysplicer/internal/domain/item"
)

func TestItemRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	seedWorld(t, db, "w1")
	seedArea(t, db, "w1", "a1")
	repo := NewItemRepository(db)
	ctx := context.Background()

	i := &item.Item{ID: "i1", WorldID: "w1", Name: "lantern", AreaID: "a1", Properties: map[string]string{"fuel": "oil"}, CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, i))

	got, err := repo.Get(ctx, "i1")
	require.NoError(t, err)
	require.Equal(t, "lantern", got.Name)
	require.Equal(t, "a1", got.AreaID)
	require.Equal(t, "oil", got.Properties["fuel"])
}

func TestItemRepository_PickupAndDropCycle(t *testing.T) {
	db := newTestDB(t)
	seedWorld(t, db, "w1")
	seedArea(t, db, "w1", "a1")
	items := NewItemRepository(db)
	chars := NewCharacterRepository(db)
	ctx := context.Background()

	require.NoError(t, chars.Create(ctx, &character.Character{ID: "c1", WorldID: "w1", AreaID: "a1", Name: "Ash", Class: character.ClassMinor, Alertness: 100, CreatedAt: time.Now()}))
	i := &item.Item{ID: "i1", WorldID: "w1", Name: "dagger", AreaID: "a1", CreatedAt: time.Now()}
	require.NoError(t, items.Create(ctx, i))

	i.AreaID = ""
	i.HeldByCharacterID = "c1"
	i.HeldLocation = item.RightHand
	require.NoError(t, items.Update(ctx, i))

	held, err := items.ListByHolder(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, held, 1)
	require.Equal(t, item.RightHand, held[0].HeldLocation)

	require.NoError(t, items.ClearHolder(ctx, "c1"))
	got, err := items.Get(ctx, "i1")
	require.NoError(t, err)
	require.Empty(t, got.HeldByCharacterID)
	require.Empty(t, got.AreaID)
}

func TestItemRepository_ListByArea(t *testing.T) {
	db := newTestDB(t)
	seedWorld(t, db, "w1")
	seedArea(t, db, "w1", "a1")
	repo := NewItemRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &item.Item{ID: "i1", WorldID: "w1", Name: "cup", AreaID: "a1", CreatedAt: time.Now()}))
	require.NoError(t, repo.Create(ctx, &item.Item{ID: "i2", WorldID: "w1", Name: "plate", AreaID: "a1", CreatedAt: time.Now()}))

	got, err := repo.ListByArea(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, got, 2)
}
