package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Solifugus/storysplicer/internal/domain/area"
	"github.com/Solifugus/storysplicer/internal/domain/character"
)

func seedArea(t *testing.T, db *DB, worldID, areaID string) {
	t.Helper()
	require.NoError(t, NewAreaRepository(db).Create(context.Background(), &area.Area{
		ID: areaID, WorldID: worldID, Name: areaID, Exits: area.NewExits(),
	}))
}

func TestCharacterRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	seedWorld(t, db, "w1")
	seedArea(t, db, "w1", "a1")
	repo := NewCharacterRepository(db)
	ctx := context.Background()

	c := &character.Character{
		ID: "c1", WorldID: "w1", AreaID: "a1", Name: "Mireille", Class: character.ClassStory,
		Nutrition: 100, Hydration: 100, Tiredness: 0, Alertness: 100,
		Damage: []character.DamageEntry{{Part: "arm", Type: "bruise", Severity: 10}},
		Memory: []character.MemoryEntry{{Timestamp: time.Now(), Action: "woke up", Result: "felt rested"}},
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, "Mireille", got.Name)
	require.Equal(t, character.ClassStory, got.Class)
	require.Len(t, got.Damage, 1)
	require.Equal(t, "arm", got.Damage[0].Part)
	require.Len(t, got.Memory, 1)
}

func TestCharacterRepository_ListEligibleForCycle_OrderAndFilter(t *testing.T) {
	db := newTestDB(t)
	seedWorld(t, db, "w1")
	seedArea(t, db, "w1", "a1")
	repo := NewCharacterRepository(db)
	ctx := context.Background()

	owned := &character.Character{ID: "c-owned", WorldID: "w1", AreaID: "a1", Name: "Owned", Class: character.ClassMinor, Alertness: 100, CreatedAt: time.Now(), OwnerID: "player1"}
	asleep := &character.Character{ID: "c-asleep", WorldID: "w1", AreaID: "a1", Name: "Asleep", Class: character.ClassMinor, Alertness: 0, CreatedAt: time.Now()}
	minor := &character.Character{ID: "c-minor", WorldID: "w1", AreaID: "a1", Name: "Minor", Class: character.ClassMinor, Alertness: 100, CreatedAt: time.Now()}
	story := &character.Character{ID: "c-story", WorldID: "w1", AreaID: "a1", Name: "Story", Class: character.ClassStory, Alertness: 100, CreatedAt: time.Now()}

	for _, c := range []*character.Character{owned, asleep, minor, story} {
		require.NoError(t, repo.Create(ctx, c))
	}

	eligible, err := repo.ListEligibleForCycle(ctx, "w1")
	require.NoError(t, err)
	require.Len(t, eligible, 2)
	require.Equal(t, character.ClassStory, eligible[0].Class)
	require.Equal(t, character.ClassMinor, eligible[1].Class)
}

func TestCharacterRepository_Update(t *testing.T) {
	db := newTestDB(t)
	seedWorld(t, db, "w1")
	seedArea(t, db, "w1", "a1")
	repo := NewCharacterRepository(db)
	ctx := context.Background()

	c := &character.Character{ID: "c1", WorldID: "w1", AreaID: "a1", Name: "Tam", Class: character.ClassMinor, Alertness: 100, CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, c))

	c.Nutrition = 42
	c.OwnerID = "player9"
	require.NoError(t, repo.Update(ctx, c))

	got, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, 42.0, got.Nutrition)
	require.Equal(t, "player9", got.OwnerID)
}
