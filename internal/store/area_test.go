package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Solifugus/storysplicer/internal/domain/area"
	"github.com/Solifugus/storysplicer/internal/domain/world"
	"github.com/Solifugus/storysplicer/internal/trigger"
)

func seedWorld(t *testing.T, db *DB, id string) {
	t.Helper()
	require.NoError(t, NewWorldRepository(db).Create(context.Background(), &world.World{ID: id, Name: id, CreatedAt: time.Now()}))
}

func TestAreaRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	seedWorld(t, db, "w1")
	repo := NewAreaRepository(db)
	ctx := context.Background()

	a := &area.Area{
		ID:          "a1",
		WorldID:     "w1",
		Name:        "Sunken Library",
		Description: "dust and candlelight",
		Temperature: 14,
		Exits:       map[string]string{"north": "a2"},
	}
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, "Sunken Library", got.Name)
	require.Equal(t, 14.0, got.Temperature)
	require.Equal(t, "a2", got.Exits["north"])
}

func TestAreaRepository_ListByWorld(t *testing.T) {
	db := newTestDB(t)
	seedWorld(t, db, "w1")
	repo := NewAreaRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &area.Area{ID: "a1", WorldID: "w1", Name: "Hall", Exits: area.NewExits()}))
	require.NoError(t, repo.Create(ctx, &area.Area{ID: "a2", WorldID: "w1", Name: "Cellar", Exits: area.NewExits()}))

	areas, err := repo.ListByWorld(ctx, "w1")
	require.NoError(t, err)
	require.Len(t, areas, 2)
}

func TestAreaRepository_UpdateTriggers(t *testing.T) {
	db := newTestDB(t)
	seedWorld(t, db, "w1")
	repo := NewAreaRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &area.Area{ID: "a1", WorldID: "w1", Name: "Vault", Exits: area.NewExits()}))

	triggers := []trigger.Trigger{{
		Condition: trigger.Condition{Type: trigger.EventCharacterSpeech, Keywords: []string{"open sesame"}},
		Reactions: []trigger.Reaction{{Type: trigger.ReactionAddExit, Direction: "down", TargetAreaID: "a2"}},
		OneTime:   true,
	}}
	require.NoError(t, repo.UpdateTriggers(ctx, "a1", triggers))

	got, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, got.Triggers, 1)
	require.True(t, got.Triggers[0].OneTime)
	require.Equal(t, "down", got.Triggers[0].Reactions[0].Direction)
}

func TestAreaRepository_Update(t *testing.T) {
	db := newTestDB(t)
	seedWorld(t, db, "w1")
	repo := NewAreaRepository(db)
	ctx := context.Background()

	a := &area.Area{ID: "a1", WorldID: "w1", Name: "Hall", Temperature: 10, Exits: area.NewExits()}
	require.NoError(t, repo.Create(ctx, a))

	a.Description = "now lit by torches"
	a.Temperature = 18
	require.NoError(t, repo.Update(ctx, a))

	got, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, "now lit by torches", got.Description)
	require.Equal(t, 18.0, got.Temperature)
}
