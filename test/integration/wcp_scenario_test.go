package integration

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Solifugus/storysplicer/internal/domain/area"
	"github.com/Solifugus/storysplicer/internal/domain/character"
	"github.com/Solifugus/storysplicer/internal/domain/item"
	"github.com/Solifugus/storysplicer/internal/domain/world"
	"github.com/Solifugus/storysplicer/internal/kernel"
	"github.com/Solifugus/storysplicer/internal/repository/mocks"
	"github.com/Solifugus/storysplicer/internal/session"
	"github.com/Solifugus/storysplicer/internal/trigger"
	"github.com/Solifugus/storysplicer/internal/wcp"
)

// env wires a wcp.Handler over a real Kernel backed by mocked repositories,
// the same way WCP clients see the system over stdio or websocket.
type env struct {
	worlds     *mocks.WorldRepository
	areas      *mocks.AreaRepository
	characters *mocks.CharacterRepository
	items      *mocks.ItemRepository
	sessions   *session.Store
	handler    *wcp.Handler
}

func newEnv() *env {
	worlds := &mocks.WorldRepository{}
	areas := &mocks.AreaRepository{}
	characters := &mocks.CharacterRepository{}
	items := &mocks.ItemRepository{}
	sessions := session.NewStore(nil)

	k := kernel.New(worlds, areas, characters, items, sessions, trigger.NewEngine(), nil)
	h := wcp.NewHandler(k, sessions,
		world.NewService(worlds, nil),
		area.NewService(areas, nil),
		character.NewService(characters, nil),
		item.NewService(items, nil),
	)
	return &env{worlds: worlds, areas: areas, characters: characters, items: items, sessions: sessions, handler: h}
}

// TestScenario_PickupThenDrop covers spec.md §8 scenario 1.
func TestScenario_PickupThenDrop(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	c := &character.Character{ID: "20", WorldID: "w1", AreaID: "10", Class: character.ClassMinor}
	i := &item.Item{ID: "30", WorldID: "w1", Name: "Torch", AreaID: "10"}

	e.characters.On("Get", ctx, "20").Return(c, nil)
	e.items.On("Get", ctx, "30").Return(i, nil)
	e.items.On("ListByHolder", ctx, "20").Return([]item.Item{}, nil).Once()
	e.items.On("Update", ctx, mock.Anything).Return(nil)
	e.characters.On("Update", ctx, mock.Anything).Return(nil)
	e.areas.On("Get", ctx, "10").Return(&area.Area{ID: "10", WorldID: "w1"}, nil)

	params, _ := json.Marshal(wcp.ItemPickupParams{CharacterID: "20", ItemID: "30", Location: "right hand"})
	_, err := e.handler.Handle(ctx, "", "item_pickup", params, false)
	require.NoError(t, err)
	require.Equal(t, "20", i.HeldByCharacterID)
	require.Equal(t, "right hand", i.HeldLocation)
	require.Empty(t, i.AreaID)
	require.Equal(t, "picked up Torch", c.Memory[len(c.Memory)-1].Action)

	params, _ = json.Marshal(wcp.ItemDropParams{CharacterID: "20", ItemID: "30"})
	_, err = e.handler.Handle(ctx, "", "item_drop", params, false)
	require.NoError(t, err)
	require.Equal(t, "10", i.AreaID)
	require.Empty(t, i.HeldByCharacterID)
	require.Empty(t, i.HeldLocation)
}

// TestScenario_SecretDoorKeyword covers spec.md §8 scenario 2.
func TestScenario_SecretDoorKeyword(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	target := "42"
	appended := "\nA secret passage opens."
	a := &area.Area{
		ID: "A", WorldID: "w1", Description: "A dusty study.", Exits: area.NewExits(),
		Triggers: []trigger.Trigger{{
			Condition: trigger.Condition{Type: trigger.EventCharacterSpeech, Keywords: []string{"open sesame"}},
			Reactions: []trigger.Reaction{
				{Type: trigger.ReactionAddExit, Direction: "secret", TargetAreaID: target},
				{Type: trigger.ReactionAppendDescription, AppendDescription: &appended},
			},
			OneTime: true,
		}},
	}
	c := &character.Character{ID: "C", WorldID: "w1", AreaID: "A", Class: character.ClassMinor}

	e.characters.On("Get", ctx, "C").Return(c, nil)
	e.characters.On("Update", ctx, mock.Anything).Return(nil)
	e.areas.On("Get", ctx, "A").Return(a, nil)
	e.areas.On("Update", ctx, mock.Anything).Return(nil)
	e.areas.On("UpdateTriggers", ctx, "A", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		a.Triggers = args.Get(2).([]trigger.Trigger)
	})

	params, _ := json.Marshal(wcp.CharacterSpeakParams{CharacterID: "C", Text: "Open Sesame!", ActionType: "speech"})
	_, err := e.handler.Handle(ctx, "", "character_speak", params, false)
	require.NoError(t, err)

	require.Equal(t, target, a.Exits["secret"])
	require.Contains(t, a.Description, "A secret passage opens.")
	require.Empty(t, a.Triggers)
}

// TestScenario_CrossAreaMove covers spec.md §8 scenario 3.
func TestScenario_CrossAreaMove(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	c := &character.Character{ID: "C", WorldID: "w1", AreaID: "1", Class: character.ClassMinor}
	b := &area.Area{ID: "2", WorldID: "w1", Exits: area.NewExits()}

	e.characters.On("Get", ctx, "C").Return(c, nil)
	e.characters.On("Update", ctx, mock.Anything).Return(nil)
	e.areas.On("Get", ctx, "2").Return(b, nil)

	params, _ := json.Marshal(wcp.CharacterMoveParams{CharacterID: "C", AreaID: "2"})
	_, err := e.handler.Handle(ctx, "", "character_move", params, false)
	require.NoError(t, err)
	require.Equal(t, "2", c.AreaID)
}

// TestScenario_OwnershipExclusivity covers spec.md §8 scenario 5.
func TestScenario_OwnershipExclusivity(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	c := &character.Character{ID: "C", WorldID: "w1", Class: character.ClassMinor}
	e.characters.On("Get", ctx, "C").Return(c, nil)
	e.characters.On("Update", ctx, mock.Anything).Return(nil)

	params, _ := json.Marshal(wcp.CharacterClaimParams{PlayerID: "p1", CharacterID: "C"})
	result, err := e.handler.Handle(ctx, "", "character_claim", params, false)
	require.NoError(t, err)
	token1 := result.(wcp.SessionResult).Token
	require.NotEmpty(t, token1)

	params, _ = json.Marshal(wcp.CharacterClaimParams{PlayerID: "p2", CharacterID: "C"})
	_, err = e.handler.Handle(ctx, "", "character_claim", params, false)
	require.ErrorIs(t, err, kernel.ErrAlreadyOwned)

	params, _ = json.Marshal(wcp.CharacterIDParams{CharacterID: "C"})
	_, err = e.handler.Handle(ctx, "", "character_release", params, false)
	require.NoError(t, err)

	params, _ = json.Marshal(wcp.CharacterClaimParams{PlayerID: "p2", CharacterID: "C"})
	result, err = e.handler.Handle(ctx, "", "character_claim", params, false)
	require.NoError(t, err)
	token2 := result.(wcp.SessionResult).Token
	require.NotEmpty(t, token2)
	require.NotEqual(t, token1, token2)
}
