package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Solifugus/storysplicer/internal/domain/area"
	"github.com/Solifugus/storysplicer/internal/domain/character"
	"github.com/Solifugus/storysplicer/internal/domain/item"
	"github.com/Solifugus/storysplicer/internal/kernel"
	"github.com/Solifugus/storysplicer/internal/llm"
	"github.com/Solifugus/storysplicer/internal/repository/mocks"
	"github.com/Solifugus/storysplicer/internal/scheduler"
	"github.com/Solifugus/storysplicer/internal/session"
	"github.com/Solifugus/storysplicer/internal/trigger"
)

// truncatedRouter always returns a speak action whose JSON is missing its
// closing brace, the way a real model's output is cut short by the
// closing-brace stop string before it gets to emit one (spec.md §8,
// scenario 6).
type truncatedRouter struct{}

func (truncatedRouter) Generate(ctx context.Context, tier llm.Tier, systemPrompt, userPrompt string, opts llm.Options) (string, error) {
	return `{"action":"speak","text":"Hello"`, nil
}

// TestScheduler_ParsesPartialJSONFromModel exercises scenario 6: the
// scheduler must tolerate a model response truncated before its closing
// brace and still resolve it to a speak action whose memory entry reads
// "speech: Hello".
func TestScheduler_ParsesPartialJSONFromModel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worlds := &mocks.WorldRepository{}
	areas := &mocks.AreaRepository{}
	characters := &mocks.CharacterRepository{}
	items := &mocks.ItemRepository{}

	c := &character.Character{
		ID: "char1", WorldID: "world1", AreaID: "area1",
		Class: character.ClassMinor, Nutrition: 100, Hydration: 100,
		Alertness: 100,
	}
	a := &area.Area{ID: "area1", WorldID: "world1", Exits: area.NewExits()}

	characters.On("ListEligibleForCycle", ctx, "world1").Return([]character.Character{*c}, nil).Once()
	characters.On("Get", ctx, "char1").Return(c, nil)
	characters.On("Update", ctx, mock.Anything).Return(nil)
	areas.On("Get", ctx, "area1").Return(a, nil)
	characters.On("ListByArea", ctx, "area1").Return([]character.Character{*c}, nil)
	items.On("ListByArea", ctx, "area1").Return([]item.Item{}, nil)
	items.On("ListByHolder", ctx, "char1").Return([]item.Item{}, nil)

	sessions := session.NewStore(nil)
	k := kernel.New(worlds, areas, characters, items, sessions, trigger.NewEngine(), nil)
	charSvc := character.NewService(characters, nil)
	areaSvc := area.NewService(areas, nil)
	itemSvc := item.NewService(items, nil)

	sched := scheduler.New("world1", time.Hour, k, charSvc, areaSvc, itemSvc, truncatedRouter{}, nil)

	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()

	// Run exactly one cycle: the scheduler's next wait is an hour long, so
	// cancel the loop once the first cycle's stats land.
	require.Eventually(t, func() bool {
		return sched.Stats().TotalCycles >= 1
	}, 2*time.Second, 10*time.Millisecond)

	require.Len(t, c.Memory, 1)
	require.Equal(t, "speech: Hello", c.Memory[0].Action)

	cancel()
	<-done
}
