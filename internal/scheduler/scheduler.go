// Package scheduler implements the Agent Scheduler (Cycle Engine): a
// single-world, single-loop process that drives every unowned, awake
// character through one physiology tick and one LLM-generated action per
// cycle (spec.md §4.5).
package scheduler

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Solifugus/storysplicer/internal/domain/area"
	"github.com/Solifugus/storysplicer/internal/domain/character"
	"github.com/Solifugus/storysplicer/internal/domain/item"
	"github.com/Solifugus/storysplicer/internal/kernel"
	"github.com/Solifugus/storysplicer/internal/llm"
)

// Scheduler runs the fixed-cadence cycle loop for one world.
type Scheduler struct {
	worldID       string
	cycleInterval time.Duration

	kernel     *kernel.Kernel
	characters *character.Service
	areas      *area.Service
	items      *item.Service
	router     llm.Router
	logger     *slog.Logger

	stats    *Stats
	lastTick time.Time
}

// New creates a Scheduler for one world.
func New(worldID string, cycleInterval time.Duration, k *kernel.Kernel, characters *character.Service, areas *area.Service, items *item.Service, router llm.Router, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		worldID:       worldID,
		cycleInterval: cycleInterval,
		kernel:        k,
		characters:    characters,
		areas:         areas,
		items:         items,
		router:        router,
		logger:        logger,
		stats:         newStats(),
	}
}

// Stats returns a point-in-time snapshot of the scheduler's per-process
// statistics (spec.md §4.5).
func (s *Scheduler) Stats() Snapshot {
	return s.stats.Snapshot()
}

// Run drives the cycle loop until ctx is cancelled. The next cycle is
// scheduled only after the previous one returns (no overlap); if a cycle
// runs longer than cycleInterval, the next one starts immediately
// (best-effort minimum spacing, not a hard period).
func (s *Scheduler) Run(ctx context.Context) {
	s.lastTick = time.Now()
	for {
		cycleStart := time.Now()
		s.runCycle(ctx)
		elapsed := time.Since(cycleStart)

		wait := s.cycleInterval - elapsed
		if wait < 0 {
			wait = 0
		}

		select {
		case <-ctx.Done():
			if s.logger != nil {
				s.logger.Info("scheduler stopping after current cycle", "stats", s.stats.Snapshot())
			}
			return
		case <-time.After(wait):
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	now := time.Now()
	dt := now.Sub(s.lastTick).Seconds()
	s.lastTick = now

	eligible, err := s.characters.ListEligibleForCycle(ctx, s.worldID)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("listing eligible characters failed", "error", err)
		}
		return
	}

	processed := 0
	for _, c := range eligible {
		func() {
			defer func() {
				if r := recover(); r != nil && s.logger != nil {
					s.logger.Error("character processing panicked", "character_id", c.ID, "panic", r)
				}
			}()
			s.processCharacter(ctx, &c, dt)
		}()
		processed++
	}

	s.stats.recordCycle(time.Since(now), processed)
}

func (s *Scheduler) processCharacter(ctx context.Context, c *character.Character, dt float64) {
	if err := s.tickPhysiology(ctx, c, dt); err != nil {
		if s.logger != nil {
			s.logger.Error("physiology tick failed", "character_id", c.ID, "error", err)
		}
		return
	}

	var a *area.Area
	var others []character.Character
	var itemsHere []item.Item
	if c.AreaID != "" {
		var err error
		a, err = s.areas.Get(ctx, c.AreaID)
		if err != nil {
			if s.logger != nil {
				s.logger.Error("loading area for context failed", "character_id", c.ID, "error", err)
			}
		} else {
			others, _ = s.characters.ListByArea(ctx, c.AreaID)
			itemsHere, _ = s.items.ListByArea(ctx, c.AreaID)
		}
	}
	inventory, _ := s.items.ListByHolder(ctx, c.ID)

	systemPrompt := SystemPrompt(c.Class)
	userPrompt := BuildPrompt(c, a, inventory, withoutSelf(others, c.ID), itemsHere)

	tier := llm.TierMinor
	if c.Class == character.ClassStory {
		tier = llm.TierStory
	}

	response, err := s.router.Generate(ctx, tier, systemPrompt, userPrompt, llm.DefaultOptions())
	if err != nil {
		if s.logger != nil {
			s.logger.Error("llm generation failed", "character_id", c.ID, "error", err)
		}
		return
	}

	action, err := ParseAction(response)
	if err != nil && action == nil {
		s.stats.recordAction(false)
		if s.logger != nil {
			s.logger.Warn("could not parse model response", "character_id", c.ID, "error", err)
		}
		return
	}

	execErr := s.execute(ctx, c, a, action)
	s.stats.recordAction(execErr == nil)
	if execErr != nil && s.logger != nil {
		s.logger.Warn("action execution failed", "character_id", c.ID, "action", action.Kind, "error", execErr)
	}
}

func (s *Scheduler) tickPhysiology(ctx context.Context, c *character.Character, dt float64) error {
	nutrition := c.Nutrition - dt/900
	hydration := c.Hydration - dt/600
	tiredness := c.Tiredness
	alertness := c.Alertness

	if c.Alertness < 20 {
		tiredness -= 5 * dt / 60
		alertness += 5 * dt / 60
	} else {
		tiredness += dt / 600
	}

	damage := make([]character.DamageEntry, 0, len(c.Damage))
	for _, d := range c.Damage {
		d.Severity -= 0.5 * dt / 3600
		if d.Severity > 0 {
			damage = append(damage, d)
		}
	}

	_, err := s.kernel.UpdateState(ctx, c.ID, kernel.StatePartial{
		Nutrition: &nutrition,
		Hydration: &hydration,
		Tiredness: &tiredness,
		Alertness: &alertness,
		Damage:    damage,
	})
	return err
}

func (s *Scheduler) execute(ctx context.Context, c *character.Character, a *area.Area, act *Action) error {
	switch act.Kind {
	case ActionMove:
		if a == nil {
			return kernel.ErrNoArea
		}
		target, ok := a.Exits[act.Direction]
		if !ok {
			return ErrNoExit
		}
		_, err := s.kernel.MoveCharacter(ctx, c.ID, target)
		return err

	case ActionSpeak:
		_, err := s.kernel.Speak(ctx, c.ID, act.Text, kernel.KindSpeech)
		return err

	case ActionPickup:
		if a == nil {
			return kernel.ErrNoArea
		}
		itemsHere, err := s.items.ListByArea(ctx, a.ID)
		if err != nil {
			return err
		}
		target := findByNameSubstring(itemsHere, act.Item)
		if target == nil {
			return ErrItemNotFound
		}
		hand, err := s.freeHand(ctx, c.ID)
		if err != nil {
			return err
		}
		_, err = s.kernel.Pickup(ctx, c.ID, target.ID, hand)
		return err

	case ActionDrop:
		held, err := s.items.ListByHolder(ctx, c.ID)
		if err != nil {
			return err
		}
		target := findByNameSubstring(held, act.Item)
		if target == nil {
			return ErrItemNotFound
		}
		_, err = s.kernel.Drop(ctx, c.ID, target.ID)
		return err

	case ActionWait:
		_, err := s.kernel.AppendMemory(ctx, c.ID, "waited", "time passed")
		return err

	case ActionSleep:
		zero := 0.0
		_, err := s.kernel.UpdateState(ctx, c.ID, kernel.StatePartial{Alertness: &zero})
		return err

	default:
		return ErrUnknownAction
	}
}

func (s *Scheduler) freeHand(ctx context.Context, characterID string) (string, error) {
	held, err := s.items.ListByHolder(ctx, characterID)
	if err != nil {
		return "", err
	}
	rightFree, leftFree := true, true
	for _, h := range held {
		switch h.HeldLocation {
		case item.RightHand:
			rightFree = false
		case item.LeftHand:
			leftFree = false
		}
	}
	if rightFree {
		return item.RightHand, nil
	}
	if leftFree {
		return item.LeftHand, nil
	}
	return "", ErrBothHandsFull
}

func findByNameSubstring(items []item.Item, name string) *item.Item {
	lower := strings.ToLower(name)
	for i := range items {
		if strings.Contains(strings.ToLower(items[i].Name), lower) {
			return &items[i]
		}
	}
	return nil
}

func withoutSelf(chars []character.Character, selfID string) []character.Character {
	out := make([]character.Character, 0, len(chars))
	for _, c := range chars {
		if c.ID != selfID {
			out = append(out, c)
		}
	}
	return out
}
