// Package kernel implements the sole writer to persistence. Every mutation
// in the system — whether initiated by a player through the World Control
// Protocol or by the scheduler acting on an NPC — flows through one of the
// Kernel's exported methods. No other package holds a write path to the
// domain repositories (see SPEC_FULL.md §4.1).
package kernel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Solifugus/storysplicer/internal/domain/area"
	"github.com/Solifugus/storysplicer/internal/domain/character"
	"github.com/Solifugus/storysplicer/internal/domain/item"
	"github.com/Solifugus/storysplicer/internal/domain/world"
	"github.com/Solifugus/storysplicer/internal/repository"
	"github.com/Solifugus/storysplicer/internal/session"
	"github.com/Solifugus/storysplicer/internal/trigger"
)

// clamp restricts a percentage field to [0, 100].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Kernel is the sole writer to persistence. It owns the domain
// repositories, the session store, and the trigger engine, and is the
// only type in the system that invokes any of them directly for a
// mutation.
type Kernel struct {
	worlds     world.Repository
	areas      area.Repository
	characters character.Repository
	items      item.Repository
	sessions   *session.Store
	engine     *trigger.Engine
	logger     *slog.Logger
}

// New creates a Kernel wired to the given repositories, session store, and
// trigger engine. sessions may be nil for tests that don't exercise
// ownership.
func New(worlds world.Repository, areas area.Repository, characters character.Repository, items item.Repository, sessions *session.Store, engine *trigger.Engine, logger *slog.Logger) *Kernel {
	return &Kernel{
		worlds:     worlds,
		areas:      areas,
		characters: characters,
		items:      items,
		sessions:   sessions,
		engine:     engine,
		logger:     logger,
	}
}

// --- creation -------------------------------------------------------------

// CreateWorld creates a new, empty world.
func (k *Kernel) CreateWorld(ctx context.Context, name, description string) (*world.World, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	w := &world.World{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := k.worlds.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("creating world: %w", err)
	}
	return w, nil
}

// AreaCreateParams are the optional fields the area_create WCP tool
// accepts alongside the required name: an initial temperature and exit
// map, both left at their zero values (0°C, no exits) when omitted.
type AreaCreateParams struct {
	Temperature float64
	Exits       map[string]string
}

// CreateArea creates a new area in a world with no triggers.
func (k *Kernel) CreateArea(ctx context.Context, worldID, name, description string, params AreaCreateParams) (*area.Area, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	exits := params.Exits
	if exits == nil {
		exits = area.NewExits()
	}
	a := &area.Area{
		ID:          uuid.NewString(),
		WorldID:     worldID,
		Name:        name,
		Description: description,
		Temperature: params.Temperature,
		Exits:       exits,
		Triggers:    nil,
	}
	if err := k.areas.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("creating area: %w", err)
	}
	return a, nil
}

// CreateCharacter creates a new, unowned character with full physiology
// and no memory.
func (k *Kernel) CreateCharacter(ctx context.Context, worldID, areaID, name string, class character.Class) (*character.Character, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if class != character.ClassStory && class != character.ClassMinor {
		return nil, fmt.Errorf("%w: character_class must be story or minor", ErrValidation)
	}
	c := &character.Character{
		ID:        uuid.NewString(),
		WorldID:   worldID,
		AreaID:    areaID,
		Name:      name,
		Class:     class,
		Nutrition: 100,
		Hydration: 100,
		Tiredness: 0,
		Alertness: 100,
		CreatedAt: time.Now(),
	}
	if err := k.characters.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating character: %w", err)
	}
	return c, nil
}

// CreateItem creates a new item sitting in an area.
func (k *Kernel) CreateItem(ctx context.Context, worldID, areaID, name, description string, properties map[string]string) (*item.Item, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	i := &item.Item{
		ID:          uuid.NewString(),
		WorldID:     worldID,
		Name:        name,
		Description: description,
		Properties:  properties,
		AreaID:      areaID,
		CreatedAt:   time.Now(),
	}
	if err := k.items.Create(ctx, i); err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}
	return i, nil
}

// --- deletion / cascades ---------------------------------------------------

// DeleteWorld deletes a world and cascades: every area belonging to it is
// deleted along with it (which in turn clears, not deletes, the
// characters/items it held).
func (k *Kernel) DeleteWorld(ctx context.Context, id string) error {
	areas, err := k.areas.ListByWorld(ctx, id)
	if err != nil {
		return fmt.Errorf("listing areas for cascade: %w", err)
	}
	for _, a := range areas {
		if err := k.DeleteArea(ctx, a.ID); err != nil {
			return fmt.Errorf("cascading delete of area %s: %w", a.ID, err)
		}
	}
	if err := k.worlds.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting world: %w", err)
	}
	return nil
}

// DeleteArea deletes an area, clearing the location of any character or
// item that was in it rather than deleting those rows (spec.md leaves them
// orphaned-but-alive; see SPEC_FULL.md §3).
func (k *Kernel) DeleteArea(ctx context.Context, id string) error {
	chars, err := k.characters.ListByArea(ctx, id)
	if err != nil {
		return fmt.Errorf("listing characters for cascade: %w", err)
	}
	for _, c := range chars {
		c.AreaID = ""
		if err := k.characters.Update(ctx, &c); err != nil {
			return fmt.Errorf("clearing location for character %s: %w", c.ID, err)
		}
	}

	items, err := k.items.ListByArea(ctx, id)
	if err != nil {
		return fmt.Errorf("listing items for cascade: %w", err)
	}
	for _, i := range items {
		i.AreaID = ""
		if err := k.items.Update(ctx, &i); err != nil {
			return fmt.Errorf("clearing location for item %s: %w", i.ID, err)
		}
	}

	if err := k.areas.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting area: %w", err)
	}
	return nil
}

// DeleteCharacter deletes a character, releasing its session (if any) and
// nulling held_by_character_id on anything it was carrying. Items left
// without an area or a holder are logged at warn level as needing repair
// (see SPEC_FULL.md §3).
func (k *Kernel) DeleteCharacter(ctx context.Context, id string) error {
	held, err := k.items.ListByHolder(ctx, id)
	if err != nil {
		return fmt.Errorf("listing held items: %w", err)
	}
	if err := k.items.ClearHolder(ctx, id); err != nil {
		return fmt.Errorf("clearing held items: %w", err)
	}
	for _, i := range held {
		if i.AreaID == "" && k.logger != nil {
			k.logger.Warn("item left without area or holder after character delete, needs repair",
				"item_id", i.ID, "character_id", id)
		}
	}

	if k.sessions != nil {
		k.sessions.ReleaseCharacter(id)
	}

	if err := k.characters.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}
	return nil
}

// DeleteItem deletes an item outright.
func (k *Kernel) DeleteItem(ctx context.Context, id string) error {
	if err := k.items.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// --- ownership --------------------------------------------------------------

// ClaimCharacter assigns characterID's ownership to playerID and opens a
// session for it. Idempotent for the same player; fails with
// ErrAlreadyOwned if another player already owns the character.
func (k *Kernel) ClaimCharacter(ctx context.Context, playerID, characterID string) (*session.Session, error) {
	c, err := k.characters.Get(ctx, characterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting character: %w", err)
	}
	if c.OwnerID != "" && c.OwnerID != playerID {
		return nil, ErrAlreadyOwned
	}

	if c.OwnerID == "" {
		c.OwnerID = playerID
		if err := k.characters.Update(ctx, c); err != nil {
			return nil, fmt.Errorf("setting character owner: %w", err)
		}
	}

	sess, err := k.sessions.Claim(ctx, playerID, characterID)
	if err != nil {
		return nil, fmt.Errorf("claiming session: %w", err)
	}
	return sess, nil
}

// ReleaseCharacter clears a character's ownership and drops any session
// controlling it.
func (k *Kernel) ReleaseCharacter(ctx context.Context, characterID string) error {
	c, err := k.characters.Get(ctx, characterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("getting character: %w", err)
	}
	c.OwnerID = ""
	if err := k.characters.Update(ctx, c); err != nil {
		return fmt.Errorf("clearing character owner: %w", err)
	}
	if k.sessions != nil {
		k.sessions.ReleaseCharacter(characterID)
	}
	return nil
}

// --- character action mutators --------------------------------------------

// MoveCharacter relocates a character directly to targetAreaID. It does
// not consult the source area's exits — that gating is the caller's job
// (the scheduler's move-action validator, or a WCP caller that wants
// naturalistic movement); the kernel allows narrator/trigger-driven
// teleport (spec.md §4.1, §9 open question).
func (k *Kernel) MoveCharacter(ctx context.Context, characterID, targetAreaID string) (*character.Character, error) {
	c, err := k.characters.Get(ctx, characterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting character: %w", err)
	}

	dest, err := k.areas.Get(ctx, targetAreaID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting destination area: %w", err)
	}
	if dest.WorldID != c.WorldID {
		return nil, ErrCrossWorld
	}

	c.AreaID = targetAreaID
	if err := k.characters.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("updating character location: %w", err)
	}

	if err := k.fireEvent(ctx, trigger.Event{
		Type:        trigger.EventCharacterEnters,
		AreaID:      targetAreaID,
		CharacterID: characterID,
	}, c.WorldID); err != nil {
		return nil, err
	}

	return c, nil
}

// Pickup moves an item from the character's current area into the named
// hold location, then fires item_picked_up.
func (k *Kernel) Pickup(ctx context.Context, characterID, itemID, holdLocation string) (*item.Item, error) {
	c, err := k.characters.Get(ctx, characterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting character: %w", err)
	}
	if c.AreaID == "" {
		return nil, ErrNoArea
	}

	i, err := k.items.Get(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting item: %w", err)
	}
	if i.AreaID != c.AreaID {
		return nil, ErrNotHere
	}

	if holdLocation == item.RightHand || holdLocation == item.LeftHand {
		held, err := k.items.ListByHolder(ctx, characterID)
		if err != nil {
			return nil, fmt.Errorf("listing held items: %w", err)
		}
		for _, h := range held {
			if h.HeldLocation == holdLocation {
				return nil, ErrSlotOccupied
			}
		}
	}

	i.AreaID = ""
	i.HeldByCharacterID = characterID
	i.HeldLocation = holdLocation
	if err := k.items.Update(ctx, i); err != nil {
		return nil, fmt.Errorf("updating item holder: %w", err)
	}

	if _, err := k.appendMemory(ctx, c, fmt.Sprintf("picked up %s", i.Name), fmt.Sprintf("now holding in %s", holdLocation)); err != nil {
		return nil, err
	}

	if err := k.fireEvent(ctx, trigger.Event{
		Type:        trigger.EventItemPickedUp,
		AreaID:      c.AreaID,
		CharacterID: characterID,
		ItemID:      itemID,
	}, c.WorldID); err != nil {
		return nil, err
	}

	return i, nil
}

// Drop moves an item from the character's inventory into the character's
// current area, then fires item_dropped.
func (k *Kernel) Drop(ctx context.Context, characterID, itemID string) (*item.Item, error) {
	c, err := k.characters.Get(ctx, characterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting character: %w", err)
	}
	if c.AreaID == "" {
		return nil, ErrNoArea
	}

	i, err := k.items.Get(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting item: %w", err)
	}
	if i.HeldByCharacterID != characterID {
		return nil, ErrNotHolding
	}

	i.HeldByCharacterID = ""
	i.HeldLocation = ""
	i.AreaID = c.AreaID
	if err := k.items.Update(ctx, i); err != nil {
		return nil, fmt.Errorf("updating item location: %w", err)
	}

	if _, err := k.appendMemory(ctx, c, fmt.Sprintf("dropped %s", i.Name), "placed in current area"); err != nil {
		return nil, err
	}

	areaID := c.AreaID
	if err := k.fireEvent(ctx, trigger.Event{
		Type:        trigger.EventItemDropped,
		AreaID:      areaID,
		CharacterID: characterID,
		ItemID:      itemID,
	}, c.WorldID); err != nil {
		return nil, err
	}

	return i, nil
}

// StatePartial is a partial update to a character's physiology, applied by
// UpdateState. Nil fields are left unchanged.
type StatePartial struct {
	Nutrition *float64
	Hydration *float64
	Tiredness *float64
	Alertness *float64
	Damage    []character.DamageEntry
}

// UpdateState applies a partial physiology update, clamping every
// percentage to [0,100] and enforcing the forced-sleep rule (tiredness =
// 100 implies alertness = 0). It never emits trigger events.
func (k *Kernel) UpdateState(ctx context.Context, characterID string, partial StatePartial) (*character.Character, error) {
	c, err := k.characters.Get(ctx, characterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting character: %w", err)
	}

	if partial.Nutrition != nil {
		c.Nutrition = clamp(*partial.Nutrition)
	}
	if partial.Hydration != nil {
		c.Hydration = clamp(*partial.Hydration)
	}
	if partial.Tiredness != nil {
		c.Tiredness = clamp(*partial.Tiredness)
	}
	if partial.Alertness != nil {
		c.Alertness = clamp(*partial.Alertness)
	}
	if partial.Damage != nil {
		c.Damage = partial.Damage
	}
	if c.Tiredness >= 100 {
		c.Alertness = 0
	}

	if err := k.characters.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("updating character state: %w", err)
	}
	return c, nil
}

// SpeechKind enumerates the kinds of utterance speak() accepts.
type SpeechKind string

const (
	KindSpeech SpeechKind = "speech"
	KindAction SpeechKind = "action"
	KindThought SpeechKind = "thought"
)

// Speak appends a memory entry for the utterance and, for kind=speech with
// a character that has an area, fires character_speech so keyword-matched
// triggers can react.
func (k *Kernel) Speak(ctx context.Context, characterID, text string, kind SpeechKind) (*character.Character, error) {
	c, err := k.characters.Get(ctx, characterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting character: %w", err)
	}

	updated, err := k.appendMemory(ctx, c, fmt.Sprintf("%s: %s", kind, text), "communicated")
	if err != nil {
		return nil, err
	}

	if kind == KindSpeech && updated.AreaID != "" {
		if err := k.fireEvent(ctx, trigger.Event{
			Type:        trigger.EventCharacterSpeech,
			AreaID:      updated.AreaID,
			CharacterID: characterID,
			Text:        text,
		}, updated.WorldID); err != nil {
			return nil, err
		}
	}

	return updated, nil
}

// AppendMemory appends one {action, result} entry to a character's memory
// log, enforcing the per-class tail cap (5 for story, 3 for minor).
func (k *Kernel) AppendMemory(ctx context.Context, characterID, action, result string) (*character.Character, error) {
	c, err := k.characters.Get(ctx, characterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting character: %w", err)
	}
	return k.appendMemory(ctx, c, action, result)
}

// appendMemory is the shared tail-capped append used by every mutator that
// writes a memory entry, operating on an already-fetched character.
func (k *Kernel) appendMemory(ctx context.Context, c *character.Character, action, result string) (*character.Character, error) {
	c.Memory = append(c.Memory, character.MemoryEntry{
		Timestamp: time.Now(),
		Action:    action,
		Result:    result,
	})
	tail := c.Class.MemoryCap()
	if len(c.Memory) > tail {
		c.Memory = c.Memory[len(c.Memory)-tail:]
	}
	if err := k.characters.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("appending memory: %w", err)
	}
	return c, nil
}

// --- trigger-only mutators (trigger.Reactor) -------------------------------
//
// These are invoked exclusively by the trigger engine while executing a
// trigger's reactions. They never call fireEvent: a reaction never spawns
// further trigger events within the same firing (spec.md §4.2).

// SpawnItem creates a new item in an area from a trigger's item template.
func (k *Kernel) SpawnItem(ctx context.Context, areaID string, tmpl trigger.ItemTemplate) error {
	a, err := k.areas.Get(ctx, areaID)
	if err != nil {
		return fmt.Errorf("getting area: %w", err)
	}
	i := &item.Item{
		ID:          uuid.NewString(),
		WorldID:     a.WorldID,
		Name:        tmpl.Name,
		Description: tmpl.Description,
		Properties:  tmpl.Properties,
		AreaID:      areaID,
		CreatedAt:   time.Now(),
	}
	if err := k.items.Create(ctx, i); err != nil {
		return fmt.Errorf("spawning item: %w", err)
	}
	return nil
}

// DestroyItem removes an item by id. Per spec.md §4.2, remove_item is
// silently skipped if the item is already gone; worldID is accepted for
// parity with trigger.Reactor but isn't required by the item repository.
func (k *Kernel) DestroyItem(ctx context.Context, worldID, itemID string) error {
	if err := k.items.Delete(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("destroying item: %w", err)
	}
	return nil
}

// AddExit adds or replaces a named exit on an area.
func (k *Kernel) AddExit(ctx context.Context, areaID, direction, targetAreaID string) error {
	a, err := k.areas.Get(ctx, areaID)
	if err != nil {
		return fmt.Errorf("getting area: %w", err)
	}
	if a.Exits == nil {
		a.Exits = area.NewExits()
	}
	a.Exits[direction] = targetAreaID
	return k.areas.Update(ctx, a)
}

// RemoveExit removes a named exit from an area, if present.
func (k *Kernel) RemoveExit(ctx context.Context, areaID, direction string) error {
	a, err := k.areas.Get(ctx, areaID)
	if err != nil {
		return fmt.Errorf("getting area: %w", err)
	}
	delete(a.Exits, direction)
	return k.areas.Update(ctx, a)
}

// ReplaceDescription replaces an area's description outright.
func (k *Kernel) ReplaceDescription(ctx context.Context, areaID, description string) error {
	a, err := k.areas.Get(ctx, areaID)
	if err != nil {
		return fmt.Errorf("getting area: %w", err)
	}
	a.Description = description
	return k.areas.Update(ctx, a)
}

// AppendDescription appends text to an area's existing description.
func (k *Kernel) AppendDescription(ctx context.Context, areaID, suffix string) error {
	a, err := k.areas.Get(ctx, areaID)
	if err != nil {
		return fmt.Errorf("getting area: %w", err)
	}
	a.Description = a.Description + suffix
	return k.areas.Update(ctx, a)
}

// SetTemperature sets an area's absolute temperature.
func (k *Kernel) SetTemperature(ctx context.Context, areaID string, temperature float64) error {
	a, err := k.areas.Get(ctx, areaID)
	if err != nil {
		return fmt.Errorf("getting area: %w", err)
	}
	a.Temperature = temperature
	return k.areas.Update(ctx, a)
}

// AdjustTemperature adds a delta to an area's current temperature.
func (k *Kernel) AdjustTemperature(ctx context.Context, areaID string, delta float64) error {
	a, err := k.areas.Get(ctx, areaID)
	if err != nil {
		return fmt.Errorf("getting area: %w", err)
	}
	a.Temperature += delta
	return k.areas.Update(ctx, a)
}

// --- internals --------------------------------------------------------------

// fireEvent loads the destination area's current trigger list, runs it
// through the trigger engine, and persists the pruned list if any one-time
// triggers fired.
func (k *Kernel) fireEvent(ctx context.Context, event trigger.Event, worldID string) error {
	if k.engine == nil {
		return nil
	}
	a, err := k.areas.Get(ctx, event.AreaID)
	if err != nil {
		return fmt.Errorf("loading area for trigger evaluation: %w", err)
	}
	if len(a.Triggers) == 0 {
		return nil
	}

	remaining, err := k.engine.Fire(ctx, k, worldID, event, a.Triggers)
	if err != nil {
		if k.logger != nil {
			k.logger.Error("trigger reaction failed", "area_id", event.AreaID, "error", err)
		}
		return fmt.Errorf("firing trigger event: %w", err)
	}

	if len(remaining) != len(a.Triggers) {
		if err := k.areas.UpdateTriggers(ctx, event.AreaID, remaining); err != nil {
			return fmt.Errorf("persisting pruned triggers: %w", err)
		}
	}
	return nil
}
