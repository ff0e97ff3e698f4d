package trigger

import (
	"context"
	"fmt"
	"strings"
)

// Reactor executes reaction effects through the kernel. The trigger engine
// never touches persistence directly — every reaction is a kernel call, and
// per the non-reentrancy rule (spec §4.2) none of these calls may emit
// further trigger events.
type Reactor interface {
	SpawnItem(ctx context.Context, areaID string, tmpl ItemTemplate) error
	DestroyItem(ctx context.Context, worldID, itemID string) error
	AddExit(ctx context.Context, areaID, direction, targetAreaID string) error
	RemoveExit(ctx context.Context, areaID, direction string) error
	ReplaceDescription(ctx context.Context, areaID, description string) error
	AppendDescription(ctx context.Context, areaID, suffix string) error
	SetTemperature(ctx context.Context, areaID string, temperature float64) error
	AdjustTemperature(ctx context.Context, areaID string, delta float64) error
}

// Engine matches events against an area's trigger list and executes
// reactions in declared order.
type Engine struct{}

// NewEngine creates a trigger engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Fire evaluates triggers against an event. It returns the trigger list that
// should be persisted afterward (one-time triggers that fired are removed)
// and executes every matched reaction, in trigger order then reaction
// order, through reactor. A firing trigger's reactions form one quiescent
// layer: Fire does not re-evaluate triggers against the effects of its own
// reactions.
func (e *Engine) Fire(ctx context.Context, reactor Reactor, worldID string, event Event, triggers []Trigger) ([]Trigger, error) {
	remaining := make([]Trigger, 0, len(triggers))
	var matched []Trigger

	for _, t := range triggers {
		if matches(t.Condition, event) {
			matched = append(matched, t)
			if t.OneTime {
				continue // drop from the persisted list
			}
		}
		remaining = append(remaining, t)
	}

	for _, t := range matched {
		for _, r := range t.Reactions {
			if err := execute(ctx, reactor, worldID, event.AreaID, r); err != nil {
				return nil, fmt.Errorf("executing reaction %s: %w", r.Type, err)
			}
		}
	}

	return remaining, nil
}

func matches(c Condition, e Event) bool {
	if c.Type != e.Type {
		return false
	}
	if len(c.Keywords) > 0 {
		if e.Type != EventCharacterSpeech {
			return false
		}
		lower := strings.ToLower(e.Text)
		found := false
		for _, kw := range c.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if c.CharacterID != nil && *c.CharacterID != e.CharacterID {
		return false
	}
	if c.ItemID != nil && *c.ItemID != e.ItemID {
		return false
	}
	return true
}

func execute(ctx context.Context, reactor Reactor, worldID, areaID string, r Reaction) error {
	switch r.Type {
	case ReactionAddItem:
		if r.Item == nil {
			return fmt.Errorf("add_item reaction missing item template")
		}
		return reactor.SpawnItem(ctx, areaID, *r.Item)
	case ReactionRemoveItem:
		if r.ItemID == "" {
			return fmt.Errorf("remove_item reaction missing item_id")
		}
		return reactor.DestroyItem(ctx, worldID, r.ItemID)
	case ReactionAddExit:
		return reactor.AddExit(ctx, areaID, r.Direction, r.TargetAreaID)
	case ReactionRemoveExit:
		return reactor.RemoveExit(ctx, areaID, r.Direction)
	case ReactionModifyDescription:
		if r.NewDescription != nil {
			return reactor.ReplaceDescription(ctx, areaID, *r.NewDescription)
		}
		if r.AppendDescription != nil {
			return reactor.AppendDescription(ctx, areaID, *r.AppendDescription)
		}
		return fmt.Errorf("modify_description reaction needs new_description or append_description")
	case ReactionAppendDescription:
		// Standalone alias accepted for compatibility with sample configs
		// that use {"type":"append_description", ...} instead of nesting
		// under modify_description (see SPEC_FULL.md §9 Open Questions).
		if r.AppendDescription != nil {
			return reactor.AppendDescription(ctx, areaID, *r.AppendDescription)
		}
		if r.NewDescription != nil {
			return reactor.AppendDescription(ctx, areaID, *r.NewDescription)
		}
		return fmt.Errorf("append_description reaction missing text")
	case ReactionModifyTemperature:
		if r.Temperature != nil {
			return reactor.SetTemperature(ctx, areaID, *r.Temperature)
		}
		if r.TemperatureDelta != nil {
			return reactor.AdjustTemperature(ctx, areaID, *r.TemperatureDelta)
		}
		return fmt.Errorf("modify_temperature reaction needs temperature or temperature_delta")
	default:
		return fmt.Errorf("unknown reaction type: %s", r.Type)
	}
}
