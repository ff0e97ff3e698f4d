// Package wcp implements the World Control Protocol: the fixed tool
// catalogue exposed to players and narrators over the stdio and websocket
// transports (SPEC_FULL.md §6). Handler is transport-agnostic — it is
// dispatched from internal/transport regardless of which wire framing
// carried the call in.
package wcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Solifugus/storysplicer/internal/domain/area"
	"github.com/Solifugus/storysplicer/internal/domain/character"
	"github.com/Solifugus/storysplicer/internal/domain/item"
	"github.com/Solifugus/storysplicer/internal/domain/world"
	"github.com/Solifugus/storysplicer/internal/kernel"
	"github.com/Solifugus/storysplicer/internal/session"
)

// Handler dispatches WCP tool calls to the kernel (for mutators) or the
// domain read-only services (for queries), grounded on the teacher's
// internal/mcp.Handler dispatch-by-method-name shape.
type Handler struct {
	kernel     *kernel.Kernel
	sessions   *session.Store
	worlds     *world.Service
	areas      *area.Service
	characters *character.Service
	items      *item.Service
}

// NewHandler creates a WCP handler wired to the kernel and the read-only
// domain services.
func NewHandler(k *kernel.Kernel, sessions *session.Store, worlds *world.Service, areas *area.Service, characters *character.Service, items *item.Service) *Handler {
	return &Handler{
		kernel:     k,
		sessions:   sessions,
		worlds:     worlds,
		areas:      areas,
		characters: characters,
		items:      items,
	}
}

// Handle dispatches one WCP tool call. token is the caller's session
// token; it is ignored when authRequired is false (the stdio transport is
// trusted/local per spec.md §4.4). For mutating tools with a character
// subject, authRequired=true additionally requires the token to own that
// character.
func (h *Handler) Handle(ctx context.Context, token, method string, params json.RawMessage, authRequired bool) (any, error) {
	tool, ok := findTool(method)
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", method)
	}

	if authRequired && tool.Mutates && tool.Subject != "" {
		subjectID, err := extractSubject(params, tool.Subject)
		if err != nil {
			return nil, err
		}
		if !h.sessions.CanControl(ctx, token, subjectID) {
			return nil, ErrUnauthorized
		}
	}

	switch method {
	case "tools_list":
		return Tools, nil

	case "world_list":
		return h.worlds.List(ctx)

	case "world_create":
		var p WorldCreateParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		w, err := h.kernel.CreateWorld(ctx, p.Name, p.Description)
		if err != nil {
			return nil, err
		}
		return IDResult{ID: w.ID}, nil

	case "world_get":
		var p WorldIDParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return h.worlds.Get(ctx, p.WorldID)

	case "world_get_writing_style":
		var p WorldIDParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return h.worlds.GetWritingStyle(ctx, p.WorldID)

	case "area_list":
		var p AreaListParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return h.areas.ListByWorld(ctx, p.WorldID)

	case "area_get":
		var p AreaIDParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		a, err := h.areas.Get(ctx, p.AreaID)
		if err != nil {
			return nil, err
		}
		chars, err := h.characters.ListByArea(ctx, p.AreaID)
		if err != nil {
			return nil, err
		}
		items, err := h.items.ListByArea(ctx, p.AreaID)
		if err != nil {
			return nil, err
		}
		return AreaGetResult{Area: a, Characters: chars, Items: items}, nil

	case "area_get_characters":
		var p AreaIDParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return h.characters.ListByArea(ctx, p.AreaID)

	case "area_get_items":
		var p AreaIDParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return h.items.ListByArea(ctx, p.AreaID)

	case "area_create":
		var p AreaCreateParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		kp := kernel.AreaCreateParams{Exits: p.Exits}
		if p.Temperature != nil {
			kp.Temperature = *p.Temperature
		}
		a, err := h.kernel.CreateArea(ctx, p.WorldID, p.Name, p.Description, kp)
		if err != nil {
			return nil, err
		}
		return IDResult{ID: a.ID}, nil

	case "character_get":
		var p CharacterIDParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		c, err := h.characters.Get(ctx, p.CharacterID)
		if err != nil {
			return nil, err
		}
		inv, err := h.items.ListByHolder(ctx, p.CharacterID)
		if err != nil {
			return nil, err
		}
		return CharacterGetResult{Character: c, Inventory: inv}, nil

	case "character_list_awake":
		var p CharacterListAwakeParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return h.characters.ListAwakeByWorld(ctx, p.WorldID)

	case "character_get_inventory":
		var p CharacterIDParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return h.items.ListByHolder(ctx, p.CharacterID)

	case "character_move":
		var p CharacterMoveParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return h.kernel.MoveCharacter(ctx, p.CharacterID, p.AreaID)

	case "character_speak":
		var p CharacterSpeakParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		kind := kernel.SpeechKind(p.ActionType)
		if kind == "" {
			kind = kernel.KindSpeech
		}
		return h.kernel.Speak(ctx, p.CharacterID, p.Text, kind)

	case "character_update_state":
		var p CharacterUpdateStateParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		partial := kernel.StatePartial{
			Nutrition: p.Nutrition,
			Hydration: p.Hydration,
			Tiredness: p.Tiredness,
			Alertness: p.Alertness,
		}
		if p.Damage != nil {
			partial.Damage = make([]character.DamageEntry, len(p.Damage))
			for i, d := range p.Damage {
				partial.Damage[i] = character.DamageEntry{Part: d.Part, Type: d.Type, Severity: d.Severity}
			}
		}
		return h.kernel.UpdateState(ctx, p.CharacterID, partial)

	case "character_add_memory":
		var p CharacterAddMemoryParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return h.kernel.AppendMemory(ctx, p.CharacterID, p.Action, p.Result)

	case "character_claim":
		var p CharacterClaimParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		sess, err := h.kernel.ClaimCharacter(ctx, p.PlayerID, p.CharacterID)
		if err != nil {
			return nil, err
		}
		return SessionResult{Token: sess.Token, CharacterID: sess.CharacterID, ExpiresAt: sess.ExpiresAt.Format(time.RFC3339)}, nil

	case "character_release":
		var p CharacterIDParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		if err := h.kernel.ReleaseCharacter(ctx, p.CharacterID); err != nil {
			return nil, err
		}
		return struct{}{}, nil

	case "item_get":
		var p ItemIDParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return h.items.Get(ctx, p.ItemID)

	case "item_create":
		var p ItemCreateParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		i, err := h.kernel.CreateItem(ctx, p.WorldID, p.AreaID, p.Name, p.Description, p.Properties)
		if err != nil {
			return nil, err
		}
		return IDResult{ID: i.ID}, nil

	case "item_pickup":
		var p ItemPickupParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return h.kernel.Pickup(ctx, p.CharacterID, p.ItemID, p.Location)

	case "item_drop":
		var p ItemDropParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return h.kernel.Drop(ctx, p.CharacterID, p.ItemID)

	default:
		return nil, fmt.Errorf("unhandled tool %q", method)
	}
}

// decodeParams is the teacher's tolerant decode: an empty params object
// decodes to the zero value of out rather than erroring.
func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	return json.Unmarshal(params, out)
}

// extractSubject pulls a single string field named fieldName out of a raw
// params object without fully decoding it into a typed struct, so the
// authorization check can run before dispatch picks the right type.
func extractSubject(params json.RawMessage, fieldName string) (string, error) {
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(params, &generic); err != nil {
		return "", fmt.Errorf("decoding params for authorization: %w", err)
	}
	raw, ok := generic[fieldName]
	if !ok {
		return "", fmt.Errorf("%w: missing required field %q", kernel.ErrValidation, fieldName)
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", fmt.Errorf("decoding field %q: %w", fieldName, err)
	}
	return id, nil
}
