package scheduler

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ActionKind enumerates the six action shapes the scheduler accepts from a
// language model response (spec.md §4.5).
type ActionKind string

const (
	ActionMove   ActionKind = "move"
	ActionSpeak  ActionKind = "speak"
	ActionPickup ActionKind = "pickup"
	ActionDrop   ActionKind = "drop"
	ActionWait   ActionKind = "wait"
	ActionSleep  ActionKind = "sleep"
)

// Action is the parsed result of one LLM turn.
type Action struct {
	Kind      ActionKind
	Direction string
	Text      string
	Item      string
}

// ExtractJSON finds the first `{...}` object in raw and decodes it,
// tolerating a missing trailing `}` (the model's generation may have been
// cut short by the closing-brace stop string itself).
func ExtractJSON(raw string) (map[string]any, error) {
	start := strings.IndexByte(raw, '{')
	if start == -1 {
		return nil, fmt.Errorf("%w: no '{' found", ErrParseError)
	}
	s := raw[start:]

	depth := 0
	end := -1
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = i
			}
		}
		if end != -1 {
			break
		}
	}

	var candidate string
	if end != -1 {
		candidate = s[:end+1]
	} else if depth > 0 {
		candidate = s + strings.Repeat("}", depth)
	} else {
		candidate = s
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseError, err)
	}
	return obj, nil
}

// ParseAction extracts and validates an Action from a raw model response.
// An unrecognized action value still returns the parsed shape alongside
// ErrUnknownAction so the caller can log what the model actually said.
func ParseAction(raw string) (*Action, error) {
	obj, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	kindVal, ok := obj["action"].(string)
	if !ok || kindVal == "" {
		return nil, fmt.Errorf("%w: missing action field", ErrParseError)
	}

	a := &Action{Kind: ActionKind(kindVal)}
	if v, ok := obj["direction"].(string); ok {
		a.Direction = strings.ToLower(v)
	}
	if v, ok := obj["text"].(string); ok {
		a.Text = v
	}
	if v, ok := obj["item"].(string); ok {
		a.Item = v
	}

	switch a.Kind {
	case ActionMove, ActionSpeak, ActionPickup, ActionDrop, ActionWait, ActionSleep:
		return a, nil
	default:
		return a, fmt.Errorf("%w: %q", ErrUnknownAction, kindVal)
	}
}
