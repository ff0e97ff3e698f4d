package wcp

import (
	"errors"
	"fmt"

	"github.com/Solifugus/storysplicer/internal/domain/area"
	"github.com/Solifugus/storysplicer/internal/domain/character"
	"github.com/Solifugus/storysplicer/internal/domain/item"
	"github.com/Solifugus/storysplicer/internal/domain/world"
	"github.com/Solifugus/storysplicer/internal/kernel"
	"github.com/Solifugus/storysplicer/internal/session"
)

// APIError is the stable error shape surfaced at the WCP boundary
// (spec.md §7). Code is a positive, implementation-defined application
// code distinct from the JSON-RPC transport codes in internal/transport.
type APIError struct {
	Code         int    `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wcp error %d: %s", e.Code, e.Message)
}

// Application error codes. -32000 and below is the JSON-RPC
// implementation-defined server-error range; these sit above it in a
// disjoint positive range reserved for domain failures.
const (
	CodeValidation    = 1000
	CodeNotFound      = 1001
	CodeCrossWorld    = 1002
	CodeNotHere       = 1003
	CodeNotHolding    = 1004
	CodeNoArea        = 1005
	CodeSlotOccupied  = 1006
	CodeBothHandsFull = 1007
	CodeAlreadyOwned  = 1008
	CodeConflict      = 1009
	CodeUnauthorized  = 1010
	CodeInternal      = 1099
)

// MapError maps a domain/kernel/session error to a stable APIError,
// grounded on the teacher's internal/mcp/errors.go MapError dispatcher.
// Returns nil for a nil input and a generic CodeInternal wrapper for any
// error this dispatcher doesn't recognize — the RPC layer never leaks a
// bare Go error string as if it were part of the stable taxonomy.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, kernel.ErrValidation), errors.Is(err, area.ErrInvalidInput),
		errors.Is(err, character.ErrInvalidInput), errors.Is(err, item.ErrInvalidInput),
		errors.Is(err, world.ErrInvalidInput):
		return &APIError{Code: CodeValidation, Message: err.Error(), RecoveryHint: "check the request parameters"}
	case errors.Is(err, kernel.ErrNotFound), errors.Is(err, area.ErrNotFound),
		errors.Is(err, character.ErrNotFound), errors.Is(err, item.ErrNotFound),
		errors.Is(err, world.ErrNotFound):
		return &APIError{Code: CodeNotFound, Message: "entity not found", RecoveryHint: "check the id"}
	case errors.Is(err, kernel.ErrCrossWorld):
		return &APIError{Code: CodeCrossWorld, Message: "entities belong to different worlds"}
	case errors.Is(err, kernel.ErrNotHere):
		return &APIError{Code: CodeNotHere, Message: "item is not in the character's area"}
	case errors.Is(err, kernel.ErrNotHolding):
		return &APIError{Code: CodeNotHolding, Message: "item is not held by this character"}
	case errors.Is(err, kernel.ErrNoArea):
		return &APIError{Code: CodeNoArea, Message: "character has no current area"}
	case errors.Is(err, kernel.ErrSlotOccupied):
		return &APIError{Code: CodeSlotOccupied, Message: "hold location is already occupied"}
	case errors.Is(err, kernel.ErrAlreadyOwned):
		return &APIError{Code: CodeAlreadyOwned, Message: "character is already owned by another player"}
	case errors.Is(err, kernel.ErrConflict):
		return &APIError{Code: CodeConflict, Message: "entity was modified concurrently, retry"}
	case errors.Is(err, session.ErrInvalidToken), errors.Is(err, session.ErrAlreadyControlled),
		errors.Is(err, session.ErrNotOwner), errors.Is(err, ErrUnauthorized):
		return &APIError{Code: CodeUnauthorized, Message: err.Error()}
	default:
		return &APIError{Code: CodeInternal, Message: err.Error()}
	}
}

// ErrUnauthorized indicates a mutating tool was called without a session
// that can control the subject character.
var ErrUnauthorized = errors.New("caller does not control this character")
