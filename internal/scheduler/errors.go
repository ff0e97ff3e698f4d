package scheduler

import "errors"

// These scheduler-side errors are never surfaced to WCP clients; the cycle
// loop counts and logs them, then continues with the next character
// (spec.md §7).
var (
	// ErrParseError indicates the LLM response contained no usable {...} object.
	ErrParseError = errors.New("could not parse action from model response")
	// ErrUnknownAction indicates the action field's value isn't one of the
	// six recognized shapes.
	ErrUnknownAction = errors.New("unknown action")
	// ErrBothHandsFull indicates a pickup action found no free hand slot.
	ErrBothHandsFull = errors.New("both hands are full")
	// ErrNoExit indicates a move action named a direction the area has no
	// exit for.
	ErrNoExit = errors.New("no exit in that direction")
	// ErrItemNotFound indicates a pickup/drop action's item name matched
	// nothing in the relevant set.
	ErrItemNotFound = errors.New("no matching item")
)
