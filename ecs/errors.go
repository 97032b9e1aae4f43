package ecs

import "errors"

// Programmer errors are reported by panicking with one of these values
// (possibly wrapped), so a recovered panic can be matched with errors.Is.
var (
	// ErrNoComponents indicates a World was declared with no component kinds.
	ErrNoComponents = errors.New("ecs: world needs at least one component kind")
	// ErrMaskTooNarrow indicates the mask type cannot hold one bit per component or flag.
	ErrMaskTooNarrow = errors.New("ecs: mask type too narrow")
	// ErrComponentOutOfRange signals a component id outside [0, count).
	ErrComponentOutOfRange = errors.New("ecs: component id out of range")
	// ErrReservedFlag indicates user code tried to set or clear the liveness flag.
	ErrReservedFlag = errors.New("ecs: flag 0 is reserved for liveness")
	// ErrFlagOutOfRange signals a flag id beyond the width of the flag mask.
	ErrFlagOutOfRange = errors.New("ecs: flag id out of range")
	// ErrMissingComponent is raised by unchecked reads of an empty slot.
	ErrMissingComponent = errors.New("ecs: unchecked read of absent component")
	// ErrDeadEntity indicates a component or flag write to an entity that is not alive.
	ErrDeadEntity = errors.New("ecs: write to dead entity")
	// ErrStructuralMutation indicates an entity was allocated while a row view was live.
	ErrStructuralMutation = errors.New("ecs: entity allocation during iteration")
	// ErrQueryNotExecuted indicates a cached query was read before Execute.
	ErrQueryNotExecuted = errors.New("ecs: query read before Execute")
)
