package ecs

import "fmt"

// Inspector is a type-erased view of a World for tooling that cannot be
// generic over the component and mask types. SetComponentAny is its only write.
type Inspector interface {
	Len() int
	Alive() int
	IsAlive(e Entity) bool
	ComponentCount() int
	ComponentName(id ComponentID) string
	FlagName(f FlagID) string
	ComponentBits(e Entity) uint64
	FlagBits(e Entity) uint64
	Component(e Entity, id ComponentID) (any, bool)
	SetComponentAny(e Entity, v any) bool
	Match(f Filter) []Entity
	CollectStats() Stats
	Singletons() []string
}

// ComponentName returns the configured name of component id, or a generic label.
func (w *World[C, M, F]) ComponentName(id ComponentID) string {
	if id >= 0 && int(id) < len(w.componentNames) && w.componentNames[id] != "" {
		return w.componentNames[id]
	}
	return fmt.Sprintf("component %d", id)
}

// FlagName returns the configured name of flag f, or a generic label.
func (w *World[C, M, F]) FlagName(f FlagID) string {
	if f == AliveFlag {
		return "alive"
	}
	if i := int(f) - 1; i >= 0 && i < len(w.flagNames) && w.flagNames[i] != "" {
		return w.flagNames[i]
	}
	return fmt.Sprintf("flag %d", f)
}

// ComponentBits returns e's mask widened to 64 bits, or 0 if e is out of range.
func (w *World[C, M, F]) ComponentBits(e Entity) uint64 {
	if !w.entities.inRange(e) {
		return 0
	}
	return uint64(w.entities.mask[e])
}

// FlagBits returns e's flags widened to 64 bits, or 0 if e is out of range.
func (w *World[C, M, F]) FlagBits(e Entity) uint64 {
	if !w.entities.inRange(e) {
		return 0
	}
	return uint64(w.entities.flags[e])
}

// Component is Read with the result boxed.
func (w *World[C, M, F]) Component(e Entity, id ComponentID) (any, bool) {
	c, ok := w.Read(e, id)
	if !ok {
		return nil, false
	}
	return c, true
}

// SetComponentAny stores v on e if v is a C and e is alive. It reports whether
// the write happened.
func (w *World[C, M, F]) SetComponentAny(e Entity, v any) bool {
	c, ok := v.(C)
	if !ok || !w.entities.IsAlive(e) {
		return false
	}
	w.SetComponent(e, c)
	return true
}
