package ecs

import "fmt"

// SetFlag sets user flag f on e. Flag 0 is reserved and panics with
// ErrReservedFlag; like SetComponent, a dead e panics with ErrDeadEntity.
func (w *World[C, M, F]) SetFlag(e Entity, f FlagID) {
	w.entities.checkUserFlag(f)
	if !w.entities.IsAlive(e) {
		panic(fmt.Errorf("%w: entity %d", ErrDeadEntity, e))
	}
	w.entities.SetFlag(e, f)
}

// ClearFlag clears user flag f on e. Clearing a flag of a dead entity is a
// no-op, as RemoveComponent is.
func (w *World[C, M, F]) ClearFlag(e Entity, f FlagID) {
	w.entities.checkUserFlag(f)
	if !w.entities.IsAlive(e) {
		return
	}
	w.entities.ClearFlag(e, f)
}

// ReadFlag reports whether flag f is set on e.
func (w *World[C, M, F]) ReadFlag(e Entity, f FlagID) bool {
	return w.entities.ReadFlag(e, f)
}

// QueryFlags returns the live entities that have every flag in flags set, in
// ascending id order. User flags of a dead entity linger until its id is
// reused, so the alive bit is always part of the test.
func (w *World[C, M, F]) QueryFlags(flags ...FlagID) []Entity {
	want := w.entities.FlagMask(flags...) | aliveBit

	var result []Entity
	for i, f := range w.entities.flags {
		if f&want == want {
			result = append(result, Entity(i))
		}
	}
	return result
}

// EachFlagged calls fn with the row of every live entity that has all of flags.
func (w *World[C, M, F]) EachFlagged(flags []FlagID, fn func(Entity, Row[C])) {
	w.ReadForEach(w.QueryFlags(flags...), fn)
}
