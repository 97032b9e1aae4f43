package ecs

import (
	"fmt"
	"iter"
)

// Row is a read-only view over one entity's component slots, addressable by
// component id. A Row aliases the World's storage: it is only valid for the
// callback invocation (or loop iteration) that received it and must not be
// retained.
type Row[C Component] struct {
	slots []slot[C]
}

// Len returns the number of component kinds in the row.
func (r Row[C]) Len() int {
	return len(r.slots)
}

// Get returns the component of kind id, or false if the entity lacks it.
func (r Row[C]) Get(id ComponentID) (C, bool) {
	if id < 0 || int(id) >= len(r.slots) {
		var zero C
		return zero, false
	}
	s := &r.slots[id]
	return s.value, s.ok
}

// Has reports whether the entity owns a component of kind id.
func (r Row[C]) Has(id ComponentID) bool {
	return id >= 0 && int(id) < len(r.slots) && r.slots[id].ok
}

// Unchecked returns the component of kind id, assuming the entity owns it.
// An empty slot panics with ErrMissingComponent.
func (r Row[C]) Unchecked(id ComponentID) C {
	s := &r.slots[id]
	if !s.ok {
		panic(fmt.Errorf("%w: component %d", ErrMissingComponent, id))
	}
	return s.value
}

// All yields the present components in id order.
func (r Row[C]) All() iter.Seq2[ComponentID, C] {
	return func(yield func(ComponentID, C) bool) {
		for i := range r.slots {
			if !r.slots[i].ok {
				continue
			}
			if !yield(ComponentID(i), r.slots[i].value) {
				return
			}
		}
	}
}

// RowMut is a Row that can also write. Writes go straight to the World, so the
// entity's mask and slots are updated before the next match is visited.
type RowMut[C Component, M, F Bits] struct {
	Row[C]
	world  *World[C, M, F]
	entity Entity
}

// Entity returns the entity this row belongs to.
func (r RowMut[C, M, F]) Entity() Entity {
	return r.entity
}

// Set stores c on the entity, replacing any component of the same kind.
func (r RowMut[C, M, F]) Set(c C) {
	r.world.SetComponent(r.entity, c)
}

// Remove drops the component of kind id from the entity.
func (r RowMut[C, M, F]) Remove(id ComponentID) {
	r.world.RemoveComponent(r.entity, id)
}
