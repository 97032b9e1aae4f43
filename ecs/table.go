package ecs

import "fmt"

// Component is implemented by the embedder's closed set of component kinds.
// ComponentID is the total mapping from a value to its kind; it must return the
// same id for every value of one kind, distinct ids for distinct kinds, and
// cover [0, count) exactly.
type Component interface {
	ComponentID() ComponentID
}

// slot holds one optional component inline; ok=false is the empty state.
type slot[C any] struct {
	value C
	ok    bool
}

// ComponentTable stores every entity's component slots in one flat,
// entity-major slice:
//
//	|        entity 0       |        entity 1       |
//	[ comp 0, comp 1, ... , comp 0, comp 1, ...     ]
//
// Growing the table only appends rows, so existing rows never move relative
// to one another.
type ComponentTable[C Component] struct {
	count int
	data  []slot[C]
}

// NewComponentTable creates a table for count component kinds with room for
// capacity entities.
func NewComponentTable[C Component](count, capacity int) *ComponentTable[C] {
	if count < 1 {
		panic(ErrNoComponents)
	}
	if capacity < 1 {
		capacity = 1
	}
	return &ComponentTable[C]{
		count: count,
		data:  make([]slot[C], 0, count*capacity),
	}
}

// Count returns the number of component kinds per row.
func (t *ComponentTable[C]) Count() int {
	return t.count
}

// Len returns the number of rows.
func (t *ComponentTable[C]) Len() int {
	return len(t.data) / t.count
}

// Cap returns the number of rows that fit before the next reallocation.
func (t *ComponentTable[C]) Cap() int {
	return cap(t.data) / t.count
}

func (t *ComponentTable[C]) checkID(id ComponentID) {
	if id < 0 || int(id) >= t.count {
		panic(fmt.Errorf("%w: %d not in [0, %d)", ErrComponentOutOfRange, id, t.count))
	}
}

// Get returns the component of kind id stored for e. Out-of-range entities or
// ids report absence.
func (t *ComponentTable[C]) Get(e Entity, id ComponentID) (C, bool) {
	var zero C
	if e < 0 || id < 0 || int(id) >= t.count {
		return zero, false
	}
	i := int(e)*t.count + int(id)
	if i >= len(t.data) {
		return zero, false
	}
	s := &t.data[i]
	return s.value, s.ok
}

// GetUnchecked returns the component of kind id stored for e without range
// checks. The caller guarantees presence; an empty slot panics rather than
// yielding a zero value.
func (t *ComponentTable[C]) GetUnchecked(e Entity, id ComponentID) C {
	s := &t.data[int(e)*t.count+int(id)]
	if !s.ok {
		panic(fmt.Errorf("%w: entity %d, component %d", ErrMissingComponent, e, id))
	}
	return s.value
}

// Set stores c in e's row and returns the kind it was stored under.
func (t *ComponentTable[C]) Set(e Entity, c C) ComponentID {
	id := c.ComponentID()
	t.checkID(id)
	t.data[int(e)*t.count+int(id)] = slot[C]{value: c, ok: true}
	return id
}

// Clear empties the slot of kind id in e's row.
func (t *ComponentTable[C]) Clear(e Entity, id ComponentID) {
	t.checkID(id)
	t.data[int(e)*t.count+int(id)] = slot[C]{}
}

// ClearRow empties every slot in e's row.
func (t *ComponentTable[C]) ClearRow(e Entity) {
	clear(t.row(e))
}

// Append adds one empty row at the end of the table.
func (t *ComponentTable[C]) Append() {
	n := len(t.data)
	if n+t.count > cap(t.data) {
		t.Reserve(2 * (n/t.count + 1))
	}
	// Slots past len are always zero: the table never shrinks and Reserve
	// allocates fresh backing storage.
	t.data = t.data[:n+t.count]
}

// Reserve grows the backing storage to hold at least capacity rows. Existing
// rows keep their positions.
func (t *ComponentTable[C]) Reserve(capacity int) {
	if capacity*t.count <= cap(t.data) {
		return
	}
	data := make([]slot[C], len(t.data), capacity*t.count)
	copy(data, t.data)
	t.data = data
}

func (t *ComponentTable[C]) row(e Entity) []slot[C] {
	start := int(e) * t.count
	end := start + t.count
	return t.data[start:end:end]
}
