package ecs

import (
	"fmt"

	"go.uber.org/zap"
)

// World composes an EntityRegistry and a ComponentTable and is the entry point
// for entity lifecycle, component access and queries.
//
// C is the embedder's component sum type. M is the entity mask type and must
// have at least one bit per component kind; F is the flag mask type, whose bit
// 0 is reserved for liveness.
//
// A World is not safe for concurrent use.
type World[C Component, M, F Bits] struct {
	entities   *EntityRegistry[M, F]
	components *ComponentTable[C]
	count      int
	iterating  int
	logger     *zap.Logger

	componentNames []string
	flagNames      []string

	resources singletonTable
}

// NewWorld creates a World for count component kinds. It panics if count is
// not positive or if M cannot hold count bits.
func NewWorld[C Component, M, F Bits](count int, opts ...Option) *World[C, M, F] {
	if count < 1 {
		panic(ErrNoComponents)
	}
	if width := widthOf[M](); count > width {
		panic(fmt.Errorf("%w: %d components, entity mask has %d bits", ErrMaskTooNarrow, count, width))
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if width := widthOf[F](); len(cfg.flagNames)+1 > width {
		panic(fmt.Errorf("%w: %d flags plus liveness, flag mask has %d bits", ErrMaskTooNarrow, len(cfg.flagNames), width))
	}

	return &World[C, M, F]{
		entities:       NewEntityRegistry[M, F](cfg.capacity),
		components:     NewComponentTable[C](count, cfg.capacity),
		count:          count,
		logger:         cfg.logger,
		componentNames: cfg.componentNames,
		flagNames:      cfg.flagNames,
	}
}

// CreateEntity allocates an entity with no components. It panics with
// ErrStructuralMutation when called during iteration, because growing the
// storage would invalidate live row views; queue the spawn on Commands instead.
func (w *World[C, M, F]) CreateEntity() Entity {
	if w.iterating > 0 {
		panic(ErrStructuralMutation)
	}

	e, grew := w.entities.Allocate()
	if grew {
		w.components.Reserve(w.entities.Cap())
		w.logger.Debug("entity capacity grown",
			zap.Int("capacity", w.entities.Cap()),
			zap.Int("components", w.count))
	}
	if int(e) == w.components.Len() {
		w.components.Append()
	}
	return e
}

// CreateEntityWith allocates an entity and sets each of cs on it.
func (w *World[C, M, F]) CreateEntityWith(cs ...C) Entity {
	e := w.CreateEntity()
	for _, c := range cs {
		w.SetComponent(e, c)
	}
	return e
}

// IsAlive reports whether e is allocated.
func (w *World[C, M, F]) IsAlive(e Entity) bool {
	return w.entities.IsAlive(e)
}

// HasComponent reports whether e owns a component of kind id.
func (w *World[C, M, F]) HasComponent(e Entity, id ComponentID) bool {
	return w.entities.HasComponent(e, id)
}

// SetComponent stores c on e, replacing any component of the same kind. e must
// be alive.
func (w *World[C, M, F]) SetComponent(e Entity, c C) {
	if !w.entities.IsAlive(e) {
		panic(fmt.Errorf("%w: entity %d", ErrDeadEntity, e))
	}
	id := w.components.Set(e, c)
	w.entities.setBit(e, id)
}

// RemoveComponent drops the component of kind id from e. The slot is cleared
// along with the mask bit. Removing from a dead entity is a no-op.
func (w *World[C, M, F]) RemoveComponent(e Entity, id ComponentID) {
	w.components.checkID(id)
	if !w.entities.IsAlive(e) {
		return
	}
	w.entities.clearBit(e, id)
	w.components.Clear(e, id)
}

// RemoveEntity kills e and returns its id to the pool for reuse. It returns
// false, doing nothing, if e is already dead or was never allocated.
func (w *World[C, M, F]) RemoveEntity(e Entity) bool {
	if !w.entities.Release(e) {
		return false
	}
	w.components.ClearRow(e)
	return true
}

// RemoveEntityUnchecked is RemoveEntity without the liveness check. Removing a
// dead entity this way corrupts the pool.
func (w *World[C, M, F]) RemoveEntityUnchecked(e Entity) {
	w.entities.ReleaseUnchecked(e)
	w.components.ClearRow(e)
}

// Read returns e's component of kind id, or false if e does not own one.
func (w *World[C, M, F]) Read(e Entity, id ComponentID) (C, bool) {
	if !w.entities.HasComponent(e, id) {
		var zero C
		return zero, false
	}
	return w.components.Get(e, id)
}

// ReadUnchecked returns e's component of kind id without consulting the mask.
// The caller guarantees e is alive and owns the component; an empty slot
// panics with ErrMissingComponent.
func (w *World[C, M, F]) ReadUnchecked(e Entity, id ComponentID) C {
	return w.components.GetUnchecked(e, id)
}

// ReadAll passes e's row to fn. The row must not be retained.
func (w *World[C, M, F]) ReadAll(e Entity, fn func(Row[C])) {
	w.beginIteration()
	defer w.endIteration()
	fn(w.row(e))
}

// Mask returns e's raw component mask.
func (w *World[C, M, F]) Mask(e Entity) M {
	return w.entities.Mask(e)
}

// Flags returns e's raw flag mask.
func (w *World[C, M, F]) Flags(e Entity) F {
	return w.entities.Flags(e)
}

// Len is the high-water mark of allocated ids, live or dead.
func (w *World[C, M, F]) Len() int {
	return w.entities.Len()
}

// Cap is the number of entities that fit before the storage grows.
func (w *World[C, M, F]) Cap() int {
	return w.entities.Cap()
}

// Alive returns the number of live entities.
func (w *World[C, M, F]) Alive() int {
	return w.entities.Alive()
}

// ComponentCount returns the number of component kinds the World was built for.
func (w *World[C, M, F]) ComponentCount() int {
	return w.count
}

// FreePool returns a copy of the reusable ids; the last one is reused next.
func (w *World[C, M, F]) FreePool() []Entity {
	return w.entities.Free()
}

func (w *World[C, M, F]) row(e Entity) Row[C] {
	return Row[C]{slots: w.components.row(e)}
}

func (w *World[C, M, F]) rowMut(e Entity) RowMut[C, M, F] {
	return RowMut[C, M, F]{Row: w.row(e), world: w, entity: e}
}

func (w *World[C, M, F]) beginIteration() {
	w.iterating++
}

func (w *World[C, M, F]) endIteration() {
	w.iterating--
}
