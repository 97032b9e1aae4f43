package ecs

import (
	"fmt"
	"iter"
)

// compile validates f against the World's component count and turns it into
// a pair of masks.
func (w *World[C, M, F]) compile(f Filter) matcher[M] {
	for _, id := range f.all {
		w.components.checkID(id)
	}
	for _, id := range f.none {
		w.components.checkID(id)
	}
	return matcher[M]{
		required: maskOf[M](f.all),
		excluded: maskOf[M](f.none),
	}
}

// matchAt reports whether entity i is alive and satisfies m.
func (w *World[C, M, F]) matchAt(i int, m matcher[M]) bool {
	return w.entities.flags[i]&aliveBit != 0 && m.matches(w.entities.mask[i])
}

// appendMatches scans every id from 0 to Len()-1 and appends the matches to dst.
// There is no index: cost is proportional to Len(), whatever the selectivity.
func (w *World[C, M, F]) appendMatches(dst []Entity, m matcher[M]) []Entity {
	for i := range w.entities.mask {
		if w.matchAt(i, m) {
			dst = append(dst, Entity(i))
		}
	}
	return dst
}

// Match returns the live entities satisfying f in ascending id order.
func (w *World[C, M, F]) Match(f Filter) []Entity {
	return w.appendMatches(nil, w.compile(f))
}

// Query returns the live entities owning every kind in ids.
func (w *World[C, M, F]) Query(ids ...ComponentID) []Entity {
	return w.Match(All(ids...))
}

// QueryWithout returns the live entities owning every kind in ids and none of
// the kinds in not.
func (w *World[C, M, F]) QueryWithout(ids, not []ComponentID) []Entity {
	return w.Match(All(ids...).Without(not...))
}

// QueryNot returns the live entities owning none of the kinds in not.
func (w *World[C, M, F]) QueryNot(not ...ComponentID) []Entity {
	return w.Match(None(not...))
}

// Each calls fn with the row of every match of f, in ascending id order.
func (w *World[C, M, F]) Each(f Filter, fn func(Entity, Row[C])) {
	m := w.compile(f)
	w.beginIteration()
	defer w.endIteration()

	for i := range w.entities.mask {
		if w.matchAt(i, m) {
			fn(Entity(i), w.row(Entity(i)))
		}
	}
}

// EachMut is Each with a writable row.
func (w *World[C, M, F]) EachMut(f Filter, fn func(Entity, RowMut[C, M, F])) {
	m := w.compile(f)
	w.beginIteration()
	defer w.endIteration()

	for i := range w.entities.mask {
		if w.matchAt(i, m) {
			fn(Entity(i), w.rowMut(Entity(i)))
		}
	}
}

// EachUntil is Each with early exit: the scan stops as soon as fn returns true.
func (w *World[C, M, F]) EachUntil(f Filter, fn func(Entity, Row[C]) bool) {
	m := w.compile(f)
	w.beginIteration()
	defer w.endIteration()

	for i := range w.entities.mask {
		if w.matchAt(i, m) && fn(Entity(i), w.row(Entity(i))) {
			return
		}
	}
}

// EachComponent calls fn with the component of kind id for every match of f.
// It skips the presence check: f must require id, otherwise an entity lacking
// the component panics with ErrMissingComponent.
func (w *World[C, M, F]) EachComponent(f Filter, id ComponentID, fn func(Entity, C)) {
	m := w.compile(f)
	w.components.checkID(id)
	w.beginIteration()
	defer w.endIteration()

	for i := range w.entities.mask {
		if w.matchAt(i, m) {
			fn(Entity(i), w.components.GetUnchecked(Entity(i), id))
		}
	}
}

// Rows returns an iterator over the matches of f and their rows. Breaking out
// of the loop stops the scan.
func (w *World[C, M, F]) Rows(f Filter) iter.Seq2[Entity, Row[C]] {
	m := w.compile(f)
	return func(yield func(Entity, Row[C]) bool) {
		w.beginIteration()
		defer w.endIteration()

		for i := range w.entities.mask {
			if w.matchAt(i, m) && !yield(Entity(i), w.row(Entity(i))) {
				return
			}
		}
	}
}

// ReadForEach calls fn with the row of each entity in entities, typically the
// result of an earlier query.
func (w *World[C, M, F]) ReadForEach(entities []Entity, fn func(Entity, Row[C])) {
	w.beginIteration()
	defer w.endIteration()

	for _, e := range entities {
		fn(e, w.row(e))
	}
}

// ReadForEachUntil is ReadForEach with early exit when fn returns true.
func (w *World[C, M, F]) ReadForEachUntil(entities []Entity, fn func(Entity, Row[C]) bool) {
	w.beginIteration()
	defer w.endIteration()

	for _, e := range entities {
		if fn(e, w.row(e)) {
			return
		}
	}
}

// ReadForEachComponent calls fn with the component of kind id of each entity in
// entities. Like EachComponent it does not check presence.
func (w *World[C, M, F]) ReadForEachComponent(entities []Entity, id ComponentID, fn func(Entity, C)) {
	w.components.checkID(id)
	w.beginIteration()
	defer w.endIteration()

	for _, e := range entities {
		fn(e, w.components.GetUnchecked(e, id))
	}
}

// Query caches the matches of a Filter so repeated iteration within a frame
// does not rescan the World.
type Query[C Component, M, F Bits] struct {
	world  *World[C, M, F]
	filter Filter
	match  matcher[M]

	cachedEntities []Entity
	cacheValid     bool
}

// NewQuery creates a Query over w. Call Execute before reading it.
func NewQuery[C Component, M, F Bits](w *World[C, M, F], f Filter) *Query[C, M, F] {
	return &Query[C, M, F]{
		world:  w,
		filter: f,
		match:  w.compile(f),
	}
}

// Filter returns the filter the query was built from.
func (q *Query[C, M, F]) Filter() Filter {
	return q.filter
}

// Execute rescans the World and refreshes the cached matches.
func (q *Query[C, M, F]) Execute() {
	q.cachedEntities = q.world.appendMatches(q.cachedEntities[:0], q.match)
	q.cacheValid = true
}

func (q *Query[C, M, F]) invalidateCache() {
	q.cacheValid = false
}

func (q *Query[C, M, F]) mustBeValid(op string) {
	if !q.cacheValid {
		panic(fmt.Errorf("%w: Query.%s", ErrQueryNotExecuted, op))
	}
}

// Entities returns the cached matches. The slice is reused by the next
// Execute and must not be modified.
func (q *Query[C, M, F]) Entities() []Entity {
	q.mustBeValid("Entities")
	return q.cachedEntities
}

// Len returns the number of cached matches.
func (q *Query[C, M, F]) Len() int {
	q.mustBeValid("Len")
	return len(q.cachedEntities)
}

// Iter returns an iterator over the cached matches and their rows. Entities
// removed since Execute are skipped.
func (q *Query[C, M, F]) Iter() iter.Seq2[Entity, Row[C]] {
	q.mustBeValid("Iter")

	return func(yield func(Entity, Row[C]) bool) {
		w := q.world
		w.beginIteration()
		defer w.endIteration()

		for _, e := range q.cachedEntities {
			if !w.entities.IsAlive(e) {
				continue
			}
			if !yield(e, w.row(e)) {
				return
			}
		}
	}
}
