package ecs_test

import (
	"testing"

	"github.com/plus3/bitecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newQueryWorld creates eight entities where entity i owns component j when
// bit j of i is set, then kills entity 5.
func newQueryWorld() *World {
	w := newTestWorld()
	for i := range 8 {
		e := w.CreateEntity()
		if i&1 != 0 {
			w.SetComponent(e, Position{X: int32(i)})
		}
		if i&2 != 0 {
			w.SetComponent(e, Name{Value: "n"})
		}
		if i&4 != 0 {
			w.SetComponent(e, Velocity{DX: int32(i)})
		}
	}
	w.RemoveEntity(5)
	return w
}

func TestQueryAnd(t *testing.T) {
	w := newQueryWorld()

	assert.Equal(t, []ecs.Entity{1, 3, 7}, w.Query(PositionID))
	assert.Equal(t, []ecs.Entity{2, 3, 6, 7}, w.Query(NameID))
	assert.Equal(t, []ecs.Entity{3, 7}, w.Query(PositionID, NameID))
	assert.Equal(t, []ecs.Entity{7}, w.Query(PositionID, NameID, VelocityID))
	assert.Empty(t, w.Query(HealthID))
}

func TestQueryEmptyFilterMatchesAllAlive(t *testing.T) {
	w := newQueryWorld()
	assert.Equal(t, []ecs.Entity{0, 1, 2, 3, 4, 6, 7}, w.Query())
	assert.Equal(t, []ecs.Entity{0, 1, 2, 3, 4, 6, 7}, w.Match(ecs.Filter{}))
}

func TestQueryNot(t *testing.T) {
	w := newQueryWorld()

	assert.Equal(t, []ecs.Entity{1}, w.QueryWithout(
		[]ecs.ComponentID{PositionID},
		[]ecs.ComponentID{NameID, VelocityID},
	))
	assert.Equal(t, []ecs.Entity{3}, w.QueryWithout(
		[]ecs.ComponentID{PositionID, NameID},
		[]ecs.ComponentID{VelocityID},
	))
	assert.Equal(t, []ecs.Entity{0, 2, 4, 6}, w.QueryNot(PositionID))
	assert.Equal(t, []ecs.Entity{0}, w.QueryNot(PositionID, NameID, VelocityID))
}

func TestQueryMatchesPredicate(t *testing.T) {
	w := newQueryWorld()
	f := ecs.All(NameID).Without(VelocityID)

	var want []ecs.Entity
	for e := range ecs.Entity(w.Len()) {
		if w.IsAlive(e) && w.HasComponent(e, NameID) && !w.HasComponent(e, VelocityID) {
			want = append(want, e)
		}
	}
	assert.Equal(t, want, w.Match(f))
}

func TestQueryInvalidComponent(t *testing.T) {
	w := newQueryWorld()
	assertPanicsWith(t, ecs.ErrComponentOutOfRange, func() { w.Query(componentCount) })
	assertPanicsWith(t, ecs.ErrComponentOutOfRange, func() { w.QueryNot(-1) })
}

func TestFilter(t *testing.T) {
	base := ecs.All(PositionID)
	a := base.With(NameID)
	b := base.With(VelocityID)

	assert.Equal(t, []ecs.ComponentID{PositionID}, base.Required())
	assert.Equal(t, []ecs.ComponentID{PositionID, NameID}, a.Required())
	assert.Equal(t, []ecs.ComponentID{PositionID, VelocityID}, b.Required())

	f := ecs.None(HealthID).With(PositionID).Without(NameID)
	assert.Equal(t, []ecs.ComponentID{PositionID}, f.Required())
	assert.Equal(t, []ecs.ComponentID{HealthID, NameID}, f.Excluded())
	assert.Equal(t, "all=[0] none=[3 1]", f.String())
}

func TestEach(t *testing.T) {
	w := newQueryWorld()

	var seen []ecs.Entity
	w.Each(ecs.All(PositionID), func(e ecs.Entity, row ecs.Row[Component]) {
		seen = append(seen, e)
		assert.Equal(t, int(componentCount), row.Len())

		c, ok := row.Get(PositionID)
		require.True(t, ok)
		assert.Equal(t, int32(e), c.(Position).X)
		assert.Equal(t, w.HasComponent(e, NameID), row.Has(NameID))
	})
	assert.Equal(t, []ecs.Entity{1, 3, 7}, seen)
}

func TestEachMutWritesThrough(t *testing.T) {
	w := newQueryWorld()

	w.EachMut(ecs.All(PositionID), func(e ecs.Entity, row ecs.RowMut[Component, uint8, uint8]) {
		assert.Equal(t, e, row.Entity())
		p := row.Unchecked(PositionID).(Position)
		p.X *= 10
		row.Set(p)
		row.Set(Health{Current: int(e)})
		if row.Has(NameID) {
			row.Remove(NameID)
		}
	})

	c, _ := w.Read(7, PositionID)
	assert.Equal(t, Position{X: 70}, c)
	assert.Equal(t, []ecs.Entity{1, 3, 7}, w.Query(HealthID))
	assert.Equal(t, []ecs.Entity{2, 6}, w.Query(NameID))
}

func TestEachMutVisibleToLaterMatches(t *testing.T) {
	w := newTestWorld()
	a := w.CreateEntityWith(Position{X: 1})
	b := w.CreateEntityWith(Position{X: 2})

	var seenByB bool
	w.EachMut(ecs.All(PositionID), func(e ecs.Entity, row ecs.RowMut[Component, uint8, uint8]) {
		switch e {
		case a:
			row.Set(Name{Value: "from a"})
		case b:
			seenByB = w.HasComponent(a, NameID)
		}
	})
	assert.True(t, seenByB)
}

func TestEachUntil(t *testing.T) {
	w := newQueryWorld()

	var seen []ecs.Entity
	w.EachUntil(ecs.All(NameID), func(e ecs.Entity, _ ecs.Row[Component]) bool {
		seen = append(seen, e)
		return e == 3
	})
	assert.Equal(t, []ecs.Entity{2, 3}, seen)

	seen = seen[:0]
	w.EachUntil(ecs.All(NameID), func(e ecs.Entity, _ ecs.Row[Component]) bool {
		seen = append(seen, e)
		return false
	})
	assert.Equal(t, []ecs.Entity{2, 3, 6, 7}, seen)
}

func TestEachComponent(t *testing.T) {
	w := newQueryWorld()

	var xs []int32
	w.EachComponent(ecs.All(PositionID, VelocityID), PositionID, func(_ ecs.Entity, c Component) {
		xs = append(xs, c.(Position).X)
	})
	assert.Equal(t, []int32{7}, xs)

	// the id must be part of the filter
	assertPanicsWith(t, ecs.ErrMissingComponent, func() {
		w.EachComponent(ecs.All(NameID), PositionID, func(ecs.Entity, Component) {})
	})
}

func TestRows(t *testing.T) {
	w := newQueryWorld()

	var seen []ecs.Entity
	for e, row := range w.Rows(ecs.All(VelocityID)) {
		assert.True(t, row.Has(VelocityID))
		seen = append(seen, e)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []ecs.Entity{4, 6}, seen)
	assert.NotPanics(t, func() { w.CreateEntity() })
}

func TestRowAll(t *testing.T) {
	w, _, e2 := newScenarioWorld()

	var ids []ecs.ComponentID
	w.ReadAll(e2, func(row ecs.Row[Component]) {
		for id, c := range row.All() {
			ids = append(ids, id)
			assert.Equal(t, id, c.ComponentID())
		}
	})
	assert.Equal(t, []ecs.ComponentID{PositionID, NameID}, ids)
}

func TestRowGetOutOfRange(t *testing.T) {
	w, e1, _ := newScenarioWorld()

	w.ReadAll(e1, func(row ecs.Row[Component]) {
		_, ok := row.Get(componentCount)
		assert.False(t, ok)
		assert.False(t, row.Has(-1))
		assertPanicsWith(t, ecs.ErrMissingComponent, func() { row.Unchecked(NameID) })
	})
}

func TestReadForEach(t *testing.T) {
	w := newQueryWorld()
	matches := w.Query(NameID)

	var seen []ecs.Entity
	w.ReadForEach(matches, func(e ecs.Entity, row ecs.Row[Component]) {
		assert.True(t, row.Has(NameID))
		seen = append(seen, e)
	})
	assert.Equal(t, matches, seen)

	seen = seen[:0]
	w.ReadForEachUntil(matches, func(e ecs.Entity, _ ecs.Row[Component]) bool {
		seen = append(seen, e)
		return e == 6
	})
	assert.Equal(t, []ecs.Entity{2, 3, 6}, seen)

	var total int32
	w.ReadForEachComponent(w.Query(VelocityID), VelocityID, func(_ ecs.Entity, c Component) {
		total += c.(Velocity).DX
	})
	assert.Equal(t, int32(4+6+7), total)
}

func TestCachedQuery(t *testing.T) {
	w := newQueryWorld()
	q := ecs.NewQuery(w, ecs.All(PositionID))

	assertPanicsWith(t, ecs.ErrQueryNotExecuted, func() { q.Entities() })
	assertPanicsWith(t, ecs.ErrQueryNotExecuted, func() { q.Len() })
	assertPanicsWith(t, ecs.ErrQueryNotExecuted, func() { q.Iter() })

	q.Execute()
	assert.Equal(t, []ecs.Entity{1, 3, 7}, q.Entities())
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []ecs.ComponentID{PositionID}, q.Filter().Required())

	w.RemoveEntity(3)
	var seen []ecs.Entity
	for e := range q.Iter() {
		seen = append(seen, e)
	}
	assert.Equal(t, []ecs.Entity{1, 7}, seen)

	q.Execute()
	assert.Equal(t, []ecs.Entity{1, 7}, q.Entities())
}
