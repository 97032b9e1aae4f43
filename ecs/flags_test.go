package ecs_test

import (
	"testing"

	"github.com/plus3/bitecs/ecs"
	"github.com/stretchr/testify/assert"
)

func TestWorldFlags(t *testing.T) {
	w := newTestWorld()
	ball := w.CreateEntityWith(Position{X: 1})
	left := w.CreateEntityWith(Position{X: 2})
	right := w.CreateEntityWith(Position{X: 3})

	w.SetFlag(ball, BallFlag)
	w.SetFlag(left, PaddleFlag)
	w.SetFlag(right, PaddleFlag)

	assert.True(t, w.ReadFlag(ball, BallFlag))
	assert.False(t, w.ReadFlag(ball, PaddleFlag))
	assert.True(t, w.ReadFlag(ball, ecs.AliveFlag))
	assert.Equal(t, uint8(0b011), w.Flags(ball))

	assert.Equal(t, []ecs.Entity{ball}, w.QueryFlags(BallFlag))
	assert.Equal(t, []ecs.Entity{left, right}, w.QueryFlags(PaddleFlag))
	assert.Empty(t, w.QueryFlags(BallFlag, PaddleFlag))
	assert.Equal(t, []ecs.Entity{ball, left, right}, w.QueryFlags())

	w.ClearFlag(left, PaddleFlag)
	assert.Equal(t, []ecs.Entity{right}, w.QueryFlags(PaddleFlag))
}

func TestQueryFlagsSkipsDead(t *testing.T) {
	w := newTestWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	w.SetFlag(a, BallFlag)
	w.SetFlag(b, BallFlag)

	w.RemoveEntity(a)
	assert.True(t, w.ReadFlag(a, BallFlag), "user flags linger until the id is reused")
	assert.Equal(t, []ecs.Entity{b}, w.QueryFlags(BallFlag))
}

func TestFlagsReservedAndRange(t *testing.T) {
	w := newTestWorld()
	e := w.CreateEntity()

	assert.PanicsWithValue(t, ecs.ErrReservedFlag, func() { w.SetFlag(e, ecs.AliveFlag) })
	assert.PanicsWithValue(t, ecs.ErrReservedFlag, func() { w.ClearFlag(e, ecs.AliveFlag) })
	assertPanicsWith(t, ecs.ErrFlagOutOfRange, func() { w.SetFlag(e, 8) })
	assertPanicsWith(t, ecs.ErrFlagOutOfRange, func() { w.QueryFlags(9) })

	assert.False(t, w.ReadFlag(e, 8))
	assert.False(t, w.ReadFlag(99, BallFlag))
}

func TestEachFlagged(t *testing.T) {
	w := newTestWorld()
	ball := w.CreateEntityWith(Position{X: 4, Y: 4}, Velocity{DX: 1, DY: 1})
	paddle := w.CreateEntityWith(Position{X: 0, Y: 2})
	w.SetFlag(ball, BallFlag)
	w.SetFlag(paddle, PaddleFlag)

	var seen []ecs.Entity
	w.EachFlagged([]ecs.FlagID{BallFlag}, func(e ecs.Entity, row ecs.Row[Component]) {
		seen = append(seen, e)
		assert.True(t, row.Has(VelocityID))
	})
	assert.Equal(t, []ecs.Entity{ball}, seen)
}

func TestFlagWritesOnDeadEntity(t *testing.T) {
	w := newTestWorld()
	e := w.CreateEntity()
	w.SetFlag(e, BallFlag)
	w.RemoveEntity(e)

	assertPanicsWith(t, ecs.ErrDeadEntity, func() { w.SetFlag(e, PaddleFlag) })
	assertPanicsWith(t, ecs.ErrDeadEntity, func() { w.SetFlag(42, PaddleFlag) })
	assert.False(t, w.ReadFlag(e, PaddleFlag))

	assert.NotPanics(t, func() { w.ClearFlag(e, BallFlag) })
	assert.NotPanics(t, func() { w.ClearFlag(42, BallFlag) })
	assert.True(t, w.ReadFlag(e, BallFlag), "clearing a dead entity's flag changes nothing")

	// reserved and out-of-range flags are still rejected first
	assert.PanicsWithValue(t, ecs.ErrReservedFlag, func() { w.SetFlag(e, ecs.AliveFlag) })
	assertPanicsWith(t, ecs.ErrFlagOutOfRange, func() { w.ClearFlag(e, 8) })
}
