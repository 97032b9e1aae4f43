package debugui

import (
	"reflect"
	"testing"

	"github.com/plus3/bitecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testComponent interface {
	ecs.Component
}

type position struct{ X, Y int }
type label struct{ Text string }
type widget struct{ ImguiItem }

func (position) ComponentID() ecs.ComponentID { return 0 }
func (label) ComponentID() ecs.ComponentID    { return 1 }
func (widget) ComponentID() ecs.ComponentID   { return 2 }

type testWorld = ecs.World[testComponent, uint8, uint8]

func newInspectedWorld() *testWorld {
	w := ecs.NewWorld[testComponent, uint8, uint8](3,
		ecs.WithComponentNames("Position", "Label", "Widget"),
	)
	w.CreateEntityWith(position{X: 1})
	w.CreateEntityWith(position{X: 2}, label{Text: "player"})
	dead := w.CreateEntityWith(label{Text: "gone"})
	w.CreateEntityWith(position{X: 3})
	w.RemoveEntity(dead)
	return w
}

func TestCollectEntities(t *testing.T) {
	w := newInspectedWorld()

	entities := collectEntities(w)
	require.Len(t, entities, 3)

	assert.Equal(t, EntityInfo{
		ID:             1,
		Mask:           0b011,
		Flags:          1,
		ComponentTypes: []string{"Position", "Label"},
		ComponentCount: 2,
	}, entities[1])
	assert.Equal(t, ecs.Entity(3), entities[2].ID)
}

func TestFilterAndSortEntities(t *testing.T) {
	entities := collectEntities(newInspectedWorld())

	byName := filterEntities(entities, "label", nil)
	require.Len(t, byName, 1)
	assert.Equal(t, ecs.Entity(1), byName[0].ID)

	mask := uint64(0b001)
	byMask := filterEntities(entities, "", &mask)
	assert.Len(t, byMask, 2)

	byID := filterEntities(entities, "3", nil)
	require.Len(t, byID, 1)
	assert.Equal(t, ecs.Entity(3), byID[0].ID)

	sortEntities(entities, 4, false)
	assert.Equal(t, ecs.Entity(1), entities[0].ID)

	sortEntities(entities, 0, false)
	assert.Equal(t, []ecs.Entity{3, 1, 0}, []ecs.Entity{entities[0].ID, entities[1].ID, entities[2].ID})
}

func TestCombinations(t *testing.T) {
	w := newInspectedWorld()

	combos := combinationsOf(w.CollectStats())
	require.Len(t, combos, 2)
	assert.Equal(t, uint64(0b001), combos[0].Mask)
	assert.Equal(t, 2, combos[0].EntityCount)

	sortCombinations(combos, 2, false)
	assert.Equal(t, uint64(0b011), combos[0].Mask)
	assert.Equal(t, 2, combos[0].ComponentCount)
}

func TestQueryDebuggerFilter(t *testing.T) {
	w := newInspectedWorld()
	qd := NewQueryDebuggerWindow()

	qd.toggle(1, true, false)
	qd.toggle(0, true, false)
	f := buildFilter(qd.with, qd.without)
	assert.Equal(t, []ecs.ComponentID{0, 1}, f.Required())
	assert.Equal(t, []ecs.Entity{1}, w.Match(f))
	assert.Equal(t, "Position & Label", describeFilter(w, f))

	// excluding a required kind moves it to the other column
	qd.toggle(1, true, true)
	f = buildFilter(qd.with, qd.without)
	assert.Equal(t, []ecs.ComponentID{0}, f.Required())
	assert.Equal(t, []ecs.ComponentID{1}, f.Excluded())
	assert.Equal(t, []ecs.Entity{0, 3}, w.Match(f))

	breakdown := breakdownOf(w, w.Match(ecs.Filter{}))
	require.Len(t, breakdown, 2)
	assert.Equal(t, 2, breakdown[0].EntityCount)
	assert.Equal(t, []string{"Position", "Label"}, breakdown[1].ComponentTypes)

	assert.Equal(t, "<every live entity>", describeFilter(w, ecs.Filter{}))
}

func TestPerformanceHistory(t *testing.T) {
	ps := NewPerformanceStatsWindow(4)
	for range 6 {
		ps.Record(0.010)
	}
	assert.InDelta(t, 10.0, ps.AverageFrameTime(), 0.001)
}

func TestExportedFields(t *testing.T) {
	type inner struct{ A int }
	type sample struct {
		Name    string
		hidden  int
		Ptr     *inner
		Nested  inner
		Numbers []int
	}

	typ := reflect.TypeOf(sample{})
	assert.Equal(t, []int{0, 2, 3, 4}, exportedFields(typ))
	assert.Equal(t, exportedFields(typ), exportedFields(typ))
	assert.Nil(t, exportedFields(reflect.TypeOf(3)))
}

func TestImguiItemRender(t *testing.T) {
	calls := 0
	var r Renderer = widget{ImguiItem{Render: func() { calls++ }}}
	r.RenderImgui()
	assert.Equal(t, 1, calls)

	assert.NotPanics(t, func() { ImguiItem{}.RenderImgui() })
}
