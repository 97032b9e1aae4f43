package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/kamstrup/intmap"
	"github.com/plus3/bitecs/ecs"
)

// maxListedMatches caps how many matching entity ids the debugger prints.
const maxListedMatches = 64

type QueryDebuggerCache struct {
	filter      ecs.Filter
	matches     []ecs.Entity
	breakdown   []CombinationInfo
}

func NewQueryDebuggerWindow() QueryDebuggerWindow {
	return QueryDebuggerWindow{
		with:    make(map[ecs.ComponentID]bool),
		without: make(map[ecs.ComponentID]bool),
		cache:   &QueryDebuggerCache{},
	}
}

func (qd *QueryDebuggerWindow) Render(in ecs.Inspector) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if imgui.Button("Clear All") {
		clear(qd.with)
		clear(qd.without)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("QuerySelectTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("With")
		imgui.TableSetupColumn("Without")
		imgui.TableHeadersRow()

		for i := range in.ComponentCount() {
			id := ecs.ComponentID(i)
			imgui.TableNextRow()

			imgui.TableSetColumnIndex(0)
			imgui.Text(in.ComponentName(id))

			imgui.TableSetColumnIndex(1)
			with := qd.with[id]
			if imgui.Checkbox(fmt.Sprintf("##with%d", i), &with) {
				qd.toggle(id, with, false)
			}

			imgui.TableSetColumnIndex(2)
			without := qd.without[id]
			if imgui.Checkbox(fmt.Sprintf("##without%d", i), &without) {
				qd.toggle(id, without, true)
			}
		}

		imgui.EndTable()
	}

	imgui.Separator()

	qd.cache.filter = buildFilter(qd.with, qd.without)
	qd.cache.matches = in.Match(qd.cache.filter)
	qd.cache.breakdown = breakdownOf(in, qd.cache.matches)

	imgui.Text(fmt.Sprintf("Filter: %s", describeFilter(in, qd.cache.filter)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(qd.cache.matches)))
	imgui.Text(fmt.Sprintf("Matching Combinations: %d", len(qd.cache.breakdown)))

	if imgui.TreeNodeStr("Entities") {
		listed := qd.cache.matches[:min(len(qd.cache.matches), maxListedMatches)]
		imgui.Text(fmt.Sprintf("%v", listed))
		if len(listed) < len(qd.cache.matches) {
			imgui.Text(fmt.Sprintf("... and %d more", len(qd.cache.matches)-len(listed)))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Combination Details") {
		if imgui.BeginTableV("QueryComboTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Mask")
			imgui.TableSetupColumn("All Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, combo := range qd.cache.breakdown {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%b", combo.Mask))

				imgui.TableSetColumnIndex(1)
				imgui.Text(fmt.Sprintf("%v", combo.ComponentTypes))

				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("%d", combo.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// toggle flips one checkbox. A kind cannot be both required and excluded, so
// checking one column unchecks the other.
func (qd *QueryDebuggerWindow) toggle(id ecs.ComponentID, on, exclude bool) {
	set, other := qd.with, qd.without
	if exclude {
		set, other = qd.without, qd.with
	}
	if on {
		set[id] = true
		delete(other, id)
	} else {
		delete(set, id)
	}
}

// buildFilter turns the checkbox state into a Filter with ids in ascending order.
func buildFilter(with, without map[ecs.ComponentID]bool) ecs.Filter {
	return ecs.All(sortedIDs(with)...).Without(sortedIDs(without)...)
}

func sortedIDs(set map[ecs.ComponentID]bool) []ecs.ComponentID {
	ids := make([]ecs.ComponentID, 0, len(set))
	for id, ok := range set {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func describeFilter(in ecs.Inspector, f ecs.Filter) string {
	var parts []string
	for _, id := range f.Required() {
		parts = append(parts, in.ComponentName(id))
	}
	for _, id := range f.Excluded() {
		parts = append(parts, "!"+in.ComponentName(id))
	}
	if len(parts) == 0 {
		return "<every live entity>"
	}
	return strings.Join(parts, " & ")
}

// breakdownOf groups matches by exact component mask, largest group first.
func breakdownOf(in ecs.Inspector, matches []ecs.Entity) []CombinationInfo {
	counts := intmap.New[uint64, int](16)
	for _, e := range matches {
		mask := in.ComponentBits(e)
		n, _ := counts.Get(mask)
		counts.Put(mask, n+1)
	}

	breakdown := make([]CombinationInfo, 0, counts.Len())
	counts.ForEach(func(mask uint64, n int) bool {
		var names []string
		for id := range in.ComponentCount() {
			if mask&(1<<id) != 0 {
				names = append(names, in.ComponentName(ecs.ComponentID(id)))
			}
		}
		breakdown = append(breakdown, CombinationInfo{
			Mask:           mask,
			ComponentTypes: names,
			EntityCount:    n,
			ComponentCount: len(names),
		})
		return true
	})

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].EntityCount != breakdown[j].EntityCount {
			return breakdown[i].EntityCount > breakdown[j].EntityCount
		}
		return breakdown[i].Mask < breakdown[j].Mask
	})
	return breakdown
}
