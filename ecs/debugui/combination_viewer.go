package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bitecs/ecs"
)

// CombinationInfo is one distinct component mask and how many live entities
// carry exactly it.
type CombinationInfo struct {
	Mask           uint64
	ComponentTypes []string
	EntityCount    int
	ComponentCount int
}

type CombinationViewerCache struct {
	combinations  []CombinationInfo
	sortColumn    int
	sortAscending bool
}

func NewCombinationViewerWindow() CombinationViewerWindow {
	return CombinationViewerWindow{
		cache: &CombinationViewerCache{
			sortColumn:    3,
			sortAscending: false,
		},
	}
}

// Render draws the window and returns the mask the user clicked this frame,
// if any.
func (cv *CombinationViewerWindow) Render(in ecs.Inspector) *uint64 {
	if !imgui.BeginV("Combination Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	cv.cache.combinations = combinationsOf(in.CollectStats())
	sortCombinations(cv.cache.combinations, cv.cache.sortColumn, cv.cache.sortAscending)

	maxEntityCount := 0
	for _, combo := range cv.cache.combinations {
		maxEntityCount = max(maxEntityCount, combo.EntityCount)
	}

	var clickedMask *uint64

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("CombinationTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Mask")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Comp Count")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			cv.cache.sortColumn = int(spec.ColumnIndex())
			cv.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortCombinations(cv.cache.combinations, cv.cache.sortColumn, cv.cache.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, combo := range cv.cache.combinations {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := cv.selectedMask != nil && *cv.selectedMask == combo.Mask
			if imgui.SelectableBoolV(fmt.Sprintf("%b", combo.Mask), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				mask := combo.Mask
				clickedMask = &mask
				cv.selectedMask = &mask
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(combo.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", combo.ComponentCount))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", combo.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(combo.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clickedMask
}

func combinationsOf(stats ecs.Stats) []CombinationInfo {
	combinations := make([]CombinationInfo, 0, len(stats.Combinations))
	for _, c := range stats.Combinations {
		combinations = append(combinations, CombinationInfo{
			Mask:           c.Mask,
			ComponentTypes: c.Components,
			EntityCount:    c.EntityCount,
			ComponentCount: len(c.Components),
		})
	}
	return combinations
}

func sortCombinations(combinations []CombinationInfo, column int, ascending bool) {
	sort.SliceStable(combinations, func(i, j int) bool {
		a, b := combinations[i], combinations[j]
		if !ascending {
			a, b = b, a
		}

		switch column {
		case 0:
			return a.Mask < b.Mask
		case 1:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 2:
			return a.ComponentCount < b.ComponentCount
		default:
			return a.EntityCount < b.EntityCount
		}
	})
}
