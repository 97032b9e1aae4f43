package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bitecs/ecs"
)

// NoEntity is the selection of a browser with nothing selected.
const NoEntity ecs.Entity = -1

type EntityInfo struct {
	ID             ecs.Entity
	Mask           uint64
	Flags          uint64
	ComponentTypes []string
	ComponentCount int
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	lastLen       int
	lastAlive     int
	framesSince   int
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserWindow(maxEntitiesPerPage int) EntityBrowserWindow {
	return EntityBrowserWindow{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
			lastLen:       -1,
		},
		selectedEntityId:   NoEntity,
		maxEntitiesPerPage: maxEntitiesPerPage,
		refreshFrames:      30,
	}
}

func (eb *EntityBrowserWindow) Render(in ecs.Inspector) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(in)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterMask = nil
		eb.currentPage = 0
	}
	imgui.SameLine()
	if imgui.Button("Refresh") {
		eb.cache.entities = nil
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Mask")
		imgui.TableSetupColumn("Flags")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortEntities(eb.cache.entities, eb.cache.sortColumn, eb.cache.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		filteredEntities := filterEntities(eb.cache.entities, eb.filterText, eb.filterMask)

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filteredEntities))

		for i := startIdx; i < endIdx; i++ {
			entity := filteredEntities[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%b", entity.Mask))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%b", entity.Flags))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))
		}

		imgui.EndTable()
	}

	filteredEntities := filterEntities(eb.cache.entities, eb.filterText, eb.filterMask)

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

// rebuildCacheIfNeeded rebuilds when entities were created or removed, and
// every refreshFrames frames to pick up component changes.
func (eb *EntityBrowserWindow) rebuildCacheIfNeeded(in ecs.Inspector) {
	eb.cache.framesSince++
	if eb.cache.lastLen != in.Len() || eb.cache.lastAlive != in.Alive() || eb.cache.framesSince >= eb.refreshFrames {
		eb.cache.entities = nil
	}

	if eb.cache.entities == nil {
		eb.cache.entities = collectEntities(in)
		eb.cache.lastLen = in.Len()
		eb.cache.lastAlive = in.Alive()
		eb.cache.framesSince = 0
		sortEntities(eb.cache.entities, eb.cache.sortColumn, eb.cache.sortAscending)
	}
}

func collectEntities(in ecs.Inspector) []EntityInfo {
	entities := make([]EntityInfo, 0, in.Alive())

	for i := range in.Len() {
		e := ecs.Entity(i)
		if !in.IsAlive(e) {
			continue
		}

		mask := in.ComponentBits(e)
		var componentTypes []string
		for id := range in.ComponentCount() {
			if mask&(1<<id) != 0 {
				componentTypes = append(componentTypes, in.ComponentName(ecs.ComponentID(id)))
			}
		}

		entities = append(entities, EntityInfo{
			ID:             e,
			Mask:           mask,
			Flags:          in.FlagBits(e),
			ComponentTypes: componentTypes,
			ComponentCount: len(componentTypes),
		})
	}

	return entities
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	sort.Slice(entities, func(i, j int) bool {
		a, b := entities[i], entities[j]
		if !ascending {
			a, b = b, a
		}

		switch column {
		case 1:
			return a.Mask < b.Mask
		case 2:
			return a.Flags < b.Flags
		case 3:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 4:
			return a.ComponentCount < b.ComponentCount
		default:
			return a.ID < b.ID
		}
	})
}

// filterEntities keeps the entities whose mask equals mask (when set) and
// whose id or component names contain text.
func filterEntities(entities []EntityInfo, text string, mask *uint64) []EntityInfo {
	if text == "" && mask == nil {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	filterLower := strings.ToLower(text)

	for _, entity := range entities {
		if mask != nil && entity.Mask != *mask {
			continue
		}

		if text != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) && !strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

func (eb *EntityBrowserWindow) GetSelectedEntity() ecs.Entity {
	return eb.selectedEntityId
}

// SetMaskFilter restricts the browser to entities with exactly mask.
func (eb *EntityBrowserWindow) SetMaskFilter(mask *uint64) {
	eb.filterMask = mask
	eb.currentPage = 0
}
