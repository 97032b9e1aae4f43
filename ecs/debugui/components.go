package debugui

import (
	"github.com/plus3/bitecs/ecs"
)

type EntityBrowserWindow struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.Entity
	filterText         string
	filterMask         *uint64
	maxEntitiesPerPage int
	currentPage        int
	refreshFrames      int
}

type ComponentInspectorWindow struct {
	selectedEntityId ecs.Entity
}

type CombinationViewerWindow struct {
	cache        *CombinationViewerCache
	selectedMask *uint64
}

type PerformanceStatsWindow struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebuggerWindow struct {
	with    map[ecs.ComponentID]bool
	without map[ecs.ComponentID]bool
	cache   *QueryDebuggerCache
}
