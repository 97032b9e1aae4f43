package debugui

import (
	"github.com/plus3/bitecs/ecs"
)

// DebugUI bundles the inspection windows for one World.
type DebugUI struct {
	inspector ecs.Inspector
	timer     *FrameTimer

	EntityBrowser      EntityBrowserWindow
	ComponentInspector ComponentInspectorWindow
	CombinationViewer  CombinationViewerWindow
	PerformanceStats   PerformanceStatsWindow
	QueryDebugger      QueryDebuggerWindow
}

// New creates the debug windows for the World behind inspector.
func New(inspector ecs.Inspector) *DebugUI {
	return &DebugUI{
		inspector:          inspector,
		timer:              NewFrameTimer(),
		EntityBrowser:      NewEntityBrowserWindow(100),
		ComponentInspector: NewComponentInspectorWindow(),
		CombinationViewer:  NewCombinationViewerWindow(),
		PerformanceStats:   NewPerformanceStatsWindow(120),
		QueryDebugger:      NewQueryDebuggerWindow(),
	}
}

// Render draws every window. schedulerStats may be nil.
func (ui *DebugUI) Render(schedulerStats *ecs.SchedulerStats) {
	dt := ui.timer.GetDeltaTime()

	ui.EntityBrowser.Render(ui.inspector)
	ui.ComponentInspector.Render(ui.inspector, ui.EntityBrowser.GetSelectedEntity())
	if mask := ui.CombinationViewer.Render(ui.inspector); mask != nil {
		ui.EntityBrowser.SetMaskFilter(mask)
	}
	ui.PerformanceStats.Render(ui.inspector, schedulerStats, dt)
	ui.QueryDebugger.Render(ui.inspector)
}
