// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It draws inspection windows for a World and runs ImGui render functions
// stored on entities.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bitecs/ecs"
)

// Renderer is implemented by components that draw ImGui widgets.
type Renderer interface {
	RenderImgui()
}

// ImguiItem holds a Dear ImGui render function. Embed it in a component type
// of your World to attach widgets to entities.
type ImguiItem struct {
	Render func()
}

// RenderImgui calls Render if it is set.
func (i ImguiItem) RenderImgui() {
	if i.Render != nil {
		i.Render()
	}
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard
// input. ImguiSystem keeps it as a World singleton.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render function of every entity owning ItemID and,
// when UI is set, the debug windows. A negative ItemID disables items. ImGui calls therefore run after the
// frame's systems, once the World is settled.
type ImguiSystem[C ecs.Component, M, F ecs.Bits] struct {
	ItemID     ecs.ComponentID
	InputState *ecs.Singleton[ImguiInputState]
	UI         *DebugUI
	Stats      func() *ecs.SchedulerStats
}

// NewImguiSystem creates an ImguiSystem for items of kind itemID and debug
// windows over world. ui may be nil.
func NewImguiSystem[C ecs.Component, M, F ecs.Bits](world *ecs.World[C, M, F], itemID ecs.ComponentID, ui *DebugUI) *ImguiSystem[C, M, F] {
	return &ImguiSystem[C, M, F]{
		ItemID:     itemID,
		InputState: ecs.NewSingleton[ImguiInputState](world),
		UI:         ui,
	}
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem[C, M, F]) Execute(frame *ecs.UpdateFrame[C, M, F]) {
	if i.InputState != nil {
		state := i.InputState.Get()
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	if i.ItemID >= 0 {
		frame.World.EachComponent(ecs.All(i.ItemID), i.ItemID, func(_ ecs.Entity, c C) {
			if r, ok := any(c).(Renderer); ok {
				frame.Commands.Defer(r.RenderImgui)
			}
		})
	}

	if i.UI != nil {
		frame.Commands.Defer(func() {
			var stats *ecs.SchedulerStats
			if i.Stats != nil {
				stats = i.Stats()
			}
			i.UI.Render(stats)
		})
	}
}
